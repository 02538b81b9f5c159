// internal/app/system/respond/respond.go

// Package respond writes JSON responses and maps workflow errors to HTTP
// status codes in one place, so feature handlers never invent their own
// error bodies.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/civichub/internal/app/workflow"
	"go.uber.org/zap"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// Error writes a stable, human-readable message for err. Internal detail
// never reaches the body; callers log it separately.
func Error(w http.ResponseWriter, err error) {
	JSON(w, statusFor(err), errorBody{Error: publicMessage(err)})
}

// TooManyRequests writes a 429 with the limiter's message.
func TooManyRequests(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusTooManyRequests, errorBody{Error: msg})
}

// ServerError logs err and writes a generic 500 body.
func ServerError(w http.ResponseWriter, log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	JSON(w, http.StatusInternalServerError, errorBody{Error: "something went wrong, please try again later"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, workflow.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrNotAMember):
		return http.StatusForbidden
	case errors.Is(err, workflow.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, workflow.ErrTransaction):
		return http.StatusServiceUnavailable
	case errors.Is(err, workflow.ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, workflow.ErrValidation),
		errors.Is(err, workflow.ErrNotAMember),
		errors.Is(err, workflow.ErrNotFound),
		errors.Is(err, workflow.ErrUnauthorized):
		return err.Error()
	case errors.Is(err, workflow.ErrTransaction):
		return "the operation could not be completed, please retry"
	case errors.Is(err, workflow.ErrUpstream):
		return "a dependent service failed, please try again later"
	}
	return "something went wrong, please try again later"
}
