// internal/app/features/accounts/login.go
package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/civichub/internal/app/store/users"
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/limits"
	"github.com/dalemusser/civichub/internal/app/system/respond"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /accounts/login. A wrong email and a wrong
// password produce the same response.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)).Decode(&req); err != nil {
		respond.Error(w, fmt.Errorf("%w: malformed JSON body", workflow.ErrValidation))
		return
	}

	if ok, msg := h.Logins.Check(r, req.Email); !ok {
		respond.TooManyRequests(w, msg)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			respond.Error(w, fmt.Errorf("%w: invalid email or password", workflow.ErrUnauthorized))
			return
		}
		respond.ServerError(w, h.Log, "load user failed", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respond.Error(w, fmt.Errorf("%w: invalid email or password", workflow.ErrUnauthorized))
		return
	}

	h.Logins.ResetEmail(req.Email)

	token, err := h.Tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		respond.ServerError(w, h.Log, "issue token failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, authResponse{Token: token, User: *user})
}

// HandleMe handles GET /accounts/me for the signed-in user.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			respond.Error(w, fmt.Errorf("%w: account no longer exists", workflow.ErrNotFound))
			return
		}
		respond.ServerError(w, h.Log, "load user failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}
