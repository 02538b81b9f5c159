// internal/app/features/accounts/register.go
package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/civichub/internal/app/store/users"
	"github.com/dalemusser/civichub/internal/app/system/inputval"
	"github.com/dalemusser/civichub/internal/app/system/limits"
	"github.com/dalemusser/civichub/internal/app/system/mailer"
	"github.com/dalemusser/civichub/internal/app/system/normalize"
	"github.com/dalemusser/civichub/internal/app/system/respond"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/dalemusser/civichub/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

const minPasswordLen = 8

// HandleRegister handles POST /accounts/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)).Decode(&req); err != nil {
		respond.Error(w, fmt.Errorf("%w: malformed JSON body", workflow.ErrValidation))
		return
	}

	req.Email = normalize.Email(req.Email)
	req.UserName = strings.TrimSpace(req.UserName)
	switch {
	case !inputval.IsValidEmail(req.Email):
		respond.Error(w, fmt.Errorf("%w: a valid email is required", workflow.ErrValidation))
		return
	case req.UserName == "":
		respond.Error(w, fmt.Errorf("%w: a username is required", workflow.ErrValidation))
		return
	case len(req.Password) < minPasswordLen:
		respond.Error(w, fmt.Errorf("%w: password must be at least %d characters", workflow.ErrValidation, minPasswordLen))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.ServerError(w, h.Log, "hash password failed", err)
		return
	}

	user, err := h.Users.Create(r.Context(), models.User{
		FirstName:    normalize.Name(req.FirstName),
		LastName:     normalize.Name(req.LastName),
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			respond.Error(w, fmt.Errorf("%w: %s", workflow.ErrValidation, err.Error()))
			return
		}
		respond.ServerError(w, h.Log, "create user failed", err)
		return
	}

	token, err := h.Tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		respond.ServerError(w, h.Log, "issue token failed", err)
		return
	}

	if h.Mailer != nil {
		e := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
			SiteName:  h.SiteName,
			FirstName: user.FirstName,
			BaseURL:   h.BaseURL,
		})
		e.To = user.Email
		h.Mailer.SendAsync(e)
	}

	respond.JSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}
