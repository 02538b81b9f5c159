// internal/app/features/accounts/handler.go

// Package accounts covers registration, login, and the current-user
// endpoint. Passwords are bcrypt-hashed; sessions are stateless JWTs.
package accounts

import (
	"github.com/dalemusser/civichub/internal/app/store/users"
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/mailer"
	"github.com/dalemusser/civichub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users    *userstore.Store
	Tokens   *auth.Tokens
	Mailer   *mailer.Mailer
	Logins   *ratelimit.LoginLimiter
	SiteName string
	BaseURL  string
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.Tokens, m *mailer.Mailer, siteName, baseURL string, log *zap.Logger) *Handler {
	return &Handler{
		Users:    userstore.New(db),
		Tokens:   tokens,
		Mailer:   m,
		Logins:   ratelimit.NewLoginLimiter(),
		SiteName: siteName,
		BaseURL:  baseURL,
		Log:      log,
	}
}
