// internal/app/system/auth/auth.go

// Package auth resolves the bearer token on each request to the current
// user identity and injects it into the request context.
package auth

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is what gets injected into r.Context() for signed-in requests.
type Identity struct {
	UserID primitive.ObjectID
	Email  string
}

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentIdentity returns the request identity and a found flag.
func CurrentIdentity(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}

// UserID returns the signed-in user's id, or NilObjectID with ok=false.
func UserID(r *http.Request) (primitive.ObjectID, bool) {
	id, ok := CurrentIdentity(r)
	if !ok {
		return primitive.NilObjectID, false
	}
	return id.UserID, true
}

func withIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// WithTestIdentity injects an identity for handler tests.
func WithTestIdentity(r *http.Request, id Identity) *http.Request {
	return withIdentity(r, id)
}

// RequireAuth validates the Authorization bearer token and loads the
// identity into context, or responds 401.
func (t *Tokens) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Tests can pre-inject an identity and skip the token check.
		if _, ok := CurrentIdentity(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		claims, err := t.Validate(parts[1])
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		uid, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			// Malformed id in a validly signed token: fail closed.
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, withIdentity(r, Identity{UserID: uid, Email: claims.Email}))
	})
}
