// internal/testutil/http.go
package testutil

import (
	"context"
	"net/http"

	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// SignedIn injects the given user id as the request identity, skipping
// token verification.
func SignedIn(r *http.Request, userID primitive.ObjectID) *http.Request {
	return auth.WithTestIdentity(r, auth.Identity{
		UserID: userID,
		Email:  userID.Hex() + "@test.local",
	})
}
