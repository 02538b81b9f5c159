// internal/app/features/clubs/handler.go

// Package clubs is the club directory: creation, lookup, and the join
// and membership-management flow.
package clubs

import (
	"github.com/dalemusser/civichub/internal/app/store/clubs"
	"github.com/dalemusser/civichub/internal/app/store/memberships"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Clubs       *clubstore.Store
	Memberships *membershipstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, log *zap.Logger) *Handler {
	return &Handler{
		Clubs:       clubstore.New(db),
		Memberships: membershipstore.New(db),
		Log:         log,
	}
}
