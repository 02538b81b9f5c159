// internal/app/features/nodes/handler.go

// Package nodes is the node directory. Nodes are structurally symmetric
// with clubs but stored and managed separately; callers must always
// know which of the two they are addressing.
package nodes

import (
	"github.com/dalemusser/civichub/internal/app/store/memberships"
	"github.com/dalemusser/civichub/internal/app/store/nodes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Nodes       *nodestore.Store
	Memberships *membershipstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, log *zap.Logger) *Handler {
	return &Handler{
		Nodes:       nodestore.New(db),
		Memberships: membershipstore.New(db),
		Log:         log,
	}
}
