// internal/app/features/feedapi/handler.go

// Package feedapi serves the merged club/node content feed.
package feedapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dalemusser/civichub/internal/app/feed"
	"github.com/dalemusser/civichub/internal/app/store/contents"
	"github.com/dalemusser/civichub/internal/app/system/respond"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Feed *feed.Feed
	Log  *zap.Logger
}

func NewHandler(db *mongo.Database, log *zap.Logger) *Handler {
	return &Handler{Feed: feed.New(db), Log: log}
}

// HandleGet handles GET /feed?club=|node=&page=&limit=.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	var owner workflow.OwnerContext

	if raw := r.URL.Query().Get("club"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			respond.Error(w, err)
			return
		}
		owner.Club = &id
	}
	if raw := r.URL.Query().Get("node"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			respond.Error(w, err)
			return
		}
		owner.Node = &id
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result, err := h.Feed.Get(r.Context(), owner, page, limit)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, result)
}

func queryInt(r *http.Request, key string, def int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, err := contentstore.ParseID(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id %q", workflow.ErrValidation, raw)
	}
	return id, nil
}
