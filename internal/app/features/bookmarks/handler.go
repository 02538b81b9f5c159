// internal/app/features/bookmarks/handler.go

// Package bookmarks lets a user pin any content item for later.
package bookmarks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/civichub/internal/app/store/bookmarks"
	"github.com/dalemusser/civichub/internal/app/store/contents"
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/limits"
	"github.com/dalemusser/civichub/internal/app/system/respond"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Bookmarks *bookmarkstore.Store
	Contents  *contentstore.Store
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, log *zap.Logger) *Handler {
	return &Handler{
		Bookmarks: bookmarkstore.New(db),
		Contents:  contentstore.New(db),
		Log:       log,
	}
}

type bookmarkRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func (h *Handler) parseEntity(req bookmarkRequest) (models.EntityRef, error) {
	kind := models.ContentKind(req.Kind)
	id, err := contentstore.ParseID(req.ID)
	if err != nil || !kind.Valid() {
		return models.EntityRef{}, fmt.Errorf("%w: a valid content kind and id are required", workflow.ErrValidation)
	}
	return models.EntityRef{Kind: kind, ID: id}, nil
}

// HandleAdd handles POST /bookmarks.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req bookmarkRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)).Decode(&req); err != nil {
		respond.Error(w, fmt.Errorf("%w: malformed JSON body", workflow.ErrValidation))
		return
	}
	entity, err := h.parseEntity(req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	exists, err := h.Contents.Exists(r.Context(), entity)
	if err != nil {
		respond.ServerError(w, h.Log, "check bookmark target failed", err)
		return
	}
	if !exists {
		respond.Error(w, fmt.Errorf("%w: content does not exist", workflow.ErrNotFound))
		return
	}

	bm, err := h.Bookmarks.Add(r.Context(), userID, entity)
	if err != nil {
		if errors.Is(err, bookmarkstore.ErrDuplicate) {
			respond.Error(w, fmt.Errorf("%w: %s", workflow.ErrValidation, err.Error()))
			return
		}
		respond.ServerError(w, h.Log, "add bookmark failed", err)
		return
	}
	respond.JSON(w, http.StatusCreated, bm)
}

// HandleRemove handles DELETE /bookmarks.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req bookmarkRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)).Decode(&req); err != nil {
		respond.Error(w, fmt.Errorf("%w: malformed JSON body", workflow.ErrValidation))
		return
	}
	entity, err := h.parseEntity(req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.Bookmarks.Remove(r.Context(), userID, entity); err != nil {
		if errors.Is(err, bookmarkstore.ErrNotFound) {
			respond.Error(w, fmt.Errorf("%w: bookmark does not exist", workflow.ErrNotFound))
			return
		}
		respond.ServerError(w, h.Log, "remove bookmark failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "bookmark removed"})
}

// HandleList handles GET /bookmarks for the signed-in user.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	list, err := h.Bookmarks.ListForUser(r.Context(), userID)
	if err != nil {
		respond.ServerError(w, h.Log, "list bookmarks failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}
