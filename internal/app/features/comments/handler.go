// internal/app/features/comments/handler.go

// Package comments attaches user remarks to any content item and pushes
// a realtime event when one is created.
package comments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/civichub/internal/app/realtime"
	"github.com/dalemusser/civichub/internal/app/store/comments"
	"github.com/dalemusser/civichub/internal/app/store/contents"
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/civichub/internal/app/system/limits"
	"github.com/dalemusser/civichub/internal/app/system/respond"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/dalemusser/civichub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Comments *commentstore.Store
	Contents *contentstore.Store
	Hub      *realtime.Hub
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, hub *realtime.Hub, log *zap.Logger) *Handler {
	return &Handler{
		Comments: commentstore.New(db),
		Contents: contentstore.New(db),
		Hub:      hub,
		Log:      log,
	}
}

type createRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Text string `json:"text"`
}

// HandleCreate handles POST /comments. After the write, a comment_added
// event goes out to connected clients; delivery is best-effort.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)).Decode(&req); err != nil {
		respond.Error(w, fmt.Errorf("%w: malformed JSON body", workflow.ErrValidation))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(w, fmt.Errorf("%w: comment text is required", workflow.ErrValidation))
		return
	}
	entity, err := parseEntity(req.Kind, req.ID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	exists, err := h.Contents.Exists(r.Context(), entity)
	if err != nil {
		respond.ServerError(w, h.Log, "check comment target failed", err)
		return
	}
	if !exists {
		respond.Error(w, fmt.Errorf("%w: content does not exist", workflow.ErrNotFound))
		return
	}

	comment, err := h.Comments.Create(r.Context(), models.Comment{
		Entity: entity,
		UserID: userID,
		Text:   htmlsanitize.Sanitize(req.Text),
	})
	if err != nil {
		respond.ServerError(w, h.Log, "create comment failed", err)
		return
	}

	if h.Hub != nil {
		h.Hub.Emit("comment_added", comment)
	}
	respond.JSON(w, http.StatusCreated, comment)
}

// HandleList handles GET /comments/{kind}/{id}.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	entity, err := parseEntity(chi.URLParam(r, "kind"), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	comments, err := h.Comments.ListByEntity(r.Context(), entity, 200)
	if err != nil {
		respond.ServerError(w, h.Log, "list comments failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, comments)
}

// HandleDelete handles DELETE /comments/{id}. Users can only delete
// their own comments.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := contentstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, fmt.Errorf("%w: malformed comment id", workflow.ErrValidation))
		return
	}

	if err := h.Comments.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, commentstore.ErrNotFound) {
			respond.Error(w, fmt.Errorf("%w: comment does not exist", workflow.ErrNotFound))
			return
		}
		respond.ServerError(w, h.Log, "delete comment failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

func parseEntity(kindRaw, idRaw string) (models.EntityRef, error) {
	kind := models.ContentKind(kindRaw)
	id, err := contentstore.ParseID(idRaw)
	if err != nil || !kind.Valid() {
		return models.EntityRef{}, fmt.Errorf("%w: a valid content kind and id are required", workflow.ErrValidation)
	}
	return models.EntityRef{Kind: kind, ID: id}, nil
}
