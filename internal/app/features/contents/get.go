// internal/app/features/contents/get.go
package contents

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/civichub/internal/app/store/contents"
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/normalize"
	"github.com/dalemusser/civichub/internal/app/system/respond"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
)

// HandleGet handles GET /contents/{kind}/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromParam(chi.URLParam(r, "kind"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	id, err := idFromParam(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	item, err := h.Svc.Contents().GetByID(r.Context(), kind, id)
	if err != nil {
		if errors.Is(err, contentstore.ErrNotFound) {
			respond.Error(w, fmt.Errorf("%w: content does not exist", workflow.ErrNotFound))
			return
		}
		respond.ServerError(w, h.Log, "load content failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

// HandleList handles GET /contents/{kind}?club=|node=. Without a
// context filter it lists everything of the kind, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromParam(chi.URLParam(r, "kind"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	filter := bson.M{}
	if raw := r.URL.Query().Get("club"); raw != "" {
		id, err := idFromParam(raw)
		if err != nil {
			respond.Error(w, err)
			return
		}
		filter["club"] = id
	}
	if raw := r.URL.Query().Get("node"); raw != "" {
		id, err := idFromParam(raw)
		if err != nil {
			respond.Error(w, err)
			return
		}
		filter["node"] = id
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["published_status"] = status
	}

	items, err := h.Svc.Contents().List(r.Context(), kind, filter)
	if err != nil {
		respond.ServerError(w, h.Log, "list contents failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// HandleSearch handles GET /contents/{kind}/search?q=.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromParam(chi.URLParam(r, "kind"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	q := normalize.QueryParam(r.URL.Query().Get("q"))
	if q == "" {
		respond.Error(w, fmt.Errorf("%w: search query is required", workflow.ErrValidation))
		return
	}

	items, err := h.Svc.Contents().SearchByTitle(r.Context(), kind, q, 50)
	if err != nil {
		respond.ServerError(w, h.Log, "search contents failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// HandleView handles POST /contents/{kind}/{id}/view: records that the
// caller has seen the item. Idempotent per user.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	kind, err := kindFromParam(chi.URLParam(r, "kind"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	id, err := idFromParam(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.Svc.Contents().MarkViewed(r.Context(), kind, id, userID); err != nil {
		if errors.Is(err, contentstore.ErrNotFound) {
			respond.Error(w, fmt.Errorf("%w: content does not exist", workflow.ErrNotFound))
			return
		}
		respond.ServerError(w, h.Log, "mark viewed failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "view recorded"})
}
