// internal/app/features/contents/publish.go
package contents

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/limits"
	"github.com/dalemusser/civichub/internal/app/system/respond"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/dalemusser/civichub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type publishRequest struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
}

// HandlePublish handles POST /contents/{kind}/{id}/publish. The body
// names the club or node on whose behalf the caller publishes; the
// caller must be an active admin there.
func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
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
	contentID, err := idFromParam(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req publishRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)).Decode(&req); err != nil {
		respond.Error(w, fmt.Errorf("%w: malformed JSON body", workflow.ErrValidation))
		return
	}
	entityID, err := idFromParam(req.EntityID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	result, err := h.Svc.Publish(r.Context(), kind, contentID, userID, entityID, models.EntityType(req.EntityType))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, result)
}
