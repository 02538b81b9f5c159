// internal/app/features/contents/adopt.go
package contents

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/limits"
	"github.com/dalemusser/civichub/internal/app/system/respond"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/go-chi/chi/v5"
)

type adoptRequest struct {
	Club string `json:"club,omitempty"`
	Node string `json:"node,omitempty"`
}

// HandleAdopt handles POST /contents/{kind}/{id}/adopt. The body names
// the club or node adopting the item.
func (h *Handler) HandleAdopt(w http.ResponseWriter, r *http.Request) {
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
	parentID, err := idFromParam(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req adoptRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)).Decode(&req); err != nil {
		respond.Error(w, fmt.Errorf("%w: malformed JSON body", workflow.ErrValidation))
		return
	}

	var target workflow.OwnerContext
	if target.Club, err = optionalID(req.Club); err != nil {
		respond.Error(w, err)
		return
	}
	if target.Node, err = optionalID(req.Node); err != nil {
		respond.Error(w, err)
		return
	}

	result, err := h.Svc.Adopt(r.Context(), kind, parentID, target, userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, result)
}

// HandleNonAdopted handles GET /contents/{kind}/{id}/non_adopted: the
// caller's clubs and nodes that have not yet adopted this item.
func (h *Handler) HandleNonAdopted(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.Svc.ListNonAdopted(r.Context(), kind, contentID, userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, result)
}
