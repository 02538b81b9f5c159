// internal/app/features/contents/relevancy.go
package contents

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dalemusser/civichub/internal/app/relevancy"
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/limits"
	"github.com/dalemusser/civichub/internal/app/system/respond"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/go-chi/chi/v5"
)

type relevancyRequest struct {
	Action string `json:"action"` // like | dislike
}

// HandleRelevancy handles POST /contents/{kind}/{id}/relevancy: toggles
// the caller's vote in the relevant or irrelevant set.
func (h *Handler) HandleRelevancy(w http.ResponseWriter, r *http.Request) {
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
	itemID, err := idFromParam(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req relevancyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)).Decode(&req); err != nil {
		respond.Error(w, fmt.Errorf("%w: malformed JSON body", workflow.ErrValidation))
		return
	}

	item, err := h.Ledger.Set(r.Context(), kind, itemID, userID, relevancy.Action(req.Action))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}
