// internal/app/features/clubs/clubs.go
package clubs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/civichub/internal/app/store/clubs"
	"github.com/dalemusser/civichub/internal/app/store/contents"
	"github.com/dalemusser/civichub/internal/app/store/memberships"
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/civichub/internal/app/system/limits"
	"github.com/dalemusser/civichub/internal/app/system/normalize"
	"github.com/dalemusser/civichub/internal/app/system/respond"
	"github.com/dalemusser/civichub/internal/app/system/roles"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/dalemusser/civichub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createRequest struct {
	Name     string `json:"name"`
	About    string `json:"about"`
	IsPublic bool   `json:"isPublic"`
}

// HandleCreate handles POST /clubs. The creator becomes the club's
// first admin with active membership.
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
	if strings.TrimSpace(req.Name) == "" {
		respond.Error(w, fmt.Errorf("%w: club name is required", workflow.ErrValidation))
		return
	}

	club, err := h.Clubs.Create(r.Context(), models.Club{
		Name:      strings.TrimSpace(req.Name),
		About:     htmlsanitize.Sanitize(req.About),
		IsPublic:  req.IsPublic,
		CreatedBy: userID,
	})
	if err != nil {
		respond.ServerError(w, h.Log, "create club failed", err)
		return
	}

	err = h.Memberships.Add(r.Context(), models.EntityClub, club.ID, userID, models.RoleAdmin, models.StatusMember)
	if err != nil {
		respond.ServerError(w, h.Log, "create founder membership failed", err)
		return
	}
	respond.JSON(w, http.StatusCreated, club)
}

// HandleGet handles GET /clubs/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	club, err := h.Clubs.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, clubstore.ErrNotFound) {
			respond.Error(w, fmt.Errorf("%w: club does not exist", workflow.ErrNotFound))
			return
		}
		respond.ServerError(w, h.Log, "load club failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, club)
}

// HandleJoin handles POST /clubs/{id}/join. Public clubs grant active
// membership at once; private clubs leave the request pending until an
// admin accepts it.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	clubID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	club, err := h.Clubs.GetByID(r.Context(), clubID)
	if err != nil {
		respond.Error(w, fmt.Errorf("%w: club does not exist", workflow.ErrNotFound))
		return
	}

	status := models.StatusRequested
	if club.IsPublic {
		status = models.StatusMember
	}
	err = h.Memberships.Add(r.Context(), models.EntityClub, clubID, userID, models.RoleMember, status)
	if err != nil {
		if errors.Is(err, membershipstore.ErrDuplicateMembership) {
			respond.Error(w, fmt.Errorf("%w: you already have a membership in this club", workflow.ErrValidation))
			return
		}
		respond.ServerError(w, h.Log, "join club failed", err)
		return
	}

	msg := "membership requested"
	if status == models.StatusMember {
		msg = "joined successfully"
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"message": msg, "status": status})
}

type memberUpdateRequest struct {
	UserID string `json:"userId"`
	Status string `json:"status,omitempty"`
	Role   string `json:"role,omitempty"`
}

// HandleUpdateMember handles POST /clubs/{id}/members: an admin accepts
// or blocks a pending request, or changes a member's role.
func (h *Handler) HandleUpdateMember(w http.ResponseWriter, r *http.Request) {
	adminID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	clubID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req memberUpdateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)).Decode(&req); err != nil {
		respond.Error(w, fmt.Errorf("%w: malformed JSON body", workflow.ErrValidation))
		return
	}
	targetID, err := parseID(req.UserID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	m, err := h.Memberships.Find(r.Context(), models.EntityClub, clubID, adminID)
	if err != nil || !roles.CanPublish(m.Role) || m.Status != models.StatusMember {
		respond.Error(w, fmt.Errorf("%w: only a club admin can manage members", workflow.ErrUnauthorized))
		return
	}

	req.Status = normalize.Status(req.Status)
	req.Role = normalize.Role(req.Role)
	if req.Status != "" {
		if err := h.Memberships.UpdateStatus(r.Context(), models.EntityClub, clubID, targetID, req.Status); err != nil {
			respondMembershipErr(w, h, err)
			return
		}
	}
	if req.Role != "" {
		if err := h.Memberships.UpdateRole(r.Context(), models.EntityClub, clubID, targetID, req.Role); err != nil {
			respondMembershipErr(w, h, err)
			return
		}
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "membership updated"})
}

// HandleListMembers handles GET /clubs/{id}/members?status=.
func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	clubID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	members, err := h.Memberships.ListByEntity(r.Context(), models.EntityClub, clubID, normalize.Status(r.URL.Query().Get("status")))
	if err != nil {
		respond.ServerError(w, h.Log, "list club members failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, members)
}

func respondMembershipErr(w http.ResponseWriter, h *Handler, err error) {
	if errors.Is(err, membershipstore.ErrNotFound) {
		respond.Error(w, fmt.Errorf("%w: no such membership", workflow.ErrNotFound))
		return
	}
	respond.ServerError(w, h.Log, "update membership failed", err)
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, err := contentstore.ParseID(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id %q", workflow.ErrValidation, raw)
	}
	return id, nil
}
