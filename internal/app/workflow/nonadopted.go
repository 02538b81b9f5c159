// internal/app/workflow/nonadopted.go
package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/civichub/internal/app/store/contents"
	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NonAdoptedEntity is one club or node of the caller's that has not yet
// adopted the item, annotated with the caller's role there.
type NonAdoptedEntity struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
	Role string             `json:"role"`
}

// NonAdoptedResult lists adoption candidates for one user and item.
type NonAdoptedResult struct {
	Clubs []NonAdoptedEntity `json:"nonAdoptedClubs"`
	Nodes []NonAdoptedEntity `json:"nonAdoptedNodes"`
}

// ListNonAdopted returns the caller's active clubs and nodes that do not
// appear in the item's adoption history. This is a set difference over
// two id sets computed in memory, not a query-time join: both sides are
// small (a user's memberships, an item's adopters).
func (s *Service) ListNonAdopted(ctx context.Context, kind models.ContentKind, contentID, userID primitive.ObjectID) (*NonAdoptedResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrValidation, kind)
	}

	item, err := s.contents.GetByID(ctx, kind, contentID)
	if err != nil {
		if errors.Is(err, contentstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: content does not exist", ErrNotFound)
		}
		return nil, err
	}

	clubMemberships, err := s.memberships.ClubMembershipsForUser(ctx, userID, models.StatusMember)
	if err != nil {
		return nil, err
	}
	nodeMemberships, err := s.memberships.NodeMembershipsForUser(ctx, userID, models.StatusMember)
	if err != nil {
		return nil, err
	}

	adoptedClubs := make(map[primitive.ObjectID]bool, len(item.AdoptedClubs))
	for _, a := range item.AdoptedClubs {
		adoptedClubs[a.ClubID] = true
	}
	adoptedNodes := make(map[primitive.ObjectID]bool, len(item.AdoptedNodes))
	for _, a := range item.AdoptedNodes {
		adoptedNodes[a.NodeID] = true
	}
	// The owning context counts as already having the item.
	if item.Club != nil {
		adoptedClubs[*item.Club] = true
	}
	if item.Node != nil {
		adoptedNodes[*item.Node] = true
	}

	var clubIDs, nodeIDs []primitive.ObjectID
	for _, cm := range clubMemberships {
		if !adoptedClubs[cm.ClubID] {
			clubIDs = append(clubIDs, cm.ClubID)
		}
	}
	for _, nm := range nodeMemberships {
		if !adoptedNodes[nm.NodeID] {
			nodeIDs = append(nodeIDs, nm.NodeID)
		}
	}

	clubsByID, err := s.clubs.ListByIDs(ctx, clubIDs)
	if err != nil {
		return nil, err
	}
	nodesByID, err := s.nodes.ListByIDs(ctx, nodeIDs)
	if err != nil {
		return nil, err
	}

	out := &NonAdoptedResult{
		Clubs: []NonAdoptedEntity{},
		Nodes: []NonAdoptedEntity{},
	}
	for _, cm := range clubMemberships {
		if adoptedClubs[cm.ClubID] {
			continue
		}
		out.Clubs = append(out.Clubs, NonAdoptedEntity{
			ID:   cm.ClubID,
			Name: clubsByID[cm.ClubID].Name,
			Role: cm.Role,
		})
	}
	for _, nm := range nodeMemberships {
		if adoptedNodes[nm.NodeID] {
			continue
		}
		out.Nodes = append(out.Nodes, NonAdoptedEntity{
			ID:   nm.NodeID,
			Name: nodesByID[nm.NodeID].Name,
			Role: nm.Role,
		})
	}
	return out, nil
}
