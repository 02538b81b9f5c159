// internal/app/workflow/publish.go
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/civichub/internal/app/store/contents"
	"github.com/dalemusser/civichub/internal/app/store/memberships"
	"github.com/dalemusser/civichub/internal/app/system/roles"
	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Publish moves a proposed or draft item to published on behalf of the
// named club or node. The caller must hold the admin role with MEMBER
// status there; moderators cannot publish manually even though they
// auto-publish what they create.
func (s *Service) Publish(ctx context.Context, kind models.ContentKind, contentID, userID, entityID primitive.ObjectID, entityType models.EntityType) (*Result, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrValidation, kind)
	}
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: entity type must be club or node", ErrValidation)
	}

	item, err := s.contents.GetByID(ctx, kind, contentID)
	if err != nil {
		if errors.Is(err, contentstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: content does not exist", ErrNotFound)
		}
		return nil, err
	}

	owned := (entityType == models.EntityClub && item.InClub(entityID)) ||
		(entityType == models.EntityNode && item.InNode(entityID))
	if !owned {
		return nil, fmt.Errorf("%w: content does not belong to this entity", ErrUnauthorized)
	}

	m, err := s.memberships.Find(ctx, entityType, entityID, userID)
	if err != nil {
		if errors.Is(err, membershipstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: only an admin of this entity can publish", ErrUnauthorized)
		}
		return nil, err
	}
	if !roles.CanPublish(m.Role) || m.Status != models.StatusMember {
		return nil, fmt.Errorf("%w: only an admin of this entity can publish", ErrUnauthorized)
	}

	now := time.Now().UTC()
	saved, err := s.contents.UpdateFields(ctx, kind, contentID, bson.M{
		"published_status": models.StatusPublished,
		"published_by":     userID,
		"published_date":   now,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Item: saved, Message: statusMessage(saved.PublishedStatus, false)}, nil
}
