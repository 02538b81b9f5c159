// internal/app/workflow/workflow.go

// Package workflow orchestrates membership-gated content creation, the
// transactional adoption flow, and manual publication across the four
// content kinds. It is the only package that combines the membership
// directory and the content store into authorization decisions; stores
// themselves never enforce membership.
package workflow

import (
	"fmt"

	"github.com/dalemusser/civichub/internal/app/store/clubs"
	"github.com/dalemusser/civichub/internal/app/store/contents"
	"github.com/dalemusser/civichub/internal/app/store/memberships"
	"github.com/dalemusser/civichub/internal/app/store/nodes"
	"github.com/dalemusser/civichub/internal/app/system/uploads"
	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Service carries the stores and collaborators the workflow operations
// need. The mongo client is held separately from the database because
// adoption opens its own session for the transaction.
type Service struct {
	client      *mongo.Client
	contents    *contentstore.Store
	memberships *membershipstore.Store
	clubs       *clubstore.Store
	nodes       *nodestore.Store
	uploader    uploads.Uploader
	log         *zap.Logger
}

func New(client *mongo.Client, db *mongo.Database, uploader uploads.Uploader, log *zap.Logger) *Service {
	return &Service{
		client:      client,
		contents:    contentstore.New(db),
		memberships: membershipstore.New(db),
		clubs:       clubstore.New(db),
		nodes:       nodestore.New(db),
		uploader:    uploader,
		log:         log,
	}
}

// Contents exposes the underlying content store for read-side callers
// (feed, relevancy) that share the service's wiring.
func (s *Service) Contents() *contentstore.Store { return s.contents }

// OwnerContext names the club or node an operation targets. Exactly one
// of the two must be set; Validate enforces that before any store work.
type OwnerContext struct {
	Club *primitive.ObjectID
	Node *primitive.ObjectID
}

// Validate rejects a context with both or neither axis set.
func (c OwnerContext) Validate() error {
	if c.Club != nil && c.Node != nil {
		return fmt.Errorf("%w: content cannot belong to both a club and a node", ErrValidation)
	}
	if c.Club == nil && c.Node == nil {
		return fmt.Errorf("%w: content must belong to a club or a node", ErrValidation)
	}
	return nil
}

// EntityType returns which membership collection this context maps to.
// Only meaningful after Validate.
func (c OwnerContext) EntityType() models.EntityType {
	if c.Club != nil {
		return models.EntityClub
	}
	return models.EntityNode
}

// EntityID returns the id of whichever axis is set.
func (c OwnerContext) EntityID() primitive.ObjectID {
	if c.Club != nil {
		return *c.Club
	}
	if c.Node != nil {
		return *c.Node
	}
	return primitive.NilObjectID
}

// Result pairs a saved item with the human-readable status message the
// API returns for it.
type Result struct {
	Item    *models.ContentItem `json:"item"`
	Message string              `json:"message"`
}

func statusMessage(status models.PublishedStatus, adopted bool) string {
	if adopted {
		if status == models.StatusPublished {
			return "adopted and published"
		}
		return "adoption proposed for review"
	}
	switch status {
	case models.StatusDraft:
		return "saved as draft"
	case models.StatusPublished:
		return "published successfully"
	default:
		return "proposed successfully"
	}
}
