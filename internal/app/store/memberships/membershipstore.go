// internal/app/store/memberships/membershipstore.go

// Package membershipstore is the membership directory: it resolves a
// (user, club-or-node) pair to a role and status. Clubs and nodes are
// separate collections; there is no polymorphic lookup, and callers must
// know which entity type they are checking.
package membershipstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/civichub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	clubs *mongo.Collection
	nodes *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		clubs: db.Collection("clubmembers"),
		nodes: db.Collection("nodemembers"),
	}
}

var (
	// ErrNotFound means no membership document exists for the pair.
	ErrNotFound = errors.New("membership not found")
	// ErrDuplicateMembership means the (entity, user) pair already has a
	// membership document; state changes go through UpdateStatus.
	ErrDuplicateMembership = errors.New("user already has a membership with this entity")

	errBadRole   = errors.New(`role must be "admin", "moderator", or "member"`)
	errBadStatus = errors.New("unknown membership status")
	errBadEntity = errors.New(`entity type must be "club" or "node"`)
)

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleModerator || role == models.RoleMember
}

func validStatus(status string) bool {
	switch status {
	case models.StatusRequested, models.StatusAccepted, models.StatusRejectedM,
		models.StatusBlocked, models.StatusMember:
		return true
	}
	return false
}

func (s *Store) collection(entityType models.EntityType) (*mongo.Collection, string, error) {
	switch entityType {
	case models.EntityClub:
		return s.clubs, "club", nil
	case models.EntityNode:
		return s.nodes, "node", nil
	}
	return nil, "", errBadEntity
}

// Find resolves the membership for (entityType, entityID, userID).
// Returns ErrNotFound when the pair has no membership document.
func (s *Store) Find(ctx context.Context, entityType models.EntityType, entityID, userID primitive.ObjectID) (*models.Membership, error) {
	c, field, err := s.collection(entityType)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Role   string `bson:"role"`
		Status string `bson:"status"`
	}
	err = c.FindOne(ctx, bson.M{field: entityID, "user": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &models.Membership{
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     userID,
		Role:       doc.Role,
		Status:     doc.Status,
	}, nil
}

// Add creates a membership document after validating role and status.
func (s *Store) Add(ctx context.Context, entityType models.EntityType, entityID, userID primitive.ObjectID, role, status string) error {
	if !validRole(role) {
		return errBadRole
	}
	if !validStatus(status) {
		return errBadStatus
	}
	c, field, err := s.collection(entityType)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = c.InsertOne(ctx, bson.M{
		field:        entityID,
		"user":       userID,
		"role":       role,
		"status":     status,
		"created_at": now,
		"updated_at": now,
	})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateMembership
		}
		return err
	}
	return nil
}

// UpdateStatus transitions a membership's status. Removal from a club or
// node is a transition, never a delete.
func (s *Store) UpdateStatus(ctx context.Context, entityType models.EntityType, entityID, userID primitive.ObjectID, status string) error {
	if !validStatus(status) {
		return errBadStatus
	}
	c, field, err := s.collection(entityType)
	if err != nil {
		return err
	}

	res, err := c.UpdateOne(ctx,
		bson.M{field: entityID, "user": userID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRole changes a membership's role.
func (s *Store) UpdateRole(ctx context.Context, entityType models.EntityType, entityID, userID primitive.ObjectID, role string) error {
	if !validRole(role) {
		return errBadRole
	}
	c, field, err := s.collection(entityType)
	if err != nil {
		return err
	}

	res, err := c.UpdateOne(ctx,
		bson.M{field: entityID, "user": userID},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ClubMembershipsForUser lists a user's club memberships with the given
// status ("" means any status).
func (s *Store) ClubMembershipsForUser(ctx context.Context, userID primitive.ObjectID, status string) ([]models.ClubMember, error) {
	filter := bson.M{"user": userID}
	if status != "" {
		filter["status"] = status
	}
	cur, err := s.clubs.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.ClubMember
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// NodeMembershipsForUser lists a user's node memberships with the given
// status ("" means any status).
func (s *Store) NodeMembershipsForUser(ctx context.Context, userID primitive.ObjectID, status string) ([]models.NodeMember, error) {
	filter := bson.M{"user": userID}
	if status != "" {
		filter["status"] = status
	}
	cur, err := s.nodes.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.NodeMember
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListByEntity returns all memberships for one club or node, optionally
// filtered by status.
func (s *Store) ListByEntity(ctx context.Context, entityType models.EntityType, entityID primitive.ObjectID, status string) ([]models.Membership, error) {
	c, field, err := s.collection(entityType)
	if err != nil {
		return nil, err
	}

	filter := bson.M{field: entityID}
	if status != "" {
		filter["status"] = status
	}
	cur, err := c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Membership
	for cur.Next(ctx) {
		var doc struct {
			User   primitive.ObjectID `bson:"user"`
			Role   string             `bson:"role"`
			Status string             `bson:"status"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, models.Membership{
			EntityType: entityType,
			EntityID:   entityID,
			UserID:     doc.User,
			Role:       doc.Role,
			Status:     doc.Status,
		})
	}
	return out, cur.Err()
}
