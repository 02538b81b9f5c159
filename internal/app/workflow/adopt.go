// internal/app/workflow/adopt.go
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/civichub/internal/app/store/contents"
	"github.com/dalemusser/civichub/internal/app/store/memberships"
	"github.com/dalemusser/civichub/internal/app/system/roles"
	"github.com/dalemusser/civichub/internal/app/system/txn"
	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Adopt clones an existing item into a new club or node context inside
// one transaction: the parent's adoption history and the new child item
// commit together or not at all.
//
// An admin or moderator of the target attaches the clone to the target
// and publishes it in one step, and the parent gains an add-if-absent
// adoption entry for the target. A plain member instead gets a
// context-less proposed copy, and the parent is left untouched until an
// authorized member later publishes the proposal.
func (s *Service) Adopt(ctx context.Context, kind models.ContentKind, parentID primitive.ObjectID, target OwnerContext, userID primitive.ObjectID) (*Result, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrValidation, kind)
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	m, err := s.memberships.Find(ctx, target.EntityType(), target.EntityID(), userID)
	if err != nil {
		if errors.Is(err, membershipstore.ErrNotFound) {
			return nil, ErrNotAMember
		}
		return nil, err
	}
	authorized := roles.CanAdoptDirectly(m.Role)

	col, err := s.contents.Collection(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	childID := primitive.NewObjectID()
	now := time.Now().UTC()

	err = txn.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) error {
		parent, err := s.contents.GetRawByID(sc, kind, parentID)
		if err != nil {
			if errors.Is(err, contentstore.ErrNotFound) {
				return fmt.Errorf("%w: content to adopt does not exist", ErrNotFound)
			}
			return err
		}

		child := cloneForAdoption(parent, childID, parentID, userID, target, authorized, now)

		if authorized {
			if err := annotateParent(sc, col, parentID, target, now); err != nil {
				return err
			}
		}
		_, err = col.InsertOne(sc, child)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
			return nil, err
		}
		s.log.Error("adoption transaction aborted",
			zap.String("kind", string(kind)),
			zap.String("parent", parentID.Hex()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: adoption could not be committed", ErrTransaction)
	}

	saved, err := s.contents.GetByID(ctx, kind, childID)
	if err != nil {
		return nil, err
	}
	return &Result{Item: saved, Message: statusMessage(saved.PublishedStatus, true)}, nil
}

// cloneForAdoption copies every field of the parent document, including
// kind-specific ones the store has no schema for, then rewrites
// identity, ownership, status, and adoption history for the child. The
// relevancy sets and view history ride along unchanged.
func cloneForAdoption(parent bson.M, childID, parentID, userID primitive.ObjectID, target OwnerContext, authorized bool, now time.Time) bson.M {
	child := make(bson.M, len(parent)+8)
	for k, v := range parent {
		child[k] = v
	}

	child["_id"] = childID
	child["created_by"] = userID
	child["adopted_from"] = parentID
	child["adopted_parent"] = parentID
	// The clone starts its own adoption history.
	child["adopted_clubs"] = bson.A{}
	child["adopted_nodes"] = bson.A{}
	child["created_at"] = now

	delete(child, "club")
	delete(child, "node")
	delete(child, "published_by")
	delete(child, "published_date")
	delete(child, "updated_at")

	if authorized {
		if target.Club != nil {
			child["club"] = *target.Club
		} else {
			child["node"] = *target.Node
		}
		child["published_status"] = string(models.StatusPublished)
		child["published_date"] = now
	} else {
		// Proposal-only copy: no owner context until publication.
		child["published_status"] = string(models.StatusProposed)
	}
	return child
}

// annotateParent appends the target to the parent's adoption history
// unless an entry for that club or node already exists. The guard lives
// in the filter, so re-adoption matches zero documents and writes
// nothing.
func annotateParent(ctx context.Context, col *mongo.Collection, parentID primitive.ObjectID, target OwnerContext, now time.Time) error {
	var field, guard string
	var entry bson.M
	if target.Club != nil {
		field, guard = "adopted_clubs", "adopted_clubs.club"
		entry = bson.M{"club": *target.Club, "date": now}
	} else {
		field, guard = "adopted_nodes", "adopted_nodes.node"
		entry = bson.M{"node": *target.Node, "date": now}
	}

	_, err := col.UpdateOne(ctx,
		bson.M{"_id": parentID, guard: bson.M{"$ne": target.EntityID()}},
		bson.M{"$push": bson.M{field: entry}},
	)
	return err
}
