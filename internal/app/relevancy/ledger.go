// internal/app/relevancy/ledger.go

// Package relevancy maintains the mutually exclusive relevant/irrelevant
// vote sets on content items. A user id lives in at most one of the two
// sets; voting for one side always clears the other, and voting for the
// side you are already on removes the vote entirely.
package relevancy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/civichub/internal/app/store/contents"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Action selects which of the two vote sets a call targets.
type Action string

const (
	ActionLike    Action = "like"
	ActionDislike Action = "dislike"
)

type Ledger struct {
	contents *contentstore.Store
}

func New(db *mongo.Database) *Ledger {
	return &Ledger{contents: contentstore.New(db)}
}

// NewWithStore shares an existing content store.
func NewWithStore(contents *contentstore.Store) *Ledger {
	return &Ledger{contents: contents}
}

// Set toggles the user's vote on an item and returns the updated item.
//
// The presence check and the write are two steps, so two racing calls by
// the same user are not atomic; distinct users touch distinct entries
// and commute. Items written before the vote fields existed get both
// sets initialized to empty on first touch.
func (l *Ledger) Set(ctx context.Context, kind models.ContentKind, itemID, userID primitive.ObjectID, action Action) (*models.ContentItem, error) {
	if action != ActionLike && action != ActionDislike {
		return nil, fmt.Errorf("%w: action must be like or dislike", workflow.ErrValidation)
	}

	col, err := l.contents.Collection(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown content kind %q", workflow.ErrNotFound, kind)
	}

	raw, err := l.contents.GetRawByID(ctx, kind, itemID)
	if err != nil {
		if errors.Is(err, contentstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: content does not exist", workflow.ErrNotFound)
		}
		return nil, err
	}

	if err := l.initMissingSets(ctx, col, itemID, raw); err != nil {
		return nil, err
	}

	target, opposite := "relevant", "irrelevant"
	if action == ActionDislike {
		target, opposite = opposite, target
	}

	pull := bson.M{opposite: bson.M{"user": userID}}
	update := bson.M{"$pull": pull}
	if setContainsUser(raw[target], userID) {
		// Already voted this way: the toggle removes the vote.
		pull[target] = bson.M{"user": userID}
	} else {
		update["$push"] = bson.M{target: bson.M{"user": userID, "date": time.Now().UTC()}}
	}

	var item models.ContentItem
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": itemID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: content does not exist", workflow.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// initMissingSets backfills absent relevant/irrelevant fields with empty
// arrays. One-time migration-on-read for pre-vote documents; a no-op on
// the steady-state path.
func (l *Ledger) initMissingSets(ctx context.Context, col *mongo.Collection, itemID primitive.ObjectID, raw bson.M) error {
	init := bson.M{}
	if _, ok := raw["relevant"]; !ok {
		init["relevant"] = bson.A{}
	}
	if _, ok := raw["irrelevant"]; !ok {
		init["irrelevant"] = bson.A{}
	}
	if len(init) == 0 {
		return nil
	}
	_, err := col.UpdateOne(ctx, bson.M{"_id": itemID}, bson.M{"$set": init})
	return err
}

// setContainsUser reports whether a decoded vote array holds an entry
// for userID. Entries arrive as bson.M or bson.D depending on how the
// document was decoded.
func setContainsUser(v interface{}, userID primitive.ObjectID) bool {
	arr, ok := v.(primitive.A)
	if !ok {
		return false
	}
	for _, e := range arr {
		switch entry := e.(type) {
		case bson.M:
			if id, ok := entry["user"].(primitive.ObjectID); ok && id == userID {
				return true
			}
		case bson.D:
			for _, el := range entry {
				if el.Key != "user" {
					continue
				}
				if id, ok := el.Value.(primitive.ObjectID); ok && id == userID {
					return true
				}
			}
		}
	}
	return false
}
