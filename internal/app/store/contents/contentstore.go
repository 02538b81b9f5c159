// internal/app/store/contents/contentstore.go

// Package contentstore persists the four content collections behind one
// kind-dispatched API. It enforces nothing about membership; authorization
// is the workflow's job.
package contentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound means the id is well-formed but no document exists.
	// Callers map this to 404 semantics.
	ErrNotFound = errors.New("content not found")
	// ErrInvalidID means the id could not be parsed. Callers map this to
	// 400 semantics, never 404.
	ErrInvalidID = errors.New("malformed content id")
	// ErrUnknownKind means the kind tag is not one of the four content
	// kinds.
	ErrUnknownKind = errors.New("unknown content kind")
)

// collections is the kind dispatch table. Polymorphic references resolve
// through this map, never through a dynamically interpreted path.
var collections = map[models.ContentKind]string{
	models.KindDebate:          "debates",
	models.KindIssue:           "issues",
	models.KindProject:         "projects",
	models.KindRulesRegulation: "rulesregulations",
}

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Collection returns the mongo collection backing a kind.
func (s *Store) Collection(kind models.ContentKind) (*mongo.Collection, error) {
	name, ok := collections[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return s.db.Collection(name), nil
}

// ParseID converts a hex id, reporting ErrInvalidID for malformed input
// so callers can distinguish 400 from 404.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// Create inserts a new item, initializing the set-valued fields so later
// array operators never hit a missing field on items created here.
func (s *Store) Create(ctx context.Context, kind models.ContentKind, item *models.ContentItem) (*models.ContentItem, error) {
	c, err := s.Collection(kind)
	if err != nil {
		return nil, err
	}

	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now().UTC()
	if item.AdoptedClubs == nil {
		item.AdoptedClubs = []models.ClubAdoption{}
	}
	if item.AdoptedNodes == nil {
		item.AdoptedNodes = []models.NodeAdoption{}
	}
	if item.Relevant == nil {
		item.Relevant = []models.RelevancyVote{}
	}
	if item.Irrelevant == nil {
		item.Irrelevant = []models.RelevancyVote{}
	}
	if item.Views == nil {
		item.Views = []models.ContentView{}
	}
	if item.Files == nil {
		item.Files = []models.FileRef{}
	}

	if _, err := c.InsertOne(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID loads one item.
func (s *Store) GetByID(ctx context.Context, kind models.ContentKind, id primitive.ObjectID) (*models.ContentItem, error) {
	c, err := s.Collection(kind)
	if err != nil {
		return nil, err
	}

	var item models.ContentItem
	err = c.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetRawByID loads one item as a raw document. The adoption clone uses
// this so kind-specific fields survive without the store knowing every
// kind's schema.
func (s *Store) GetRawByID(ctx context.Context, kind models.ContentKind, id primitive.ObjectID) (bson.M, error) {
	c, err := s.Collection(kind)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	err = c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// List returns items matching filter, newest first.
func (s *Store) List(ctx context.Context, kind models.ContentKind, filter bson.M) ([]models.ContentItem, error) {
	c, err := s.Collection(kind)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.ContentItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateFields applies a partial $set and returns the updated item.
func (s *Store) UpdateFields(ctx context.Context, kind models.ContentKind, id primitive.ObjectID, set bson.M) (*models.ContentItem, error) {
	c, err := s.Collection(kind)
	if err != nil {
		return nil, err
	}

	set["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.ContentItem
	err = c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SearchByTitle finds items whose title matches q case-insensitively.
func (s *Store) SearchByTitle(ctx context.Context, kind models.ContentKind, q string, limit int64) ([]models.ContentItem, error) {
	c, err := s.Collection(kind)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := c.Find(ctx, bson.M{
		"title": bson.M{"$regex": primitive.Regex{Pattern: q, Options: "i"}},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.ContentItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkViewed records that a user has seen the item. $addToSet keeps the
// views set idempotent per user.
func (s *Store) MarkViewed(ctx context.Context, kind models.ContentKind, id, userID primitive.ObjectID) error {
	c, err := s.Collection(kind)
	if err != nil {
		return err
	}

	res, err := c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"views": bson.M{"user": userID}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether an item of the given kind exists. Comments and
// bookmarks use it to validate their tagged references.
func (s *Store) Exists(ctx context.Context, ref models.EntityRef) (bool, error) {
	c, err := s.Collection(ref.Kind)
	if err != nil {
		return false, err
	}
	err = c.FindOne(ctx, bson.M{"_id": ref.ID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
