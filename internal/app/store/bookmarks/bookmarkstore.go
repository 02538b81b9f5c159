// internal/app/store/bookmarks/bookmarkstore.go
package bookmarkstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/civichub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound means no bookmark exists for the user/entity pair.
	ErrNotFound = errors.New("bookmark not found")
	// ErrDuplicate means the user has already bookmarked the entity.
	ErrDuplicate = errors.New("entity is already bookmarked")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bookmarks")}
}

// Add records a bookmark. Duplicate pairs are rejected by the unique index.
func (s *Store) Add(ctx context.Context, userID primitive.ObjectID, entity models.EntityRef) (models.Bookmark, error) {
	if err := entity.Validate(); err != nil {
		return models.Bookmark{}, err
	}
	b := models.Bookmark{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Entity:    entity,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Bookmark{}, ErrDuplicate
		}
		return models.Bookmark{}, err
	}
	return b, nil
}

// Remove deletes the user's bookmark for an entity.
func (s *Store) Remove(ctx context.Context, userID primitive.ObjectID, entity models.EntityRef) error {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"user":        userID,
		"entity.kind": entity.Kind,
		"entity.id":   entity.ID,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForUser returns the user's bookmarks, newest first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Bookmark, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Bookmark
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
