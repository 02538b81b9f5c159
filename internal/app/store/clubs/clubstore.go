// internal/app/store/clubs/clubstore.go
package clubstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound means no club exists with the given id.
var ErrNotFound = errors.New("club not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clubs")}
}

// Create inserts a new club.
func (s *Store) Create(ctx context.Context, club models.Club) (models.Club, error) {
	club.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	club.CreatedAt = now
	club.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, club); err != nil {
		return models.Club{}, err
	}
	return club, nil
}

// GetByID loads a club by id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Club, error) {
	var club models.Club
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&club)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// ListByIDs loads the clubs with the given ids, keyed by id for callers
// that annotate membership lists with display names.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Club, error) {
	out := make(map[primitive.ObjectID]models.Club, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var club models.Club
		if err := cur.Decode(&club); err != nil {
			return nil, err
		}
		out[club.ID] = club
	}
	return out, cur.Err()
}
