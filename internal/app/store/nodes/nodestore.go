// internal/app/store/nodes/nodestore.go
package nodestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound means no node exists with the given id.
var ErrNotFound = errors.New("node not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("nodes")}
}

// Create inserts a new node.
func (s *Store) Create(ctx context.Context, node models.Node) (models.Node, error) {
	node.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	node.CreatedAt = now
	node.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, node); err != nil {
		return models.Node{}, err
	}
	return node, nil
}

// GetByID loads a node by id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Node, error) {
	var node models.Node
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&node)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// ListByIDs loads the nodes with the given ids, keyed by id.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Node, error) {
	out := make(map[primitive.ObjectID]models.Node, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var node models.Node
		if err := cur.Decode(&node); err != nil {
			return nil, err
		}
		out[node.ID] = node
	}
	return out, cur.Err()
}
