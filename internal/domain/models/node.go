// internal/domain/models/node.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Node is an interest group; the second ownership context for content.
type Node struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Name       string             `bson:"name" json:"name"`
	About      string             `bson:"about,omitempty" json:"about,omitempty"`
	ProfileURL string             `bson:"profile_url,omitempty" json:"profileUrl,omitempty"`
	CreatedBy  primitive.ObjectID `bson:"created_by" json:"createdBy"`
	IsPublic   bool               `bson:"is_public" json:"isPublic"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}
