// internal/domain/models/club.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club is one of the two ownership contexts for content. Clubs and nodes
// are structurally symmetric but stored as separate collections; callers
// must always know which of the two they are addressing.
type Club struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Name       string             `bson:"name" json:"name"`
	About      string             `bson:"about,omitempty" json:"about,omitempty"`
	ProfileURL string             `bson:"profile_url,omitempty" json:"profileUrl,omitempty"`
	CreatedBy  primitive.ObjectID `bson:"created_by" json:"createdBy"`
	IsPublic   bool               `bson:"is_public" json:"isPublic"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}
