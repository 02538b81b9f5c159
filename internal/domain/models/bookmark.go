// internal/domain/models/bookmark.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark saves one content item for one user. A unique compound index
// on (user, entity.kind, entity.id) makes adds idempotent.
type Bookmark struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Entity    EntityRef          `bson:"entity" json:"entity"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
