// internal/domain/models/entityref.go
package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntityRef is a tagged reference to one content item of any kind.
// Comments and bookmarks use it instead of a dynamically interpreted
// reference path; resolution goes through the content store's kind
// dispatch table.
type EntityRef struct {
	Kind ContentKind        `bson:"kind" json:"kind"`
	ID   primitive.ObjectID `bson:"id" json:"id"`
}

var errBadEntityRef = errors.New("entity reference requires a known kind and a non-zero id")

// Validate checks the kind tag and the id.
func (r EntityRef) Validate() error {
	if !r.Kind.Valid() || r.ID.IsZero() {
		return errBadEntityRef
	}
	return nil
}
