// internal/domain/models/membership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntityType names which of the two membership collections a lookup
// targets. There is no polymorphic lookup across the two; callers must
// already know whether they are checking a club or a node.
type EntityType string

const (
	EntityClub EntityType = "club"
	EntityNode EntityType = "node"
)

// Valid reports whether t is "club" or "node".
func (t EntityType) Valid() bool {
	return t == EntityClub || t == EntityNode
}

// Membership roles. Role checks are centralized in the roles package;
// handlers and services never compare against ad-hoc string lists.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleMember    = "member"
)

// Membership statuses. Removal is modeled as a status transition; the
// membership document itself is never hard-deleted.
const (
	StatusRequested = "REQUESTED"
	StatusAccepted  = "ACCEPTED"
	StatusRejectedM = "REJECTED"
	StatusBlocked   = "BLOCKED"
	StatusMember    = "MEMBER"
)

// ClubMember binds a user to a club. One document per (club, user),
// enforced by a unique compound index.
type ClubMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID    primitive.ObjectID `bson:"club" json:"club"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// NodeMember binds a user to a node. One document per (node, user).
type NodeMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NodeID    primitive.ObjectID `bson:"node" json:"node"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Membership is the normalized view the directory returns for
// authorization decisions, regardless of which collection it came from.
type Membership struct {
	EntityType EntityType
	EntityID   primitive.ObjectID
	UserID     primitive.ObjectID
	Role       string
	Status     string
}

// IsActiveMember reports whether the membership has completed the join
// flow (status MEMBER).
func (m Membership) IsActiveMember() bool {
	return m.Status == StatusMember
}
