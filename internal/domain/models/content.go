// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentKind identifies one of the four content collections. Polymorphic
// references always carry a kind alongside the id; the store maps kinds to
// collections through a dispatch table rather than interpreting a reference
// path at query time.
type ContentKind string

const (
	KindDebate          ContentKind = "debate"
	KindIssue           ContentKind = "issue"
	KindProject         ContentKind = "project"
	KindRulesRegulation ContentKind = "rulesregulation"
)

// Valid reports whether k is one of the four known content kinds.
func (k ContentKind) Valid() bool {
	switch k {
	case KindDebate, KindIssue, KindProject, KindRulesRegulation:
		return true
	}
	return false
}

// PublishedStatus governs visibility and further mutation rights of a
// content item. Debates and issues only ever move between draft, proposed,
// and published; rules-regulations and projects additionally use
// olderversion, rejected, and archived.
type PublishedStatus string

const (
	StatusDraft        PublishedStatus = "draft"
	StatusProposed     PublishedStatus = "proposed"
	StatusPublished    PublishedStatus = "published"
	StatusOlderVersion PublishedStatus = "olderversion"
	StatusRejected     PublishedStatus = "rejected"
	StatusArchived     PublishedStatus = "archived"
)

// ClubAdoption records that a club adopted this item. Entries are appended
// once per club and never removed.
type ClubAdoption struct {
	ClubID primitive.ObjectID `bson:"club" json:"club"`
	Date   time.Time          `bson:"date" json:"date"`
}

// NodeAdoption records that a node adopted this item.
type NodeAdoption struct {
	NodeID primitive.ObjectID `bson:"node" json:"node"`
	Date   time.Time          `bson:"date" json:"date"`
}

// RelevancyVote is one user's vote in the relevant or irrelevant set.
// A user id appears in at most one of the two sets at any time.
type RelevancyVote struct {
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Date   time.Time          `bson:"date" json:"date"`
}

// ContentView marks that a user has seen the item. The set is append-only
// and idempotent per user.
type ContentView struct {
	UserID primitive.ObjectID `bson:"user" json:"user"`
}

// FileRef describes one stored attachment. The sequence on a content item
// matches the client-submitted file metadata positionally.
type FileRef struct {
	URL          string `bson:"url" json:"url"`
	OriginalName string `bson:"original_name" json:"originalName"`
	Mimetype     string `bson:"mimetype" json:"mimetype"`
	Size         int64  `bson:"size" json:"size"`
}

// ContentItem is the shared shape of the four content collections
// (debates, issues, projects, rulesregulations).
//
// Exactly one of Club/Node is set on an original item. An adopted copy
// created by a non-privileged member carries neither until it is attached
// on publication.
//
// Kind-specific fields (for example each kind's differently named
// significance field) ride along in Extra so an adoption clone preserves
// them without the store having to know every kind's schema.
type ContentItem struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title string             `bson:"title" json:"title"`
	Body  string             `bson:"body,omitempty" json:"body,omitempty"`

	Club *primitive.ObjectID `bson:"club,omitempty" json:"club,omitempty"`
	Node *primitive.ObjectID `bson:"node,omitempty" json:"node,omitempty"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`

	PublishedStatus PublishedStatus     `bson:"published_status" json:"publishedStatus"`
	PublishedBy     *primitive.ObjectID `bson:"published_by,omitempty" json:"publishedBy,omitempty"`
	PublishedDate   *time.Time          `bson:"published_date,omitempty" json:"publishedDate,omitempty"`

	AdoptedFrom   *primitive.ObjectID `bson:"adopted_from,omitempty" json:"adoptedFrom,omitempty"`
	AdoptedParent *primitive.ObjectID `bson:"adopted_parent,omitempty" json:"adoptedParent,omitempty"`
	AdoptedClubs  []ClubAdoption      `bson:"adopted_clubs" json:"adoptedClubs"`
	AdoptedNodes  []NodeAdoption      `bson:"adopted_nodes" json:"adoptedNodes"`

	Relevant   []RelevancyVote `bson:"relevant" json:"relevant"`
	Irrelevant []RelevancyVote `bson:"irrelevant" json:"irrelevant"`
	Views      []ContentView   `bson:"views" json:"views"`

	Files []FileRef `bson:"files" json:"files"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`

	Extra bson.M `bson:",inline" json:"-"`
}

// contentDocumentKeys are the struct-mapped document keys of
// ContentItem. An inline Extra entry under one of these names conflicts
// with the struct field at marshal time, so writers must keep them out
// of the map.
var contentDocumentKeys = map[string]bool{
	"_id":              true,
	"title":            true,
	"body":             true,
	"club":             true,
	"node":             true,
	"created_by":       true,
	"published_status": true,
	"published_by":     true,
	"published_date":   true,
	"adopted_from":     true,
	"adopted_parent":   true,
	"adopted_clubs":    true,
	"adopted_nodes":    true,
	"relevant":         true,
	"irrelevant":       true,
	"views":            true,
	"files":            true,
	"created_at":       true,
	"updated_at":       true,
}

// ReservedContentKey reports whether key names a struct-mapped field of
// ContentItem and therefore must not appear in Extra.
func ReservedContentKey(key string) bool {
	return contentDocumentKeys[key]
}

// InClub reports whether the item is owned by the given club.
func (c *ContentItem) InClub(id primitive.ObjectID) bool {
	return c.Club != nil && *c.Club == id
}

// InNode reports whether the item is owned by the given node.
func (c *ContentItem) InNode(id primitive.ObjectID) bool {
	return c.Node != nil && *c.Node == id
}

// AdoptedByClub reports whether the club already appears in the adoption
// history.
func (c *ContentItem) AdoptedByClub(id primitive.ObjectID) bool {
	for _, a := range c.AdoptedClubs {
		if a.ClubID == id {
			return true
		}
	}
	return false
}

// AdoptedByNode reports whether the node already appears in the adoption
// history.
func (c *ContentItem) AdoptedByNode(id primitive.ObjectID) bool {
	for _, a := range c.AdoptedNodes {
		if a.NodeID == id {
			return true
		}
	}
	return false
}
