// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user document and returns it.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, lastName, email string) models.User {
	f.t.Helper()
	u := models.User{
		ID:        primitive.NewObjectID(),
		FirstName: firstName,
		LastName:  lastName,
		UserName:  email,
		Email:     email,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("fixture user: %v", err)
	}
	return u
}

// CreateClub inserts a club and returns it.
func (f *Fixtures) CreateClub(ctx context.Context, name string, createdBy primitive.ObjectID) models.Club {
	f.t.Helper()
	c := models.Club{
		ID:        primitive.NewObjectID(),
		Name:      name,
		IsPublic:  true,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("clubs").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("fixture club: %v", err)
	}
	return c
}

// CreateNode inserts a node and returns it.
func (f *Fixtures) CreateNode(ctx context.Context, name string, createdBy primitive.ObjectID) models.Node {
	f.t.Helper()
	n := models.Node{
		ID:        primitive.NewObjectID(),
		Name:      name,
		IsPublic:  true,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("nodes").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("fixture node: %v", err)
	}
	return n
}

// CreateClubMember binds a user to a club with the given role and
// status.
func (f *Fixtures) CreateClubMember(ctx context.Context, clubID, userID primitive.ObjectID, role, status string) models.ClubMember {
	f.t.Helper()
	m := models.ClubMember{
		ID:        primitive.NewObjectID(),
		ClubID:    clubID,
		UserID:    userID,
		Role:      role,
		Status:    status,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("clubmembers").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("fixture club member: %v", err)
	}
	return m
}

// CreateNodeMember binds a user to a node with the given role and
// status.
func (f *Fixtures) CreateNodeMember(ctx context.Context, nodeID, userID primitive.ObjectID, role, status string) models.NodeMember {
	f.t.Helper()
	m := models.NodeMember{
		ID:        primitive.NewObjectID(),
		NodeID:    nodeID,
		UserID:    userID,
		Role:      role,
		Status:    status,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("nodemembers").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("fixture node member: %v", err)
	}
	return m
}

// CreateContent inserts a content item of the given kind directly,
// bypassing the workflow. Collection names mirror the store's kind
// dispatch.
func (f *Fixtures) CreateContent(ctx context.Context, kind models.ContentKind, item models.ContentItem) models.ContentItem {
	f.t.Helper()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
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

	collection := map[models.ContentKind]string{
		models.KindDebate:          "debates",
		models.KindIssue:           "issues",
		models.KindProject:         "projects",
		models.KindRulesRegulation: "rulesregulations",
	}[kind]
	if collection == "" {
		f.t.Fatalf("fixture content: unknown kind %q", kind)
	}
	if _, err := f.db.Collection(collection).InsertOne(ctx, item); err != nil {
		f.t.Fatalf("fixture content: %v", err)
	}
	return item
}

// CreateDebate inserts a published debate owned by a club.
func (f *Fixtures) CreateDebate(ctx context.Context, clubID, createdBy primitive.ObjectID, title string) models.ContentItem {
	f.t.Helper()
	return f.CreateContent(ctx, models.KindDebate, models.ContentItem{
		Title:           title,
		Club:            &clubID,
		CreatedBy:       createdBy,
		PublishedStatus: models.StatusPublished,
	})
}
