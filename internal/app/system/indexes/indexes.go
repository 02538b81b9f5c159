// internal/app/system/indexes/indexes.go

// Package indexes creates the indexes the application relies on.
// EnsureAll is called at startup; every ensure function is idempotent and
// errors are aggregated so a single failure cannot hide the rest.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureMemberships(ctx, db); err != nil {
		problems = append(problems, "memberships: "+err.Error())
	}
	if err := ensureContents(ctx, db); err != nil {
		problems = append(problems, "contents: "+err.Error())
	}
	if err := ensureComments(ctx, db); err != nil {
		problems = append(problems, "comments: "+err.Error())
	}
	if err := ensureBookmarks(ctx, db); err != nil {
		problems = append(problems, "bookmarks: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func create(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
	return err
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "users", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "user_name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_name"),
		},
	})
}

// One membership document per (entity, user); removal is a status
// transition, never a delete, so the unique index holds for a user's
// whole history with an entity.
func ensureMemberships(ctx context.Context, db *mongo.Database) error {
	if err := create(ctx, db, "clubmembers", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "club", Value: 1}, {Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_club_user"),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("user_status"),
		},
	}); err != nil {
		return err
	}
	return create(ctx, db, "nodemembers", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "node", Value: 1}, {Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_node_user"),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("user_status"),
		},
	})
}

// The feed reads each content collection by owner context ordered by
// recency, so each collection gets (club, created_at) and
// (node, created_at) indexes.
func ensureContents(ctx context.Context, db *mongo.Database) error {
	for _, coll := range []string{"debates", "issues", "projects", "rulesregulations"} {
		if err := create(ctx, db, coll, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "club", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("club_created"),
			},
			{
				Keys:    bson.D{{Key: "node", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("node_created"),
			},
			{
				Keys:    bson.D{{Key: "title", Value: 1}},
				Options: options.Index().SetName("title"),
			},
		}); err != nil {
			return err
		}
	}
	return nil
}

func ensureComments(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "comments", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "entity.kind", Value: 1}, {Key: "entity.id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("entity_created"),
		},
	})
}

func ensureBookmarks(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "bookmarks", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "entity.kind", Value: 1}, {Key: "entity.id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_entity"),
		},
	})
}
