// internal/app/feed/feed.go

// Package feed merges debates, issues, and projects belonging to one
// club or node into a single paginated stream sorted newest first.
// Rules-regulations have their own listing and are not part of this
// feed.
package feed

import (
	"context"
	"sort"

	"github.com/dalemusser/civichub/internal/app/store/queries/feedqueries"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Page is one page of the merged feed. Total is the sum of the three
// per-kind match counts.
type Page struct {
	Items   []feedqueries.FeedEntry `json:"items"`
	Total   int64                   `json:"total"`
	Page    int64                   `json:"page"`
	Limit   int64                   `json:"limit"`
	HasMore bool                    `json:"hasMore"`
}

type Feed struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Feed {
	return &Feed{db: db}
}

var feedKinds = []struct {
	kind       models.ContentKind
	collection string
}{
	{models.KindDebate, "debates"},
	{models.KindIssue, "issues"},
	{models.KindProject, "projects"},
}

// Get assembles one feed page for a club or node.
//
// Each kind is paged independently with the same skip/limit window and
// the three pages are merged, re-sorted by creation time, and truncated
// to limit. A page boundary that splits unevenly across kinds can
// therefore return fewer than limit items or skip items a true global
// sort would include. Known approximation, kept as-is.
func (f *Feed) Get(ctx context.Context, owner workflow.OwnerContext, page, limit int64) (*Page, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	skip := (page - 1) * limit

	match := bson.M{}
	if owner.Club != nil {
		match["club"] = *owner.Club
	} else {
		match["node"] = *owner.Node
	}

	out := &Page{
		Items: []feedqueries.FeedEntry{},
		Page:  page,
		Limit: limit,
	}
	for _, fk := range feedKinds {
		kp, err := feedqueries.FetchKindPage(ctx, f.db, fk.kind, fk.collection, match, skip, limit)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, kp.Entries...)
		out.Total += kp.Total
	}

	sort.SliceStable(out.Items, func(i, j int) bool {
		return out.Items[i].CreatedAt.After(out.Items[j].CreatedAt)
	})
	if int64(len(out.Items)) > limit {
		out.Items = out.Items[:limit]
	}
	out.HasMore = skip+limit < out.Total
	return out, nil
}
