// Package feedqueries provides the per-kind aggregation behind the
// club/node content feed: one facet pipeline per content kind that
// counts, pages, joins the creator, and normalizes kind-specific fields
// into a shared shape.
package feedqueries

import (
	"context"
	"time"

	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FeedEntry is one row of the merged feed, identical in shape across
// the three kinds that feed it.
type FeedEntry struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Type            string             `bson:"type" json:"type"`
	Title           string             `bson:"title" json:"title"`
	Significance    string             `bson:"significance" json:"significance"`
	PublishedStatus string             `bson:"published_status" json:"publishedStatus"`
	Files           []models.FileRef   `bson:"files" json:"files"`
	CreatorName     string             `bson:"creator_name" json:"creatorName"`
	CreatorEmail    string             `bson:"creator_email" json:"creatorEmail"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// KindPage is one kind's slice of the feed plus that kind's total match
// count.
type KindPage struct {
	Entries []FeedEntry
	Total   int64
}

// significanceFields maps each feed kind to the name its documents use
// for the significance text. The pipeline projects whichever exists
// into the shared "significance" field.
var significanceFields = map[models.ContentKind]string{
	models.KindDebate:  "significance_of_debate",
	models.KindIssue:   "significance_of_issue",
	models.KindProject: "significance_of_project",
}

// FetchKindPage runs one kind's feed query: count everything matching
// the owner context, then fetch one page sorted newest first with the
// creator joined in. The skip/limit window applies to this kind alone;
// the caller merges pages across kinds.
func FetchKindPage(ctx context.Context, db *mongo.Database, kind models.ContentKind, collection string, match bson.M, skip, limit int64) (KindPage, error) {
	var result KindPage

	sigField, ok := significanceFields[kind]
	if !ok {
		sigField = "significance"
	}

	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$facet", Value: bson.M{
			"totalCount": []bson.M{
				{"$count": "count"},
			},
			"data": dataPipeline(kind, sigField, skip, limit),
		}}},
	}

	cur, err := db.Collection(collection).Aggregate(ctx, pipe)
	if err != nil {
		return result, err
	}
	defer cur.Close(ctx)

	var aggResult struct {
		TotalCount []struct {
			Count int64 `bson:"count"`
		} `bson:"totalCount"`
		Data []FeedEntry `bson:"data"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&aggResult); err != nil {
			return result, err
		}
	}

	if len(aggResult.TotalCount) > 0 {
		result.Total = aggResult.TotalCount[0].Count
	}
	result.Entries = aggResult.Data
	if result.Entries == nil {
		result.Entries = []FeedEntry{}
	}
	return result, nil
}

func dataPipeline(kind models.ContentKind, sigField string, skip, limit int64) []bson.M {
	return []bson.M{
		{"$sort": bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}},
		{"$skip": skip},
		{"$limit": limit},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "created_by",
			"foreignField": "_id",
			"as":           "creator",
		}},
		{"$project": bson.M{
			"_id":              1,
			"title":            1,
			"published_status": 1,
			"created_at":       1,
			"type":             bson.M{"$literal": string(kind)},
			"significance": bson.M{"$ifNull": []interface{}{
				"$" + sigField,
				bson.M{"$ifNull": []interface{}{"$significance", ""}},
			}},
			// Older documents stored files as a non-array or omitted it.
			"files": bson.M{"$cond": bson.M{
				"if":   bson.M{"$isArray": "$files"},
				"then": "$files",
				"else": bson.A{},
			}},
			"creator_name": bson.M{"$ifNull": []interface{}{
				bson.M{"$concat": []interface{}{
					bson.M{"$arrayElemAt": []interface{}{"$creator.first_name", 0}},
					" ",
					bson.M{"$arrayElemAt": []interface{}{"$creator.last_name", 0}},
				}},
				"",
			}},
			"creator_email": bson.M{"$ifNull": []interface{}{
				bson.M{"$arrayElemAt": []interface{}{"$creator.email", 0}},
				"",
			}},
		}},
	}
}
