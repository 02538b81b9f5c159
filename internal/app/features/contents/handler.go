// internal/app/features/contents/handler.go

// Package contents exposes the content lifecycle over HTTP: creation,
// adoption, publication, relevancy votes, views, and per-kind listings
// for the four content kinds.
package contents

import (
	"fmt"

	"github.com/dalemusser/civichub/internal/app/relevancy"
	"github.com/dalemusser/civichub/internal/app/store/contents"
	"github.com/dalemusser/civichub/internal/app/system/uploads"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the workflow service and relevancy ledger the content
// endpoints delegate to.
type Handler struct {
	Svc    *workflow.Service
	Ledger *relevancy.Ledger
	Log    *zap.Logger
}

func NewHandler(client *mongo.Client, db *mongo.Database, uploader uploads.Uploader, log *zap.Logger) *Handler {
	svc := workflow.New(client, db, uploader, log)
	return &Handler{
		Svc:    svc,
		Ledger: relevancy.NewWithStore(svc.Contents()),
		Log:    log,
	}
}

// kindFromParam validates the {kind} URL segment.
func kindFromParam(raw string) (models.ContentKind, error) {
	kind := models.ContentKind(raw)
	if !kind.Valid() {
		return "", fmt.Errorf("%w: unknown content kind %q", workflow.ErrValidation, raw)
	}
	return kind, nil
}

// idFromParam validates an ObjectID URL segment, distinguishing a
// malformed id (400) from a missing document (404).
func idFromParam(raw string) (primitive.ObjectID, error) {
	id, err := contentstore.ParseID(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id %q", workflow.ErrValidation, raw)
	}
	return id, nil
}
