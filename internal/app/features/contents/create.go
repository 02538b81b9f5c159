// internal/app/features/contents/create.go
package contents

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/limits"
	"github.com/dalemusser/civichub/internal/app/system/respond"
	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/dalemusser/civichub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// reservedFields are the create-request fields with dedicated handling.
// Everything else in the form or JSON body passes through as a
// kind-specific field on the document, except keys that would collide
// with the document's own fields (models.ReservedContentKey); those are
// dropped so a stray "published_status" or "created_by" in the body
// cannot shadow a struct-mapped key or break the insert.
var reservedFields = map[string]bool{
	"title":  true,
	"body":   true,
	"club":   true,
	"node":   true,
	"status": true,
	"files":  true,
}

// HandleCreate handles POST /contents/{kind}.
//
// Accepts multipart form data (with attachments under "files") or a
// JSON body. Exactly one of club/node must name the owning context.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	kind, err := kindFromParam(chi.URLParam(r, "kind"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	var in workflow.CreateInput
	var closers []multipart.File
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		in, closers, err = parseMultipartCreate(r)
	} else {
		in, err = parseJSONCreate(w, r)
	}
	for _, f := range closers {
		defer f.Close()
	}
	if err != nil {
		respond.Error(w, err)
		return
	}
	in.Kind = kind

	result, err := h.Svc.Create(r.Context(), in, userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, result)
}

func parseMultipartCreate(r *http.Request) (workflow.CreateInput, []multipart.File, error) {
	var in workflow.CreateInput
	if err := r.ParseMultipartForm(limits.MaxUploadMemory); err != nil {
		return in, nil, fmt.Errorf("%w: malformed multipart body", workflow.ErrValidation)
	}

	in.Title = r.FormValue("title")
	in.Body = r.FormValue("body")
	in.RequestedStatus = models.PublishedStatus(r.FormValue("status"))

	var err error
	if in.Club, err = optionalID(r.FormValue("club")); err != nil {
		return in, nil, err
	}
	if in.Node, err = optionalID(r.FormValue("node")); err != nil {
		return in, nil, err
	}

	in.Extra = bson.M{}
	for key, vals := range r.MultipartForm.Value {
		if reservedFields[key] || models.ReservedContentKey(key) || len(vals) == 0 {
			continue
		}
		in.Extra[key] = vals[0]
	}

	var closers []multipart.File
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			return in, closers, fmt.Errorf("%w: unreadable upload %q", workflow.ErrValidation, fh.Filename)
		}
		closers = append(closers, f)
		in.Files = append(in.Files, workflow.FileUpload{
			Filename: fh.Filename,
			Mimetype: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Body:     f,
		})
	}
	return in, closers, nil
}

func parseJSONCreate(w http.ResponseWriter, r *http.Request) (workflow.CreateInput, error) {
	var in workflow.CreateInput

	var body map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)).Decode(&body); err != nil {
		return in, fmt.Errorf("%w: malformed JSON body", workflow.ErrValidation)
	}

	in.Title, _ = body["title"].(string)
	in.Body, _ = body["body"].(string)
	if s, ok := body["status"].(string); ok {
		in.RequestedStatus = models.PublishedStatus(s)
	}

	var err error
	if s, ok := body["club"].(string); ok {
		if in.Club, err = optionalID(s); err != nil {
			return in, err
		}
	}
	if s, ok := body["node"].(string); ok {
		if in.Node, err = optionalID(s); err != nil {
			return in, err
		}
	}

	in.Extra = bson.M{}
	for key, val := range body {
		if reservedFields[key] || models.ReservedContentKey(key) {
			continue
		}
		in.Extra[key] = val
	}
	return in, nil
}

// optionalID parses a hex ObjectID form value; empty means absent.
func optionalID(raw string) (*primitive.ObjectID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed id %q", workflow.ErrValidation, raw)
	}
	return &id, nil
}
