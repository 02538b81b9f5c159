// internal/app/workflow/create.go
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/civichub/internal/app/store/memberships"
	"github.com/dalemusser/civichub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/civichub/internal/app/system/roles"
	"github.com/dalemusser/civichub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// FileUpload is one attachment submitted with a create request. Body is
// streamed to object storage; Size and Mimetype come from the client's
// file metadata and are recorded positionally on the saved item.
type FileUpload struct {
	Filename string
	Mimetype string
	Size     int64
	Body     io.Reader
}

// CreateInput is the payload for creating one content item of any kind.
// Extra carries kind-specific fields (each kind's significance field and
// the like) straight through to the document.
type CreateInput struct {
	Kind            models.ContentKind
	Title           string
	Body            string
	Club            *primitive.ObjectID
	Node            *primitive.ObjectID
	RequestedStatus models.PublishedStatus
	Files           []FileUpload
	Extra           bson.M
}

// Create validates ownership, checks membership, uploads attachments,
// computes the role-gated initial status, and persists the item.
//
// Status rules: a draft request is honored only for admins and
// moderators; everyone else is forced to proposed. A non-draft request
// from an admin or moderator publishes immediately and stamps
// publishedBy; plain members always land in proposed.
func (s *Service) Create(ctx context.Context, in CreateInput, userID primitive.ObjectID) (*Result, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrValidation, in.Kind)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	owner := OwnerContext{Club: in.Club, Node: in.Node}
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	m, err := s.memberships.Find(ctx, owner.EntityType(), owner.EntityID(), userID)
	if err != nil {
		if errors.Is(err, membershipstore.ErrNotFound) {
			return nil, ErrNotAMember
		}
		return nil, err
	}

	files, err := s.uploadAll(ctx, string(in.Kind), in.Files)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &models.ContentItem{
		Title:     strings.TrimSpace(in.Title),
		Body:      htmlsanitize.Sanitize(in.Body),
		Club:      in.Club,
		Node:      in.Node,
		CreatedBy: userID,
		Files:     files,
		Extra:     in.Extra,
	}

	switch {
	case in.RequestedStatus == models.StatusDraft && roles.CanKeepDraft(m.Role):
		item.PublishedStatus = models.StatusDraft
	case in.RequestedStatus == models.StatusDraft:
		// Non-privileged members never get a silent draft.
		item.PublishedStatus = models.StatusProposed
	case roles.CanAutoPublish(m.Role):
		item.PublishedStatus = models.StatusPublished
		item.PublishedBy = &userID
		item.PublishedDate = &now
	default:
		item.PublishedStatus = models.StatusProposed
	}

	saved, err := s.contents.Create(ctx, in.Kind, item)
	if err != nil {
		return nil, err
	}
	return &Result{Item: saved, Message: statusMessage(saved.PublishedStatus, false)}, nil
}

// uploadAll streams every attachment to object storage concurrently and
// assembles the files sequence in submission order. Any single failure
// fails the batch; already-uploaded files are not rolled back (object
// storage sits outside the transactional boundary).
func (s *Service) uploadAll(ctx context.Context, contextTag string, ups []FileUpload) ([]models.FileRef, error) {
	if len(ups) == 0 {
		return []models.FileRef{}, nil
	}

	refs := make([]models.FileRef, len(ups))
	errs := make([]error, len(ups))

	var wg sync.WaitGroup
	for i, up := range ups {
		wg.Add(1)
		go func(i int, up FileUpload) {
			defer wg.Done()
			url, err := s.uploader.Upload(ctx, up.Filename, up.Mimetype, contextTag, up.Body)
			if err != nil {
				errs[i] = err
				return
			}
			refs[i] = models.FileRef{
				URL:          url,
				OriginalName: up.Filename,
				Mimetype:     up.Mimetype,
				Size:         up.Size,
			}
		}(i, up)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.log.Error("file upload failed", zap.Error(err))
			return nil, fmt.Errorf("%w: file upload failed", ErrUpstream)
		}
	}
	return refs, nil
}
