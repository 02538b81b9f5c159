package bookmarkstore_test

import (
	"errors"
	"testing"

	bookmarkstore "github.com/dalemusser/civichub/internal/app/store/bookmarks"
	"github.com/dalemusser/civichub/internal/app/system/indexes"
	"github.com/dalemusser/civichub/internal/domain/models"
	"github.com/dalemusser/civichub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddRemoveList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	store := bookmarkstore.New(db)

	user := primitive.NewObjectID()
	debate := models.EntityRef{Kind: models.KindDebate, ID: primitive.NewObjectID()}
	issue := models.EntityRef{Kind: models.KindIssue, ID: primitive.NewObjectID()}

	if _, err := store.Add(ctx, user, debate); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, user, issue); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, user, debate); !errors.Is(err, bookmarkstore.ErrDuplicate) {
		t.Errorf("repeat Add: error = %v, want ErrDuplicate", err)
	}
	// A different user may bookmark the same entity.
	if _, err := store.Add(ctx, primitive.NewObjectID(), debate); err != nil {
		t.Errorf("Add by other user: %v", err)
	}

	got, err := store.ListForUser(ctx, user)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d bookmarks, want 2", len(got))
	}

	if err := store.Remove(ctx, user, debate); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(ctx, user, debate); !errors.Is(err, bookmarkstore.ErrNotFound) {
		t.Errorf("second Remove: error = %v, want ErrNotFound", err)
	}
}

func TestAddValidatesEntity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bookmarkstore.New(db)

	if _, err := store.Add(ctx, primitive.NewObjectID(), models.EntityRef{Kind: "poll", ID: primitive.NewObjectID()}); err == nil {
		t.Error("expected an error for an unknown entity kind")
	}
}
