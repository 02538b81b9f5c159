package commentstore_test

import (
	"errors"
	"fmt"
	"testing"

	commentstore "github.com/dalemusser/civichub/internal/app/store/comments"
	"github.com/dalemusser/civichub/internal/domain/models"
	"github.com/dalemusser/civichub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndListByEntity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := commentstore.New(db)

	debate := models.EntityRef{Kind: models.KindDebate, ID: primitive.NewObjectID()}
	other := models.EntityRef{Kind: models.KindIssue, ID: primitive.NewObjectID()}

	for i := 0; i < 3; i++ {
		if _, err := store.Create(ctx, models.Comment{
			Entity: debate,
			UserID: primitive.NewObjectID(),
			Text:   fmt.Sprintf("comment %d", i),
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := store.Create(ctx, models.Comment{Entity: other, UserID: primitive.NewObjectID(), Text: "elsewhere"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.ListByEntity(ctx, debate, 0)
	if err != nil {
		t.Fatalf("ListByEntity: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d comments, want 3", len(got))
	}

	limited, err := store.ListByEntity(ctx, debate, 2)
	if err != nil {
		t.Fatalf("ListByEntity: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited list has %d comments, want 2", len(limited))
	}
}

func TestCreateValidatesEntity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := commentstore.New(db)

	_, err := store.Create(ctx, models.Comment{
		Entity: models.EntityRef{Kind: "poll", ID: primitive.NewObjectID()},
		UserID: primitive.NewObjectID(),
		Text:   "hm",
	})
	if err == nil {
		t.Error("expected an error for an unknown entity kind")
	}
	_, err = store.Create(ctx, models.Comment{
		Entity: models.EntityRef{Kind: models.KindDebate},
		UserID: primitive.NewObjectID(),
		Text:   "hm",
	})
	if err == nil {
		t.Error("expected an error for a zero entity id")
	}
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := commentstore.New(db)

	owner := primitive.NewObjectID()
	cm, err := store.Create(ctx, models.Comment{
		Entity: models.EntityRef{Kind: models.KindProject, ID: primitive.NewObjectID()},
		UserID: owner,
		Text:   "mine",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Delete(ctx, cm.ID, primitive.NewObjectID()); !errors.Is(err, commentstore.ErrNotFound) {
		t.Errorf("delete by non-owner: error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, cm.ID, owner); err != nil {
		t.Errorf("delete by owner: %v", err)
	}
	if err := store.Delete(ctx, cm.ID, owner); !errors.Is(err, commentstore.ErrNotFound) {
		t.Errorf("second delete: error = %v, want ErrNotFound", err)
	}
}
