package bookmarks_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/civichub/internal/app/features/bookmarks"
	"github.com/dalemusser/civichub/internal/app/system/indexes"
	"github.com/dalemusser/civichub/internal/domain/models"
	"github.com/dalemusser/civichub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func send(h *bookmarks.Handler, method string, fn func(http.ResponseWriter, *http.Request), userID primitive.ObjectID, kind, id string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"kind": kind, "id": id})
	r := httptest.NewRequest(method, "/bookmarks", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r = testutil.SignedIn(r, userID)
	w := httptest.NewRecorder()
	fn(w, r)
	return w
}

func TestHandleAddRemoveList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	f := testutil.NewFixtures(t, db)
	h := bookmarks.NewHandler(db, zap.NewNop())

	user := f.CreateUser(ctx, "Avery", "Ng", "avery@test.local")
	club := f.CreateClub(ctx, "River Cleanup", user.ID)
	debate := f.CreateDebate(ctx, club.ID, user.ID, "Curbside composting")

	w := send(h, http.MethodPost, h.HandleAdd, user.ID, "debate", debate.ID.Hex())
	if w.Code != http.StatusCreated {
		t.Fatalf("add: status = %d, body = %s", w.Code, w.Body.String())
	}
	var bm models.Bookmark
	if err := json.Unmarshal(w.Body.Bytes(), &bm); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if bm.UserID != user.ID || bm.Entity.ID != debate.ID {
		t.Errorf("bookmark = %+v", bm)
	}

	// Repeat add trips the unique index.
	if w := send(h, http.MethodPost, h.HandleAdd, user.ID, "debate", debate.ID.Hex()); w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate add: status = %d, want 400", w.Code)
	}

	r := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
	r = testutil.SignedIn(r, user.ID)
	lw := httptest.NewRecorder()
	h.HandleList(lw, r)
	if lw.Code != http.StatusOK {
		t.Fatalf("list: status = %d", lw.Code)
	}
	var listed []models.Bookmark
	if err := json.Unmarshal(lw.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d bookmarks, want 1", len(listed))
	}

	if w := send(h, http.MethodDelete, h.HandleRemove, user.ID, "debate", debate.ID.Hex()); w.Code != http.StatusOK {
		t.Fatalf("remove: status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := send(h, http.MethodDelete, h.HandleRemove, user.ID, "debate", debate.ID.Hex()); w.Code != http.StatusNotFound {
		t.Fatalf("second remove: status = %d, want 404", w.Code)
	}
}

func TestHandleAddValidatesTarget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)
	h := bookmarks.NewHandler(db, zap.NewNop())

	user := f.CreateUser(ctx, "Avery", "Ng", "avery@test.local")

	if w := send(h, http.MethodPost, h.HandleAdd, user.ID, "memo", primitive.NewObjectID().Hex()); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown kind: status = %d, want 400", w.Code)
	}
	if w := send(h, http.MethodPost, h.HandleAdd, user.ID, "debate", primitive.NewObjectID().Hex()); w.Code != http.StatusNotFound {
		t.Fatalf("missing target: status = %d, want 404", w.Code)
	}
}
