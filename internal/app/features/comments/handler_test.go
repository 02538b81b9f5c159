package comments_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/civichub/internal/app/features/comments"
	"github.com/dalemusser/civichub/internal/domain/models"
	"github.com/dalemusser/civichub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func postComment(h *comments.Handler, userID primitive.ObjectID, kind, id, text string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"kind": kind, "id": id, "text": text})
	r := httptest.NewRequest(http.MethodPost, "/comments", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r = testutil.SignedIn(r, userID)
	w := httptest.NewRecorder()
	h.HandleCreate(w, r)
	return w
}

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)
	h := comments.NewHandler(db, nil, zap.NewNop())

	author := f.CreateUser(ctx, "Avery", "Ng", "avery@test.local")
	club := f.CreateClub(ctx, "River Cleanup", author.ID)
	debate := f.CreateDebate(ctx, club.ID, author.ID, "Curbside composting")
	talker := f.CreateUser(ctx, "Rowan", "Lutz", "rowan@test.local")

	w := postComment(h, talker.ID, "debate", debate.ID.Hex(), `Agreed. <script>alert(1)</script>`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got models.Comment
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Text != "Agreed. " {
		t.Errorf("text = %q, want script stripped", got.Text)
	}
	if got.UserID != talker.ID {
		t.Errorf("user = %s, want %s", got.UserID.Hex(), talker.ID.Hex())
	}
	if got.Entity.Kind != models.KindDebate || got.Entity.ID != debate.ID {
		t.Errorf("entity = %+v", got.Entity)
	}
	if got.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
}

func TestHandleCreateRejectsBadInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)
	h := comments.NewHandler(db, nil, zap.NewNop())

	user := f.CreateUser(ctx, "Avery", "Ng", "avery@test.local")
	club := f.CreateClub(ctx, "River Cleanup", user.ID)
	debate := f.CreateDebate(ctx, club.ID, user.ID, "Curbside composting")

	tests := []struct {
		name string
		kind string
		id   string
		text string
		want int
	}{
		{"empty text", "debate", debate.ID.Hex(), "   ", http.StatusBadRequest},
		{"unknown kind", "memo", debate.ID.Hex(), "hello", http.StatusBadRequest},
		{"malformed id", "debate", "not-an-id", "hello", http.StatusBadRequest},
		{"missing target", "debate", primitive.NewObjectID().Hex(), "hello", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postComment(h, user.ID, tc.kind, tc.id, tc.text)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestHandleCreateRequiresAuth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := comments.NewHandler(db, nil, zap.NewNop())

	body, _ := json.Marshal(map[string]string{"kind": "debate", "id": primitive.NewObjectID().Hex(), "text": "drive-by"})
	r := httptest.NewRequest(http.MethodPost, "/comments", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.HandleCreate(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestHandleList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)
	h := comments.NewHandler(db, nil, zap.NewNop())

	user := f.CreateUser(ctx, "Avery", "Ng", "avery@test.local")
	club := f.CreateClub(ctx, "River Cleanup", user.ID)
	debate := f.CreateDebate(ctx, club.ID, user.ID, "Curbside composting")
	other := f.CreateDebate(ctx, club.ID, user.ID, "Bike lanes")

	for i := 0; i < 3; i++ {
		if w := postComment(h, user.ID, "debate", debate.ID.Hex(), fmt.Sprintf("point %d", i)); w.Code != http.StatusCreated {
			t.Fatalf("seed comment: status = %d", w.Code)
		}
	}
	if w := postComment(h, user.ID, "debate", other.ID.Hex(), "elsewhere"); w.Code != http.StatusCreated {
		t.Fatalf("seed comment: status = %d", w.Code)
	}

	r := httptest.NewRequest(http.MethodGet, "/comments/debate/"+debate.ID.Hex(), nil)
	r = testutil.WithChiURLParam(r, "kind", "debate")
	r = testutil.WithChiURLParam(r, "id", debate.ID.Hex())
	w := httptest.NewRecorder()
	h.HandleList(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var listed []models.Comment
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("listed %d comments, want 3", len(listed))
	}
	for _, c := range listed {
		if c.Entity.ID != debate.ID {
			t.Errorf("comment %s belongs to %s, want %s", c.ID.Hex(), c.Entity.ID.Hex(), debate.ID.Hex())
		}
	}
}

func TestHandleDeleteIsOwnerScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)
	h := comments.NewHandler(db, nil, zap.NewNop())

	owner := f.CreateUser(ctx, "Avery", "Ng", "avery@test.local")
	stranger := f.CreateUser(ctx, "Rowan", "Lutz", "rowan@test.local")
	club := f.CreateClub(ctx, "River Cleanup", owner.ID)
	debate := f.CreateDebate(ctx, club.ID, owner.ID, "Curbside composting")

	created := postComment(h, owner.ID, "debate", debate.ID.Hex(), "mine")
	if created.Code != http.StatusCreated {
		t.Fatalf("seed comment: status = %d", created.Code)
	}
	var comment models.Comment
	if err := json.Unmarshal(created.Body.Bytes(), &comment); err != nil {
		t.Fatalf("decode: %v", err)
	}

	del := func(as primitive.ObjectID) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodDelete, "/comments/"+comment.ID.Hex(), nil)
		r = testutil.WithChiURLParam(r, "id", comment.ID.Hex())
		r = testutil.SignedIn(r, as)
		w := httptest.NewRecorder()
		h.HandleDelete(w, r)
		return w
	}

	if w := del(stranger.ID); w.Code != http.StatusNotFound {
		t.Fatalf("delete by stranger: status = %d, want 404", w.Code)
	}
	if w := del(owner.ID); w.Code != http.StatusOK {
		t.Fatalf("delete by owner: status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := del(owner.ID); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", w.Code)
	}
}
