package clubs_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/civichub/internal/app/features/clubs"
	"github.com/dalemusser/civichub/internal/app/system/indexes"
	"github.com/dalemusser/civichub/internal/domain/models"
	"github.com/dalemusser/civichub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, db *mongo.Database) *clubs.Handler {
	t.Helper()
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return clubs.NewHandler(db, zap.NewNop())
}

func createClub(t *testing.T, h *clubs.Handler, founder primitive.ObjectID, isPublic bool) models.Club {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{
		"name":     "River Cleanup",
		"about":    "<p>We clean the river</p><script>x()</script>",
		"isPublic": isPublic,
	})
	r := httptest.NewRequest(http.MethodPost, "/clubs", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r = testutil.SignedIn(r, founder)
	w := httptest.NewRecorder()
	h.HandleCreate(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("create club: %d %s", w.Code, w.Body.String())
	}
	var club models.Club
	if err := json.Unmarshal(w.Body.Bytes(), &club); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return club
}

func join(t *testing.T, h *clubs.Handler, clubID, userID primitive.ObjectID) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/clubs/"+clubID.Hex()+"/join", nil)
	r = testutil.WithChiURLParam(r, "id", clubID.Hex())
	r = testutil.SignedIn(r, userID)
	w := httptest.NewRecorder()
	h.HandleJoin(w, r)
	return w
}

func TestHandleCreateMakesFounderAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	ctx := testutil.TestContext(t)

	founder := primitive.NewObjectID()
	club := createClub(t, h, founder, true)

	if bytes.Contains([]byte(club.About), []byte("<script")) {
		t.Errorf("about not sanitized: %q", club.About)
	}

	m, err := h.Memberships.Find(ctx, models.EntityClub, club.ID, founder)
	if err != nil {
		t.Fatalf("Find founder membership: %v", err)
	}
	if m.Role != models.RoleAdmin || m.Status != models.StatusMember {
		t.Errorf("founder membership = %+v, want active admin", m)
	}
}

func TestHandleCreateRequiresName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	r := httptest.NewRequest(http.MethodPost, "/clubs", bytes.NewReader([]byte(`{"name":"  "}`)))
	r.Header.Set("Content-Type", "application/json")
	r = testutil.SignedIn(r, primitive.NewObjectID())
	w := httptest.NewRecorder()
	h.HandleCreate(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleJoin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	ctx := testutil.TestContext(t)

	public := createClub(t, h, primitive.NewObjectID(), true)
	joiner := primitive.NewObjectID()

	w := join(t, h, public.ID, joiner)
	if w.Code != http.StatusCreated {
		t.Fatalf("join public: %d %s", w.Code, w.Body.String())
	}
	m, err := h.Memberships.Find(ctx, models.EntityClub, public.ID, joiner)
	if err != nil || m.Status != models.StatusMember {
		t.Errorf("public join membership = %+v, %v; want immediate MEMBER", m, err)
	}

	// Joining twice is rejected.
	if w := join(t, h, public.ID, joiner); w.Code != http.StatusBadRequest {
		t.Errorf("repeat join status = %d, want 400", w.Code)
	}

	// A missing club 404s.
	if w := join(t, h, primitive.NewObjectID(), joiner); w.Code != http.StatusNotFound {
		t.Errorf("missing club status = %d, want 404", w.Code)
	}
}

func TestHandleJoinPrivateClubIsPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	ctx := testutil.TestContext(t)

	private := createClub(t, h, primitive.NewObjectID(), false)
	joiner := primitive.NewObjectID()

	if w := join(t, h, private.ID, joiner); w.Code != http.StatusCreated {
		t.Fatalf("join private: %d", w.Code)
	}
	m, err := h.Memberships.Find(ctx, models.EntityClub, private.ID, joiner)
	if err != nil || m.Status != models.StatusRequested {
		t.Errorf("private join membership = %+v, %v; want REQUESTED", m, err)
	}
}

func TestHandleUpdateMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	ctx := testutil.TestContext(t)

	admin := primitive.NewObjectID()
	private := createClub(t, h, admin, false)

	applicant := primitive.NewObjectID()
	if w := join(t, h, private.ID, applicant); w.Code != http.StatusCreated {
		t.Fatalf("join: %d", w.Code)
	}

	update := func(actor primitive.ObjectID, body map[string]string) *httptest.ResponseRecorder {
		buf, _ := json.Marshal(body)
		r := httptest.NewRequest(http.MethodPost, "/clubs/"+private.ID.Hex()+"/members", bytes.NewReader(buf))
		r.Header.Set("Content-Type", "application/json")
		r = testutil.WithChiURLParam(r, "id", private.ID.Hex())
		r = testutil.SignedIn(r, actor)
		w := httptest.NewRecorder()
		h.HandleUpdateMember(w, r)
		return w
	}

	// The applicant cannot accept themselves.
	if w := update(applicant, map[string]string{"userId": applicant.Hex(), "status": models.StatusMember}); w.Code != http.StatusForbidden {
		t.Errorf("self-accept status = %d, want 403", w.Code)
	}

	// The admin accepts; normalization forgives the lowercase status.
	if w := update(admin, map[string]string{"userId": applicant.Hex(), "status": "member"}); w.Code != http.StatusOK {
		t.Fatalf("accept status = %d, body = %s", w.Code, w.Body.String())
	}
	m, err := h.Memberships.Find(ctx, models.EntityClub, private.ID, applicant)
	if err != nil || m.Status != models.StatusMember {
		t.Errorf("membership = %+v, %v; want MEMBER", m, err)
	}

	// Promote to moderator.
	if w := update(admin, map[string]string{"userId": applicant.Hex(), "role": "Moderator"}); w.Code != http.StatusOK {
		t.Fatalf("promote status = %d", w.Code)
	}
	m, _ = h.Memberships.Find(ctx, models.EntityClub, private.ID, applicant)
	if m.Role != models.RoleModerator {
		t.Errorf("role = %q, want moderator", m.Role)
	}
}
