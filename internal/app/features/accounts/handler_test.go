package accounts_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/civichub/internal/app/features/accounts"
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/indexes"
	"github.com/dalemusser/civichub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, db *mongo.Database) *accounts.Handler {
	t.Helper()
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	tokens := auth.NewTokens("test-secret-long-enough-for-hs256", time.Hour)
	return accounts.NewHandler(db, tokens, nil, "CivicHub", "http://localhost", zap.NewNop())
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func register(t *testing.T, h *accounts.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return postJSON(t, h.HandleRegister, "/accounts/register", map[string]string{
		"firstName": "Avery",
		"lastName":  "Ng",
		"userName":  "user-" + email,
		"email":     email,
		"password":  password,
	})
}

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	w := register(t, h, "avery@example.com", "hunter2hunter2")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Error("response should carry a session token")
	}
	if resp.User.Email != "avery@example.com" {
		t.Errorf("user email = %q", resp.User.Email)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"bad email", map[string]string{"userName": "u", "email": "not-an-email", "password": "hunter2hunter2"}},
		{"missing username", map[string]string{"email": "a@example.com", "password": "hunter2hunter2"}},
		{"short password", map[string]string{"userName": "u", "email": "a@example.com", "password": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.HandleRegister, "/accounts/register", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	if w := register(t, h, "dupe@example.com", "hunter2hunter2"); w.Code != http.StatusCreated {
		t.Fatalf("first register: %d", w.Code)
	}
	if w := register(t, h, "Dupe@example.com", "hunter2hunter2"); w.Code != http.StatusBadRequest {
		t.Errorf("second register status = %d, want 400", w.Code)
	}
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	if w := register(t, h, "avery@example.com", "hunter2hunter2"); w.Code != http.StatusCreated {
		t.Fatalf("register: %d", w.Code)
	}

	w := postJSON(t, h.HandleLogin, "/accounts/login", map[string]string{
		"email": "AVERY@example.com", "password": "hunter2hunter2",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Errorf("login should return a token: %v, %s", err, w.Body.String())
	}
}

// A wrong password and an unknown email must be indistinguishable.
func TestLoginFailuresAreUniform(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	if w := register(t, h, "avery@example.com", "hunter2hunter2"); w.Code != http.StatusCreated {
		t.Fatalf("register: %d", w.Code)
	}

	wrongPassword := postJSON(t, h.HandleLogin, "/accounts/login", map[string]string{
		"email": "avery@example.com", "password": "wrong-password",
	})
	unknownEmail := postJSON(t, h.HandleLogin, "/accounts/login", map[string]string{
		"email": "nobody@example.com", "password": "hunter2hunter2",
	})

	if wrongPassword.Code != http.StatusForbidden || unknownEmail.Code != http.StatusForbidden {
		t.Errorf("statuses = %d/%d, want 403/403", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("bodies differ: %q vs %q", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestLoginRateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	// The per-account window allows 5 attempts.
	for i := 0; i < 5; i++ {
		w := postJSON(t, h.HandleLogin, "/accounts/login", map[string]string{
			"email": "target@example.com", "password": "guess",
		})
		if w.Code == http.StatusTooManyRequests {
			t.Fatalf("attempt %d unexpectedly limited", i+1)
		}
	}
	w := postJSON(t, h.HandleLogin, "/accounts/login", map[string]string{
		"email": "target@example.com", "password": "guess",
	})
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("sixth attempt status = %d, want 429", w.Code)
	}
}

func TestMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	user := f.CreateUser(ctx, "Avery", "Ng", "avery@example.com")

	r := httptest.NewRequest(http.MethodGet, "/accounts/me", nil)
	r = testutil.SignedIn(r, user.ID)
	w := httptest.NewRecorder()
	h.HandleMe(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// Without an identity the endpoint refuses.
	w = httptest.NewRecorder()
	h.HandleMe(w, httptest.NewRequest(http.MethodGet, "/accounts/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", w.Code)
	}
}
