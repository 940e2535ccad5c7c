package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fitleveling/fitleveling/internal/common"
	"github.com/fitleveling/fitleveling/internal/logging"
	"github.com/fitleveling/fitleveling/internal/server/auth"
	"github.com/fitleveling/fitleveling/internal/server/avatars"
	sc "github.com/fitleveling/fitleveling/internal/server/config"
	"github.com/fitleveling/fitleveling/internal/server/models"
	"github.com/fitleveling/fitleveling/internal/server/pets"
	"github.com/fitleveling/fitleveling/internal/server/users"
)

// --- fakes ---

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
	findErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = "u-" + u.Email
	u.CreatedAt = time.Now()
	if f.byEmail == nil {
		f.byEmail = map[string]*models.User{}
	}
	if f.byID == nil {
		f.byID = map[string]*models.User{}
	}
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) UpdateAvatar(ctx context.Context, id string, avatar string) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Avatar = avatar
	return nil
}

type fakePetsRepo struct {
	pets []*models.Pet
	err  error
}

func (f *fakePetsRepo) Create(ctx context.Context, p *models.Pet) (*models.Pet, error) {
	if f.err != nil {
		return nil, f.err
	}
	p.ID = "p-" + p.Name
	p.CreatedAt = time.Now()
	f.pets = append(f.pets, p)
	return p, nil
}

func (f *fakePetsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Pet, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Pet
	for _, p := range f.pets {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePetsRepo) FindByID(ctx context.Context, id string, userID string) (*models.Pet, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.pets {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- helpers ---

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func newTestServer(t *testing.T, usersRepo users.Repository, petsRepo pets.Repository) (*Server, *auth.Issuer) {
	t.Helper()

	cfg := &sc.Config{}
	cfg.LoadDefaults()

	issuer := auth.NewIssuer([]byte("test-secret"), time.Hour)
	us := users.NewService(usersRepo, auth.NewPasswordHasher(), issuer)
	ps := pets.NewService(petsRepo)
	as := avatars.NewService(cfg)

	return NewServer(":0", testLogger(), us, ps, as, issuer), issuer
}

func seedUser(t *testing.T, repo *fakeUsersRepo, email, name, password string) *models.User {
	t.Helper()
	hash, err := auth.NewPasswordHasher().Hash(password)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	u := &models.User{ID: "u-" + email, Name: name, Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	if repo.byEmail == nil {
		repo.byEmail = map[string]*models.User{}
	}
	if repo.byID == nil {
		repo.byID = map[string]*models.User{}
	}
	repo.byEmail[email] = u
	repo.byID[u.ID] = u
	return u
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("body is not a JSON object: %v (%s)", err, w.Body.String())
	}
	return m
}

// --- login ---

func TestHandleLogin_Success(t *testing.T) {
	repo := &fakeUsersRepo{}
	u := seedUser(t, repo, "a@x.com", "A", "secret123")
	s, issuer := newTestServer(t, repo, &fakePetsRepo{})

	w := do(t, s.Router(), http.MethodPost, "/login", "", `{"email":"a@x.com","password":"secret123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["id"] != u.ID || body["name"] != "A" || body["email"] != "a@x.com" {
		t.Fatalf("unexpected body: %v", body)
	}

	token, _ := body["token"].(string)
	userID, err := issuer.UserIDFromToken(token)
	if err != nil || userID != u.ID {
		t.Fatalf("token does not decode to subject: %v, %v", userID, err)
	}

	if strings.Contains(strings.ToLower(w.Body.String()), "hash") {
		t.Fatalf("response leaks password hash: %s", w.Body.String())
	}
}

func TestHandleLogin_WrongPasswordAndUnknownEmail_Indistinguishable(t *testing.T) {
	repo := &fakeUsersRepo{}
	seedUser(t, repo, "a@x.com", "A", "secret123")
	s, _ := newTestServer(t, repo, &fakePetsRepo{})
	r := s.Router()

	wrongPassword := do(t, r, http.MethodPost, "/login", "", `{"email":"a@x.com","password":"wrong"}`)
	unknownEmail := do(t, r, http.MethodPost, "/login", "", `{"email":"nobody@x.com","password":"anything"}`)

	for _, w := range []*httptest.ResponseRecorder{wrongPassword, unknownEmail} {
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		if got := decodeBody(t, w)["message"]; got != "Email hoặc mật khẩu không đúng" {
			t.Fatalf("unexpected message: %v", got)
		}
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("the two failures must be observationally identical:\n%s\n%s",
			wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestHandleLogin_StoreError(t *testing.T) {
	repo := &fakeUsersRepo{findErr: context.DeadlineExceeded}
	s, _ := newTestServer(t, repo, &fakePetsRepo{})

	w := do(t, s.Router(), http.MethodPost, "/login", "", `{"email":"a@x.com","password":"secret123"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "Lỗi server" {
		t.Fatalf("unexpected message: %v", got)
	}
}

func TestHandleLogin_MalformedBody(t *testing.T) {
	s, _ := newTestServer(t, &fakeUsersRepo{}, &fakePetsRepo{})

	w := do(t, s.Router(), http.MethodPost, "/login", "", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// --- register ---

func TestHandleRegister_SuccessThenDuplicate(t *testing.T) {
	repo := &fakeUsersRepo{}
	s, _ := newTestServer(t, repo, &fakePetsRepo{})
	r := s.Router()

	w := do(t, r, http.MethodPost, "/register", "", `{"name":"A","email":"a@x.com","password":"secret123"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["email"] != "a@x.com" || body["token"] == "" {
		t.Fatalf("unexpected body: %v", body)
	}

	// Same email again conflicts.
	w = do(t, r, http.MethodPost, "/register", "", `{"name":"A2","email":"a@x.com","password":"other"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestHandleRegister_MissingFields(t *testing.T) {
	s, _ := newTestServer(t, &fakeUsersRepo{}, &fakePetsRepo{})

	w := do(t, s.Router(), http.MethodPost, "/register", "", `{"email":"a@x.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// --- pets ---

func TestPetRoutes_RequireAuth(t *testing.T) {
	s, _ := newTestServer(t, &fakeUsersRepo{}, &fakePetsRepo{})

	w := do(t, s.Router(), http.MethodGet, "/pet", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestPetRoutes_CreateListGet(t *testing.T) {
	repo := &fakeUsersRepo{}
	u := seedUser(t, repo, "a@x.com", "A", "secret123")
	s, issuer := newTestServer(t, repo, &fakePetsRepo{})
	r := s.Router()

	token, err := issuer.Issue(u.ID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	w := do(t, r, http.MethodPost, "/pet", token, `{"name":"Rex","species":"dog"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)
	if created["name"] != "Rex" || created["level"] != float64(1) {
		t.Fatalf("unexpected pet: %v", created)
	}

	w = do(t, r, http.MethodGet, "/pet", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("unexpected list: %s", w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/pet/"+created["id"].(string), token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/pet/missing", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing pet status = %d, want 404", w.Code)
	}
}

// --- profile + avatars ---

func TestUserRoutes_MeAndAvatar(t *testing.T) {
	repo := &fakeUsersRepo{}
	u := seedUser(t, repo, "a@x.com", "A", "secret123")
	s, issuer := newTestServer(t, repo, &fakePetsRepo{})
	r := s.Router()

	token, err := issuer.Issue(u.ID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	w := do(t, r, http.MethodGet, "/user/me", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d (%s)", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["email"]; got != "a@x.com" {
		t.Fatalf("unexpected me body: %v", got)
	}

	// No avatar uploaded yet.
	w = do(t, r, http.MethodGet, "/user/avatar", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("avatar status = %d, want 404", w.Code)
	}

	// Presigning happens locally, so this works without an S3 backend.
	w = do(t, r, http.MethodPost, "/user/avatar", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("upload-url status = %d (%s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	key, _ := body["key"].(string)
	if !strings.HasPrefix(key, "avatars/"+u.ID+"/") || body["upload_url"] == "" {
		t.Fatalf("unexpected upload response: %v", body)
	}

	w = do(t, r, http.MethodPut, "/user/avatar", token, `{"key":"`+key+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm status = %d (%s)", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["avatar"]; got != key {
		t.Fatalf("avatar not persisted: %v", got)
	}

	w = do(t, r, http.MethodGet, "/user/avatar", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("download-url status = %d (%s)", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["url"]; got == "" {
		t.Fatalf("missing download url: %s", w.Body.String())
	}
}
