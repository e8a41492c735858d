package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/portfolio/internal/handler"
	"github.com/iliyamo/portfolio/internal/model"
	"github.com/iliyamo/portfolio/internal/repository"
	"github.com/iliyamo/portfolio/internal/service"
	"github.com/iliyamo/portfolio/internal/utils"
	"github.com/iliyamo/portfolio/internal/validate"
)

// memUsers is an in-memory credential store.
type memUsers struct {
	mu    sync.Mutex
	users []model.User
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == repository.NormalizeEmail(email) {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *memUsers) Create(_ context.Context, email, hash, name, role string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := model.User{
		ID:           uint64(len(m.users) + 1),
		Email:        repository.NormalizeEmail(email),
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	m.users = append(m.users, u)
	return u, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uint64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].PasswordHash = hash
			return nil
		}
	}
	return repository.ErrNotFound
}

type testServer struct {
	e      *echo.Echo
	mock   sqlmock.Sqlmock
	users  *memUsers
	tokens *utils.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := &memUsers{}
	tm := utils.NewTokenManager("e2e-secret", time.Hour)
	v := validate.New()
	messages := repository.NewMessageRepo(db)
	projects := repository.NewProjectRepo(db)

	e := New(Options{
		Log:      log,
		Tokens:   tm,
		Auth:     handler.NewAuthHandler(service.NewAuthService(users, tm, v, 4, log)),
		Projects: handler.NewProjectHandler(projects),
		Profile: &handler.ProfileHandler{
			Profile:      repository.NewProfileRepo(db),
			Skills:       repository.NewSkillRepo(db),
			Experiences:  repository.NewExperienceRepo(db),
			Education:    repository.NewEducationRepo(db),
			Testimonials: repository.NewTestimonialRepo(db),
		},
		Contact: handler.NewContactHandler(service.NewContactService(messages, nil, v, log), messages, log),
		Admin: handler.NewAdminHandler(handler.AdminRepos{
			Projects:     projects,
			Messages:     messages,
			Skills:       repository.NewSkillRepo(db),
			Experiences:  repository.NewExperienceRepo(db),
			Education:    repository.NewEducationRepo(db),
			Testimonials: repository.NewTestimonialRepo(db),
			Settings:     repository.NewSettingRepo(db),
		}),
		AllowRegister: true,
	})
	return &testServer{e: e, mock: mock, users: users, tokens: tm}
}

func (s *testServer) seed(t *testing.T, email, password string) model.User {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	u, err := s.users.Create(context.Background(), email, hash, "Seeded Admin", model.RoleAdmin)
	require.NoError(t, err)
	return u
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func login(t *testing.T, s *testServer, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
}

func TestLoginThenMe(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, "a@x.com", "correct")

	rec := login(t, s, "a@x.com", "correct")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user := body["user"].(map[string]any)
	require.Equal(t, "a@x.com", user["email"])
	require.Equal(t, "admin", user["role"])
	require.NotContains(t, rec.Body.String(), "password")

	me := s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, me.Code)
	require.Equal(t, "a@x.com", decode(t, me)["email"])
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, "a@x.com", "correct")

	wrong := login(t, s, "a@x.com", "incorrect")
	missing := login(t, s, "ghost@x.com", "incorrect")
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, http.StatusUnauthorized, missing.Code)
	require.JSONEq(t, wrong.Body.String(), missing.Body.String())
}

func TestLogin_ValidationError(t *testing.T) {
	s := newTestServer(t)
	rec := login(t, s, "not-an-email", "x")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs, ok := decode(t, rec)["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 2)
}

func TestAdminStats_WithoutToken(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/admin/stats", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotEmpty(t, decode(t, rec)["error"])

	bogus := s.do(http.MethodGet, "/api/admin/stats", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, bogus.Code)
	require.JSONEq(t, rec.Body.String(), bogus.Body.String())
}

func TestAdminStats_WithToken(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, "a@x.com", "correct")
	token := decode(t, login(t, s, "a@x.com", "correct"))["token"].(string)

	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM projects`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contact_messages$`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))
	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contact_messages WHERE is_read = FALSE`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))

	rec := s.do(http.MethodGet, "/api/admin/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"totalProjects":3,"totalMessages":5,"unreadMessages":2}`, rec.Body.String())
}

func TestAdmin_NonAdminRoleForbidden(t *testing.T) {
	s := newTestServer(t)
	tok, err := s.tokens.Issue(model.Identity{ID: 9, Email: "v@x.com", Role: "viewer"})
	require.NoError(t, err)

	rec := s.do(http.MethodGet, "/api/admin/stats", tok.Token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, "a@x.com", "correct")
	token := decode(t, login(t, s, "a@x.com", "correct"))["token"].(string)

	rec := s.do(http.MethodPut, "/api/auth/password", token, map[string]string{
		"currentPassword": "not-correct",
		"newPassword":     "brand-new",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	require.Equal(t, http.StatusOK, login(t, s, "a@x.com", "correct").Code)
	require.Equal(t, http.StatusUnauthorized, login(t, s, "a@x.com", "brand-new").Code)
}

func TestChangePassword_Success(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, "a@x.com", "correct")
	token := decode(t, login(t, s, "a@x.com", "correct"))["token"].(string)

	rec := s.do(http.MethodPut, "/api/auth/password", token, map[string]string{
		"currentPassword": "correct",
		"newPassword":     "brand-new",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Password updated successfully", decode(t, rec)["message"])
	require.Equal(t, http.StatusOK, login(t, s, "a@x.com", "brand-new").Code)
}

func TestRegister_Duplicate(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{"email": "new@x.com", "password": "secret1", "name": "New Admin"}

	first := s.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, first.Code)
	token := decode(t, first)["token"].(string)

	second := s.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, second.Code)

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/auth/me", token, nil).Code)
}

func TestHealthAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"OK","message":"Server is running"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Route not found"}`, rec.Body.String())
}

func TestProject_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectQuery(`FROM projects WHERE id = \?`).WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := s.do(http.MethodGet, "/api/projects/42", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Project not found"}`, rec.Body.String())
}

func TestProject_DatabaseFailureIsGeneric(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectQuery(`FROM projects WHERE status = \?`).WillReturnError(errors.New("connection refused"))

	rec := s.do(http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection refused")
}

func TestProject_CreateRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/projects", "", map[string]string{"title": "Alpha", "slug": "alpha"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProject_CreateMissingSlug(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, "a@x.com", "correct")
	token := decode(t, login(t, s, "a@x.com", "correct"))["token"].(string)

	rec := s.do(http.MethodPost, "/api/projects", token, map[string]string{"title": "Alpha"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "slug")
}

func TestContact_Submit(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectExec(`INSERT INTO contact_messages`).
		WithArgs("Jane Doe", "jane@example.com", nil, "Hello there, nice site!").
		WillReturnResult(sqlmock.NewResult(11, 1))
	s.mock.ExpectQuery(`FROM contact_messages WHERE id = \?`).WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "subject", "message", "is_read", "created_at"}).
			AddRow(11, "Jane Doe", "jane@example.com", nil, "Hello there, nice site!", false, time.Now()))

	rec := s.do(http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Jane Doe",
		"email":   "Jane@Example.com",
		"message": "Hello there, nice site!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.EqualValues(t, 11, decode(t, rec)["id"])
}

func TestContact_InboxRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/contact", "", nil).Code)
	require.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/contact/stats/unread", "", nil).Code)
}
