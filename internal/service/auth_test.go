package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/portfolio/internal/model"
	"github.com/iliyamo/portfolio/internal/repository"
	"github.com/iliyamo/portfolio/internal/utils"
	"github.com/iliyamo/portfolio/internal/validate"
)

// memUsers is an in-memory UserStore that counts store access.
type memUsers struct {
	mu     sync.Mutex
	byID   map[uint64]model.User
	nextID uint64
	calls  int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[uint64]model.User{}} }

func (m *memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, u := range m.byID {
		if u.Email == repository.NormalizeEmail(email) {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	u, ok := m.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
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
	m.calls++
	m.nextID++
	u := model.User{ID: m.nextID, Email: repository.NormalizeEmail(email), PasswordHash: hash, Name: name, Role: role, CreatedAt: time.Now()}
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uint64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	m.byID[id] = u
	return nil
}

func newAuth(t *testing.T) (*AuthService, *memUsers, *utils.TokenManager) {
	t.Helper()
	users := newMemUsers()
	tm := utils.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(users, tm, validate.New(), 4, nil), users, tm
}

func seed(t *testing.T, users *memUsers, email, password string) model.User {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	u, err := users.Create(context.Background(), email, hash, gofakeit.Name(), model.RoleAdmin)
	require.NoError(t, err)
	return u
}

func TestLogin_Success(t *testing.T) {
	svc, users, tm := newAuth(t)
	u := seed(t, users, "a@x.com", "correct")

	res, err := svc.Login(context.Background(), LoginInput{Email: "A@X.com", Password: "correct"})
	require.NoError(t, err)
	require.Equal(t, u.Public(), res.User)

	id, err := tm.Verify(res.Token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", id.Email)
	require.Equal(t, model.RoleAdmin, id.Role)
	require.Equal(t, u.ID, id.ID)
}

func TestLogin_UniformFailure(t *testing.T) {
	svc, users, _ := newAuth(t)
	seed(t, users, "a@x.com", "correct")

	_, wrongPass := svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "incorrect"})
	_, noUser := svc.Login(context.Background(), LoginInput{Email: "nobody@x.com", Password: "incorrect"})

	require.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, noUser, ErrInvalidCredentials)
	require.Equal(t, wrongPass.Error(), noUser.Error())
}

func TestLogin_ValidatesBeforeStore(t *testing.T) {
	svc, users, _ := newAuth(t)

	for _, in := range []LoginInput{
		{Email: "not-an-email", Password: "longenough"},
		{Email: gofakeit.Email(), Password: "short"},
		{},
	} {
		_, err := svc.Login(context.Background(), in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.NotEmpty(t, verr.Fields)
	}
	require.Zero(t, users.calls)
}

func TestRegister_DuplicateKeepsFirstToken(t *testing.T) {
	svc, _, tm := newAuth(t)
	in := RegisterInput{Email: gofakeit.Email(), Password: "password1", Name: "First Admin"}

	first, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, first.User.Role)

	_, err = svc.Register(context.Background(), in)
	require.ErrorIs(t, err, ErrDuplicateAccount)

	_, err = tm.Verify(first.Token)
	require.NoError(t, err)
}

func TestChangePassword_WrongCurrentKeepsHash(t *testing.T) {
	svc, users, _ := newAuth(t)
	u := seed(t, users, "a@x.com", "oldpassword")
	before := users.byID[u.ID].PasswordHash

	err := svc.ChangePassword(context.Background(), model.Identity{ID: u.ID}, ChangePasswordInput{
		CurrentPassword: "wrongpassword",
		NewPassword:     "newpassword",
	})
	require.ErrorIs(t, err, ErrWrongPassword)
	require.Equal(t, before, users.byID[u.ID].PasswordHash)

	_, err = svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "oldpassword"})
	require.NoError(t, err)
}

func TestChangePassword_Success(t *testing.T) {
	svc, users, _ := newAuth(t)
	u := seed(t, users, "a@x.com", "oldpassword")

	require.NoError(t, svc.ChangePassword(context.Background(), model.Identity{ID: u.ID}, ChangePasswordInput{
		CurrentPassword: "oldpassword",
		NewPassword:     "newpassword",
	}))

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "oldpassword"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "newpassword"})
	require.NoError(t, err)
}

func TestMe_MissingAccount(t *testing.T) {
	svc, _, _ := newAuth(t)
	_, err := svc.Me(context.Background(), model.Identity{ID: 42})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	svc, _, _ := newAuth(t)
	in := RegisterInput{Email: "owner@example.com", Password: "password1", Name: "Owner"}

	created, err := svc.SeedAdmin(context.Background(), in)
	require.NoError(t, err)
	require.True(t, created)

	created, err = svc.SeedAdmin(context.Background(), in)
	require.NoError(t, err)
	require.False(t, created)
}
