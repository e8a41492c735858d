package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/iliyamo/portfolio/internal/model"
	"github.com/iliyamo/portfolio/internal/repository"
	"github.com/iliyamo/portfolio/internal/utils"
	"github.com/iliyamo/portfolio/internal/validate"
)

// UserStore is the credential store the auth service reads and writes.
// *repository.UserRepo satisfies it.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, email, passwordHash, name, role string) (model.User, error)
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required,min=6"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// AuthResult is returned by login and register.
type AuthResult struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// AuthService issues session tokens against the credential store.
type AuthService struct {
	users     UserStore
	tokens    *utils.TokenManager
	validator *validate.Validator
	cost      int
	log       *slog.Logger
}

func NewAuthService(users UserStore, tokens *utils.TokenManager, v *validate.Validator, bcryptCost int, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{users: users, tokens: tokens, validator: v, cost: bcryptCost, log: log}
}

// Login checks the credential pair and returns a signed token. Payload shape
// is validated before the store is touched. Unknown email and wrong password
// both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	in.Email = repository.NormalizeEmail(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return AuthResult{}, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		utils.BurnPasswordCheck(in.Password, s.cost)
		return AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, in.Password) {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.issue(u)
}

// Register creates an admin account and logs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Email = repository.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Validate(in); err != nil {
		return AuthResult{}, err
	}

	taken, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return AuthResult{}, err
	}
	if taken {
		return AuthResult{}, ErrDuplicateAccount
	}

	hash, err := utils.HashPassword(in.Password, s.cost)
	if err != nil {
		return AuthResult{}, err
	}
	u, err := s.users.Create(ctx, in.Email, hash, in.Name, model.RoleAdmin)
	if errors.Is(err, repository.ErrDuplicate) {
		// lost a race with a concurrent registration
		return AuthResult{}, ErrDuplicateAccount
	}
	if err != nil {
		return AuthResult{}, err
	}
	s.log.Info("account registered", slog.Uint64("user_id", u.ID))
	return s.issue(u)
}

// Me returns the stored account behind an identity.
func (s *AuthService) Me(ctx context.Context, id model.Identity) (model.User, error) {
	u, err := s.users.GetByID(ctx, id.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// ChangePassword rehashes the password in place after checking the current
// one. The stored hash is untouched on any failure.
func (s *AuthService) ChangePassword(ctx context.Context, id model.Identity, in ChangePasswordInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	u, err := s.users.GetByID(ctx, id.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(u.PasswordHash, in.CurrentPassword) {
		return ErrWrongPassword
	}
	hash, err := utils.HashPassword(in.NewPassword, s.cost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Info("password changed", slog.Uint64("user_id", u.ID))
	return nil
}

// SeedAdmin creates an admin account unless the email is already taken.
// It reports whether an account was created.
func (s *AuthService) SeedAdmin(ctx context.Context, in RegisterInput) (bool, error) {
	_, err := s.Register(ctx, in)
	if errors.Is(err, ErrDuplicateAccount) {
		return false, nil
	}
	return err == nil, err
}

func (s *AuthService) issue(u model.User) (AuthResult, error) {
	tok, err := s.tokens.Issue(model.Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: tok.Token, User: u.Public()}, nil
}
