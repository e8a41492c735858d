// Package service holds the business rules that sit between HTTP handlers
// and repositories: credential checks, token issuance and contact intake.
package service

import (
	"errors"

	"github.com/iliyamo/portfolio/internal/validate"
)

var (
	// ErrInvalidCredentials is returned for any failed login. The caller must
	// not learn whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateAccount is returned when registering an email that is taken.
	ErrDuplicateAccount = errors.New("email already registered")
	// ErrWrongPassword is returned when a password change supplies the wrong
	// current password.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrNotFound is returned when the account behind a valid token is gone.
	ErrNotFound = errors.New("not found")
)

// ValidationError carries per-field failures of a request payload.
type ValidationError = validate.Error
