package model

import "time"

// RoleAdmin is the only role accounts are created with. Administrative
// routes require it.
const RoleAdmin = "admin"

// User represents an account record as stored in the `users` table.
// PasswordHash never leaves the server: it is excluded from JSON.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// PublicUser is the redacted account shape returned alongside tokens.
type PublicUser struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Public strips everything but the identity fields.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Identity is the decoded session token payload attached to a request. It
// lives for the duration of one request and is never persisted.
type Identity struct {
	ID    uint64
	Email string
	Name  string
	Role  string
}
