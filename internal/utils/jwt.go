package utils // package utils provides helpers for session tokens and password hashing

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/portfolio/internal/model"
)

var (
	// ErrMissingToken is returned when the Authorization header is absent or
	// does not use the Bearer scheme.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken covers every verification failure: bad signature,
	// unexpected algorithm, expiry, malformed payload.
	ErrInvalidToken = errors.New("invalid token")
)

const bearerPrefix = "Bearer "

// Claims is the signed session token payload.
type Claims struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// SessionToken is a signed token together with its expiry instant.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenManager mints and verifies HS256 session tokens. It holds no
// mutable state after construction and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a TokenManager signing with secret. Tokens expire
// ttl after issuance.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of m that reads the current time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *m
	cp.now = now
	return &cp
}

// TTL reports the configured token lifetime.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for the given identity.
func (m *TokenManager) Issue(id model.Identity) (SessionToken, error) {
	now := m.now().UTC()
	exp := now.Add(m.ttl)
	claims := Claims{
		ID:    id.ID,
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Verify checks the signature and expiry of raw and returns the identity it
// carries. A token is expired from its exp instant onwards. All failures
// collapse into ErrInvalidToken.
func (m *TokenManager) Verify(raw string) (model.Identity, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tok.Valid {
		return model.Identity{}, ErrInvalidToken
	}
	if claims.ID == 0 || claims.Role == "" {
		return model.Identity{}, ErrInvalidToken
	}
	return model.Identity{ID: claims.ID, Email: claims.Email, Name: claims.Name, Role: claims.Role}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMissingToken
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if raw == "" {
		return "", ErrMissingToken
	}
	return raw, nil
}
