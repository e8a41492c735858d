package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/portfolio/internal/model"
)

const testSecret = "unit-test-secret"

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func adminIdentity() model.Identity {
	return model.Identity{ID: 7, Email: "a@x.com", Name: "Ada", Role: model.RoleAdmin}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, 7*24*time.Hour)

	tok, err := m.Issue(adminIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	got, err := m.Verify(tok.Token)
	require.NoError(t, err)
	require.Equal(t, adminIdentity(), got)

	again, err := m.Verify(tok.Token)
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ttl := 7 * 24 * time.Hour
	m := NewTokenManager(testSecret, ttl).WithClock(fixedClock(issuedAt))

	tok, err := m.Issue(adminIdentity())
	require.NoError(t, err)
	require.Equal(t, issuedAt.Add(ttl), tok.ExpiresAt)

	_, err = m.WithClock(fixedClock(tok.ExpiresAt.Add(-time.Second))).Verify(tok.Token)
	require.NoError(t, err)

	_, err = m.WithClock(fixedClock(tok.ExpiresAt)).Verify(tok.Token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.WithClock(fixedClock(tok.ExpiresAt.Add(time.Hour))).Verify(tok.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := NewTokenManager("other-secret", time.Hour).Issue(adminIdentity())
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).Verify(tok.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		ID: 1, Email: "a@x.com", Role: model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}

	t.Run("HS512", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = NewTokenManager(testSecret, time.Hour).Verify(signed)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = NewTokenManager(testSecret, time.Hour).Verify(signed)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerify_MalformedPayload(t *testing.T) {
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	t.Run("no exp", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1, "role": "admin"}).
			SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = NewTokenManager(testSecret, time.Hour).Verify(signed)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no id", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin", "exp": exp.Unix()}).
			SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = NewTokenManager(testSecret, time.Hour).Verify(signed)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewTokenManager(testSecret, time.Hour).Verify("not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestBearerToken(t *testing.T) {
	raw, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", raw)

	for _, h := range []string{"", "abc.def.ghi", "Basic dXNlcjpwYXNz", "bearer abc", "Bearer ", "Bearer    "} {
		_, err := BearerToken(h)
		require.ErrorIs(t, err, ErrMissingToken, "header %q", h)
	}
}

func TestPassword_HashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse", 4)
	require.NoError(t, err)
	require.NotEqual(t, "correct horse", hash)
	require.True(t, VerifyPassword(hash, "correct horse"))
	require.False(t, VerifyPassword(hash, "wrong horse"))

	again, err := HashPassword("correct horse", 4)
	require.NoError(t, err)
	require.NotEqual(t, hash, again, "hashes must be salted")
}
