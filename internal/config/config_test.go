package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "2w", want: 14 * 24 * time.Hour},
		{in: "36h", want: 36 * time.Hour},
		{in: "90m", want: 90 * time.Minute},
		{in: "3600", want: time.Hour},
		{in: " 1d ", want: 24 * time.Hour},
		{in: "", wantErr: true},
		{in: "0", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "soon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTTL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "portfolio")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_NAME", "portfolio")
	t.Setenv("JWT_SECRET", "s3cret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, EnvDevelopment, cfg.Env)
	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, "3306", cfg.DBPort)
	require.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn.Duration())
	require.Equal(t, 10, cfg.BcryptCost)
	require.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_EXPIRES_IN", "12h")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.IsDevelopment())
	require.Equal(t, 12*time.Hour, cfg.JWTExpiresIn.Duration())
	require.Equal(t, 12, cfg.BcryptCost)
}

func TestLoad_MissingSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_BadTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_EXPIRES_IN", "forever")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg, err := LoadRateLimitConfig()
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Capacity)
	require.Equal(t, 2*time.Second, cfg.RefillInterval)
	require.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfig_Methods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")

	cfg, err := LoadCacheConfig()
	require.NoError(t, err)
	require.True(t, cfg.Methods["GET"])
	require.True(t, cfg.Methods["HEAD"])
	require.False(t, cfg.Methods["POST"])
	require.Equal(t, 30*time.Second, cfg.TTL)
}

func TestLoadCacheConfig_BadTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "a while")

	_, err := LoadCacheConfig()
	require.Error(t, err)
}

func TestLoad_RegistrationToggle(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.AllowRegister)

	t.Setenv("AUTH_REGISTRATION_OPEN", "false")
	cfg, err = Load()
	require.NoError(t, err)
	require.False(t, cfg.AllowRegister)
}
