// Package config loads application configuration from environment variables.
// A .env file in the working directory is honoured when present so local
// development does not need exported variables.
package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/xhit/go-str2duration/v2"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. It is built once at startup and treated as
// read-only afterwards.
type Config struct {
	Env       string `env:"APP_ENV" env-default:"development"`
	Port      string `env:"APP_PORT" env-default:"5000"`
	ClientURL string `env:"CLIENT_URL" env-default:"http://localhost:5173"`

	DBUser string `env:"DB_USER" env-required:"true"`
	DBPass string `env:"DB_PASS"`
	DBHost string `env:"DB_HOST" env-required:"true"`
	DBPort string `env:"DB_PORT" env-default:"3306"`
	DBName string `env:"DB_NAME" env-required:"true"`

	JWTSecret    string   `env:"JWT_SECRET" env-required:"true"`
	JWTExpiresIn TokenTTL `env:"JWT_EXPIRES_IN" env-default:"7d"`
	BcryptCost   int      `env:"BCRYPT_COST" env-default:"10"`
	// AllowRegister keeps POST /api/auth/register open. Turn it off once
	// the admin account exists.
	AllowRegister bool `env:"AUTH_REGISTRATION_OPEN" env-default:"true"`

	UploadsDir string `env:"UPLOADS_DIR" env-default:"uploads"`
	BodyLimit  string `env:"BODY_LIMIT" env-default:"2M"`
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// TokenTTL is a session token lifetime. It accepts Go durations extended
// with day and week units ("7d", "2w", "36h") or a bare number of seconds.
type TokenTTL time.Duration

// SetValue implements cleanenv.Setter.
func (t *TokenTTL) SetValue(s string) error {
	d, err := ParseTTL(s)
	if err != nil {
		return err
	}
	*t = TokenTTL(d)
	return nil
}

// Duration returns the lifetime as a time.Duration.
func (t TokenTTL) Duration() time.Duration { return time.Duration(t) }

// ParseTTL parses a token lifetime expression.
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("duration must be positive: %q", s)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %q", s)
	}
	return d, nil
}

// Load reads the optional .env file and then binds environment variables
// into a Config. Missing required variables are reported as an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	// env-required accepts a present-but-empty variable; a blank secret
	// would sign every token with the empty key.
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, fmt.Errorf("missing required env var: JWT_SECRET")
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = 10
	}
	return cfg, nil
}

// MustLoad is like Load but halts the process on error.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
