package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// CacheConfig drives the public response cache. Prefix namespaces the keys
// so an admin write can drop every cached page at once.
type CacheConfig struct {
	Enabled      bool          `env:"CACHE_ENABLED" env-default:"true"`
	Methods      MethodSet     `env:"CACHE_METHODS" env-default:"GET"`
	TTL          time.Duration `env:"CACHE_TTL" env-default:"30s"`
	KeyStrategy  string        `env:"CACHE_KEY_STRATEGY" env-default:"route_query"`
	Prefix       string        `env:"CACHE_PREFIX" env-default:"portfolio:cache"`
	MaxBodyBytes int           `env:"CACHE_MAX_BODY_BYTES" env-default:"1048576"`
}

// MethodSet is a comma separated list of HTTP methods, upper-cased.
type MethodSet map[string]bool

// SetValue implements cleanenv.Setter.
func (m *MethodSet) SetValue(s string) error {
	set := MethodSet{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			set[p] = true
		}
	}
	*m = set
	return nil
}

func LoadCacheConfig() (CacheConfig, error) {
	var c CacheConfig
	if err := cleanenv.ReadEnv(&c); err != nil {
		return CacheConfig{}, fmt.Errorf("cache config: %w", err)
	}
	return c, nil
}

// Lookups for the redis and queue loaders, which derive values from more
// than one variable.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return d
}
