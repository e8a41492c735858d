package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/portfolio/internal/config"
)

// recorder tees the response body into buf while forwarding it to the
// client. Once more than limit bytes have been written the copy is dropped
// and overflow is set, so a truncated body can never be stored.
type recorder struct {
	http.ResponseWriter
	status   int          // last status passed to WriteHeader
	buf      bytes.Buffer // copy of the body written so far
	limit    int          // 0 means no limit
	overflow bool         // body exceeded limit
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	if !r.overflow {
		if r.limit > 0 && r.buf.Len()+len(b) > r.limit {
			// Too big to cache; stop copying but keep serving.
			r.overflow = true
			r.buf.Reset()
		} else {
			r.buf.Write(b)
		}
	}
	// The client always gets the full body.
	return r.ResponseWriter.Write(b)
}

// entityHeaders are the response headers that describe the body itself and
// are therefore safe to replay. Everything else (request ids, CORS, rate
// limit counters) belongs to the request that produced the entry and is set
// afresh by the middleware running on the current request.
var entityHeaders = []string{
	echo.HeaderContentType,
	echo.HeaderContentEncoding,
	"Content-Language",
	"Content-Disposition",
	"Cache-Control",
	"ETag",
	echo.HeaderLastModified,
}

// cachedResponse is the JSON value stored under a cache key.
type cachedResponse struct {
	Status int         `json:"s"` // HTTP status, always 200 today
	Header http.Header `json:"h"` // entity headers only
	Body   []byte      `json:"b"` // raw body bytes
}

// pickEntityHeaders copies the entity headers out of h.
func pickEntityHeaders(h http.Header) http.Header {
	out := make(http.Header, len(entityHeaders))
	for _, k := range entityHeaders {
		if vals := h.Values(k); len(vals) > 0 {
			out[k] = append([]string(nil), vals...)
		}
	}
	return out
}

// replay writes the stored response. Stored headers never override one the
// live response already carries, so each header appears once.
func (cr cachedResponse) replay(c echo.Context) error {
	h := c.Response().Header()
	for _, k := range entityHeaders {
		vals := cr.Header.Values(k)
		if len(vals) == 0 || h.Get(k) != "" {
			continue
		}
		h[k] = append([]string(nil), vals...)
	}
	// Mark the response so clients and tests can tell hits from misses.
	h.Set("X-Cache", "HIT")
	c.Response().WriteHeader(cr.Status)
	_, err := c.Response().Write(cr.Body)
	return err
}

// cacheKeyFrom hashes the request parts selected by the key strategy under
// cfg.Prefix. The concrete URL path is used so /projects/1 and /projects/2
// never share an entry.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	strategy := strings.ToLower(cfg.KeyStrategy)
	if strategy == "" {
		strategy = "route_query"
	}

	h := sha1.New()
	if strings.HasPrefix(strategy, "method_") {
		fmt.Fprintf(h, "method:%s:", r.Method)
	}
	fmt.Fprintf(h, "route:%s", r.URL.Path)
	if strings.HasSuffix(strategy, "_query") {
		fmt.Fprintf(h, ":q:%s", r.URL.RawQuery)
	}
	return fmt.Sprintf("%s:%x", cfg.Prefix, h.Sum(nil))
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// NewRedisCache serves repeated public reads from Redis. Only 200 responses
// are stored, together with their entity headers, so a hit returns the same
// body and content type as the original. X-Cache reports HIT or MISS.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute // fallback when CACHE_TTL is zero or negative
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Only configured methods (GET by default) are cacheable.
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKeyFrom(cfg, c)

			// Serve from Redis when an entry exists. A corrupt entry is
			// treated as a miss and overwritten below.
			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var hit cachedResponse
				if json.Unmarshal(bs, &hit) == nil && hit.Status != 0 {
					return hit.replay(c)
				}
			}

			// Miss: run the handler while recording what it writes.
			rec := &recorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			// Errors, redirects and oversized bodies are never stored.
			if rec.status != http.StatusOK || rec.overflow {
				return nil
			}
			entry, err := json.Marshal(cachedResponse{
				Status: rec.status,
				Header: pickEntityHeaders(c.Response().Header()),
				Body:   rec.buf.Bytes(),
			})
			if err == nil {
				// Detached from the request so a client hang-up after the
				// body was sent still lets the entry be written.
				_ = rdb.SetEx(context.WithoutCancel(ctx), key, entry, ttl).Err()
			}
			return nil
		}
	}
}

// InvalidateCache drops every cached response after a successful write, so
// admin edits show up on the public site immediately. Failures are logged
// and otherwise ignored; entries still expire by TTL.
func InvalidateCache(cfg config.CacheConfig, rdb *redis.Client, log *slog.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	if log == nil {
		log = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			// Safe methods never change data.
			m := c.Request().Method
			if m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions {
				return err
			}
			// A rejected write left the data untouched; keep the cache.
			if err != nil || c.Response().Status >= 400 {
				return err
			}
			if n, ferr := flushPrefix(context.WithoutCancel(c.Request().Context()), rdb, cfg.Prefix); ferr != nil {
				log.Warn("cache invalidation failed", slog.Any("err", ferr))
			} else if n > 0 {
				log.Debug("cache invalidated", slog.Int("keys", n))
			}
			return nil
		}
	}
}

// flushPrefix deletes every key under prefix with SCAN, never KEYS, so a
// large keyspace does not block Redis. It returns the number of keys removed.
func flushPrefix(ctx context.Context, rdb *redis.Client, prefix string) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := rdb.Scan(ctx, cursor, prefix+":*", 200).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return removed, err
			}
			removed += len(keys)
		}
		cursor = next
		// A zero cursor ends the iteration.
		if cursor == 0 {
			return removed, nil
		}
	}
}
