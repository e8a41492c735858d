package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/portfolio/internal/config"
)

// takeScript refills the bucket stored at KEYS[1] and takes one token.
// Replies {allowed, remaining, wait_ms}.
var takeScript = redis.NewScript(`
local now, cap, refill, every, ttl =
	tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3]), tonumber(ARGV[4]), tonumber(ARGV[5])

local left = tonumber(redis.call('HGET', KEYS[1], 'left'))
local since = tonumber(redis.call('HGET', KEYS[1], 'since'))
if not left or not since then
	left, since = cap, now
end

local steps = math.floor(math.max(0, now - since) / every)
if steps > 0 then
	left = math.min(cap, left + steps * refill)
	since = since + steps * every
end

local ok, wait = 0, 0
if left > 0 then
	ok, left = 1, left - 1
else
	wait = math.max(0, every - (now - since))
end

redis.call('HSET', KEYS[1], 'left', left, 'since', since)
redis.call('EXPIRE', KEYS[1], ttl)
return {ok, left, wait}
`)

// decision is the script's verdict for one request.
type decision struct {
	allowed   bool          // a token was taken
	remaining int64         // tokens left after this request
	wait      time.Duration // time until the next refill when denied
}

// bucket runs takeScript with the configured shape.
type bucket struct {
	cfg config.RateLimitConfig
	rdb *redis.Client
}

// take spends one token from the bucket at key. now is passed in so the
// refill arithmetic uses one clock for every caller.
func (b bucket) take(ctx context.Context, key string, now time.Time) (decision, error) {
	reply, err := takeScript.Run(ctx, b.rdb, []string{key},
		now.UnixMilli(),
		b.cfg.Capacity,
		b.cfg.RefillTokens,
		b.cfg.RefillInterval.Milliseconds(),
		int64(b.cfg.TTL/time.Second),
	).Int64Slice()
	if err != nil {
		return decision{}, err
	}
	if len(reply) != 3 {
		return decision{}, fmt.Errorf("ratelimit: unexpected reply %v", reply)
	}
	return decision{
		allowed:   reply[0] == 1,
		remaining: reply[1],
		wait:      time.Duration(reply[2]) * time.Millisecond,
	}, nil
}

// retryAfter rounds the wait up to whole seconds for the Retry-After header.
func (d decision) retryAfter() int {
	return int((d.wait + time.Second - 1) / time.Second)
}

// NewTokenBucket limits requests per key (see KeyStrategy) with a Redis
// token bucket. Redis errors fail open: the request proceeds unthrottled.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client, log *slog.Logger) echo.MiddlewareFunc {
	// Disabled or no Redis: mount a no-op so routes need no special casing.
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	if log == nil {
		log = slog.Default()
	}
	b := bucket{cfg: cfg, rdb: rdb}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateKey(cfg, c)
			d, err := b.take(c.Request().Context(), key, time.Now())
			if err != nil {
				// Fail open: let the request through unthrottled.
				log.Warn("ratelimit: redis error", slog.String("key", key), slog.Any("err", err))
				return next(c)
			}

			// Advertise the budget on every response, allowed or not.
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(d.remaining, 10))
			if cfg.Debug {
				h.Set("X-RateLimit-Key", key)
			}
			if d.allowed {
				return next(c)
			}

			// Denied: tell the client when to come back.
			secs := d.retryAfter()
			h.Set("Retry-After", strconv.Itoa(secs))
			if cfg.Debug {
				log.Info("ratelimit: blocked", slog.String("key", key), slog.Duration("wait", d.wait))
			}
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error":       "Too many requests, please try again later",
				"retry_after": secs,
			})
		}
	}
}

// rateKey joins the request attributes selected by cfg.KeyStrategy, an
// underscore separated subset of ip, user and route. Unknown strategies
// use all three.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
	strategy := strings.ToLower(cfg.KeyStrategy)
	want := func(part string) bool {
		return strings.Contains(strategy, part)
	}
	if !want("ip") && !want("user") && !want("route") {
		strategy = "ip_user_route"
	}

	parts := []string{cfg.Prefix}
	if want("ip") {
		ip := c.RealIP()
		if ip == "" {
			ip = "unknown"
		}
		parts = append(parts, "ip", ip)
	}
	if want("user") {
		parts = append(parts, "user", userKey(c))
	}
	if want("route") {
		parts = append(parts, "route", c.Request().Method+" "+c.Path())
	}
	return strings.Join(parts, ":")
}
