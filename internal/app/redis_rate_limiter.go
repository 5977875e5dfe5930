/**
 * @description
 * Fixed-window login throttling backed by Redis, so the per-email attempt
 * budget holds across service replicas. The limit check runs inside the Lua
 * script to keep the count-and-compare atomic in a single round trip.
 */

package app

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// loginAttemptScript counts one attempt and enforces the limit. A negative
// reply means the attempt is within budget; a non-negative reply is the
// window's remaining lifetime in milliseconds.
var loginAttemptScript = redis.NewScript(`
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if hits <= tonumber(ARGV[2]) then
  return -1
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return ttl
`)

// RedisLoginRateLimiter throttles login attempts per email address.
type RedisLoginRateLimiter struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLoginRateLimiter(client redis.UniversalClient, prefix string, limit int, window time.Duration) *RedisLoginRateLimiter {
	cleaned := strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if cleaned == "" {
		cleaned = "financeflow:rate_limit"
	}
	if window < time.Second {
		window = time.Minute
	}
	return &RedisLoginRateLimiter{
		client: client,
		prefix: cleaned,
		limit:  limit,
		window: window,
	}
}

// Allow records one attempt for the email and reports whether it is within
// budget, along with how long until the window resets when it is not.
func (r *RedisLoginRateLimiter) Allow(ctx context.Context, email string) (bool, time.Duration, error) {
	if r == nil || r.client == nil || r.limit <= 0 {
		return true, 0, nil
	}
	subject := strings.ToLower(strings.TrimSpace(email))
	if subject == "" {
		return true, 0, nil
	}

	key := r.prefix + ":login:" + subject
	reply, err := loginAttemptScript.Run(ctx, r.client, []string{key}, r.window.Milliseconds(), r.limit).Int64()
	if err != nil {
		return false, 0, err
	}
	if reply < 0 {
		return true, 0, nil
	}

	retryAfter := time.Duration(reply) * time.Millisecond
	if retryAfter < time.Second {
		retryAfter = time.Second
	}
	return false, retryAfter, nil
}
