// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements Idempotency-Key support for the unsafe POST
// endpoints (borrow and return). Clients retrying a request after a timeout
// send the same key; when the middleware finds the key in
// the replay store, it acknowledges the request with 200 without executing
// the handler, so a retried borrow never lends a second copy.
//
// Completed requests are recorded after the handler chain runs, and only
// when it succeeded (2xx). Replays are keyed by client identity plus the
// full request path, so the same key on a different resource is a distinct
// operation. Replayed requests also bypass the rate limiter.
package middleware

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header clients use to convey an
// idempotency key for unsafe operations.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplay is set on responses served from the replay store.
const HeaderIdempotentReplay = "Idempotent-Replay"

// Context keys stashed by Idempotency and read via accessors below.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

// keyPattern is a conservative RFC 7230-ish token: letters, digits, and a
// handful of safe punctuation characters.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// ReplayStore records completed unsafe requests and answers whether a given
// (scope, key) pair was already completed. Implementations must be safe for
// concurrent use and should expire entries after a TTL.
type ReplayStore interface {
	Seen(scope, key string, now time.Time) bool
	Remember(scope, key string, now time.Time)
}

// IdempotencyOptions configures header validation.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length; values <= 0 default to 200.
	MaxLen int
}

// GetIdempotencyKey returns the validated idempotency key stored in the Gin
// context, if any.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether this request was served as a replay of a
// previously completed operation.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IsRateBypass reports whether this request should skip rate limiting
// (set for idempotent replays).
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Idempotency validates the Idempotency-Key header, short-circuits detected
// replays with a bodyless 200, and records completions in store.
//
// Behavior:
//   - Safe methods (GET/HEAD/OPTIONS) and requests without the header pass
//     through untouched.
//   - A malformed key is rejected with 400.
//   - A key already in the store yields an immediate 200 with the
//     Idempotent-Replay header set; the handler chain does not run.
//   - Otherwise the chain runs, and on a 2xx outcome the (scope, key) pair
//     is remembered.
func Idempotency(opts IdempotencyOptions, store ReplayStore) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !keyPattern.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_idempotency_key",
				"message": "invalid Idempotency-Key",
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)
		if store == nil {
			c.Next()
			return
		}

		scope := replayScope(c)
		now := time.Now().UTC()
		if store.Seen(scope, key, now) {
			c.Set(ctxKeyIdemReplay, true)
			c.Set(ctxKeyRateBypass, true)
			c.Header(HeaderIdempotentReplay, "true")
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()

		if s := c.Writer.Status(); s >= 200 && s < 300 {
			store.Remember(scope, key, now)
		}
	}
}

// replayScope builds the identity a key is scoped to: client plus the exact
// request path, so reusing a key against another book is not a replay.
func replayScope(c *gin.Context) string {
	return c.ClientIP() + " " + c.Request.Method + " " + c.Request.URL.Path
}
