package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"langlab/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const sessionIDContextKey ContextKey = "sessionID"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	secret      []byte
	sessionTTL  time.Duration
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(secret []byte, sessionTTL time.Duration, rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		secret:      secret,
		sessionTTL:  sessionTTL,
		rateLimiter: rateLimiter,
	}
}

// EnsureSession attaches a session ID to every request. A valid signed
// cookie keeps its ID; anything else (first visit, tampered or expired
// token) gets a fresh ID and a new cookie. Practice state is created
// lazily on first use of the ID, so this never allocates sessions for
// crawlers that ignore cookies.
func (m *Middleware) EnsureSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sessionID string

		if cookie, err := r.Cookie(security.SessionCookieName); err == nil {
			if id, expires, err := security.ParseSessionToken(m.secret, cookie.Value); err == nil {
				sessionID = id
				// sliding expiry: reissue the cookie once less than half
				// its TTL remains, so an active visitor keeps the same
				// session instead of being rotated mid-visit
				if time.Until(expires) < m.sessionTTL/2 {
					if token, err := security.MintSessionToken(m.secret, sessionID, m.sessionTTL); err == nil {
						http.SetCookie(w, security.SessionCookie(r, token, m.sessionTTL))
					}
				}
			}
		}

		if sessionID == "" {
			sessionID = security.NewSessionID()
			token, err := security.MintSessionToken(m.secret, sessionID, m.sessionTTL)
			if err != nil {
				respondError(w, http.StatusInternalServerError, "Could not start a session", "Mint session token", err)
				return
			}
			http.SetCookie(w, security.SessionCookie(r, token, m.sessionTTL))
		}

		ctx := context.WithValue(r.Context(), sessionIDContextKey, sessionID)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit guards the endpoints that hit the paid speech service
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.rateLimiter.Allow(security.ClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "Too many requests. Slow down a little.", "", nil)
			return
		}
		next(w, r)
	}
}

// SessionID retrieves the session ID placed by EnsureSession
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDContextKey).(string)
	return id
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
