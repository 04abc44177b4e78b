package security

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "lab_session"

// NewSessionID creates a new UUID for session identification
func NewSessionID() string {
	return uuid.New().String()
}

// MintSessionToken signs a session ID into a compact token the browser can
// hold. The token proves the ID was issued by this server, so a visitor
// cannot guess their way into another visitor's practice state.
func MintSessionToken(secret []byte, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies a token and returns the session ID it carries
// along with its expiry, so callers can refresh tokens that are close to
// lapsing instead of letting an active visitor lose their session.
func ParseSessionToken(secret []byte, tokenString string) (string, time.Time, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", time.Time{}, fmt.Errorf("session token has no subject")
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}

// isSecureRequest determines if the request arrived over HTTPS, directly or
// behind a reverse proxy
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if r.Header.Get("X-Forwarded-Proto") == "https" {
		return true
	}
	return r.URL.Scheme == "https"
}

// SessionCookie builds the session cookie with the right security flags
func SessionCookie(r *http.Request, token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}
