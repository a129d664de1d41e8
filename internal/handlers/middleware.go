package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"wordarena/internal/models"
	"wordarena/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// AuthVerifier resolves credentials to users. Satisfied by service.AuthService.
type AuthVerifier interface {
	ValidateSession(sessionID string) (*models.User, error)
	ValidateToken(token string) (*models.User, error)
}

// Middleware holds dependencies for middleware functions
type Middleware struct {
	auth        AuthVerifier
	csrfTokens  *security.CSRFTokenStore
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(auth AuthVerifier, csrfTokens *security.CSRFTokenStore, rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		auth:        auth,
		csrfTokens:  csrfTokens,
		rateLimiter: rateLimiter,
	}
}

// RequireAuth accepts either a session cookie or an Authorization bearer
// token and puts the authenticated user on the request context.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := m.authenticate(w, r)
		if user == nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin is RequireAuth plus an administrator check
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
			return
		}
		next(w, r)
	})
}

// CSRFProtect rejects state-changing requests from cookie-authenticated
// callers that lack a valid CSRF token. Bearer-token requests are exempt
// since they are not cookie-replayable.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if bearerToken(r) != "" {
			next(w, r)
			return
		}

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		if !m.csrfTokens.ValidateToken(cookie.Value, r.Header.Get(CSRFHeaderName)) {
			respondWithError(w, http.StatusForbidden, "Invalid CSRF token", "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit throttles anonymous endpoints per client IP. Exceeding the
// limit returns 429.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.rateLimiter.Allow(security.GetClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests, try again later", "", nil)
			return
		}
		next(w, r)
	}
}

func (m *Middleware) authenticate(w http.ResponseWriter, r *http.Request) *models.User {
	if token := bearerToken(r); token != "" {
		user, err := m.auth.ValidateToken(token)
		if err != nil {
			return nil
		}
		return user
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	user, err := m.auth.ValidateSession(cookie.Value)
	if err != nil {
		clearSessionCookie(w)
		return nil
	}
	return user
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
