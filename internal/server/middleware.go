package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bookx/internal/repositories"
	"github.com/go-chi/cors"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "session"

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFrom returns the authenticated user attached by [Session], or "".
func UserIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// Recover turns handler panics into a 500 JSON error.
func Recover(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panicked", "path", r.URL.Path, "panic", rec)
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging records method, path, status, and latency for each request.
func Logging(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
		})
	}
}

// CORS allows browser clients from origins to call the API with credentials.
//
// An empty list or "*" allows any origin; the request origin is echoed so cookies still work.
func CORS(origins []string) Middleware {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}
	return cors.Handler(opts)
}

// Session resolves the session cookie to a user ID. Requests without a valid session pass through anonymously.
func Session(sessions *repositories.SessionRepository, signer *cookieSigner) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := signer.verify(c.Value)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := sessions.UserID(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// cookieSigner appends an HMAC-SHA256 tag to session tokens.
type cookieSigner struct {
	key []byte
}

func newCookieSigner(secret string) *cookieSigner {
	return &cookieSigner{key: []byte(secret)}
}

func (s *cookieSigner) mac(token string) string {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func (s *cookieSigner) sign(token string) string {
	return token + "." + s.mac(token)
}

func (s *cookieSigner) verify(value string) (string, bool) {
	token, tag, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", false
	}
	return token, hmac.Equal([]byte(tag), []byte(s.mac(token)))
}
