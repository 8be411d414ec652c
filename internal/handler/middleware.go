package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"weekhours-service/internal/i18n"
	"weekhours-service/internal/identity"
)

type userIDKey struct{}

// UserID returns the authenticated user ID stored by AuthMiddleware.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey{}).(string)
	return v
}

// TokenVerifier resolves a session token to a user. Implemented by the
// identity provider client.
type TokenVerifier interface {
	Verify(token string) (*identity.User, error)
}

// AuthMiddleware requires a bearer session token on every request and
// puts the resolved user ID into the request context. Everything under
// /api runs behind it.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				writeErrorStatus(w, r, http.StatusUnauthorized, "error.unauthorized")
				return
			}

			user, err := verifier.Verify(token)
			if err != nil {
				log.Printf("ERROR verify session: %v", err)
				writeErrorStatus(w, r, http.StatusUnauthorized, "error.unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleMiddleware carries the request's Accept-Language preference into
// the context so every message can be localized.
func LocaleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lang := r.Header.Get("Accept-Language"); lang != "" {
			r = r.WithContext(i18n.WithLocale(r.Context(), lang))
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every request with its status and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

func writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, messageID string) {
	writeJSONStatus(w, status, map[string]string{"error": i18n.T(r.Context(), messageID)})
}
