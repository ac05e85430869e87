// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// ownerKey is the context key for the authenticated document owner.
const ownerKey ContextKey = "owner"

// ErrNoOwner is returned by GetOwner when the request was not authenticated.
var ErrNoOwner = errors.New("owner not found in request context")

// TokenValidator verifies a bearer token issued by the identity provider.
type TokenValidator interface {
	ValidateToken(tokenString string) (SubjectGetter, error)
}

// SubjectGetter exposes the identity a verified token was issued to.
type SubjectGetter interface {
	GetSubject() (string, error)
}

// AuthMiddleware validates the bearer token and stores the token subject in
// the request context as the document owner.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			owner, err := claims.GetSubject()
			if err != nil || strings.TrimSpace(owner) == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// WithOwner returns a context carrying owner. Tests and the single-user CLI
// server use it to bypass token verification.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// GetOwner extracts the authenticated owner from the request context.
func GetOwner(r *http.Request) (string, error) {
	owner, ok := r.Context().Value(ownerKey).(string)
	if !ok || owner == "" {
		return "", ErrNoOwner
	}
	return owner, nil
}
