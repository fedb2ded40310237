// ABOUTME: HTTP middleware for JWT authentication on console API endpoints
// ABOUTME: Extracts the bearer token and adds the operator ID to the request context

package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const operatorContextKey contextKey = "operator_id"

// OperatorFromContext returns the authenticated operator ID, if any
func OperatorFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operatorContextKey).(string)
	return id, ok
}

// WithOperator returns a context carrying the operator ID. Exposed for tests.
func WithOperator(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, operatorContextKey, operatorID)
}

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// Middleware returns an http middleware that rejects requests without a
// valid bearer token and otherwise stores the operator ID on the context.
func Middleware(verifier TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				http.Error(w, errMsg, http.StatusUnauthorized)
				return
			}

			operatorID, err := verifier.Verify(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next(w, r.WithContext(WithOperator(r.Context(), operatorID)))
		}
	}
}
