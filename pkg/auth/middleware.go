package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type contextKey string

const (
	userIDKey     contextKey = "user_id"
	isOperatorKey contextKey = "is_operator"
)

// UserIDFromContext returns the authenticated operator username.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok
}

// WithUserID stores the authenticated operator username in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// WithIsOperator stores the operator flag in ctx.
func WithIsOperator(ctx context.Context, isOperator bool) context.Context {
	return context.WithValue(ctx, isOperatorKey, isOperator)
}

// IsOperatorFromContext reports whether the request was made by an operator.
// Returns false when not set.
func IsOperatorFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isOperatorKey).(bool)
	return v
}

// OperatorDirectory resolves token subjects to operators.
type OperatorDirectory interface {
	IsOperator(ctx context.Context, username string) (bool, error)
}

// RequireOperator verifies the request token and checks that its subject is
// a known operator before calling next.
func RequireOperator(secret []byte, dir OperatorDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := TokenFromRequest(r)
			if err != nil {
				code := "unauthorized"
				if errors.Is(err, ErrInvalidToken) {
					code = "invalid_session"
				}
				writeError(w, http.StatusUnauthorized, code)
				return
			}

			username, err := VerifySessionToken(token, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_session")
				return
			}

			ok, err := dir.IsOperator(r.Context(), username)
			if err != nil {
				slog.Error("operator lookup failed", "username", username, "error", err)
				writeError(w, http.StatusInternalServerError, "internal_error")
				return
			}
			if !ok {
				writeError(w, http.StatusUnauthorized, "unknown_operator")
				return
			}

			ctx := WithUserID(r.Context(), username)
			ctx = WithIsOperator(ctx, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DevUserID is the operator name DevAuth assigns when AUTH_REQUIRED=false.
const DevUserID = "dev-operator"

// DevAuth marks every request as coming from DevUserID.
func DevAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithUserID(r.Context(), DevUserID)
		ctx = WithIsOperator(ctx, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
