package middleware

import (
	"context"
	"net/http"
	"strings"

	"matricare-api/internal/auth"
)

type ctxKey string

const (
	UserIDKey ctxKey = "uid"
	RoleKey   ctxKey = "role"
)

// Auth requires a Bearer token and places the caller's id and role on the
// request context.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			raw = strings.TrimPrefix(raw, "Bearer ")
			if raw == "" {
				// fall back to the cookie the web client carries
				if c, err := r.Cookie("access_token"); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				http.Error(w, `{"message":"no token"}`, http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				http.Error(w, `{"message":"bad token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated caller's id, or "" outside an authed
// request.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(UserIDKey).(string)
	return v
}

func Role(ctx context.Context) string {
	v, _ := ctx.Value(RoleKey).(string)
	return v
}
