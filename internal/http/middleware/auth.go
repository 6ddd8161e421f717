package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type actorKey struct{}

// Actor is the authenticated user's identity extracted from the JWT.
type Actor struct {
	ID   uuid.UUID
	Name string
}

// ActorFromContext returns the actor stored in ctx, or nil.
func ActorFromContext(ctx context.Context) *Actor {
	v, _ := ctx.Value(actorKey{}).(*Actor)
	return v
}

type claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// RequireAuth validates the bearer token and injects the actor into the
// request context. Returns 401 if the token is absent or invalid.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			c := &claims{}

			token, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}

				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			id, err := uuid.Parse(c.Subject)
			if err != nil {
				http.Error(w, "invalid token subject", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, &Actor{ID: id, Name: c.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
