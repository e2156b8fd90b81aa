package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/clinicdesk/api/internal/authz"
	"github.com/clinicdesk/api/internal/models"
)

type callerKeyType string

const callerKey callerKeyType = "caller"

// Auth validates a Bearer JWT using the provided HMAC secret and resolves
// the caller identity (id and role) into the request context. Requests
// without a valid token never reach the handlers.
func Auth(hmacSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				unauthorized(w)
				return
			}
			tokenStr := strings.TrimSpace(ah[len("Bearer "):])
			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return hmacSecret, nil
			})
			if err != nil || !token.Valid {
				unauthorized(w)
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w)
				return
			}

			sub, _ := claims["sub"].(string)
			id, err := uuid.Parse(sub)
			if err != nil {
				unauthorized(w)
				return
			}
			roleStr, _ := claims["role"].(string)
			role, err := models.ParseRole(roleStr)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, authz.Caller{ID: id, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}

// GetCaller returns the verified caller identity from context.
func GetCaller(ctx context.Context) (authz.Caller, bool) {
	c, ok := ctx.Value(callerKey).(authz.Caller)
	return c, ok
}
