package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vaughan-dsouza/userapi/internal/utils"
)

func unauthorized(w http.ResponseWriter, msg string) {
	utils.JSON(w, http.StatusUnauthorized, map[string]string{"msg": msg})
}

// AuthMiddleware requires a valid bearer access token signed with secret
// and pushes its subject into the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			auth := r.Header.Get("Authorization")
			if auth == "" {
				unauthorized(w, "Missing Authorization Header")
				return
			}

			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				unauthorized(w, "Bad Authorization header. Expected 'Authorization: Bearer <JWT>'")
				return
			}

			token := strings.TrimSpace(parts[1])
			if token == "" {
				unauthorized(w, "Bad Authorization header. Expected 'Authorization: Bearer <JWT>'")
				return
			}

			claims, err := utils.VerifyToken(token, secret)
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}

			// push user ID into context
			ctx := context.WithValue(r.Context(), utils.CtxUserIDKey, claims.SubjectInt())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
