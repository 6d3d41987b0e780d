package middleware

import (
	"context"
	"net/http"
	"strings"

	"redlight/internal/model"
	"redlight/internal/service"
)

type contextKey string

const adminKey contextKey = "admin"

// AuthMiddleware provides bearer-token authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireAdmin validates the admin token from the Authorization header.
// A missing token is 401, a token that fails validation is 400.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeAuthError(w, http.StatusUnauthorized, "access denied, no token provided")
			return
		}

		claims, err := m.authSvc.ValidateToken(token)
		if err != nil {
			writeAuthError(w, http.StatusBadRequest, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), adminKey, &model.Admin{
			Username:     claims.Username,
			Role:         claims.Role,
			Organization: claims.Organization,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdmin extracts the authenticated admin from context
func GetAdmin(ctx context.Context) *model.Admin {
	if v := ctx.Value(adminKey); v != nil {
		return v.(*model.Admin)
	}
	return nil
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
