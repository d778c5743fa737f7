package middleware

import (
	"context"
	"net/http"
	"strings"

	"uiu-clinic-api/internal/domain/entity"
	"uiu-clinic-api/internal/usecase"
	"uiu-clinic-api/pkg/response"
)

type contextKey string

const (
	UserKey        contextKey = "user"
	AccessTokenKey contextKey = "access_token"
)

type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthMiddleware(authUsecase usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
	}
}

// Authenticate resolves the bearer token to an active user and stores it in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		tokenString, ok := BearerToken(r)
		if !ok {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		user, err := m.authUsecase.Resolve(r.Context(), tokenString)
		if err != nil {
			response.Fail(w, err, "Failed to validate token")
			return
		}

		// Add user info to context
		ctx := context.WithValue(r.Context(), UserKey, user)
		ctx = context.WithValue(ctx, AccessTokenKey, tokenString)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok && user != nil
}

// GetAccessTokenFromContext extracts the raw access token from context
func GetAccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(AccessTokenKey).(string)
	return token, ok
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
