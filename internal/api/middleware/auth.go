package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nextdentist/booking-service/internal/api/handlers"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	adminIDKey
)

const (
	msgMissingUserID = "missing X-User-ID header"
	msgInvalidUserID = "invalid X-User-ID header"
	msgMissingToken  = "missing bearer token"
	msgInvalidToken  = "invalid or expired token"
	msgAdminRequired = "admin role required"
	roleAdmin        = "admin"
	bearerPrefix     = "Bearer "
)

// Auth middleware извлекает ID пользователя из заголовка X-User-ID
// Идентификацию выполняет API gateway; здесь доверяем заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// AdminClaims claims админского JWT токена
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuth middleware проверяет Bearer JWT с ролью admin
// Используется на эндпоинтах модерации отзывов
func AdminAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, bearerPrefix)

			var claims AdminClaims
			token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			if claims.Role != roleAdmin {
				handlers.RespondForbidden(w, msgAdminRequired)
				return
			}

			adminID, _ := strconv.ParseInt(claims.Subject, 10, 64)
			ctx := context.WithValue(r.Context(), adminIDKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminID возвращает ID администратора из контекста запроса
func GetAdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey).(int64)
	return id, ok
}
