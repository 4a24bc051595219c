// Package middlewarectx содержит HTTP middleware для проверки JWT токенов
// и ограничения частоты запросов.
//
// JWTMiddleware требует валидный токен и отвечает 401 при его отсутствии.
// OptionalJWTMiddleware пропускает запросы без токена как анонимные:
// каталог открыт для чтения всем, но политика доступа по плану сама
// вернет анониму пустой результат.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/streamz/streamz-backend/internal/http/response"
	"github.com/streamz/streamz-backend/internal/lib/sl"
	"github.com/streamz/streamz-backend/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для имени пользователя в контексте
	User Key = "username"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
	// UserUID — ключ для идентификатора пользователя в контексте
	UserUID Key = "useruid"
)

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}

// JWTMiddleware возвращает HTTP middleware, который требует валидный JWT
// в заголовке Authorization. При успехе кладет имя пользователя, роль и uid
// в контекст запроса, иначе отвечает 401 Unauthorized.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), user)))
		})
	}
}

// OptionalJWTMiddleware возвращает HTTP middleware, который разбирает JWT,
// если он передан. Запрос без заголовка или с невалидным токеном продолжает
// обработку как анонимный.
func OptionalJWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.OptionalJWTMiddleware"

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Warn("ignoring invalid token on public endpoint",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), user)))
		})
	}
}

func withPrincipal(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, User, user.Username)
	ctx = context.WithValue(ctx, Role, user.Role)
	return context.WithValue(ctx, UserUID, user.UUID)
}

// UsernameFromContext возвращает имя пользователя из контекста
// или пустую строку для анонимного запроса.
func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(User).(string)
	return username
}
