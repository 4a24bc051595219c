package streamz

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/streamz/streamz-backend/docs"
	"github.com/streamz/streamz-backend/internal/http/handlers/auth/login"
	"github.com/streamz/streamz-backend/internal/http/handlers/auth/register"
	"github.com/streamz/streamz-backend/internal/http/handlers/catalog/genres"
	"github.com/streamz/streamz-backend/internal/http/handlers/catalog/list"
	"github.com/streamz/streamz-backend/internal/http/handlers/catalog/plans"
	"github.com/streamz/streamz-backend/internal/http/handlers/catalog/read"
	"github.com/streamz/streamz-backend/internal/http/handlers/health"
	"github.com/streamz/streamz-backend/internal/http/middlewarectx"
	"github.com/streamz/streamz-backend/internal/models"
	authservice "github.com/streamz/streamz-backend/internal/services/auth"
	catalogservice "github.com/streamz/streamz-backend/internal/services/catalog"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, catalogService *catalogservice.CatalogService, checker health.Checker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/plans", plans.New(logger, catalogService).ServeHTTP)

		// Каталог доступен и анониму, но аноним получает пустой результат.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalJWTMiddleware(authService, logger))
			r.Get("/content", list.New(logger, catalogService, "").ServeHTTP)
			r.Get("/content/{id}", read.New(logger, catalogService).ServeHTTP)
			r.Get("/content/movies", list.New(logger, catalogService, models.TypeMovie).ServeHTTP)
			r.Get("/content/series", list.New(logger, catalogService, models.TypeSeries).ServeHTTP)
			r.Get("/content/documentaries", list.New(logger, catalogService, models.TypeDocumentary).ServeHTTP)
		})

		// Группа с обязательной JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/genres", genres.New(logger, catalogService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, checker).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
