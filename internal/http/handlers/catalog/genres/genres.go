// Package genres реализует HTTP-обработчик справочника жанров.
package genres

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/streamz/streamz-backend/internal/http/response"
	"github.com/streamz/streamz-backend/internal/lib/sl"
	"github.com/streamz/streamz-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики справочника жанров.
type Service interface {
	Genres(ctx context.Context) ([]*models.Genre, error)
}

// Handler обрабатывает HTTP-запросы справочника жанров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список жанров
// @Description Возвращает все жанры каталога.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} response.Response "Список жанров"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /genres [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.genres"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.Genres(r.Context())
	if err != nil {
		log.Error("failed to list genres", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list genres"))
		return
	}

	log.Info("genres listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(items))
}
