// Package read реализует HTTP-обработчик карточки контента.
//
// Недоступный тарифному плану контент и несуществующий контент
// неразличимы для клиента: оба случая отдают 404.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/streamz/streamz-backend/internal/http/middlewarectx"
	"github.com/streamz/streamz-backend/internal/http/response"
	"github.com/streamz/streamz-backend/internal/lib/sl"
	"github.com/streamz/streamz-backend/internal/models"
	catalog "github.com/streamz/streamz-backend/internal/services/catalog"
)

// Service описывает интерфейс бизнес-логики карточки контента.
type Service interface {
	Read(ctx context.Context, username string, id int) (*models.ContentDetail, error)
}

// Handler обрабатывает HTTP-запросы карточки контента.
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
// @Summary Карточка контента
// @Description Возвращает контент по ID вместе со списком эпизодов для сериалов. Контент вне тарифного плана пользователя отдается как 404.
// @Tags Catalog
// @Produce  json
// @Param id path int true "ID контента"
// @Success 200 {object} response.Response "Карточка контента"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Контент не найден или недоступен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /content/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Error("invalid content id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid content id"))
		return
	}

	username := middlewarectx.UsernameFromContext(r.Context())

	detail, err := h.service.Read(r.Context(), username, id)
	if err != nil {
		if errors.Is(err, catalog.ErrContentNotFound) {
			log.Info("content not found or not entitled",
				slog.String("username", username),
				slog.Int("content_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("content not found"))
			return
		}
		log.Error("failed to read content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read content"))
		return
	}

	log.Info("content read", slog.Int("content_id", id))
	render.JSON(w, r, response.OKWithData(detail))
}
