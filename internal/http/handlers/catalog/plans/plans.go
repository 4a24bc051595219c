// Package plans реализует HTTP-обработчик списка тарифных планов.
package plans

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

// Service описывает интерфейс бизнес-логики тарифных планов.
type Service interface {
	Plans(ctx context.Context) ([]*models.SubscriptionPlan, error)
}

// Handler обрабатывает HTTP-запросы списка тарифных планов.
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
// @Summary Список тарифных планов
// @Description Возвращает доступные тарифные планы, отсортированные по цене. Доступно без авторизации.
// @Tags Plans
// @Produce  json
// @Success 200 {object} response.Response "Список планов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.plans"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.Plans(r.Context())
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list plans"))
		return
	}

	log.Info("plans listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(items))
}
