// Package list реализует HTTP-обработчик списка контента каталога.
//
// Один и тот же обработчик обслуживает общий каталог и маршруты отдельных
// типов контента (фильмы, сериалы, документалки): тип фиксируется при
// создании обработчика. Видимость контента определяется ценой тарифного
// плана пользователя, анонимные запросы получают пустой результат.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/streamz/streamz-backend/internal/http/middlewarectx"
	"github.com/streamz/streamz-backend/internal/http/response"
	"github.com/streamz/streamz-backend/internal/lib/sl"
	"github.com/streamz/streamz-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	List(ctx context.Context, username string, filter models.ContentFilter, page int) ([]*models.Content, int, error)
	PageSize() int
}

// Handler обрабатывает HTTP-запросы списка контента.
type Handler struct {
	log         *slog.Logger
	service     Service
	contentType string
}

// New создает новый экземпляр Handler. Пустой contentType означает
// каталог без фильтра по типу.
func New(log *slog.Logger, service Service, contentType string) *Handler {
	return &Handler{
		log:         log,
		service:     service,
		contentType: contentType,
	}
}

// ServeHTTP godoc
// @Summary Список контента
// @Description Возвращает страницу каталога, доступного тарифному плану пользователя. Поддерживает фильтры по жанру, году выпуска и поиск по названию.
// @Tags Catalog
// @Produce  json
// @Param genres query int false "ID жанра"
// @Param release_year query int false "Год выпуска"
// @Param search query string false "Поиск по названию"
// @Param page query int false "Номер страницы, начиная с 1"
// @Success 200 {object} response.Response "Страница каталога"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры запроса"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /content [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, page, err := h.parseQuery(r)
	if err != nil {
		log.Error("invalid query parameters", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	username := middlewarectx.UsernameFromContext(r.Context())

	items, total, err := h.service.List(r.Context(), username, filter, page)
	if err != nil {
		log.Error("failed to list content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list content"))
		return
	}

	log.Info("content listed",
		slog.String("username", username),
		slog.Int("count", total),
		slog.Int("page", page))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":     total,
		"page":      page,
		"page_size": h.service.PageSize(),
		"results":   items,
	}))
}

// parseQuery разбирает параметры фильтрации и пагинации.
func (h *Handler) parseQuery(r *http.Request) (models.ContentFilter, int, error) {
	var filter models.ContentFilter

	if h.contentType != "" {
		ct := h.contentType
		filter.ContentType = &ct
	}

	q := r.URL.Query()

	if raw := q.Get("genres"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return filter, 0, errInvalidParam("genres")
		}
		filter.GenreID = &id
	}

	if raw := q.Get("release_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year <= 0 {
			return filter, 0, errInvalidParam("release_year")
		}
		filter.ReleaseYear = &year
	}

	if raw := q.Get("search"); raw != "" {
		search := raw
		filter.Search = &search
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return filter, 0, errInvalidParam("page")
		}
		page = parsed
	}

	return filter, page, nil
}

type invalidParamError string

func (e invalidParamError) Error() string {
	return "invalid query parameter: " + string(e)
}

func errInvalidParam(name string) error {
	return invalidParamError(name)
}
