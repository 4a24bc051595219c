// Package register реализует HTTP-обработчик регистрации пользователя StreamZ.
//
// Регистрация проверяет совпадение пароля с подтверждением, политику сложности
// пароля и существование выбранного тарифного плана до создания пользователя.
// Все ошибки валидации привязываются к конкретному полю запроса.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/streamz/streamz-backend/internal/http/response"
	"github.com/streamz/streamz-backend/internal/lib/password"
	"github.com/streamz/streamz-backend/internal/lib/sl"
	"github.com/streamz/streamz-backend/internal/models"
	authservice "github.com/streamz/streamz-backend/internal/services/auth"
)

// Request — входные данные для регистрации.
type Request struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirmation" validate:"required"`
	FirstName       string `json:"first_name" validate:"max=100"`
	LastName        string `json:"last_name" validate:"max=100"`
	PlanID          int    `json:"plan" validate:"required,gt=0"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, input models.RegisterInput) (*models.User, *models.SubscriptionPlan, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя с выбранным тарифным планом. Срок подписки — один календарный месяц от даты регистрации, подписка сразу активна.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные регистрации"
// @Success 201 {object} map[string]any "Созданный пользователь с деталями плана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.Response "Ошибка валидации с привязкой к полю"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя или email заняты"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	// Совпадение пароля и подтверждения проверяется до любых обращений
	// к хранилищу: при несовпадении пользователь не создается.
	if req.Password != req.PasswordConfirm {
		log.Error("password confirmation mismatch")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.FieldError("password", "passwords do not match"))
		return
	}
	log.Info("all fields are validated")

	user, plan, err := h.service.Register(r.Context(), models.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PlanID:    req.PlanID,
	})
	if err != nil {
		h.renderRegisterError(w, r, log, err)
		return
	}

	log.Info("user registered", slog.String("username", user.Username))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user":         user,
		"plan_details": plan,
	}))
}

// renderRegisterError переводит бизнес-ошибки регистрации в HTTP-ответы
// с привязкой к полю.
func (h *Handler) renderRegisterError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, password.ErrTooShort),
		errors.Is(err, password.ErrAllNumeric),
		errors.Is(err, password.ErrTooCommon),
		errors.Is(err, password.ErrSimilarUser):
		log.Error("weak password rejected", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.FieldError("password", err.Error()))
	case errors.Is(err, authservice.ErrPlanNotFound):
		log.Error("unknown subscription plan", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.FieldError("plan", err.Error()))
	case errors.Is(err, authservice.ErrUserExists):
		log.Error("duplicate registration", sl.Err(err))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
	default:
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
	}
}
