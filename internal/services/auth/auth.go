// Package services содержит бизнес-логику регистрации и аутентификации StreamZ.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/streamz/streamz-backend/internal/lib/jwt"
	"github.com/streamz/streamz-backend/internal/lib/month"
	"github.com/streamz/streamz-backend/internal/lib/password"
	"github.com/streamz/streamz-backend/internal/lib/sl"
	"github.com/streamz/streamz-backend/internal/models"
)

// Ошибки бизнес-уровня, по которым обработчики выбирают HTTP-статус и поле.
var (
	ErrPlanNotFound       = errors.New("subscription plan not found")
	ErrUserExists         = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// uniqueViolation — код ошибки PostgreSQL для нарушения уникальности.
const uniqueViolation = "23505"

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// PlanRepository описывает контракт для чтения тарифных планов.
type PlanRepository interface {
	GetPlan(ctx context.Context, id int) (*models.SubscriptionPlan, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	plans    PlanRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, plans PlanRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		plans:    plans,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с выбранным тарифным планом.
// Вся валидация выполняется до обращения к хранилищу: политика пароля,
// существование плана. Срок подписки — один календарный месяц от даты
// регистрации (с прижатием к концу месяца), подписка сразу активна.
func (s *AuthService) Register(ctx context.Context, input models.RegisterInput) (*models.User, *models.SubscriptionPlan, error) {
	if err := password.CheckPolicy(input.Password, input.Username, input.Email); err != nil {
		return nil, nil, err
	}

	plan, err := s.plans.GetPlan(ctx, input.PlanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrPlanNotFound
		}
		return nil, nil, err
	}

	hashed, err := password.GetHash(input.Password)
	if err != nil {
		return nil, nil, err
	}

	endDate := month.AddMonths(time.Now().UTC(), 1)
	user := models.User{
		Email:               input.Email,
		Username:            input.Username,
		PasswordHash:        hashed,
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Role:                "user",
		PlanID:              &plan.ID,
		SubscriptionActive:  true,
		SubscriptionEndDate: &endDate,
	}

	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, nil, ErrUserExists
		}
		return nil, nil, err
	}
	user.UUID = uid

	s.log.Info("registered new user",
		slog.String("username", user.Username), slog.String("plan", plan.Name))
	return &user, plan, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UUID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username: claims.Username,
		Role:     claims.Role,
		UUID:     claims.UserUID,
	}, nil
}

// EnsureAdmin идемпотентно создает служебного администратора, если его нет.
// Вызывается один раз при старте приложения, после миграций. Администратор
// создается без тарифного плана и не видит каталог.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, rawPassword string) error {
	const op = "services.auth.EnsureAdmin"
	if username == "" || rawPassword == "" {
		s.log.Info("admin bootstrap skipped, credentials not configured")
		return nil
	}

	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		s.log.Info("admin user already exists", slog.String("username", username))
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = s.users.RegisterUser(ctx, models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         "admin",
	}); err != nil {
		s.log.Error("failed to create admin user", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("admin user created", slog.String("username", username))
	return nil
}
