// Package services содержит бизнес-логику каталога StreamZ: правило доступа
// по тарифному плану, пагинацию и кеширование справочных данных.
//
// Правило доступа: пользователь с планом P видит весь контент, чей минимальный
// план не дороже P (включительно, сравнение строго по цене). Аноним,
// неизвестный пользователь и пользователь без плана не видят ничего —
// это пустой результат, а не ошибка авторизации.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/streamz/streamz-backend/internal/models"
)

// ErrContentNotFound возвращается и для несуществующего контента, и для
// контента вне тарифа пользователя: снаружи эти случаи неразличимы.
var ErrContentNotFound = errors.New("content not found")

// cacheTTL — время жизни кешируемых справочных данных.
const cacheTTL = time.Hour

// CatalogRepository определяет методы хранилища, нужные каталогу.
type CatalogRepository interface {
	// ListContent возвращает страницу контента, доступного по цене плана.
	ListContent(ctx context.Context, maxPlanPrice int, filter models.ContentFilter, limit, offset int) ([]*models.Content, error)
	// CountContent считает контент, доступный по цене плана.
	CountContent(ctx context.Context, maxPlanPrice int, filter models.ContentFilter) (int, error)
	// ReadContent возвращает единицу каталога без проверки прав.
	ReadContent(ctx context.Context, id int) (*models.Content, error)
	// ListEpisodes возвращает эпизоды сериала.
	ListEpisodes(ctx context.Context, contentID int) ([]models.Episode, error)
	// ListGenres возвращает справочник жанров.
	ListGenres(ctx context.Context) ([]*models.Genre, error)
	// ListPlans возвращает справочник тарифных планов.
	ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error)
	// GetPlan возвращает тарифный план по идентификатору.
	GetPlan(ctx context.Context, id int) (*models.SubscriptionPlan, error)
	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CatalogService реализует бизнес-логику каталога.
type CatalogService struct {
	repo     CatalogRepository
	cache    Cache
	log      *slog.Logger
	pageSize int
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo CatalogRepository, cache Cache, log *slog.Logger, pageSize int) *CatalogService {
	return &CatalogService{
		repo:     repo,
		cache:    cache,
		log:      log,
		pageSize: pageSize,
	}
}

// PageSize возвращает фиксированный размер страницы.
func (s *CatalogService) PageSize() int {
	return s.pageSize
}

// entitlementPrice возвращает цену плана пользователя и признак того,
// что пользователю вообще доступен каталог. username == "" означает анонима.
// Статус и дата окончания подписки намеренно не проверяются: источник истины
// для доступа — наличие плана.
func (s *CatalogService) entitlementPrice(ctx context.Context, username string) (int, bool, error) {
	if username == "" {
		return 0, false, nil
	}
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if user.PlanID == nil {
		return 0, false, nil
	}

	plan, err := s.planByID(ctx, *user.PlanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return plan.Price, true, nil
}

// planByID возвращает план из кеша или хранилища.
func (s *CatalogService) planByID(ctx context.Context, id int) (*models.SubscriptionPlan, error) {
	cacheKey := fmt.Sprintf("plan:%d", id)
	var cached models.SubscriptionPlan
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plan from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	plan, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, plan, cacheTTL); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return plan, nil
}

// List возвращает страницу каталога, доступную пользователю, и общее число
// подходящих записей. Для анонима и пользователя без плана — пустая страница.
func (s *CatalogService) List(ctx context.Context, username string, filter models.ContentFilter, page int) ([]*models.Content, int, error) {
	price, ok, err := s.entitlementPrice(ctx, username)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return []*models.Content{}, 0, nil
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * s.pageSize

	total, err := s.repo.CountContent(ctx, price, filter)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.repo.ListContent(ctx, price, filter, s.pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*models.Content{}
	}
	return items, total, nil
}

// cachedContent хранит детальное представление вместе с ценой минимального
// плана: цена не сериализуется в API-представление, а для проверки доступа
// после чтения из кеша она нужна.
type cachedContent struct {
	Detail       models.ContentDetail `json:"detail"`
	MinPlanPrice int                  `json:"min_plan_price"`
}

// Read возвращает детальное представление единицы каталога.
// Контент вне тарифа пользователя неотличим от несуществующего.
func (s *CatalogService) Read(ctx context.Context, username string, id int) (*models.ContentDetail, error) {
	price, ok, err := s.entitlementPrice(ctx, username)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrContentNotFound
	}

	detail, minPrice, err := s.readDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	if minPrice > price {
		return nil, ErrContentNotFound
	}
	return detail, nil
}

// readDetail читает детальное представление из кеша или хранилища.
func (s *CatalogService) readDetail(ctx context.Context, id int) (*models.ContentDetail, int, error) {
	cacheKey := fmt.Sprintf("content:%d", id)
	var cached cachedContent
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read content from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached.Detail, cached.MinPlanPrice, nil
	}

	item, err := s.repo.ReadContent(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	detail := models.ContentDetail{Content: *item}
	if item.ContentType == models.TypeSeries {
		episodes, err := s.repo.ListEpisodes(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		detail.Episodes = episodes
	}

	if err := s.cache.Set(cacheKey, cachedContent{Detail: detail, MinPlanPrice: item.MinPlanPrice}, cacheTTL); err != nil {
		s.log.Warn("failed to cache content", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return &detail, item.MinPlanPrice, nil
}

// Genres возвращает справочник жанров.
func (s *CatalogService) Genres(ctx context.Context) ([]*models.Genre, error) {
	return s.repo.ListGenres(ctx)
}

// Plans возвращает справочник тарифных планов, кешируя его целиком.
func (s *CatalogService) Plans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	const cacheKey = "plans:all"
	var cached []*models.SubscriptionPlan
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plans from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, plans, cacheTTL); err != nil {
		s.log.Warn("failed to cache plans", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return plans, nil
}
