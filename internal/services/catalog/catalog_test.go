package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/streamz/streamz-backend/internal/models"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListContent(ctx context.Context, maxPlanPrice int, filter models.ContentFilter, limit, offset int) ([]*models.Content, error) {
	args := m.Called(ctx, maxPlanPrice, filter, limit, offset)
	var items []*models.Content
	if args.Get(0) != nil {
		items = args.Get(0).([]*models.Content)
	}
	return items, args.Error(1)
}

func (m *MockCatalogRepository) CountContent(ctx context.Context, maxPlanPrice int, filter models.ContentFilter) (int, error) {
	args := m.Called(ctx, maxPlanPrice, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogRepository) ReadContent(ctx context.Context, id int) (*models.Content, error) {
	args := m.Called(ctx, id)
	var item *models.Content
	if args.Get(0) != nil {
		item = args.Get(0).(*models.Content)
	}
	return item, args.Error(1)
}

func (m *MockCatalogRepository) ListEpisodes(ctx context.Context, contentID int) ([]models.Episode, error) {
	args := m.Called(ctx, contentID)
	var episodes []models.Episode
	if args.Get(0) != nil {
		episodes = args.Get(0).([]models.Episode)
	}
	return episodes, args.Error(1)
}

func (m *MockCatalogRepository) ListGenres(ctx context.Context) ([]*models.Genre, error) {
	args := m.Called(ctx)
	var genres []*models.Genre
	if args.Get(0) != nil {
		genres = args.Get(0).([]*models.Genre)
	}
	return genres, args.Error(1)
}

func (m *MockCatalogRepository) ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	args := m.Called(ctx)
	var plans []*models.SubscriptionPlan
	if args.Get(0) != nil {
		plans = args.Get(0).([]*models.SubscriptionPlan)
	}
	return plans, args.Error(1)
}

func (m *MockCatalogRepository) GetPlan(ctx context.Context, id int) (*models.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	var plan *models.SubscriptionPlan
	if args.Get(0) != nil {
		plan = args.Get(0).(*models.SubscriptionPlan)
	}
	return plan, args.Error(1)
}

func (m *MockCatalogRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

// fakeCache — кеш в памяти с той же JSON-семантикой, что и редис-обертка.
type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) Get(key string, result any) (bool, error) {
	raw, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, result)
}

func (c *fakeCache) Set(key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = raw
	return nil
}

func (c *fakeCache) Invalidate(key string) error {
	delete(c.store, key)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

func userWithPlan(username string, planID int) *models.User {
	return &models.User{Username: username, PlanID: &planID, SubscriptionActive: true}
}

func TestCatalogService_List(t *testing.T) {
	basic := &models.SubscriptionPlan{ID: 1, Name: "Basic", Price: 5}
	premium := &models.SubscriptionPlan{ID: 3, Name: "Premium", Price: 15}

	t.Run("Аноним получает пустую страницу без обращения к каталогу", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)

		items, total, err := svc.List(context.Background(), "", models.ContentFilter{}, 1)

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Zero(t, total)
		repo.AssertNotCalled(t, "ListContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "CountContent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Неизвестный пользователь получает пустую страницу", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, sql.ErrNoRows)

		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)
		items, total, err := svc.List(context.Background(), "ghost", models.ContentFilter{}, 1)

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Zero(t, total)
	})

	t.Run("Пользователь без плана получает пустую страницу", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("GetUserByUsername", mock.Anything, "admin").
			Return(&models.User{Username: "admin", Role: "admin"}, nil)

		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)
		items, total, err := svc.List(context.Background(), "admin", models.ContentFilter{}, 1)

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Zero(t, total)
		repo.AssertNotCalled(t, "ListContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Цена плана пользователя становится порогом выборки", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(userWithPlan("alice", 1), nil)
		repo.On("GetPlan", mock.Anything, 1).Return(basic, nil)
		repo.On("CountContent", mock.Anything, 5, models.ContentFilter{}).Return(1, nil)
		repo.On("ListContent", mock.Anything, 5, models.ContentFilter{}, 20, 0).
			Return([]*models.Content{{ID: 1, Title: "Дешевый фильм", MinPlanPrice: 5}}, nil)

		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)
		items, total, err := svc.List(context.Background(), "alice", models.ContentFilter{}, 1)

		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "Дешевый фильм", items[0].Title)
		repo.AssertExpectations(t)
	})

	t.Run("Пагинация считает смещение от размера страницы", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("GetUserByUsername", mock.Anything, "bob").Return(userWithPlan("bob", 3), nil)
		repo.On("GetPlan", mock.Anything, 3).Return(premium, nil)
		repo.On("CountContent", mock.Anything, 15, models.ContentFilter{}).Return(45, nil)
		repo.On("ListContent", mock.Anything, 15, models.ContentFilter{}, 20, 40).
			Return([]*models.Content{{ID: 41}}, nil)

		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)
		items, total, err := svc.List(context.Background(), "bob", models.ContentFilter{}, 3)

		require.NoError(t, err)
		assert.Equal(t, 45, total)
		assert.Len(t, items, 1)
		repo.AssertExpectations(t)
	})

	t.Run("План пользователя читается из кеша при повторном запросе", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(userWithPlan("alice", 1), nil)
		repo.On("GetPlan", mock.Anything, 1).Return(basic, nil).Once()
		repo.On("CountContent", mock.Anything, 5, models.ContentFilter{}).Return(0, nil)
		repo.On("ListContent", mock.Anything, 5, models.ContentFilter{}, 20, 0).
			Return([]*models.Content{}, nil)

		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)

		_, _, err := svc.List(context.Background(), "alice", models.ContentFilter{}, 1)
		require.NoError(t, err)
		_, _, err = svc.List(context.Background(), "alice", models.ContentFilter{}, 1)
		require.NoError(t, err)

		repo.AssertExpectations(t)
	})
}

func TestCatalogService_Read(t *testing.T) {
	basic := &models.SubscriptionPlan{ID: 1, Name: "Basic", Price: 5}
	standard := &models.SubscriptionPlan{ID: 2, Name: "Standard", Price: 10}

	t.Run("Контент с ценой ровно по плану доступен", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(userWithPlan("alice", 2), nil)
		repo.On("GetPlan", mock.Anything, 2).Return(standard, nil)
		repo.On("ReadContent", mock.Anything, 7).
			Return(&models.Content{ID: 7, Title: "Фильм", ContentType: models.TypeMovie, MinPlanPrice: 10}, nil)

		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)
		detail, err := svc.Read(context.Background(), "alice", 7)

		require.NoError(t, err)
		assert.Equal(t, "Фильм", detail.Title)
	})

	t.Run("Контент дороже плана неотличим от несуществующего", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(userWithPlan("alice", 1), nil)
		repo.On("GetPlan", mock.Anything, 1).Return(basic, nil)
		repo.On("ReadContent", mock.Anything, 7).
			Return(&models.Content{ID: 7, MinPlanPrice: 10}, nil)

		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)
		_, err := svc.Read(context.Background(), "alice", 7)

		assert.ErrorIs(t, err, ErrContentNotFound)
	})

	t.Run("Несуществующий контент", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(userWithPlan("alice", 2), nil)
		repo.On("GetPlan", mock.Anything, 2).Return(standard, nil)
		repo.On("ReadContent", mock.Anything, 99).Return(nil, sql.ErrNoRows)

		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)
		_, err := svc.Read(context.Background(), "alice", 99)

		assert.ErrorIs(t, err, ErrContentNotFound)
	})

	t.Run("Аноним не видит детали", func(t *testing.T) {
		repo := new(MockCatalogRepository)

		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)
		_, err := svc.Read(context.Background(), "", 7)

		assert.ErrorIs(t, err, ErrContentNotFound)
		repo.AssertNotCalled(t, "ReadContent", mock.Anything, mock.Anything)
	})

	t.Run("Для сериала загружаются эпизоды", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(userWithPlan("alice", 2), nil)
		repo.On("GetPlan", mock.Anything, 2).Return(standard, nil)
		repo.On("ReadContent", mock.Anything, 7).
			Return(&models.Content{ID: 7, ContentType: models.TypeSeries, MinPlanPrice: 5}, nil)
		repo.On("ListEpisodes", mock.Anything, 7).
			Return([]models.Episode{{ID: 1, SeasonNumber: 1, EpisodeNumber: 1}}, nil)

		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)
		detail, err := svc.Read(context.Background(), "alice", 7)

		require.NoError(t, err)
		require.Len(t, detail.Episodes, 1)
	})

	t.Run("Проверка доступа работает после чтения из кеша", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(userWithPlan("alice", 2), nil)
		repo.On("GetUserByUsername", mock.Anything, "bob").Return(userWithPlan("bob", 1), nil)
		repo.On("GetPlan", mock.Anything, 2).Return(standard, nil)
		repo.On("GetPlan", mock.Anything, 1).Return(basic, nil)
		repo.On("ReadContent", mock.Anything, 7).
			Return(&models.Content{ID: 7, MinPlanPrice: 10}, nil).Once()

		svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)

		_, err := svc.Read(context.Background(), "alice", 7)
		require.NoError(t, err)

		// Повторное чтение идет из кеша, но порог доступа применяется заново.
		_, err = svc.Read(context.Background(), "bob", 7)
		assert.ErrorIs(t, err, ErrContentNotFound)
		repo.AssertExpectations(t)
	})
}

func TestCatalogService_Plans(t *testing.T) {
	plans := []*models.SubscriptionPlan{
		{ID: 1, Name: "Basic", Price: 5},
		{ID: 2, Name: "Standard", Price: 10},
	}

	repo := new(MockCatalogRepository)
	repo.On("ListPlans", mock.Anything).Return(plans, nil).Once()

	svc := NewCatalogService(repo, newFakeCache(), discardLogger(), 20)

	got, err := svc.Plans(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Второй вызов обслуживается из кеша.
	got, err = svc.Plans(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}
