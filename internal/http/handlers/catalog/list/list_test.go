package list

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/streamz/streamz-backend/internal/http/middlewarectx"
	"github.com/streamz/streamz-backend/internal/http/response"
	"github.com/streamz/streamz-backend/internal/models"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context, username string, filter models.ContentFilter, page int) ([]*models.Content, int, error) {
	args := m.Called(ctx, username, filter, page)
	var items []*models.Content
	if args.Get(0) != nil {
		items = args.Get(0).([]*models.Content)
	}
	return items, args.Int(1), args.Error(2)
}

func (m *MockCatalogService) PageSize() int {
	return 20
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

func TestListHandler(t *testing.T) {
	sample := []*models.Content{
		{ID: 1, Title: "Контент A", ContentType: models.TypeMovie},
		{ID: 2, Title: "Контент B", ContentType: models.TypeMovie},
	}

	tests := []struct {
		name           string
		contentType    string
		target         string
		username       string
		mockSetup      func(m *MockCatalogService)
		expectedStatus int
		expectedCount  float64
	}{
		{
			name:     "Авторизованный пользователь получает страницу каталога",
			target:   "/content",
			username: "alice",
			mockSetup: func(m *MockCatalogService) {
				m.On("List", mock.Anything, "alice", models.ContentFilter{}, 1).
					Return(sample, 2, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:     "Анонимный запрос получает пустой результат",
			target:   "/content",
			username: "",
			mockSetup: func(m *MockCatalogService) {
				m.On("List", mock.Anything, "", models.ContentFilter{}, 1).
					Return([]*models.Content{}, 0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:        "Маршрут фильмов фиксирует тип контента",
			contentType: models.TypeMovie,
			target:      "/content/movies",
			username:    "alice",
			mockSetup: func(m *MockCatalogService) {
				m.On("List", mock.Anything, "alice", mock.MatchedBy(func(f models.ContentFilter) bool {
					return f.ContentType != nil && *f.ContentType == models.TypeMovie
				}), 1).Return(sample, 2, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:     "Фильтры жанра и года передаются в сервис",
			target:   "/content?genres=3&release_year=2020&page=2",
			username: "alice",
			mockSetup: func(m *MockCatalogService) {
				m.On("List", mock.Anything, "alice", mock.MatchedBy(func(f models.ContentFilter) bool {
					return f.GenreID != nil && *f.GenreID == 3 &&
						f.ReleaseYear != nil && *f.ReleaseYear == 2020
				}), 2).Return([]*models.Content{}, 0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "Некорректный номер страницы",
			target:         "/content?page=zero",
			username:       "alice",
			mockSetup:      func(m *MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Некорректный фильтр жанра",
			target:         "/content?genres=-1",
			username:       "alice",
			mockSetup:      func(m *MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCatalogService)
			tt.mockSetup(mockService)

			handler := New(discardLogger(), mockService, tt.contentType)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.username != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.User, tt.username)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp response.Response
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				data := resp.Data.(map[string]any)
				assert.Equal(t, tt.expectedCount, data["count"])
				assert.Equal(t, float64(20), data["page_size"])
			}

			mockService.AssertExpectations(t)
		})
	}
}
