package read

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/streamz/streamz-backend/internal/http/middlewarectx"
	"github.com/streamz/streamz-backend/internal/http/response"
	"github.com/streamz/streamz-backend/internal/models"
	catalog "github.com/streamz/streamz-backend/internal/services/catalog"
)

type MockReadService struct {
	mock.Mock
}

func (m *MockReadService) Read(ctx context.Context, username string, id int) (*models.ContentDetail, error) {
	args := m.Called(ctx, username, id)
	var detail *models.ContentDetail
	if args.Get(0) != nil {
		detail = args.Get(0).(*models.ContentDetail)
	}
	return detail, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

func TestReadHandler(t *testing.T) {
	detail := &models.ContentDetail{
		Content: models.Content{ID: 7, Title: "Сериал", ContentType: models.TypeSeries},
		Episodes: []models.Episode{
			{ID: 1, ContentID: 7, SeasonNumber: 1, EpisodeNumber: 1, Title: "Пилот"},
		},
	}

	tests := []struct {
		name           string
		id             string
		username       string
		mockSetup      func(m *MockReadService)
		expectedStatus int
	}{
		{
			name:     "Доступный контент возвращается с эпизодами",
			id:       "7",
			username: "alice",
			mockSetup: func(m *MockReadService) {
				m.On("Read", mock.Anything, "alice", 7).Return(detail, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "Недоступный контент отдается как 404",
			id:       "7",
			username: "basicuser",
			mockSetup: func(m *MockReadService) {
				m.On("Read", mock.Anything, "basicuser", 7).
					Return(nil, catalog.ErrContentNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:     "Анонимный запрос отдается как 404",
			id:       "7",
			username: "",
			mockSetup: func(m *MockReadService) {
				m.On("Read", mock.Anything, "", 7).
					Return(nil, catalog.ErrContentNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Некорректный ID",
			id:             "abc",
			username:       "alice",
			mockSetup:      func(m *MockReadService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockReadService)
			tt.mockSetup(mockService)

			handler := New(discardLogger(), mockService)

			req := httptest.NewRequest(http.MethodGet, "/content/"+tt.id, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.username != "" {
				ctx = context.WithValue(ctx, middlewarectx.User, tt.username)
			}
			req = req.WithContext(ctx)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp response.Response
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, response.StatusOK, resp.Status)
			}

			mockService.AssertExpectations(t)
		})
	}
}
