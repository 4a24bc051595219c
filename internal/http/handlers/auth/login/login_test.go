package login

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

	"github.com/streamz/streamz-backend/internal/http/response"
	authservice "github.com/streamz/streamz-backend/internal/services/auth"
)

type MockLoginService struct {
	mock.Mock
}

func (m *MockLoginService) Login(ctx context.Context, username, password string) (string, string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.String(1), args.Error(2)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *MockLoginService)
		expectedStatus int
		expectedToken  string
	}{
		{
			name: "Успешный вход",
			body: map[string]string{"username": "alice", "password": "str0ngPassw0rd"},
			mockSetup: func(m *MockLoginService) {
				m.On("Login", mock.Anything, "alice", "str0ngPassw0rd").
					Return("jwt-token", "user", nil)
			},
			expectedStatus: http.StatusOK,
			expectedToken:  "jwt-token",
		},
		{
			name: "Неверные учетные данные",
			body: map[string]string{"username": "alice", "password": "wrong"},
			mockSetup: func(m *MockLoginService) {
				m.On("Login", mock.Anything, "alice", "wrong").
					Return("", "", authservice.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Отсутствует пароль",
			body:           map[string]string{"username": "alice"},
			mockSetup:      func(m *MockLoginService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockLoginService)
			tt.mockSetup(mockService)

			handler := New(discardLogger(), mockService)

			raw, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(raw))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedToken != "" {
				var resp response.Response
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				data := resp.Data.(map[string]any)
				assert.Equal(t, tt.expectedToken, data["token"])
			}

			mockService.AssertExpectations(t)
		})
	}
}
