package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreatePlan создает тестовый тарифный план и возвращает его id
func (f *TestDataFactory) CreatePlan(t *testing.T, name string, price, maxScreens int, quality string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO subscription_plans (name, price, max_screens, video_quality)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		name, price, maxScreens, quality).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateUser создает тестового пользователя с подпиской и возвращает его uid
func (f *TestDataFactory) CreateUser(t *testing.T, username, email string, planID *int, active bool, endDate *time.Time) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users
		(username, email, password_hash, role, plan_id, subscription_active, subscription_end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING uid`,
		username, email, "hashedpassword", "user", planID, active, endDate).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateContent создает тестовую единицу каталога и возвращает её id
func (f *TestDataFactory) CreateContent(t *testing.T, title, contentType string, releaseYear, minPlanID int) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO content
		(title, description, content_type, release_year, poster_url, min_plan_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		title, "description of "+title, contentType, releaseYear, "", minPlanID).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateGenre создает тестовый жанр и возвращает его id
func (f *TestDataFactory) CreateGenre(t *testing.T, name string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO genres (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// LinkGenre связывает контент с жанром
func (f *TestDataFactory) LinkGenre(t *testing.T, contentID, genreID int) {
	_, err := f.storage.DB.Exec(`INSERT INTO content_genres (content_id, genre_id) VALUES ($1, $2)`,
		contentID, genreID)
	require.NoError(t, err)
}

// CreateEpisode создает тестовый эпизод сериала
func (f *TestDataFactory) CreateEpisode(t *testing.T, contentID, season, number int, title string) {
	_, err := f.storage.DB.Exec(`INSERT INTO episodes
		(content_id, season_number, episode_number, title, description, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		contentID, season, number, title, "", 45)
	require.NoError(t, err)
}
