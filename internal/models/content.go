package models

// Типы контента каталога. Хранятся в БД как строки.
const (
	TypeMovie       = "movie"
	TypeSeries      = "series"
	TypeDocumentary = "documentary"
)

// Genre представляет жанр контента. Справочные данные.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Content представляет единицу каталога: фильм, сериал или документальный фильм.
// MinPlanPrice — цена минимального плана, денормализованная из справочника планов
// при чтении; именно по ней выполняется проверка доступа.
type Content struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ContentType  string  `json:"content_type"`
	ReleaseYear  int     `json:"release_year"`
	PosterURL    string  `json:"poster_url,omitempty"`
	MinPlanID    int     `json:"min_subscription_plan"`
	MinPlanPrice int     `json:"-"`
	Genres       []Genre `json:"genres"`
}

// Episode представляет эпизод сериала.
type Episode struct {
	ID              int    `json:"id"`
	ContentID       int    `json:"-"`
	SeasonNumber    int    `json:"season_number"`
	EpisodeNumber   int    `json:"episode_number"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ContentDetail — расширенное представление для детального просмотра:
// для сериалов дополнительно включает эпизоды.
type ContentDetail struct {
	Content
	Episodes []Episode `json:"episodes,omitempty"`
}
