package models

import "time"

// ContentFilter представляет необязательные фильтры списка каталога,
// передаваемые в слой доступа к данным. nil означает отсутствие фильтра.
type ContentFilter struct {
	ContentType *string // movie / series / documentary
	GenreID     *int    // Жанр по идентификатору
	ReleaseYear *int    // Точное совпадение года выпуска
	Search      *string // Подстрока в названии или описании, без учёта регистра
}

// ExpiryInfo — данные для уведомления о скором окончании срока подписки.
// Публикуется планировщиком в очередь и потребляется отправителем писем.
type ExpiryInfo struct {
	Email    string    `json:"email"`
	Username string    `json:"username"`
	PlanName string    `json:"plan_name"`
	EndDate  time.Time `json:"end_date"`
}
