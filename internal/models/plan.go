// Package models содержит доменные структуры StreamZ: тарифные планы,
// пользователей и каталог контента. Структуры используются в бизнес-логике
// и при работе с хранилищем.
package models

// SubscriptionPlan представляет тарифный план подписки.
// Справочные данные: планы создаются администратором и практически не меняются.
// Доступ к контенту определяется исключительно полем Price: план видит весь
// контент, чей минимальный план не дороже его самого.
type SubscriptionPlan struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`          // Название плана
	Price        int    `json:"price"`         // Цена за месяц, определяет порядок планов
	MaxScreens   int    `json:"max_screens"`   // Максимум одновременных экранов
	VideoQuality string `json:"video_quality"` // Качество видео (SD, HD, UHD)
}
