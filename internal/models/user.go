package models

import "time"

// User представляет зарегистрированного пользователя StreamZ.
// PlanID может быть nil — пользователь без выбранного плана (например,
// служебный администратор) не имеет доступа к каталогу.
type User struct {
	UUID                string     `json:"id"`
	Email               string     `json:"email"`
	Username            string     `json:"username"`
	PasswordHash        string     `json:"-"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Role                string     `json:"role"` // admin или user
	PlanID              *int       `json:"plan"`
	SubscriptionActive  bool       `json:"subscription_active"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date"`
}

// RegisterInput — проверенные данные регистрации, передаваемые из обработчика
// в сервис. Пароль здесь уже прошёл проверку совпадения с подтверждением.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	PlanID    int
}
