package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/streamz/streamz-backend/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Вставка одной строкой: создание пользователя и установка полей подписки
// происходят атомарно.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, username, password_hash, first_name, last_name,
			      role, plan_id, subscription_active, subscription_end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.PlanID, user.SubscriptionActive, user.SubscriptionEndDate).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, first_name, last_name,
			      role, plan_id, subscription_active, subscription_end_date
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	var planID sql.NullInt64
	var endDate sql.NullTime
	if err := row.Scan(&u.UUID, &u.Email, &u.Username, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.Role, &planID,
		&u.SubscriptionActive, &endDate); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if planID.Valid {
		id := int(planID.Int64)
		u.PlanID = &id
	}
	if endDate.Valid {
		u.SubscriptionEndDate = &endDate.Time
	}
	return u, nil
}

// FindSubscriptionsExpiringTomorrow находит пользователей, чей срок подписки
// истекает завтра. Используется планировщиком уведомлений.
func (s *Storage) FindSubscriptionsExpiringTomorrow(ctx context.Context) ([]*models.ExpiryInfo, error) {
	const op = "storage.FindSubscriptionsExpiringTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      u.email,
			      u.username,
			      p.name,
			      u.subscription_end_date
			  FROM users u
			  JOIN subscription_plans p ON u.plan_id = p.id
			  WHERE u.subscription_active = true
			    AND u.subscription_end_date = CURRENT_DATE + INTERVAL '1 day';`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpiryInfo
	for rows.Next() {
		var info models.ExpiryInfo
		if err = rows.Scan(&info.Email, &info.Username, &info.PlanName, &info.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
