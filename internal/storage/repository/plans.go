package repository

import (
	"context"
	"fmt"

	"github.com/streamz/streamz-backend/internal/models"
)

// GetPlan возвращает тарифный план по идентификатору.
func (s *Storage) GetPlan(ctx context.Context, id int) (*models.SubscriptionPlan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, max_screens, video_quality
			  FROM subscription_plans
			  WHERE id = $1`
	var plan models.SubscriptionPlan
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&plan.ID, &plan.Name, &plan.Price, &plan.MaxScreens, &plan.VideoQuality); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &plan, nil
}

// ListPlans возвращает все тарифные планы в порядке возрастания цены.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, max_screens, video_quality
			  FROM subscription_plans
			  ORDER BY price, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionPlan
	for rows.Next() {
		var plan models.SubscriptionPlan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Price, &plan.MaxScreens, &plan.VideoQuality); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &plan)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
