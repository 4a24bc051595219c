// Package services содержит планировщик уведомлений: периодический поиск
// пользователей, чей срок подписки истекает завтра, и публикация сообщений
// в очередь уведомлений.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/streamz/streamz-backend/internal/lib/sl"
	"github.com/streamz/streamz-backend/internal/models"
	"github.com/streamz/streamz-backend/internal/rabbitmq"
)

// UserRepository описывает выборку истекающих подписок.
type UserRepository interface {
	FindSubscriptionsExpiringTomorrow(ctx context.Context) ([]*models.ExpiryInfo, error)
}

// SchedulerService периодически ищет истекающие подписки.
type SchedulerService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo UserRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindExpiringSubscriptions запускает поиск сразу и далее каждые 12 часов,
// пока контекст не отменен.
func (s *SchedulerService) FindExpiringSubscriptions(ctx context.Context, channel *amqp.Channel) {
	s.runFindExpiringSubscriptions(ctx, channel)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindExpiringSubscriptions(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindExpiringSubscriptions(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting scan for subscriptions expiring tomorrow")
	infos, err := s.repo.FindSubscriptionsExpiringTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find expiring subscriptions", sl.Err(err))
		return
	}
	if len(infos) == 0 {
		s.log.Info("no expiring subscriptions found")
		return
	}
	s.log.Info("found expiring subscriptions", "count", len(infos))
	for _, info := range infos {
		err = rabbitmq.PublishMessage(channel, rabbitmq.NotificationExchange, "subscription-expiring", info)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
