// Package services содержит планировщик напоминаний об оплате: раз в сутки
// он собирает долги за прошлый месяц и публикует их в очередь отправщика.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"
	"github.com/tranvh/tutor-admin/internal/lib/rabbitmq"
	"github.com/tranvh/tutor-admin/internal/lib/sl"
	"github.com/tranvh/tutor-admin/internal/lib/vnfmt"
	"github.com/tranvh/tutor-admin/internal/models"
)

// SessionRepository возвращает долги учеников за месяц. Ученики без
// почты родителя в выборку не попадают.
type SessionRepository interface {
	FindUnpaidForMonth(ctx context.Context, month string) ([]*models.ReminderInfo, error)
}

// SchedulerService периодически публикует напоминания о неоплаченных занятиях.
type SchedulerService struct {
	repo SessionRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo SessionRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindUnpaidDuePreviousMonth раз в сутки ищет долги за прошлый месяц
// и публикует напоминание по каждому ученику. Блокируется до отмены контекста.
func (s *SchedulerService) FindUnpaidDuePreviousMonth(ctx context.Context, channel *amqp.Channel) {
	s.runFindUnpaidDuePreviousMonth(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runFindUnpaidDuePreviousMonth(ctx, channel)
		}
	}
}

func (s *SchedulerService) runFindUnpaidDuePreviousMonth(ctx context.Context, channel *amqp.Channel) {
	// последний день прошлого месяца, чтобы не споткнуться о 29-31 число
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	month := vnfmt.MonthKey(firstOfMonth.AddDate(0, 0, -1))
	s.log.Info("starting service to find unpaid sessions", slog.String("month", month))

	reminders, err := s.repo.FindUnpaidForMonth(ctx, month)
	if err != nil {
		s.log.Error("failed to find unpaid sessions", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Info("no unpaid sessions found")
		return
	}
	s.log.Info("found students with unpaid sessions", "count", len(reminders))
	for _, reminder := range reminders {
		err = rabbitmq.PublishMessage(channel, rabbitmq.ExchangeName, rabbitmq.RoutingKeyUnpaid, reminder)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
