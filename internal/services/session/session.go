// Package services содержит бизнес-логику учёта проведённых занятий.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tranvh/tutor-admin/internal/lib/vnfmt"
	"github.com/tranvh/tutor-admin/internal/models"
)

// SessionRepository определяет методы для работы с записями занятий в хранилище.
type SessionRepository interface {
	// CreateSession добавляет новую запись занятия и возвращает её ID.
	CreateSession(ctx context.Context, record models.SessionRecord) (int64, error)
	// ReadSession возвращает запись занятия по ID.
	ReadSession(ctx context.Context, id int64) (*models.SessionRecord, error)
	// RemoveSession удаляет запись по ID и возвращает количество удалённых записей.
	RemoveSession(ctx context.Context, id int64) (int, error)
	// TogglePayment переключает признак оплаты записи и возвращает её новое состояние.
	TogglePayment(ctx context.Context, id int64) (*models.SessionRecord, error)
	// ListSessions возвращает все записи занятий, новые первыми.
	ListSessions(ctx context.Context) ([]*models.SessionRecord, error)
	// ListSessionsByMonth возвращает записи за месяц.
	ListSessionsByMonth(ctx context.Context, month string) ([]*models.SessionRecord, error)
	// DistinctMonths возвращает список месяцев, за которые есть записи.
	DistinctMonths(ctx context.Context) ([]string, error)
}

// StudentReader возвращает ученика по ID. Нужен, чтобы подставить
// цену за час ученика, когда запись приходит без собственной цены.
type StudentReader interface {
	ReadStudent(ctx context.Context, id int64) (*models.Student, error)
}

// SessionService реализует бизнес-логику работы с записями занятий.
type SessionService struct {
	repo     SessionRepository
	students StudentReader
	log      *slog.Logger
}

// NewSessionService создает новый экземпляр SessionService.
func NewSessionService(repo SessionRepository, students StudentReader, log *slog.Logger) *SessionService {
	return &SessionService{
		repo:     repo,
		students: students,
		log:      log,
	}
}

// Create создает новую запись занятия и возвращает её ID. Ключ месяца
// выводится из даты занятия, сумма всегда пересчитывается как часы,
// умноженные на цену за час.
func (s *SessionService) Create(ctx context.Context, req models.DummySession) (int64, error) {
	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		return 0, fmt.Errorf("invalid session date: %w", err)
	}

	pricePerHour := req.PricePerHour
	if pricePerHour == 0 {
		student, err := s.students.ReadStudent(ctx, req.StudentID)
		if err != nil {
			return 0, err
		}
		pricePerHour = student.PricePerHour
	}

	record := models.SessionRecord{
		StudentID:    req.StudentID,
		SessionDate:  sessionDate,
		Month:        vnfmt.MonthKey(sessionDate),
		Sessions:     req.Sessions,
		Hours:        req.Hours,
		PricePerHour: pricePerHour,
		TotalAmount:  int64(req.Hours) * pricePerHour,
		Paid:         req.Paid,
	}

	id, err := s.repo.CreateSession(ctx, record)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new session record",
		slog.Int64("id", id),
		slog.Int64("student_id", req.StudentID),
		slog.String("month", record.Month))

	return id, nil
}

// Read возвращает запись занятия по ID.
func (s *SessionService) Read(ctx context.Context, id int64) (*models.SessionRecord, error) {
	return s.repo.ReadSession(ctx, id)
}

// Remove удаляет запись занятия по ID.
func (s *SessionService) Remove(ctx context.Context, id int64) (int, error) {
	return s.repo.RemoveSession(ctx, id)
}

// TogglePayment переключает признак оплаты записи между оплачено и нет.
func (s *SessionService) TogglePayment(ctx context.Context, id int64) (*models.SessionRecord, error) {
	record, err := s.repo.TogglePayment(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("toggled session payment",
		slog.Int64("id", id), slog.Bool("paid", record.Paid))
	return record, nil
}

// List возвращает все записи занятий, новые первыми.
func (s *SessionService) List(ctx context.Context) ([]*models.SessionRecord, error) {
	return s.repo.ListSessions(ctx)
}

// ListByMonth возвращает записи занятий за указанный месяц.
func (s *SessionService) ListByMonth(ctx context.Context, month string) ([]*models.SessionRecord, error) {
	if _, _, err := vnfmt.SplitMonthKey(month); err != nil {
		return nil, err
	}
	return s.repo.ListSessionsByMonth(ctx, month)
}

// Months возвращает список месяцев, за которые есть записи, новые первыми.
func (s *SessionService) Months(ctx context.Context) ([]string, error) {
	return s.repo.DistinctMonths(ctx)
}
