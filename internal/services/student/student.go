// Package services содержит бизнес-логику для управления учениками и кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tranvh/tutor-admin/internal/models"
)

// StudentRepository определяет методы для работы с учениками в хранилище.
type StudentRepository interface {
	// CreateStudent добавляет нового ученика и возвращает его ID.
	CreateStudent(ctx context.Context, student models.Student) (int64, error)
	// ReadStudent возвращает ученика по ID.
	ReadStudent(ctx context.Context, id int64) (*models.Student, error)
	// UpdateStudent обновляет данные ученика по ID.
	UpdateStudent(ctx context.Context, student models.Student, id int64) (int, error)
	// RemoveStudent удаляет ученика по ID и возвращает количество удалённых записей.
	RemoveStudent(ctx context.Context, id int64) (int, error)
	// ListStudents возвращает всех учеников, отсортированных по имени.
	ListStudents(ctx context.Context) ([]*models.Student, error)
	// SumPaidByStudent возвращает сумму оплаченных занятий ученика.
	SumPaidByStudent(ctx context.Context, id int64) (int64, error)
	// SumUnpaidByStudent возвращает сумму неоплаченных занятий ученика.
	SumUnpaidByStudent(ctx context.Context, id int64) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// StudentService реализует бизнес-логику работы с учениками, включая кеширование.
type StudentService struct {
	repo  StudentRepository
	cache Cache
	log   *slog.Logger
}

// NewStudentService создает новый экземпляр StudentService.
func NewStudentService(repo StudentRepository, cache Cache, log *slog.Logger) *StudentService {
	return &StudentService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает нового ученика, кеширует его и возвращает ID.
func (s *StudentService) Create(ctx context.Context, req models.DummyStudent) (int64, error) {
	student := models.Student{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Schedule:     req.Schedule,
		PricePerHour: req.PricePerHour,
		Notes:        req.Notes,
	}

	id, err := s.repo.CreateStudent(ctx, student)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new student", slog.Int64("id", id))

	// кешируем с присвоенным ID, иначе попадание в кеш вернёт id = 0
	student.ID = id
	cacheKey := fmt.Sprintf("student:%d", id)
	if err := s.cache.Set(cacheKey, student, time.Hour); err != nil {
		s.log.Warn("failed to cache student", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return id, nil
}

// Read возвращает ученика по ID, используя кеш или репозиторий.
func (s *StudentService) Read(ctx context.Context, id int64) (*models.Student, error) {
	var result *models.Student
	cacheKey := fmt.Sprintf("student:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey),
				slog.Any("err", err))
		}
	}
	return result, nil
}

// Update обновляет ученика и обновляет кеш.
func (s *StudentService) Update(ctx context.Context, req models.DummyStudent, id int64) (int, error) {
	student := models.Student{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Schedule:     req.Schedule,
		PricePerHour: req.PricePerHour,
		Notes:        req.Notes,
	}

	res, err := s.repo.UpdateStudent(ctx, student, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated student in storage", slog.Int64("id", id))

	student.ID = id
	cacheKey := fmt.Sprintf("student:%d", id)
	if err := s.cache.Set(cacheKey, student, time.Hour); err != nil {
		s.log.Warn("failed to cache student", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return res, nil
}

// Remove удаляет ученика по ID и инвалидирует кеш.
// Записи занятий ученика удаляются каскадно на уровне хранилища.
func (s *StudentService) Remove(ctx context.Context, id int64) (int, error) {
	cacheKey := fmt.Sprintf("student:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveStudent(ctx, id)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// List возвращает всех учеников с суммами оплаченных и неоплаченных занятий.
func (s *StudentService) List(ctx context.Context) ([]*models.StudentInfo, error) {
	students, err := s.repo.ListStudents(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*models.StudentInfo, 0, len(students))
	for _, student := range students {
		paid, err := s.repo.SumPaidByStudent(ctx, student.ID)
		if err != nil {
			return nil, err
		}
		unpaid, err := s.repo.SumUnpaidByStudent(ctx, student.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &models.StudentInfo{
			Student:     *student,
			TotalPaid:   paid,
			TotalUnpaid: unpaid,
		})
	}
	return result, nil
}
