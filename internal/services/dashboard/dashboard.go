// Package services содержит бизнес-логику сводной статистики по оплатам.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tranvh/tutor-admin/internal/lib/vnfmt"
	"github.com/tranvh/tutor-admin/internal/models"
)

// statsTTL — время жизни статистики в кеше. Статистика считается
// несколькими агрегирующими запросами, короткий TTL снимает нагрузку
// с хранилища при частом обновлении страницы.
const statsTTL = time.Minute

// StatsRepository определяет агрегирующие запросы для статистики.
type StatsRepository interface {
	// CountStudents возвращает количество учеников.
	CountStudents(ctx context.Context) (int, error)
	// SumPaid возвращает сумму оплаченных занятий за всё время.
	SumPaid(ctx context.Context) (int64, error)
	// SumUnpaid возвращает сумму неоплаченных занятий за всё время.
	SumUnpaid(ctx context.Context) (int64, error)
	// SumPaidByMonth возвращает сумму оплаченных занятий за месяц.
	SumPaidByMonth(ctx context.Context, month string) (int64, error)
	// SumUnpaidByMonth возвращает сумму неоплаченных занятий за месяц.
	SumUnpaidByMonth(ctx context.Context, month string) (int64, error)
	// SumSessionsByMonth возвращает количество занятий за месяц.
	SumSessionsByMonth(ctx context.Context, month string) (int, error)
	// DistinctMonths возвращает список месяцев, за которые есть записи.
	DistinctMonths(ctx context.Context) ([]string, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// DashboardService считает сводную статистику по ученикам и оплатам.
type DashboardService struct {
	repo  StatsRepository
	cache Cache
	log   *slog.Logger
}

// NewDashboardService создает новый экземпляр DashboardService.
func NewDashboardService(repo StatsRepository, cache Cache, log *slog.Logger) *DashboardService {
	return &DashboardService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Stats возвращает сводную статистику: количество учеников, суммы
// оплат за всё время и за указанный месяц. Пустой месяц означает текущий.
func (s *DashboardService) Stats(ctx context.Context, month string) (*models.DashboardStats, error) {
	if month == "" {
		month = vnfmt.MonthKey(time.Now())
	}
	if _, _, err := vnfmt.SplitMonthKey(month); err != nil {
		return nil, err
	}

	var stats *models.DashboardStats
	cacheKey := fmt.Sprintf("dashboard:stats:%s", month)
	found, err := s.cache.Get(cacheKey, &stats)
	if err != nil {
		s.log.Warn("failed to read stats from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return stats, nil
	}

	totalStudents, err := s.repo.CountStudents(ctx)
	if err != nil {
		return nil, err
	}
	totalPaid, err := s.repo.SumPaid(ctx)
	if err != nil {
		return nil, err
	}
	totalUnpaid, err := s.repo.SumUnpaid(ctx)
	if err != nil {
		return nil, err
	}
	monthPaid, err := s.repo.SumPaidByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	monthUnpaid, err := s.repo.SumUnpaidByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	stats = &models.DashboardStats{
		TotalStudents:      totalStudents,
		TotalPaidAllTime:   totalPaid,
		TotalUnpaidAllTime: totalUnpaid,
		CurrentMonthTotal:  monthPaid,
		CurrentMonthUnpaid: monthUnpaid,
	}

	if err := s.cache.Set(cacheKey, stats, statsTTL); err != nil {
		s.log.Warn("failed to cache stats", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return stats, nil
}

// MonthlyStats возвращает помесячную разбивку оплат по всем месяцам,
// за которые есть записи занятий, новые месяцы первыми.
func (s *DashboardService) MonthlyStats(ctx context.Context) ([]*models.MonthlyStats, error) {
	var result []*models.MonthlyStats
	const cacheKey = "dashboard:monthly"
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read monthly stats from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	months, err := s.repo.DistinctMonths(ctx)
	if err != nil {
		return nil, err
	}

	result = make([]*models.MonthlyStats, 0, len(months))
	for _, month := range months {
		paid, err := s.repo.SumPaidByMonth(ctx, month)
		if err != nil {
			return nil, err
		}
		unpaid, err := s.repo.SumUnpaidByMonth(ctx, month)
		if err != nil {
			return nil, err
		}
		sessions, err := s.repo.SumSessionsByMonth(ctx, month)
		if err != nil {
			return nil, err
		}
		result = append(result, &models.MonthlyStats{
			Month:         month,
			TotalPaid:     paid,
			TotalUnpaid:   unpaid,
			TotalSessions: sessions,
		})
	}

	if err := s.cache.Set(cacheKey, result, statsTTL); err != nil {
		s.log.Warn("failed to cache monthly stats", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return result, nil
}
