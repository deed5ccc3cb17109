package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tranvh/tutor-admin/internal/models"
)

const sessionColumns = `sr.id, sr.student_id, st.name, sr.session_date, sr.month,
			      sr.sessions, sr.hours, sr.price_per_hour, sr.total_amount, sr.paid, sr.created_at`

// CreateSession вставляет новую запись занятия и возвращает её ID.
func (s *Storage) CreateSession(ctx context.Context, rec models.SessionRecord) (int64, error) {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO session_records (student_id, session_date, month, sessions,
			      hours, price_per_hour, total_amount, paid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		rec.StudentID, rec.SessionDate, rec.Month, rec.Sessions,
		rec.Hours, rec.PricePerHour, rec.TotalAmount, rec.Paid).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadSession возвращает запись занятия по её ID.
func (s *Storage) ReadSession(ctx context.Context, id int64) (*models.SessionRecord, error) {
	const op = "storage.ReadSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + sessionColumns + `
			  FROM session_records sr
			  JOIN students st ON st.id = sr.student_id
			  WHERE sr.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var rec models.SessionRecord
	if err := row.Scan(&rec.ID, &rec.StudentID, &rec.StudentName, &rec.SessionDate, &rec.Month,
		&rec.Sessions, &rec.Hours, &rec.PricePerHour, &rec.TotalAmount, &rec.Paid, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rec, nil
}

// RemoveSession удаляет запись занятия по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveSession(ctx context.Context, id int64) (int, error) {
	const op = "storage.RemoveSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM session_records WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// TogglePayment переключает признак оплаты записи и возвращает обновлённую запись.
func (s *Storage) TogglePayment(ctx context.Context, id int64) (*models.SessionRecord, error) {
	const op = "storage.TogglePayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE session_records SET paid = NOT paid WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("%s: no session record with id %d", op, id)
	}
	return s.ReadSession(ctx, id)
}

// ListSessions возвращает все записи занятий, новые первыми.
func (s *Storage) ListSessions(ctx context.Context) ([]*models.SessionRecord, error) {
	const op = "storage.ListSessions"
	query := `SELECT ` + sessionColumns + `
			  FROM session_records sr
			  JOIN students st ON st.id = sr.student_id
			  ORDER BY sr.created_at DESC`
	return s.querySessions(ctx, op, query)
}

// ListSessionsByMonth возвращает записи занятий за месяц.
func (s *Storage) ListSessionsByMonth(ctx context.Context, month string) ([]*models.SessionRecord, error) {
	const op = "storage.ListSessionsByMonth"
	query := `SELECT ` + sessionColumns + `
			  FROM session_records sr
			  JOIN students st ON st.id = sr.student_id
			  WHERE sr.month = $1
			  ORDER BY sr.session_date`
	return s.querySessions(ctx, op, query, month)
}

// ListSessionsByMonthForStudents возвращает записи выбранных учеников за месяц.
func (s *Storage) ListSessionsByMonthForStudents(ctx context.Context, month string, studentIDs []int64) ([]*models.SessionRecord, error) {
	const op = "storage.ListSessionsByMonthForStudents"
	if len(studentIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, 0, len(studentIDs))
	args := make([]any, 0, len(studentIDs)+1)
	args = append(args, month)
	for i, id := range studentIDs {
		placeholders = append(placeholders, "$"+strconv.Itoa(i+2))
		args = append(args, id)
	}

	query := `SELECT ` + sessionColumns + `
			  FROM session_records sr
			  JOIN students st ON st.id = sr.student_id
			  WHERE sr.month = $1 AND sr.student_id IN (` + strings.Join(placeholders, ", ") + `)
			  ORDER BY sr.session_date`
	return s.querySessions(ctx, op, query, args...)
}

// ListSessionsByIDs возвращает записи занятий с перечисленными ID.
func (s *Storage) ListSessionsByIDs(ctx context.Context, ids []int64) ([]*models.SessionRecord, error) {
	const op = "storage.ListSessionsByIDs"
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		placeholders = append(placeholders, "$"+strconv.Itoa(i+1))
		args = append(args, id)
	}

	query := `SELECT ` + sessionColumns + `
			  FROM session_records sr
			  JOIN students st ON st.id = sr.student_id
			  WHERE sr.id IN (` + strings.Join(placeholders, ", ") + `)
			  ORDER BY sr.session_date`
	return s.querySessions(ctx, op, query, args...)
}

// ListUnpaidByStudentAndMonth возвращает неоплаченные записи ученика за месяц.
func (s *Storage) ListUnpaidByStudentAndMonth(ctx context.Context, studentID int64, month string) ([]*models.SessionRecord, error) {
	const op = "storage.ListUnpaidByStudentAndMonth"
	query := `SELECT ` + sessionColumns + `
			  FROM session_records sr
			  JOIN students st ON st.id = sr.student_id
			  WHERE sr.student_id = $1 AND sr.month = $2 AND sr.paid = false
			  ORDER BY sr.session_date`
	return s.querySessions(ctx, op, query, studentID, month)
}

func (s *Storage) querySessions(ctx context.Context, op, query string, args ...any) ([]*models.SessionRecord, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SessionRecord
	for rows.Next() {
		var rec models.SessionRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.StudentName, &rec.SessionDate, &rec.Month,
			&rec.Sessions, &rec.Hours, &rec.PricePerHour, &rec.TotalAmount, &rec.Paid, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountSessions возвращает общее количество записей занятий. Используется
// для последовательной части номера счёта.
func (s *Storage) CountSessions(ctx context.Context) (int64, error) {
	const op = "storage.CountSessions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int64
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM session_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// SumPaid возвращает сумму оплаченных занятий за всё время.
func (s *Storage) SumPaid(ctx context.Context) (int64, error) {
	return s.sumAmount(ctx, "storage.SumPaid", true, nil)
}

// SumUnpaid возвращает сумму неоплаченных занятий за всё время.
func (s *Storage) SumUnpaid(ctx context.Context) (int64, error) {
	return s.sumAmount(ctx, "storage.SumUnpaid", false, nil)
}

// SumPaidByMonth возвращает сумму оплаченных занятий за месяц.
func (s *Storage) SumPaidByMonth(ctx context.Context, month string) (int64, error) {
	return s.sumAmount(ctx, "storage.SumPaidByMonth", true, &month)
}

// SumUnpaidByMonth возвращает сумму неоплаченных занятий за месяц.
func (s *Storage) SumUnpaidByMonth(ctx context.Context, month string) (int64, error) {
	return s.sumAmount(ctx, "storage.SumUnpaidByMonth", false, &month)
}

func (s *Storage) sumAmount(ctx context.Context, op string, paid bool, month *string) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(total_amount), 0)
			  FROM session_records
			  WHERE paid = $1
			    AND ($2::text IS NULL OR month = $2)`
	var total int64
	if err := s.DB.QueryRowContext(ctx, query, paid, month).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// SumSessionsByMonth возвращает количество занятий за месяц.
func (s *Storage) SumSessionsByMonth(ctx context.Context, month string) (int, error) {
	const op = "storage.SumSessionsByMonth"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(sessions), 0)
			  FROM session_records
			  WHERE month = $1`
	var total int
	if err := s.DB.QueryRowContext(ctx, query, month).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// DistinctMonths возвращает все месяцы, встречающиеся в записях занятий,
// новые первыми.
func (s *Storage) DistinctMonths(ctx context.Context) ([]string, error) {
	const op = "storage.DistinctMonths"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT DISTINCT month FROM session_records ORDER BY month DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var month string
		if err := rows.Scan(&month); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, month)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindUnpaidForMonth находит учеников с неоплаченными занятиями за месяц.
// Ученики без почты родителя пропускаются — им некуда слать напоминание.
func (s *Storage) FindUnpaidForMonth(ctx context.Context, month string) ([]*models.ReminderInfo, error) {
	const op = "storage.FindUnpaidForMonth"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT st.name, st.email, sr.month,
			      SUM(sr.sessions) AS unpaid_sessions,
			      SUM(sr.total_amount) AS unpaid_amount
			  FROM session_records sr
			  JOIN students st ON st.id = sr.student_id
			  WHERE sr.month = $1 AND sr.paid = false AND st.email <> ''
			  GROUP BY st.name, st.email, sr.month`
	rows, err := s.DB.QueryContext(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderInfo
	for rows.Next() {
		var ri models.ReminderInfo
		if err := rows.Scan(&ri.StudentName, &ri.ParentEmail, &ri.Month,
			&ri.UnpaidSessions, &ri.UnpaidAmount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ri)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
