package repository

import (
	"context"
	"fmt"

	"github.com/tranvh/tutor-admin/internal/models"
)

// CreateStudent вставляет нового ученика и возвращает его ID.
func (s *Storage) CreateStudent(ctx context.Context, student models.Student) (int64, error) {
	const op = "storage.CreateStudent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO students (name, phone, email, schedule, price_per_hour, notes)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		student.Name, student.Phone, student.Email, student.Schedule,
		student.PricePerHour, student.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadStudent возвращает данные ученика по его ID.
func (s *Storage) ReadStudent(ctx context.Context, id int64) (*models.Student, error) {
	const op = "storage.ReadStudent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, phone, email, schedule, price_per_hour, notes, created_at
			  FROM students WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Student
	if err := row.Scan(&result.ID, &result.Name, &result.Phone, &result.Email,
		&result.Schedule, &result.PricePerHour, &result.Notes, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateStudent обновляет данные ученика по его ID и возвращает количество изменённых строк.
func (s *Storage) UpdateStudent(ctx context.Context, student models.Student, id int64) (int, error) {
	const op = "storage.UpdateStudent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE students
			  SET name = $1, phone = $2, email = $3, schedule = $4,
			      price_per_hour = $5, notes = $6
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		student.Name, student.Phone, student.Email, student.Schedule,
		student.PricePerHour, student.Notes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveStudent удаляет ученика по ID и возвращает количество удалённых строк.
// Записи занятий удаляются каскадно.
func (s *Storage) RemoveStudent(ctx context.Context, id int64) (int, error) {
	const op = "storage.RemoveStudent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM students WHERE id = $1`
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

// ListStudents возвращает список всех учеников, отсортированный по имени.
func (s *Storage) ListStudents(ctx context.Context) ([]*models.Student, error) {
	const op = "storage.ListStudents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, phone, email, schedule, price_per_hour, notes, created_at
			  FROM students
			  ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Student
	for rows.Next() {
		var item models.Student
		if err := rows.Scan(&item.ID, &item.Name, &item.Phone, &item.Email,
			&item.Schedule, &item.PricePerHour, &item.Notes, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountStudents возвращает количество учеников.
func (s *Storage) CountStudents(ctx context.Context) (int, error) {
	const op = "storage.CountStudents"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// SumPaidByStudent возвращает сумму оплаченных занятий ученика за всё время.
func (s *Storage) SumPaidByStudent(ctx context.Context, studentID int64) (int64, error) {
	return s.sumByStudent(ctx, "storage.SumPaidByStudent", studentID, true)
}

// SumUnpaidByStudent возвращает сумму неоплаченных занятий ученика за всё время.
func (s *Storage) SumUnpaidByStudent(ctx context.Context, studentID int64) (int64, error) {
	return s.sumByStudent(ctx, "storage.SumUnpaidByStudent", studentID, false)
}

func (s *Storage) sumByStudent(ctx context.Context, op string, studentID int64, paid bool) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(total_amount), 0)
			  FROM session_records
			  WHERE student_id = $1 AND paid = $2`
	var total int64
	if err := s.DB.QueryRowContext(ctx, query, studentID, paid).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
