// Package services содержит бизнес-логику формирования счетов за занятия.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/tranvh/tutor-admin/internal/lib/vietqr"
	"github.com/tranvh/tutor-admin/internal/lib/vnfmt"
	"github.com/tranvh/tutor-admin/internal/models"
)

// Ошибки формирования счёта. Обработчики отображают их в 404/400,
// всё остальное — ошибка сервера.
var (
	// ErrStudentNotFound — ученик с указанным ID не существует.
	ErrStudentNotFound = errors.New("student not found")
	// ErrNoSessions — под критерии запроса не попала ни одна запись занятий.
	ErrNoSessions = errors.New("no sessions found for invoice")
	// ErrMissingStudentID — одиночный режим без идентификатора ученика.
	ErrMissingStudentID = errors.New("student id is required")
)

// SessionRepository определяет методы выборки записей занятий для счёта.
type SessionRepository interface {
	// ListSessionsByMonth возвращает все записи за месяц.
	ListSessionsByMonth(ctx context.Context, month string) ([]*models.SessionRecord, error)
	// ListSessionsByMonthForStudents возвращает записи выбранных учеников за месяц.
	ListSessionsByMonthForStudents(ctx context.Context, month string, studentIDs []int64) ([]*models.SessionRecord, error)
	// ListSessionsByIDs возвращает записи с перечисленными ID.
	ListSessionsByIDs(ctx context.Context, ids []int64) ([]*models.SessionRecord, error)
	// ListUnpaidByStudentAndMonth возвращает неоплаченные записи ученика за месяц.
	ListUnpaidByStudentAndMonth(ctx context.Context, studentID int64, month string) ([]*models.SessionRecord, error)
	// CountSessions возвращает общее число записей занятий.
	CountSessions(ctx context.Context) (int64, error)
}

// StudentRepository определяет метод чтения ученика.
type StudentRepository interface {
	ReadStudent(ctx context.Context, id int64) (*models.Student, error)
}

// InvoiceService реализует агрегацию записей занятий в счёт.
// Счёт строится заново на каждый запрос и нигде не сохраняется.
type InvoiceService struct {
	sessions SessionRepository
	students StudentRepository
	log      *slog.Logger
}

// NewInvoiceService создает новый экземпляр InvoiceService.
func NewInvoiceService(sessions SessionRepository, students StudentRepository, log *slog.Logger) *InvoiceService {
	return &InvoiceService{
		sessions: sessions,
		students: students,
		log:      log,
	}
}

// GenerateInvoice формирует счёт по критериям запроса. Режимы в порядке
// приоритета: несколько выбранных учеников, все ученики месяца, один ученик.
func (s *InvoiceService) GenerateInvoice(ctx context.Context, req models.DummyInvoiceRequest) (*models.InvoiceResponse, error) {
	monthLabel, err := vnfmt.FormatMonth(req.Month)
	if err != nil {
		return nil, err
	}

	if req.MultipleStudents && len(req.SelectedStudentIDs) > 0 {
		return s.generateForMultipleStudents(ctx, req, monthLabel)
	}

	if req.AllStudents {
		return s.generateForAllStudents(ctx, req.Month, monthLabel)
	}

	return s.generateForSingleStudent(ctx, req, monthLabel)
}

func (s *InvoiceService) generateForSingleStudent(ctx context.Context, req models.DummyInvoiceRequest, monthLabel string) (*models.InvoiceResponse, error) {
	if req.StudentID <= 0 {
		return nil, ErrMissingStudentID
	}

	student, err := s.students.ReadStudent(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrStudentNotFound, req.StudentID)
		}
		return nil, err
	}

	var records []*models.SessionRecord
	if len(req.SessionRecordIDs) > 0 {
		records, err = s.sessions.ListSessionsByIDs(ctx, req.SessionRecordIDs)
	} else {
		records, err = s.sessions.ListUnpaidByStudentAndMonth(ctx, req.StudentID, req.Month)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoSessions
	}

	totalSessions, totalHours, totalAmount := sumRecords(records)

	sort.Slice(records, func(i, j int) bool {
		return records[i].SessionDate.Before(records[j].SessionDate)
	})

	items := make([]models.InvoiceItem, 0, len(records))
	for _, rec := range records {
		items = append(items, models.InvoiceItem{
			Date:         vnfmt.FormatDate(rec.SessionDate),
			Description:  "Buổi học tiếng Anh",
			Sessions:     rec.Sessions,
			Hours:        rec.Hours,
			PricePerHour: rec.PricePerHour,
			Amount:       rec.TotalAmount,
		})
	}

	invoiceNumber, err := s.invoiceNumber(ctx, req.Month)
	if err != nil {
		return nil, err
	}

	s.log.Info("generated single student invoice",
		slog.Int64("student_id", student.ID),
		slog.String("invoice_number", invoiceNumber),
		slog.Int("items", len(items)))

	return s.buildResponse(invoiceNumber, student.Name, monthLabel,
		totalSessions, totalHours, totalAmount, items), nil
}

func (s *InvoiceService) generateForMultipleStudents(ctx context.Context, req models.DummyInvoiceRequest, monthLabel string) (*models.InvoiceResponse, error) {
	records, err := s.sessions.ListSessionsByMonthForStudents(ctx, req.Month, req.SelectedStudentIDs)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoSessions
	}

	totalSessions, totalHours, totalAmount := sumRecords(records)
	items, names := groupByStudent(records, monthLabel)

	invoiceNumber, err := s.invoiceNumber(ctx, req.Month)
	if err != nil {
		return nil, err
	}
	invoiceNumber += "-MULTI"

	var displayName string
	if len(names) <= 2 {
		displayName = joinNames(names)
	} else {
		displayName = names[0] + " và " + strconv.Itoa(len(names)-1) + " học sinh khác"
	}

	s.log.Info("generated multi student invoice",
		slog.Int("students", len(names)),
		slog.String("invoice_number", invoiceNumber))

	return s.buildResponse(invoiceNumber, displayName, monthLabel,
		totalSessions, totalHours, totalAmount, items), nil
}

func (s *InvoiceService) generateForAllStudents(ctx context.Context, month, monthLabel string) (*models.InvoiceResponse, error) {
	records, err := s.sessions.ListSessionsByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoSessions
	}

	totalSessions, totalHours, totalAmount := sumRecords(records)
	items, _ := groupByStudent(records, monthLabel)

	invoiceNumber, err := s.invoiceNumber(ctx, month)
	if err != nil {
		return nil, err
	}
	invoiceNumber += "-ALL"

	s.log.Info("generated monthly invoice for all students",
		slog.String("month", month),
		slog.String("invoice_number", invoiceNumber))

	return s.buildResponse(invoiceNumber, "TẤT CẢ HỌC SINH", monthLabel,
		totalSessions, totalHours, totalAmount, items), nil
}

// invoiceNumber строит отображаемую метку счёта INV-<год>-<месяц>-<seq>.
// Последовательная часть — количество записей занятий плюс один; при
// конкурентной записи она может повториться, метка не используется как ключ.
func (s *InvoiceService) invoiceNumber(ctx context.Context, month string) (string, error) {
	year, m, err := vnfmt.SplitMonthKey(month)
	if err != nil {
		return "", err
	}
	count, err := s.sessions.CountSessions(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%02d-%03d", year, m, count+1), nil
}

func (s *InvoiceService) buildResponse(invoiceNumber, studentName, monthLabel string,
	totalSessions, totalHours int, totalAmount int64, items []models.InvoiceItem) *models.InvoiceResponse {
	return &models.InvoiceResponse{
		InvoiceNumber: invoiceNumber,
		StudentName:   studentName,
		Month:         monthLabel,
		TotalSessions: totalSessions,
		TotalHours:    totalHours,
		TotalAmount:   totalAmount,
		Items:         items,
		BankInfo:      models.DefaultBankInfo(),
		QRCodeURL:     vietqr.ImageURL(totalAmount, invoiceNumber),
		CreatedDate:   vnfmt.FormatDate(time.Now()),
	}
}

func sumRecords(records []*models.SessionRecord) (sessions, hours int, amount int64) {
	for _, rec := range records {
		sessions += rec.Sessions
		hours += rec.Hours
		amount += rec.TotalAmount
	}
	return sessions, hours, amount
}

// groupByStudent сворачивает записи месяца в строки счёта, по одной на
// ученика. Группировка всегда идёт по идентификатору ученика. Цена за час
// строки — цена первой по дате записи ученика. Строки отсортированы по
// описанию, имена — по возрастанию.
func groupByStudent(records []*models.SessionRecord, monthLabel string) ([]models.InvoiceItem, []string) {
	grouped := make(map[int64][]*models.SessionRecord)
	for _, rec := range records {
		grouped[rec.StudentID] = append(grouped[rec.StudentID], rec)
	}

	items := make([]models.InvoiceItem, 0, len(grouped))
	names := make([]string, 0, len(grouped))
	for _, studentRecords := range grouped {
		sort.Slice(studentRecords, func(i, j int) bool {
			return studentRecords[i].SessionDate.Before(studentRecords[j].SessionDate)
		})
		first := studentRecords[0]

		sessions, hours, amount := sumRecords(studentRecords)
		items = append(items, models.InvoiceItem{
			Date:         monthLabel,
			Description:  first.StudentName + " - Học phí tháng",
			Sessions:     sessions,
			Hours:        hours,
			PricePerHour: first.PricePerHour,
			Amount:       amount,
		})
		names = append(names, first.StudentName)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Description < items[j].Description
	})
	sort.Strings(names)

	return items, names
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return names[0] + " và " + names[1]
	}
}
