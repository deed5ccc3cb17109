package models

import "github.com/tranvh/tutor-admin/internal/lib/vietqr"

// DummyInvoiceRequest описывает критерии выбора записей для счёта.
// Приоритет режимов: несколько выбранных учеников, все ученики, один ученик.
type DummyInvoiceRequest struct {
	StudentID          int64   `json:"student_id" validate:"omitempty,gt=0"` // Идентификатор ученика (для одиночного режима)
	Month              string  `json:"month" validate:"required"`            // Ключ месяца YYYY-MM
	SessionRecordIDs   []int64 `json:"session_record_ids"`                   // Явный список записей (одиночный режим)
	AllStudents        bool    `json:"all_students"`                         // Счёт по всем ученикам месяца
	MultipleStudents   bool    `json:"multiple_students"`                    // Счёт по выбранным ученикам
	SelectedStudentIDs []int64 `json:"selected_student_ids"`                 // Список выбранных учеников
}

// InvoiceItem — одна строка счёта: занятие за дату (одиночный режим)
// или итог по ученику (групповые режимы). Никогда не сохраняется.
type InvoiceItem struct {
	Date         string `json:"date"`         // Дата занятия или подпись месяца
	Description  string `json:"description"`  // Описание строки
	Sessions     int    `json:"sessions"`     // Количество занятий
	Hours        int    `json:"hours"`        // Количество часов
	PricePerHour int64  `json:"pricePerHour"` // Цена за час
	Amount       int64  `json:"amount"`       // Сумма по строке
}

// BankInfo — реквизиты для оплаты счёта.
type BankInfo struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

// DefaultBankInfo возвращает зашитые реквизиты счёта репетитора.
func DefaultBankInfo() BankInfo {
	return BankInfo{
		BankName:      "Vietcombank",
		AccountNumber: vietqr.AccountNumber,
		AccountName:   vietqr.AccountName,
	}
}

// InvoiceResponse — сформированный счёт. Строится заново на каждый запрос,
// номер счёта — отображаемая метка, не уникальный ключ.
type InvoiceResponse struct {
	InvoiceNumber string        `json:"invoiceNumber"` // Метка вида INV-YYYY-MM-NNN[-MULTI|-ALL]
	StudentName   string        `json:"studentName"`   // Имя ученика, перечисление имён или "TẤT CẢ HỌC SINH"
	Month         string        `json:"month"`         // Подпись месяца "Tháng M/YYYY"
	TotalSessions int           `json:"totalSessions"` // Итого занятий
	TotalHours    int           `json:"totalHours"`    // Итого часов
	TotalAmount   int64         `json:"totalAmount"`   // Итого к оплате, VND
	Items         []InvoiceItem `json:"items"`         // Строки счёта
	BankInfo      BankInfo      `json:"bankInfo"`      // Реквизиты
	QRCodeURL     string        `json:"qrCodeUrl"`     // URL картинки VietQR
	CreatedDate   string        `json:"createdDate"`   // Дата формирования DD/MM/YYYY
}
