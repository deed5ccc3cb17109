package models

// ReminderInfo — сообщение о неоплаченных занятиях ученика за месяц.
// Публикуется планировщиком в очередь и потребляется отправщиком писем.
type ReminderInfo struct {
	StudentName    string `json:"student_name"`    // Имя ученика
	ParentEmail    string `json:"parent_email"`    // Почта родителя
	Month          string `json:"month"`           // Ключ месяца YYYY-MM
	UnpaidSessions int    `json:"unpaid_sessions"` // Количество неоплаченных занятий
	UnpaidAmount   int64  `json:"unpaid_amount"`   // Сумма долга, VND
}
