package models

// DashboardStats — сводные показатели по всем записям занятий.
// Все суммы по умолчанию нулевые, отсутствие записей — не ошибка.
type DashboardStats struct {
	TotalStudents      int   `json:"totalStudents"`      // Количество учеников
	TotalPaidAllTime   int64 `json:"totalPaidAllTime"`   // Оплачено за всё время
	TotalUnpaidAllTime int64 `json:"totalUnpaidAllTime"` // Не оплачено за всё время
	CurrentMonthTotal  int64 `json:"currentMonthTotal"`  // Оплачено за текущий месяц
	CurrentMonthUnpaid int64 `json:"currentMonthUnpaid"` // Не оплачено за текущий месяц
}

// MonthlyStats — показатели одного месяца, присутствующего в хранилище.
type MonthlyStats struct {
	Month         string `json:"month"`         // Ключ месяца YYYY-MM
	TotalPaid     int64  `json:"totalPaid"`     // Оплачено за месяц
	TotalUnpaid   int64  `json:"totalUnpaid"`   // Не оплачено за месяц
	TotalSessions int    `json:"totalSessions"` // Количество занятий за месяц
}
