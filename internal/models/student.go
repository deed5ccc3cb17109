// Package models содержит доменные структуры учёта репетиторства:
// ученики, записи занятий, счета и агрегированная статистика,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Student представляет ученика, закреплённого за репетитором.
type Student struct {
	ID           int64     `json:"id"`           // Уникальный идентификатор ученика
	Name         string    `json:"name"`         // Имя ученика
	Phone        string    `json:"phone"`        // Телефон родителя
	Email        string    `json:"email"`        // Почта родителя для напоминаний об оплате
	Schedule     string    `json:"schedule"`     // Расписание занятий в свободной форме
	PricePerHour int64     `json:"pricePerHour"` // Цена за час занятий, VND
	Notes        string    `json:"notes"`        // Заметки репетитора
	CreatedAt    time.Time `json:"createdAt"`    // Дата добавления ученика
}

// StudentInfo дополняет данные ученика суммами оплаченных и
// неоплаченных занятий. Формируется на лету, не хранится.
type StudentInfo struct {
	Student
	TotalPaid   int64 `json:"totalPaid"`   // Сумма оплаченных занятий за всё время
	TotalUnpaid int64 `json:"totalUnpaid"` // Сумма неоплаченных занятий за всё время
}

// DummyStudent используется для приёма данных ученика из JSON-запроса
// до их валидации и конвертации в Student.
type DummyStudent struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`  // Имя ученика
	Phone        string `json:"phone" validate:"omitempty,max=20"`       // Телефон родителя
	Email        string `json:"email" validate:"omitempty,email"`        // Почта родителя
	Schedule     string `json:"schedule" validate:"omitempty,max=200"`   // Расписание занятий
	PricePerHour int64  `json:"price_per_hour" validate:"required,gt=0"` // Цена за час (>0)
	Notes        string `json:"notes" validate:"omitempty,max=1000"`     // Заметки
}
