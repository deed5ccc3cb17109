package models

import "time"

// SessionRecord представляет запись о проведённом занятии (или пачке занятий)
// одного ученика за одну дату. Поле TotalAmount всегда пересчитывается
// сервисом как Hours * PricePerHour при создании записи.
type SessionRecord struct {
	ID           int64     `json:"id"`           // Уникальный идентификатор записи
	StudentID    int64     `json:"studentId"`    // Идентификатор ученика
	StudentName  string    `json:"studentName"`  // Имя ученика (заполняется join-ом)
	SessionDate  time.Time `json:"sessionDate"`  // Дата занятия
	Month        string    `json:"month"`        // Ключ месяца YYYY-MM
	Sessions     int       `json:"sessions"`     // Количество занятий
	Hours        int       `json:"hours"`        // Количество часов
	PricePerHour int64     `json:"pricePerHour"` // Цена за час на момент занятия
	TotalAmount  int64     `json:"totalAmount"`  // Сумма за запись, Hours * PricePerHour
	Paid         bool      `json:"paid"`         // Признак оплаты
	CreatedAt    time.Time `json:"createdAt"`    // Дата создания записи
}

// DummySession используется для приёма данных занятия из JSON-запроса.
// Дата приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummySession struct {
	StudentID    int64  `json:"student_id" validate:"required,gt=0"`          // Идентификатор ученика
	SessionDate  string `json:"session_date" validate:"required"`             // Дата занятия в формате 2006-01-02
	Sessions     int    `json:"sessions" validate:"required,gt=0"`            // Количество занятий
	Hours        int    `json:"hours" validate:"required,gt=0"`               // Количество часов
	PricePerHour int64  `json:"price_per_hour" validate:"omitempty,gt=0"`     // Цена за час; 0 — взять цену ученика
	Paid         bool   `json:"paid"`                                         // Оплачено ли занятие сразу
}
