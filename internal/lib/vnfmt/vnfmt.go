// Package vnfmt содержит чистые функции форматирования дат и месяцев
// для вьетнамских счетов: дата в виде DD/MM/YYYY и подпись месяца
// "Tháng M/YYYY" по ключу месяца формата YYYY-MM.
package vnfmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadMonthKey возвращается, если ключ месяца не имеет вид YYYY-MM.
var ErrBadMonthKey = errors.New("month key must look like YYYY-MM")

// FormatDate форматирует дату как DD/MM/YYYY.
func FormatDate(date time.Time) string {
	return date.Format("02/01/2006")
}

// SplitMonthKey разбирает ключ месяца YYYY-MM на год и месяц.
// Ключ обязан содержать ровно один разделитель "-".
func SplitMonthKey(month string) (year string, m int, err error) {
	const op = "vnfmt.SplitMonthKey"
	parts := strings.Split(month, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", 0, fmt.Errorf("%s: %w", op, ErrBadMonthKey)
	}
	m, err = strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return "", 0, fmt.Errorf("%s: %w", op, ErrBadMonthKey)
	}
	return parts[0], m, nil
}

// FormatMonth превращает ключ месяца YYYY-MM в подпись "Tháng M/YYYY".
// Ведущий ноль номера месяца отбрасывается: "2024-03" -> "Tháng 3/2024".
func FormatMonth(month string) (string, error) {
	year, m, err := SplitMonthKey(month)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Tháng %d/%s", m, year), nil
}

// MonthKey возвращает ключ месяца YYYY-MM для даты.
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}
