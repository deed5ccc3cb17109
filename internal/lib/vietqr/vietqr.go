// Package vietqr строит URL изображения платёжного QR-кода VietQR.
// Сам QR-код рендерится внешним сервисом img.vietqr.io, здесь только
// конструирование строки без сетевых вызовов.
package vietqr

import (
	"fmt"
	"strings"
)

// Реквизиты счёта репетитора (Vietcombank).
const (
	BankCode      = "970436"
	AccountNumber = "1041819355"
	AccountName   = "TRAN VAN HOANG"
	template      = "compact2"
)

// ImageURL возвращает URL картинки VietQR с зашитой суммой и назначением
// платежа. Назначение — номер счёта без дефисов.
func ImageURL(amount int64, invoiceNumber string) string {
	description := strings.ReplaceAll(invoiceNumber, "-", "")
	return fmt.Sprintf(
		"https://img.vietqr.io/image/%s-%s-%s.png?amount=%d&addInfo=%s",
		BankCode, AccountNumber, template, amount, description,
	)
}
