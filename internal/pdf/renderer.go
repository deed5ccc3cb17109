// Package pdf отрисовывает сформированный счёт в PDF для скачивания.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/tranvh/tutor-admin/internal/models"
)

// Renderer отрисовывает счета в PDF.
type Renderer struct {
	fontPath string
}

// NewRenderer создает новый экземпляр Renderer. fontPath — путь к TTF-шрифту
// с вьетнамской кириллицей и диакритикой; пустой путь означает встроенный
// шрифт без полной поддержки диакритики.
func NewRenderer(fontPath string) *Renderer {
	return &Renderer{fontPath: fontPath}
}

// FileNameInvoice возвращает имя PDF-файла для счёта.
func FileNameInvoice(invoiceNumber string) string {
	return "Bao-Gia-" + invoiceNumber + ".pdf"
}

// FileNameMonthly возвращает имя PDF-файла для сводного счёта месяца.
func FileNameMonthly(month string) string {
	return "Bao-Gia-Tong-" + month + ".pdf"
}

// Render отрисовывает счёт и возвращает содержимое PDF-файла.
func (r *Renderer) Render(invoice *models.InvoiceResponse) ([]byte, error) {
	const op = "pdf.Render"

	doc := fpdf.New("P", "mm", "A4", "")

	family := "Helvetica"
	tr := doc.UnicodeTranslatorFromDescriptor("")
	if r.fontPath != "" {
		family = "invoice"
		doc.AddUTF8Font(family, "", r.fontPath)
		doc.AddUTF8Font(family, "B", r.fontPath)
		tr = func(s string) string { return s }
	}

	doc.AddPage()

	doc.SetFont(family, "B", 18)
	doc.CellFormat(0, 12, tr("HÓA ĐƠN HỌC PHÍ"), "", 1, "C", false, 0, "")

	doc.SetFont(family, "", 11)
	doc.CellFormat(0, 7, tr("Số: "+invoice.InvoiceNumber), "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont(family, "B", 12)
	doc.CellFormat(0, 7, tr("Học sinh: "+invoice.StudentName), "", 1, "L", false, 0, "")
	doc.SetFont(family, "", 11)
	doc.CellFormat(0, 7, tr(invoice.Month), "", 1, "L", false, 0, "")
	doc.Ln(4)

	// шапка таблицы
	colWidths := []float64{25, 70, 20, 20, 27, 28}
	headers := []string{"Ngày", "Nội dung", "Buổi", "Giờ", "Đơn giá", "Thành tiền"}
	doc.SetFont(family, "B", 10)
	doc.SetFillColor(230, 230, 230)
	for i, h := range headers {
		doc.CellFormat(colWidths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont(family, "", 10)
	for _, item := range invoice.Items {
		doc.CellFormat(colWidths[0], 8, tr(item.Date), "1", 0, "C", false, 0, "")
		doc.CellFormat(colWidths[1], 8, tr(item.Description), "1", 0, "L", false, 0, "")
		doc.CellFormat(colWidths[2], 8, strconv.Itoa(item.Sessions), "1", 0, "C", false, 0, "")
		doc.CellFormat(colWidths[3], 8, strconv.Itoa(item.Hours), "1", 0, "C", false, 0, "")
		doc.CellFormat(colWidths[4], 8, FormatVND(item.PricePerHour), "1", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[5], 8, FormatVND(item.Amount), "1", 0, "R", false, 0, "")
		doc.Ln(-1)
	}

	doc.SetFont(family, "B", 10)
	doc.CellFormat(colWidths[0]+colWidths[1], 8, tr("Tổng cộng"), "1", 0, "L", false, 0, "")
	doc.CellFormat(colWidths[2], 8, strconv.Itoa(invoice.TotalSessions), "1", 0, "C", false, 0, "")
	doc.CellFormat(colWidths[3], 8, strconv.Itoa(invoice.TotalHours), "1", 0, "C", false, 0, "")
	doc.CellFormat(colWidths[4]+colWidths[5], 8, FormatVND(invoice.TotalAmount)+" VND", "1", 0, "R", false, 0, "")
	doc.Ln(12)

	doc.SetFont(family, "B", 11)
	doc.CellFormat(0, 7, tr("Thông tin thanh toán"), "", 1, "L", false, 0, "")
	doc.SetFont(family, "", 10)
	doc.CellFormat(0, 6, tr("Ngân hàng: "+invoice.BankInfo.BankName), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr("Số tài khoản: "+invoice.BankInfo.AccountNumber), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr("Chủ tài khoản: "+invoice.BankInfo.AccountName), "", 1, "L", false, 0, "")
	doc.Ln(6)

	doc.SetFont(family, "", 9)
	doc.CellFormat(0, 6, tr("Ngày lập: "+invoice.CreatedDate), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

// FormatVND форматирует сумму с точками-разделителями тысяч: 800000 -> "800.000".
func FormatVND(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
