// Package downloadmonthly реализует HTTP-обработчик скачивания сводного
// счёта месяца по всем ученикам одним PDF-файлом.
package downloadmonthly

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tranvh/tutor-admin/internal/http/response"
	"github.com/tranvh/tutor-admin/internal/lib/sl"
	"github.com/tranvh/tutor-admin/internal/lib/vnfmt"
	"github.com/tranvh/tutor-admin/internal/models"
	"github.com/tranvh/tutor-admin/internal/pdf"
	invoicesvc "github.com/tranvh/tutor-admin/internal/services/invoice"
)

// Handler управляет HTTP-запросами на скачивание сводного счёта месяца.
type Handler struct {
	log      *slog.Logger
	service  Service
	renderer Renderer
}

// Service описывает интерфейс бизнес-логики формирования счёта.
type Service interface {
	GenerateInvoice(ctx context.Context, req models.DummyInvoiceRequest) (*models.InvoiceResponse, error)
}

// Renderer описывает интерфейс отрисовки счёта в PDF.
type Renderer interface {
	Render(invoice *models.InvoiceResponse) ([]byte, error)
}

// New создает новый Handler с переданными логгером, сервисом и рендерером.
func New(log *slog.Logger, service Service, renderer Renderer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		renderer: renderer,
	}
}

// ServeHTTP godoc
// @Summary Скачать сводный счёт месяца
// @Description Формирует счёт по всем ученикам месяца и возвращает его PDF-файлом.
// @Tags Invoices
// @Produce  application/pdf
// @Param month path string true "Ключ месяца YYYY-MM"
// @Success 200 {file} file "PDF-файл сводного счёта"
// @Failure 400 {object} response.ErrorResponse "Некорректный ключ месяца"
// @Failure 404 {object} response.ErrorResponse "Нет записей за месяц"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /invoices/download/monthly/{month} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.downloadmonthly"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	month := chi.URLParam(r, "month")

	invoice, err := h.service.GenerateInvoice(r.Context(), models.DummyInvoiceRequest{
		Month:       month,
		AllStudents: true,
	})
	if err != nil {
		switch {
		case errors.Is(err, invoicesvc.ErrNoSessions):
			log.Error("no sessions for month", slog.String("month", month))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no sessions found for invoice"))
		case errors.Is(err, vnfmt.ErrBadMonthKey):
			log.Error("invalid month key", slog.String("month", month))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("month must look like YYYY-MM"))
		default:
			log.Error("failed to generate monthly invoice", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not generate invoice"))
		}
		return
	}

	data, err := h.renderer.Render(invoice)
	if err != nil {
		log.Error("failed to render invoice pdf", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not render invoice pdf"))
		return
	}

	log.Info("success to render monthly invoice pdf",
		slog.String("month", month), slog.Int("size", len(data)))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.FileNameMonthly(month)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		log.Error("failed to write pdf response", sl.Err(err))
	}
}
