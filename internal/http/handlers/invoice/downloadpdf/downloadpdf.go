// Package downloadpdf реализует HTTP-обработчик скачивания счёта в PDF.
//
// Handler формирует счёт по тем же критериям, что и генерация счёта,
// отрисовывает его в PDF и отдаёт файл с заголовком Content-Disposition.
package downloadpdf

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/tranvh/tutor-admin/internal/http/response"
	"github.com/tranvh/tutor-admin/internal/lib/sl"
	"github.com/tranvh/tutor-admin/internal/lib/vnfmt"
	"github.com/tranvh/tutor-admin/internal/models"
	"github.com/tranvh/tutor-admin/internal/pdf"
	invoicesvc "github.com/tranvh/tutor-admin/internal/services/invoice"
)

// Handler управляет HTTP-запросами на скачивание счёта в PDF.
type Handler struct {
	log      *slog.Logger
	service  Service
	renderer Renderer
	validate *validator.Validate
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
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Скачать счёт в PDF
// @Description Формирует счёт и возвращает его PDF-файлом.
// @Tags Invoices
// @Accept  json
// @Produce  application/pdf
// @Param request body models.DummyInvoiceRequest true "Критерии выбора записей"
// @Success 200 {file} file "PDF-файл счёта"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ключ месяца"
// @Failure 404 {object} response.ErrorResponse "Ученик не найден или нет записей"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /invoices/download [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.downloadpdf"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	invoice, err := h.service.GenerateInvoice(r.Context(), req)
	if err != nil {
		writeInvoiceError(w, r, log, err)
		return
	}

	data, err := h.renderer.Render(invoice)
	if err != nil {
		log.Error("failed to render invoice pdf", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not render invoice pdf"))
		return
	}

	log.Info("success to render invoice pdf",
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.Int("size", len(data)))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.FileNameInvoice(invoice.InvoiceNumber)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		log.Error("failed to write pdf response", sl.Err(err))
	}
}

func writeInvoiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, invoicesvc.ErrStudentNotFound):
		log.Error("student not found", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("student not found"))
	case errors.Is(err, invoicesvc.ErrNoSessions):
		log.Error("no sessions for invoice", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("no sessions found for invoice"))
	case errors.Is(err, invoicesvc.ErrMissingStudentID):
		log.Error("missing student id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("student id is required"))
	case errors.Is(err, vnfmt.ErrBadMonthKey):
		log.Error("invalid month key", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("month must look like YYYY-MM"))
	default:
		log.Error("failed to generate invoice", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate invoice"))
	}
}
