// Package generate реализует HTTP-обработчик формирования счёта.
//
// Handler принимает JSON-запрос с критериями выбора записей занятий,
// валидирует их и возвращает сформированный счёт с VietQR-кодом оплаты.
// Счёт нигде не сохраняется, каждый запрос строит его заново.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/tranvh/tutor-admin/internal/http/response"
	"github.com/tranvh/tutor-admin/internal/lib/sl"
	"github.com/tranvh/tutor-admin/internal/lib/vnfmt"
	"github.com/tranvh/tutor-admin/internal/models"
	invoicesvc "github.com/tranvh/tutor-admin/internal/services/invoice"
)

// Handler управляет HTTP-запросами на формирование счетов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики формирования счёта.
type Service interface {
	GenerateInvoice(ctx context.Context, req models.DummyInvoiceRequest) (*models.InvoiceResponse, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сформировать счёт
// @Description Формирует счёт по одному ученику, выбранным ученикам или всем ученикам месяца.
// @Tags Invoices
// @Accept  json
// @Produce  json
// @Param request body models.DummyInvoiceRequest true "Критерии выбора записей"
// @Success 200 {object} map[string]any "Сформированный счёт"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ключ месяца"
// @Failure 404 {object} response.ErrorResponse "Ученик не найден или нет записей"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /invoices/generate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.generate"
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
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.GenerateInvoice(r.Context(), req)
	if err != nil {
		writeGenerateError(w, r, log, err)
		return
	}

	log.Info("success to generate invoice",
		slog.String("invoice_number", res.InvoiceNumber),
		slog.Int64("total_amount", res.TotalAmount))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"invoice": res,
	}))
}

func writeGenerateError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
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
