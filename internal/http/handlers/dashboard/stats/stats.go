// Package stats реализует HTTP-обработчик сводной статистики.
package stats

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tranvh/tutor-admin/internal/http/response"
	"github.com/tranvh/tutor-admin/internal/lib/sl"
	"github.com/tranvh/tutor-admin/internal/lib/vnfmt"
	"github.com/tranvh/tutor-admin/internal/models"
)

// Handler управляет HTTP-запросами сводной статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводной статистики.
type Service interface {
	Stats(ctx context.Context, month string) (*models.DashboardStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводная статистика
// @Description Возвращает количество учеников и суммы оплат; месяц задаётся query-параметром, по умолчанию текущий.
// @Tags Dashboard
// @Produce  json
// @Param month query string false "Ключ месяца YYYY-MM"
// @Success 200 {object} map[string]any "Сводные показатели"
// @Failure 400 {object} response.ErrorResponse "Некорректный ключ месяца"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	month := r.URL.Query().Get("month")

	res, err := h.service.Stats(r.Context(), month)
	if err != nil {
		if errors.Is(err, vnfmt.ErrBadMonthKey) {
			log.Error("invalid month key", slog.String("month", month))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("month must look like YYYY-MM"))
			return
		}
		log.Error("failed to get dashboard stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get dashboard stats"))
		return
	}

	log.Info("success to get dashboard stats")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": res,
	}))
}
