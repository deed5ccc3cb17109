// Package monthlystats реализует HTTP-обработчик помесячной статистики оплат.
package monthlystats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tranvh/tutor-admin/internal/http/response"
	"github.com/tranvh/tutor-admin/internal/lib/sl"
	"github.com/tranvh/tutor-admin/internal/models"
)

// Handler управляет HTTP-запросами помесячной статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики помесячной статистики.
type Service interface {
	MonthlyStats(ctx context.Context) ([]*models.MonthlyStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Помесячная статистика
// @Description Возвращает оплаты и количество занятий по каждому месяцу, новые первыми.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} map[string]any "Помесячная разбивка"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard/monthly-stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.monthlystats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.MonthlyStats(r.Context())
	if err != nil {
		log.Error("failed to get monthly stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get monthly stats"))
		return
	}

	log.Info("success to get monthly stats", slog.Int("months", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"monthly_stats": res,
	}))
}
