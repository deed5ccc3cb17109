// Package listmonth реализует HTTP-обработчик для получения записей занятий за месяц.
package listmonth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tranvh/tutor-admin/internal/http/response"
	"github.com/tranvh/tutor-admin/internal/lib/sl"
	"github.com/tranvh/tutor-admin/internal/lib/vnfmt"
	"github.com/tranvh/tutor-admin/internal/models"
)

// Handler управляет HTTP-запросами на получение записей занятий за месяц.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки записей за месяц.
type Service interface {
	ListByMonth(ctx context.Context, month string) ([]*models.SessionRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Записи занятий за месяц
// @Description Возвращает записи занятий за указанный месяц (ключ YYYY-MM).
// @Tags Sessions
// @Produce  json
// @Param month path string true "Ключ месяца YYYY-MM"
// @Success 200 {object} map[string]any "Список записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ключ месяца"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /sessions/month/{month} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.listmonth"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	month := chi.URLParam(r, "month")

	res, err := h.service.ListByMonth(r.Context(), month)
	if err != nil {
		if errors.Is(err, vnfmt.ErrBadMonthKey) {
			log.Error("invalid month key", slog.String("month", month))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("month must look like YYYY-MM"))
			return
		}
		log.Error("failed to list session records by month", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list session records"))
		return
	}

	log.Info("success to list session records by month",
		slog.String("month", month), slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"sessions": res,
		"count":    len(res),
	}))
}
