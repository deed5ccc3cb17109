// Package months реализует HTTP-обработчик для получения списка месяцев,
// за которые есть записи занятий.
package months

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tranvh/tutor-admin/internal/http/response"
	"github.com/tranvh/tutor-admin/internal/lib/sl"
)

// Handler управляет HTTP-запросами на получение списка месяцев.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка месяцев.
type Service interface {
	Months(ctx context.Context) ([]string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список месяцев
// @Description Возвращает месяцы, за которые есть записи занятий, новые первыми.
// @Tags Sessions
// @Produce  json
// @Success 200 {object} map[string]any "Список месяцев"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /sessions/months [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.months"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Months(r.Context())
	if err != nil {
		log.Error("failed to list months", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list months"))
		return
	}

	log.Info("success to list months", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"months": res,
	}))
}
