// Package tutoradmin предоставляет маршруты для основного приложения.
package tutoradmin

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/tranvh/tutor-admin/internal/http/handlers/auth/login"
	"github.com/tranvh/tutor-admin/internal/http/handlers/auth/register"
	dashboardmonthly "github.com/tranvh/tutor-admin/internal/http/handlers/dashboard/monthlystats"
	dashboardstats "github.com/tranvh/tutor-admin/internal/http/handlers/dashboard/stats"
	"github.com/tranvh/tutor-admin/internal/http/handlers/health"
	"github.com/tranvh/tutor-admin/internal/http/handlers/invoice/downloadmonthly"
	"github.com/tranvh/tutor-admin/internal/http/handlers/invoice/downloadpdf"
	"github.com/tranvh/tutor-admin/internal/http/handlers/invoice/generate"
	sessioncreate "github.com/tranvh/tutor-admin/internal/http/handlers/session/create"
	sessionlist "github.com/tranvh/tutor-admin/internal/http/handlers/session/list"
	"github.com/tranvh/tutor-admin/internal/http/handlers/session/listmonth"
	"github.com/tranvh/tutor-admin/internal/http/handlers/session/months"
	sessionremove "github.com/tranvh/tutor-admin/internal/http/handlers/session/remove"
	"github.com/tranvh/tutor-admin/internal/http/handlers/session/togglepayment"
	studentcreate "github.com/tranvh/tutor-admin/internal/http/handlers/student/create"
	studentlist "github.com/tranvh/tutor-admin/internal/http/handlers/student/list"
	"github.com/tranvh/tutor-admin/internal/http/handlers/student/read"
	studentremove "github.com/tranvh/tutor-admin/internal/http/handlers/student/remove"
	"github.com/tranvh/tutor-admin/internal/http/handlers/student/update"
	"github.com/tranvh/tutor-admin/internal/http/middlewarectx"
	"github.com/tranvh/tutor-admin/internal/pdf"
	authservice "github.com/tranvh/tutor-admin/internal/services/auth"
	dashboardservice "github.com/tranvh/tutor-admin/internal/services/dashboard"
	invoiceservice "github.com/tranvh/tutor-admin/internal/services/invoice"
	sessionservice "github.com/tranvh/tutor-admin/internal/services/session"
	studentservice "github.com/tranvh/tutor-admin/internal/services/student"
	"github.com/tranvh/tutor-admin/internal/storage/repository"
)

// Services объединяет зависимости, необходимые для регистрации маршрутов.
type Services struct {
	Auth      *authservice.AuthService
	Student   *studentservice.StudentService
	Session   *sessionservice.SessionService
	Invoice   *invoiceservice.InvoiceService
	Dashboard *dashboardservice.DashboardService
	Renderer  *pdf.Renderer
	Storage   *repository.Storage
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, s.Storage).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/students", studentcreate.New(logger, s.Student).ServeHTTP)
			r.Get("/students", studentlist.New(logger, s.Student).ServeHTTP)
			r.Get("/students/{id}", read.New(logger, s.Student).ServeHTTP)
			r.Put("/students/{id}", update.New(logger, s.Student).ServeHTTP)
			r.Delete("/students/{id}", studentremove.New(logger, s.Student).ServeHTTP)

			r.Post("/sessions", sessioncreate.New(logger, s.Session).ServeHTTP)
			r.Get("/sessions", sessionlist.New(logger, s.Session).ServeHTTP)
			r.Get("/sessions/months", months.New(logger, s.Session).ServeHTTP)
			r.Get("/sessions/month/{month}", listmonth.New(logger, s.Session).ServeHTTP)
			r.Put("/sessions/{id}/toggle-payment", togglepayment.New(logger, s.Session).ServeHTTP)
			r.Delete("/sessions/{id}", sessionremove.New(logger, s.Session).ServeHTTP)

			r.Post("/invoices/generate", generate.New(logger, s.Invoice).ServeHTTP)
			r.Post("/invoices/download", downloadpdf.New(logger, s.Invoice, s.Renderer).ServeHTTP)
			r.Get("/invoices/download/monthly/{month}", downloadmonthly.New(logger, s.Invoice, s.Renderer).ServeHTTP)

			r.Get("/dashboard/stats", dashboardstats.New(logger, s.Dashboard).ServeHTTP)
			r.Get("/dashboard/monthly-stats", dashboardmonthly.New(logger, s.Dashboard).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
