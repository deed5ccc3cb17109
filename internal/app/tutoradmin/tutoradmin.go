// Package tutoradmin собирает основное HTTP-приложение администрирования занятий:
// хранилище, кеш, сервисы и маршруты.
package tutoradmin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/tranvh/tutor-admin/internal/cache"
	"github.com/tranvh/tutor-admin/internal/config"
	"github.com/tranvh/tutor-admin/internal/lib/jwt"
	"github.com/tranvh/tutor-admin/internal/migrations"
	"github.com/tranvh/tutor-admin/internal/pdf"
	authservice "github.com/tranvh/tutor-admin/internal/services/auth"
	dashboardservice "github.com/tranvh/tutor-admin/internal/services/dashboard"
	invoiceservice "github.com/tranvh/tutor-admin/internal/services/invoice"
	sessionservice "github.com/tranvh/tutor-admin/internal/services/session"
	studentservice "github.com/tranvh/tutor-admin/internal/services/student"
	"github.com/tranvh/tutor-admin/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы основного приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает приложение: подключает PostgreSQL, применяет миграции,
// инициализирует Redis и собирает все сервисы с маршрутами.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	studentService := studentservice.NewStudentService(db, cacheRedis, logger)
	sessionService := sessionservice.NewSessionService(db, db, logger)
	invoiceService := invoiceservice.NewInvoiceService(db, db, logger)
	dashboardService := dashboardservice.NewDashboardService(db, cacheRedis, logger)
	renderer := pdf.NewRenderer(cfg.InvoiceFontPath)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:      authService,
		Student:   studentService,
		Session:   sessionService,
		Invoice:   invoiceService,
		Dashboard: dashboardService,
		Renderer:  renderer,
		Storage:   db,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
