package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"jobhook/service/config"
	"jobhook/service/notify"
	"jobhook/service/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

type Server struct {
	cfg        *config.Config
	notifier   *notify.Notifier
	logger     *slog.Logger
	router     *chi.Mux
	httpServer *http.Server
	startTime  time.Time
	version    string
}

func New(cfg *config.Config, version string) *Server {
	logger := util.NewLogger(cfg.VerboseLogging)

	notifier := notify.New(notify.Config{
		WebhookBaseURL: cfg.WebhookBaseURL,
		WebhookToken:   cfg.WebhookToken,
	}, time.Duration(cfg.RequestTimeout)*time.Second, logger)

	s := &Server{
		cfg:       cfg,
		notifier:  notifier,
		logger:    logger,
		startTime: time.Now(),
		version:   version,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(s.logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripSlashes)
	r.Use(httprate.LimitByIP(s.cfg.RateLimit, time.Minute))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(s.cfg.APIKey))
		r.Get("/properties", s.handleProperties)
		r.Post("/notify/{trigger}", s.handleNotify)
	})

	s.router = r
}

func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Jobhook listening", "addr", addr, "webhookBase", s.cfg.WebhookBaseURL)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown()
	case err := <-errCh:
		return err
	}
}

func (s *Server) Shutdown() error {
	s.logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}
