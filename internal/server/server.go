// Package server provides the HTTP JSON API: reminder and summarization CRUD,
// on-demand AI summarization, user profile upsert, and the sweep trigger.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/pathakanu/mailmind/internal/auth"
	"github.com/pathakanu/mailmind/internal/notify"
	"github.com/pathakanu/mailmind/internal/store"
	"github.com/pathakanu/mailmind/internal/summarizer"
	"github.com/pathakanu/mailmind/internal/sweep"
)

// Server wires the echo router to the stores and external services.
type Server struct {
	echo           *echo.Echo
	logger         *zap.Logger
	verifier       *auth.Verifier
	reminders      *store.ReminderStore
	summarizations *store.SummarizationStore
	userDetails    *store.UserDetailsStore
	outbox         *store.OutboxStore
	summarizer     *summarizer.Client
	sweeper        *sweep.Sweeper
	tracker        *notify.Tracker
	location       *time.Location
	now            func() time.Time
}

// Config holds the server dependencies.
type Config struct {
	Logger         *zap.Logger
	Verifier       *auth.Verifier
	Reminders      *store.ReminderStore
	Summarizations *store.SummarizationStore
	UserDetails    *store.UserDetailsStore
	Outbox         *store.OutboxStore
	Summarizer     *summarizer.Client
	Sweeper        *sweep.Sweeper
	Location       *time.Location
}

// New creates the HTTP server and registers all routes.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.Verifier == nil {
		return nil, fmt.Errorf("session verifier is required")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			cfg.Logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:           e,
		logger:         cfg.Logger,
		verifier:       cfg.Verifier,
		reminders:      cfg.Reminders,
		summarizations: cfg.Summarizations,
		userDetails:    cfg.UserDetails,
		outbox:         cfg.Outbox,
		summarizer:     cfg.Summarizer,
		sweeper:        cfg.Sweeper,
		tracker:        notify.NewTracker(),
		location:       cfg.Location,
		now:            time.Now,
	}

	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.POST("/summarize", s.handleSummarize)
	s.echo.GET("/trigger-reminders", s.handleTriggerReminders)

	protected := s.echo.Group("", s.verifier.Middleware())
	protected.POST("/reminders", s.handleCreateReminder)
	protected.GET("/reminders", s.handleListReminders)
	protected.GET("/reminders/alerts", s.handleReminderAlerts)
	protected.PUT("/reminders/:id", s.handleUpdateReminder)
	protected.DELETE("/reminders/:id", s.handleDeleteReminder)

	protected.POST("/summarizations", s.handleCreateSummarization)
	protected.GET("/summarizations", s.handleListSummarizations)
	protected.PATCH("/summarizations/:id", s.handleUpdateSummarization)
	protected.DELETE("/summarizations/:id", s.handleDeleteSummarization)

	protected.GET("/user-details", s.handleGetUserDetails)
	protected.GET("/user-details/:ownerId", s.handleGetUserDetailsByID)
	protected.POST("/user-details", s.handleUpsertUserDetails)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Start begins serving on the given address.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
