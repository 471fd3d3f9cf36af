package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pathakanu/mailmind/internal/auth"
	"github.com/pathakanu/mailmind/internal/config"
	"github.com/pathakanu/mailmind/internal/database"
	"github.com/pathakanu/mailmind/internal/logging"
	"github.com/pathakanu/mailmind/internal/outbox"
	"github.com/pathakanu/mailmind/internal/server"
	"github.com/pathakanu/mailmind/internal/sms"
	"github.com/pathakanu/mailmind/internal/store"
	"github.com/pathakanu/mailmind/internal/summarizer"
	"github.com/pathakanu/mailmind/internal/sweep"
	"github.com/pathakanu/mailmind/internal/whatsapp"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	reminders := store.NewReminderStore(db)
	summarizations := store.NewSummarizationStore(db)
	userDetails := store.NewUserDetailsStore(db)
	outboxStore := store.NewOutboxStore(db)

	whatsappClient := whatsapp.New(cfg.WhatsAppToken, cfg.WhatsAppPhoneNumberID)
	smsClient := sms.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioSMSNumber)
	aiClient := summarizer.New(cfg.OpenAIAPIKey)

	sweeper := sweep.New(reminders, userDetails, outboxStore, cfg.WhatsAppTemplate, cfg.ReminderSendDelay, logger.Named("sweep"))
	dispatcher := outbox.New(outboxStore, whatsappClient, smsClient, logger.Named("outbox"))

	srv, err := server.New(server.Config{
		Logger:         logger.Named("http"),
		Verifier:       auth.NewVerifier(cfg.SessionJWTSecret),
		Reminders:      reminders,
		Summarizations: summarizations,
		UserDetails:    userDetails,
		Outbox:         outboxStore,
		Summarizer:     aiClient,
		Sweeper:        sweeper,
		Location:       cfg.LocalTimezone,
	})
	if err != nil {
		logger.Fatal("server init failed", zap.Error(err))
	}

	scheduler, err := startScheduler(cfg, sweeper, dispatcher, logger)
	if err != nil {
		logger.Fatal("scheduler start failed", zap.Error(err))
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	waitForShutdown(srv, scheduler, logger)
}

func startScheduler(cfg *config.Config, sweeper *sweep.Sweeper, dispatcher *outbox.Dispatcher, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(cfg.LocalTimezone))

	_, err := c.AddFunc("@every "+cfg.SweepInterval.String(), func() {
		if _, err := sweeper.Run(context.Background()); err != nil {
			logger.Error("scheduled sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	_, err = c.AddFunc("@every "+cfg.DispatchInterval.String(), func() {
		if _, err := dispatcher.DispatchDue(context.Background()); err != nil {
			logger.Error("scheduled dispatch failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

func waitForShutdown(srv *server.Server, scheduler *cron.Cron, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	stopped := scheduler.Stop()
	<-stopped.Done()
}
