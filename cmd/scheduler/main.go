package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mfiguera/credimutual/internal/config"
	"github.com/mfiguera/credimutual/internal/repository"
	"github.com/mfiguera/credimutual/internal/scope"
	"github.com/mfiguera/credimutual/internal/service"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logrus.New()
	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		log.SetLevel(level)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	session := scope.NewSession(db, cfg.Session.Timeout, log)
	reminderService := service.NewReminderService(
		session,
		db,
		repository.NewMutualRepository(),
		repository.NewInstallmentRepository(),
		log,
	)

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds())

	_, err = c.AddFunc(cfg.Scheduler.ReminderSpec, func() {
		log.Info("Running due-soon reminder sweep...")
		if err := reminderService.RemindDueSoon(context.Background(), cfg.Scheduler.ReminderWindow); err != nil {
			log.WithError(err).Error("due-soon reminder sweep failed")
		}
	})
	if err != nil {
		log.Fatalf("Error scheduling reminder job: %v", err)
	}

	// Start the scheduler
	c.Start()
	log.Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	c.Stop()
	log.Info("Scheduler stopped")
}
