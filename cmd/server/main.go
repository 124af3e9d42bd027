package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mfiguera/credimutual/internal/config"
	"github.com/mfiguera/credimutual/internal/handler"
	"github.com/mfiguera/credimutual/internal/repository"
	"github.com/mfiguera/credimutual/internal/scope"
	"github.com/mfiguera/credimutual/internal/service"
	"github.com/mfiguera/credimutual/pkg/response"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := initLogger(cfg)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Tenant-scoped session factory: the one store handle everything runs
	// through
	session := scope.NewSession(db, cfg.Session.Timeout, log)

	// Initialize repositories
	mutualRepo := repository.NewMutualRepository()
	associateRepo := repository.NewAssociateRepository()
	productRepo := repository.NewProductRepository()
	creditRepo := repository.NewCreditRepository()
	installmentRepo := repository.NewInstallmentRepository()
	paymentRepo := repository.NewPaymentRepository()

	// Initialize services
	registryService := service.NewRegistryService(session, db, mutualRepo, associateRepo, productRepo, log)
	creditService := service.NewCreditService(session, creditRepo, installmentRepo, associateRepo, productRepo, log)
	paymentService := service.NewPaymentService(session, installmentRepo, paymentRepo, associateRepo, log)
	reportService := service.NewReportService(session, installmentRepo, redisClient, cfg.Session.ReportCacheTTL, log)

	// Initialize handlers
	registryHandler := handler.NewRegistryHandler(registryService)
	creditHandler := handler.NewCreditHandler(creditService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(reportService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Setup routes
	router := setupRoutes(log, registryHandler, creditHandler, paymentHandler, reportHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

func initLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	log *logrus.Logger,
	registryHandler *handler.RegistryHandler,
	creditHandler *handler.CreditHandler,
	paymentHandler *handler.PaymentHandler,
	reportHandler *handler.ReportHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(log))
	router.Use(response.JSONMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// Administrative routes: tenant registry, no tenant scope
	admin := router.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/mutuals", registryHandler.CreateMutual).Methods("POST")

	// API routes: everything below runs inside the caller's tenant scope
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(handler.IdentityMiddleware)

	api.HandleFunc("/associates", registryHandler.CreateAssociate).Methods("POST")
	api.HandleFunc("/associates", registryHandler.ListAssociates).Methods("GET")
	api.HandleFunc("/associates/{associateId}/credits", creditHandler.ListByAssociate).Methods("GET")
	api.HandleFunc("/products", registryHandler.CreateProduct).Methods("POST")
	api.HandleFunc("/products", registryHandler.ListProducts).Methods("GET")
	api.HandleFunc("/credits", creditHandler.CreateCredit).Methods("POST")
	api.HandleFunc("/credits/{creditId}", creditHandler.GetCredit).Methods("GET")
	api.HandleFunc("/credits/{creditId}/annul", creditHandler.AnnulCredit).Methods("POST")
	api.HandleFunc("/payments", paymentHandler.PayInstallment).Methods("POST")
	api.HandleFunc("/payments/collect", paymentHandler.CollectInstallments).Methods("POST")
	api.HandleFunc("/wallet/deposits", paymentHandler.Deposit).Methods("POST")
	api.HandleFunc("/reports/cancellations/{period}", reportHandler.CancellationReport).Methods("GET")

	return router
}
