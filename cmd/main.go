package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/lifesure/lifesure-backend/internal/api"
	"github.com/lifesure/lifesure-backend/internal/config"
	"github.com/lifesure/lifesure-backend/internal/events"
	"github.com/lifesure/lifesure-backend/internal/gateway"
	"github.com/lifesure/lifesure-backend/internal/handlers"
	"github.com/lifesure/lifesure-backend/internal/interfaces"
	"github.com/lifesure/lifesure-backend/internal/locks"
	"github.com/lifesure/lifesure-backend/internal/repository"
	"github.com/lifesure/lifesure-backend/internal/service"
	"github.com/lifesure/lifesure-backend/internal/telemetry"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize telemetry
	if err := telemetry.InitTelemetry("lifesure-backend"); err != nil {
		panic(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	}
	defer telemetry.Shutdown(context.Background())

	telemetry.Logger.Info("Starting LifeSure backend")

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, mongoopts.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		telemetry.Logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		telemetry.Logger.Fatal("MongoDB is unreachable", zap.Error(err))
	}

	// Initialize store and indexes
	store := repository.NewStore(client.Database(cfg.DatabaseName))
	if err := store.EnsureIndexes(ctx); err != nil {
		telemetry.Logger.Fatal("Failed to create indexes", zap.Error(err))
	}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	locker := locks.NewRedisLocker(redisClient)

	// Connect to Kafka
	var publisher interfaces.EventPublisher
	if cfg.KafkaBrokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// Payment gateway
	stripeGateway := gateway.NewStripeGateway(cfg.StripeSecret)

	// Repositories
	policyRepo := repository.NewPolicyRepository(store)
	appRepo := repository.NewApplicationRepository(store)
	claimRepo := repository.NewClaimRepository(store)
	txRepo := repository.NewTransactionRepository(store)
	userRepo := repository.NewUserRepository(store)

	// Services
	appSvc := service.NewApplicationService(appRepo, policyRepo, publisher)
	paymentSvc := service.NewPaymentService(appRepo, txRepo, stripeGateway, locker, publisher)
	claimSvc := service.NewClaimService(claimRepo, policyRepo, publisher)
	reportingSvc := service.NewReportingService(appRepo, claimRepo)

	// Setup router
	r := api.NewRouter(api.Handlers{
		Applications: handlers.NewApplicationHandler(appSvc),
		Payments:     handlers.NewPaymentHandler(paymentSvc),
		Claims:       handlers.NewClaimHandler(claimSvc),
		Policies:     handlers.NewPolicyHandler(policyRepo),
		Users:        handlers.NewUserHandler(userRepo),
		Reporting:    handlers.NewReportingHandler(reportingSvc),
	})

	// Setup HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		telemetry.Logger.Info("LifeSure backend starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			telemetry.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	telemetry.Logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		telemetry.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	telemetry.Logger.Info("Server exited")
}
