package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sirpi-57/diya-jewelry-bot/config"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/actions"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/api"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/broker"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/redisclient"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/service"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/store"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/util"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting jewelry bot action server")

	tp, err := util.InitTracer("jewelry-bot", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	var catalog *store.Catalog
	switch cfg.Catalog.Source {
	case "postgres":
		catalog, err = store.LoadCatalogPostgres(context.Background(), cfg.Catalog.DatabaseURL)
	default:
		catalog, err = store.LoadCatalogCSV(cfg.Catalog.CSVPath)
	}
	if err != nil {
		log.Fatalf("Failed to load product catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d products from %s", catalog.Len(), cfg.Catalog.Source)

	var redisClient *redisclient.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Redis unavailable, advice caching disabled: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("Redis connected")
		}
	}

	var producer *broker.Producer
	var analyticsWorker *worker.AnalyticsWorker
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if len(cfg.Kafka.Brokers) > 0 {
		producer = broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		log.Println("Kafka producer initialized")

		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.ConsumerGroup)
		analyticsWorker = worker.NewAnalyticsWorker(consumer)
		go func() {
			if err := analyticsWorker.Start(workerCtx); err != nil {
				log.Printf("Analytics worker error: %v", err)
			}
		}()
	}
	eventPublisher := broker.NewEventPublisher(producer)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	browseService := service.NewBrowseService(catalog)
	cartService := service.NewCartService(rng)
	trackingService := service.NewTrackingService(rng, time.Now)
	stylistClient := service.NewStylistClient(
		cfg.Stylist.BaseURL,
		time.Duration(cfg.Stylist.QueryTimeoutSeconds)*time.Second,
		time.Duration(cfg.Stylist.HealthTimeoutSeconds)*time.Second,
		redisClient,
		time.Duration(cfg.Redis.AdviceTTLSeconds)*time.Second,
	)

	actionSet := actions.New(browseService, cartService, trackingService, stylistClient, eventPublisher)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(actionSet)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	if analyticsWorker != nil {
		analyticsWorker.Stop()
	}

	log.Println("Server exited")
}
