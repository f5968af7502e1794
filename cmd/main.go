package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafecopilot/internal/api"
	"cafecopilot/internal/assistant"
	"cafecopilot/internal/cafe"
	"cafecopilot/internal/config"
	"cafecopilot/internal/monitoring"
	"cafecopilot/internal/storage"

	"github.com/gin-gonic/gin"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Initialize context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort > 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	// Initialize storage
	store, err := storage.Open(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// Initialize metrics
	metrics := monitoring.NewMetrics()

	// Initialize assistant
	dispatcher := assistant.NewDispatcher(cfg.Assistant, assistant.WithMetrics(metrics))
	if !dispatcher.Configured() {
		log.Println("Assistant is not configured; set COPILOT_API_URL and COPILOT_API_TOKEN to enable it")
	}

	// Initialize API server
	service := cafe.NewService(store, dispatcher, metrics)
	cafeAPI := api.NewCafeAPI(ctx, service)

	// Prime the low-stock gauge from the stored inventory
	alerts, err := service.InventoryAlerts(ctx)
	if err != nil {
		log.Fatalf("Failed to load inventory: %v", err)
	}
	log.Printf("Loaded inventory: %d items at or below reorder level", len(alerts))

	// Start metrics server
	metricsServer := newMetricsServer(cfg.Server.MetricsPort, metrics)
	go func() {
		log.Printf("Starting metrics server on port %d", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: cafeAPI.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")
		cancel() // closes assistant WebSocket sessions

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Metrics server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Starting API server on port %d (storage: %s)", cfg.Server.Port, cfg.Storage.Driver)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func newMetricsServer(port int, metrics *monitoring.Metrics) *http.Server {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(metrics.Handler()))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}
}
