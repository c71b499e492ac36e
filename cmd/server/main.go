package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"transfleet/internal/app"
	"transfleet/internal/config"
	"transfleet/internal/handler"
	"transfleet/internal/media"
	internalRedis "transfleet/internal/redis"
	"transfleet/internal/service"
	"transfleet/internal/storage"
	"transfleet/internal/upstream"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so Redis can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Initialize the image staging store.
	mediaStore, err := media.NewStore(cfg.Media.StagingDir)
	if err != nil {
		log.Fatalf("failed to initialize image staging: %v", err)
	}
	log.Printf("Image staging at %s", cfg.Media.StagingDir)

	// Wire dependencies.
	server := wireServer(redisClient, mediaStore, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(redisClient *redis.Client, mediaStore *media.Store, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	sessionStore := internalRedis.NewSessionStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize upstream clients.
	fleetClient := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	uploader := storage.NewCloudinaryUploader(
		cfg.Cloudinary.UploadURL,
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.UploadPreset,
		mediaStore,
		cfg.Cloudinary.Timeout,
	)

	// Initialize services.
	notifier := service.NewLogNotifier()
	resolutionService := service.NewResolutionService(fleetClient, fleetClient, cacheStore)
	authService := service.NewAuthService(fleetClient, sessionStore, cacheStore, cfg.Session.TTL)
	orderService := service.NewOrderService(fleetClient, resolutionService, sessionStore)
	statusService := service.NewStatusService(fleetClient, uploader, mediaStore, lockStore, notifier)
	repairService := service.NewRepairService(fleetClient, fleetClient, uploader, mediaStore, cacheStore, notifier)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(orderService, statusService)
	repairHandler := handler.NewRepairHandler(repairService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:   authHandler,
		OrderHandler:  orderHandler,
		RepairHandler: repairHandler,
		SessionStore:  sessionStore,
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
