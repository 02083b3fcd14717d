package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/verdane/esgpulse/internal/api"
	"github.com/verdane/esgpulse/internal/api/handlers"
	"github.com/verdane/esgpulse/internal/assessment"
	"github.com/verdane/esgpulse/internal/external/surveyhub"
	"github.com/verdane/esgpulse/pkg/config"
	"github.com/verdane/esgpulse/pkg/database"
	"github.com/verdane/esgpulse/pkg/httputil"
	"github.com/verdane/esgpulse/pkg/logger"
	"github.com/verdane/esgpulse/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the scoring API server",
	Long: `Starts the REST API server.

Endpoints:
  GET /health                            - Health check
  GET /api/surveys/{id}/scores           - Reconciled score table
  GET /api/surveys/{id}/matrix           - Materiality matrix points
  GET /api/surveys/{id}/ranking          - Ranked, paginated scores

Example:
  go run ./cmd/esgpulse api
  go run ./cmd/esgpulse api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyGlobalFlags(cfg)
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)
	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	// 4. Connect to redis (optional)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	var cache *redis.Cache
	if redisClient.Enabled() {
		cache = redis.NewCache(redisClient, "esgpulse")
	}

	// 5. Survey platform client, rate limited across processes when redis
	// is available
	httpClient := httputil.New(log)
	if redisClient.Enabled() {
		limiter := redis.NewRateLimiter(redisClient, "esgpulse")
		httpClient = httpClient.WithRateLimiter(limiter, redis.SurveyHubRateLimit)
	}
	hubClient := surveyhub.NewClient(cfg.SurveyHub, httpClient, log.Component("surveyhub"))

	// 6. Assessment service
	loader := assessment.NewLoader(hubClient, cache, log.Component("loader"))
	service := assessment.NewService(loader, log.Component("assessment"))

	// 7. Handlers and router
	h := api.Handlers{
		Health:     handlers.NewHealthHandler(db, redisClient, log),
		Assessment: handlers.NewAssessmentHandler(service, log.Component("api")),
	}
	router := api.NewRouter(h, log)

	// 8. Start server with graceful shutdown
	server := api.NewServer(cfg, router, log)
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("server failed")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s (Ctrl+C to stop)\n", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
