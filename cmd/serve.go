package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	config "task-tracker.com/task-tracker/internal/configs"
	httpapi "task-tracker.com/task-tracker/internal/http"
	"task-tracker.com/task-tracker/internal/limiter"
	"task-tracker.com/task-tracker/internal/logger"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task REST API backed by the sqlite store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logCloser, err := logger.Init(cfg.Log)
		if err != nil {
			return err
		}
		defer logCloser.Close()

		database, err := config.NewDatabaseClient(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer func() {
			if err := config.CloseDatabase(database); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}()

		rateLimiter, closeLimiter, err := newRateLimiter(cfg)
		if err != nil {
			return err
		}
		defer closeLimiter()

		taskRepo := repository.NewTaskRepository(database)
		taskService := services.NewTaskService(taskRepo)

		e := newEcho()
		httpapi.Register(e, httpapi.NewHandler(taskService), httpapi.RouteOptions{
			Limiter:          rateLimiter,
			CORSAllowOrigins: cfg.CORSAllowOrigins,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runServer(ctx, e, "api", cfg.AppURL, cfg.ShutdownTimeout())
	},
}

// newRateLimiter shares limits through redis when REDIS_ADDR is set and
// keeps them in memory otherwise.
func newRateLimiter(cfg config.Config) (limiter.Limiter, func(), error) {
	if cfg.RedisAddr == "" {
		l, err := limiter.NewMemoryLimiter(cfg.RateLimit, time.Minute)
		return l, func() {}, err
	}

	redisClient, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}

	l, err := limiter.NewRedisLimiter(redisClient, cfg.RedisRateLimitKey, cfg.RateLimit, time.Minute)
	if err != nil {
		redisClient.Close()
		return nil, nil, err
	}

	logger.Info("rate limiting through redis", "addr", cfg.RedisAddr)
	return l, redisClient.Close, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
