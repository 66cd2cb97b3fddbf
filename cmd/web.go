package cmd

import (
	"os/signal"
	"syscall"

	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/client"
	config "task-tracker.com/task-tracker/internal/configs"
	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	"task-tracker.com/task-tracker/internal/logger"
	"task-tracker.com/task-tracker/internal/web"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the browser client",
	Long:  "Serves the task tracker web page, talking to the task API",
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

		clientCfg, err := withClientFlags(cfg.Client)
		if err != nil {
			return err
		}
		api := client.New(client.Options{
			BaseURL: clientCfg.APIBaseURL,
			Timeout: clientCfg.Timeout(),
		})

		e := newEcho()
		e.Use(middleware.RequestID())
		e.Use(middleware.RequestLogger())
		e.Use(echomw.Recover())
		web.NewHandler(api).Register(e)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("using task API", "url", api.BaseURL())
		return runServer(ctx, e, "web", cfg.WebURL, cfg.ShutdownTimeout())
	},
}

func init() {
	rootCmd.AddCommand(webCmd)
}
