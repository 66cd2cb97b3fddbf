package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "task-tracker.com/task-tracker/internal/configs"
	"task-tracker.com/task-tracker/internal/terminal"
)

var (
	apiURLFlag     string
	apiTimeoutFlag int
)

var rootCmd = &cobra.Command{
	Use:           "tasktracker",
	Short:         "Personal task tracker",
	Long:          "A task tracker with a REST API, a browser client and a terminal client",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to read .env file: %v", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "task API base URL (overrides API_BASE_URL and the config file)")
	rootCmd.PersistentFlags().IntVar(&apiTimeoutFlag, "timeout", 0, "API request timeout in seconds")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, terminal.Error(err))
		os.Exit(1)
	}
}

// withClientFlags applies --api-url and --timeout on top of cfg.
func withClientFlags(cfg config.ClientConfig) (config.ClientConfig, error) {
	if apiURLFlag != "" {
		cfg.APIBaseURL = apiURLFlag
	}
	if apiTimeoutFlag != 0 {
		cfg.APITimeoutSeconds = apiTimeoutFlag
	}
	if err := cfg.Validate(); err != nil {
		return config.ClientConfig{}, err
	}
	return cfg, nil
}
