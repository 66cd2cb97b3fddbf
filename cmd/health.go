package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/terminal"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the task API is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		health, err := api.Health(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), terminal.Success(fmt.Sprintf("%s: %s", health.Status, health.Message)))
		fmt.Fprintf(cmd.OutOrStdout(), "API:      %s\nDatabase: %s\n", api.BaseURL(), health.Database)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
