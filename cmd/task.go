package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/client"
	config "task-tracker.com/task-tracker/internal/configs"
	"task-tracker.com/task-tracker/internal/terminal"
	"task-tracker.com/task-tracker/pkg/optional"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks from the terminal",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending and completed tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		tasks, err := api.ListTasks(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), terminal.Board(tasks))
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		task, err := api.GetTask(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), terminal.Task(*task))
		return nil
	},
}

var (
	addTitle       string
	addDescription string
)

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		task, err := api.CreateTask(cmd.Context(), client.CreateTaskInput{
			Title:       addTitle,
			Description: addDescription,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), terminal.Success(fmt.Sprintf("Task added successfully! (#%d)", task.ID)))
		return nil
	},
}

var (
	updateTitle            string
	updateDescription      string
	updateClearDescription bool
	updateCompleted        string
)

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		var input client.UpdateTaskInput
		if flags.Changed("title") {
			input.Title = optional.Of(updateTitle)
		}
		if flags.Changed("description") {
			input.Description = optional.Of(updateDescription)
		}
		if updateClearDescription {
			input.Description = optional.Of("")
		}
		if flags.Changed("completed") {
			input.Completed = optional.Of[any](updateCompleted)
		}

		return applyUpdate(cmd, id, input)
	},
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		return applyUpdate(cmd, id, client.UpdateTaskInput{Completed: optional.Of[any](true)})
	},
}

var taskReopenCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Mark a task as pending again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		return applyUpdate(cmd, id, client.UpdateTaskInput{Completed: optional.Of[any](false)})
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		if err := api.DeleteTask(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), terminal.Success("Task deleted successfully!"))
		return nil
	},
}

func applyUpdate(cmd *cobra.Command, id uint, input client.UpdateTaskInput) error {
	api, err := newAPIClient()
	if err != nil {
		return err
	}

	task, err := api.UpdateTask(cmd.Context(), id, input)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), terminal.Success("Task updated successfully!"))
	fmt.Fprint(cmd.OutOrStdout(), terminal.Task(*task))
	return nil
}

func newAPIClient() (*client.Client, error) {
	cfg, err := config.LoadClient(config.ClientFilePath())
	if err != nil {
		return nil, err
	}
	cfg, err = withClientFlags(cfg)
	if err != nil {
		return nil, err
	}

	return client.New(client.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.Timeout(),
	}), nil
}

func parseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return uint(id), nil
}

func init() {
	taskAddCmd.Flags().StringVarP(&addTitle, "title", "t", "", "task title")
	taskAddCmd.Flags().StringVarP(&addDescription, "description", "d", "", "optional description")
	_ = taskAddCmd.MarkFlagRequired("title")

	taskUpdateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	taskUpdateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
	taskUpdateCmd.Flags().BoolVar(&updateClearDescription, "clear-description", false, "remove the description")
	taskUpdateCmd.Flags().StringVar(&updateCompleted, "completed", "", "completed state (true/false/1/0)")
	taskUpdateCmd.MarkFlagsMutuallyExclusive("description", "clear-description")

	taskCmd.AddCommand(taskListCmd, taskShowCmd, taskAddCmd, taskUpdateCmd, taskCompleteCmd, taskReopenCmd, taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}
