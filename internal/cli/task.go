package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkoehler/timekeep/internal/domain/tracker"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task under a project",
	RunE:  withApp(runTaskAdd),
}

var taskLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List active tasks with hours",
	RunE:  withApp(runTaskLs),
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <uuid>",
	Short: "Delete a task and its time entries",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runTaskRm),
}

var (
	taskAddName    string
	taskAddProject string
	taskLsProject  string
	taskLsJSON     bool
)

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskLsCmd, taskRmCmd)

	taskAddCmd.Flags().StringVar(&taskAddName, "name", "", "Task name")
	taskAddCmd.Flags().StringVar(&taskAddProject, "project", "", "Parent project uuid")
	taskAddCmd.MarkFlagRequired("project")
	taskLsCmd.Flags().StringVar(&taskLsProject, "project", "", "Only tasks of this project")
	taskLsCmd.Flags().BoolVar(&taskLsJSON, "json", false, "Output as JSON")
}

func runTaskAdd(app *App, cmd *cobra.Command, args []string) error {
	t, err := app.Tracker.AddTask(cmd.Context(), app.UserID, tracker.TaskFields{
		Name:        taskAddName,
		ProjectUUID: taskAddProject,
	})
	if err != nil {
		return err
	}
	fmt.Println(t.UUID)
	return nil
}

func runTaskLs(app *App, cmd *cobra.Command, args []string) error {
	tasks, err := app.Tracker.Tasks(cmd.Context(), app.UserID, taskLsProject)
	if err != nil {
		return err
	}
	if taskLsJSON {
		return json.NewEncoder(os.Stdout).Encode(tasks)
	}
	for _, t := range tasks {
		fmt.Printf("%s\t%s\t%.2fh\n", t.UUID, t.Name, t.Hours.Hours())
	}
	return nil
}

func runTaskRm(app *App, cmd *cobra.Command, args []string) error {
	return app.Tracker.DeleteTask(cmd.Context(), app.UserID, args[0])
}
