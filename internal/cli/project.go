package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkoehler/timekeep/internal/domain/tracker"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a project under a client",
	RunE:  withApp(runProjectAdd),
}

var projectLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List active projects with hours and task counts",
	RunE:  withApp(runProjectLs),
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <uuid>",
	Short: "Delete a project and everything beneath it",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runProjectRm),
}

var (
	projectAddName   string
	projectAddClient string
	projectLsClient  string
	projectLsJSON    bool
)

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectAddCmd, projectLsCmd, projectRmCmd)

	projectAddCmd.Flags().StringVar(&projectAddName, "name", "", "Project name")
	projectAddCmd.Flags().StringVar(&projectAddClient, "client", "", "Parent client uuid")
	projectAddCmd.MarkFlagRequired("client")
	projectLsCmd.Flags().StringVar(&projectLsClient, "client", "", "Only projects of this client")
	projectLsCmd.Flags().BoolVar(&projectLsJSON, "json", false, "Output as JSON")
}

func runProjectAdd(app *App, cmd *cobra.Command, args []string) error {
	p, err := app.Tracker.AddProject(cmd.Context(), app.UserID, tracker.ProjectFields{
		Name:       projectAddName,
		ClientUUID: projectAddClient,
	})
	if err != nil {
		return err
	}
	fmt.Println(p.UUID)
	return nil
}

func runProjectLs(app *App, cmd *cobra.Command, args []string) error {
	projects, err := app.Tracker.Projects(cmd.Context(), app.UserID, projectLsClient)
	if err != nil {
		return err
	}
	if projectLsJSON {
		return json.NewEncoder(os.Stdout).Encode(projects)
	}
	for _, p := range projects {
		fmt.Printf("%s\t%s\t%d tasks\t%.2fh\n", p.UUID, p.Name, p.TaskCount, p.Hours.Hours())
	}
	return nil
}

func runProjectRm(app *App, cmd *cobra.Command, args []string) error {
	return app.Tracker.DeleteProject(cmd.Context(), app.UserID, args[0])
}
