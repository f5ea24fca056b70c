package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkoehler/timekeep/internal/domain/tracker"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a client",
	RunE:  withApp(runClientAdd),
}

var clientLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List active clients with hours and project counts",
	RunE:  withApp(runClientLs),
}

var clientRmCmd = &cobra.Command{
	Use:   "rm <uuid>",
	Short: "Delete a client and everything beneath it",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runClientRm),
}

var (
	clientAddName string
	clientAddNote string
	clientLsJSON  bool
)

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientAddCmd, clientLsCmd, clientRmCmd)

	clientAddCmd.Flags().StringVar(&clientAddName, "name", "Unnamed", "Client name")
	clientAddCmd.Flags().StringVar(&clientAddNote, "note", "", "Free-form note")
	clientLsCmd.Flags().BoolVar(&clientLsJSON, "json", false, "Output as JSON")
}

func runClientAdd(app *App, cmd *cobra.Command, args []string) error {
	c, err := app.Tracker.AddClient(cmd.Context(), app.UserID, tracker.ClientFields{
		Name: clientAddName,
		Note: clientAddNote,
	})
	if err != nil {
		return err
	}
	fmt.Println(c.UUID)
	return nil
}

func runClientLs(app *App, cmd *cobra.Command, args []string) error {
	clients, err := app.Tracker.Clients(cmd.Context(), app.UserID)
	if err != nil {
		return err
	}
	if clientLsJSON {
		return json.NewEncoder(os.Stdout).Encode(clients)
	}
	for _, c := range clients {
		fmt.Printf("%s\t%s\t%d projects\t%.2fh\n", c.UUID, c.Name, c.ProjectCount, c.Hours.Hours())
	}
	return nil
}

func runClientRm(app *App, cmd *cobra.Command, args []string) error {
	return app.Tracker.DeleteClient(cmd.Context(), app.UserID, args[0])
}
