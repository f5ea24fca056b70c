package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkoehler/timekeep/internal/domain/entity"
)

var syncCmd = &cobra.Command{
	Use:   "sync [file]",
	Short: "Apply a batch of entity patches",
	Long: `Reads a JSON array of entity patches from a file or stdin, merges it
against the store in order under one commit, and prints the resulting
authoritative entities as JSON. Conflicting concurrent edits resolve
last-writer-wins.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(runSync),
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(app *App, cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var patches []entity.Patch
	if err := json.NewDecoder(in).Decode(&patches); err != nil {
		return fmt.Errorf("parsing patch batch: %w", err)
	}

	merged, err := app.Tracker.MergeBatch(cmd.Context(), app.UserID, patches)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(merged)
}
