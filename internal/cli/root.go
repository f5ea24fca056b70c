package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "timekeep",
	Short: "Track billable time across clients, projects, tasks and entries",
	Long: `timekeep is a versioned time tracker. Every change is recorded against
a fresh commit id instead of being overwritten in place, deletes are
logical and cascade through the hierarchy, and a sync command reconciles
batches of offline edits against the store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to database file (overrides TIMEKEEP_DB_PATH)")
	rootCmd.PersistentFlags().String("user", "", "User id owning the data (overrides TIMEKEEP_USER)")
}
