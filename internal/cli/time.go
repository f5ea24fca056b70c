package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/domain/tracker"
)

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Manage time entries",
}

var timeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record time spent on a task",
	Long: `Records a time entry under a task. Give either an explicit interval
(--start/--end, RFC 3339) or a duration in hours (--duration, decimal
comma accepted) with an optional day (--date, YYYY-MM-DD).`,
	RunE: withApp(runTimeAdd),
}

var timeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List active time entries",
	RunE:  withApp(runTimeLs),
}

var timeRmCmd = &cobra.Command{
	Use:   "rm <uuid>",
	Short: "Delete a time entry",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runTimeRm),
}

var timePayCmd = &cobra.Command{
	Use:   "pay <uuid>",
	Short: "Mark a time entry as paid",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runTimePay),
}

var timeUnpayCmd = &cobra.Command{
	Use:   "unpay <uuid>",
	Short: "Mark a time entry as unpaid",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runTimeUnpay),
}

var (
	timeAddTask     string
	timeAddName     string
	timeAddNote     string
	timeAddDuration string
	timeAddDate     string
	timeAddStart    string
	timeAddEnd      string
	timeLsTask      string
	timeLsJSON      bool
)

func init() {
	rootCmd.AddCommand(timeCmd)
	timeCmd.AddCommand(timeAddCmd, timeLsCmd, timeRmCmd, timePayCmd, timeUnpayCmd)

	timeAddCmd.Flags().StringVar(&timeAddTask, "task", "", "Parent task uuid")
	timeAddCmd.MarkFlagRequired("task")
	timeAddCmd.Flags().StringVar(&timeAddName, "name", "", "Entry name")
	timeAddCmd.Flags().StringVar(&timeAddNote, "note", "", "Free-form note")
	timeAddCmd.Flags().StringVar(&timeAddDuration, "duration", "", "Hours spent, e.g. 1.5 or 1,5")
	timeAddCmd.Flags().StringVar(&timeAddDate, "date", "", "Day the time was spent (YYYY-MM-DD)")
	timeAddCmd.Flags().StringVar(&timeAddStart, "start", "", "Interval start (RFC 3339)")
	timeAddCmd.Flags().StringVar(&timeAddEnd, "end", "", "Interval end (RFC 3339)")
	timeLsCmd.Flags().StringVar(&timeLsTask, "task", "", "Only entries of this task")
	timeLsCmd.Flags().BoolVar(&timeLsJSON, "json", false, "Output as JSON")
}

func runTimeAdd(app *App, cmd *cobra.Command, args []string) error {
	var start, end time.Time
	switch {
	case timeAddStart != "" && timeAddEnd != "":
		var err error
		start, err = time.Parse(time.RFC3339, timeAddStart)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		end, err = time.Parse(time.RFC3339, timeAddEnd)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
	case timeAddDuration != "":
		var day time.Time
		if timeAddDate != "" {
			var err error
			day, err = time.Parse("2006-01-02", timeAddDate)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
		}
		var err error
		start, end, err = tracker.IntervalForDuration(timeAddDuration, day)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --duration or both --start and --end are required")
	}

	t, err := app.Tracker.AddTimeEntry(cmd.Context(), app.UserID, tracker.TimeEntryFields{
		Name:     timeAddName,
		TaskUUID: timeAddTask,
		Note:     timeAddNote,
		Start:    start,
		End:      end,
	})
	if err != nil {
		return err
	}
	fmt.Println(t.UUID)
	return nil
}

func runTimeLs(app *App, cmd *cobra.Command, args []string) error {
	entries, err := app.Tracker.Times(cmd.Context(), app.UserID, timeLsTask)
	if err != nil {
		return err
	}
	if timeLsJSON {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}
	for _, t := range entries {
		fmt.Printf("%s\t%s\t%.2fh\t%s\n", t.UUID,
			t.Start.Format("2006-01-02 15:04"), t.Duration().Hours(), t.PaymentStatus)
	}
	return nil
}

func runTimeRm(app *App, cmd *cobra.Command, args []string) error {
	return app.Tracker.DeleteTimeEntry(cmd.Context(), app.UserID, args[0])
}

func runTimePay(app *App, cmd *cobra.Command, args []string) error {
	_, err := app.Tracker.SetPaymentStatus(cmd.Context(), app.UserID, args[0], entity.PaymentPaid)
	return err
}

func runTimeUnpay(app *App, cmd *cobra.Command, args []string) error {
	_, err := app.Tracker.SetPaymentStatus(cmd.Context(), app.UserID, args[0], entity.PaymentUnpaid)
	return err
}
