package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nursultanov/glance/internal/exchange"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export local data to a JSON bundle",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		// Everything ever tracked locally
		sessions, err := a.store.SessionsInRange(time.Time{}, time.Now())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		records, err := a.store.DailyRecords("", "")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		bundle := &exchange.Bundle{
			ExportedAt: time.Now(),
			Sessions:   sessions,
			Goals:      a.goals.Snapshot(),
			Records:    records,
		}

		if err := exchange.New(nil).Export(args[0], bundle); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Exported %d sessions, %d records to %s\n",
			len(bundle.Sessions), len(bundle.Records), args[0])
	}),
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a JSON bundle into the local store",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		bundle, report, err := exchange.New(nil).Import(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		imported := 0
		for i := range bundle.Records {
			if err := a.store.UpsertDailyRecord(&bundle.Records[i]); err != nil {
				fmt.Printf("Warning: skipping record %s: %v\n", bundle.Records[i].Date, err)
				continue
			}
			imported++
		}

		fmt.Printf("✅ Imported %d daily records (%d sessions valid, %d items skipped)\n",
			imported, report.Sessions, report.SkippedSessions+report.SkippedRecords)
	}),
}
