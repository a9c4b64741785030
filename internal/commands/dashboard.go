package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nursultanov/glance/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Open the live dashboard",
	Long: `Open the dashboard over the activity monitor. The view refreshes every
30 seconds; sources that fail are shown with their reason without
breaking the rest of the view.

With --once, the merged snapshot is printed and the command exits.`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		once, _ := cmd.Flags().GetBool("once")
		if once {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			snap := a.service.Aggregator().Refresh(ctx)
			for key, result := range snap {
				if result.Failed() {
					fmt.Printf("%-16s ⚠ %s\n", key, result.Err)
				} else {
					fmt.Printf("%-16s ok\n", key)
				}
			}
			return
		}

		if err := tui.RunDashboardTUI(a.service.Aggregator()); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

func init() {
	dashboardCmd.Flags().Bool("once", false, "Print one snapshot and exit")
}
