package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Dump internal counters in Prometheus text format",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if err := dumpMetrics(os.Stdout, a.registry); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

// dumpMetrics writes every gathered metric family in the Prometheus text
// exposition format.
func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
