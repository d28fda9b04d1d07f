package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Write logs as JSON lines")
	cmd.PersistentFlags().StringP("format", "f", DefaultFormat, "Record format: yaml or json")
	cmd.PersistentFlags().String("pages-dir", DefaultPagesDir, "Directory holding saved item pages")
	cmd.PersistentFlags().String("items-dir", DefaultItemsDir, "Directory holding extracted item records")
	cmd.PersistentFlags().IntP("workers", "w", DefaultWorkers, "Concurrent page parsers (0 = auto)")
	cmd.PersistentFlags().Int("cache-size", DefaultCacheSize, "Records kept for duplicate page content")
	cmd.PersistentFlags().Bool("lenient", DefaultLenient, "Evaluate non-JSON embedded SKU data as JavaScript literals")
	cmd.PersistentFlags().String("eval-timeout", DefaultEvalTimeout.String(), "Time limit for one lenient evaluation")
	cmd.PersistentFlags().String("metrics-addr", DefaultMetricsAddr, "Serve Prometheus metrics on this address during batch runs")
}
