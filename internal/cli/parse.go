// internal/cli/parse.go
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/law-makers/itemscrape/internal/batch"
	"github.com/law-makers/itemscrape/internal/config"
	"github.com/law-makers/itemscrape/internal/ui"
	"github.com/law-makers/itemscrape/internal/utils/output"
)

var (
	parsePattern   string
	parseNoBar     bool
	parseSkipSaved bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [pages_dir]",
	Short: "Extract item records from every saved page in a directory",
	Long: `Parses every page matching the pattern in the pages directory and
writes one record per page into the items directory.

Pages are parsed concurrently. A page that cannot be parsed is logged and
skipped; the summary at the end counts them. Identical page content is
parsed once.`,
	Example: `  # Parse cache/pages/*.html into cache/items/*.yaml
  itemscrape parse

  # Parse another directory as JSON with 8 workers
  itemscrape parse ./pages -f json -w 8

  # Expose Prometheus metrics while parsing
  itemscrape parse --metrics-addr 127.0.0.1:9090`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parsePattern, "pattern", config.DefaultPagesGlob, "Glob for page files inside the pages directory")
	parseCmd.Flags().BoolVar(&parseNoBar, "no-progress", false, "Disable the progress bar")
	parseCmd.Flags().BoolVar(&parseSkipSaved, "skip-saved", false, "Skip pages whose record file already exists")
}

func runParse(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	pagesDir := a.Config.PagesDir
	if len(args) == 1 {
		pagesDir = args[0]
	}

	paths, err := batch.Glob(pagesDir, parsePattern)
	if err != nil {
		return err
	}
	if parseSkipSaved {
		paths = unsavedPages(paths, a.Config.ItemsDir, a.Format)
	}
	if len(paths) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Info("No pages to parse in "+pagesDir))
		return nil
	}

	if err := a.ServeMetrics(a.Config.MetricsAddr); err != nil {
		return err
	}

	runner := a.Runner()
	log.Info().
		Str("pages_dir", pagesDir).
		Int("pages", len(paths)).
		Int("workers", runner.Concurrency()).
		Msg("Parsing pages")

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("parsing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(!parseNoBar && !a.Config.JSONLog),
	)

	var saved, cached, failed int
	for res := range runner.Run(cmd.Context(), paths) {
		_ = bar.Add(1)

		if res.Err != nil {
			failed++
			log.Error().Err(res.Err).Str("page", res.Path).Msg("Failed to parse page")
			continue
		}
		if res.Cached {
			cached++
		}

		outPath := output.OutputPath(res.Path, a.Config.ItemsDir, a.Format)
		if err := output.Save(outPath, res.Record, a.Format); err != nil {
			failed++
			log.Error().Err(err).Str("page", res.Path).Msg("Failed to save record")
			continue
		}
		saved++
	}
	_ = bar.Finish()

	if err := cmd.Context().Err(); err != nil {
		return fmt.Errorf("parse interrupted: %w", err)
	}

	label := ui.Success("✓ Parsed")
	if failed > 0 {
		label = ui.Warn("! Parsed")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d saved, %d from cache, %d failed (%s)\n",
		label, saved, cached, failed, a.Config.ItemsDir)
	return nil
}

// unsavedPages drops pages whose record file already exists in itemsDir
func unsavedPages(paths []string, itemsDir string, f output.Format) []string {
	out := paths[:0:0]
	for _, p := range paths {
		if _, err := os.Stat(output.OutputPath(p, itemsDir, f)); err == nil {
			log.Debug().Str("page", p).Msg("Record exists, skipping")
			continue
		}
		out = append(out, p)
	}
	return out
}
