// internal/cli/filter.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/itemscrape/internal/batch"
	"github.com/law-makers/itemscrape/internal/filter"
	"github.com/law-makers/itemscrape/internal/utils/output"
	"github.com/law-makers/itemscrape/pkg/models"
)

var (
	filterPlatforms string
	filterCriteria  filter.Criteria
	filterCSV       bool
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Print saved item records matching price, stock, sales and platform rules",
	Long: `Loads every record in the items directory saved in the chosen format
and prints the ones matching all given rules. A rule left unset is not
applied.

--min-price never rejects a record whose lowest price is 0, since such a
record carries no price information.`,
	Example: `  # Tmall items priced at most 100
  itemscrape filter --platform tmall --max-price 100

  # Items with at least 1000 sales, as a CSV overview
  itemscrape filter --min-sales 1000 --csv`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	f := filterCmd.Flags()
	f.StringVar(&filterPlatforms, "platform", "", "Comma-separated platforms to keep: taobao, tmall")
	f.Float64Var(&filterCriteria.MinPrice, "min-price", 0, "Lowest accepted minimum price")
	f.Float64Var(&filterCriteria.MaxPrice, "max-price", 0, "Highest accepted maximum price")
	f.IntVar(&filterCriteria.MinTotalStock, "min-total-stock", 0, "Lowest accepted total stock")
	f.IntVar(&filterCriteria.MaxTotalStock, "max-total-stock", 0, "Highest accepted total stock")
	f.IntVar(&filterCriteria.MinSales, "min-sales", 0, "Lowest accepted sales count")
	f.IntVar(&filterCriteria.MaxSales, "max-sales", 0, "Highest accepted sales count")
	f.BoolVar(&filterCSV, "csv", false, "Print a CSV overview instead of full records")
}

func runFilter(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	criteria := filterCriteria
	platforms, err := parsePlatforms(filterPlatforms)
	if err != nil {
		return err
	}
	criteria.Platforms = platforms

	paths, err := batch.Glob(a.Config.ItemsDir, "*."+a.Format.Ext())
	if err != nil {
		return err
	}

	var rows []output.SummaryRow
	for _, path := range paths {
		rec, err := output.Load(path, a.Format)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Failed to load record")
			continue
		}
		if criteria.Match(rec) {
			rows = append(rows, output.SummaryRow{Source: path, Record: rec})
		}
	}
	log.Info().Int("records", len(paths)).Int("matched", len(rows)).Msg("Records filtered")

	w := cmd.OutOrStdout()
	if filterCSV {
		return output.WriteSummaryCSV(w, rows)
	}
	return printRecords(w, rows, a.Format)
}

func parsePlatforms(s string) ([]models.Platform, error) {
	var platforms []models.Platform
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		p := models.Platform(part)
		if !p.Valid() {
			return nil, fmt.Errorf("invalid platform: %q (must be taobao or tmall)", part)
		}
		platforms = append(platforms, p)
	}
	return platforms, nil
}

// printRecords writes the records back to back; YAML documents are
// separated by "---".
func printRecords(w io.Writer, rows []output.SummaryRow, f output.Format) error {
	for i, row := range rows {
		if f == output.FormatYAML && i > 0 {
			if _, err := fmt.Fprintln(w, "---"); err != nil {
				return err
			}
		}
		if err := output.Encode(w, row.Record, f); err != nil {
			return err
		}
	}
	return nil
}
