// internal/cli/parse_one.go
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/itemscrape/internal/ui"
	"github.com/law-makers/itemscrape/internal/utils/output"
	"github.com/law-makers/itemscrape/pkg/models"
)

var (
	parseOneStdout bool
	parseOneOutput string
)

// parseOneCmd represents the parse-one command
var parseOneCmd = &cobra.Command{
	Use:   "parse-one <page.html|->",
	Short: "Extract the item record from one saved page",
	Long: `Reads one saved item page, detects whether it is a Taobao or Tmall
layout, and writes the extracted record.

The record goes to "<items-dir>/<page name>.<format>" unless --output or
--stdout is given. Pass "-" to read the page from standard input; the
record is then printed unless --output is set.`,
	Example: `  # Parse a saved page into cache/items/id=123.yaml
  itemscrape parse-one cache/pages/id=123.html

  # Print the record as JSON
  itemscrape parse-one cache/pages/id=123.html --stdout -f json

  # Read from stdin
  cat page.html | itemscrape parse-one -`,
	Args: cobra.ExactArgs(1),
	RunE: runParseOne,
}

func init() {
	rootCmd.AddCommand(parseOneCmd)

	parseOneCmd.Flags().BoolVar(&parseOneStdout, "stdout", false, "Print the record instead of saving it")
	parseOneCmd.Flags().StringVarP(&parseOneOutput, "output", "o", "", "File path to save the record")
}

func runParseOne(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	page := args[0]

	var in io.Reader = cmd.InOrStdin()
	if page != "-" {
		f, err := os.Open(page)
		if err != nil {
			return fmt.Errorf("failed to open page: %w", err)
		}
		defer f.Close()
		in = f
	}

	rec, err := a.Dispatcher.ExtractReader(in)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", page, err)
	}
	log.Info().Str("page", page).Str("platform", string(rec.Platform)).Msg("Page parsed")

	outPath := parseOneOutput
	if outPath == "" && !parseOneStdout && page != "-" {
		outPath = output.OutputPath(page, a.Config.ItemsDir, a.Format)
	}

	if parseOneStdout || outPath == "" {
		return output.Encode(cmd.OutOrStdout(), rec, a.Format)
	}
	return saveRecord(cmd.OutOrStdout(), outPath, rec, a.Format)
}

func saveRecord(w io.Writer, path string, rec *models.ItemRecord, f output.Format) error {
	if err := output.Save(path, rec, f); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	log.Info().Str("file", path).Msg("Record saved")
	fmt.Fprintln(w, ui.Success("✓ Saved to "+path))
	return nil
}
