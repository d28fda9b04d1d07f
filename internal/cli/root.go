// internal/cli/root.go
package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/law-makers/itemscrape/internal/app"
	"github.com/law-makers/itemscrape/internal/config"
)

const shutdownTimeout = 5 * time.Second

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "itemscrape",
	Short: "Extract structured item records from saved Taobao and Tmall pages",
	Long: `Itemscrape reads item pages saved from Taobao or Tmall and turns each one
into a record holding the title, attributes, delivery details, purchasable
variants, price range, total stock and sales.

The page layout is detected from the document title. Records are written
as YAML or JSON and can be filtered afterwards.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := execute(ctx, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	// PersistentPostRun is skipped when a command fails
	defer closeApp(rootCmd)
	return rootCmd.ExecuteContext(ctx)
}

func closeApp(cmd *cobra.Command) {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = a.Close(ctx)
	SetApp(cmd, nil)
}

func init() {
	// Lazily initialize the application before running commands (avoid starting app for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetAppFromCmd(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		SetApp(cmd, a)
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		closeApp(cmd)
	}
}

func init() {
	// Register centralized flags
	config.RegisterFlags(rootCmd)

	// Customize help and version flag descriptions
	rootCmd.Flags().BoolP("help", "h", false, "Help for Itemscrape")
	rootCmd.Flags().Bool("version", false, "Version for Itemscrape")

	// Disable the default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Set custom help function
	rootCmd.SetHelpFunc(customHelpFunc)
	rootCmd.SetUsageFunc(customUsageFunc)
}
