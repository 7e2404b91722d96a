package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/cmd/stubgen/commands"
	"github.com/teranos/stubgen/config"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "stubgen",
	Short: "stubgen - Export C declarations as fluffy binding stubs",
	Long: `stubgen - Export C declarations as fluffy binding stubs.

stubgen reads resolved C translation units from unit documents (YAML, TOML
or JSON) and writes declaration-only stubs in the fluffy binding language:
struct, union and enum definitions, global variables and function
signatures.

Available commands:
  export  - Export unit documents as fluffy stubs
  check   - Check if generated stubs are up to date
  inspect - List the declarations of a unit document
  config  - Manage stubgen configuration
  version - Show version information

Examples:
  stubgen export point.yaml             # Stubs to stdout
  stubgen export -o stubs/ units/*.yaml # One file per unit
  stubgen check point.yaml point.fluffy # Fail if the stubs are stale`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLog, _ := cmd.Flags().GetBool("json-log")

		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}

		logger.SetTheme(cfg.GetLogTheme())
		if err := logger.Initialize(jsonLog || cfg.Log.JSON, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Write logs as JSON")

	rootCmd.AddCommand(commands.ExportCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err.Error())
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "  hint: %s\n", hint)
		}
		stop()
		os.Exit(1)
	}
}
