package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/config"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/typegen"
)

var checkFlags renderFlags

// CheckCmd checks if generated stubs are up to date
var CheckCmd = &cobra.Command{
	Use:   "check <unit>... <existing>",
	Short: "Check if generated stubs are up to date",
	Long: `Regenerate stubs and compare them with existing output, ignoring the
header line.

<existing> is either one stubs file (with exactly one unit) or a directory
holding <name>.<extension> files for every unit.

Exit codes:
  0 - Stubs are up to date
  1 - Stubs are out of date, or an error occurred

Examples:
  stubgen check point.yaml stubs/point.fluffy
  stubgen check units/*.yaml stubs/`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCheck,
}

func init() {
	checkFlags.register(CheckCmd, false)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	s, err := checkFlags.resolve(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	units, existing := args[:len(args)-1], args[len(args)-1]
	upToDate, err := checkStubs(ctx, s, units, existing, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if !upToDate {
		return errors.WithHint(errors.New("generated stubs are out of date"),
			"run stubgen export to regenerate them")
	}
	return nil
}

// checkStubs exports units to a temporary directory, post-format command
// included, and compares the result with existing
func checkStubs(ctx context.Context, s settings, units []string, existing string, w io.Writer) (bool, error) {
	info, err := os.Stat(existing)
	if err != nil {
		if os.IsNotExist(err) {
			return false, errors.NewNotFoundError("existing stubs %s", existing)
		}
		return false, errors.Wrapf(err, "failed to stat %s", existing)
	}
	if !info.IsDir() && len(units) != 1 {
		return false, errors.NewInvalidRequestError("comparing against the file %s needs exactly one unit, got %d", existing, len(units))
	}

	tempDir, err := os.MkdirTemp("", "stubgen-check-*")
	if err != nil {
		return false, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	s.OutputDir = tempDir
	ex := &exporter{settings: s, stdout: io.Discard, stderr: io.Discard}
	results, err := ex.run(ctx, units)
	if err != nil {
		return false, err
	}

	if !info.IsDir() {
		generated, err := os.ReadFile(ex.outputPath(results[0]))
		if err != nil {
			return false, errors.Wrap(err, "failed to read generated stubs")
		}
		differs, err := typegen.CompareOutput(string(generated), existing, true)
		if err != nil {
			return false, err
		}
		if differs {
			fmt.Fprintf(w, "%s %s is out of date\n", pterm.Red("✗"), existing)
			return false, nil
		}
		fmt.Fprintf(w, "%s %s is up to date\n", pterm.Green("✓"), existing)
		return true, nil
	}

	result, err := typegen.CompareDirectories(tempDir, existing, true, nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to compare directories")
	}
	if result.UpToDate {
		fmt.Fprintf(w, "%s %d file(s) in %s are up to date\n", pterm.Green("✓"), len(results), existing)
		return true, nil
	}

	fmt.Fprintf(w, "%s Stubs in %s are out of date.\n", pterm.Red("✗"), existing)
	for _, file := range result.Differences {
		fmt.Fprintf(w, "  changed: %s\n", file)
	}
	for _, file := range result.Missing {
		fmt.Fprintf(w, "  missing: %s\n", file)
	}
	return false, nil
}
