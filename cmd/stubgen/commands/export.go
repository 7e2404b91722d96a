package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/config"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/irload"
	"github.com/teranos/stubgen/logger"
	"github.com/teranos/stubgen/typegen"
	"github.com/teranos/stubgen/typegen/fluffy"
)

var (
	exportFlags renderFlags
	exportWatch bool
)

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export <unit>...",
	Short: "Export unit documents as fluffy stubs",
	Long: `Export C declarations from unit documents as fluffy binding stubs.

Each unit document (.yaml, .toml or .json) describes one translation unit.
Output starts with a header line, then struct/union/enum typedefs, then
variables, then functions. Function bodies, initializers and unsupported
constructs are dropped with a warning on stderr.

With one unit and no output directory the stubs go to stdout. With an
output directory each unit is written to <dir>/<name>.<extension> and
several units are exported in parallel.

Examples:
  stubgen export point.yaml                    # Stubs to stdout
  stubgen export -o stubs/ units/*.yaml        # One file per unit
  stubgen export --on-error skip libc.json     # Drop declarations that fail
  stubgen export -o stubs/ --watch unit.toml   # Re-export on every save`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportFlags.register(ExportCmd, true)
	ExportCmd.Flags().BoolVar(&exportWatch, "watch", false, "Re-export when a unit document changes")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	s, err := exportFlags.resolve(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithRunID(ctx, uuid.New().String())

	ex := &exporter{settings: s, stdout: cmd.OutOrStdout(), stderr: cmd.ErrOrStderr()}
	if _, err := ex.run(ctx, args); err != nil {
		if !exportWatch {
			return err
		}
		pterm.Error.WithWriter(ex.stderr).Println(err.Error())
	}

	if !exportWatch {
		return nil
	}
	return ex.watch(ctx, args)
}

// exporter runs exports for the CLI: rendering through a typegen.Batch,
// writing to stdout or files and reporting diagnostics
type exporter struct {
	settings settings
	stdout   io.Writer
	stderr   io.Writer
}

func (ex *exporter) run(ctx context.Context, inputs []string) ([]*typegen.Result, error) {
	log := logger.LoggerFromContext(ctx)
	log.Infow("Export started",
		logger.FieldCount, len(inputs),
		logger.FieldWorkers, ex.settings.Workers)

	batch := &typegen.Batch{
		Generator: fluffy.NewGenerator(ex.settings.Options),
		Load:      irload.Load,
		Workers:   ex.settings.Workers,
	}
	if ex.settings.OutputDir != "" {
		var (
			mu      sync.Mutex
			claimed = make(map[string]string)
		)
		batch.Sink = func(input string, result *typegen.Result) error {
			path := ex.outputPath(result)
			mu.Lock()
			other, taken := claimed[path]
			if !taken {
				claimed[path] = input
			}
			mu.Unlock()
			if taken {
				return errors.WithHint(
					errors.NewInvalidRequestError("%s and %s both export to %s", other, input, path),
					"give one of the units a different name")
			}
			return ex.writeFile(ctx, result)
		}
	}

	results, err := batch.Run(ctx, inputs)
	if err != nil {
		return nil, err
	}

	for i, result := range results {
		printDiagnostics(ex.stderr, inputs[i], result)

		if ex.settings.OutputDir == "" {
			if _, err := io.WriteString(ex.stdout, result.Output); err != nil {
				return nil, errors.Wrap(err, "failed to write stubs")
			}
			continue
		}

		fmt.Fprintf(ex.stdout, "%s %s (%d declarations", pterm.Green("✓"), ex.outputPath(result), result.Total())
		if result.Skipped > 0 {
			fmt.Fprintf(ex.stdout, ", %d skipped", result.Skipped)
		}
		fmt.Fprintln(ex.stdout, ")")
	}
	return results, nil
}

func (ex *exporter) outputPath(result *typegen.Result) string {
	return filepath.Join(ex.settings.OutputDir, result.Unit+"."+ex.settings.Extension)
}

// writeFile writes one unit's stubs and runs the post-format command on it
func (ex *exporter) writeFile(ctx context.Context, result *typegen.Result) error {
	if err := os.MkdirAll(ex.settings.OutputDir, config.DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	path := ex.outputPath(result)
	if err := os.WriteFile(path, []byte(result.Output), config.DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	if ex.settings.FormatCommand != "" {
		if err := runFormatter(ctx, ex.settings.FormatCommand, path); err != nil {
			return err
		}
	}
	return nil
}

// runFormatter runs command with path appended as its last argument
func runFormatter(ctx context.Context, command, path string) error {
	args, err := shellquote.Split(command)
	if err != nil {
		return errors.Wrapf(err, "invalid format command %q", command)
	}
	if len(args) == 0 {
		return nil
	}

	c := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	out, err := c.CombinedOutput()
	if err != nil {
		return errors.WithDetail(
			errors.Wrapf(err, "format command %s failed on %s", args[0], path),
			string(out))
	}

	logger.LoggerFromContext(ctx).Debugw("Formatted output",
		logger.FieldFile, path,
		"command", args[0])
	return nil
}

// watch re-exports changed units until ctx is done
func (ex *exporter) watch(ctx context.Context, inputs []string) error {
	w, err := config.NewWatcher(inputs...)
	if err != nil {
		return err
	}
	defer w.Stop()

	w.OnChange(func(paths []string) error {
		if _, err := ex.run(ctx, paths); err != nil {
			pterm.Error.WithWriter(ex.stderr).Println(err.Error())
			return err
		}
		return nil
	})
	w.Start(ctx)

	fmt.Fprintf(ex.stderr, "Watching %d unit document(s), press Ctrl-C to stop\n", len(inputs))
	<-ctx.Done()
	return nil
}
