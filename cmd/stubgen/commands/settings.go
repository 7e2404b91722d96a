package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/config"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/typegen"
	"github.com/teranos/stubgen/typegen/fluffy"
)

// settings is the effective configuration of one export or check run
type settings struct {
	Options       fluffy.Options
	OutputDir     string
	Extension     string
	FormatCommand string
	Workers       int
}

// renderFlags are the command-line overrides for the [export] and [batch]
// config sections. A flag only wins when it was given explicitly.
type renderFlags struct {
	output          string
	typedefAliases  bool
	anonymousParams bool
	onError         string
	workers         int
}

func (f *renderFlags) register(cmd *cobra.Command, withOutput bool) {
	if withOutput {
		cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output directory (default: stdout)")
	}
	cmd.Flags().BoolVar(&f.typedefAliases, "typedef-aliases", false, "Emit typealias lines for atomic, pointer and function typedefs")
	cmd.Flags().BoolVar(&f.anonymousParams, "anonymous-params", false, "Render every parameter name as _")
	cmd.Flags().StringVar(&f.onError, "on-error", "", "What to do with a declaration that cannot be rendered: abort, skip")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Units exported in parallel")
}

// resolve layers the flags that were set over cfg
func (f *renderFlags) resolve(cmd *cobra.Command, cfg *config.Config) (settings, error) {
	if err := cfg.Validate(); err != nil {
		return settings{}, errors.Wrap(err, "invalid configuration")
	}

	s := settings{
		Options: fluffy.Options{
			Header:          cfg.Export.Header,
			TypedefAliases:  cfg.Export.TypedefAliases,
			AnonymousParams: cfg.Export.AnonymousParams,
		},
		OutputDir:     cfg.Export.OutputDir,
		Extension:     cfg.GetExtension(),
		FormatCommand: cfg.Format.Command,
		Workers:       cfg.GetWorkers(),
	}

	flags := cmd.Flags()
	onError := cfg.Export.OnError
	if flags.Changed("on-error") {
		onError = f.onError
	}
	policy, err := fluffy.ParseOnErrorPolicy(onError)
	if err != nil {
		return settings{}, err
	}
	s.Options.OnError = policy

	if flags.Changed("output") {
		s.OutputDir = f.output
	}
	if flags.Changed("typedef-aliases") {
		s.Options.TypedefAliases = f.typedefAliases
	}
	if flags.Changed("anonymous-params") {
		s.Options.AnonymousParams = f.anonymousParams
	}
	if flags.Changed("workers") && f.workers > 0 {
		s.Workers = f.workers
	}
	return s, nil
}

// printDiagnostics writes a unit's warnings and skipped declarations to w
func printDiagnostics(w io.Writer, input string, result *typegen.Result) {
	for _, d := range result.Diagnostics {
		line := d.String()
		if d.Severity == typegen.SeverityError {
			line = pterm.Red(line)
		} else {
			line = pterm.Yellow(line)
		}
		fmt.Fprintf(w, "%s: %s\n", pterm.Gray(input), line)
	}
}
