package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/irload"
	"github.com/teranos/stubgen/typegen/fluffy"
)

var inspectDump bool

// InspectCmd lists the declarations of a unit document
var InspectCmd = &cobra.Command{
	Use:   "inspect <unit>",
	Short: "List the declarations of a unit document",
	Long: `Load a unit document and list its top-level declarations with the
region each one is exported to.

Examples:
  stubgen inspect point.yaml          # Declaration table
  stubgen inspect --dump point.yaml   # Full resolved unit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		unit, err := irload.Load(ctx, args[0])
		if err != nil {
			return err
		}

		if inspectDump {
			return dumpUnit(cmd.OutOrStdout(), unit)
		}
		return renderDeclarations(cmd.OutOrStdout(), unit)
	},
}

func init() {
	InspectCmd.Flags().BoolVar(&inspectDump, "dump", false, "Dump the resolved unit instead of the table")
}

func renderDeclarations(w io.Writer, unit *cdecl.TranslationUnit) error {
	if len(unit.Declarations) == 0 {
		_, _ = fmt.Fprintln(w, "(0 declarations)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"#", "Name", "Storage", "Namespace", "Region", "Type"})

	for i, d := range unit.Declarations {
		name := d.Name()
		if name == "" {
			name = "(anonymous)"
		}
		typ, err := fluffy.TypeString(unit, d.Type)
		if err != nil {
			typ = "error: " + err.Error()
		}
		t.AppendRow(table.Row{i + 1, name, d.Storage.String(), d.Namespace.String(), fluffy.Classify(d).String(), typ})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d declarations)\n", len(unit.Declarations))
	return nil
}

func dumpUnit(w io.Writer, unit *cdecl.TranslationUnit) error {
	opts := litter.Options{
		HidePrivateFields: true,
		HideZeroValues:    true,
		StripPackageNames: true,
	}
	_, err := io.WriteString(w, opts.Sdump(unit)+"\n")
	return err
}
