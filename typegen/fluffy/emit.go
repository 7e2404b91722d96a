package fluffy

import (
	"io"
	"strings"

	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
	"github.com/teranos/stubgen/typegen"
)

// passOrder is the fixed order of output regions
var passOrder = []Region{RegionType, RegionVariable, RegionFunction}

// Render exports unit as fluffy text.
//
// The output is the header line followed by three passes over the top-level
// declarations: struct/union/enum typedefs, then variables, then functions.
// Each declaration is rendered into its own buffer, so a failing declaration
// never leaves partial text behind. With OnErrorAbort the first failure is
// returned and no result is produced; with OnErrorSkip the declaration is
// dropped and recorded as an error diagnostic.
func Render(unit *cdecl.TranslationUnit, opts Options) (*typegen.Result, error) {
	if unit == nil {
		return nil, errors.AssertionFailedf("nil translation unit")
	}

	log := logger.ComponentLogger("fluffy").With(logger.FieldUnit, unit.Name)
	c := newRenderContext(unit, opts)

	result := &typegen.Result{
		Unit:     unit.Name,
		Language: Language,
		Emitted:  make(map[string]int),
	}

	var out strings.Builder
	out.WriteString(opts.header())
	out.WriteByte('\n')

	for _, pass := range passOrder {
		for _, d := range unit.Declarations {
			region := Classify(d)
			if !inPass(pass, region, opts) {
				continue
			}

			var sb strings.Builder
			c.begin(d)
			if err := c.writeDeclaration(&sb, d, region); err != nil {
				err = errors.Wrapf(err, "%s %q", region, d.Name())
				if opts.OnError == OnErrorAbort {
					return nil, errors.WithHint(err, "use the skip policy to drop failing declarations and keep the rest")
				}

				c.discard()
				c.record(typegen.Diagnostic{
					Severity: typegen.SeverityError,
					Symbol:   d.Name(),
					Message:  err.Error(),
					Pos:      d.Pos,
				})
				result.Skipped++
				log.Debugw("Skipped declaration", logger.FieldSymbol, d.Name(), logger.FieldError, err)
				continue
			}
			c.commit()

			out.WriteString(sb.String())
			result.Emitted[region.String()]++
			log.Debugw("Rendered declaration", logger.FieldSymbol, d.Name(), logger.FieldRegion, region.String())
		}
	}

	for _, d := range c.diagnostics {
		log.Debugw(d.Message, logger.FieldSymbol, d.Symbol, logger.FieldSeverity, d.Severity.String())
	}

	result.Output = out.String()
	result.Diagnostics = c.diagnostics
	return result, nil
}

// Emit renders unit and writes the text to w. Nothing is written when
// rendering fails.
func Emit(unit *cdecl.TranslationUnit, w io.Writer, opts Options) (*typegen.Result, error) {
	result, err := Render(unit, opts)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, result.Output); err != nil {
		return nil, errors.Wrap(err, "failed to write output")
	}
	return result, nil
}

func inPass(pass, region Region, opts Options) bool {
	if region == RegionAlias {
		return pass == RegionType && opts.TypedefAliases
	}
	return region == pass
}

func (c *renderContext) writeDeclaration(sb *strings.Builder, d *cdecl.Declaration, region Region) error {
	switch region {
	case RegionType:
		switch t := d.Type.(type) {
		case *cdecl.CompoundType:
			return c.writeCompound(sb, d.Name(), t)
		case *cdecl.EnumType:
			return c.writeEnum(sb, d.Name(), t)
		}
		return errors.Wrapf(errors.ErrInvalidType, "typedef of %s in type region", cdecl.KindOf(d.Type))
	case RegionAlias:
		return c.writeTypedefAlias(sb, d.Name(), d.Type)
	case RegionVariable:
		return c.writeVariable(sb, d)
	case RegionFunction:
		return c.writeFunction(sb, d)
	}
	return errors.AssertionFailedf("declaration %q has no output region", d.Name())
}
