package fluffy

import (
	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/typegen"
)

// renderContext carries everything one export needs. A fresh context is
// created per unit, so concurrent exports share nothing.
type renderContext struct {
	unit *cdecl.TranslationUnit
	opts Options

	// aliases memoizes findAlias per type identity, including misses
	aliases map[cdecl.Type]*cdecl.Declaration

	// current is the top-level declaration being rendered, for diagnostics
	current *cdecl.Declaration

	// pending holds diagnostics raised while rendering current; they are
	// committed only if the declaration renders successfully
	pending     []typegen.Diagnostic
	diagnostics []typegen.Diagnostic
}

func newRenderContext(unit *cdecl.TranslationUnit, opts Options) *renderContext {
	return &renderContext{
		unit:    unit,
		opts:    opts,
		aliases: make(map[cdecl.Type]*cdecl.Declaration),
	}
}

// warn records a warning against the declaration being rendered
func (c *renderContext) warn(message string) {
	c.pending = append(c.pending, typegen.Diagnostic{
		Severity: typegen.SeverityWarning,
		Symbol:   c.current.Name(),
		Message:  message,
		Pos:      c.currentPos(),
	})
}

func (c *renderContext) currentPos() cdecl.Position {
	if c.current == nil {
		return cdecl.Position{}
	}
	return c.current.Pos
}

// begin starts rendering d
func (c *renderContext) begin(d *cdecl.Declaration) {
	c.current = d
	c.pending = c.pending[:0]
}

// commit keeps the diagnostics raised for the current declaration
func (c *renderContext) commit() {
	c.diagnostics = append(c.diagnostics, c.pending...)
	c.pending = c.pending[:0]
}

// discard drops them, for a declaration that failed and was skipped
func (c *renderContext) discard() {
	c.pending = c.pending[:0]
}

func (c *renderContext) record(d typegen.Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}
