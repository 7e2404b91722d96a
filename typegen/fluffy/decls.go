package fluffy

import (
	"strings"

	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/errors"
)

// writeVariable emits "var name : type". Initializers are not exported.
func (c *renderContext) writeVariable(sb *strings.Builder, d *cdecl.Declaration) error {
	rendered, err := c.renderType(d.Type)
	if err != nil {
		return err
	}
	sb.WriteString("var ")
	sb.WriteString(d.Name())
	sb.WriteString(" : ")
	sb.WriteString(rendered)
	sb.WriteByte('\n')
	return nil
}

// writeFunction emits a declaration-only stub:
//
//	func extern name(a : int, _ : byte*, ...) : int
//
// The result is omitted when it is exactly void. Attached bodies are
// reported and dropped.
func (c *renderContext) writeFunction(sb *strings.Builder, d *cdecl.Declaration) error {
	ft, ok := d.Type.(*cdecl.FunctionType)
	if !ok || ft == nil {
		return errors.Wrap(errors.ErrInvalidType, "function declaration without function type")
	}

	if d.HasBody() {
		c.warn("can't convert function bodies")
	}

	sb.WriteString("func extern ")
	sb.WriteString(d.Name())
	sb.WriteByte('(')

	params, err := c.renderParams(d, ft)
	if err != nil {
		return err
	}
	if ft.Variadic {
		params = append(params, "...")
	}
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteByte(')')

	if ft.Result == nil {
		return errors.Wrap(errors.ErrInvalidType, "function without result type")
	}
	if !cdecl.IsVoid(ft.Result) {
		result, err := c.renderType(ft.Result)
		if err != nil {
			return errors.Wrap(err, "result")
		}
		sb.WriteString(" : ")
		sb.WriteString(result)
	}

	sb.WriteByte('\n')
	return nil
}

// renderParams renders "name : type" per parameter. Parameters come from the
// declaration's context; a declaration without one falls back to the
// unnamed parameter types of its function type.
func (c *renderContext) renderParams(d *cdecl.Declaration, ft *cdecl.FunctionType) ([]string, error) {
	var params []string

	if len(d.Context) == 0 {
		for i, p := range ft.Params {
			rendered, err := c.renderType(p)
			if err != nil {
				return nil, errors.Wrapf(err, "parameter %d", i+1)
			}
			params = append(params, "_ : "+rendered)
		}
		return params, nil
	}

	for i, p := range d.Context {
		name := p.Name()
		if name == "" || c.opts.AnonymousParams {
			name = "_"
		}
		rendered, err := c.renderType(p.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %d", i+1)
		}
		params = append(params, name+" : "+rendered)
	}
	return params, nil
}
