package fluffy

import (
	"strconv"
	"strings"

	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/errors"
)

// renderExpression renders an enum initializer. Only constants, negation
// and logical not have a fluffy spelling.
func renderExpression(e cdecl.Expression) (string, error) {
	var sb strings.Builder
	if err := writeExpression(&sb, e); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeExpression(sb *strings.Builder, e cdecl.Expression) error {
	switch e := e.(type) {
	case *cdecl.IntConstant:
		sb.WriteString(strconv.FormatInt(e.Value, 10))
		return nil

	case *cdecl.FloatConstant:
		// six fixed decimals, as C's %f
		sb.WriteString(strconv.FormatFloat(e.Value, 'f', 6, 64))
		return nil

	case *cdecl.UnaryExpression:
		switch e.Op {
		case cdecl.UnaryNegate:
			sb.WriteByte('-')
		case cdecl.UnaryNot:
			sb.WriteByte('!')
		default:
			return errors.Wrapf(errors.ErrUnsupportedExpression, "unary operator %s", e.Op)
		}
		return writeExpression(sb, e.Operand)

	case *cdecl.BinaryExpression:
		return errors.Wrapf(errors.ErrUnsupportedExpression, "binary operator %s", e.Op)

	case *cdecl.Reference:
		return errors.Wrapf(errors.ErrUnsupportedExpression, "reference to %s", e.Symbol)

	case nil:
		return errors.Wrap(errors.ErrUnsupportedExpression, "missing operand")

	default:
		return errors.Wrapf(errors.ErrUnsupportedExpression, "expression %T", e)
	}
}
