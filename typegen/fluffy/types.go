package fluffy

import (
	"strings"

	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/errors"
)

// AtomicNames maps C scalar kinds to fluffy type names.
// long narrows to int and long double collapses to double: fluffy has fewer widths.
var AtomicNames = map[cdecl.AtomicKind]string{
	cdecl.AtomicVoid:       "void",
	cdecl.AtomicChar:       "byte",
	cdecl.AtomicSChar:      "byte",
	cdecl.AtomicUChar:      "unsigned byte",
	cdecl.AtomicShort:      "short",
	cdecl.AtomicUShort:     "unsigned short",
	cdecl.AtomicInt:        "int",
	cdecl.AtomicUInt:       "unsigned int",
	cdecl.AtomicLong:       "int",
	cdecl.AtomicULong:      "unsigned int",
	cdecl.AtomicLongLong:   "long",
	cdecl.AtomicULongLong:  "unsigned long",
	cdecl.AtomicFloat:      "float",
	cdecl.AtomicDouble:     "double",
	cdecl.AtomicLongDouble: "double",
	cdecl.AtomicBool:       "bool",
}

// placeholderType stands in for an aggregate that has no name to refer to
const placeholderType = "byte"

// renderType returns the fluffy spelling of t
func (c *renderContext) renderType(t cdecl.Type) (string, error) {
	var sb strings.Builder
	if err := c.writeType(&sb, t); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (c *renderContext) writeType(sb *strings.Builder, t cdecl.Type) error {
	switch t := t.(type) {
	case *cdecl.AtomicType:
		name, ok := AtomicNames[t.Atomic]
		if !ok {
			return errors.Wrapf(errors.ErrUnsupportedAtomic, "atomic kind %s", t.Atomic)
		}
		sb.WriteString(name)
		return nil

	case *cdecl.PointerType:
		if t.Pointee == nil {
			return errors.Wrap(errors.ErrInvalidType, "pointer without pointee")
		}
		if err := c.writeType(sb, t.Pointee); err != nil {
			return err
		}
		sb.WriteByte('*')
		return nil

	case *cdecl.CompoundType:
		c.writeNamed(sb, t, t.Compound.Keyword(), t.Tag())
		return nil

	case *cdecl.EnumType:
		c.writeNamed(sb, t, "enum", t.Tag())
		return nil

	case *cdecl.FunctionType:
		return c.writeFunctionType(sb, t)

	case *cdecl.InvalidType:
		return errors.WithHint(errors.ErrInvalidType,
			"the front end left an unresolved type in the unit")

	case nil:
		return errors.Wrap(errors.ErrInvalidType, "missing type")

	default:
		return errors.Wrapf(errors.ErrInvalidType, "unknown type node %T", t)
	}
}

// writeNamed resolves a struct, union or enum to a name: typedef alias
// first, then tag, then a flagged placeholder.
func (c *renderContext) writeNamed(sb *strings.Builder, t cdecl.Type, keyword, tag string) {
	if alias := c.findAlias(t); alias != nil {
		sb.WriteString(alias.Name())
		return
	}
	if tag != "" {
		sb.WriteString(tag)
		return
	}

	sb.WriteString("/* anonymous ")
	sb.WriteString(keyword)
	sb.WriteString(" */")
	sb.WriteString(placeholderType)
	c.warn("anonymous " + keyword + " has no typedef alias, rendered as " + placeholderType)
}

// writeFunctionType renders a function used as a value type. The result is
// always shown, void included.
func (c *renderContext) writeFunctionType(sb *strings.Builder, t *cdecl.FunctionType) error {
	sb.WriteString("(func(")
	for i, p := range t.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("_ : ")
		if err := c.writeType(sb, p); err != nil {
			return err
		}
	}
	if t.Variadic {
		if len(t.Params) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
	}
	sb.WriteString(") : ")
	if err := c.writeType(sb, t.Result); err != nil {
		return err
	}
	sb.WriteString(")")
	return nil
}
