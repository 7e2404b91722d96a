package fluffy

import (
	"strings"

	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/errors"
)

// writeCompound emits a struct or union block:
//
//	struct Name:
//		member : type
//	<blank>
func (c *renderContext) writeCompound(sb *strings.Builder, name string, t *cdecl.CompoundType) error {
	sb.WriteString(t.Compound.Keyword())
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(":\n")

	for _, member := range t.Members() {
		memberName := member.Name()
		if memberName == "" {
			memberName = "_"
		}
		rendered, err := c.renderType(member.Type)
		if err != nil {
			return errors.Wrapf(err, "member %s", memberName)
		}
		sb.WriteByte('\t')
		sb.WriteString(memberName)
		sb.WriteString(" : ")
		sb.WriteString(rendered)
		sb.WriteByte('\n')
	}

	sb.WriteByte('\n')
	return nil
}

// writeEnum emits an enum block followed by its integer alias. Fluffy has no
// enumerated type, so every enum is flattened to int.
//
//	enum Name:
//		A
//		B <- 5
//	typealias Name <- int
//	<blank>
func (c *renderContext) writeEnum(sb *strings.Builder, name string, t *cdecl.EnumType) error {
	sb.WriteString("enum ")
	sb.WriteString(name)
	sb.WriteString(":\n")

	for _, entry := range t.Entries() {
		if entry.Storage != cdecl.StorageEnumEntry {
			break
		}
		sb.WriteByte('\t')
		sb.WriteString(entry.Name())
		if entry.Init != nil {
			value, err := renderExpression(entry.Init)
			if err != nil {
				return errors.Wrapf(err, "enum entry %s", entry.Name())
			}
			sb.WriteString(" <- ")
			sb.WriteString(value)
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("typealias ")
	sb.WriteString(name)
	sb.WriteString(" <- int\n\n")
	return nil
}

// writeTypedefAlias emits "typealias Name <- type" for a typedef of an
// atomic, pointer or function type.
func (c *renderContext) writeTypedefAlias(sb *strings.Builder, name string, t cdecl.Type) error {
	rendered, err := c.renderType(t)
	if err != nil {
		return err
	}
	sb.WriteString("typealias ")
	sb.WriteString(name)
	sb.WriteString(" <- ")
	sb.WriteString(rendered)
	sb.WriteString("\n\n")
	return nil
}
