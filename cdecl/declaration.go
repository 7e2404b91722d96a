package cdecl

import (
	"fmt"
	"strings"

	"github.com/teranos/stubgen/errors"
)

// StorageClass is the storage-class tag of a declaration
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageExtern
	StorageStatic
	StorageAuto
	StorageRegister
	StorageTypedef
	StorageEnumEntry
)

var storageNames = []string{
	StorageNone:      "none",
	StorageExtern:    "extern",
	StorageStatic:    "static",
	StorageAuto:      "auto",
	StorageRegister:  "register",
	StorageTypedef:   "typedef",
	StorageEnumEntry: "enum_entry",
}

func (s StorageClass) String() string {
	if s >= 0 && int(s) < len(storageNames) {
		return storageNames[s]
	}
	return "unknown"
}

// ParseStorageClass parses a storage class name; "" means none
func ParseStorageClass(s string) (StorageClass, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StorageNone, nil
	}
	for i, n := range storageNames {
		if n == s {
			return StorageClass(i), nil
		}
	}
	return StorageNone, errors.Newf("unknown storage class %q", s)
}

// Namespace is the C name space a declaration lives in
type Namespace int

const (
	NamespaceNormal Namespace = iota
	NamespaceStruct
	NamespaceUnion
	NamespaceEnum
	NamespaceLabel
)

var namespaceNames = []string{
	NamespaceNormal: "normal",
	NamespaceStruct: "struct",
	NamespaceUnion:  "union",
	NamespaceEnum:   "enum",
	NamespaceLabel:  "label",
}

func (n Namespace) String() string {
	if n >= 0 && int(n) < len(namespaceNames) {
		return namespaceNames[n]
	}
	return "unknown"
}

// ParseNamespace parses a namespace name; "" means normal
func ParseNamespace(s string) (Namespace, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return NamespaceNormal, nil
	}
	for i, n := range namespaceNames {
		if n == s {
			return Namespace(i), nil
		}
	}
	return NamespaceNormal, errors.Newf("unknown namespace %q", s)
}

// Position is a source location
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	if p.File == "" && p.Line == 0 {
		return ""
	}
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Body marks an attached function definition. Its contents are never exported.
type Body struct {
	Statements int
}

// Declaration is one named entity of the unit.
//
// Context holds function parameters for function declarations, and the
// ordered members or entries for the defining declaration of a struct,
// union or enum.
type Declaration struct {
	Symbol    *Symbol
	Type      Type
	Storage   StorageClass
	Namespace Namespace
	Init      Expression
	Body      *Body
	Context   []*Declaration
	Pos       Position
}

// Name returns the declared name, or "" when anonymous
func (d *Declaration) Name() string {
	if d == nil {
		return ""
	}
	return d.Symbol.String()
}

// HasBody reports whether a function definition is attached
func (d *Declaration) HasBody() bool {
	return d != nil && d.Body != nil
}

// TranslationUnit is the ordered top-level declaration sequence of one source file
type TranslationUnit struct {
	Name         string
	Declarations []*Declaration
	Symbols      *SymbolTable
}

// Lookup returns the first top-level declaration named name in namespace ns
func (u *TranslationUnit) Lookup(name string, ns Namespace) *Declaration {
	for _, d := range u.Declarations {
		if d.Namespace == ns && d.Name() == name {
			return d
		}
	}
	return nil
}
