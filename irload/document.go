// Package irload reads serialized translation units into cdecl.
//
// A unit document lists type nodes by id and declarations that reference
// them, so that type identity survives serialization: every reference to the
// same id resolves to the same node. Documents may be written in YAML, TOML
// or JSON; the field names are the same in all three.
//
//	format_version: "1.0.0"
//	name: point
//	types:
//	  - {id: int, kind: atomic, atomic: int}
//	  - id: point
//	    kind: struct
//	    members: [{name: x, type: int}, {name: y, type: int}]
//	declarations:
//	  - {name: Point, type: point, storage: typedef}
package irload

// SupportedVersions is the format_version constraint this loader accepts
const SupportedVersions = "^1"

// Document is the serialized form of one translation unit
type Document struct {
	FormatVersion string    `json:"format_version" yaml:"format_version" toml:"format_version"`
	Name          string    `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Types         []TypeDoc `json:"types" yaml:"types" toml:"types"`
	Declarations  []DeclDoc `json:"declarations" yaml:"declarations" toml:"declarations"`
}

// TypeDoc is one type node. Kind selects which of the optional fields apply:
//
//	atomic    atomic
//	pointer   pointee
//	struct    tag, members
//	union     tag, members
//	enum      tag, entries
//	function  params, variadic, result
//	invalid   (none)
type TypeDoc struct {
	ID       string     `json:"id" yaml:"id" toml:"id"`
	Kind     string     `json:"kind" yaml:"kind" toml:"kind"`
	Atomic   string     `json:"atomic,omitempty" yaml:"atomic,omitempty" toml:"atomic,omitempty"`
	Pointee  string     `json:"pointee,omitempty" yaml:"pointee,omitempty" toml:"pointee,omitempty"`
	Tag      string     `json:"tag,omitempty" yaml:"tag,omitempty" toml:"tag,omitempty"`
	Members  []FieldDoc `json:"members,omitempty" yaml:"members,omitempty" toml:"members,omitempty"`
	Entries  []EntryDoc `json:"entries,omitempty" yaml:"entries,omitempty" toml:"entries,omitempty"`
	Params   []string   `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Variadic bool       `json:"variadic,omitempty" yaml:"variadic,omitempty" toml:"variadic,omitempty"`
	Result   string     `json:"result,omitempty" yaml:"result,omitempty" toml:"result,omitempty"`
}

// FieldDoc is a struct member or a named function parameter
type FieldDoc struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Type string `json:"type" yaml:"type" toml:"type"`
}

// EntryDoc is one enumerator
type EntryDoc struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Value *ExprDoc `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

// ExprDoc is a constant expression. Exactly one form must be set:
// int, float, neg, not, op (with left and right) or ref.
type ExprDoc struct {
	Int   *int64   `json:"int,omitempty" yaml:"int,omitempty" toml:"int,omitempty"`
	Float *float64 `json:"float,omitempty" yaml:"float,omitempty" toml:"float,omitempty"`
	Neg   *ExprDoc `json:"neg,omitempty" yaml:"neg,omitempty" toml:"neg,omitempty"`
	Not   *ExprDoc `json:"not,omitempty" yaml:"not,omitempty" toml:"not,omitempty"`
	Op    string   `json:"op,omitempty" yaml:"op,omitempty" toml:"op,omitempty"`
	Left  *ExprDoc `json:"left,omitempty" yaml:"left,omitempty" toml:"left,omitempty"`
	Right *ExprDoc `json:"right,omitempty" yaml:"right,omitempty" toml:"right,omitempty"`
	Ref   string   `json:"ref,omitempty" yaml:"ref,omitempty" toml:"ref,omitempty"`
}

// DeclDoc is one top-level declaration
type DeclDoc struct {
	Name      string     `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Type      string     `json:"type" yaml:"type" toml:"type"`
	Storage   string     `json:"storage,omitempty" yaml:"storage,omitempty" toml:"storage,omitempty"`
	Namespace string     `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	Params    []FieldDoc `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Body      bool       `json:"body,omitempty" yaml:"body,omitempty" toml:"body,omitempty"`
	Line      int        `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty"`
}
