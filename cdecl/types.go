package cdecl

import (
	"strings"

	"github.com/teranos/stubgen/errors"
)

// TypeKind discriminates the Type variants
type TypeKind int

const (
	KindInvalid TypeKind = iota
	KindAtomic
	KindPointer
	KindStruct
	KindUnion
	KindEnum
	KindFunction
)

var typeKindNames = map[TypeKind]string{
	KindInvalid:  "invalid",
	KindAtomic:   "atomic",
	KindPointer:  "pointer",
	KindStruct:   "struct",
	KindUnion:    "union",
	KindEnum:     "enum",
	KindFunction: "function",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Type is one node of the type graph. Implementations are always used
// through pointers so that interface equality is node identity.
type Type interface {
	Kind() TypeKind
	isType()
}

// AtomicKind enumerates the C scalar types
type AtomicKind int

const (
	AtomicInvalid AtomicKind = iota
	AtomicVoid
	AtomicChar
	AtomicSChar
	AtomicUChar
	AtomicShort
	AtomicUShort
	AtomicInt
	AtomicUInt
	AtomicLong
	AtomicULong
	AtomicLongLong
	AtomicULongLong
	AtomicFloat
	AtomicDouble
	AtomicLongDouble
	AtomicBool
)

var atomicKindNames = []string{
	AtomicInvalid:    "invalid",
	AtomicVoid:       "void",
	AtomicChar:       "char",
	AtomicSChar:      "schar",
	AtomicUChar:      "uchar",
	AtomicShort:      "short",
	AtomicUShort:     "ushort",
	AtomicInt:        "int",
	AtomicUInt:       "uint",
	AtomicLong:       "long",
	AtomicULong:      "ulong",
	AtomicLongLong:   "longlong",
	AtomicULongLong:  "ulonglong",
	AtomicFloat:      "float",
	AtomicDouble:     "double",
	AtomicLongDouble: "longdouble",
	AtomicBool:       "bool",
}

// C spellings accepted by ParseAtomicKind in addition to the short names
var atomicKindAliases = map[string]AtomicKind{
	"signed char":        AtomicSChar,
	"unsigned char":      AtomicUChar,
	"unsigned short":     AtomicUShort,
	"unsigned int":       AtomicUInt,
	"unsigned":           AtomicUInt,
	"unsigned long":      AtomicULong,
	"long long":          AtomicLongLong,
	"unsigned long long": AtomicULongLong,
	"long double":        AtomicLongDouble,
	"_Bool":              AtomicBool,
}

func (k AtomicKind) String() string {
	if k >= 0 && int(k) < len(atomicKindNames) {
		return atomicKindNames[k]
	}
	return "unknown"
}

// ParseAtomicKind accepts the short names ("ulonglong") and the usual C
// spellings ("unsigned long long").
func ParseAtomicKind(s string) (AtomicKind, error) {
	name := strings.Join(strings.Fields(s), " ")
	if k, ok := atomicKindAliases[name]; ok {
		return k, nil
	}
	for i, n := range atomicKindNames {
		if i != int(AtomicInvalid) && n == name {
			return AtomicKind(i), nil
		}
	}
	return AtomicInvalid, errors.Newf("unknown atomic type %q", s)
}

// AtomicType is a scalar type
type AtomicType struct {
	Atomic AtomicKind
}

// PointerType points to another type
type PointerType struct {
	Pointee Type
}

// CompoundKind selects struct or union
type CompoundKind int

const (
	CompoundStruct CompoundKind = iota
	CompoundUnion
)

// Keyword returns "struct" or "union"
func (k CompoundKind) Keyword() string {
	if k == CompoundUnion {
		return "union"
	}
	return "struct"
}

// CompoundType is a struct or union. Decl is the defining declaration;
// its Context holds the members in declared order.
type CompoundType struct {
	Compound CompoundKind
	Decl     *Declaration
}

// EnumType is an enumeration. Decl is the defining declaration;
// its Context holds the entries in declared order.
type EnumType struct {
	Decl *Declaration
}

// FunctionType is a function signature. Parameter names live on the
// declaration, not on the type.
type FunctionType struct {
	Params   []Type
	Variadic bool
	Result   Type
}

// InvalidType marks a node the front end could not resolve
type InvalidType struct{}

func (*AtomicType) Kind() TypeKind   { return KindAtomic }
func (*PointerType) Kind() TypeKind  { return KindPointer }
func (*EnumType) Kind() TypeKind     { return KindEnum }
func (*FunctionType) Kind() TypeKind { return KindFunction }
func (*InvalidType) Kind() TypeKind  { return KindInvalid }

func (t *CompoundType) Kind() TypeKind {
	if t.Compound == CompoundUnion {
		return KindUnion
	}
	return KindStruct
}

func (*AtomicType) isType()   {}
func (*PointerType) isType()  {}
func (*CompoundType) isType() {}
func (*EnumType) isType()     {}
func (*FunctionType) isType() {}
func (*InvalidType) isType()  {}

// Tag returns the struct/union tag name, or "" when anonymous
func (t *CompoundType) Tag() string {
	if t.Decl == nil {
		return ""
	}
	return t.Decl.Name()
}

// Members returns the member declarations in declared order
func (t *CompoundType) Members() []*Declaration {
	if t.Decl == nil {
		return nil
	}
	return t.Decl.Context
}

// Tag returns the enum tag name, or "" when anonymous
func (t *EnumType) Tag() string {
	if t.Decl == nil {
		return ""
	}
	return t.Decl.Name()
}

// Entries returns the enum entries in declared order
func (t *EnumType) Entries() []*Declaration {
	if t.Decl == nil {
		return nil
	}
	return t.Decl.Context
}

// KindOf returns t's kind, treating nil as invalid
func KindOf(t Type) TypeKind {
	if t == nil {
		return KindInvalid
	}
	return t.Kind()
}

// IsVoid reports whether t is exactly the atomic void type
func IsVoid(t Type) bool {
	a, ok := t.(*AtomicType)
	return ok && a != nil && a.Atomic == AtomicVoid
}

// IsFunction reports whether t is a function type
func IsFunction(t Type) bool {
	return KindOf(t) == KindFunction
}

// IsStructured reports whether t is a struct, union or enum
func IsStructured(t Type) bool {
	switch KindOf(t) {
	case KindStruct, KindUnion, KindEnum:
		return true
	}
	return false
}
