package cdecl

// Builder assembles a TranslationUnit the way a front end would: every
// constructor returns a fresh node, and defining declarations, enum entries,
// typedefs, variables and functions are appended to the unit in call order.
//
// Example:
//
//	b := cdecl.NewBuilder("point.h")
//	point := b.Struct("", b.Member("x", b.Atomic(cdecl.AtomicInt)))
//	b.Typedef("Point", point)
//	b.Func("origin", b.Pointer(point), false)
//	unit := b.Unit()
type Builder struct {
	unit *TranslationUnit
}

// NewBuilder starts an empty unit
func NewBuilder(name string) *Builder {
	return &Builder{unit: &TranslationUnit{
		Name:    name,
		Symbols: NewSymbolTable(),
	}}
}

// Unit returns the unit built so far
func (b *Builder) Unit() *TranslationUnit {
	return b.unit
}

// Symbol interns name in the unit's symbol table
func (b *Builder) Symbol(name string) *Symbol {
	return b.unit.Symbols.Intern(name)
}

// Add appends d to the unit's top-level declarations
func (b *Builder) Add(d *Declaration) *Declaration {
	b.unit.Declarations = append(b.unit.Declarations, d)
	return d
}

// Atomic returns a new atomic type node
func (b *Builder) Atomic(kind AtomicKind) *AtomicType {
	return &AtomicType{Atomic: kind}
}

// Pointer returns a new pointer type node
func (b *Builder) Pointer(pointee Type) *PointerType {
	return &PointerType{Pointee: pointee}
}

// FuncType returns a new function type node
func (b *Builder) FuncType(result Type, variadic bool, params ...Type) *FunctionType {
	return &FunctionType{Params: params, Variadic: variadic, Result: result}
}

// Member creates a struct/union member declaration
func (b *Builder) Member(name string, t Type) *Declaration {
	return &Declaration{Symbol: b.Symbol(name), Type: t, Namespace: NamespaceNormal}
}

// Param creates a function parameter declaration; name may be empty
func (b *Builder) Param(name string, t Type) *Declaration {
	return &Declaration{Symbol: b.Symbol(name), Type: t, Namespace: NamespaceNormal}
}

// Entry creates an enum entry; init may be nil
func (b *Builder) Entry(name string, init Expression) *Declaration {
	return &Declaration{
		Symbol:    b.Symbol(name),
		Storage:   StorageEnumEntry,
		Namespace: NamespaceNormal,
		Init:      init,
	}
}

// Struct defines a struct with the given tag ("" for anonymous) and members
func (b *Builder) Struct(tag string, members ...*Declaration) *CompoundType {
	return b.compound(CompoundStruct, NamespaceStruct, tag, members)
}

// Union defines a union with the given tag ("" for anonymous) and members
func (b *Builder) Union(tag string, members ...*Declaration) *CompoundType {
	return b.compound(CompoundUnion, NamespaceUnion, tag, members)
}

func (b *Builder) compound(kind CompoundKind, ns Namespace, tag string, members []*Declaration) *CompoundType {
	t := &CompoundType{Compound: kind}
	t.Decl = b.Add(&Declaration{
		Symbol:    b.Symbol(tag),
		Type:      t,
		Namespace: ns,
		Context:   members,
	})
	return t
}

// Enum defines an enum with the given tag and entries. The entries are also
// appended to the unit's top level, as C places enumerators in file scope.
func (b *Builder) Enum(tag string, entries ...*Declaration) *EnumType {
	t := &EnumType{}
	t.Decl = b.Add(&Declaration{
		Symbol:    b.Symbol(tag),
		Type:      t,
		Namespace: NamespaceEnum,
		Context:   entries,
	})
	for _, e := range entries {
		e.Type = t
		b.Add(e)
	}
	return t
}

// Typedef binds name to t
func (b *Builder) Typedef(name string, t Type) *Declaration {
	return b.Add(&Declaration{
		Symbol:    b.Symbol(name),
		Type:      t,
		Storage:   StorageTypedef,
		Namespace: NamespaceNormal,
	})
}

// Var declares a global variable
func (b *Builder) Var(name string, t Type) *Declaration {
	return b.Add(&Declaration{
		Symbol:    b.Symbol(name),
		Type:      t,
		Storage:   StorageExtern,
		Namespace: NamespaceNormal,
	})
}

// Func declares a function; the function type is built from the parameter types
func (b *Builder) Func(name string, result Type, variadic bool, params ...*Declaration) *Declaration {
	paramTypes := make([]Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type
	}
	return b.Add(&Declaration{
		Symbol:    b.Symbol(name),
		Type:      b.FuncType(result, variadic, paramTypes...),
		Storage:   StorageExtern,
		Namespace: NamespaceNormal,
		Context:   params,
	})
}
