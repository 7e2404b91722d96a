package irload

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/errors"
)

// CheckVersion verifies that version satisfies SupportedVersions
func CheckVersion(version string) error {
	if version == "" {
		return errors.WithHint(
			errors.Wrap(errors.ErrIncompatibleVersion, "format_version is missing"),
			"add format_version: \"1.0.0\" to the document")
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(errors.ErrIncompatibleVersion, "format_version %q: %v", version, err)
	}

	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return errors.AssertionFailedf("bad version constraint %s: %v", SupportedVersions, err)
	}

	if !constraint.Check(v) {
		return errors.Wrapf(errors.ErrIncompatibleVersion, "format_version %s does not satisfy %s", version, SupportedVersions)
	}
	return nil
}

// builder turns a Document into a unit. Type nodes are allocated first so
// that members, pointees and parameters can refer to types declared later.
type builder struct {
	b     *cdecl.Builder
	types map[string]cdecl.Type
	docs  map[string]*TypeDoc
}

// Build checks the document version and constructs the unit. name is used
// when the document does not carry its own.
func Build(doc *Document, name string) (*cdecl.TranslationUnit, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	if err := CheckVersion(doc.FormatVersion); err != nil {
		return nil, err
	}
	if doc.Name != "" {
		name = doc.Name
	}

	bd := &builder{
		b:     cdecl.NewBuilder(name),
		types: make(map[string]cdecl.Type, len(doc.Types)),
		docs:  make(map[string]*TypeDoc, len(doc.Types)),
	}

	for i := range doc.Types {
		if err := bd.allocate(&doc.Types[i]); err != nil {
			return nil, err
		}
	}
	for i := range doc.Types {
		if err := bd.link(&doc.Types[i]); err != nil {
			return nil, errors.Wrapf(err, "type %q", doc.Types[i].ID)
		}
	}
	if err := bd.checkCycles(doc.Types); err != nil {
		return nil, err
	}

	for i := range doc.Declarations {
		d := &doc.Declarations[i]
		if err := bd.declare(d); err != nil {
			return nil, errors.Wrapf(err, "declaration %d (%q)", i, d.Name)
		}
	}

	return bd.b.Unit(), nil
}

// allocate creates the node for td. Compound and enum nodes get their
// defining declaration here so that each has exactly one.
func (bd *builder) allocate(td *TypeDoc) error {
	if td.ID == "" {
		return errors.Newf("type of kind %q has no id", td.Kind)
	}
	if _, dup := bd.types[td.ID]; dup {
		return errors.Newf("duplicate type id %q", td.ID)
	}

	var t cdecl.Type
	switch td.Kind {
	case "atomic":
		kind, err := cdecl.ParseAtomicKind(td.Atomic)
		if err != nil {
			return errors.Wrapf(err, "type %q", td.ID)
		}
		t = bd.b.Atomic(kind)
	case "pointer":
		t = bd.b.Pointer(nil)
	case "struct":
		t = bd.b.Struct(td.Tag)
	case "union":
		t = bd.b.Union(td.Tag)
	case "enum":
		t = bd.b.Enum(td.Tag)
	case "function":
		t = bd.b.FuncType(nil, td.Variadic)
	case "invalid":
		t = &cdecl.InvalidType{}
	default:
		return errors.WithHint(
			errors.Newf("type %q has unknown kind %q", td.ID, td.Kind),
			"kind must be one of atomic, pointer, struct, union, enum, function, invalid")
	}

	bd.types[td.ID] = t
	bd.docs[td.ID] = td
	return nil
}

func (bd *builder) ref(id string) (cdecl.Type, error) {
	t, ok := bd.types[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownReference, "type id %q", id)
	}
	return t, nil
}

func (bd *builder) link(td *TypeDoc) error {
	switch t := bd.types[td.ID].(type) {
	case *cdecl.PointerType:
		pointee, err := bd.ref(td.Pointee)
		if err != nil {
			return err
		}
		t.Pointee = pointee

	case *cdecl.FunctionType:
		result, err := bd.ref(td.Result)
		if err != nil {
			return errors.Wrap(err, "result")
		}
		t.Result = result
		for _, id := range td.Params {
			p, err := bd.ref(id)
			if err != nil {
				return errors.Wrap(err, "parameter")
			}
			t.Params = append(t.Params, p)
		}

	case *cdecl.CompoundType:
		for _, m := range td.Members {
			mt, err := bd.ref(m.Type)
			if err != nil {
				return errors.Wrapf(err, "member %q", m.Name)
			}
			t.Decl.Context = append(t.Decl.Context, bd.b.Member(m.Name, mt))
		}

	case *cdecl.EnumType:
		for _, e := range td.Entries {
			if e.Name == "" {
				return errors.New("enum entry without a name")
			}
			var init cdecl.Expression
			if e.Value != nil {
				expr, err := bd.expression(e.Value)
				if err != nil {
					return errors.Wrapf(err, "entry %q", e.Name)
				}
				init = expr
			}
			entry := bd.b.Entry(e.Name, init)
			entry.Type = t
			t.Decl.Context = append(t.Decl.Context, entry)
			bd.b.Add(entry)
		}
	}
	return nil
}

func (bd *builder) expression(e *ExprDoc) (cdecl.Expression, error) {
	forms := 0
	for _, set := range []bool{e.Int != nil, e.Float != nil, e.Neg != nil, e.Not != nil, e.Op != "", e.Ref != ""} {
		if set {
			forms++
		}
	}
	if forms != 1 {
		return nil, errors.Newf("expression must have exactly one of int, float, neg, not, op, ref (has %d)", forms)
	}

	switch {
	case e.Int != nil:
		return &cdecl.IntConstant{Value: *e.Int}, nil
	case e.Float != nil:
		return &cdecl.FloatConstant{Value: *e.Float}, nil
	case e.Neg != nil:
		return bd.unary(cdecl.UnaryNegate, e.Neg)
	case e.Not != nil:
		return bd.unary(cdecl.UnaryNot, e.Not)
	case e.Op != "":
		if e.Left == nil || e.Right == nil {
			return nil, errors.Newf("operator %q needs left and right", e.Op)
		}
		left, err := bd.expression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := bd.expression(e.Right)
		if err != nil {
			return nil, err
		}
		return &cdecl.BinaryExpression{Op: e.Op, Left: left, Right: right}, nil
	default:
		return &cdecl.Reference{Symbol: bd.b.Symbol(e.Ref)}, nil
	}
}

func (bd *builder) unary(op cdecl.UnaryOp, operand *ExprDoc) (cdecl.Expression, error) {
	inner, err := bd.expression(operand)
	if err != nil {
		return nil, err
	}
	return &cdecl.UnaryExpression{Op: op, Operand: inner}, nil
}

// checkCycles rejects pointer and function types that reach themselves
// without passing through a struct, union or enum. Rendering follows those
// edges directly, so such a cycle would never terminate.
func (bd *builder) checkCycles(types []TypeDoc) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(types))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case visiting:
			return errors.Wrapf(errors.ErrTypeCycle, "through type %q", id)
		case done:
			return nil
		}
		state[id] = visiting

		td := bd.docs[id]
		var next []string
		switch td.Kind {
		case "pointer":
			next = []string{td.Pointee}
		case "function":
			next = append([]string{td.Result}, td.Params...)
		}
		for _, n := range next {
			if err := visit(n); err != nil {
				return err
			}
		}

		state[id] = done
		return nil
	}

	for _, td := range types {
		if err := visit(td.ID); err != nil {
			return err
		}
	}
	return nil
}

func (bd *builder) declare(dd *DeclDoc) error {
	t, err := bd.ref(dd.Type)
	if err != nil {
		return err
	}

	storage, err := cdecl.ParseStorageClass(dd.Storage)
	if err != nil {
		return err
	}
	ns, err := cdecl.ParseNamespace(dd.Namespace)
	if err != nil {
		return err
	}
	if ns == cdecl.NamespaceStruct || ns == cdecl.NamespaceUnion || ns == cdecl.NamespaceEnum {
		return errors.WithHint(
			errors.Newf("namespace %s is reserved for type definitions", ns),
			"tagged types are declared by their entry under types")
	}
	if storage == cdecl.StorageTypedef && dd.Name == "" {
		return errors.New("typedef without a name")
	}

	d := &cdecl.Declaration{
		Symbol:    bd.b.Symbol(dd.Name),
		Type:      t,
		Storage:   storage,
		Namespace: ns,
		Pos:       cdecl.Position{File: bd.b.Unit().Name, Line: dd.Line},
	}

	fn, isFunc := t.(*cdecl.FunctionType)
	if len(dd.Params) > 0 {
		if !isFunc {
			return errors.New("params given for a non-function declaration")
		}
		if len(dd.Params) != len(fn.Params) {
			return errors.Newf("%d params given, function type has %d", len(dd.Params), len(fn.Params))
		}
		for i, p := range dd.Params {
			pt := fn.Params[i]
			if p.Type != "" {
				if pt, err = bd.ref(p.Type); err != nil {
					return errors.Wrapf(err, "param %d", i)
				}
			}
			d.Context = append(d.Context, bd.b.Param(p.Name, pt))
		}
	}
	if dd.Body {
		if !isFunc {
			return errors.New("body given for a non-function declaration")
		}
		d.Body = &cdecl.Body{}
	}

	bd.b.Add(d)
	return nil
}
