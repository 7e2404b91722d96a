package cdecl

// Expression is a constant expression attached to an enum entry
type Expression interface {
	isExpression()
}

// IntConstant is an integer literal
type IntConstant struct {
	Value int64
}

// FloatConstant is a floating literal
type FloatConstant struct {
	Value float64
}

// UnaryOp enumerates prefix operators
type UnaryOp int

const (
	UnaryNegate UnaryOp = iota
	UnaryNot
	UnaryComplement
	UnaryPlus
)

var unaryOpNames = []string{
	UnaryNegate:     "-",
	UnaryNot:        "!",
	UnaryComplement: "~",
	UnaryPlus:       "+",
}

func (op UnaryOp) String() string {
	if op >= 0 && int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "?"
}

// UnaryExpression applies a prefix operator
type UnaryExpression struct {
	Op      UnaryOp
	Operand Expression
}

// BinaryExpression applies an infix operator such as "<<" or "+"
type BinaryExpression struct {
	Op    string
	Left  Expression
	Right Expression
}

// Reference names another constant, e.g. a previous enum entry
type Reference struct {
	Symbol *Symbol
}

func (*IntConstant) isExpression()      {}
func (*FloatConstant) isExpression()    {}
func (*UnaryExpression) isExpression()  {}
func (*BinaryExpression) isExpression() {}
func (*Reference) isExpression()        {}
