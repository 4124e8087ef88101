package expr

import "github.com/amplet/amplet/model"

// Operator identifies a binary (or, for OpSub in a Unary node, prefix)
// operation. The closed set keeps backend dispatch exhaustive.
type Operator uint8

const (
	OpEq Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpLt
	OpGt
	OpLeq
	OpGeq
	OpNeq
	OpAnd
)

func (op Operator) String() string {
	switch op {
	case OpEq:
		return "="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLeq:
		return "<="
	case OpGeq:
		return ">="
	case OpNeq:
		return "!="
	case OpAnd:
		return "and"
	default:
		return "?"
	}
}

// Expr is a node of the parsed expression tree. The concrete types form a
// closed set; backends type-switch over them to render.
type Expr interface {
	isExpr()
}

// Literal is a numeric constant.
type Literal float64

// Ref references a declared model symbol.
type Ref struct {
	Symbol *model.Symbol
}

// Unary is a prefix sign. Op is always OpSub; a leading "+" is dropped at
// parse time.
type Unary struct {
	Op Operator
	X  Expr
}

// Binary applies Op to two operands.
type Binary struct {
	Op   Operator
	L, R Expr
}

// Call is a function application such as exp(-x) or max(a, b).
type Call struct {
	Fn   string
	Args []Expr
}

// Cond is a conditional expression: If yields Then when true, Else otherwise.
type Cond struct {
	If   Expr
	Then Expr
	Else Expr
}

func (Literal) isExpr() {}
func (*Ref) isExpr()    {}
func (*Unary) isExpr()  {}
func (*Binary) isExpr() {}
func (*Call) isExpr()   {}
func (*Cond) isExpr()   {}

// Lit returns a literal node.
func Lit(v float64) Literal { return Literal(v) }

// Sym returns a reference node for s.
func Sym(s *model.Symbol) *Ref { return &Ref{Symbol: s} }

// Bin returns a binary node.
func Bin(op Operator, l, r Expr) *Binary { return &Binary{Op: op, L: l, R: r} }

// Fn returns a call node.
func Fn(name string, args ...Expr) *Call { return &Call{Fn: name, Args: args} }

// If returns a conditional node.
func If(cond, then, els Expr) *Cond { return &Cond{If: cond, Then: then, Else: els} }
