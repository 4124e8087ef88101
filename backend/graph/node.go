package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/amplet/amplet/expr"
)

// Node is one vertex of the symbolic expression graph. References point at
// components attached to the owning Model.
type Node interface {
	isNode()
}

// Const is a numeric leaf.
type Const float64

// ParamRef references an attached Param.
type ParamRef struct {
	P *Param
}

// VarRef references an attached Var.
type VarRef struct {
	V *Var
}

// Neg negates its operand.
type Neg struct {
	X Node
}

// BinOp applies a binary operator. Comparison operators evaluate to 1 or 0.
type BinOp struct {
	Op   expr.Operator
	L, R Node
}

// CallOp applies a named function.
type CallOp struct {
	Fn   string
	Args []Node
}

// CondOp selects Then when If evaluates non-zero, Else otherwise.
type CondOp struct {
	If, Then, Else Node
}

func (Const) isNode()     {}
func (*ParamRef) isNode() {}
func (*VarRef) isNode()   {}
func (*Neg) isNode()      {}
func (*BinOp) isNode()    {}
func (*CallOp) isNode()   {}
func (*CondOp) isNode()   {}

// ErrUnsetVariable is returned by Eval when a referenced variable has no
// value yet.
var ErrUnsetVariable = errors.New("variable has no value")

// Eval computes the numeric value of a graph expression from the current
// component values. Comparisons yield 1 or 0, so a constraint's equality
// node evaluates to 1 exactly when the constraint holds.
func Eval(n Node) (float64, error) {
	switch n := n.(type) {
	case Const:
		return float64(n), nil

	case *ParamRef:
		return n.P.Value, nil

	case *VarRef:
		v, ok := n.V.Value()
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnsetVariable, n.V.Name())
		}
		return v, nil

	case *Neg:
		x, err := Eval(n.X)
		if err != nil {
			return 0, err
		}
		return -x, nil

	case *BinOp:
		l, err := Eval(n.L)
		if err != nil {
			return 0, err
		}
		r, err := Eval(n.R)
		if err != nil {
			return 0, err
		}
		return evalBinary(n.Op, l, r)

	case *CallOp:
		args := make([]float64, len(n.Args))
		for i, a := range n.Args {
			v, err := Eval(a)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return evalCall(n.Fn, args)

	case *CondOp:
		cond, err := Eval(n.If)
		if err != nil {
			return 0, err
		}
		if cond != 0 {
			return Eval(n.Then)
		}
		return Eval(n.Else)

	default:
		return 0, fmt.Errorf("cannot evaluate node %T", n)
	}
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func evalBinary(op expr.Operator, l, r float64) (float64, error) {
	switch op {
	case expr.OpAdd:
		return l + r, nil
	case expr.OpSub:
		return l - r, nil
	case expr.OpMul:
		return l * r, nil
	case expr.OpDiv:
		return l / r, nil
	case expr.OpPow:
		return math.Pow(l, r), nil
	case expr.OpEq:
		return b2f(l == r), nil
	case expr.OpLt:
		return b2f(l < r), nil
	case expr.OpGt:
		return b2f(l > r), nil
	case expr.OpLeq:
		return b2f(l <= r), nil
	case expr.OpGeq:
		return b2f(l >= r), nil
	case expr.OpNeq:
		return b2f(l != r), nil
	case expr.OpAnd:
		return b2f(l != 0 && r != 0), nil
	default:
		return 0, fmt.Errorf("cannot evaluate operator %q", op)
	}
}

func evalCall(fn string, args []float64) (float64, error) {
	unary := func(f func(float64) float64) (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("%s expects 1 argument, got %d", fn, len(args))
		}
		return f(args[0]), nil
	}
	binary := func(f func(float64, float64) float64) (float64, error) {
		if len(args) != 2 {
			return 0, fmt.Errorf("%s expects 2 arguments, got %d", fn, len(args))
		}
		return f(args[0], args[1]), nil
	}

	switch fn {
	case "abs":
		return unary(math.Abs)
	case "exp":
		return unary(math.Exp)
	case "log":
		return unary(math.Log)
	case "log10":
		return unary(math.Log10)
	case "sqrt":
		return unary(math.Sqrt)
	case "sin":
		return unary(math.Sin)
	case "cos":
		return unary(math.Cos)
	case "tan":
		return unary(math.Tan)
	case "max":
		return binary(math.Max)
	case "min":
		return binary(math.Min)
	default:
		return 0, fmt.Errorf("unknown function %q", fn)
	}
}
