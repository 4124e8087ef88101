package ampl

import (
	"strings"

	"github.com/amplet/amplet/expr"
)

// render turns a parsed tree back into AMPL infix text. Parentheses are
// inserted from the tree structure alone, so the output is canonical
// regardless of how the source equation was grouped.
func render(e expr.Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func isComparison(op expr.Operator) bool {
	switch op {
	case expr.OpEq, expr.OpLt, expr.OpGt, expr.OpLeq, expr.OpGeq, expr.OpNeq:
		return true
	}
	return false
}

// isAtom reports whether e renders without needing protective parentheses.
func isAtom(e expr.Expr) bool {
	switch e.(type) {
	case expr.Literal, *expr.Ref, *expr.Call:
		return true
	}
	return false
}

func writeExpr(sb *strings.Builder, e expr.Expr) {
	switch n := e.(type) {
	case expr.Literal:
		sb.WriteString(num(float64(n)))

	case *expr.Ref:
		sb.WriteString(n.Symbol.Name)

	case *expr.Unary:
		sb.WriteByte('-')
		writeOperand(sb, n.X)

	case *expr.Binary:
		writeBinary(sb, n)

	case *expr.Call:
		sb.WriteString(n.Fn)
		sb.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, arg)
		}
		sb.WriteByte(')')

	case *expr.Cond:
		sb.WriteString("if ")
		writeExpr(sb, n.If)
		sb.WriteString(" then ")
		writeOperand(sb, n.Then)
		sb.WriteString(" else ")
		writeOperand(sb, n.Else)
	}
}

func writeBinary(sb *strings.Builder, n *expr.Binary) {
	switch {
	case isComparison(n.Op):
		// a comparison is always the top of its tree; its operands never
		// need protection from a surrounding operator
		writeExpr(sb, n.L)
		sb.WriteString(n.Op.String())
		writeExpr(sb, n.R)

	case n.Op == expr.OpAnd:
		// chains render flat: (a) and (b) and (c)
		if l, ok := n.L.(*expr.Binary); ok && l.Op == expr.OpAnd {
			writeExpr(sb, n.L)
		} else {
			writeOperand(sb, n.L)
		}
		sb.WriteString(" and ")
		writeOperand(sb, n.R)

	default:
		// associative chains built by the synthesizer render without
		// inner grouping: 0+x1+x2
		if l, ok := n.L.(*expr.Binary); ok && l.Op == n.Op && (n.Op == expr.OpAdd || n.Op == expr.OpMul) {
			writeExpr(sb, n.L)
		} else {
			writeOperand(sb, n.L)
		}
		sb.WriteString(n.Op.String())
		writeOperand(sb, n.R)
	}
}

// writeOperand parenthesizes anything that is not atomic.
func writeOperand(sb *strings.Builder, e expr.Expr) {
	if isAtom(e) {
		writeExpr(sb, e)
		return
	}
	sb.WriteByte('(')
	writeExpr(sb, e)
	sb.WriteByte(')')
}
