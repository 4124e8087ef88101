package translate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/amplet/amplet/expr"
	"github.com/amplet/amplet/model"
)

// CompositeKind identifies a prebuilt higher-level operator that expands
// into primitive constraints.
type CompositeKind uint8

const (
	CompositeSum CompositeKind = iota
	CompositeAbs
	CompositeSign
	CompositeMax
	CompositeMin
	CompositePWL
)

func (k CompositeKind) String() string {
	switch k {
	case CompositeSum:
		return "sum"
	case CompositeAbs:
		return "abs"
	case CompositeSign:
		return "sign"
	case CompositeMax:
		return "max"
	case CompositeMin:
		return "min"
	case CompositePWL:
		return "pwl"
	default:
		return "unknown"
	}
}

func parseCompositeKind(s string) (CompositeKind, error) {
	switch s {
	case "sum":
		return CompositeSum, nil
	case "abs":
		return CompositeAbs, nil
	case "sign":
		return CompositeSign, nil
	case "max":
		return CompositeMax, nil
	case "min":
		return CompositeMin, nil
	case "pwl":
		return CompositePWL, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedOperation, s)
	}
}

// composite is a prebuilt object reconstructed from its declaration and the
// model's connection strings. It is transient: synthesized into constraints,
// then discarded.
type composite struct {
	name   string
	kind   CompositeKind
	params map[string][]string // parameter name -> bound symbol names

	// symbol table of the owning conversion, set by the synthesizer
	lookup func(name string) (*model.Symbol, bool)
}

// parseComposite reads a raw object declaration of the form "name = kind(...)"
// and groups the matching connection strings by parameter name.
func parseComposite(decl string, connections []string) (*composite, error) {
	parts := strings.SplitN(decl, " = ", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: object declaration %q", expr.ErrMalformedExpression, decl)
	}
	name := parts[0]
	kindName, _, found := strings.Cut(parts[1], "(")
	if !found {
		return nil, fmt.Errorf("%w: object declaration %q", expr.ErrMalformedExpression, decl)
	}
	kind, err := parseCompositeKind(kindName)
	if err != nil {
		return nil, err
	}

	c := &composite{name: name, kind: kind, params: make(map[string][]string)}
	prefix := name + "."
	for _, connection := range connections {
		if !strings.Contains(connection, prefix) {
			continue
		}
		sides := strings.SplitN(connection, " = ", 2)
		if len(sides) != 2 {
			return nil, fmt.Errorf("%w: connection %q", expr.ErrMalformedExpression, connection)
		}
		symbol := sides[0]
		at := strings.Index(sides[1], prefix)
		if at < 0 {
			return nil, fmt.Errorf("%w: connection %q does not bind a parameter of %s",
				expr.ErrMalformedExpression, connection, name)
		}
		param := sides[1][at+len(prefix):]
		// an index suffix means the parameter binds a sequence
		param, _, _ = strings.Cut(param, "[")
		c.params[param] = append(c.params[param], symbol)
	}
	return c, nil
}

// scalar returns the single symbol bound to the named parameter.
func (c *composite) scalar(param string) (*expr.Ref, error) {
	syms := c.params[param]
	if len(syms) != 1 {
		return nil, fmt.Errorf("%w: object %s expects exactly one %q binding, got %d",
			ErrUnsupportedOperation, c.name, param, len(syms))
	}
	return c.resolve(syms[0])
}

func (c *composite) resolve(name string) (*expr.Ref, error) {
	s, ok := c.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q bound to object %s", expr.ErrUnresolvedSymbol, name, c.name)
	}
	return expr.Sym(s), nil
}

// synthesize expands the composite into zero or more constraint trees over
// the model's symbol table.
func (t *Translator) synthesize(c *composite) ([]expr.Expr, error) {
	c.lookup = t.m.Lookup

	switch c.kind {
	case CompositeSum:
		return c.expandSum()
	case CompositeAbs:
		return c.expandUnaryCall("abs")
	case CompositeSign:
		return c.expandSign()
	case CompositeMax:
		return c.expandBinaryCall("max")
	case CompositeMin:
		return c.expandBinaryCall("min")
	case CompositePWL:
		return c.expandPWL(t.m.WorkDir())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperation, c.kind)
	}
}

// expandSum emits y = 0 + x1 + x2 + ... + xn.
func (c *composite) expandSum() ([]expr.Expr, error) {
	y, err := c.scalar("y")
	if err != nil {
		return nil, err
	}
	sum := expr.Expr(expr.Lit(0))
	for _, name := range c.params["x"] {
		x, err := c.resolve(name)
		if err != nil {
			return nil, err
		}
		sum = expr.Bin(expr.OpAdd, sum, x)
	}
	return []expr.Expr{expr.Bin(expr.OpEq, y, sum)}, nil
}

// expandUnaryCall emits y = fn(x).
func (c *composite) expandUnaryCall(fn string) ([]expr.Expr, error) {
	y, err := c.scalar("y")
	if err != nil {
		return nil, err
	}
	x, err := c.scalar("x")
	if err != nil {
		return nil, err
	}
	return []expr.Expr{expr.Bin(expr.OpEq, y, expr.Fn(fn, x))}, nil
}

// expandSign emits y = if x>=0 then 1 else -1.
func (c *composite) expandSign() ([]expr.Expr, error) {
	y, err := c.scalar("y")
	if err != nil {
		return nil, err
	}
	x, err := c.scalar("x")
	if err != nil {
		return nil, err
	}
	cond := expr.If(expr.Bin(expr.OpGeq, x, expr.Lit(0)), expr.Lit(1), expr.Lit(-1))
	return []expr.Expr{expr.Bin(expr.OpEq, y, cond)}, nil
}

// expandBinaryCall emits y = fn(x0, x1); exactly two operands are expected.
func (c *composite) expandBinaryCall(fn string) ([]expr.Expr, error) {
	y, err := c.scalar("y")
	if err != nil {
		return nil, err
	}
	xs := c.params["x"]
	if len(xs) != 2 {
		return nil, fmt.Errorf("%w: object %s expects exactly two %q operands, got %d",
			ErrUnsupportedOperation, c.name, fn, len(xs))
	}
	x0, err := c.resolve(xs[0])
	if err != nil {
		return nil, err
	}
	x1, err := c.resolve(xs[1])
	if err != nil {
		return nil, err
	}
	return []expr.Expr{expr.Bin(expr.OpEq, y, expr.Fn(fn, x0, x1))}, nil
}

// expandPWL reads the object's breakpoint table and emits one constraint
// summing n+1 boundary-extended line segments, each gated by a mutually
// exclusive interval indicator.
func (c *composite) expandPWL(workDir string) ([]expr.Expr, error) {
	y, err := c.scalar("y")
	if err != nil {
		return nil, err
	}
	x, err := c.scalar("x")
	if err != nil {
		return nil, err
	}

	xs, ys, err := readPWLTable(filepath.Join(workDir, c.name+".txt"))
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", c.name, err)
	}

	n := len(xs)
	var sum expr.Expr
	for i := -1; i < n; i++ {
		// boundary segments reuse the first/last interior line
		point := i
		switch {
		case i == -1:
			point = 0
		case i == n-1:
			point = n - 2
		}

		x1, y1 := expr.Lit(xs[point]), expr.Lit(ys[point])
		x2, y2 := expr.Lit(xs[point+1]), expr.Lit(ys[point+1])

		// line through (x1,y1) and (x2,y2)
		slope := expr.Bin(expr.OpDiv, expr.Bin(expr.OpSub, y2, y1), expr.Bin(expr.OpSub, x2, x1))
		line := expr.Bin(expr.OpAdd, expr.Bin(expr.OpMul, slope, expr.Bin(expr.OpSub, x, x1)), y1)

		// half-open interval test; != guards shared breakpoints against
		// double counting
		var indicator expr.Expr
		switch {
		case i == -1:
			indicator = expr.Bin(expr.OpLeq, x, x1)
		case i == n-1:
			indicator = expr.Bin(expr.OpAnd,
				expr.Bin(expr.OpGt, x, x2),
				expr.Bin(expr.OpNeq, x, x2))
		default:
			indicator = expr.Bin(expr.OpAnd,
				expr.Bin(expr.OpAnd,
					expr.Bin(expr.OpGt, x, x1),
					expr.Bin(expr.OpLeq, x, x2)),
				expr.Bin(expr.OpNeq, x, x1))
		}

		segment := expr.Bin(expr.OpMul, line, expr.If(indicator, expr.Lit(1), expr.Lit(0)))
		if sum == nil {
			sum = segment
		} else {
			sum = expr.Bin(expr.OpAdd, sum, segment)
		}
	}

	return []expr.Expr{expr.Bin(expr.OpEq, y, sum)}, nil
}

// readPWLTable reads breakpoints from a plain text file, one "x,y" pair per
// line, in file order. The points are not re-sorted.
func readPWLTable(path string) (xs, ys []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: need the same number of x and y values, got %q", ErrInvalidTable, line)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q is not numeric", ErrInvalidTable, fields[0])
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q is not numeric", ErrInvalidTable, fields[1])
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	if len(xs) < 3 {
		return nil, nil, fmt.Errorf("%w: need at least 3 data points, got %d", ErrInvalidTable, len(xs))
	}
	return xs, ys, nil
}
