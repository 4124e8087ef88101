package graph

import (
	"errors"
	"fmt"

	"github.com/amplet/amplet/expr"
	"github.com/amplet/amplet/model"
)

// ErrDuplicateName is returned when two components are attached under the
// same name.
var ErrDuplicateName = errors.New("duplicate component name")

// Component is any named object attached to the model container.
type Component interface {
	Name() string
}

// Param is a fixed value in the graph. Only model constants become Params;
// everything else is a Var so the solver can report a value for it.
type Param struct {
	name  string
	Value float64
}

func (p *Param) Name() string { return p.name }

// Var is a solver decision variable.
type Var struct {
	name    string
	Integer bool
	Lower   *float64
	Upper   *float64

	value *float64 // initial value before solving, solved value after
}

func (v *Var) Name() string { return v.name }

// Value returns the variable's current value, if any.
func (v *Var) Value() (float64, bool) {
	if v.value == nil {
		return 0, false
	}
	return *v.value, true
}

// SetValue stores a value on the variable; solvers call it when publishing a
// solution.
func (v *Var) SetValue(val float64) {
	v.value = &val
}

// Constraint is a named relation over the graph.
type Constraint struct {
	name string
	Expr Node
}

func (c *Constraint) Name() string { return c.name }

// Objective is a named expression to optimize.
type Objective struct {
	name  string
	Sense model.Sense
	Expr  Node
}

func (o *Objective) Name() string { return o.name }

// Model is the shared container all components attach to.
type Model struct {
	name string

	components map[string]Component
	order      []string

	vars        []*Var
	constraints []*Constraint
	objectives  []*Objective
}

// NewModel returns an empty container. It implements translate.Emitter.
func NewModel(name string) *Model {
	return &Model{
		name:       name,
		components: make(map[string]Component),
	}
}

// Name returns the container name.
func (m *Model) Name() string { return m.name }

func (m *Model) attach(c Component) error {
	if _, dup := m.components[c.Name()]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateName, c.Name())
	}
	m.components[c.Name()] = c
	m.order = append(m.order, c.Name())
	return nil
}

// Parameter attaches a model constant as a fixed Param. Non-constant
// parameters are attached as variables: the upstream contract reads their
// values back after solving.
func (m *Model) Parameter(s *model.Symbol) error {
	if s.Kind == model.KindConstant {
		var v float64
		if s.Value != nil {
			v = *s.Value
		}
		return m.attach(&Param{name: s.Name, Value: v})
	}
	return m.Variable(s)
}

// Variable attaches a decision variable or intermediate.
func (m *Model) Variable(s *model.Symbol) error {
	v := &Var{
		name:    s.Name,
		Integer: s.IsInteger(),
		Lower:   s.Lower,
		Upper:   s.Upper,
	}
	if s.Value != nil {
		v.SetValue(*s.Value)
	}
	if err := m.attach(v); err != nil {
		return err
	}
	m.vars = append(m.vars, v)
	return nil
}

// Constraint binds the parsed tree to attached components and adds the
// resulting relation.
func (m *Model) Constraint(name string, e expr.Expr) error {
	node, err := m.bind(e)
	if err != nil {
		return err
	}
	c := &Constraint{name: name, Expr: node}
	if err := m.attach(c); err != nil {
		return err
	}
	m.constraints = append(m.constraints, c)
	return nil
}

// Objective binds the parsed tree and adds it with its optimization sense.
func (m *Model) Objective(sense model.Sense, name string, e expr.Expr) error {
	node, err := m.bind(e)
	if err != nil {
		return err
	}
	o := &Objective{name: name, Sense: sense, Expr: node}
	if err := m.attach(o); err != nil {
		return err
	}
	m.objectives = append(m.objectives, o)
	return nil
}

// Find returns the component attached under name.
func (m *Model) Find(name string) (Component, bool) {
	c, ok := m.components[name]
	return c, ok
}

// Vars returns the attached variables in attach order.
func (m *Model) Vars() []*Var { return m.vars }

// Constraints returns the attached constraints in attach order.
func (m *Model) Constraints() []*Constraint { return m.constraints }

// Objectives returns the attached objectives in attach order.
func (m *Model) Objectives() []*Objective { return m.objectives }

// Components returns the attach-order names of every component.
func (m *Model) Components() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// bind renders a backend-agnostic tree into graph nodes, resolving symbol
// references to attached components. Translation declares every symbol
// before the first constraint, so a miss here is a translator bug surfaced
// as an error rather than a panic.
func (m *Model) bind(e expr.Expr) (Node, error) {
	switch n := e.(type) {
	case expr.Literal:
		return Const(n), nil

	case *expr.Ref:
		c, ok := m.components[n.Symbol.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q is not attached to the graph", expr.ErrUnresolvedSymbol, n.Symbol.Name)
		}
		switch c := c.(type) {
		case *Param:
			return &ParamRef{P: c}, nil
		case *Var:
			return &VarRef{V: c}, nil
		default:
			return nil, fmt.Errorf("%w: %q is a %T, not a value", expr.ErrUnresolvedSymbol, n.Symbol.Name, c)
		}

	case *expr.Unary:
		x, err := m.bind(n.X)
		if err != nil {
			return nil, err
		}
		return &Neg{X: x}, nil

	case *expr.Binary:
		l, err := m.bind(n.L)
		if err != nil {
			return nil, err
		}
		r, err := m.bind(n.R)
		if err != nil {
			return nil, err
		}
		return &BinOp{Op: n.Op, L: l, R: r}, nil

	case *expr.Call:
		args := make([]Node, len(n.Args))
		for i, a := range n.Args {
			arg, err := m.bind(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &CallOp{Fn: n.Fn, Args: args}, nil

	case *expr.Cond:
		cond, err := m.bind(n.If)
		if err != nil {
			return nil, err
		}
		then, err := m.bind(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := m.bind(n.Else)
		if err != nil {
			return nil, err
		}
		return &CondOp{If: cond, Then: then, Else: els}, nil

	default:
		return nil, fmt.Errorf("%w: unknown node %T", expr.ErrMalformedExpression, e)
	}
}
