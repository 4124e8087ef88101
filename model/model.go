package model

import (
	"github.com/amplet/amplet/debug"
)

// Sense is the optimization direction of an objective.
type Sense uint8

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Objective is a raw objective expression with its optimization sense.
type Objective struct {
	Sense Sense
	Text  string
}

// Model holds a full optimization model. All collections preserve insertion
// order; the translate package walks them in the fixed declaration order
// constants, parameters, variables, intermediates.
type Model struct {
	name    string
	workDir string

	constants     []*Symbol
	parameters    []*Symbol
	variables     []*Symbol
	intermediates []*Symbol

	// one defining equation per intermediate, same index
	interEquations []string

	equations   []string
	objectives  []Objective
	objects     []string
	connections []string

	symbols map[string]*Symbol
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithWorkDir sets the directory where per-object data files (such as
// piecewise-linear tables) are looked up.
func WithWorkDir(dir string) Option {
	return func(m *Model) { m.workDir = dir }
}

// New returns an empty model.
func New(name string, opts ...Option) *Model {
	m := &Model{
		name:    name,
		workDir: ".",
		symbols: make(map[string]*Symbol),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) declare(name string, kind Kind, opts ...SymbolOption) *Symbol {
	_, dup := m.symbols[name]
	debug.Assert(!dup, "symbol "+name+" declared twice")

	s := &Symbol{Name: name, Kind: kind}
	for _, opt := range opts {
		opt(s)
	}
	m.symbols[name] = s
	return s
}

// Constant declares a fixed named value.
func (m *Model) Constant(name string, value float64) *Symbol {
	s := m.declare(name, KindConstant, WithValue(value))
	m.constants = append(m.constants, s)
	return s
}

// Param declares a parameter.
func (m *Model) Param(name string, opts ...SymbolOption) *Symbol {
	s := m.declare(name, KindParameter, opts...)
	m.parameters = append(m.parameters, s)
	return s
}

// Var declares a decision variable. A name starting with IntegerPrefix makes
// it integer-valued.
func (m *Model) Var(name string, opts ...SymbolOption) *Symbol {
	s := m.declare(name, KindVariable, opts...)
	m.variables = append(m.variables, s)
	return s
}

// Intermediate declares a variable whose value is defined by equation rather
// than being a free decision variable.
func (m *Model) Intermediate(name, equation string, opts ...SymbolOption) *Symbol {
	s := m.declare(name, KindIntermediate, opts...)
	m.intermediates = append(m.intermediates, s)
	m.interEquations = append(m.interEquations, equation)
	return s
}

// Equation adds a raw equation (equality or inequality) to the model.
func (m *Model) Equation(text string) {
	m.equations = append(m.equations, text)
}

// Minimize adds a minimization objective.
func (m *Model) Minimize(text string) {
	m.objectives = append(m.objectives, Objective{Sense: Minimize, Text: text})
}

// Maximize adds a maximization objective.
func (m *Model) Maximize(text string) {
	m.objectives = append(m.objectives, Objective{Sense: Maximize, Text: text})
}

// Object records a prebuilt composite object declaration in its raw upstream
// form, "name = kind(...)".
func (m *Model) Object(decl string) {
	m.objects = append(m.objects, decl)
}

// Connect records a connection string binding a symbol to a composite
// object's parameter slot, "symbol = object.parameter[index]".
func (m *Model) Connect(connection string) {
	m.connections = append(m.connections, connection)
}

// Lookup resolves a declared symbol by name.
func (m *Model) Lookup(name string) (*Symbol, bool) {
	s, ok := m.symbols[name]
	return s, ok
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// WorkDir returns the directory holding per-object data files.
func (m *Model) WorkDir() string { return m.workDir }

// Constants returns the declared constants in declaration order.
func (m *Model) Constants() []*Symbol { return m.constants }

// Params returns the declared parameters in declaration order.
func (m *Model) Params() []*Symbol { return m.parameters }

// Vars returns the declared decision variables in declaration order.
func (m *Model) Vars() []*Symbol { return m.variables }

// Intermediates returns the declared intermediates in declaration order.
func (m *Model) Intermediates() []*Symbol { return m.intermediates }

// InterEquations returns the defining equations of the intermediates, indexed
// like Intermediates.
func (m *Model) InterEquations() []string { return m.interEquations }

// Equations returns the raw model equations.
func (m *Model) Equations() []string { return m.equations }

// Objectives returns the model objectives.
func (m *Model) Objectives() []Objective { return m.objectives }

// Objects returns the raw composite object declarations.
func (m *Model) Objects() []string { return m.objects }

// Connections returns the raw connection strings.
func (m *Model) Connections() []string { return m.connections }
