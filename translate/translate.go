package translate

import (
	"fmt"
	"time"

	"github.com/amplet/amplet/expr"
	"github.com/amplet/amplet/logger"
	"github.com/amplet/amplet/model"
	"github.com/amplet/amplet/profile"
)

// Translator drives one conversion of one model. It owns the auto-naming
// counters, so concurrent conversions of different models must each use
// their own Translator.
type Translator struct {
	m        *model.Model
	emitters []Emitter

	constraintNum int
	objectiveNum  int
	setNum        int
	auxVarNum     int
}

// New returns a Translator that fans the translated entity stream out to the
// given emitters.
func New(m *model.Model, emitters ...Emitter) *Translator {
	return &Translator{m: m, emitters: emitters}
}

type constraintStmt struct {
	name string
	tree expr.Expr
}

type objectiveStmt struct {
	sense model.Sense
	name  string
	tree  expr.Expr
}

// plan is the fully validated conversion, prepared before anything is
// emitted so that a failing model produces no partial output.
type plan struct {
	parameters  []*model.Symbol
	variables   []*model.Symbol
	constraints []constraintStmt
	objectives  []objectiveStmt
}

// Run translates the model and streams it to every attached emitter.
// Translation errors abort the conversion; no partial model is usable.
func (t *Translator) Run() error {
	log := logger.Logger().With().Str("model", t.m.Name()).Logger()
	start := time.Now()

	p, err := t.prepare()
	if err != nil {
		return err
	}
	if err := t.emit(p); err != nil {
		return err
	}

	log.Info().
		Int("parameters", len(p.parameters)).
		Int("variables", len(p.variables)).
		Int("constraints", len(p.constraints)).
		Int("objectives", len(p.objectives)).
		Str("took", time.Since(start).String()).
		Msg("model translated")
	return nil
}

// prepare walks the model in declaration order and builds the full
// conversion plan: every equation rewritten and parsed, every composite
// object expanded, every table read.
func (t *Translator) prepare() (*plan, error) {
	p := &plan{}

	p.parameters = append(p.parameters, t.m.Constants()...)
	p.parameters = append(p.parameters, t.m.Params()...)
	p.variables = append(p.variables, t.m.Vars()...)
	p.variables = append(p.variables, t.m.Intermediates()...)

	// intermediates are constrained to their defining equation
	intermediates := t.m.Intermediates()
	for i, eq := range t.m.InterEquations() {
		tree, err := t.parseEquation(intermediates[i].Name + "=" + eq)
		if err != nil {
			return nil, fmt.Errorf("intermediate %s: %w", intermediates[i].Name, err)
		}
		p.constraints = append(p.constraints, constraintStmt{t.nextConstraintName(), tree})
	}

	for i, eq := range t.m.Equations() {
		tree, err := t.parseEquation(eq)
		if err != nil {
			return nil, fmt.Errorf("equation %d %q: %w", i+1, eq, err)
		}
		p.constraints = append(p.constraints, constraintStmt{t.nextConstraintName(), tree})
	}

	for _, decl := range t.m.Objects() {
		c, err := parseComposite(decl, t.m.Connections())
		if err != nil {
			return nil, err
		}
		trees, err := t.synthesize(c)
		if err != nil {
			return nil, err
		}
		for _, tree := range trees {
			p.constraints = append(p.constraints, constraintStmt{t.nextConstraintName(), tree})
		}
	}

	for i, o := range t.m.Objectives() {
		tree, err := t.parseEquation(o.Text)
		if err != nil {
			return nil, fmt.Errorf("objective %d %q: %w", i+1, o.Text, err)
		}
		p.objectives = append(p.objectives, objectiveStmt{o.Sense, t.nextObjectiveName(), tree})
	}

	return p, nil
}

func (t *Translator) parseEquation(text string) (expr.Expr, error) {
	normalized, err := expr.Rewrite(text)
	if err != nil {
		return nil, err
	}
	return expr.Parse(normalized, t.m)
}

func (t *Translator) emit(p *plan) error {
	for _, s := range p.parameters {
		if err := t.each(func(e Emitter) error { return e.Parameter(s) }); err != nil {
			return fmt.Errorf("parameter %s: %w", s.Name, err)
		}
		profile.RecordStatement()
	}
	for _, s := range p.variables {
		if err := t.each(func(e Emitter) error { return e.Variable(s) }); err != nil {
			return fmt.Errorf("variable %s: %w", s.Name, err)
		}
		profile.RecordStatement()
	}
	for _, c := range p.constraints {
		if err := t.each(func(e Emitter) error { return e.Constraint(c.name, c.tree) }); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		profile.RecordStatement()
	}
	for _, o := range p.objectives {
		if err := t.each(func(e Emitter) error { return e.Objective(o.sense, o.name, o.tree) }); err != nil {
			return fmt.Errorf("%s: %w", o.name, err)
		}
		profile.RecordStatement()
	}
	return nil
}

func (t *Translator) each(f func(Emitter) error) error {
	for _, e := range t.emitters {
		if err := f(e); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) nextConstraintName() string {
	t.constraintNum++
	return fmt.Sprintf("constraint%d", t.constraintNum)
}

func (t *Translator) nextObjectiveName() string {
	t.objectiveNum++
	return fmt.Sprintf("objective%d", t.objectiveNum)
}

// Set emits an auto-numbered index set to every emitter whose target
// language supports sets.
func (t *Translator) Set(ordered bool, elements []string) error {
	t.setNum++
	name := fmt.Sprintf("set%d", t.setNum)
	for _, e := range t.emitters {
		se, ok := e.(SetEmitter)
		if !ok {
			continue
		}
		if err := se.Set(name, ordered, elements); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	profile.RecordStatement()
	return nil
}

// AuxVar declares an auto-numbered auxiliary variable on the model and emits
// its declaration, for expansions that need a scratch variable.
func (t *Translator) AuxVar(opts ...model.SymbolOption) (*model.Symbol, error) {
	t.auxVarNum++
	s := t.m.Var(fmt.Sprintf("aux_v%d", t.auxVarNum), opts...)
	if err := t.each(func(e Emitter) error { return e.Variable(s) }); err != nil {
		return nil, fmt.Errorf("variable %s: %w", s.Name, err)
	}
	profile.RecordStatement()
	return s, nil
}
