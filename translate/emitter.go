package translate

import (
	"github.com/amplet/amplet/expr"
	"github.com/amplet/amplet/model"
)

// Emitter consumes the translated entity stream. Entities arrive in
// declaration order and must be processed in order; some targets require
// declare-before-use.
//
// Both backends receive the same parsed trees; an Emitter only renders.
type Emitter interface {
	// Parameter declares a constant or parameter.
	Parameter(s *model.Symbol) error

	// Variable declares a decision variable or intermediate.
	Variable(s *model.Symbol) error

	// Constraint adds a named constraint. The tree's top node is a
	// comparison (OpEq, OpGeq or OpLeq).
	Constraint(name string, e expr.Expr) error

	// Objective adds a named objective.
	Objective(sense model.Sense, name string, e expr.Expr) error
}

// SetEmitter is implemented by emitters whose target language has index
// sets. Emitters without set support are skipped.
type SetEmitter interface {
	Set(name string, ordered bool, elements []string) error
}
