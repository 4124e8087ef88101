// Package solve drives a full translation, invokes an external solver on the
// resulting expression graph and writes solved values back into the model.
package solve

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/amplet/amplet/backend"
	"github.com/amplet/amplet/backend/graph"
	"github.com/amplet/amplet/logger"
	"github.com/amplet/amplet/model"
	"github.com/amplet/amplet/translate"
)

// Solver runs an external optimization engine over a translated graph. The
// call blocks until the solver terminates; callers wanting timeouts must
// wrap the invocation themselves.
type Solver interface {
	Solve(m *graph.Model) (backend.Result, error)
}

// Outcome reports a successful solve.
type Outcome struct {
	// Objectives holds one value per objective, in declaration order.
	Objectives []float64

	// ObjectiveSum is the sum of all objective values, mirroring the
	// upstream single-number objective report.
	ObjectiveSum float64
}

// Model translates m, solves it and writes every solved value back into the
// model's symbols. Translation errors are returned as-is; solver failures
// are reported as *backend.SolveError and only ever after a fully
// successful translation.
func Model(m *model.Model, s Solver) (*Outcome, error) {
	log := logger.Logger().With().Str("model", m.Name()).Logger()

	gm := graph.NewModel(m.Name())
	if err := translate.New(m, gm).Run(); err != nil {
		return nil, err
	}

	res, err := s.Solve(gm)
	if err != nil {
		return nil, &backend.SolveError{
			Status:      backend.StatusError,
			Termination: backend.TerminationUnknown,
			Detail:      err.Error(),
		}
	}
	log.Info().
		Str("status", res.Status.String()).
		Str("termination", res.Termination.String()).
		Msg("solver finished")

	if res.Status != backend.StatusOK {
		return nil, &backend.SolveError{Status: res.Status, Termination: res.Termination,
			Detail: "solver did not exit normally"}
	}
	if res.Termination != backend.TerminationOptimal {
		return nil, &backend.SolveError{Status: res.Status, Termination: res.Termination,
			Detail: "no optimal solution found"}
	}

	if err := publish(gm, res); err != nil {
		return nil, &backend.SolveError{Status: res.Status, Termination: res.Termination,
			Detail: err.Error()}
	}
	writeBack(m, res.Values)

	objectives, err := objectiveValues(gm, res)
	if err != nil {
		return nil, &backend.SolveError{Status: res.Status, Termination: res.Termination,
			Detail: err.Error()}
	}

	out := &Outcome{Objectives: objectives}
	for _, v := range objectives {
		out.ObjectiveSum += v
	}
	return out, nil
}

// publish stores the solution on the graph variables and verifies the
// solver reported a value for every one of them.
func publish(gm *graph.Model, res backend.Result) error {
	vars := gm.Vars()
	solved := bitset.New(uint(len(vars)))
	for i, v := range vars {
		val, ok := res.Values[v.Name()]
		if !ok {
			continue
		}
		v.SetValue(val)
		solved.Set(uint(i))
	}

	if solved.Count() == uint(len(vars)) {
		return nil
	}
	var missing []string
	for i, v := range vars {
		if !solved.Test(uint(i)) {
			missing = append(missing, v.Name())
		}
	}
	return fmt.Errorf("incomplete solution: no value for %s", strings.Join(missing, ", "))
}

// writeBack copies solved values into the model's parameters, variables and
// intermediates. Constants keep their declared value.
func writeBack(m *model.Model, values map[string]float64) {
	for _, group := range [][]*model.Symbol{m.Params(), m.Vars(), m.Intermediates()} {
		for _, s := range group {
			if v, ok := values[s.Name]; ok {
				s.SetValue(v)
			}
		}
	}
}

// objectiveValues prefers the solver-reported objective values and falls
// back to evaluating the objective expressions over the published solution.
func objectiveValues(gm *graph.Model, res backend.Result) ([]float64, error) {
	if res.Objectives != nil {
		if len(res.Objectives) != len(gm.Objectives()) {
			return nil, fmt.Errorf("solver reported %d objective values, want %d",
				len(res.Objectives), len(gm.Objectives()))
		}
		return res.Objectives, nil
	}

	values := make([]float64, len(gm.Objectives()))
	for i, o := range gm.Objectives() {
		v, err := graph.Eval(o.Expr)
		if err != nil {
			return nil, fmt.Errorf("objective %s: %w", o.Name(), err)
		}
		values[i] = v
	}
	return values, nil
}
