// Package backend defines the contracts shared by translation backends and
// the external solvers that consume them.
package backend

import "fmt"

// Status is the exit condition of a solver process.
type Status uint8

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Termination is the solver's reported termination condition.
type Termination uint8

const (
	TerminationOptimal Termination = iota
	TerminationInfeasible
	TerminationUnbounded
	TerminationLimit
	TerminationUnknown
)

func (t Termination) String() string {
	switch t {
	case TerminationOptimal:
		return "optimal"
	case TerminationInfeasible:
		return "infeasible"
	case TerminationUnbounded:
		return "unbounded"
	case TerminationLimit:
		return "limit reached"
	default:
		return "unknown"
	}
}

// Result is the outcome of one solver invocation.
type Result struct {
	Status      Status
	Termination Termination

	// Values holds one solved value per model component name.
	Values map[string]float64

	// Objectives holds one value per objective, in declaration order.
	Objectives []float64
}

// SolveError reports a non-normal solver exit or a non-optimal termination.
// It is only returned after a successful translation; translation failures
// surface as their own error kinds.
type SolveError struct {
	Status      Status
	Termination Termination
	Detail      string
}

func (e *SolveError) Error() string {
	msg := fmt.Sprintf("solve failed: status %s, termination %s", e.Status, e.Termination)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}
