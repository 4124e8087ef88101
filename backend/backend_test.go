package backend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolveErrorMessage(t *testing.T) {
	assert := require.New(t)

	e := &SolveError{Status: StatusError, Termination: TerminationInfeasible}
	assert.Equal("solve failed: status error, termination infeasible", e.Error())

	e.Detail = "presolve determined the problem infeasible"
	assert.Equal("solve failed: status error, termination infeasible: presolve determined the problem infeasible", e.Error())
}

func TestStatusStrings(t *testing.T) {
	assert := require.New(t)
	assert.Equal("ok", StatusOK.String())
	assert.Equal("aborted", StatusAborted.String())
	assert.Equal("unknown", Status(200).String())
	assert.Equal("optimal", TerminationOptimal.String())
	assert.Equal("limit reached", TerminationLimit.String())
	assert.Equal("unknown", Termination(200).String())
}
