// Package test provides helpers to test model translations end to end.
package test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/amplet/amplet/backend/ampl"
	"github.com/amplet/amplet/backend/graph"
	amplio "github.com/amplet/amplet/io"
	"github.com/amplet/amplet/model"
	"github.com/amplet/amplet/translate"
)

// Assert is a helper to test model translations
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper embedding a testify/require object for
// convenience
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t, Assertions: require.New(t)}
}

// Run runs the test function fn as a subtest. The subtest is parametrized by
// the description strings descs.
func (a *Assert) Run(fn func(assert *Assert), descs ...string) {
	desc := strings.Join(descs, "/")
	a.t.Run(desc, func(t *testing.T) {
		assert := &Assert{t, require.New(t)}
		fn(assert)
	})
}

// Log logs using the test instance logger.
func (assert *Assert) Log(v ...interface{}) {
	assert.t.Log(v...)
}

// TranslateSucceeded translates m to both backends and fails the test on any
// error. The graph form is additionally round-tripped through its binary
// serialization.
func (assert *Assert) TranslateSucceeded(m *model.Model) (*ampl.Program, *graph.Model) {
	prog := ampl.NewProgram()
	gm := graph.NewModel(m.Name())
	assert.NoError(translate.New(m, prog, gm).Run(), "translation failed")
	assert.NoError(amplio.RoundTripCheck(gm, func() any { return new(graph.Model) }),
		"graph serialization round trip")
	return prog, gm
}

// TranslateFailed fails the test unless translating m errors with the given
// kind and emits nothing.
func (assert *Assert) TranslateFailed(m *model.Model, kind error) {
	prog := ampl.NewProgram()
	err := translate.New(m, prog).Run()
	assert.Error(err, "translation succeeded, expected failure")
	if kind != nil {
		assert.ErrorIs(err, kind)
	}
	assert.Empty(prog.Statements(), "failed translation must not emit statements")
}

// Statements translates m and checks the emitted text statements.
func (assert *Assert) Statements(m *model.Model, want ...string) {
	prog, _ := assert.TranslateSucceeded(m)
	if diff := cmp.Diff(want, prog.Statements()); diff != "" {
		assert.FailNowf("unexpected statements", "(-want +got):\n%s", diff)
	}
}
