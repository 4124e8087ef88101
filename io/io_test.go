package io_test

import (
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/amplet/amplet/backend/graph"
	"github.com/amplet/amplet/expr"
	amplio "github.com/amplet/amplet/io"
	"github.com/amplet/amplet/model"
)

func TestValuesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "values.json")

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	properties.Property("deserialization(serialization(values)) == values", prop.ForAll(
		func(values map[string]float64) bool {
			if err := amplio.WriteValues(path, values); err != nil {
				return false
			}
			result := make(map[string]float64)
			if err := amplio.ReadValues(path, result); err != nil {
				return false
			}
			if len(result) != len(values) {
				return false
			}
			for k, v := range values {
				if result[k] != v {
					return false
				}
			}
			return true
		},
		gen.MapOf(gen.Identifier(), gen.Float64Range(-1e12, 1e12)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestReadValuesMissingFile(t *testing.T) {
	err := amplio.ReadValues(filepath.Join(t.TempDir(), "absent.json"), map[string]float64{})
	require.Error(t, err)
}

func ptr(v float64) *float64 { return &v }

func TestRoundTripCheck(t *testing.T) {
	assert := require.New(t)

	gm := graph.NewModel("m1")
	assert.NoError(gm.Parameter(&model.Symbol{Name: "c", Kind: model.KindConstant, Value: ptr(2)}))
	xs := &model.Symbol{Name: "x", Kind: model.KindVariable, Lower: ptr(0), Upper: ptr(10)}
	assert.NoError(gm.Variable(xs))
	assert.NoError(gm.Constraint("constraint1", expr.Bin(expr.OpGeq, expr.Sym(xs), expr.Lit(5))))

	assert.NoError(amplio.RoundTripCheck(gm, func() any { return new(graph.Model) }))
}
