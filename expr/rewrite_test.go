package expr

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestRewriteRelaxesStrictInequalities(t *testing.T) {
	assert := require.New(t)

	cases := map[string]string{
		"x>5":       "x>=5",
		"x<5":       "x<=5",
		"x>=5":      "x>=5",
		"x<=5":      "x<=5",
		"a>b<c":     "a>=b<=c",
		"x>":        "x>=",
		"(a+b)>3.5": "(a+b)>=3.5",
	}
	for in, want := range cases {
		got, err := Rewrite(in)
		assert.NoError(err, in)
		assert.Equal(want, got, in)

		// re-rewriting a rewritten equation is a no-op
		again, err := Rewrite(got)
		assert.NoError(err, got)
		assert.Equal(got, again, got)
	}
}

func TestRelaxInequalitiesIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000

	properties := gopter.NewProperties(parameters)
	properties.Property("relax(relax(s)) == relax(s)", prop.ForAll(
		func(s string) bool {
			once := relaxInequalities(s)
			return relaxInequalities(once) == once
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRewriteExpandsSigmoid(t *testing.T) {
	assert := require.New(t)

	cases := map[string]string{
		"sigmd(x)":           "(1/(1+exp(-x)))",
		"y=sigmd(x)":         "y=(1/(1+exp(-x)))",
		"sigmd((a+b)*(c-d))": "(1/(1+exp(-(a+b)*(c-d))))",
		"sigmd(sigmd(x))":    "(1/(1+exp(-(1/(1+exp(-x))))))",
		"sigmd(a)+sigmd(b)":  "(1/(1+exp(-a)))+(1/(1+exp(-b)))",
	}
	for in, want := range cases {
		got, err := Rewrite(in)
		assert.NoError(err, in)
		assert.Equal(want, got, in)
	}

	_, err := Rewrite("y=sigmd(x")
	assert.ErrorIs(err, ErrMalformedExpression)

	_, err = Rewrite("y=sigmd x")
	assert.ErrorIs(err, ErrMalformedExpression)
}

func TestRewriteCollapsesSigns(t *testing.T) {
	assert := require.New(t)

	cases := map[string]string{
		"a++b": "a+b",
		"a--b": "a+b",
		"a+-b": "a-b",
		"a-+b": "a-b",
		// single pass only: a triple run is not fully collapsed
		"a+--b": "a++b",
	}
	for in, want := range cases {
		got, err := Rewrite(in)
		assert.NoError(err, in)
		assert.Equal(want, got, in)
	}
}

func TestRewriteRejectsDifferentialEquations(t *testing.T) {
	assert := require.New(t)

	for _, eq := range []string{
		"$x=-k*x",
		"y=$x+1",
		"$",
	} {
		_, err := Rewrite(eq)
		assert.ErrorIs(err, ErrUnsupportedFeature, eq)
	}
}
