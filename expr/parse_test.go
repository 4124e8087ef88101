package expr_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/amplet/amplet/expr"
	"github.com/amplet/amplet/model"
)

func testModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("parse")
	m.Param("a", model.WithValue(1))
	m.Param("b", model.WithValue(2))
	m.Var("c")
	m.Var("x")
	return m
}

func ref(t *testing.T, m *model.Model, name string) *expr.Ref {
	t.Helper()
	s, ok := m.Lookup(name)
	require.True(t, ok, name)
	return expr.Sym(s)
}

func TestParse(t *testing.T) {
	assert := require.New(t)
	m := testModel(t)

	a, b, c, x := ref(t, m, "a"), ref(t, m, "b"), ref(t, m, "c"), ref(t, m, "x")

	cases := []struct {
		in   string
		want expr.Expr
	}{
		{"a", a},
		{"42", expr.Lit(42)},
		{"3.5", expr.Lit(3.5)},
		{"a+b", expr.Bin(expr.OpAdd, a, b)},
		{"a^b", expr.Bin(expr.OpPow, a, b)},
		{"(a+b)*c", expr.Bin(expr.OpMul, expr.Bin(expr.OpAdd, a, b), c)},
		{"c=(a*b)", expr.Bin(expr.OpEq, c, expr.Bin(expr.OpMul, a, b))},
		{"x>=5", expr.Bin(expr.OpGeq, x, expr.Lit(5))},
		{"x<=5", expr.Bin(expr.OpLeq, x, expr.Lit(5))},
		{"-a", &expr.Unary{Op: expr.OpSub, X: a}},
		{"-5+x", expr.Bin(expr.OpAdd, expr.Lit(-5), x)},
		{"exp(-x)", expr.Fn("exp", &expr.Unary{Op: expr.OpSub, X: x})},
		{"max(a,b)", expr.Fn("max", a, b)},
		{
			// normalized sigmoid expansion round-trips through the parser
			"(1/(1+exp(-x)))",
			expr.Bin(expr.OpDiv, expr.Lit(1),
				expr.Bin(expr.OpAdd, expr.Lit(1),
					expr.Fn("exp", &expr.Unary{Op: expr.OpSub, X: x}))),
		},
	}

	for _, tc := range cases {
		got, err := expr.Parse(tc.in, m)
		assert.NoError(err, tc.in)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	assert := require.New(t)
	m := testModel(t)

	malformed := []string{
		"",
		"(a+b",
		"a+b)",
		"a+",
		"a+b+c", // more than one operator per bracket level
		"exp(a",
		"max(a,)",
	}
	for _, in := range malformed {
		_, err := expr.Parse(in, m)
		assert.ErrorIs(err, expr.ErrMalformedExpression, in)
	}

	// non-grammar punctuation is absorbed into the identifier run and fails
	// resolution, matching the upstream contract
	unresolved := []string{"q", "a+undeclared", "exp(nope)", "a?b"}
	for _, in := range unresolved {
		_, err := expr.Parse(in, m)
		assert.ErrorIs(err, expr.ErrUnresolvedSymbol, in)
	}
}
