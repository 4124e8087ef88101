package graph_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amplet/amplet/backend/graph"
	"github.com/amplet/amplet/expr"
	"github.com/amplet/amplet/model"
)

func ptr(v float64) *float64 { return &v }

func TestParameterAttachesConstantsAsParams(t *testing.T) {
	assert := require.New(t)

	gm := graph.NewModel("m1")
	assert.NoError(gm.Parameter(&model.Symbol{Name: "c", Kind: model.KindConstant, Value: ptr(3)}))

	c, ok := gm.Find("c")
	assert.True(ok)
	p, ok := c.(*graph.Param)
	assert.True(ok)
	assert.Equal(3.0, p.Value)
	assert.Empty(gm.Vars())
}

func TestParameterAttachesNonConstantsAsVars(t *testing.T) {
	assert := require.New(t)

	gm := graph.NewModel("m1")
	assert.NoError(gm.Parameter(&model.Symbol{Name: "p", Kind: model.KindParameter, Value: ptr(2)}))

	c, ok := gm.Find("p")
	assert.True(ok)
	v, ok := c.(*graph.Var)
	assert.True(ok)
	val, ok := v.Value()
	assert.True(ok)
	assert.Equal(2.0, val)
	assert.Len(gm.Vars(), 1)
}

func TestAttachRejectsDuplicateNames(t *testing.T) {
	assert := require.New(t)

	gm := graph.NewModel("m1")
	assert.NoError(gm.Variable(&model.Symbol{Name: "x", Kind: model.KindVariable}))
	err := gm.Parameter(&model.Symbol{Name: "x", Kind: model.KindConstant})
	assert.ErrorIs(err, graph.ErrDuplicateName)

	err = gm.Constraint("x", expr.Lit(1))
	assert.ErrorIs(err, graph.ErrDuplicateName)
}

func TestConstraintRejectsUnattachedSymbols(t *testing.T) {
	assert := require.New(t)

	gm := graph.NewModel("m1")
	q := expr.Sym(&model.Symbol{Name: "q", Kind: model.KindVariable})
	err := gm.Constraint("constraint1", expr.Bin(expr.OpGeq, q, expr.Lit(5)))
	assert.ErrorIs(err, expr.ErrUnresolvedSymbol)
}

func TestConstraintBindsAndEvaluates(t *testing.T) {
	assert := require.New(t)

	gm := graph.NewModel("m1")
	assert.NoError(gm.Parameter(&model.Symbol{Name: "c", Kind: model.KindConstant, Value: ptr(2)}))
	xs := &model.Symbol{Name: "x", Kind: model.KindVariable}
	assert.NoError(gm.Variable(xs))

	// x*c >= 5
	tree := expr.Bin(expr.OpGeq,
		expr.Bin(expr.OpMul, expr.Sym(xs), expr.Sym(&model.Symbol{Name: "c"})),
		expr.Lit(5))
	assert.NoError(gm.Constraint("constraint1", tree))
	assert.Len(gm.Constraints(), 1)

	root := gm.Constraints()[0].Expr

	_, err := graph.Eval(root)
	assert.ErrorIs(err, graph.ErrUnsetVariable)

	gm.Vars()[0].SetValue(3)
	v, err := graph.Eval(root)
	assert.NoError(err)
	assert.Equal(1.0, v) // 6 >= 5 holds

	gm.Vars()[0].SetValue(2)
	v, err = graph.Eval(root)
	assert.NoError(err)
	assert.Equal(0.0, v)
}

func TestEvalCallsAndConditionals(t *testing.T) {
	assert := require.New(t)

	gm := graph.NewModel("m1")
	xs := &model.Symbol{Name: "x", Kind: model.KindVariable}
	assert.NoError(gm.Variable(xs))
	gm.Vars()[0].SetValue(-3)

	sign := expr.If(expr.Bin(expr.OpGeq, expr.Sym(xs), expr.Lit(0)), expr.Lit(1), expr.Lit(-1))
	assert.NoError(gm.Constraint("c1", expr.Fn("abs", expr.Sym(xs))))
	assert.NoError(gm.Constraint("c2", sign))
	assert.NoError(gm.Constraint("c3", expr.Fn("max", expr.Sym(xs), expr.Lit(1))))

	for i, want := range []float64{3, -1, 1} {
		v, err := graph.Eval(gm.Constraints()[i].Expr)
		assert.NoError(err)
		assert.Equal(want, v)
	}
}

func TestEvalUnknownFunction(t *testing.T) {
	assert := require.New(t)

	gm := graph.NewModel("m1")
	assert.NoError(gm.Constraint("c1", expr.Fn("frobnicate", expr.Lit(1))))
	_, err := graph.Eval(gm.Constraints()[0].Expr)
	assert.Error(err)
}

func buildModel(t *testing.T) *graph.Model {
	t.Helper()
	assert := require.New(t)

	gm := graph.NewModel("m1")
	assert.NoError(gm.Parameter(&model.Symbol{Name: "c", Kind: model.KindConstant, Value: ptr(2)}))
	xs := &model.Symbol{Name: "int_x", Kind: model.KindVariable, Lower: ptr(0), Upper: ptr(10)}
	ys := &model.Symbol{Name: "y", Kind: model.KindVariable, Value: ptr(1)}
	assert.NoError(gm.Variable(xs))
	assert.NoError(gm.Variable(ys))

	assert.NoError(gm.Constraint("constraint1",
		expr.Bin(expr.OpEq, expr.Sym(ys),
			expr.Bin(expr.OpMul, expr.Sym(&model.Symbol{Name: "c"}), expr.Fn("abs", expr.Sym(xs))))))
	assert.NoError(gm.Constraint("constraint2",
		expr.Bin(expr.OpGeq, expr.Sym(xs), &expr.Unary{Op: expr.OpSub, X: expr.Lit(1)})))
	assert.NoError(gm.Objective(model.Minimize, "objective1", expr.Sym(ys)))
	assert.NoError(gm.Objective(model.Maximize, "objective2",
		expr.If(expr.Bin(expr.OpGt, expr.Sym(xs), expr.Lit(0)), expr.Sym(ys), expr.Lit(0))))
	return gm
}

func TestSerializationRoundTrip(t *testing.T) {
	assert := require.New(t)

	gm := buildModel(t)
	var buf bytes.Buffer
	written, err := gm.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(buf.Len()), written)

	var back graph.Model
	read, err := back.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(err)
	assert.Equal(written, read)

	assert.Equal(gm.Name(), back.Name())
	assert.Equal(gm.Components(), back.Components())

	x, ok := back.Find("int_x")
	assert.True(ok)
	xv := x.(*graph.Var)
	assert.True(xv.Integer)
	assert.Equal(0.0, *xv.Lower)
	assert.Equal(10.0, *xv.Upper)

	// expressions survive structurally: both sides evaluate identically
	gm.Vars()[0].SetValue(-4)
	back.Vars()[0].SetValue(-4)
	for i := range gm.Constraints() {
		want, err := graph.Eval(gm.Constraints()[i].Expr)
		assert.NoError(err)
		got, err := graph.Eval(back.Constraints()[i].Expr)
		assert.NoError(err)
		assert.Equal(want, got, gm.Constraints()[i].Name())
	}
	assert.Len(back.Objectives(), 2)
	assert.Equal(model.Maximize, back.Objectives()[1].Sense)

	// rebound references point at the new model's components, not the old
	back.Vars()[1].SetValue(8)
	v, err := graph.Eval(back.Objectives()[0].Expr)
	assert.NoError(err)
	assert.Equal(8.0, v)
}

func TestReadFromTruncatedInput(t *testing.T) {
	assert := require.New(t)

	gm := buildModel(t)
	var buf bytes.Buffer
	_, err := gm.WriteTo(&buf)
	assert.NoError(err)

	var back graph.Model
	_, err = back.ReadFrom(bytes.NewReader(buf.Bytes()[:buf.Len()-1]))
	assert.Error(err)

	_, err = back.ReadFrom(bytes.NewReader(buf.Bytes()[:10]))
	assert.Error(err)
}
