package test

import (
	"testing"

	"github.com/amplet/amplet/expr"
	"github.com/amplet/amplet/model"
	"github.com/amplet/amplet/translate"
)

func TestAssertStatements(t *testing.T) {
	assert := NewAssert(t)

	m := model.New("m1")
	m.Var("x", model.WithBounds(0, 10))
	m.Equation("x>5")
	m.Minimize("x")

	assert.Statements(m,
		"var x >= 0 <= 10;",
		"subject to constraint1: x>=5;",
		"minimize objective1:x;",
	)
}

func TestAssertTranslateFailed(t *testing.T) {
	assert := NewAssert(t)

	assert.Run(func(assert *Assert) {
		m := model.New("m1")
		m.Var("x")
		m.Equation("$x=2")
		assert.TranslateFailed(m, expr.ErrUnsupportedFeature)
	}, "differential")

	assert.Run(func(assert *Assert) {
		m := model.New("m1")
		m.Object("f_1 = foo(1)")
		assert.TranslateFailed(m, translate.ErrUnsupportedOperation)
	}, "unknown object")
}
