package expr

import (
	"fmt"
	"strings"
)

// differentialMarker flags a differential equation in upstream equation text.
const differentialMarker = "$"

const sigmoid = "sigmd"

// Rewrite normalizes raw equation or objective text before parsing.
// In fixed order it rejects differential equations, relaxes strict
// inequalities to their non-strict form, expands sigmoid calls into their
// closed form and collapses adjacent sign operators.
//
// The inequality relaxation and the sign collapse are purely textual. The
// sign collapse is a single pass: a triple run such as "a+--b" is not fully
// collapsed. Both quirks are preserved deliberately; downstream consumers
// rely on the exact historical behavior.
func Rewrite(equation string) (string, error) {
	if strings.Contains(equation, differentialMarker) {
		return "", fmt.Errorf("%w: differential equations cannot be translated", ErrUnsupportedFeature)
	}

	equation = relaxInequalities(equation)

	var err error
	if equation, err = expandSigmoid(equation); err != nil {
		return "", err
	}

	return collapseSigns(equation), nil
}

// relaxInequalities inserts "=" after every ">" or "<" not already followed
// by one, turning strict comparisons into non-strict ones. Re-running it on
// its own output is a no-op.
func relaxInequalities(equation string) string {
	var sb strings.Builder
	sb.Grow(len(equation) + 2)
	for i := 0; i < len(equation); i++ {
		sb.WriteByte(equation[i])
		if equation[i] == '>' || equation[i] == '<' {
			if i+1 >= len(equation) || equation[i+1] != '=' {
				sb.WriteByte('=')
			}
		}
	}
	return sb.String()
}

// expandSigmoid replaces every sigmd(x) call with (1/(1+exp(-x))). The
// argument is located by balanced-parenthesis scanning since it may contain
// nested sub-expressions.
func expandSigmoid(equation string) (string, error) {
	for {
		start := strings.Index(equation, sigmoid)
		if start < 0 {
			return equation, nil
		}

		open := start + len(sigmoid)
		if open >= len(equation) || equation[open] != '(' {
			return "", fmt.Errorf("%w: %s must be called with a parenthesized argument", ErrMalformedExpression, sigmoid)
		}

		depth := 1
		end := open + 1
		for ; end < len(equation) && depth > 0; end++ {
			switch equation[end] {
			case '(':
				depth++
			case ')':
				depth--
			}
		}
		if depth != 0 {
			return "", fmt.Errorf("%w: unbalanced parentheses in %s argument", ErrMalformedExpression, sigmoid)
		}

		arg := equation[open+1 : end-1]
		equation = equation[:start] + "(1/(1+exp(-" + arg + ")))" + equation[end:]
	}
}

// collapseSigns folds adjacent sign operators pair-wise. The replacement
// order matches the historical behavior and is not iterated.
func collapseSigns(equation string) string {
	equation = strings.ReplaceAll(equation, "++", "+")
	equation = strings.ReplaceAll(equation, "--", "+")
	equation = strings.ReplaceAll(equation, "+-", "-")
	return strings.ReplaceAll(equation, "-+", "-")
}
