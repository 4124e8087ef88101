package model

import "strings"

// IntegerPrefix marks a symbol as integer-valued by naming convention.
// The upstream modeling layer has no explicit integrality flag; a variable
// named "int_x" is an integer variable.
const IntegerPrefix = "int_"

// Kind discriminates the declared symbol categories.
type Kind uint8

const (
	KindConstant Kind = iota
	KindParameter
	KindVariable
	KindIntermediate
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindParameter:
		return "parameter"
	case KindVariable:
		return "variable"
	case KindIntermediate:
		return "intermediate"
	default:
		return "unknown"
	}
}

// Symbol is a declared model entity. Bounds and values are optional; a nil
// pointer means "not set" and the corresponding clause is omitted from
// generated statements.
type Symbol struct {
	Name  string
	Kind  Kind
	Value *float64
	Lower *float64
	Upper *float64
}

// IsInteger reports whether the symbol is integer-valued per the naming
// convention.
func (s *Symbol) IsInteger() bool {
	return strings.HasPrefix(s.Name, IntegerPrefix)
}

// SetValue stores a solved numeric value on the symbol. It is the only
// mutation a Symbol sees after model construction.
func (s *Symbol) SetValue(v float64) {
	s.Value = &v
}

// SymbolOption configures an optional attribute on a declared symbol.
type SymbolOption func(*Symbol)

// WithValue sets the initial value.
func WithValue(v float64) SymbolOption {
	return func(s *Symbol) { s.Value = &v }
}

// WithLower sets the lower bound.
func WithLower(v float64) SymbolOption {
	return func(s *Symbol) { s.Lower = &v }
}

// WithUpper sets the upper bound.
func WithUpper(v float64) SymbolOption {
	return func(s *Symbol) { s.Upper = &v }
}

// WithBounds sets both bounds.
func WithBounds(lower, upper float64) SymbolOption {
	return func(s *Symbol) {
		s.Lower = &lower
		s.Upper = &upper
	}
}
