// Package expr normalizes and parses the infix equation strings produced by
// the upstream modeling layer.
//
// The grammar is deliberately small: at every bracket level an expression is
// at most one binary operator between two operands, where an operand is a
// parenthesized sub-expression, a call such as exp(-x), or a bare
// identifier/literal run. The upstream layer guarantees this shape; the
// parser rejects anything else instead of guessing precedence.
//
// Parsing yields a backend-agnostic tagged tree. Backends only render the
// tree (to statement text or to solver objects), so the grammar lives in
// exactly one place.
package expr
