package expr

import "errors"

var (
	// ErrUnsupportedFeature is returned when an equation uses a construct
	// that has no translation, such as a differential-equation marker.
	ErrUnsupportedFeature = errors.New("unsupported model feature")

	// ErrMalformedExpression is returned on unbalanced grouping or an
	// expression that violates the single-operator-per-group grammar.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrUnresolvedSymbol is returned when an identifier is neither a
	// declared symbol nor a numeric literal.
	ErrUnresolvedSymbol = errors.New("unresolved symbol")
)
