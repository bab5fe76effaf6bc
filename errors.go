package xpath

import "errors"

// Common errors used throughout the xpath package
var (
	// ErrInvalidExpression indicates that an expression string could not be parsed.
	ErrInvalidExpression = errors.New("invalid xpath expression")

	// ErrUnknownAxis indicates the tree carries an axis value with no evaluation path.
	ErrUnknownAxis = errors.New("no such axis name")

	// ErrInvalidOperator indicates an operator evaluator was invoked with an operator outside its set.
	ErrInvalidOperator = errors.New("invalid operator in this context")

	// ErrMixedTypeComparison indicates a relational operator over two non-nodeset operands of different types.
	ErrMixedTypeComparison = errors.New("mixed types not supported in comparison")

	// ErrNodesetOperator indicates an operator unsupported for the given nodeset comparison.
	ErrNodesetOperator = errors.New("operator not supported for nodeset comparison")

	// ErrMalformedTree indicates an expression tree that violates structural invariants.
	ErrMalformedTree = errors.New("malformed expression tree")
)
