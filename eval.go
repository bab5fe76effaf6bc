package xpath

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/yangkit/xpath/nsctx"
)

// EvalTree evaluates a parsed expression tree against a context and returns
// the resulting context. The tree and the XML document are read-only inputs;
// the result is a fresh context owned by the caller.
func EvalTree(xc *Context, tree *Tree, nsc *nsctx.Context) (*Context, error) {
	if xc == nil || tree == nil {
		return nil, fmt.Errorf("%w: nil context or tree", ErrMalformedTree)
	}

	return eval(xc, tree, nsc)
}

// eval is the recursive walker: per tree node it runs a pre-action, child 0,
// a mid-action, child 1 and a post-action, all keyed on the node kind. Steps
// and predicates are terminal productions handled entirely by their own
// evaluators.
func eval(xc *Context, xs *Tree, nsc *nsctx.Context) (*Context, error) {
	if tracing() {
		trace(xc, "=>", xs.Kind)
	}

	var (
		xr0, xr1, xr2 *Context
		err           error
	)

	// Pre-actions before child 0
	switch xs.Kind {
	case KindRelPath:
		if xs.Axis == AxisDescendantOrSelf {
			xc.Descendant = true
		}
	case KindAbsPath:
		// rewind context node to the document top, node-set to it alone
		x := xc.Node
		for x.Parent() != nil {
			x = x.Parent()
		}

		xc.Node = x
		xc.Nodeset = []*etree.Element{x}

		// // is short for /descendant-or-self::node()/
		if xs.Axis == AxisDescendantOrSelf {
			xc.Descendant = true
		}
	case KindStep:
		xr, err := evalStep(xc, xs, nsc)
		if err != nil {
			return nil, err
		}

		if tracing() {
			trace(xr, "<=", xs.Kind)
		}

		return xr, nil
	case KindPredicate:
		xr, err := evalPredicate(xc, xs, nsc)
		if err != nil {
			return nil, err
		}

		if tracing() {
			trace(xr, "<=", xs.Kind)
		}

		return xr, nil
	}

	// Child 0
	if xs.C0 != nil {
		if xr0, err = eval(xc, xs.C0, nsc); err != nil {
			return nil, err
		}
	}

	// Mid-actions between the children
	useXr0 := false

	switch xs.Kind {
	case KindAbsPath:
		useXr0 = true

		// a lone / selects the element children of the document top
		if xs.C0 == nil {
			xr0 = &Context{Type: CtxNodeset, Initial: xc.Initial, Node: xc.Node}
			xr0.Nodeset = append(xr0.Nodeset, xc.Node.ChildElements()...)
		}
	case KindRelPath:
		useXr0 = true

		if xs.Axis == AxisDescendantOrSelf {
			xc.Descendant = true
		}
	case KindNumber:
		xr0 = &Context{Type: CtxNumber, Initial: xc.Initial, Node: xc.Node, Number: xs.Double}
	case KindString:
		xr0 = &Context{Type: CtxString, Initial: xc.Initial, Node: xc.Node, String: xs.S0}
	}

	// Child 1; path composition threads child 0's result into child 1
	if xs.C1 != nil {
		in := xc
		if useXr0 {
			in = xr0
		}

		if xr1, err = eval(in, xs.C1, nsc); err != nil {
			return nil, err
		}
	}

	// Post-actions combining both children
	if xs.C1 != nil {
		switch xs.Kind {
		case KindLogical:
			xr2, err = logop(xr0, xr1, xs.Op)
		case KindRelational:
			xr2, err = relop(xr0, xr1, xs.Op)
		case KindAdditive:
			xr2, err = numop(xr0, xr1, xs.Op)
		case KindUnion:
			xr2, err = unionop(xr0, xr1, xs.Op)
		}

		if err != nil {
			return nil, err
		}
	}

	xc.Descendant = false

	var xr *Context

	switch {
	case xr2 != nil:
		xr = xr2
	case xr1 != nil:
		xr = xr1
	case xr0 != nil:
		xr = xr0
	default:
		return nil, fmt.Errorf("%w: %s node produced no result", ErrMalformedTree, xs.Kind)
	}

	if tracing() {
		trace(xr, "<=", xs.Kind)
	}

	return xr, nil
}
