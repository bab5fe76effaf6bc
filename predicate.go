package xpath

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/yangkit/xpath/nsctx"
)

// evalPredicate filters a node-set by a predicate expression with the XPath
// proximity-position rule: each node is evaluated as a singleton context,
// a numeric result selects by position and anything else coerces to boolean.
// C0 holds the earlier predicates of the same step; C1 holds this
// predicate's expression.
func evalPredicate(xc *Context, xs *Tree, nsc *nsctx.Context) (*Context, error) {
	var (
		xr0 *Context
		err error
	)

	if xs.C0 == nil {
		xr0 = xc.dup()
	} else {
		xr0, err = eval(xc, xs.C0, nsc)
		if err != nil {
			return nil, err
		}
	}

	if xs.C1 == nil {
		return xr0, nil
	}

	if xr0.Type != CtxNodeset {
		return nil, fmt.Errorf("%w: predicate applied to %s", ErrMalformedTree, xr0.Type)
	}

	xr1 := &Context{
		Type:    CtxNodeset,
		Node:    xc.Node,
		Initial: xc.Initial,
	}

	for i, x := range xr0.Nodeset {
		// each node becomes context node and sole node-set member
		xcc := &Context{
			Type:    CtxNodeset,
			Node:    x,
			Initial: xc.Initial,
			Nodeset: []*etree.Element{x},
		}

		xrc, err := eval(xcc, xs.C1, nsc)
		if err != nil {
			return nil, err
		}

		if xrc.Type == CtxNumber {
			// foo[n] selects by position, compared as an integer cast
			if int(xrc.Number) == i {
				xr1.Nodeset = append(xr1.Nodeset, x)
			}
		} else if xrc.ToBool() {
			xr1.Nodeset = append(xr1.Nodeset, x)
		}
	}

	return xr1, nil
}
