package xpath

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/yangkit/xpath/nsctx"
)

// evalStep applies one location step (axis + node test) to a context and, if
// the step carries predicates in C1, routes the result through them.
func evalStep(xc0 *Context, xs *Tree, nsc *nsctx.Context) (*Context, error) {
	xc := xc0.dup()
	nodetest := xs.C0

	var (
		vec []*etree.Element
		err error
	)

	switch xs.Axis {
	case AxisChild:
		switch {
		case xc.Descendant:
			// a pending // abbreviation turns this child step into a
			// descendant search; the flag is consumed here
			for _, xv := range xc.Nodeset {
				vec, err = collectDescendants(xv, nodetest, nsc, vec)
				if err != nil {
					return nil, err
				}
			}

			xc.Descendant = false
			xc.Nodeset = vec
		case nodetest != nil && nodetest.Kind == KindNodeFunc && nodetest.S0 == "current":
			// current() restores the initial node-set of the whole
			// evaluation; it is not a real tree step
			vec = append(vec, xc.Initial...)
			xc.Nodeset = vec
		default:
			for _, xv := range xc.Nodeset {
				for _, x := range xv.ChildElements() {
					if nodetest != nil {
						ok, err := nodeTestMatch(x, nodetest, nsc)
						if err != nil {
							return nil, err
						}

						if !ok {
							continue
						}
					}

					vec = append(vec, x)
				}
			}

			xc.Nodeset = vec
		}
	case AxisDescendant, AxisDescendantOrSelf:
		// -or-self does not add the context node itself; kept as-is
		for _, xv := range xc.Nodeset {
			vec, err = collectDescendants(xv, nodetest, nsc, vec)
			if err != nil {
				return nil, err
			}
		}

		xc.Nodeset = vec
	case AxisParent:
		// root nodes have no parent and drop out silently
		old := xc.Nodeset
		xc.Nodeset = nil

		for _, x := range old {
			if xp := x.Parent(); xp != nil {
				xc.Nodeset = append(xc.Nodeset, xp)
			}
		}
	case AxisSelf, AxisAncestor, AxisAncestorOrSelf, AxisAttribute,
		AxisNamespace, AxisFollowing, AxisFollowingSibling,
		AxisPreceding, AxisPrecedingSibling:
		// recognized axes with no implemented traversal: the node-set
		// passes through unmodified
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAxis, int(xs.Axis))
	}

	if xs.C1 != nil {
		return eval(xc, xs.C1, nsc)
	}

	return xc, nil
}
