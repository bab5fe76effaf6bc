package xpath

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/yangkit/xpath/nsctx"
)

// nodeTestMatch reports whether a single XML node passes a step's node test.
//
// A QName test matches when local names are equal and the namespaces agree.
// With a namespace context the node's namespace URI and the test prefix are
// both resolved through it and must agree (both absent also matches); without
// one, the raw prefix strings are compared, the weaker pre-YANG behavior.
// node() matches any node; so does text(), a known limitation kept from the
// original behavior.
func nodeTestMatch(x *etree.Element, test *Tree, nsc *nsctx.Context) (bool, error) {
	switch test.Kind {
	case KindNameTest:
		return nameTestMatch(x, test, nsc)
	case KindNodeFunc:
		switch test.S0 {
		case "node", "text":
			return true, nil
		}

		return false, nil
	default:
		// no match is the default, not an error
		return false, nil
	}
}

func nameTestMatch(x *etree.Element, test *Tree, nsc *nsctx.Context) (bool, error) {
	if test.S1 == "" {
		return false, fmt.Errorf("%w: name test without local name", ErrMalformedTree)
	}

	if test.S1 == "*" {
		return true, nil
	}

	// cheap reject on local name before touching namespaces
	if x.Tag != test.S1 {
		return false, nil
	}

	if nsc != nil {
		// strict mode: both sides resolve to namespace URIs
		nsXML := x.NamespaceURI()
		nsTest, bound := nsc.Get(test.S0)

		if nsXML != "" && bound && nsTest != "" {
			return nsXML == nsTest, nil
		}

		return nsXML == "" && (!bound || nsTest == ""), nil
	}

	// legacy mode: literal prefix comparison, both-absent matches
	return x.Space == test.S0, nil
}

// collectDescendants walks the element children of xn depth-first in
// pre-order, appending every descendant that passes the node test to vec.
// A match does not prune its subtree; matching descendants at all depths
// are collected.
func collectDescendants(xn *etree.Element, nodetest *Tree, nsc *nsctx.Context, vec []*etree.Element) ([]*etree.Element, error) {
	for _, sub := range xn.ChildElements() {
		ok, err := nodeTestMatch(sub, nodetest, nsc)
		if err != nil {
			return nil, err
		}

		if ok {
			vec = append(vec, sub)
		}

		vec, err = collectDescendants(sub, nodetest, nsc, vec)
		if err != nil {
			return nil, err
		}
	}

	return vec, nil
}
