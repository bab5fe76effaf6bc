// Package xpath evaluates XPath 1.0 expressions over XML documents with
// YANG/NETCONF namespace awareness.
//
// Expressions are parsed into a Tree and evaluated by a recursive walker
// against a Context holding one of the four XPath value variants (node-set,
// boolean, number, string). Documents are etree trees; node-sets hold
// borrowed *etree.Element references. Name tests resolve namespaces through
// an optional nsctx.Context; without one, matching falls back to literal
// prefix comparison (the legacy pre-YANG mode).
//
// Typical use:
//
//	doc := etree.NewDocument()
//	doc.ReadFromString(`<a><b>1</b><b>2</b></a>`)
//	nodes, err := xpath.Vec(&doc.Element, "a/b[.='1']", nil)
package xpath

import (
	"github.com/beevik/etree"
	"github.com/yangkit/xpath/nsctx"
)

// Parse parses an XPath expression into an evaluation tree.
func Parse(expr string) (*Tree, error) {
	return parse(expr)
}

// Eval parses expr and evaluates it with node as the context node. The
// initial node-set is the singleton {node}. nsc may be nil for legacy
// prefix-comparison matching. The caller owns the returned context.
func Eval(node *etree.Element, expr string, nsc *nsctx.Context) (*Context, error) {
	tree, err := parse(expr)
	if err != nil {
		return nil, err
	}

	return eval(NewContext(node), tree, nsc)
}

// Vec evaluates expr and returns the resulting node-set. A non-nodeset
// result yields an empty slice.
func Vec(node *etree.Element, expr string, nsc *nsctx.Context) ([]*etree.Element, error) {
	xr, err := Eval(node, expr, nsc)
	if err != nil {
		return nil, err
	}

	if xr.Type != CtxNodeset {
		return nil, nil
	}

	return xr.Nodeset, nil
}

// First evaluates expr and returns the first node of the resulting
// node-set, or nil when nothing matched.
func First(node *etree.Element, expr string, nsc *nsctx.Context) (*etree.Element, error) {
	vec, err := Vec(node, expr, nsc)
	if err != nil {
		return nil, err
	}

	if len(vec) == 0 {
		return nil, nil
	}

	return vec[0], nil
}

// Bool evaluates expr and coerces the result to a boolean.
func Bool(node *etree.Element, expr string, nsc *nsctx.Context) (bool, error) {
	xr, err := Eval(node, expr, nsc)
	if err != nil {
		return false, err
	}

	return xr.ToBool(), nil
}

// Number evaluates expr and coerces the result to a number.
func Number(node *etree.Element, expr string, nsc *nsctx.Context) (float64, error) {
	xr, err := Eval(node, expr, nsc)
	if err != nil {
		return 0, err
	}

	return xr.ToNumber(), nil
}

// String evaluates expr and coerces the result to a string: the
// string-value of the first node for a node-set, the printed value
// otherwise.
func String(node *etree.Element, expr string, nsc *nsctx.Context) (string, error) {
	xr, err := Eval(node, expr, nsc)
	if err != nil {
		return "", err
	}

	return xr.ToString(), nil
}
