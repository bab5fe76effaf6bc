package xpath

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// CtxType is the variant tag of an evaluation context value.
type CtxType int

// Context value variants.
const (
	CtxNodeset CtxType = iota
	CtxBool
	CtxNumber
	CtxString
)

// String returns the string representation of CtxType
func (t CtxType) String() string {
	switch t {
	case CtxNodeset:
		return "nodeset"
	case CtxBool:
		return "bool"
	case CtxNumber:
		return "number"
	case CtxString:
		return "string"
	default:
		return "unknown"
	}
}

// Context is the working value threaded through evaluation: one of the four
// XPath value variants plus evaluation-scoped bookkeeping. Exactly one value
// field is meaningful per Type. Nodeset entries are references into the
// caller's XML tree, never copies.
type Context struct {
	Type    CtxType
	Nodeset []*etree.Element
	Bool    bool
	Number  float64
	String  string

	// Node is the current context node used by step evaluation.
	Node *etree.Element

	// Initial is the node-set the whole evaluation started from, preserved
	// across every recursive call so current() can restore it.
	Initial []*etree.Element

	// Descendant marks that the next child-axis step must search all
	// descendants (the // abbreviation). Consumed by exactly one step.
	Descendant bool
}

// NewContext creates the initial evaluation context for node: a singleton
// node-set with node as both context node and initial node-set.
func NewContext(node *etree.Element) *Context {
	return &Context{
		Type:    CtxNodeset,
		Nodeset: []*etree.Element{node},
		Node:    node,
		Initial: []*etree.Element{node},
	}
}

// dup copies the context, cloning the node-set slice but borrowing the same
// tree nodes.
func (c *Context) dup() *Context {
	d := &Context{
		Type:       c.Type,
		Bool:       c.Bool,
		Number:     c.Number,
		String:     c.String,
		Node:       c.Node,
		Initial:    c.Initial,
		Descendant: c.Descendant,
	}
	if c.Nodeset != nil {
		d.Nodeset = make([]*etree.Element, len(c.Nodeset))
		copy(d.Nodeset, c.Nodeset)
	}

	return d
}

// ToBool coerces the context value to a boolean using the XPath rules:
// a node-set is true iff non-empty, a number is true iff non-zero and not
// NaN, a string is true iff non-empty.
func (c *Context) ToBool() bool {
	switch c.Type {
	case CtxNodeset:
		return len(c.Nodeset) > 0
	case CtxBool:
		return c.Bool
	case CtxNumber:
		return c.Number != 0 && !math.IsNaN(c.Number)
	case CtxString:
		return c.String != ""
	default:
		return false
	}
}

// ToNumber coerces the context value to a float64 using the XPath rules:
// a node-set converts through the string-value of its first node, strings
// parse as floating point, booleans convert to 1 or 0. Unparsable or empty
// input yields NaN.
func (c *Context) ToNumber() float64 {
	switch c.Type {
	case CtxNodeset:
		if len(c.Nodeset) == 0 {
			return math.NaN()
		}

		s, ok := body(c.Nodeset[0])
		if !ok {
			return math.NaN()
		}

		return parseNumber(s)
	case CtxBool:
		if c.Bool {
			return 1
		}

		return 0
	case CtxNumber:
		return c.Number
	case CtxString:
		return parseNumber(c.String)
	default:
		return math.NaN()
	}
}

func parseNumber(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}

	return n
}

// body returns the string-value of a node: the text immediately contained in
// the element. The second result reports whether the node has a text body at
// all, which relational comparisons distinguish from an empty one.
func body(el *etree.Element) (string, bool) {
	for _, child := range el.Child {
		if _, ok := child.(*etree.CharData); ok {
			return el.Text(), true
		}
	}

	return "", false
}

// ToString coerces the context value to a string: the string-value of the
// first node for a node-set, "true"/"false" for booleans, the shortest
// decimal rendering for numbers.
func (c *Context) ToString() string {
	switch c.Type {
	case CtxNodeset:
		if len(c.Nodeset) == 0 {
			return ""
		}

		s, _ := body(c.Nodeset[0])

		return s
	case CtxBool:
		return strconv.FormatBool(c.Bool)
	case CtxNumber:
		return strconv.FormatFloat(c.Number, 'g', -1, 64)
	case CtxString:
		return c.String
	default:
		return ""
	}
}

// Format writes a one-line human-readable rendering of the context,
// prefixed by label. Used by the evaluation trace and the CLI.
func (c *Context) Format(w io.Writer, label string) {
	if c == nil {
		fmt.Fprintf(w, "%s: <nil>\n", label)
		return
	}

	switch c.Type {
	case CtxNodeset:
		names := make([]string, len(c.Nodeset))
		for i, el := range c.Nodeset {
			names[i] = el.FullTag()
		}

		fmt.Fprintf(w, "%s: nodeset[%d]: %s\n", label, len(c.Nodeset), strings.Join(names, " "))
	case CtxBool:
		fmt.Fprintf(w, "%s: bool: %v\n", label, c.Bool)
	case CtxNumber:
		fmt.Fprintf(w, "%s: number: %s\n", label, strconv.FormatFloat(c.Number, 'g', -1, 64))
	case CtxString:
		fmt.Fprintf(w, "%s: string: %q\n", label, c.String)
	}
}
