package xpath

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind identifies an expression tree node production.
type Kind int

const (
	// KindExpr is a generic wrapper (parenthesized sub-expression).
	KindExpr Kind = iota
	// KindLogical combines two operands with and/or.
	KindLogical
	// KindRelational combines two operands with = != < <= > >=.
	KindRelational
	// KindAdditive combines two operands with + - * div mod.
	KindAdditive
	// KindUnion concatenates two node-sets with |.
	KindUnion
	// KindAbsPath is an absolute location path rooted at the document top.
	KindAbsPath
	// KindRelPath chains location path segments (C0 = step, C1 = rest).
	KindRelPath
	// KindStep is one location step: C0 = node test, C1 = predicate chain.
	KindStep
	// KindPredicate filters a node-set: C0 = previous predicates, C1 = expression.
	KindPredicate
	// KindNameTest is a name test: S0 = prefix, S1 = local name or "*".
	KindNameTest
	// KindNodeFunc is a function-style node test: S0 = node, text or current.
	KindNodeFunc
	// KindNumber is a numeric literal carried in Double.
	KindNumber
	// KindString is a string literal carried in S0.
	KindString
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindExpr:
		return "expr"
	case KindLogical:
		return "logical"
	case KindRelational:
		return "relational"
	case KindAdditive:
		return "additive"
	case KindUnion:
		return "union"
	case KindAbsPath:
		return "abspath"
	case KindRelPath:
		return "relpath"
	case KindStep:
		return "step"
	case KindPredicate:
		return "predicate"
	case KindNameTest:
		return "nametest"
	case KindNodeFunc:
		return "nodefn"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Axis identifies the tree navigation direction of a location step.
type Axis int

// Axes of the XPath 1.0 data model. Only child, parent, descendant and
// descendant-or-self have an implemented traversal; the rest are recognized
// no-ops kept for tree compatibility.
const (
	AxisChild Axis = iota
	AxisParent
	AxisDescendant
	AxisDescendantOrSelf
	AxisSelf
	AxisAncestor
	AxisAncestorOrSelf
	AxisAttribute
	AxisNamespace
	AxisFollowing
	AxisFollowingSibling
	AxisPreceding
	AxisPrecedingSibling
)

var axisNames = map[Axis]string{
	AxisChild:            "child",
	AxisParent:           "parent",
	AxisDescendant:       "descendant",
	AxisDescendantOrSelf: "descendant-or-self",
	AxisSelf:             "self",
	AxisAncestor:         "ancestor",
	AxisAncestorOrSelf:   "ancestor-or-self",
	AxisAttribute:        "attribute",
	AxisNamespace:        "namespace",
	AxisFollowing:        "following",
	AxisFollowingSibling: "following-sibling",
	AxisPreceding:        "preceding",
	AxisPrecedingSibling: "preceding-sibling",
}

// String returns the axis name as written in an expression
func (a Axis) String() string {
	if s, ok := axisNames[a]; ok {
		return s
	}

	return fmt.Sprintf("axis(%d)", int(a))
}

// AxisFromName maps an axis name to its Axis value.
func AxisFromName(name string) (Axis, bool) {
	for a, s := range axisNames {
		if s == name {
			return a, true
		}
	}

	return 0, false
}

// Op identifies a binary operator.
type Op int

// Binary operators, closed set.
const (
	OpAnd Op = iota
	OpOr
	OpDiv
	OpMod
	OpAdd
	OpMult
	OpSub
	OpEq
	OpNe
	OpGe
	OpLe
	OpLt
	OpGt
	OpUnion
)

// opNames is the bidirectional operator string mapping used in expressions
// and diagnostics.
var opNames = []struct {
	op Op
	s  string
}{
	{OpAnd, "and"},
	{OpOr, "or"},
	{OpDiv, "div"},
	{OpMod, "mod"},
	{OpAdd, "+"},
	{OpMult, "*"},
	{OpSub, "-"},
	{OpEq, "="},
	{OpNe, "!="},
	{OpGe, ">="},
	{OpLe, "<="},
	{OpLt, "<"},
	{OpGt, ">"},
	{OpUnion, "|"},
}

// String returns the operator as written in an expression
func (o Op) String() string {
	for _, e := range opNames {
		if e.op == o {
			return e.s
		}
	}

	return fmt.Sprintf("op(%d)", int(o))
}

// OpFromString maps an operator string to its Op value.
func OpFromString(s string) (Op, bool) {
	for _, e := range opNames {
		if e.s == s {
			return e.op, true
		}
	}

	return 0, false
}

// Tree is one node of a parsed XPath expression. Trees are produced once by
// the parser (or built directly by callers) and never mutated during
// evaluation. At most two children are owned; payload fields are meaningful
// per Kind as documented on the Kind constants.
type Tree struct {
	Kind   Kind
	C0     *Tree
	C1     *Tree
	Axis   Axis    // KindStep; KindAbsPath/KindRelPath carry AxisDescendantOrSelf for //
	Op     Op      // KindLogical, KindRelational, KindAdditive, KindUnion
	S0     string  // prefix, function name or string literal
	S1     string  // local name of a name test
	Double float64 // KindNumber literal value
}

// Dump writes an indented rendering of the tree, one node per line.
func (t *Tree) Dump(w io.Writer) {
	t.dump(w, 0)
}

func (t *Tree) dump(w io.Writer, depth int) {
	if t == nil {
		return
	}

	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s%s\n", indent, t.Kind, t.payload())
	t.C0.dump(w, depth+1)
	t.C1.dump(w, depth+1)
}

func (t *Tree) payload() string {
	switch t.Kind {
	case KindLogical, KindRelational, KindAdditive, KindUnion:
		return " " + t.Op.String()
	case KindStep:
		return " " + t.Axis.String()
	case KindAbsPath, KindRelPath:
		if t.Axis == AxisDescendantOrSelf {
			return " //"
		}

		return ""
	case KindNameTest:
		if t.S0 != "" {
			return " " + t.S0 + ":" + t.S1
		}

		return " " + t.S1
	case KindNodeFunc:
		return " " + t.S0 + "()"
	case KindNumber:
		return " " + strconv.FormatFloat(t.Double, 'g', -1, 64)
	case KindString:
		return " " + strconv.Quote(t.S0)
	default:
		return ""
	}
}
