package xpath

import (
	"fmt"
	"math"

	"github.com/beevik/etree"
)

// logop combines two operand contexts with and/or. Both operands are
// coerced to boolean; both sides are always fully evaluated beforehand,
// so there is no short-circuiting.
func logop(xc1, xc2 *Context, op Op) (*Context, error) {
	xr := &Context{Type: CtxBool, Initial: xc1.Initial}

	b1 := xc1.ToBool()
	b2 := xc2.ToBool()

	switch op {
	case OpAnd:
		xr.Bool = b1 && b2
	case OpOr:
		xr.Bool = b1 || b2
	default:
		return nil, fmt.Errorf("%w: %s for logical expression", ErrInvalidOperator, op)
	}

	return xr, nil
}

// numop combines two operand contexts with an arithmetic operator. Operands
// are coerced to numbers; a NaN on either side makes the result NaN. mod
// truncates both operands to integer first.
func numop(xc1, xc2 *Context, op Op) (*Context, error) {
	xr := &Context{Type: CtxNumber, Initial: xc1.Initial}

	n1 := xc1.ToNumber()
	n2 := xc2.ToNumber()

	if math.IsNaN(n1) || math.IsNaN(n2) {
		xr.Number = math.NaN()
		return xr, nil
	}

	switch op {
	case OpDiv:
		xr.Number = n1 / n2
	case OpMod:
		if int(n2) == 0 {
			xr.Number = math.NaN()
		} else {
			xr.Number = float64(int(n1) % int(n2))
		}
	case OpAdd:
		xr.Number = n1 + n2
	case OpMult:
		xr.Number = n1 * n2
	case OpSub:
		xr.Number = n1 - n2
	default:
		return nil, fmt.Errorf("%w: %s for arithmetic expression", ErrInvalidOperator, op)
	}

	return xr, nil
}

// relop compares two operand contexts with the asymmetric XPath 1.0 rules:
// same-type operands compare directly (node-sets existentially over
// string-values), a node-set against a scalar compares existentially with
// the scalar's type, and two differently typed scalars are unsupported.
func relop(xc1, xc2 *Context, op Op) (*Context, error) {
	xr := &Context{Type: CtxBool, Initial: xc1.Initial}

	switch {
	case xc1.Type == xc2.Type:
		if err := relopSameType(xr, xc1, xc2, op); err != nil {
			return nil, err
		}
	case xc1.Type != CtxNodeset && xc2.Type != CtxNodeset:
		return nil, fmt.Errorf("%w: %s vs %s", ErrMixedTypeComparison, xc1.Type, xc2.Type)
	default:
		// normalize so the node-set is the first operand; reversed keeps
		// the ordering operators oriented
		reversed := false
		if xc2.Type == CtxNodeset {
			xc1, xc2 = xc2, xc1
			reversed = true
		}

		if err := relopNodeset(xr, xc1, xc2, op, reversed); err != nil {
			return nil, err
		}
	}

	return xr, nil
}

func relopSameType(xr *Context, xc1, xc2 *Context, op Op) error {
	switch xc1.Type {
	case CtxNodeset:
		// true iff some pair of string-values compares true; a node
		// without a text body makes the whole comparison false
		for _, x1 := range xc1.Nodeset {
			s1, ok := body(x1)
			if !ok {
				xr.Bool = false
				return nil
			}

			for _, x2 := range xc2.Nodeset {
				s2, ok := body(x2)
				if !ok {
					xr.Bool = false
					return nil
				}

				switch op {
				case OpEq:
					xr.Bool = s1 == s2
				case OpNe:
					xr.Bool = s1 != s2
				case OpGe:
					xr.Bool = s1 >= s2
				case OpLe:
					xr.Bool = s1 <= s2
				case OpLt:
					xr.Bool = s1 < s2
				case OpGt:
					xr.Bool = s1 > s2
				default:
					return fmt.Errorf("%w: %s for nodeset and nodeset", ErrNodesetOperator, op)
				}

				if xr.Bool {
					return nil
				}
			}
		}
	case CtxBool:
		xr.Bool = xc1.Bool == xc2.Bool
	case CtxNumber:
		xr.Bool = xc1.Number == xc2.Number
	case CtxString:
		xr.Bool = xc1.String == xc2.String
	}

	return nil
}

// relopNodeset compares a node-set (xc1) against a scalar (xc2).
func relopNodeset(xr *Context, xc1, xc2 *Context, op Op, reversed bool) error {
	switch xc2.Type {
	case CtxBool:
		b := xc1.ToBool()

		switch op {
		case OpEq:
			xr.Bool = b == xc2.Bool
		case OpNe:
			xr.Bool = b != xc2.Bool
		default:
			return fmt.Errorf("%w: %s for nodeset and bool", ErrNodesetOperator, op)
		}
	case CtxString:
		for _, x := range xc1.Nodeset {
			s1, ok := body(x)

			switch op {
			case OpEq:
				xr.Bool = ok && s1 == xc2.String
			case OpNe:
				xr.Bool = !ok || s1 != xc2.String
			default:
				return fmt.Errorf("%w: %s for nodeset and string", ErrNodesetOperator, op)
			}

			if xr.Bool {
				break
			}
		}
	case CtxNumber:
		for _, x := range xc1.Nodeset {
			n1 := math.NaN()
			if s1, ok := body(x); ok {
				n1 = parseNumber(s1)
			}

			n2 := xc2.Number

			switch op {
			case OpEq:
				xr.Bool = n1 == n2
			case OpNe:
				xr.Bool = n1 != n2
			case OpGe, OpLe, OpLt, OpGt:
				xr.Bool = cmpOrdered(n1, n2, reversed, op)
			default:
				return fmt.Errorf("%w: %s for nodeset and number", ErrNodesetOperator, op)
			}

			if xr.Bool {
				break
			}
		}
	default:
		return fmt.Errorf("%w: nodeset and %s", ErrNodesetOperator, xc2.Type)
	}

	return nil
}

func cmpOrdered(n1, n2 float64, reversed bool, op Op) bool {
	if reversed {
		n1, n2 = n2, n1
	}

	switch op {
	case OpGe:
		return n1 >= n2
	case OpLe:
		return n1 <= n2
	case OpLt:
		return n1 < n2
	case OpGt:
		return n1 > n2
	default:
		return false
	}
}

// unionop concatenates two node-set operands: first operand's nodes, then
// the second's, without de-duplication or reordering.
func unionop(xc1, xc2 *Context, op Op) (*Context, error) {
	if op != OpUnion {
		return nil, fmt.Errorf("%w: %s for union expression", ErrInvalidOperator, op)
	}

	xr := &Context{Type: CtxNodeset, Initial: xc1.Initial}

	xr.Nodeset = make([]*etree.Element, 0, len(xc1.Nodeset)+len(xc2.Nodeset))
	xr.Nodeset = append(xr.Nodeset, xc1.Nodeset...)
	xr.Nodeset = append(xr.Nodeset, xc2.Nodeset...)

	return xr, nil
}
