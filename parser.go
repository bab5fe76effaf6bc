package xpath

import (
	"fmt"
	"strconv"

	"github.com/yangkit/xpath/tokenizer"
)

// parse builds an evaluation tree from an expression string. The grammar is
// the XPath 1.0 subset the evaluator understands: location paths with
// abbreviated steps and predicates, literals, the binary operators and
// union. Operator names (and, or, div, mod) are plain names resolved from
// position, per the XPath disambiguation rule.
func parse(expr string) (*Tree, error) {
	tokens, err := tokenizer.New(expr).AllTokens()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	p := &parser{tokens: tokens}

	tree, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.peek().Type != tokenizer.EOF {
		return nil, fmt.Errorf("%w: unexpected %s at position %d",
			ErrInvalidExpression, p.peek().Type, p.peek().Position.Column)
	}

	return tree, nil
}

type parser struct {
	tokens []tokenizer.Token
	pos    int
}

func (p *parser) peek() tokenizer.Token {
	return p.tokens[p.pos]
}

func (p *parser) next() tokenizer.Token {
	t := p.tokens[p.pos]
	if t.Type != tokenizer.EOF {
		p.pos++
	}

	return t
}

func (p *parser) expect(tt tokenizer.TokenType) (tokenizer.Token, error) {
	t := p.peek()
	if t.Type != tt {
		return t, fmt.Errorf("%w: expected %s, got %s at position %d",
			ErrInvalidExpression, tt, t.Type, t.Position.Column)
	}

	return p.next(), nil
}

// atName reports whether the current token is the given bare name.
func (p *parser) atName(name string) bool {
	t := p.peek()
	return t.Type == tokenizer.NAME && t.Value == name
}

func (p *parser) parseOr() (*Tree, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.atName("or") {
		p.next()

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = &Tree{Kind: KindLogical, Op: OpOr, C0: left, C1: right}
	}

	return left, nil
}

func (p *parser) parseAnd() (*Tree, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for p.atName("and") {
		p.next()

		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}

		left = &Tree{Kind: KindLogical, Op: OpAnd, C0: left, C1: right}
	}

	return left, nil
}

func (p *parser) parseEquality() (*Tree, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}

	for {
		var op Op

		switch p.peek().Type {
		case tokenizer.EQUAL:
			op = OpEq
		case tokenizer.NOT_EQUAL:
			op = OpNe
		default:
			return left, nil
		}

		p.next()

		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}

		left = &Tree{Kind: KindRelational, Op: op, C0: left, C1: right}
	}
}

func (p *parser) parseRelational() (*Tree, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for {
		var op Op

		switch p.peek().Type {
		case tokenizer.LESS_THAN:
			op = OpLt
		case tokenizer.GREATER_THAN:
			op = OpGt
		case tokenizer.LESS_EQUAL:
			op = OpLe
		case tokenizer.GREATER_EQUAL:
			op = OpGe
		default:
			return left, nil
		}

		p.next()

		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}

		left = &Tree{Kind: KindRelational, Op: op, C0: left, C1: right}
	}
}

func (p *parser) parseAdditive() (*Tree, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		var op Op

		switch p.peek().Type {
		case tokenizer.PLUS:
			op = OpAdd
		case tokenizer.MINUS:
			op = OpSub
		default:
			return left, nil
		}

		p.next()

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = &Tree{Kind: KindAdditive, Op: op, C0: left, C1: right}
	}
}

func (p *parser) parseMultiplicative() (*Tree, error) {
	left, err := p.parseUnion()
	if err != nil {
		return nil, err
	}

	for {
		var op Op

		switch {
		case p.peek().Type == tokenizer.STAR:
			op = OpMult
		case p.atName("div"):
			op = OpDiv
		case p.atName("mod"):
			op = OpMod
		default:
			return left, nil
		}

		p.next()

		right, err := p.parseUnion()
		if err != nil {
			return nil, err
		}

		left = &Tree{Kind: KindAdditive, Op: op, C0: left, C1: right}
	}
}

func (p *parser) parseUnion() (*Tree, error) {
	left, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == tokenizer.UNION {
		p.next()

		right, err := p.parsePath()
		if err != nil {
			return nil, err
		}

		left = &Tree{Kind: KindUnion, Op: OpUnion, C0: left, C1: right}
	}

	return left, nil
}

// parsePath parses a location path or a primary expression.
func (p *parser) parsePath() (*Tree, error) {
	switch t := p.peek(); t.Type {
	case tokenizer.SLASH:
		p.next()

		abs := &Tree{Kind: KindAbsPath}

		if p.startsStep() {
			c0, err := p.parseRelativePath()
			if err != nil {
				return nil, err
			}

			abs.C0 = c0
		}

		return abs, nil
	case tokenizer.DOUBLE_SLASH:
		p.next()

		c0, err := p.parseRelativePath()
		if err != nil {
			return nil, err
		}

		return &Tree{Kind: KindAbsPath, Axis: AxisDescendantOrSelf, C0: c0}, nil
	case tokenizer.NAME, tokenizer.STAR, tokenizer.AT, tokenizer.DOT, tokenizer.DOUBLE_DOT:
		return p.parseRelativePath()
	case tokenizer.NUMBER:
		p.next()

		n, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrInvalidExpression, t.Value)
		}

		return &Tree{Kind: KindNumber, Double: n}, nil
	case tokenizer.QUOTE:
		p.next()
		return &Tree{Kind: KindString, S0: t.Value}, nil
	case tokenizer.LPAREN:
		p.next()

		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokenizer.RPAREN); err != nil {
			return nil, err
		}

		return &Tree{Kind: KindExpr, C0: inner}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %s at position %d",
			ErrInvalidExpression, t.Type, t.Position.Column)
	}
}

func (p *parser) startsStep() bool {
	switch p.peek().Type {
	case tokenizer.NAME, tokenizer.STAR, tokenizer.AT, tokenizer.DOT, tokenizer.DOUBLE_DOT:
		return true
	default:
		return false
	}
}

// parseRelativePath parses step (/ or // step)*. Segments nest to the right
// so that // marks the path node whose first step must descendant-search.
func (p *parser) parseRelativePath() (*Tree, error) {
	step, err := p.parseStep()
	if err != nil {
		return nil, err
	}

	sep := p.peek().Type
	if sep != tokenizer.SLASH && sep != tokenizer.DOUBLE_SLASH {
		return step, nil
	}

	p.next()

	rest, err := p.parseRelativePath()
	if err != nil {
		return nil, err
	}

	if sep == tokenizer.DOUBLE_SLASH {
		if rest.Kind != KindRelPath {
			rest = &Tree{Kind: KindRelPath, C0: rest}
		}

		rest.Axis = AxisDescendantOrSelf
	}

	return &Tree{Kind: KindRelPath, C0: step, C1: rest}, nil
}

// parseStep parses one location step with its predicates.
func (p *parser) parseStep() (*Tree, error) {
	step := &Tree{Kind: KindStep, Axis: AxisChild}

	switch p.peek().Type {
	case tokenizer.DOT:
		p.next()
		step.Axis = AxisSelf
	case tokenizer.DOUBLE_DOT:
		p.next()
		step.Axis = AxisParent
	case tokenizer.AT:
		p.next()
		step.Axis = AxisAttribute

		test, err := p.parseNodeTest()
		if err != nil {
			return nil, err
		}

		step.C0 = test
	default:
		// explicit axis specifier
		if p.peek().Type == tokenizer.NAME && p.peekAhead(1).Type == tokenizer.DOUBLE_COLON {
			axis, ok := AxisFromName(p.peek().Value)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, p.peek().Value)
			}

			p.next()
			p.next()
			step.Axis = axis
		}

		test, err := p.parseNodeTest()
		if err != nil {
			return nil, err
		}

		step.C0 = test
	}

	preds, err := p.parsePredicates()
	if err != nil {
		return nil, err
	}

	step.C1 = preds

	return step, nil
}

func (p *parser) peekAhead(offset int) tokenizer.Token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}

	return p.tokens[p.pos+offset]
}

// parseNodeTest parses *, name, prefix:name, prefix:* or fn().
func (p *parser) parseNodeTest() (*Tree, error) {
	switch t := p.peek(); t.Type {
	case tokenizer.STAR:
		p.next()
		return &Tree{Kind: KindNameTest, S1: "*"}, nil
	case tokenizer.NAME:
		p.next()

		switch p.peek().Type {
		case tokenizer.LPAREN:
			p.next()

			if _, err := p.expect(tokenizer.RPAREN); err != nil {
				return nil, err
			}

			switch t.Value {
			case "node", "text", "current":
				return &Tree{Kind: KindNodeFunc, S0: t.Value}, nil
			default:
				return nil, fmt.Errorf("%w: unsupported function %q", ErrInvalidExpression, t.Value)
			}
		case tokenizer.COLON:
			p.next()

			local := p.peek()
			switch local.Type {
			case tokenizer.NAME, tokenizer.STAR:
				p.next()
				return &Tree{Kind: KindNameTest, S0: t.Value, S1: local.Value}, nil
			default:
				return nil, fmt.Errorf("%w: expected name after %q:", ErrInvalidExpression, t.Value)
			}
		default:
			return &Tree{Kind: KindNameTest, S1: t.Value}, nil
		}
	default:
		return nil, fmt.Errorf("%w: expected node test, got %s at position %d",
			ErrInvalidExpression, t.Type, t.Position.Column)
	}
}

// parsePredicates parses a possibly empty [expr][expr]... chain. Each
// predicate node keeps its predecessors in C0 and its expression in C1.
func (p *parser) parsePredicates() (*Tree, error) {
	var chain *Tree

	for p.peek().Type == tokenizer.LBRACKET {
		p.next()

		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokenizer.RBRACKET); err != nil {
			return nil, err
		}

		chain = &Tree{Kind: KindPredicate, C0: chain, C1: expr}
	}

	return chain, nil
}
