// Package tokenizer lexes XPath 1.0 expressions into a flat token stream.
//
// The token set covers the XPath subset understood by the evaluator:
// location paths with abbreviated steps, predicates, literals and the
// binary operators. Operator names (and, or, div, mod) are lexed as NAME
// tokens; the parser decides from position whether a name is an operator.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
)

// Tokenizer lexes a single XPath expression
type Tokenizer struct {
	input   string
	options Options
}

// Options are options for the tokenizer
type Options struct {
	SkipWhitespace bool
}

// New creates a new Tokenizer
func New(input string, options ...Options) *Tokenizer {
	opts := Options{SkipWhitespace: true}
	if len(options) > 0 {
		opts = options[0]
	}

	return &Tokenizer{input: input, options: opts}
}

// AllTokens lexes the whole input, returning the token slice including the
// trailing EOF token. The first lexing error aborts the scan.
func (t *Tokenizer) AllTokens() ([]Token, error) {
	s := &scanner{src: []rune(t.input)}
	tokens := make([]Token, 0, 16)

	for {
		token, err := s.next()
		if err != nil {
			return nil, err
		}

		if t.options.SkipWhitespace && token.Type == WHITESPACE {
			continue
		}

		tokens = append(tokens, token)
		if token.Type == EOF {
			return tokens, nil
		}
	}
}

// Internal scanner implementation
type scanner struct {
	src []rune
	pos int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	return s.src[s.pos]
}

func (s *scanner) peekAt(offset int) rune {
	if s.pos+offset >= len(s.src) {
		return 0
	}

	return s.src[s.pos+offset]
}

func (s *scanner) token(tt TokenType, start int) Token {
	return Token{
		Type:     tt,
		Value:    string(s.src[start:s.pos]),
		Position: Position{Offset: start, Column: start + 1},
	}
}

func (s *scanner) next() (Token, error) {
	start := s.pos

	switch c := s.peek(); {
	case c == 0:
		return s.token(EOF, start), nil
	case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		for !s.eof() && unicode.IsSpace(s.peek()) {
			s.pos++
		}

		return s.token(WHITESPACE, start), nil
	case c == '/':
		s.pos++
		if s.peek() == '/' {
			s.pos++
			return s.token(DOUBLE_SLASH, start), nil
		}

		return s.token(SLASH, start), nil
	case c == ':':
		s.pos++
		if s.peek() == ':' {
			s.pos++
			return s.token(DOUBLE_COLON, start), nil
		}

		return s.token(COLON, start), nil
	case c == '.':
		s.pos++
		if s.peek() == '.' {
			s.pos++
			return s.token(DOUBLE_DOT, start), nil
		}
		// .5 style number literal
		if unicode.IsDigit(s.peek()) {
			s.pos = start
			return s.readNumber()
		}

		return s.token(DOT, start), nil
	case c == '!':
		s.pos++
		if s.peek() != '=' {
			return Token{}, fmt.Errorf("%w: '!' at position %d", ErrUnexpectedCharacter, start+1)
		}

		s.pos++

		return s.token(NOT_EQUAL, start), nil
	case c == '<':
		s.pos++
		if s.peek() == '=' {
			s.pos++
			return s.token(LESS_EQUAL, start), nil
		}

		return s.token(LESS_THAN, start), nil
	case c == '>':
		s.pos++
		if s.peek() == '=' {
			s.pos++
			return s.token(GREATER_EQUAL, start), nil
		}

		return s.token(GREATER_THAN, start), nil
	case c == '\'' || c == '"':
		return s.readString(c)
	case unicode.IsDigit(c):
		return s.readNumber()
	case isNameStart(c):
		return s.readName(), nil
	default:
		if tt, ok := singleCharTokens[c]; ok {
			s.pos++
			return s.token(tt, start), nil
		}

		return Token{}, fmt.Errorf("%w: %q at position %d", ErrUnexpectedCharacter, c, start+1)
	}
}

var singleCharTokens = map[rune]TokenType{
	'[': LBRACKET,
	']': RBRACKET,
	'(': LPAREN,
	')': RPAREN,
	'@': AT,
	',': COMMA,
	'|': UNION,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'=': EQUAL,
}

func (s *scanner) readString(quote rune) (Token, error) {
	start := s.pos
	s.pos++ // opening quote

	var sb strings.Builder
	for {
		if s.eof() {
			return Token{}, fmt.Errorf("%w: starting at position %d", ErrUnterminatedString, start+1)
		}

		c := s.peek()
		s.pos++

		if c == quote {
			break
		}

		sb.WriteRune(c)
	}

	// Value carries the literal body without the quotes
	return Token{
		Type:     QUOTE,
		Value:    sb.String(),
		Position: Position{Offset: start, Column: start + 1},
	}, nil
}

func (s *scanner) readNumber() (Token, error) {
	start := s.pos
	for unicode.IsDigit(s.peek()) {
		s.pos++
	}

	if s.peek() == '.' && unicode.IsDigit(s.peekAt(1)) {
		s.pos++
		for unicode.IsDigit(s.peek()) {
			s.pos++
		}
	}

	// "1abc" is a malformed number, not NAME following NUMBER
	if isNameStart(s.peek()) {
		return Token{}, fmt.Errorf("%w: at position %d", ErrInvalidNumber, start+1)
	}

	return s.token(NUMBER, start), nil
}

func (s *scanner) readName() Token {
	start := s.pos
	s.pos++

	for !s.eof() && isNamePart(s.peek()) {
		s.pos++
	}

	return s.token(NAME, start)
}

// NCName start character, ASCII-centric per YANG identifier rules
func isNameStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isNamePart(c rune) bool {
	return c == '_' || c == '-' || c == '.' || unicode.IsLetter(c) || unicode.IsDigit(c)
}
