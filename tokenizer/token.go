package tokenizer

import "errors"

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("unterminated string literal")
	ErrInvalidNumber       = errors.New("invalid number format")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	NAME   // NCName: element names, axis names, function names
	NUMBER // numeric literals
	QUOTE  // string literals ('text', "text")

	// Path structure
	SLASH        // /
	DOUBLE_SLASH // //
	LBRACKET     // [
	RBRACKET     // ]
	LPAREN       // (
	RPAREN       // )
	COLON        // : (QName separator)
	DOUBLE_COLON // :: (axis specifier)
	DOT          // .
	DOUBLE_DOT   // ..
	AT           // @
	COMMA        // ,

	// Operators
	UNION         // |
	PLUS          // +
	MINUS         // -
	STAR          // * (multiply or wildcard, resolved by the parser)
	EQUAL         // =
	NOT_EQUAL     // !=
	LESS_THAN     // <
	GREATER_THAN  // >
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case NAME:
		return "NAME"
	case NUMBER:
		return "NUMBER"
	case QUOTE:
		return "QUOTE"
	case SLASH:
		return "SLASH"
	case DOUBLE_SLASH:
		return "DOUBLE_SLASH"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case COLON:
		return "COLON"
	case DOUBLE_COLON:
		return "DOUBLE_COLON"
	case DOT:
		return "DOT"
	case DOUBLE_DOT:
		return "DOUBLE_DOT"
	case AT:
		return "AT"
	case COMMA:
		return "COMMA"
	case UNION:
		return "UNION"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case STAR:
		return "STAR"
	case EQUAL:
		return "EQUAL"
	case NOT_EQUAL:
		return "NOT_EQUAL"
	case LESS_THAN:
		return "LESS_THAN"
	case GREATER_THAN:
		return "GREATER_THAN"
	case LESS_EQUAL:
		return "LESS_EQUAL"
	case GREATER_EQUAL:
		return "GREATER_EQUAL"
	default:
		return "UNKNOWN"
	}
}

// Position represents the position of a token within the expression
type Position struct {
	Offset int // 0-based rune offset
	Column int // 1-based column
}

// Token represents a single lexical token of an XPath expression
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// IsOperator reports whether the token is a binary operator symbol.
// Operator names (and, or, div, mod) lex as NAME and are resolved by the
// parser from position, per the XPath 1.0 disambiguation rule.
func (t Token) IsOperator() bool {
	switch t.Type {
	case UNION, PLUS, MINUS, STAR, EQUAL, NOT_EQUAL,
		LESS_THAN, GREATER_THAN, LESS_EQUAL, GREATER_EQUAL:
		return true
	default:
		return false
	}
}
