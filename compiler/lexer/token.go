package lexer

import "fmt"

// TokenType represents the type of token in an otelderive annotation
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR

	// Keywords
	TOKEN_OTEL

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_STRING_LITERAL

	// Operators and delimiters
	TOKEN_EQUAL  // =
	TOKEN_COMMA  // ,
	TOKEN_DOT    // .
	TOKEN_LPAREN // (
	TOKEN_RPAREN // )
)

// Token represents a single lexical token of an annotation. Line and Column
// are the token's position in the enclosing Go source file, not within the
// annotation text, so diagnostics point at real source.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string // decoded value for string literals
	Line    int
	Column  int
	File    string
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_ERROR:
		return "ERROR"
	case TOKEN_OTEL:
		return "OTEL"
	case TOKEN_IDENTIFIER:
		return "IDENTIFIER"
	case TOKEN_STRING_LITERAL:
		return "STRING_LITERAL"
	case TOKEN_EQUAL:
		return "EQUAL"
	case TOKEN_COMMA:
		return "COMMA"
	case TOKEN_DOT:
		return "DOT"
	case TOKEN_LPAREN:
		return "LPAREN"
	case TOKEN_RPAREN:
		return "RPAREN"
	default:
		return "UNKNOWN"
	}
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%s) [%d:%d]", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexError represents a lexical analysis error
type LexError struct {
	Message string
	Line    int
	Column  int
	Length  int
	File    string
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}
