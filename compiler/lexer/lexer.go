// Package lexer tokenizes otelderive annotation text: the payload of an
// `//otel(...)` option block or an `//otel:derive` capability list. The
// input is a single comment line; tokens carry positions in the enclosing
// Go file so every diagnostic points at the offending character.
package lexer

import "unicode"

// Lexer tokenizes annotation source text
type Lexer struct {
	source      []rune
	start       int // start position of current token
	current     int // current position in source
	line        int // line of the annotation in the Go file
	column      int // current column in the Go file
	startColumn int // column where current token started
	file        string
	tokens      []Token
	errors      []LexError
}

// New creates a Lexer for annotation text found in file at the given line,
// with column the 1-based column of the text's first character.
func New(source, file string, line, column int) *Lexer {
	return &Lexer{
		source:      []rune(source),
		line:        line,
		column:      column,
		startColumn: column,
		file:        file,
		tokens:      make([]Token, 0, 16),
		errors:      make([]LexError, 0),
	}
}

// ScanTokens scans all tokens from the source and returns them with any errors
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.startColumn = l.column
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Line:   l.line,
		Column: l.column,
		File:   l.file,
	})

	return l.tokens, l.errors
}

// scanToken scans a single token
func (l *Lexer) scanToken() {
	r := l.advance()

	switch r {
	case '(':
		l.addToken(TOKEN_LPAREN, "")
	case ')':
		l.addToken(TOKEN_RPAREN, "")
	case ',':
		l.addToken(TOKEN_COMMA, "")
	case '.':
		l.addToken(TOKEN_DOT, "")
	case '=':
		l.addToken(TOKEN_EQUAL, "")
	case '"':
		l.scanString()
	case ' ', '\t', '\r':
		// Ignore whitespace
	default:
		if l.isAlpha(r) {
			l.scanIdentifier()
		} else {
			l.addError("unexpected character '"+string(r)+"'", 1)
		}
	}
}

// scanString scans a string literal, handling escape sequences. Annotation
// text is a single comment line, so strings cannot span lines.
func (l *Lexer) scanString() {
	var decoded []rune

	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\\' {
			l.advance()
			if l.isAtEnd() {
				break
			}
			escaped := l.advance()
			switch escaped {
			case 'n':
				decoded = append(decoded, '\n')
			case 't':
				decoded = append(decoded, '\t')
			case '\\':
				decoded = append(decoded, '\\')
			case '"':
				decoded = append(decoded, '"')
			default:
				l.errors = append(l.errors, LexError{
					Message: "invalid escape sequence '\\" + string(escaped) + "'",
					Line:    l.line,
					Column:  l.column - 2,
					Length:  2,
					File:    l.file,
				})
			}
		} else {
			decoded = append(decoded, l.advance())
		}
	}

	if l.isAtEnd() {
		l.addError("unterminated string", l.current-l.start)
		return
	}

	// Consume closing quote
	l.advance()

	l.addToken(TOKEN_STRING_LITERAL, string(decoded))
}

// scanIdentifier scans an identifier or keyword
func (l *Lexer) scanIdentifier() {
	for l.isAlphaNumeric(l.peek()) {
		l.advance()
	}

	lexeme := string(l.source[l.start:l.current])
	if tokenType, ok := keywords[lexeme]; ok {
		l.addToken(tokenType, "")
		return
	}
	l.addToken(TOKEN_IDENTIFIER, "")
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() rune {
	r := l.source[l.current]
	l.current++
	l.column++
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) isAlpha(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func (l *Lexer) isAlphaNumeric(r rune) bool {
	return l.isAlpha(r) || unicode.IsDigit(r)
}

func (l *Lexer) addToken(tokenType TokenType, literal string) {
	l.tokens = append(l.tokens, Token{
		Type:    tokenType,
		Lexeme:  string(l.source[l.start:l.current]),
		Literal: literal,
		Line:    l.line,
		Column:  l.startColumn,
		File:    l.file,
	})
}

func (l *Lexer) addError(message string, length int) {
	if length <= 0 {
		length = 1
	}
	l.errors = append(l.errors, LexError{
		Message: message,
		Line:    l.line,
		Column:  l.startColumn,
		Length:  length,
		File:    l.file,
	})
}
