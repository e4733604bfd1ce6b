// Package parser turns annotation token streams into structured option sets
// and capability lists. It enforces the whole option grammar — unknown,
// duplicate and malformed options are hard errors here, never silently
// ignored — so later stages only see well-formed AttributeOptions.
package parser

import (
	"fmt"
	"strings"

	"github.com/otelderive/otelderive/compiler/errors"
	"github.com/otelderive/otelderive/compiler/lexer"
)

// Parser consumes a token stream produced by the lexer
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []errors.CompilerError
}

// New creates a new Parser from a token stream
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens: tokens,
		errors: []errors.CompilerError{},
	}
}

// ParseAnnotation parses an `otel(option, ...)` block into AttributeOptions.
// On any error the returned options are nil and the diagnostics describe
// every problem found before the parser gave up.
func (p *Parser) ParseAnnotation() (*AttributeOptions, []errors.CompilerError) {
	opts := &AttributeOptions{}

	marker := p.peek()
	if !p.match(lexer.TOKEN_OTEL) {
		p.syntaxError(marker, "expected 'otel' to open an option block")
		return nil, p.errors
	}
	opts.Location = TokenToLocation(marker)

	if !p.match(lexer.TOKEN_LPAREN) {
		p.syntaxError(p.peek(), "expected '(' after 'otel'")
		return nil, p.errors
	}

	for {
		p.parseOption(opts)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if !p.match(lexer.TOKEN_RPAREN) {
		p.syntaxError(p.peek(), "expected ')' to close the option block")
	}
	if !p.check(lexer.TOKEN_EOF) {
		p.syntaxError(p.peek(), fmt.Sprintf("unexpected %q after option block", p.peek().Lexeme))
	}

	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return opts, nil
}

// parseOption parses a single `name = value` option into opts
func (p *Parser) parseOption(opts *AttributeOptions) {
	nameTok := p.peek()
	if !p.match(lexer.TOKEN_IDENTIFIER) {
		p.syntaxError(nameTok, "expected option name")
		return
	}

	switch nameTok.Lexeme {
	case "key", "variant":
	default:
		err := errors.New("parser", errors.ErrUnknownOption,
			fmt.Sprintf("unknown option %q", nameTok.Lexeme),
			TokenToLocation(nameTok))
		if near := errors.NearestName(nameTok.Lexeme, optionNames); near != "" {
			err = err.WithSuggestion(near)
		}
		p.errors = append(p.errors, err)
		p.skipOptionValue()
		return
	}

	if !p.match(lexer.TOKEN_EQUAL) {
		p.syntaxError(p.peek(), fmt.Sprintf("expected '=' after option name %q", nameTok.Lexeme))
		return
	}

	switch nameTok.Lexeme {
	case "key":
		p.parseKeyValue(nameTok, opts)
	case "variant":
		p.parseVariantValue(nameTok, opts)
	}
}

// parseKeyValue parses the string literal of a `key = "..."` option
func (p *Parser) parseKeyValue(nameTok lexer.Token, opts *AttributeOptions) {
	valueTok := p.peek()
	if !p.match(lexer.TOKEN_STRING_LITERAL) {
		p.errors = append(p.errors, errors.New("parser", errors.ErrMalformedOption,
			fmt.Sprintf("option \"key\" requires a string literal, got %q", valueTok.Lexeme),
			TokenToLocation(valueTok)))
		p.skipOptionValue()
		return
	}

	if opts.Key != nil {
		p.errors = append(p.errors, errors.New("parser", errors.ErrDuplicateOption,
			`duplicate option "key"`, TokenToLocation(nameTok)))
		return
	}
	opts.Key = &StringOption{
		Value:    valueTok.Literal,
		Location: TokenToLocation(valueTok),
	}
}

// parseVariantValue parses the type reference of a `variant = T` option.
// Qualified references (`attribute.StringValue`) are accepted syntactically;
// whether the reference names a supported variant is the validator's call.
func (p *Parser) parseVariantValue(nameTok lexer.Token, opts *AttributeOptions) {
	valueTok := p.peek()
	if !p.match(lexer.TOKEN_IDENTIFIER) {
		p.errors = append(p.errors, errors.New("parser", errors.ErrMalformedOption,
			fmt.Sprintf("option \"variant\" requires a type reference, got %q", valueTok.Lexeme),
			TokenToLocation(valueTok)))
		p.skipOptionValue()
		return
	}

	parts := []string{valueTok.Lexeme}
	for p.match(lexer.TOKEN_DOT) {
		segTok := p.peek()
		if !p.match(lexer.TOKEN_IDENTIFIER) {
			p.syntaxError(segTok, "expected identifier after '.' in type reference")
			return
		}
		parts = append(parts, segTok.Lexeme)
	}

	if opts.Variant != nil {
		p.errors = append(p.errors, errors.New("parser", errors.ErrDuplicateOption,
			`duplicate option "variant"`, TokenToLocation(nameTok)))
		return
	}
	loc := TokenToLocation(valueTok)
	name := strings.Join(parts, ".")
	loc.Length = len(name)
	opts.Variant = &TypeRefOption{
		Name:     name,
		Location: loc,
	}
}

// ParseDeriveList parses the payload of an `//otel:derive` directive:
// one or more capability names separated by commas.
func (p *Parser) ParseDeriveList() ([]Capability, []errors.CompilerError) {
	var caps []Capability
	seen := make(map[Capability]bool)

	if p.check(lexer.TOKEN_EOF) {
		p.errors = append(p.errors, errors.New("parser", errors.ErrEmptyDeriveList,
			"derive list is empty; expected one of Key, Value, StringValue, KeyValue",
			TokenToLocation(p.peek())))
		return nil, p.errors
	}

	for {
		tok := p.peek()
		if !p.match(lexer.TOKEN_IDENTIFIER) {
			p.syntaxError(tok, "expected capability name")
			return nil, p.errors
		}

		cap, ok := capabilities[tok.Lexeme]
		if !ok {
			err := errors.New("parser", errors.ErrUnknownCapability,
				fmt.Sprintf("unknown capability %q", tok.Lexeme),
				TokenToLocation(tok))
			if near := errors.NearestName(tok.Lexeme, CapabilityNames); near != "" {
				err = err.WithSuggestion(near)
			}
			p.errors = append(p.errors, err)
		} else if seen[cap] {
			p.errors = append(p.errors, errors.New("parser", errors.ErrDuplicateCapability,
				fmt.Sprintf("capability %q requested twice", tok.Lexeme),
				TokenToLocation(tok)))
		} else {
			seen[cap] = true
			caps = append(caps, cap)
		}

		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if !p.check(lexer.TOKEN_EOF) {
		p.syntaxError(p.peek(), fmt.Sprintf("unexpected %q in derive list", p.peek().Lexeme))
	}

	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return caps, nil
}

// skipOptionValue advances past the remainder of a broken option so one
// mistake does not cascade into spurious syntax errors.
func (p *Parser) skipOptionValue() {
	for !p.check(lexer.TOKEN_EOF) && !p.check(lexer.TOKEN_COMMA) && !p.check(lexer.TOKEN_RPAREN) {
		p.advance()
	}
}

func (p *Parser) syntaxError(tok lexer.Token, message string) {
	p.errors = append(p.errors, errors.New("parser", errors.ErrSyntax, message, TokenToLocation(tok)))
}

// Helper methods for token manipulation

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.current]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.current < len(p.tokens)-1 {
		p.current++
	}
	return tok
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.peek().Type == tokenType
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// ParseAnnotationText lexes and parses annotation text located in file at
// the given line and column, folding lexer errors into the diagnostics.
func ParseAnnotationText(text, file string, line, column int) (*AttributeOptions, []errors.CompilerError) {
	tokens, lexErrs := lexer.New(text, file, line, column).ScanTokens()
	if len(lexErrs) > 0 {
		return nil, fromLexErrors(lexErrs)
	}
	return New(tokens).ParseAnnotation()
}

// ParseDeriveListText lexes and parses a derive-list payload located in
// file at the given line and column.
func ParseDeriveListText(text, file string, line, column int) ([]Capability, []errors.CompilerError) {
	tokens, lexErrs := lexer.New(text, file, line, column).ScanTokens()
	if len(lexErrs) > 0 {
		return nil, fromLexErrors(lexErrs)
	}
	return New(tokens).ParseDeriveList()
}

func fromLexErrors(lexErrs []lexer.LexError) []errors.CompilerError {
	out := make([]errors.CompilerError, 0, len(lexErrs))
	for _, le := range lexErrs {
		code := errors.ErrUnexpectedCharacter
		if strings.Contains(le.Message, "unterminated") {
			code = errors.ErrUnterminatedString
		} else if strings.Contains(le.Message, "escape") {
			code = errors.ErrInvalidEscape
		}
		out = append(out, errors.New("lexer", code, le.Message, errors.SourceLocation{
			File:   le.File,
			Line:   le.Line,
			Column: le.Column,
			Length: le.Length,
		}))
	}
	return out
}
