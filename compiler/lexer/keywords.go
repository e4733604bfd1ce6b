package lexer

// keywords maps keyword strings to their token types for O(1) lookup.
// The annotation grammar has a single keyword: the `otel` marker that
// opens an option block. Option names (`key`, `variant`) and capability
// names are ordinary identifiers resolved by the parser.
var keywords = map[string]TokenType{
	"otel": TOKEN_OTEL,
}
