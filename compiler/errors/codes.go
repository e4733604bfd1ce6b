package errors

// Diagnostic code constants organized by phase
// E001-E099: lexer errors (annotation tokenization)
// E100-E199: parser errors (annotation grammar)
// E200-E299: descriptor errors (annotated item shape)
// E300-E399: validation errors (per-capability option rules)

const (
	// Lexer errors (E001-E099)
	ErrUnexpectedCharacter = "E001"
	ErrUnterminatedString  = "E002"
	ErrInvalidEscape       = "E003"

	// Parser errors (E100-E199)
	ErrSyntax              = "E100"
	ErrUnknownOption       = "E101"
	ErrDuplicateOption     = "E102"
	ErrMalformedOption     = "E103"
	ErrUnknownCapability   = "E104"
	ErrDuplicateCapability = "E105"
	ErrEmptyDeriveList     = "E106"

	// Descriptor errors (E200-E299)
	ErrUnsupportedItemKind = "E200"

	// Validation errors (E300-E399)
	ErrMissingRequiredOption = "E300"
	ErrInvalidVariant        = "E301"
)
