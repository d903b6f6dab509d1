package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"

	// Language resource fields.
	FieldLanguage  = "language"
	FieldFallback  = "fallback"
	FieldResource  = "resource"
	FieldResources = "resources"
	FieldClasses   = "classes"

	// Segmentation statistics fields.
	FieldTokens     = "tokens"
	FieldTextUnits  = "text_units"
	FieldParagraphs = "paragraphs"
	FieldRunes      = "runes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
