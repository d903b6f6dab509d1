package rules

import "errors"

// Sentinel errors for error categorization via errors.Is.
//
// The two categories deliberately stay distinct: initialization errors
// mean the rule files themselves are broken and should abort startup,
// while processing errors surface during tokenization and indicate a
// gap in an otherwise accepted rule set (or a bug).
var (
	// ErrInitialization indicates a malformed or unreadable rule
	// configuration: wrong field count, missing section, bad pattern.
	ErrInitialization = errors.New("invalid tokenizer configuration")

	// ErrProcessing indicates a failure while applying compiled rules:
	// an unresolved <NAME> reference or a substring that no definition
	// classifies.
	ErrProcessing = errors.New("tokenizer processing failure")
)
