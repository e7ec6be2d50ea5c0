package grammar

import "fmt"

// ErrorKind tags a GrammarError's cause.
type ErrorKind int

const (
	UnresolvedReference ErrorKind = iota
	DuplicateCapture
	ConflictingRedefinition
	MalformedCharClass
)

// GrammarError is a fatal compile-time error: surfaced at compile, fatal
// to the enclosing operation, never retried.
type GrammarError struct {
	Kind    ErrorKind
	Symbol  string
	Message string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar: %s", e.Message)
}

func errUnresolvedRef(name string) *GrammarError {
	return &GrammarError{Kind: UnresolvedReference, Symbol: name,
		Message: fmt.Sprintf("unresolved reference to non-terminal %q", name)}
}

func errDuplicateCapture(rule, capture string) *GrammarError {
	return &GrammarError{Kind: DuplicateCapture, Symbol: rule,
		Message: fmt.Sprintf("duplicate capture name %q within rule %q", capture, rule)}
}
