// Copyright © 2021 The Stax authors

// Package diagnostic renders annotated source snippets for error output.
// It is independent of the stack package so any command can use it
// without import cycles; callers convert their errors to Diagnostics.
package diagnostic

// Severity is the class of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	}
	return "unknown"
}

// Span marks a region of source to highlight under the message.
type Span struct {
	File   string // path used to read the source, shown verbatim when unreadable
	Line   int    // 1-based
	Col    int    // 1-based start column
	EndCol int    // 1-based end column, 0 detects the token end from source
	Label  string // text printed after the underline
}

// Diagnostic is one message with optional source spans and trailing
// notes.
type Diagnostic struct {
	Severity Severity
	Message  string
	Spans    []Span
	Notes    []string
}
