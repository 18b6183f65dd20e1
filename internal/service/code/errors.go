package code

import (
	"errors"
	"fmt"
)

// Kind classifies operation failures for the tool-facing layer.
type Kind string

const (
	// KindUnsupportedLanguage means no grammar covers the file extension.
	KindUnsupportedLanguage Kind = "unsupported_language"
	// KindNotFound means a file or directory does not exist.
	KindNotFound Kind = "not_found"
	// KindInvalidArgument means a caller-supplied parameter is unusable.
	KindInvalidArgument Kind = "invalid_argument"
	// KindParseFailure means the grammar library failed outright on input.
	KindParseFailure Kind = "parse_failure"
)

// Error is a classified operation failure. All four kinds are fatal for the
// operation that raises them; multi-file operations downgrade per-file parse
// failures to skips before they reach this type.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from an error chain. The second return
// is false for unclassified errors.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

func unsupportedLanguage(path string) *Error {
	return &Error{
		Kind:    KindUnsupportedLanguage,
		Message: fmt.Sprintf("unsupported file type: %s", path),
	}
}

func notFound(path string, err error) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("no such file or directory: %s", path),
		Err:     err,
	}
}

func invalidArgument(msg string, err error) *Error {
	return &Error{Kind: KindInvalidArgument, Message: msg, Err: err}
}

func parseFailure(path string, err error) *Error {
	return &Error{
		Kind:    KindParseFailure,
		Message: fmt.Sprintf("failed to parse %s", path),
		Err:     err,
	}
}
