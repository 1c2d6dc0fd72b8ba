package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes content loading failures. Pages collapse every kind into
// one user-visible error; the kind is kept for logs and the JSON API.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the request named something the site cannot serve.
	InvalidInput
	// Unreachable indicates the CMS could not be reached or answered with an error status.
	Unreachable
	// Timeout indicates the CMS took too long to respond.
	Timeout
	// ParsingFailed indicates the CMS response was not a usable document.
	ParsingFailed
	// NotFound indicates the CMS has no data for the section.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case Unreachable:
		return "unreachable"
	case Timeout:
		return "timeout"
	case ParsingFailed:
		return "parsing_failed"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind           Kind
	UpstreamStatus int // HTTP status code returned by the CMS
	Message        string
	Cause          error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of the first AppError in err's chain, or Unknown.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}
