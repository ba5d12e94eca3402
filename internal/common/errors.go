package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures at the extraction boundary. The crawl
// frontier absorbs the same conditions as per-page skips instead.
type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "invalid_input"
	KindUnsupportedContent  ErrorKind = "unsupported_content"
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
)

// ClassifiedError carries an HTTP-style status alongside the cause
type ClassifiedError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *ClassifiedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// InvalidInput builds a 400-class error for unparsable caller input
func InvalidInput(message string, err error) *ClassifiedError {
	return &ClassifiedError{Kind: KindInvalidInput, Status: http.StatusBadRequest, Message: message, Err: err}
}

// UnsupportedContent builds a 400-class error for non-HTML, empty, or
// oversize responses.
func UnsupportedContent(message string, err error) *ClassifiedError {
	return &ClassifiedError{Kind: KindUnsupportedContent, Status: http.StatusBadRequest, Message: message, Err: err}
}

// UpstreamUnavailable builds a 502-class error for unreachable origins
// and upstream failures.
func UpstreamUnavailable(message string, err error) *ClassifiedError {
	return &ClassifiedError{Kind: KindUpstreamUnavailable, Status: http.StatusBadGateway, Message: message, Err: err}
}

// StatusFor resolves the HTTP status for an error, defaulting to 500
// for unclassified failures.
func StatusFor(err error) int {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Status
	}
	return http.StatusInternalServerError
}
