package adapter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	ErrMissingToken = errors.New("response carries no bearer token")
	ErrEmptyID      = errors.New("supplier id is empty")
)

// ResponseError describes a non-2xx answer from the server.
type ResponseError struct {
	StatusCode int

	// Messages holds a plain text body or the entries of a JSON array body.
	Messages []string

	// Fields holds a field validation body (field name to messages).
	Fields map[string][]string

	kind error
}

func (e *ResponseError) Error() string {
	parts := make([]string, 0, len(e.Messages)+len(e.Fields))
	parts = append(parts, e.Messages...)

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%s (http %d)", e.kind, e.StatusCode)
	}
	return fmt.Sprintf("%s (http %d): %s", e.kind, e.StatusCode, strings.Join(parts, "; "))
}

func (e *ResponseError) Unwrap() error {
	return e.kind
}
