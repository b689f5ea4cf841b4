// Package ingest turns external question representations (CSV text, JSON
// documents, discrete form fields) into candidate question records. Candidates
// are not validated here; that is the validate package's job.
package ingest

import (
	"fmt"
	"strings"
)

// SchemaError reports required CSV columns absent from the header row. It
// always names every missing column, not just the first.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("Missing columns: %s", strings.Join(e.Missing, ", "))
}

// ShapeError reports a JSON document whose top-level value is not an array.
type ShapeError struct{}

func (e *ShapeError) Error() string {
	return "JSON must contain a list of questions"
}

// SyntaxError reports unparseable document text, wrapping the parser's
// original diagnostic.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Invalid JSON format: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
