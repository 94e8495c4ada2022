package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for file extensions with no extractor
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrEmptyDocument is returned when a document holds no text after cleaning
	ErrEmptyDocument = errors.New("document contains no text")
)

// ExtractionError represents a failure to pull text out of a document
type ExtractionError struct {
	Path   string
	Format Format
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s (%s): %v", e.Path, e.Format, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
