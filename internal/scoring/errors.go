package scoring

import "fmt"

// ParseError represents scoring service output that holds no number
type ParseError struct {
	Raw   string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: no score in %q: %v", e.Raw, e.Cause)
	}
	return fmt.Sprintf("parse error: no score in %q", e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
