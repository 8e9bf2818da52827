package store

import "fmt"

// FormatError reports a malformed or schema-mismatched document on explicit
// import. Load never produces it; a broken stored document silently falls
// back to defaults instead.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid document: %s", e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }
