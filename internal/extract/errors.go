package extract

import "fmt"

// NotFoundError reports that no artifact of the requested kind was present
// in the completion text.
type NotFoundError struct {
	Kind Kind
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s artifact found in completion text", e.Kind)
}

// MalformedJSONError reports JSON-kind text that failed to parse. The
// offending text is carried so callers can surface or log it; it is never
// silently coerced.
type MalformedJSONError struct {
	Text  string
	Cause error
}

func (e *MalformedJSONError) Error() string {
	preview := e.Text
	if len(preview) > 120 {
		preview = preview[:117] + "..."
	}
	if e.Cause != nil {
		return fmt.Sprintf("malformed JSON in completion text: %v: %q", e.Cause, preview)
	}
	return fmt.Sprintf("malformed JSON in completion text: %q", preview)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Cause
}
