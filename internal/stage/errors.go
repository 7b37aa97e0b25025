package stage

import (
	"fmt"

	"github.com/jkoster/webfolio/internal/extract"
)

// GenerationError means the model call for a stage failed.
type GenerationError struct {
	Stage string
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("stage %s: generation failed: %v", e.Stage, e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// ExtractionError means the model replied but the reply held no usable
// artifact of the expected kind.
type ExtractionError struct {
	Stage string
	Kind  extract.Kind
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("stage %s: no usable %s in model reply: %v", e.Stage, e.Kind, e.Cause)
}

func (e *ExtractionError) Unwrap() error { return e.Cause }
