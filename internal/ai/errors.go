package ai

import "fmt"

// GenerationError normalizes every failure of the generation endpoint into
// one type: transport errors, API errors, empty completions, and non-STOP
// finish reasons. The reason is short and human-readable; credentials never
// appear in it.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed (%s)", e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
