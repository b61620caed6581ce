package twin

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerationError wraps any transport, auth, quota or payload failure of
// the text generation backend.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation via %s failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// PersonaDataError wraps a failure to load persona samples.
type PersonaDataError struct {
	PersonaId uuid.UUID
	Err       error
}

func (e *PersonaDataError) Error() string {
	return fmt.Sprintf("load samples for persona %s: %v", e.PersonaId, e.Err)
}

func (e *PersonaDataError) Unwrap() error {
	return e.Err
}
