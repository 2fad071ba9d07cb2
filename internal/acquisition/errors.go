package acquisition

import (
	"fmt"
	"strings"
)

// GenerationFailedError is returned when every attempt produced an invalid document.
// Errors holds the violations of the last attempt only.
type GenerationFailedError struct {
	Attempts int
	Errors   []string
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("failed to generate a valid resume after %d attempts: %s",
		e.Attempts, strings.Join(e.Errors, "; "))
}
