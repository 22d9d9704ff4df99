package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers used to classify failures across the pipeline. Core
// validation failures are kept distinct from artifact I/O failures so callers
// can tell a bad payload apart from a missing or unreadable file.
var (
	ErrValidation        = errors.New("validation error")
	ErrConfiguration     = errors.New("configuration error")
	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrArtifactMalformed = errors.New("artifact malformed")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification via errors.Is. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
