package types

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRegistry       = errors.New("no valid provider descriptors found")
	ErrProviderNotFound    = errors.New("provider not found")
	ErrMissingCollaborator = errors.New("required external tool not found")
	ErrFeatureDisabled     = errors.New("feature disabled")
	ErrRecordNotFound      = errors.New("project record not found")
)

// FatalSetupError aborts a run before any prompt is shown.
type FatalSetupError struct {
	Reason string
	Err    error
}

func (e *FatalSetupError) Error() string {
	if e.Err == nil {
		return "setup failed: " + e.Reason
	}
	return fmt.Sprintf("setup failed: %s: %v", e.Reason, e.Err)
}

func (e *FatalSetupError) Unwrap() error {
	return e.Err
}

// GenerationError names the primary artifact whose write failed. Artifacts written before
// it are left on disk.
type GenerationError struct {
	Artifact string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s: %v", e.Artifact, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// FeatureFailure records an optional feature generator that failed without affecting the
// primary artifacts.
type FeatureFailure struct {
	Feature string
	Err     error
}

func (f FeatureFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Feature, f.Err)
}
