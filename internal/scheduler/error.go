package scheduler

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrQsubNotFound indicates the qsub binary was not found
	ErrQsubNotFound = errors.New("qsub binary not found in PATH")

	// ErrSubmitterNotAvailable indicates job submission is not possible
	ErrSubmitterNotAvailable = errors.New("submitter is not available")

	// ErrEmptyResourceList indicates a resource spec with no fields set
	ErrEmptyResourceList = errors.New("resource spec has no fields set")

	// ErrNoResources indicates a job spec without a resource spec
	ErrNoResources = errors.New("job spec has no resource spec")

	// ErrX11NeedsInteractive indicates X11 forwarding without interactive mode
	ErrX11NeedsInteractive = errors.New("X11 forwarding requires an interactive job")

	// ErrJobIDParseFailed indicates parsing the job ID from qsub output failed
	ErrJobIDParseFailed = errors.New("failed to parse job ID from qsub output")
)

// SubmissionError represents an error during job submission
type SubmissionError struct {
	Script string // Script path submitted
	Output string // Combined qsub output
	Err    error  // Underlying error
}

func (e *SubmissionError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("submission failed for %s: %v\nOutput: %s",
			e.Script, e.Err, e.Output)
	}
	return fmt.Sprintf("submission failed for %s: %v", e.Script, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// NewSubmissionError creates a new SubmissionError
func NewSubmissionError(script string, output string, err error) *SubmissionError {
	return &SubmissionError{
		Script: script,
		Output: output,
		Err:    err,
	}
}

// ScriptCreationError represents an I/O error while writing a job script
type ScriptCreationError struct {
	JobName string // Job name
	Path    string // Path being created or written
	Err     error  // Underlying error
}

func (e *ScriptCreationError) Error() string {
	return fmt.Sprintf("failed to create script for job %s at %s: %v",
		e.JobName, e.Path, e.Err)
}

func (e *ScriptCreationError) Unwrap() error {
	return e.Err
}

// NewScriptCreationError creates a new ScriptCreationError
func NewScriptCreationError(jobName string, path string, err error) *ScriptCreationError {
	return &ScriptCreationError{
		JobName: jobName,
		Path:    path,
		Err:     err,
	}
}

// IsSubmissionError checks if an error is a SubmissionError
func IsSubmissionError(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se)
}

// IsScriptCreationError checks if an error is a ScriptCreationError
func IsScriptCreationError(err error) bool {
	var sce *ScriptCreationError
	return errors.As(err, &sce)
}
