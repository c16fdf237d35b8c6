package scheduler

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Submitter invokes qsub against generated job scripts.
type Submitter struct {
	qsubBin string
}

// NewSubmitter creates a Submitter using qsub from PATH.
func NewSubmitter() (*Submitter, error) {
	return newSubmitterWithBinary("")
}

// NewSubmitterWithBinary creates a Submitter using an explicit qsub path.
func NewSubmitterWithBinary(qsubBin string) (*Submitter, error) {
	return newSubmitterWithBinary(qsubBin)
}

func newSubmitterWithBinary(qsubBin string) (*Submitter, error) {
	binPath := qsubBin
	if binPath == "" {
		var err error
		binPath, err = exec.LookPath("qsub")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQsubNotFound, err)
		}
	} else {
		if absPath, err := filepath.Abs(binPath); err == nil {
			binPath = absPath
		}
		info, err := os.Stat(binPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQsubNotFound, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", ErrQsubNotFound, binPath)
		}
	}

	return &Submitter{qsubBin: binPath}, nil
}

// IsAvailable checks that qsub is present and we're not already inside a PBS
// job (nested submission is disabled).
func (s *Submitter) IsAvailable() bool {
	if s.qsubBin == "" {
		return false
	}
	_, inJob := os.LookupEnv("PBS_JOBID")
	return !inJob
}

// SubmitterInfo holds information about the detected submitter.
type SubmitterInfo struct {
	Binary    string // Path to qsub
	Version   string // qsub version (if available)
	InJob     bool   // Whether we're currently inside a PBS job
	Available bool   // Whether submission is possible
}

// Info returns information about the submitter.
func (s *Submitter) Info() *SubmitterInfo {
	_, inJob := os.LookupEnv("PBS_JOBID")
	info := &SubmitterInfo{
		Binary:    s.qsubBin,
		InJob:     inJob,
		Available: s.IsAvailable(),
	}
	if s.qsubBin != "" {
		if version, err := s.qsubVersion(); err == nil {
			info.Version = version
		}
	}
	return info
}

func (s *Submitter) qsubVersion() (string, error) {
	out, err := exec.Command(s.qsubBin, "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// SubmitCommand builds the submission command line: the qsub binary followed
// by the job script path. Exposed separately so callers can display or defer
// the command without executing it.
func (s *Submitter) SubmitCommand(scriptPath string) *exec.Cmd {
	return exec.Command(s.qsubBin, scriptPath)
}

// Submit runs qsub on a generated script and returns the job ID printed by
// the scheduler. This is fire-and-forget: the job is not awaited and any
// process failure propagates unchanged as a *SubmissionError.
func (s *Submitter) Submit(scriptPath string) (string, error) {
	output, err := s.SubmitCommand(scriptPath).CombinedOutput()
	if err != nil {
		return "", NewSubmissionError(filepath.Base(scriptPath), string(output), err)
	}

	jobID := strings.TrimSpace(string(output))
	if jobID == "" {
		return "", fmt.Errorf("%w: %q", ErrJobIDParseFailed, string(output))
	}
	return jobID, nil
}
