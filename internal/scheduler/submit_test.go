package scheduler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jondeuce/arctools/internal/utils"
)

func writeFakeQsub(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qsub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho 12345.pbsserver\n"), utils.PermExec); err != nil {
		t.Fatalf("Failed to write fake qsub: %v", err)
	}
	return path
}

func TestNewSubmitterWithBinary(t *testing.T) {
	qsub := writeFakeQsub(t)

	sub, err := NewSubmitterWithBinary(qsub)
	if err != nil {
		t.Fatalf("NewSubmitterWithBinary failed: %v", err)
	}
	if sub.qsubBin != qsub {
		t.Errorf("qsubBin = %q; want %q", sub.qsubBin, qsub)
	}
}

func TestNewSubmitterWithBinaryMissing(t *testing.T) {
	_, err := NewSubmitterWithBinary(filepath.Join(t.TempDir(), "no-such-qsub"))
	if !errors.Is(err, ErrQsubNotFound) {
		t.Errorf("NewSubmitterWithBinary = %v; want ErrQsubNotFound", err)
	}
}

func TestNewSubmitterWithBinaryDirectory(t *testing.T) {
	_, err := NewSubmitterWithBinary(t.TempDir())
	if !errors.Is(err, ErrQsubNotFound) {
		t.Errorf("NewSubmitterWithBinary = %v; want ErrQsubNotFound", err)
	}
}

func TestSubmitCommandArgv(t *testing.T) {
	qsub := writeFakeQsub(t)
	sub, err := NewSubmitterWithBinary(qsub)
	if err != nil {
		t.Fatalf("NewSubmitterWithBinary failed: %v", err)
	}

	cmd := sub.SubmitCommand("/tmp/proj/pbs/run_job.pbs")
	if len(cmd.Args) != 2 || cmd.Args[0] != qsub || cmd.Args[1] != "/tmp/proj/pbs/run_job.pbs" {
		t.Errorf("SubmitCommand argv = %v; want [%s /tmp/proj/pbs/run_job.pbs]", cmd.Args, qsub)
	}
}

func TestIsAvailableInsideJob(t *testing.T) {
	sub := &Submitter{qsubBin: "/usr/bin/qsub"}

	t.Setenv("PBS_JOBID", "12345.pbsserver")
	if sub.IsAvailable() {
		t.Error("IsAvailable() = true inside a PBS job; want false")
	}
}

func TestIsAvailableOutsideJob(t *testing.T) {
	sub := &Submitter{qsubBin: "/usr/bin/qsub"}

	orig, had := os.LookupEnv("PBS_JOBID")
	os.Unsetenv("PBS_JOBID")
	defer func() {
		if had {
			os.Setenv("PBS_JOBID", orig)
		}
	}()

	if !sub.IsAvailable() {
		t.Error("IsAvailable() = false outside a job; want true")
	}
}

func TestSubmitParsesJobID(t *testing.T) {
	qsub := writeFakeQsub(t)
	sub, err := NewSubmitterWithBinary(qsub)
	if err != nil {
		t.Fatalf("NewSubmitterWithBinary failed: %v", err)
	}

	jobID, err := sub.Submit("/tmp/whatever.pbs")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if jobID != "12345.pbsserver" {
		t.Errorf("Submit returned job ID %q; want %q", jobID, "12345.pbsserver")
	}
}
