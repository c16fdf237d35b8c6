package scheduler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jondeuce/arctools/internal/julia"
)

func TestPathsFor(t *testing.T) {
	paths := PathsFor("/tmp/proj", "./scripts/run.jl")

	wantDir := filepath.Join("/tmp/proj", "pbs")
	if paths.Dir != wantDir {
		t.Errorf("Dir = %q; want %q", paths.Dir, wantDir)
	}

	tests := []struct {
		got  string
		want string
	}{
		{paths.Stdout, "run_stdout.txt"},
		{paths.Stderr, "run_stderr.txt"},
		{paths.EnvLog, "run_env.toml"},
		{paths.Script, "run_job.pbs"},
	}
	for _, tt := range tests {
		if tt.got != filepath.Join(wantDir, tt.want) {
			t.Errorf("path = %q; want %q", tt.got, filepath.Join(wantDir, tt.want))
		}
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	proj := filepath.Join(t.TempDir(), "proj")

	inv := &julia.Invocation{
		BinDir:  "/opt/julia/bin",
		Threads: 3,
		Project: proj,
		Script:  "./run.jl",
		Args:    []string{"Alice", "Bob"},
	}
	job := NewJobSpec(
		&ResourceSpec{Walltime: "00:05:00", Select: Int(2), Ncpus: Int(3)},
		[]string{"m1", "m2"},
		"acct", "job1",
	)

	scriptPath, err := Generate(job, inv)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	wantPath := filepath.Join(proj, "pbs", "run_job.pbs")
	if scriptPath != wantPath {
		t.Errorf("Generate returned %q; want %q", scriptPath, wantPath)
	}

	content, err := os.ReadFile(scriptPath)
	if err != nil {
		t.Fatalf("Failed to read generated script: %v", err)
	}
	script := string(content)

	if !strings.Contains(script, "#PBS -l walltime=00:05:00,select=2:ncpus=3:ompthreads=3\n") {
		t.Errorf("Script missing expected resource directive:\n%s", script)
	}
	if !strings.Contains(script, "#PBS -o "+filepath.Join(proj, "pbs", "run_stdout.txt")+"\n") {
		t.Errorf("Script missing defaulted stdout directive:\n%s", script)
	}

	m1 := strings.Index(script, "module load m1")
	m2 := strings.Index(script, "module load m2")
	if m1 < 0 || m2 < 0 || m1 > m2 {
		t.Errorf("Module load lines missing or out of order (m1=%d, m2=%d):\n%s", m1, m2, script)
	}

	lines := strings.Split(strings.TrimRight(script, "\n"), "\n")
	last := lines[len(lines)-1]
	if !strings.HasSuffix(last, "run.jl -- Alice Bob") {
		t.Errorf("Final invocation line = %q; want suffix %q", last, "run.jl -- Alice Bob")
	}
	if !strings.HasPrefix(last, "/opt/julia/bin/julia ") {
		t.Errorf("Final invocation line = %q; want julia binary prefix", last)
	}

	if !strings.Contains(script, "> "+filepath.Join(proj, "pbs", "run_env.toml")) {
		t.Errorf("Script missing env snapshot redirect:\n%s", script)
	}
}

func TestGenerateBackfillsOmpthreadsFromThreads(t *testing.T) {
	proj := filepath.Join(t.TempDir(), "proj")

	inv := &julia.Invocation{BinDir: "/opt/julia/bin", Threads: 5, Project: proj, Script: "run.jl"}
	job := NewJobSpec(&ResourceSpec{Select: Int(1)}, nil, "acct", "job1")

	if _, err := Generate(job, inv); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if job.Resources.Ompthreads == nil || *job.Resources.Ompthreads != 5 {
		t.Errorf("ompthreads not back-filled from thread count: %v", job.Resources.Ompthreads)
	}
}

func TestGenerateBadSuffixWritesNothing(t *testing.T) {
	proj := filepath.Join(t.TempDir(), "proj")

	inv := &julia.Invocation{BinDir: "/opt/julia/bin", Threads: 1, Project: proj, Script: "run.py"}
	job := NewJobSpec(&ResourceSpec{Ncpus: Int(1)}, nil, "acct", "job1")

	if _, err := Generate(job, inv); !errors.Is(err, julia.ErrNotJuliaScript) {
		t.Fatalf("Generate = %v; want ErrNotJuliaScript", err)
	}

	// Precondition failures happen before any filesystem mutation.
	if _, err := os.Stat(proj); !os.IsNotExist(err) {
		t.Errorf("project directory was created despite precondition failure")
	}
	if _, err := os.Stat(PathsFor(proj, "run.py").Script); !os.IsNotExist(err) {
		t.Errorf("job script was written despite precondition failure")
	}
}

func TestGenerateX11PreconditionWritesNothing(t *testing.T) {
	proj := filepath.Join(t.TempDir(), "proj")

	inv := &julia.Invocation{BinDir: "/opt/julia/bin", Threads: 1, Project: proj, Script: "run.jl"}
	job := NewJobSpec(&ResourceSpec{Ncpus: Int(1)}, nil, "acct", "job1")
	job.X11Forwarding = true

	if _, err := Generate(job, inv); !errors.Is(err, ErrX11NeedsInteractive) {
		t.Fatalf("Generate = %v; want ErrX11NeedsInteractive", err)
	}
	if _, err := os.Stat(proj); !os.IsNotExist(err) {
		t.Errorf("project directory was created despite precondition failure")
	}
}

func TestGenerateEmptyResourcesWritesNothing(t *testing.T) {
	proj := filepath.Join(t.TempDir(), "proj")

	// Threads=0 so the back-fill cannot rescue the empty spec.
	inv := &julia.Invocation{BinDir: "/opt/julia/bin", Project: proj, Script: "run.jl"}
	job := NewJobSpec(&ResourceSpec{}, nil, "acct", "job1")

	if _, err := Generate(job, inv); !errors.Is(err, ErrEmptyResourceList) {
		t.Fatalf("Generate = %v; want ErrEmptyResourceList", err)
	}
	if _, err := os.Stat(proj); !os.IsNotExist(err) {
		t.Errorf("project directory was created despite precondition failure")
	}
}

func TestGenerateInteractiveFlagReachesInvocation(t *testing.T) {
	proj := filepath.Join(t.TempDir(), "proj")

	inv := &julia.Invocation{BinDir: "/opt/julia/bin", Threads: 1, Project: proj, Script: "run.jl"}
	job := NewInteractiveJobSpec(&ResourceSpec{Ncpus: Int(1)}, nil, "acct", "job1")

	scriptPath, err := Generate(job, inv)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	content, err := os.ReadFile(scriptPath)
	if err != nil {
		t.Fatalf("Failed to read generated script: %v", err)
	}
	if !strings.Contains(string(content), "--interactive") {
		t.Errorf("Interactive job did not default the interactive switch:\n%s", content)
	}
}
