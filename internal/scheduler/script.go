package scheduler

import (
	"bytes"
	"os"

	"github.com/jondeuce/arctools/internal/julia"
	"github.com/jondeuce/arctools/internal/utils"
)

// Generate composes a JobSpec and a Julia invocation into one self-contained
// job script and writes it to the deterministic script path for
// (inv.Project, inv.Script). It returns the path of the written script.
//
// The sequence is: validate, default-fill, render, create directories, write
// one file. Precondition violations (bad script suffix, X11 without
// interactive, empty resource list) fail before any filesystem mutation.
// I/O failures propagate as *ScriptCreationError with no cleanup.
//
// Generate mutates job and inv in place while defaulting: empty log paths
// are filled from the path convention, ompthreads is back-filled from the
// invocation thread count when still unset after Normalize, and the
// invocation's env/flags defaults are merged set-if-absent.
//
// Two concurrent generations against the same project and script name race
// on the same output file; callers wanting parallel generation must target
// distinct (project, script) pairs.
func Generate(job *JobSpec, inv *julia.Invocation) (string, error) {
	if err := inv.Validate(); err != nil {
		return "", err
	}
	if err := job.Validate(); err != nil {
		return "", err
	}

	paths := PathsFor(inv.Project, inv.Script)
	if job.Stdout == "" {
		job.Stdout = paths.Stdout
	}
	if job.Stderr == "" {
		job.Stderr = paths.Stderr
	}

	job.Resources.Normalize()
	if job.Resources.Ompthreads == nil && inv.Threads > 0 {
		job.Resources.Ompthreads = Int(inv.Threads)
	}
	inv.ApplyDefaults(job.Interactive)

	var buf bytes.Buffer
	if err := job.WriteHeader(&buf); err != nil {
		return "", err
	}
	buf.WriteString("\n")
	inv.WriteBody(&buf, paths.EnvLog)

	if err := utils.EnsureDir(inv.Project); err != nil {
		return "", NewScriptCreationError(job.JobName, inv.Project, err)
	}
	if err := utils.EnsureDir(paths.Dir); err != nil {
		return "", NewScriptCreationError(job.JobName, paths.Dir, err)
	}
	if err := os.WriteFile(paths.Script, buf.Bytes(), utils.PermExec); err != nil {
		return "", NewScriptCreationError(job.JobName, paths.Script, err)
	}

	utils.PrintDebug("Wrote job script: %s", utils.StylePath(paths.Script))
	return paths.Script, nil
}
