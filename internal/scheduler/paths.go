package scheduler

import (
	"path/filepath"
	"strings"
)

// LogDirName is the per-project directory holding all job artifacts.
const LogDirName = "pbs"

// JobPaths holds the deterministic artifact paths for one (project, script)
// pair. All artifacts live in <project>/pbs and are named
// <script-basename-without-suffix>_<kind>.
type JobPaths struct {
	Dir    string // <project>/pbs
	Stdout string // <base>_stdout.txt
	Stderr string // <base>_stderr.txt
	EnvLog string // <base>_env.toml
	Script string // <base>_job.pbs
}

// PathsFor derives the artifact paths for a project directory and script
// path. Pure: it never touches the filesystem. Both the log-path defaulting
// step and the final script write use this same function, so the paths in
// the directive header always match the file actually written.
func PathsFor(project, script string) JobPaths {
	base := filepath.Base(script)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Join(project, LogDirName)
	return JobPaths{
		Dir:    dir,
		Stdout: filepath.Join(dir, base+"_stdout.txt"),
		Stderr: filepath.Join(dir, base+"_stderr.txt"),
		EnvLog: filepath.Join(dir, base+"_env.toml"),
		Script: filepath.Join(dir, base+"_job.pbs"),
	}
}
