// Package julia models Julia runtime invocations for generated job scripts.
package julia

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ScriptExt is the required suffix of a Julia entry script.
const ScriptExt = ".jl"

// Environment variables defaulted from the invocation fields.
const (
	EnvBinDir  = "JULIA_BINDIR"
	EnvProject = "JULIA_PROJECT"
	EnvThreads = "JULIA_NUM_THREADS"
)

// ErrNotJuliaScript indicates the entry script does not end in .jl
var ErrNotJuliaScript = errors.New("script is not a Julia script (.jl)")

// Var is one entry of an insertion-ordered variable list. HasValue
// distinguishes `--flag=value` entries from bare `--flag` switches.
type Var struct {
	Name     string
	Value    string
	HasValue bool
}

// Vars is an insertion-ordered name/value list used for both environment
// variables and command-line flags. Rendering iterates in insertion order,
// never sorted; generated scripts stay reproducible only if this order is
// preserved.
type Vars struct {
	entries []Var
}

func (v *Vars) index(name string) int {
	for i, e := range v.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Set stores a valued entry, overwriting in place if the name exists.
func (v *Vars) Set(name, value string) {
	if i := v.index(name); i >= 0 {
		v.entries[i].Value = value
		v.entries[i].HasValue = true
		return
	}
	v.entries = append(v.entries, Var{Name: name, Value: value, HasValue: true})
}

// SetSwitch stores a bare (value-absent) entry, overwriting in place if the
// name exists.
func (v *Vars) SetSwitch(name string) {
	if i := v.index(name); i >= 0 {
		v.entries[i].Value = ""
		v.entries[i].HasValue = false
		return
	}
	v.entries = append(v.entries, Var{Name: name})
}

// SetDefault stores a valued entry only if the name is not already present.
func (v *Vars) SetDefault(name, value string) {
	if v.index(name) < 0 {
		v.Set(name, value)
	}
}

// SetDefaultSwitch stores a bare entry only if the name is not already present.
func (v *Vars) SetDefaultSwitch(name string) {
	if v.index(name) < 0 {
		v.SetSwitch(name)
	}
}

// Get returns the value stored under name.
func (v *Vars) Get(name string) (string, bool) {
	if i := v.index(name); i >= 0 {
		return v.entries[i].Value, true
	}
	return "", false
}

// Has reports whether name is present.
func (v *Vars) Has(name string) bool {
	return v.index(name) >= 0
}

// Entries returns the entries in insertion order.
func (v *Vars) Entries() []Var {
	return v.entries
}

// Len returns the number of entries.
func (v *Vars) Len() int {
	return len(v.entries)
}

// Invocation describes one Julia program run inside a job script.
type Invocation struct {
	BinDir  string   // Directory holding the julia binary
	Threads int      // Worker thread count
	Project string   // Working directory / Julia project
	Script  string   // Entry script, must end in .jl
	Args    []string // Positional arguments passed after the -- separator

	Flags   Vars     // Command-line flags, rendered in insertion order
	Env     Vars     // Exported environment, rendered in insertion order
	Secrets []string // Env var names redacted from the logged snapshot
}

// Validate checks the script-suffix precondition. Called before any
// filesystem mutation so a bad invocation never leaves a partial script.
func (inv *Invocation) Validate() error {
	if !strings.HasSuffix(inv.Script, ScriptExt) {
		return fmt.Errorf("%w: %s", ErrNotJuliaScript, inv.Script)
	}
	return nil
}

// Bin returns the full path of the julia binary.
func (inv *Invocation) Bin() string {
	return filepath.Join(inv.BinDir, "julia")
}

// ApplyDefaults merges default env vars and flags set-if-absent: keys the
// caller already supplied are never overwritten, and repeated application is
// a no-op. Interactive jobs additionally get the interactive switch.
func (inv *Invocation) ApplyDefaults(interactive bool) {
	inv.Env.SetDefault(EnvBinDir, inv.BinDir)
	inv.Env.SetDefault(EnvProject, inv.Project)
	inv.Env.SetDefault(EnvThreads, strconv.Itoa(inv.Threads))

	inv.Flags.SetDefaultSwitch("startup-file=no")
	inv.Flags.SetDefaultSwitch("history-file=no")
	inv.Flags.SetDefaultSwitch("optimize")
	inv.Flags.SetDefaultSwitch("quiet")
	if interactive {
		inv.Flags.SetDefaultSwitch("interactive")
	}
}

// RedactionPattern builds the grep -Ev pattern excluding snapshot lines whose
// key is one of the secret names. Names are regex-escaped and joined into one
// alternation. Returns "" when there are no secrets; an empty alternation
// would match every line.
func (inv *Invocation) RedactionPattern() string {
	if len(inv.Secrets) == 0 {
		return ""
	}
	names := make([]string, len(inv.Secrets))
	for i, name := range inv.Secrets {
		names[i] = regexp.QuoteMeta(name)
	}
	return `^(` + strings.Join(names, "|") + `)\s*=`
}

// CommandLine renders the final runtime invocation line: binary, flags
// (`--name` or `--name=value`), script, the explicit argument separator, and
// the positional args.
func (inv *Invocation) CommandLine() string {
	parts := make([]string, 0, 4+inv.Flags.Len()+len(inv.Args))
	parts = append(parts, inv.Bin())
	for _, f := range inv.Flags.Entries() {
		if f.HasValue {
			parts = append(parts, fmt.Sprintf("--%s=%s", f.Name, f.Value))
		} else {
			parts = append(parts, "--"+f.Name)
		}
	}
	parts = append(parts, inv.Script, "--")
	parts = append(parts, inv.Args...)
	return strings.Join(parts, " ")
}

// WriteBody renders the shell body to w: project directory setup, exports in
// insertion order, the sorted-and-redacted environment snapshot written to
// envLog when the script runs, and the runtime invocation line.
func (inv *Invocation) WriteBody(w io.Writer, envLog string) {
	fmt.Fprintf(w, "mkdir -p %s\n", inv.Project)
	fmt.Fprintf(w, "cd %s\n", inv.Project)

	for _, e := range inv.Env.Entries() {
		fmt.Fprintf(w, "export %s=%s\n", e.Name, e.Value)
	}

	dump := fmt.Sprintf("%s --startup-file=no -e 'using TOML; TOML.print(ENV)'", inv.Bin())
	if pattern := inv.RedactionPattern(); pattern != "" {
		fmt.Fprintf(w, "%s | sort | grep -Ev '%s' > %s\n", dump, pattern, envLog)
	} else {
		fmt.Fprintf(w, "%s | sort > %s\n", dump, envLog)
	}

	fmt.Fprintln(w, inv.CommandLine())
}
