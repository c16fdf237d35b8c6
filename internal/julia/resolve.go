package julia

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

// MinVersion is the oldest Julia release the generated flag set supports.
const MinVersion = "v1.6.0"

var (
	// ErrJuliaNotFound indicates no julia binary could be located
	ErrJuliaNotFound = errors.New("julia binary not found")

	// ErrJuliaTooOld indicates the located julia is older than MinVersion
	ErrJuliaTooOld = errors.New("julia version is too old")
)

// Resolver locates the Julia installation's bin directory. The generation
// core never shells out on its own; callers inject a Resolver so generation
// is testable without a Julia installation present.
type Resolver interface {
	Resolve() (binDir string, err error)
}

// StaticResolver returns a fixed bin directory, for configured installations
// and for tests.
type StaticResolver struct {
	BinDir string
}

func (r StaticResolver) Resolve() (string, error) {
	if r.BinDir == "" {
		return "", ErrJuliaNotFound
	}
	return r.BinDir, nil
}

// ExecResolver locates julia on PATH (or at an explicit Binary path),
// resolves symlinks to the real installation, and verifies the version
// against MinVersion.
type ExecResolver struct {
	Binary string // Optional explicit path; "julia" from PATH when empty
}

func (r *ExecResolver) Resolve() (string, error) {
	name := r.Binary
	if name == "" {
		name = "julia"
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrJuliaNotFound, err)
	}

	// Cluster installs typically expose julia via a symlink farm; resolve to
	// the real bin directory so JULIA_BINDIR survives module swaps.
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	version, err := queryVersion(path)
	if err != nil {
		return "", err
	}
	if semver.Compare(version, MinVersion) < 0 {
		return "", fmt.Errorf("%w: found %s, need at least %s", ErrJuliaTooOld, version, MinVersion)
	}

	return filepath.Dir(path), nil
}

var _ Resolver = StaticResolver{}
var _ Resolver = (*ExecResolver)(nil)

// queryVersion runs `julia --version` and returns the semver-tagged version.
func queryVersion(bin string) (string, error) {
	out, err := exec.Command(bin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrJuliaNotFound, err)
	}
	version, err := ParseVersionOutput(string(out))
	if err != nil {
		return "", err
	}
	return version, nil
}

// ParseVersionOutput extracts a "vX.Y.Z" version from `julia --version`
// output of the form "julia version 1.9.3".
func ParseVersionOutput(out string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) == 0 {
		return "", fmt.Errorf("unexpected julia version output: %q", out)
	}
	version := "v" + fields[len(fields)-1]
	if !semver.IsValid(version) {
		return "", fmt.Errorf("unexpected julia version output: %q", out)
	}
	return version, nil
}
