package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if !DirExists(dir) {
		t.Errorf("EnsureDir did not create %s", dir)
	}

	// Idempotent on an existing directory.
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir on existing dir failed: %v", err)
	}
}

func TestStageProject(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "Project.toml"), []byte("name = \"Demo\"\n"), PermFile); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(src, "src"), PermDir); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "src", "Demo.jl"), []byte("module Demo end\n"), PermFile); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	// Extra entry that staging must not copy.
	if err := os.WriteFile(filepath.Join(src, "notes.txt"), []byte("scratch\n"), PermFile); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "staged")
	got, err := StageProject(src, dest)
	if err != nil {
		t.Fatalf("StageProject failed: %v", err)
	}
	if got != dest {
		t.Errorf("StageProject returned %q; want %q", got, dest)
	}

	content, err := os.ReadFile(filepath.Join(dest, "src", "Demo.jl"))
	if err != nil {
		t.Fatalf("staged source missing: %v", err)
	}
	if !strings.Contains(string(content), "module Demo") {
		t.Errorf("staged source content = %q", content)
	}
	if !FileExists(filepath.Join(dest, "Project.toml")) {
		t.Error("staged Project.toml missing")
	}

	// Manifest.toml absent in the source is not an error, and extra
	// entries are not staged.
	if FileExists(filepath.Join(dest, "Manifest.toml")) {
		t.Error("Manifest.toml appeared from nowhere")
	}
	if FileExists(filepath.Join(dest, "notes.txt")) {
		t.Error("unrelated file was staged")
	}
}

func TestStageProjectDestinationExists(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	if _, err := StageProject(src, dest); err == nil {
		t.Error("StageProject succeeded with an existing destination; want error")
	}
}

func TestStageProjectMissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	dest := filepath.Join(t.TempDir(), "staged")

	if _, err := StageProject(missing, dest); err == nil {
		t.Error("StageProject succeeded with a missing source; want error")
	}
}
