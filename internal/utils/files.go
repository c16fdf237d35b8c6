package utils

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Standard default permissions
// File: u=rw, g=rw, o=r
const PermFile os.FileMode = 0664

// Dir:  u=rwx, g=rwx, o=rx (Requires +x to traverse)
const PermDir os.FileMode = 0775

// Exec: u=rwx, g=rwx, o=rx (job scripts must be executable)
const PermExec os.FileMode = 0775

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDir checks if a directory exists, and creates it if it doesn't.
func EnsureDir(path string) error {
	if DirExists(path) {
		return nil
	}
	return os.MkdirAll(path, PermDir)
}

// stageEntries are the project entries staged by StageProject, in copy order.
// Missing entries are skipped; a Julia project without a Manifest.toml is
// still a valid staging source.
var stageEntries = []string{"Project.toml", "Manifest.toml", "src", "scripts"}

// StageProject copies a Julia project's manifest, source, and script folders
// from srcDir into a fresh destDir and returns destDir. The destination must
// not already exist.
func StageProject(srcDir, destDir string) (string, error) {
	if !DirExists(srcDir) {
		return "", fmt.Errorf("project directory %s not found", srcDir)
	}
	if _, err := os.Stat(destDir); err == nil {
		return "", fmt.Errorf("staging destination %s already exists", destDir)
	}
	if err := os.MkdirAll(destDir, PermDir); err != nil {
		return "", fmt.Errorf("failed to create staging directory %s: %w", destDir, err)
	}

	for _, entry := range stageEntries {
		src := filepath.Join(srcDir, entry)
		dst := filepath.Join(destDir, entry)

		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", err
		}

		if info.IsDir() {
			if err := CopyDir(src, dst); err != nil {
				return "", err
			}
			continue
		}
		if err := copyFile(src, dst); err != nil {
			return "", err
		}
	}

	return destDir, nil
}

// CopyDir recursively copies the directory tree rooted at src to dst.
// Symlinks and special files are skipped.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, PermDir)
		}
		if !d.Type().IsRegular() {
			PrintDebug("Skipping non-regular file during copy: %s", StylePath(path))
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, PermFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}
