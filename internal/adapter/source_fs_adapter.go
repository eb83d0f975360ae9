// Package adapter contains filesystem and persistence adapters for the guardpatch CLI.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

// BackupLayout is the time layout of the suffix appended to backup copies.
const BackupLayout = "20060102_150405"

// SourceExtensions are the file extensions picked up when a target is a directory.
var SourceExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

var skippedDirs = []string{".git", "node_modules", ".next", "dist", "build"}

// SourceFSAdapter abstracts filesystem-specific operations that the workflow
// relies on when patching user files. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Expand resolves targets into source files. A directory contributes its
	// own source files; a `/...` suffix descends into subdirectories.
	// Explicit file targets are kept whatever their extension.
	Expand(targets []m.Path) ([]m.Path, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile replaces the file atomically, keeping its permissions.
	WriteFile(path m.Path, content []byte) error

	// Backup copies path byte for byte to path.backup_YYYYMMDD_HHMMSS.
	Backup(path m.Path, at time.Time) (m.Path, error)

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the disk-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Expand resolves targets into a de-duplicated list of source files in
// argument order, directory contents sorted by path.
func (a *LocalSourceFSAdapter) Expand(targets []m.Path) ([]m.Path, error) {
	seen := make(map[string]struct{})

	var files []m.Path

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, m.Path(path))
	}

	for _, target := range targets {
		root, recursive := parseRootPath(string(target))
		if root == "" {
			root = "."
		}

		info, err := a.FileInfo(m.Path(root))
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", target, err)
		}

		if !info.IsDir() {
			add(filepath.Clean(root))

			continue
		}

		err = a.Walk(m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != root && slices.Contains(skippedDirs, info.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if isSourceFile(path) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a temporary file in the same directory and
// renames it over path, so readers never observe a partial file.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	target := string(path)

	perm := os.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".guardpatch-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	return os.Rename(tmpName, target)
}

// Backup copies the file at path next to it with a timestamp suffix.
func (a *LocalSourceFSAdapter) Backup(path m.Path, at time.Time) (m.Path, error) {
	dst := BackupPath(path, at)

	src, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() { _ = src.Close() }()

	info, err := src.Stat()
	if err != nil {
		return "", err
	}

	// #nosec G304 - dst is derived from a target the user named
	out, err := os.OpenFile(string(dst), os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return "", err
	}

	if err := out.Close(); err != nil {
		return "", err
	}

	return dst, nil
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// BackupPath returns the backup name of path for a run started at.
func BackupPath(path m.Path, at time.Time) m.Path {
	return m.Path(string(path) + ".backup_" + at.Format(BackupLayout))
}

func isSourceFile(path string) bool {
	if strings.HasSuffix(path, ".d.ts") {
		return false
	}

	return slices.Contains(SourceExtensions, filepath.Ext(path))
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if strings.HasSuffix(rootStr, "/...") {
		return strings.TrimSuffix(rootStr, "/..."), true
	}

	return rootStr, false
}
