// Package repo is the read-only handle detectors and actions get for the
// repository being processed.
package repo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned by Join for paths that would leave the root.
var ErrOutsideRoot = errors.New("path escapes repository root")

// Repo points at a repository working tree.
type Repo struct {
	Root string
}

// Open validates root and returns a Repo with an absolute, cleaned root.
func Open(root string) (Repo, error) {
	if strings.ContainsRune(root, 0) {
		return Repo{}, fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return Repo{}, fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Repo{}, fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return Repo{}, fmt.Errorf("path is not a directory: %s", root)
	}
	return Repo{Root: abs}, nil
}

// Join resolves a slash separated path relative to the root. Absolute paths
// and paths that climb out of the root are rejected.
func (r Repo) Join(rel string) (string, error) {
	local := filepath.FromSlash(rel)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%q: %w", rel, ErrOutsideRoot)
	}
	return filepath.Join(r.Root, local), nil
}

// Exists reports whether rel names an existing regular file.
func (r Repo) Exists(rel string) bool {
	p, err := r.Join(rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether rel names an existing directory.
func (r Repo) DirExists(rel string) bool {
	p, err := r.Join(rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// ReadFile reads a file below the root.
func (r Repo) ReadFile(rel string) ([]byte, error) {
	p, err := r.Join(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

// ReadHead reads at most n bytes from the start of a file.
func (r Repo) ReadHead(rel string, n int) ([]byte, error) {
	p, err := r.Join(rel)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, n)
	m, err := f.Read(buf)
	if err != nil && m == 0 && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:m], nil
}
