package repo

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

var defaultExcludeDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	"vendor":       true,
	"dist":         true,
	"venv":         true,
	"__pycache__":  true,
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// ignoreMatcher loads every .gitignore below the root. A tree without any
// ignore files yields a matcher that never matches.
func (r Repo) ignoreMatcher() gitignore.Matcher {
	patterns, err := gitignore.ReadPatterns(osfs.New(r.Root), nil)
	if err != nil {
		patterns = nil
	}
	return gitignore.NewMatcher(patterns)
}

// Walk calls fn for every regular file in the working tree with its slash
// separated path relative to the root. Hidden entries, paths ignored by
// .gitignore and well-known dependency/build directories are skipped, as are
// entries that cannot be read. Returning fs.SkipAll from fn stops the walk
// without error.
func (r Repo) Walk(fn func(rel string, d fs.DirEntry) error) error {
	ign := r.ignoreMatcher()
	return filepath.WalkDir(r.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && p != r.Root {
				return filepath.SkipDir
			}
			return nil
		}
		if p == r.Root {
			return nil
		}
		rel, relErr := filepath.Rel(r.Root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()
		if d.IsDir() {
			if isHidden(name) || defaultExcludeDirs[name] || ign.Match(strings.Split(rel, "/"), true) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(name) || !d.Type().IsRegular() {
			return nil
		}
		if ign.Match(strings.Split(rel, "/"), false) {
			return nil
		}
		return fn(rel, d)
	})
}

// Glob returns the walked files whose relative path matches a doublestar
// pattern such as "**/Trunk.toml", in walk (lexical) order.
func (r Repo) Glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	var out []string
	err := r.Walk(func(rel string, _ fs.DirEntry) error {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			out = append(out, rel)
		}
		return nil
	})
	return out, err
}

// Any reports whether some walked file satisfies pred. The walk stops at the
// first match.
func (r Repo) Any(pred func(rel string) bool) (bool, error) {
	found := false
	err := r.Walk(func(rel string, _ fs.DirEntry) error {
		if pred(rel) {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	return found, err
}
