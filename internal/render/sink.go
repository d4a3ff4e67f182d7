package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/boiler/boiler/internal/repo"
)

// Status is the outcome of a single write.
type Status string

const (
	Unchanged Status = "unchanged"
	Created   Status = "created"
	Updated   Status = "updated"
)

// Change records one file an action produced.
type Change struct {
	Path     string `json:"path"`
	Status   Status `json:"status"`
	Checksum string `json:"checksum"`
	Old      string `json:"-"`
	New      string `json:"-"`
}

// Diff renders the change as a unified diff. Unchanged files yield "".
func (c Change) Diff() string {
	if c.Status == Unchanged {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(c.Path), c.Old, c.New)
	return fmt.Sprint(gotextdiff.ToUnified("a/"+c.Path, "b/"+c.Path, c.Old, edits))
}

// Sink receives the files actions generate. Paths are relative to the
// repository root.
type Sink interface {
	WriteFile(rel, content string) (Status, error)
}

// Checksum is the xxhash of content, as recorded in Change.
func Checksum(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}

type recorder struct {
	mu      sync.Mutex
	changes map[string]Change
}

func (rc *recorder) record(c Change) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.changes == nil {
		rc.changes = map[string]Change{}
	}
	if prev, ok := rc.changes[c.Path]; ok {
		c.Old = prev.Old
		switch {
		case prev.Status == Created:
			c.Status = Created
		case c.New == prev.Old:
			c.Status = Unchanged
		default:
			c.Status = Updated
		}
	}
	rc.changes[c.Path] = c
}

// Changes returns every recorded write, sorted by path. A path written more
// than once keeps its last content.
func (rc *recorder) Changes() []Change {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make([]Change, 0, len(rc.changes))
	for _, c := range rc.changes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func compare(rel string, existing []byte, exists bool, content string) Change {
	c := Change{Path: rel, New: content, Checksum: Checksum(content)}
	switch {
	case !exists:
		c.Status = Created
	case bytes.Equal(existing, []byte(content)):
		c.Status = Unchanged
		c.Old = content
	default:
		c.Status = Updated
		c.Old = string(existing)
	}
	return c
}

func readExisting(r repo.Repo, rel string) ([]byte, bool, error) {
	b, err := r.ReadFile(rel)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// FileSink writes into the repository, skipping files whose content is
// already identical and creating parent directories as needed.
type FileSink struct {
	recorder
	repo repo.Repo
}

func NewFileSink(r repo.Repo) *FileSink {
	return &FileSink{repo: r}
}

func (s *FileSink) WriteFile(rel, content string) (Status, error) {
	path, err := s.repo.Join(rel)
	if err != nil {
		return "", err
	}
	existing, exists, err := readExisting(s.repo, rel)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rel, err)
	}
	c := compare(rel, existing, exists, content)
	if c.Status != Unchanged {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("create parent of %s: %w", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", rel, err)
		}
	}
	slog.Debug("render: write", "path", rel, "status", c.Status)
	s.record(c)
	return c.Status, nil
}

// MemorySink records what would be written without touching the
// repository. Later reads through Content see earlier writes.
type MemorySink struct {
	recorder
	repo repo.Repo
}

func NewMemorySink(r repo.Repo) *MemorySink {
	return &MemorySink{repo: r}
}

func (s *MemorySink) WriteFile(rel, content string) (Status, error) {
	if _, err := s.repo.Join(rel); err != nil {
		return "", err
	}
	existing, exists, err := s.current(rel)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rel, err)
	}
	c := compare(rel, existing, exists, content)
	s.record(c)
	return c.Status, nil
}

func (s *MemorySink) current(rel string) ([]byte, bool, error) {
	s.mu.Lock()
	c, ok := s.changes[rel]
	s.mu.Unlock()
	if ok {
		return []byte(c.New), true, nil
	}
	return readExisting(s.repo, rel)
}

// Content returns the pending content for rel, if it was written.
func (s *MemorySink) Content(rel string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.changes[rel]
	return c.New, ok
}
