package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boiler/boiler/internal/repo"
)

func openRepo(t *testing.T) repo.Repo {
	t.Helper()
	r, err := repo.Open(t.TempDir())
	require.NoError(t, err)
	return r
}

func TestFileSink(t *testing.T) {
	r := openRepo(t)
	s := NewFileSink(r)

	st, err := s.WriteFile(".github/workflows/ci.yml", "one\n")
	require.NoError(t, err)
	assert.Equal(t, Created, st)
	b, err := os.ReadFile(filepath.Join(r.Root, ".github", "workflows", "ci.yml"))
	require.NoError(t, err)
	assert.Equal(t, "one\n", string(b))

	st, err = s.WriteFile(".github/workflows/ci.yml", "one\n")
	require.NoError(t, err)
	assert.Equal(t, Unchanged, st)

	require.NoError(t, os.WriteFile(filepath.Join(r.Root, "rustfmt.toml"), []byte("old\n"), 0o644))
	st, err = s.WriteFile("rustfmt.toml", "new\n")
	require.NoError(t, err)
	assert.Equal(t, Updated, st)

	changes := s.Changes()
	require.Len(t, changes, 2)
	assert.Equal(t, ".github/workflows/ci.yml", changes[0].Path)
	assert.Equal(t, Created, changes[0].Status)
	assert.Equal(t, Checksum("one\n"), changes[0].Checksum)
	assert.Equal(t, Updated, changes[1].Status)
	assert.Equal(t, "old\n", changes[1].Old)
}

func TestFileSink_UnchangedLeavesFileAlone(t *testing.T) {
	r := openRepo(t)
	p := filepath.Join(r.Root, "LICENSE")
	require.NoError(t, os.WriteFile(p, []byte("same"), 0o600))

	st, err := NewFileSink(r).WriteFile("LICENSE", "same")
	require.NoError(t, err)
	assert.Equal(t, Unchanged, st)
	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileSink_RejectsEscapingPaths(t *testing.T) {
	s := NewFileSink(openRepo(t))
	_, err := s.WriteFile("../outside", "x")
	assert.Error(t, err)
	_, err = NewMemorySink(openRepo(t)).WriteFile("/etc/passwd", "x")
	assert.Error(t, err)
}

func TestMemorySink(t *testing.T) {
	r := openRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(r.Root, "README.md"), []byte("old\n"), 0o644))
	s := NewMemorySink(r)

	st, err := s.WriteFile("README.md", "new\n")
	require.NoError(t, err)
	assert.Equal(t, Updated, st)
	st, err = s.WriteFile("README.md", "new\n")
	require.NoError(t, err)
	assert.Equal(t, Unchanged, st)

	b, err := os.ReadFile(filepath.Join(r.Root, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(b), "memory sink must not write")

	got, ok := s.Content("README.md")
	require.True(t, ok)
	assert.Equal(t, "new\n", got)

	changes := s.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, Updated, changes[0].Status, "net change is still an update")

	diff := changes[0].Diff()
	assert.Contains(t, diff, "--- a/README.md")
	assert.Contains(t, diff, "-old")
	assert.Contains(t, diff, "+new")
}

func TestChangeDiff_Unchanged(t *testing.T) {
	assert.Empty(t, Change{Path: "x", Status: Unchanged, Old: "a", New: "a"}.Diff())
}
