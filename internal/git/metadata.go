// Package git reads repository metadata (remote identity, default branch and
// the commit time span) through go-git, without shelling out to a git
// binary.
package git

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNotRepository is returned by Open when root has no .git.
var ErrNotRepository = errors.New("not a git repository")

// Repository wraps an opened go-git repository.
type Repository struct {
	repo *gogit.Repository
}

// Open opens the repository whose working tree is root. root/.git may be a
// directory or a "gitdir:" file pointing at one.
func Open(root string) (*Repository, error) {
	r, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{EnableDotGitCommonDir: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", root, ErrNotRepository)
		}
		return nil, fmt.Errorf("open git repository %s: %w", root, err)
	}
	return &Repository{repo: r}, nil
}

// RemoteURL returns the first fetch URL of the default remote: "origin" when
// present, otherwise the alphabetically first remote.
func (r *Repository) RemoteURL() (string, bool) {
	remotes, err := r.repo.Remotes()
	if err != nil || len(remotes) == 0 {
		return "", false
	}
	sort.Slice(remotes, func(i, j int) bool {
		return remotes[i].Config().Name < remotes[j].Config().Name
	})
	chosen := remotes[0]
	for _, rm := range remotes {
		if rm.Config().Name == "origin" {
			chosen = rm
			break
		}
	}
	urls := chosen.Config().URLs
	if len(urls) == 0 || urls[0] == "" {
		return "", false
	}
	return urls[0], true
}

// DefaultBranch prefers the branch origin/HEAD points at and falls back to
// the branch HEAD names locally, which exists even before the first commit.
func (r *Repository) DefaultBranch() (string, bool) {
	if ref, err := r.repo.Reference(plumbing.NewRemoteHEADReferenceName("origin"), false); err == nil && ref.Type() == plumbing.SymbolicReference {
		return strings.TrimPrefix(ref.Target().String(), "refs/remotes/origin/"), true
	}
	ref, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", false
	}
	if ref.Type() == plumbing.SymbolicReference && ref.Target().IsBranch() {
		return ref.Target().Short(), true
	}
	return "", false
}

// ActivitySpan returns the oldest and newest committer time reachable from
// HEAD. ok is false when HEAD has no commits yet.
func (r *Repository) ActivitySpan() (first, last time.Time, ok bool, err error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return time.Time{}, time.Time{}, false, nil
		}
		return time.Time{}, time.Time{}, false, fmt.Errorf("resolve HEAD: %w", err)
	}
	iter, err := r.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("walk commits: %w", err)
	}
	defer iter.Close()
	err = iter.ForEach(func(c *object.Commit) error {
		when := c.Committer.When.UTC()
		if !ok || when.Before(first) {
			first = when
		}
		if !ok || when.After(last) {
			last = when
		}
		ok = true
		return nil
	})
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("walk commits: %w", err)
	}
	return first, last, ok, nil
}

// Remote is the identity parsed from a remote URL.
type Remote struct {
	Host  string
	Owner string
	Name  string
}

// WebURL is the https address of the repository.
func (r Remote) WebURL() string {
	return "https://" + r.Host + "/" + r.Owner + "/" + r.Name
}

// ParseRemoteURL understands scp-like addresses (git@host:owner/name.git)
// and URLs with a scheme (https, ssh, git). Owner and name are the last two
// path segments, with a trailing ".git" removed.
func ParseRemoteURL(raw string) (Remote, bool) {
	raw = strings.TrimSpace(raw)
	var host, path string
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return Remote{}, false
		}
		host, path = u.Hostname(), u.Path
	} else {
		at := strings.Index(raw, "@")
		colon := strings.Index(raw, ":")
		if colon < 0 || colon < at {
			return Remote{}, false
		}
		host, path = raw[at+1:colon], raw[colon+1:]
	}
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	segs := strings.Split(path, "/")
	if host == "" || len(segs) < 2 {
		return Remote{}, false
	}
	owner, name := segs[len(segs)-2], segs[len(segs)-1]
	if owner == "" || name == "" {
		return Remote{}, false
	}
	return Remote{Host: host, Owner: owner, Name: name}, true
}

// HasSubmodules reports whether the working tree declares submodules.
func HasSubmodules(root string) bool {
	return fileExists(filepath.Join(root, ".gitmodules"))
}
