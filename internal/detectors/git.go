package detectors

import (
	"log/slog"
	"time"

	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/git"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

// Git detects git as the VCS and reads the repository identity and its
// activity period.
type Git struct {
	Clock Clock
}

func (Git) Meta() capability.Meta {
	return capability.Meta{
		Name:           "git",
		Description:    "Detects if the project is using git as the VCS and detects basic metadata, such as repository owner/name and the activity period.",
		DefaultEnabled: true,
	}
}

func (d Git) Detect(r repo.Repo) (value.Value, error) {
	out := value.EmptyObject()
	// Linked worktrees and submodule checkouts have a .git file.
	if !r.DirExists(".git") && !r.Exists(".git") {
		return out, nil
	}
	gr, err := git.Open(r.Root)
	if err != nil {
		return value.Value{}, err
	}
	out.Set(ctxkeys.VCS, value.Strings("git"))

	first, last, ok, err := gr.ActivitySpan()
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		slog.Warn("repository has no commits, using the current year as activity period", "root", r.Root)
		first = d.now()
		last = first
	}
	out.Set(ctxkeys.FirstActivityYear, value.Int(int64(first.Year())))
	out.Set(ctxkeys.LastActivityYear, value.Int(int64(last.Year())))

	if raw, ok := gr.RemoteURL(); ok {
		if remote, ok := git.ParseRemoteURL(raw); ok {
			out.Set(ctxkeys.RepoOwner, value.String(remote.Owner))
			out.Set(ctxkeys.RepoName, value.String(remote.Name))
			out.Set(ctxkeys.RepoURL, value.String(remote.WebURL()))
		} else {
			slog.Warn("could not parse remote URL", "url", raw)
		}
	} else {
		slog.Warn("no remote configured; repository owner and name unknown", "root", r.Root)
	}
	if branch, ok := gr.DefaultBranch(); ok {
		out.Set(ctxkeys.RepoDefaultBranch, value.String(branch))
	}
	out.Set(ctxkeys.GitHasSubmodules, value.Bool(git.HasSubmodules(r.Root)))
	return out, nil
}

func (d Git) now() time.Time {
	if d.Clock == nil {
		return time.Now().UTC()
	}
	return d.Clock.Now().UTC()
}
