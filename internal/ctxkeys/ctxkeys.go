// Package ctxkeys lists the keys shared by detector fragments, the default
// context, override documents and action templates. Detectors and actions
// only ever use these names.
package ctxkeys

const (
	Name     = "name"
	FullName = "full_name"
	License  = "license"

	Langs      = "langs"
	Frameworks = "frameworks"

	VCS               = "vcs"
	RepoOwner         = "repo_owner"
	RepoName          = "repo_name"
	RepoURL           = "repo_url"
	RepoDefaultBranch = "repo_default_branch"
	FirstActivityYear = "first_activity_year"
	LastActivityYear  = "last_activity_year"
	GitHasSubmodules  = "git_has_submodules"

	CrateName       = "crate_name"
	CratePublished  = "crate_published"
	CoverageEnabled = "coverage_enabled"
	TrunkConfigs    = "trunk_configs"

	Dockerfiles = "dockerfiles"

	PythonPackageManagers = "python_package_managers"

	GoModule  = "go_module"
	GoVersion = "go_version"

	GHActionsRustVersions = "gh_actions_rust_versions"
	GHActionsRustOS       = "gh_actions_rust_os"
	GHActionsRustFeatures = "gh_actions_rust_features"
	GHActionsGoVersions   = "gh_actions_go_versions"
)

// LicenseProprietary is the placeholder license used until a real one is
// detected or configured. No LICENSE file is generated for it.
const LicenseProprietary = "LicenseRef-proprietary"

// All returns every known key in a stable order.
func All() []string {
	return []string{
		Name, FullName, License,
		Langs, Frameworks,
		VCS, RepoOwner, RepoName, RepoURL, RepoDefaultBranch,
		FirstActivityYear, LastActivityYear, GitHasSubmodules,
		CrateName, CratePublished, CoverageEnabled, TrunkConfigs,
		Dockerfiles,
		PythonPackageManagers,
		GoModule, GoVersion,
		GHActionsRustVersions, GHActionsRustOS, GHActionsRustFeatures, GHActionsGoVersions,
	}
}

// Known reports whether key belongs to the shared namespace.
func Known(key string) bool {
	for _, k := range All() {
		if k == key {
			return true
		}
	}
	return false
}
