package actions

import (
	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/value"
)

// FileAction renders one template to one path when its predicate holds.
type FileAction struct {
	meta     capability.Meta
	Path     string
	Template string
	When     func(ctx value.Value) bool
}

func (a FileAction) Meta() capability.Meta { return a.meta }

func (a FileAction) Run(d Data) error {
	if a.When != nil && !a.When(d.Context) {
		return nil
	}
	return d.write(a.Path, a.Template)
}

func whenLang(lang string) func(value.Value) bool {
	return func(ctx value.Value) bool { return hasLang(ctx, lang) }
}

func fileAction(name, description, path string, when func(value.Value) bool) FileAction {
	return FileAction{
		meta:     capability.Meta{Name: name, Description: description, DefaultEnabled: true},
		Path:     path,
		Template: path,
		When:     when,
	}
}

func DependabotConfig() FileAction {
	return fileAction("dependabot_config",
		"Generates a Dependabot config for GitHub Actions and every detected package ecosystem.",
		".github/dependabot.yml", nil)
}

func DockerCI() FileAction {
	return fileAction("docker_ci",
		"Generates a GitHub Actions workflow that builds and publishes Docker images.",
		".github/workflows/docker-publish.yml", whenLang("docker"))
}

func GoCI() FileAction {
	return fileAction("go_ci",
		"Generates a GitHub Actions workflow that builds, vets and tests Go modules.",
		".github/workflows/go.yml", whenLang("go"))
}

func PreCommitCI() FileAction {
	return fileAction("pre_commit_ci",
		"Generates a GitHub Actions workflow running pre-commit.",
		".github/workflows/pre-commit.yml", nil)
}

func PreCommitConfig() FileAction {
	return fileAction("pre_commit_config",
		"Generates a pre-commit config with hooks for the detected languages.",
		".pre-commit-config.yaml", nil)
}

func PythonCI() FileAction {
	return fileAction("python_ci",
		"Generates a GitHub Actions workflow for Python projects using pip or Poetry.",
		".github/workflows/python.yml", whenLang("python"))
}

func RustCI() FileAction {
	return fileAction("rust_ci",
		"Generates a GitHub Actions workflow for Rust: build matrix, clippy, rustfmt, coverage and Trunk.",
		".github/workflows/rust.yml", whenLang("rust"))
}

func RustfmtToml() FileAction {
	return fileAction("rustfmt_toml",
		"Generates rustfmt.toml.",
		"rustfmt.toml", whenLang("rust"))
}
