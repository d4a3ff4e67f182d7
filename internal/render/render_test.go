package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/boiler/boiler/internal/value"
)

func baseContext() value.Value {
	return value.Object(map[string]value.Value{
		"name":                     value.String("Example Project"),
		"full_name":                value.String("John Doe"),
		"license":                  value.String("MIT"),
		"langs":                    value.Strings("rust"),
		"frameworks":               value.Strings(),
		"repo_owner":               value.String("octo"),
		"repo_name":                value.String("example"),
		"crate_published":          value.Bool(false),
		"coverage_enabled":         value.Bool(false),
		"first_activity_year":      value.Int(2019),
		"last_activity_year":       value.Int(2024),
		"gh_actions_rust_versions": value.Strings("stable", "nightly"),
		"gh_actions_rust_os":       value.Strings("ubuntu-latest", "macos-latest"),
		"gh_actions_rust_features": value.Strings(),
		"gh_actions_go_versions":   value.Strings("stable", "1.22"),
	})
}

func with(ctx value.Value, key string, v value.Value) value.Value {
	out := ctx.Clone()
	out.Set(key, v)
	return out
}

func TestNewParsesEveryTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	for _, name := range []string{
		".github/dependabot.yml",
		".github/workflows/docker-publish.yml",
		".github/workflows/go.yml",
		".github/workflows/pre-commit.yml",
		".github/workflows/python.yml",
		".github/workflows/rust.yml",
		".pre-commit-config.yaml",
		"LICENSE.agpl-3.0",
		"LICENSE.gpl-3.0",
		"LICENSE.mit",
		"README.header.md",
		"rustfmt.toml",
	} {
		assert.True(t, r.Has(name), name)
	}
	assert.Contains(t, r.Names(), "rustfmt.toml")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Default().Render("nope.yml", baseContext())
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestReadmeHeader(t *testing.T) {
	out, err := Default().Render("README.header.md", baseContext())
	require.NoError(t, err)
	want := "Example Project\n" +
		"===============\n" +
		"\n" +
		"[![Rust Build Status](https://github.com/octo/example/workflows/Rust%20CI/badge.svg)](https://github.com/octo/example/actions/workflows/rust.yml)\n" +
		"[![MIT licensed](https://img.shields.io/github/license/octo/example)](https://github.com/octo/example/blob/master/LICENSE)\n"
	assert.Equal(t, want, out)
}

func TestReadmeHeader_WithoutRemote(t *testing.T) {
	ctx := value.Object(map[string]value.Value{"name": value.String("Tool")})
	out, err := Default().Render("README.header.md", ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tool\n====\n\n", out)
	assert.NotContains(t, out, "no value")
}

func TestReadmeHeader_CrateBadges(t *testing.T) {
	ctx := with(baseContext(), "crate_published", value.Bool(true))
	ctx = with(ctx, "crate_name", value.String("example-crate"))
	ctx = with(ctx, "repo_default_branch", value.String("main"))
	out, err := Default().Render("README.header.md", ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "https://crates.io/crates/example-crate")
	assert.Contains(t, out, "/blob/main/LICENSE")
}

func TestLicenseTemplates(t *testing.T) {
	out, err := Default().Render("LICENSE.mit", baseContext())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "MIT License\n\nCopyright (c) 2019-2024 John Doe\n"), out)

	out, err = Default().Render("LICENSE.gpl-3.0", with(baseContext(), "last_activity_year", value.Int(2019)))
	require.NoError(t, err)
	assert.Contains(t, out, "Copyright (C) 2019 John Doe\n")
	assert.Contains(t, out, "GNU General Public License")

	out, err = Default().Render("LICENSE.agpl-3.0", value.EmptyObject())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "This program\nCopyright (C)\n"), out)
	assert.Contains(t, out, "GNU Affero General Public License")
}

func TestDependabotFollowsLangs(t *testing.T) {
	out, err := Default().Render(".github/dependabot.yml", with(baseContext(), "langs", value.Strings("python", "go")))
	require.NoError(t, err)
	assert.Contains(t, out, `"pip"`)
	assert.Contains(t, out, `"gomod"`)
	assert.NotContains(t, out, `"cargo"`)
}

func TestWorkflowsAreValidYAML(t *testing.T) {
	ctx := with(baseContext(), "langs", value.Strings("rust", "python", "go", "docker", "json", "toml", "yaml", "shell"))
	ctx = with(ctx, "frameworks", value.Strings("trunk", "django"))
	ctx = with(ctx, "trunk_configs", value.Strings("Trunk.toml", "web/Trunk.toml"))
	ctx = with(ctx, "dockerfiles", value.Strings("Dockerfile", "worker.Dockerfile"))
	ctx = with(ctx, "python_package_managers", value.Strings("poetry"))
	ctx = with(ctx, "coverage_enabled", value.Bool(true))
	ctx = with(ctx, "gh_actions_rust_features", value.Strings("", "serde"))

	for _, name := range []string{
		".github/dependabot.yml",
		".github/workflows/docker-publish.yml",
		".github/workflows/go.yml",
		".github/workflows/pre-commit.yml",
		".github/workflows/python.yml",
		".github/workflows/rust.yml",
		".pre-commit-config.yaml",
	} {
		t.Run(name, func(t *testing.T) {
			out, err := Default().Render(name, ctx)
			require.NoError(t, err)
			assert.NotContains(t, out, "<no value>")
			var doc map[string]any
			require.NoError(t, yaml.Unmarshal([]byte(out), &doc), out)
			assert.NotEmpty(t, doc)
		})
	}
}

func TestRustWorkflowJobs(t *testing.T) {
	ctx := with(baseContext(), "frameworks", value.Strings("trunk"))
	ctx = with(ctx, "trunk_configs", value.Strings("web/Trunk.toml"))
	ctx = with(ctx, "coverage_enabled", value.Bool(true))
	out, err := Default().Render(".github/workflows/rust.yml", ctx)
	require.NoError(t, err)

	var doc struct {
		Jobs map[string]any `yaml:"jobs"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc.Jobs, "coverage")
	assert.Contains(t, doc.Jobs, "trunk")
	assert.Contains(t, out, "working-directory: web\n")
	assert.Contains(t, out, "rust: [stable, nightly]\n")
	assert.NotContains(t, out, "features:")
}

func TestDockerImageNames(t *testing.T) {
	ctx := with(baseContext(), "dockerfiles", value.Strings("Dockerfile", "Worker.Dockerfile"))
	ctx = with(ctx, "repo_owner", value.String("Octo"))
	out, err := Default().Render(".github/workflows/docker-publish.yml", ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "image: octo/example\n")
	assert.Contains(t, out, "image: octo/example-worker\n")
}

func TestYAMLList(t *testing.T) {
	got, err := yamlList([]any{"stable", "1.70", "", `a"b`, "x,y"})
	require.NoError(t, err)
	assert.Equal(t, `[stable, "1.70", "", "a\"b", "x,y"]`, got)

	got, err = yamlList(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	_, err = yamlList("stable")
	assert.Error(t, err)
	_, err = yamlList([]any{int64(1)})
	assert.Error(t, err)
}

func TestPathParent(t *testing.T) {
	assert.Equal(t, ".", pathParent("Trunk.toml"))
	assert.Equal(t, "apps/web", pathParent("apps/web/Trunk.toml"))
}

func TestYears(t *testing.T) {
	assert.Equal(t, "2019-2024", years(map[string]any{"first_activity_year": int64(2019), "last_activity_year": int64(2024)}))
	assert.Equal(t, "2024", years(map[string]any{"first_activity_year": int64(2024), "last_activity_year": int64(2024)}))
	assert.Equal(t, "2020", years(map[string]any{"first_activity_year": int64(2020)}))
	assert.Equal(t, "", years(map[string]any{}))
}
