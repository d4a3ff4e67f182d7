package actions

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/boiler/boiler/internal/render"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

func tempRepo(t *testing.T, files map[string]string) repo.Repo {
	t.Helper()
	dir := t.TempDir()
	for rel, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	r, err := repo.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return r
}

func ctxWith(kv map[string]value.Value) value.Value {
	return value.Object(kv)
}

func run(t *testing.T, a Action, r repo.Repo, ctx value.Value) *render.MemorySink {
	t.Helper()
	sink := render.NewMemorySink(r)
	if err := a.Run(Data{Repo: r, Context: ctx, Sink: sink}); err != nil {
		t.Fatalf("%s: %v", a.Meta().Name, err)
	}
	return sink
}

func TestDefaultOrder(t *testing.T) {
	want := []string{
		"dependabot_config", "docker_ci", "go_ci", "license", "pre_commit_ci",
		"pre_commit_config", "python_ci", "readme", "rust_ci", "rustfmt_toml",
	}
	if got := Default().Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for _, m := range Default().Metas() {
		if m.Description == "" || !m.DefaultEnabled {
			t.Fatalf("%s: want description and default enabled, got %+v", m.Name, m)
		}
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	if _, err := NewRegistry(License{}, License{}); err == nil {
		t.Fatal("expected duplicate name error")
	}
	if _, ok := Default().Lookup("readme"); !ok {
		t.Fatal("readme not found")
	}
	if _, ok := Default().Lookup("nope"); ok {
		t.Fatal("unexpected lookup hit")
	}
}

func TestLangGatedActions(t *testing.T) {
	cases := []struct {
		action FileAction
		lang   string
	}{
		{DockerCI(), "docker"},
		{GoCI(), "go"},
		{PythonCI(), "python"},
		{RustCI(), "rust"},
		{RustfmtToml(), "rust"},
	}
	for _, tc := range cases {
		t.Run(tc.action.Meta().Name, func(t *testing.T) {
			r := tempRepo(t, nil)
			sink := run(t, tc.action, r, value.EmptyObject())
			if n := len(sink.Changes()); n != 0 {
				t.Fatalf("empty context wrote %d files", n)
			}
			sink = run(t, tc.action, r, ctxWith(map[string]value.Value{
				"langs":                    value.Strings(tc.lang),
				"gh_actions_rust_versions": value.Strings("stable"),
				"gh_actions_rust_os":       value.Strings("ubuntu-latest"),
			}))
			got, ok := sink.Content(tc.action.Path)
			if !ok || got == "" {
				t.Fatalf("expected %s to be written", tc.action.Path)
			}
		})
	}
}

func TestUngatedActionsAlwaysWrite(t *testing.T) {
	for _, a := range []FileAction{DependabotConfig(), PreCommitCI(), PreCommitConfig()} {
		r := tempRepo(t, nil)
		sink := run(t, a, r, value.EmptyObject())
		if _, ok := sink.Content(a.Path); !ok {
			t.Fatalf("%s: nothing written", a.Meta().Name)
		}
	}
}

func TestLicense(t *testing.T) {
	r := tempRepo(t, nil)
	sink := run(t, License{}, r, ctxWith(map[string]value.Value{"license": value.String("LicenseRef-proprietary")}))
	if n := len(sink.Changes()); n != 0 {
		t.Fatalf("proprietary license wrote %d files", n)
	}
	sink = run(t, License{}, r, ctxWith(map[string]value.Value{"license": value.String("Apache-2.0")}))
	if n := len(sink.Changes()); n != 0 {
		t.Fatalf("license without template wrote %d files", n)
	}

	fs := render.NewFileSink(r)
	ctx := ctxWith(map[string]value.Value{
		"license":   value.String("MIT"),
		"full_name": value.String("John Doe"),
	})
	if err := (License{}).Run(Data{Repo: r, Context: ctx, Sink: fs}); err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(r.Root, "LICENSE"))
	if err != nil {
		t.Fatalf("read LICENSE: %v", err)
	}
	if !strings.HasPrefix(string(b), "MIT License\n") || !strings.Contains(string(b), "John Doe") {
		t.Fatalf("unexpected LICENSE:\n%s", b)
	}
}

func readmeContext() value.Value {
	return ctxWith(map[string]value.Value{
		"name":       value.String("Example Project"),
		"license":    value.String("MIT"),
		"langs":      value.Strings("rust"),
		"repo_owner": value.String("m4tx"),
		"repo_name":  value.String("boiler"),
	})
}

const wantReadme = "Example Project\n" +
	"===============\n" +
	"\n" +
	"[![Rust Build Status](https://github.com/m4tx/boiler/workflows/Rust%20CI/badge.svg)](https://github.com/m4tx/boiler/actions/workflows/rust.yml)\n" +
	"[![MIT licensed](https://img.shields.io/github/license/m4tx/boiler)](https://github.com/m4tx/boiler/blob/master/LICENSE)\n" +
	"\n" +
	"This is a very useful tool!\n"

func TestReadmeReplacesHeader(t *testing.T) {
	r := tempRepo(t, map[string]string{
		"README.md": "Old name\n========\n\n[![Old badge](https://example.com/b.svg)](https://example.com)\n\nThis is a very useful tool!",
	})
	sink := run(t, Readme{}, r, readmeContext())
	got, _ := sink.Content("README.md")
	if got != wantReadme {
		t.Fatalf("README mismatch:\n%q\nwant\n%q", got, wantReadme)
	}
}

func TestReadmeATXTitle(t *testing.T) {
	r := tempRepo(t, map[string]string{"README.md": "# Old\r\n\r\nThis is a very useful tool!\r\n"})
	sink := run(t, Readme{}, r, readmeContext())
	if got, _ := sink.Content("README.md"); got != wantReadme {
		t.Fatalf("README mismatch:\n%q", got)
	}
}

func TestReadmeMissing(t *testing.T) {
	r := tempRepo(t, nil)
	sink := run(t, Readme{}, r, ctxWith(map[string]value.Value{"name": value.String("Tool")}))
	got, ok := sink.Content("README.md")
	if !ok || got != "Tool\n====\n" {
		t.Fatalf("got %q", got)
	}
}

func TestReadmeIdempotent(t *testing.T) {
	r := tempRepo(t, map[string]string{"README.md": "This is a very useful tool!\n"})
	for i, want := range []render.Status{render.Updated, render.Unchanged} {
		fs := render.NewFileSink(r)
		if err := (Readme{}).Run(Data{Repo: r, Context: readmeContext(), Sink: fs}); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		changes := fs.Changes()
		if len(changes) != 1 || changes[0].Status != want {
			t.Fatalf("run %d: changes = %+v, want status %s", i, changes, want)
		}
	}
	b, _ := os.ReadFile(filepath.Join(r.Root, "README.md"))
	if string(b) != wantReadme {
		t.Fatalf("README on disk:\n%q", b)
	}
}

func TestStripHeader(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"body\n", "body\n"},
		{"# T\n\nbody\n", "body\n"},
		{"T\n=\n\n[![a](b)](c)\n\nbody\n# x\n", "body\n# x\n"},
		{"\n\n[![a](b)](c)\ntext [![a](b)](c)\n", "text [![a](b)](c)\n"},
	}
	for _, tc := range cases {
		if got := stripHeader(tc.in); got != tc.want {
			t.Errorf("stripHeader(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMissingSink(t *testing.T) {
	r := tempRepo(t, nil)
	if err := PreCommitCI().Run(Data{Repo: r, Context: value.EmptyObject()}); err == nil {
		t.Fatal("expected error without a sink")
	}
}
