package detectors

import (
	"testing"

	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/value"
)

func TestJavascript(t *testing.T) {
	cases := []struct {
		name  string
		files map[string]string
		langs []string
	}{
		{"none", map[string]string{"main.py": ""}, nil},
		{"js", map[string]string{"src/index.js": ""}, []string{"javascript"}},
		{"ts", map[string]string{"src/index.ts": ""}, []string{"javascript", "typescript"}},
		{"jsx", map[string]string{"App.jsx": ""}, []string{"javascript", "jsx"}},
		{"tsx", map[string]string{"App.tsx": ""}, []string{"javascript", "typescript", "jsx", "tsx"}},
		{"ignored", map[string]string{"node_modules/x/index.js": ""}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := value.EmptyObject()
			if len(tc.langs) > 0 {
				want.Set(ctxkeys.Langs, value.Strings(tc.langs...))
			}
			expectFragment(t, detect(t, Javascript{}, tempRepo(t, tc.files)), want)
		})
	}
}

func TestFileTypeDetectors(t *testing.T) {
	cases := []struct {
		d    Detector
		file string
		lang string
	}{
		{JSON{}, "data/config.json", "json"},
		{TOML{}, "pyproject.toml", "toml"},
		{YAML{}, "ci.yml", "yaml"},
		{YAML{}, "deploy/values.YAML", "yaml"},
	}
	for _, tc := range cases {
		got := detect(t, tc.d, tempRepo(t, map[string]string{tc.file: "", "README.md": ""}))
		expectFragment(t, got, obj(map[string]value.Value{ctxkeys.Langs: value.Strings(tc.lang)}))
	}
	expectFragment(t, detect(t, JSON{}, tempRepo(t, map[string]string{".vscode/settings.json": "{"})), value.EmptyObject())
}
