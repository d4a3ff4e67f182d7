package detectors

import (
	"testing"

	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/value"
)

func TestGo_Module(t *testing.T) {
	r := tempRepo(t, map[string]string{"go.mod": "module example.com/tool\n\ngo 1.22\n\nrequire golang.org/x/mod v0.20.0\n"})
	expectFragment(t, detect(t, Go{}, r), obj(map[string]value.Value{
		ctxkeys.Langs:     value.Strings("go"),
		ctxkeys.GoModule:  value.String("example.com/tool"),
		ctxkeys.GoVersion: value.String("1.22"),
	}))
}

func TestGo_NoModule(t *testing.T) {
	expectFragment(t, detect(t, Go{}, tempRepo(t, map[string]string{"main.go": "package main"})), value.EmptyObject())
}

func TestGo_MalformedModuleFails(t *testing.T) {
	r := tempRepo(t, map[string]string{"go.mod": "module \"unterminated\n"})
	if _, err := (Go{}).Detect(r); err == nil {
		t.Fatal("expected parse error for go.mod")
	}
}
