package detectors

import (
	"io/fs"

	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

// jsLangs maps each reported language to the extensions that imply it, in
// the order the languages are reported.
var jsLangs = []struct {
	lang string
	exts []string
}{
	{"javascript", []string{"js", "ts", "jsx", "tsx"}},
	{"typescript", []string{"ts", "tsx"}},
	{"jsx", []string{"jsx", "tsx"}},
	{"tsx", []string{"tsx"}},
}

// Javascript detects JavaScript and its TypeScript/JSX flavours.
type Javascript struct{}

func (Javascript) Meta() capability.Meta {
	return capability.Meta{
		Name:           "javascript",
		Description:    "Detects if the project contains JavaScript or TypeScript files.",
		DefaultEnabled: true,
	}
}

func (Javascript) Detect(r repo.Repo) (value.Value, error) {
	seen := make([]bool, len(jsLangs))
	remaining := len(jsLangs)
	err := r.Walk(func(rel string, _ fs.DirEntry) error {
		for i, l := range jsLangs {
			if !seen[i] && hasExtension(rel, l.exts) {
				seen[i] = true
				remaining--
			}
		}
		if remaining == 0 {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return value.Value{}, err
	}
	var langs []string
	for i, l := range jsLangs {
		if seen[i] {
			langs = append(langs, l.lang)
		}
	}
	return langFragment(langs...), nil
}
