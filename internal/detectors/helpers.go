package detectors

import (
	"bytes"
	"path"
	"strings"

	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

// headerSniffLen is how much of a file is read when matching shebangs.
const headerSniffLen = 256

func langFragment(langs ...string) value.Value {
	v := value.EmptyObject()
	if len(langs) > 0 {
		v.Set(ctxkeys.Langs, value.Strings(langs...))
	}
	return v
}

func hasExtension(rel string, exts []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(rel)), ".")
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// detectByExtension reports lang when any walked file has one of exts
// (compared case-insensitively, without the dot).
func detectByExtension(r repo.Repo, exts []string, lang string) (value.Value, error) {
	found, err := r.Any(func(rel string) bool { return hasExtension(rel, exts) })
	if err != nil {
		return value.Value{}, err
	}
	if !found {
		return value.EmptyObject(), nil
	}
	return langFragment(lang), nil
}

// detectByHeader reports lang when any walked file starts with one of
// headers. Files that cannot be opened are skipped.
func detectByHeader(r repo.Repo, headers [][]byte, lang string) (value.Value, error) {
	found, err := r.Any(func(rel string) bool {
		head, err := r.ReadHead(rel, headerSniffLen)
		if err != nil {
			return false
		}
		for _, h := range headers {
			if bytes.HasPrefix(head, h) {
				return true
			}
		}
		return false
	})
	if err != nil {
		return value.Value{}, err
	}
	if !found {
		return value.EmptyObject(), nil
	}
	return langFragment(lang), nil
}
