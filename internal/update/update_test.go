package update

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCheck_NoNetworkOrCI(t *testing.T) {
	t.Setenv("CI", "1")
	if latest, newer, err := NewChecker("").Check("1.0.0", false); err != nil || latest != "" || newer {
		t.Fatalf("expected no-op in CI; got latest=%q newer=%v err=%v", latest, newer, err)
	}
	t.Setenv("CI", "")
	if latest, newer, err := NewChecker("").Check("1.0.0", true); err != nil || latest != "" || newer {
		t.Fatalf("expected no-op without network; got latest=%q newer=%v err=%v", latest, newer, err)
	}
}

func TestNormalizeAndCompare(t *testing.T) {
	if normalize(" v1.2.3 ") != "1.2.3" {
		t.Fatalf("normalize failed")
	}
	cases := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.3.0", "1.2.9", 1},
		{"1.2.0", "1.2.1", -1},
		{"1.10.0", "1.9.0", 1},
		{"1.0.0", "1.0.0-rc.1", 1},
		{"1.2", "1.2.0", 0},
		{"dev", "0.1.0", -1},
	}
	for _, tc := range cases {
		if got := compare(tc.a, tc.b); got != tc.want {
			t.Fatalf("compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func writeCache(t *testing.T, dir string, c cache) {
	t.Helper()
	path := filepath.Join(dir, "boiler", cacheFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	b, _ := json.Marshal(c)
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCheck_UsesCacheWhenFresh(t *testing.T) {
	t.Setenv("CI", "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	writeCache(t, dir, cache{LastChecked: time.Now(), Repository: "boiler/boiler", Latest: "1.2.3"})

	c := NewChecker("boiler/boiler")
	c.BaseURL = "http://127.0.0.1:0"
	latest, newer, err := c.Check("v1.2.2", false)
	if err != nil {
		t.Fatal(err)
	}
	if latest != "1.2.3" || !newer {
		t.Fatalf("expected cached latest=1.2.3 and newer=true; got latest=%q newer=%v", latest, newer)
	}
}

func TestCheck_RefreshesFromServer(t *testing.T) {
	t.Setenv("CI", "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	writeCache(t, dir, cache{LastChecked: time.Now(), Repository: "someone/else", Latest: "5.0.0"})

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"tag_name": "v0.4.0"})
	}))
	defer srv.Close()

	c := NewChecker("m4tx/boiler")
	c.BaseURL = srv.URL
	latest, newer, err := c.Check("0.4.0", false)
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/repos/m4tx/boiler/releases/latest" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if latest != "0.4.0" || newer {
		t.Fatalf("expected latest=0.4.0 newer=false; got latest=%q newer=%v", latest, newer)
	}

	b, err := os.ReadFile(filepath.Join(dir, "boiler", cacheFileName))
	if err != nil {
		t.Fatal(err)
	}
	var saved cache
	if err := json.Unmarshal(b, &saved); err != nil {
		t.Fatal(err)
	}
	if saved.Repository != "m4tx/boiler" || saved.Latest != "0.4.0" {
		t.Fatalf("cache not refreshed: %+v", saved)
	}
}

func TestLatest_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewChecker("m4tx/boiler")
	c.BaseURL = srv.URL
	if _, err := c.Latest(); err == nil {
		t.Fatal("expected error for 404")
	}
}
