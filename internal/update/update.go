// Package update checks GitHub for newer boiler releases.
package update

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	semver "github.com/blang/semver/v4"

	"github.com/boiler/boiler/internal/config"
)

const (
	apiBase       = "https://api.github.com"
	cacheFileName = "update.json"
	cacheTTL      = 24 * time.Hour
)

type cache struct {
	LastChecked time.Time `json:"last_checked"`
	Repository  string    `json:"repository,omitempty"`
	Latest      string    `json:"latest"`
}

// Checker looks up the latest release of Repository ("owner/name").
type Checker struct {
	Repository string
	BaseURL    string
	Client     *http.Client
}

func NewChecker(repository string) *Checker {
	if repository == "" {
		repository = config.DefaultReleaseRepository
	}
	return &Checker{
		Repository: repository,
		BaseURL:    apiBase,
		Client:     &http.Client{Timeout: 2 * time.Second},
	}
}

func loadCache() (cache, error) {
	var c cache
	b, err := config.ReadState(cacheFileName)
	if err != nil {
		return c, err
	}
	_ = json.Unmarshal(b, &c)
	return c, nil
}

func saveCache(c cache) {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return
	}
	if err := config.WriteState(cacheFileName, b); err != nil {
		slog.Debug("could not save release check cache", "err", err)
	}
}

// Latest asks the GitHub API for the newest release tag.
func (c *Checker) Latest() (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimSuffix(c.BaseURL, "/"), c.Repository)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "boiler-updater")
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup for %s: %s", c.Repository, resp.Status)
	}
	var obj struct {
		TagName string `json:"tag_name"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return "", err
	}
	v := obj.TagName
	if v == "" {
		v = obj.Name
	}
	if v == "" {
		return "", errors.New("release has no tag")
	}
	return normalize(v), nil
}

// Check returns (latest, isNewer, error). It uses a 24h cache and skips in CI.
func (c *Checker) Check(current string, noNetwork bool) (string, bool, error) {
	if os.Getenv("CI") != "" || noNetwork {
		return "", false, nil
	}
	current = normalize(current)
	cached, _ := loadCache()
	latest := cached.Latest
	if cached.Repository != "" && cached.Repository != c.Repository {
		latest = ""
	}
	if time.Since(cached.LastChecked) > cacheTTL || latest == "" {
		if v, err := c.Latest(); err == nil {
			latest = v
			saveCache(cache{LastChecked: time.Now(), Repository: c.Repository, Latest: v})
		}
	}
	if latest == "" || current == "" {
		return latest, false, nil
	}
	return latest, compare(latest, current) > 0, nil
}

func normalize(v string) string {
	v = strings.TrimSpace(v)
	return strings.TrimPrefix(v, "v")
}

// compare orders two versions by semver precedence. Versions that do not
// parse sort below any that do.
func compare(a, b string) int {
	av, aerr := semver.ParseTolerant(a)
	bv, berr := semver.ParseTolerant(b)
	switch {
	case aerr != nil && berr != nil:
		return 0
	case aerr != nil:
		return -1
	case berr != nil:
		return 1
	}
	return av.Compare(bv)
}
