package github

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
)

const (
	// ProjectRepoOwner is the GitHub repository owner for prtrack
	ProjectRepoOwner = "prtrack"
	// ProjectRepoName is the GitHub repository name for prtrack
	ProjectRepoName = "prtrack"
	// VersionCheckCacheFile is the filename for the version check cache
	VersionCheckCacheFile = "version_check_cache.json"
	// VersionCheckCacheTTL is the time-to-live for the version check cache (24 hours)
	VersionCheckCacheTTL = 24 * time.Hour
	// VersionCheckEnvVar is the environment variable to disable version checking
	VersionCheckEnvVar = "PRTRACK_NO_VERSION_CHECK"
)

// ReleaseInfo represents information about a GitHub release
type ReleaseInfo struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

// versionCacheData represents the cached version check data
type versionCacheData struct {
	LatestVersion string       `json:"latest_version"`
	CacheTime     time.Time    `json:"cache_time"`
	ReleaseInfo   *ReleaseInfo `json:"release_info,omitempty"`
}

// FetchLatestProjectRelease fetches the latest published release of the
// given repository. Drafts and prereleases are skipped; only releases
// tagged vX.Y.Z are considered.
func (c *Client) FetchLatestProjectRelease(ctx context.Context, owner, repo string) (*ReleaseInfo, error) {
	releases, resp, err := c.GitHubClient().Repositories.ListReleases(ctx, owner, repo, &github.ListOptions{PerPage: 30})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch releases: %w", convertFromGitHubError(err))
	}
	logRateLimit("list_releases", resp)

	for _, r := range releases {
		if r.GetDraft() || r.GetPrerelease() {
			continue
		}
		if strings.HasPrefix(r.GetTagName(), "v") {
			return &ReleaseInfo{
				TagName:     r.GetTagName(),
				Name:        r.GetName(),
				Draft:       r.GetDraft(),
				Prerelease:  r.GetPrerelease(),
				PublishedAt: r.GetPublishedAt().Time,
				HTMLURL:     r.GetHTMLURL(),
			}, nil
		}
	}

	return nil, fmt.Errorf("no prtrack release found")
}

// CheckForUpdates checks if a newer version of prtrack is available.
// Returns the latest version info and whether the current version is up to date.
func CheckForUpdates(ctx context.Context, currentVersion string) (*ReleaseInfo, bool, error) {
	// Check if version check is disabled via environment variable
	if os.Getenv(VersionCheckEnvVar) != "" {
		return nil, false, fmt.Errorf("version check disabled via %s", VersionCheckEnvVar)
	}

	// Try to get from cache first
	cacheDir, err := os.UserCacheDir()
	if err == nil {
		cachePath := filepath.Join(cacheDir, "prtrack", VersionCheckCacheFile)
		cached, err := readVersionCache(cachePath)
		if err == nil && time.Since(cached.CacheTime) < VersionCheckCacheTTL {
			// Cache is valid
			if cached.ReleaseInfo != nil {
				upToDate := compareVersions(currentVersion, cached.ReleaseInfo.TagName) >= 0
				return cached.ReleaseInfo, upToDate, nil
			}
		}
	}

	// Cache miss or expired, fetch from GitHub
	// Use anonymous client (no token needed for public releases)
	client := NewClient("")
	release, err := client.FetchLatestProjectRelease(ctx, ProjectRepoOwner, ProjectRepoName)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch latest prtrack release: %w", err)
	}

	// Update cache
	if cacheDir != "" {
		cachePath := filepath.Join(cacheDir, "prtrack", VersionCheckCacheFile)
		_ = writeVersionCache(cachePath, &versionCacheData{
			LatestVersion: release.TagName,
			CacheTime:     time.Now(),
			ReleaseInfo:   release,
		})
	}

	// Compare versions
	upToDate := compareVersions(currentVersion, release.TagName) >= 0
	return release, upToDate, nil
}

// readVersionCache reads the version check cache from disk
func readVersionCache(cachePath string) (*versionCacheData, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, err
	}

	var cache versionCacheData
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}

	return &cache, nil
}

// writeVersionCache writes the version check cache to disk
func writeVersionCache(cachePath string, data *versionCacheData) error {
	// Ensure cache directory exists
	cacheDir := filepath.Dir(cachePath)
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return err
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return os.WriteFile(cachePath, jsonData, 0644)
}

// compareVersions compares two version strings
// Returns 1 if v1 > v2, -1 if v1 < v2, 0 if equal
func compareVersions(v1, v2 string) int {
	// Handle "dev" version - always consider it the latest
	if v1 == "dev" {
		return 1
	}
	if v2 == "dev" {
		return -1
	}

	// Strip "v" prefix if present
	v1 = strings.TrimPrefix(v1, "v")
	v2 = strings.TrimPrefix(v2, "v")

	// Split by dots
	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	// Compare each part
	maxLen := len(parts1)
	if len(parts2) > maxLen {
		maxLen = len(parts2)
	}

	for i := 0; i < maxLen; i++ {
		// Get the part from each version, treating missing parts as empty
		var part1, part2 string
		if i < len(parts1) {
			part1 = parts1[i]
		}
		if i < len(parts2) {
			part2 = parts2[i]
		}

		if part1 == "" && part2 == "" {
			continue
		}

		// One part is missing - treat it as 0 if the other is numeric
		if part1 == "" {
			var p2 int
			_, err2 := fmt.Sscanf(part2, "%d", &p2)
			if err2 == nil {
				if p2 > 0 {
					return -1
				}
				continue
			}
			return -1
		}

		if part2 == "" {
			var p1 int
			_, err1 := fmt.Sscanf(part1, "%d", &p1)
			if err1 == nil {
				if p1 > 0 {
					return 1
				}
				continue
			}
			return 1
		}

		// Both parts exist - try to parse as numbers
		var p1, p2 int
		_, err1 := fmt.Sscanf(part1, "%d", &p1)
		_, err2 := fmt.Sscanf(part2, "%d", &p2)

		if err1 == nil && err2 == nil {
			// Both numeric - compare numerically
			if p1 > p2 {
				return 1
			} else if p1 < p2 {
				return -1
			}
		} else if err1 == nil && err2 != nil {
			// Numeric sorts before non-numeric
			return -1
		} else if err1 != nil && err2 == nil {
			return 1
		} else {
			// Both non-numeric - compare as strings
			cmp := strings.Compare(part1, part2)
			if cmp > 0 {
				return 1
			} else if cmp < 0 {
				return -1
			}
		}
	}

	return 0
}
