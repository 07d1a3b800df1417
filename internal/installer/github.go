package installer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"setup-windows/internal/logger"
)

// DefaultGitHubAPI is the base URL for release lookups.
const DefaultGitHubAPI = "https://api.github.com"

// GitHubRelease represents the structure of a GitHub release JSON response.
type GitHubRelease struct {
	TagName string `json:"tag_name"` // The release tag (e.g., v1.0.0)
	Assets  []struct {
		Name               string `json:"name"`                 // Asset filename
		BrowserDownloadURL string `json:"browser_download_url"` // Direct download URL for the asset
	} `json:"assets"`
}

// latestReleaseAsset finds the download URL of the first asset in repo's latest
// release whose name contains pattern (case-insensitive).
func latestReleaseAsset(client *http.Client, apiBase, repo, pattern string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if apiBase == "" {
		apiBase = DefaultGitHubAPI
	}

	url := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimRight(apiBase, "/"), repo)
	logger.Debug("[DEBUG] Fetching GitHub release from URL: %s\n", url)

	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("HTTP GET error fetching latest release for %s: %w", repo, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub release fetch failed for %s: HTTP status %d", repo, resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode GitHub release JSON for %s: %w", repo, err)
	}
	logger.Debug("[DEBUG] Release tag: %s with %d assets\n", release.TagName, len(release.Assets))

	pattern = strings.ToLower(pattern)
	for _, asset := range release.Assets {
		if strings.Contains(strings.ToLower(asset.Name), pattern) {
			logger.Debug("[DEBUG] Found matching asset: %s\n", asset.Name)
			return asset.BrowserDownloadURL, nil
		}
	}
	return "", fmt.Errorf("no asset matching %q in release %s of %s", pattern, release.TagName, repo)
}
