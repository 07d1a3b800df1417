package installer

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"setup-windows/internal/logger"
)

// Tron fetches, unpacks and runs the Tron cleanup script.
type Tron struct {
	Source  string // "url" (default) or "github"
	URL     string // Archive URL when Source is "url"
	Repo    string // owner/name when Source is "github"
	Asset   string // Asset name pattern when Source is "github"
	Script  string // Script file to run from the unpacked archive, e.g. tron.bat
	WorkDir string // Download and extraction directory

	Client  *http.Client // nil uses http.DefaultClient
	APIBase string       // GitHub API base; DefaultGitHubAPI when empty
}

// RunCleanup prepares the utility and runs its script once with `cmd /c`,
// attached to the console since Tron reports progress interactively.
func (t *Tron) RunCleanup() error {
	logger.Warn("[WARN] Tron is a heavy cleanup tool. Create a VM snapshot or backup before running.\n")

	script, err := t.Prepare()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCleanupUnavailable, err)
	}

	logger.Info("[INFO] Running cleanup script from: %s\n", script)
	cmd := exec.Command("cmd", "/c", script)
	cmd.Dir = filepath.Dir(script)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return classifyRunError("tron", err, nil)
	}
	return nil
}

// Prepare downloads and unpacks the archive and returns the script's path.
func (t *Tron) Prepare() (string, error) {
	if err := os.MkdirAll(t.WorkDir, 0755); err != nil {
		return "", fmt.Errorf("cannot create work directory %s: %w", t.WorkDir, err)
	}

	url, err := t.archiveURL()
	if err != nil {
		return "", err
	}

	archive := filepath.Join(t.WorkDir, path.Base(url))
	logger.Info("[INFO] Downloading %s to %s\n", url, archive)
	if err := downloadFile(t.Client, url, archive); err != nil {
		return "", err
	}

	extracted, err := ExtractArchive(archive, t.WorkDir)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", archive, err)
	}
	logger.Debug("[DEBUG] Extracted archive to %s\n", extracted)

	return findScript(t.WorkDir, t.Script)
}

func (t *Tron) archiveURL() (string, error) {
	switch t.Source {
	case "github":
		return latestReleaseAsset(t.Client, t.APIBase, t.Repo, t.Asset)
	case "url", "":
		if t.URL == "" {
			return "", fmt.Errorf("no cleanup archive URL configured")
		}
		return t.URL, nil
	default:
		return "", fmt.Errorf("unknown cleanup source %q", t.Source)
	}
}

// findScript returns the shallowest file under root named script (case-insensitive).
// Ties at equal depth go to the first in lexical order.
func findScript(root, script string) (string, error) {
	var found string
	bestDepth := -1

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(d.Name(), script) {
			return nil
		}
		rel, _ := filepath.Rel(root, p)
		depth := strings.Count(filepath.ToSlash(rel), "/")
		if bestDepth < 0 || depth < bestDepth {
			found, bestDepth = p, depth
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("could not find %s under %s", script, root)
	}
	return found, nil
}
