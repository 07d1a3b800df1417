package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	LogFileName    = "lazywin11.log"
	ReportFileName = "last-run.json"
)

// DefaultLogDir is where the log file and run report live unless configured otherwise.
func DefaultLogDir() string {
	if runtime.GOOS == "windows" {
		return `C:\LazyWin11Installer`
	}
	return "."
}

// Default returns the configuration used when no file is given.
func Default() Config {
	logDir := DefaultLogDir()
	return Config{
		Defaults: Defaults{
			Browser: "edge",
		},
		Winget: Winget{
			Path: "winget",
		},
		Cleanup: Cleanup{
			Source:  "url",
			URL:     "https://github.com/bmrf/tron/releases/latest/download/tron.zip",
			Repo:    "bmrf/tron",
			Asset:   ".zip",
			Script:  "tron.bat",
			WorkDir: filepath.Join(logDir, "tron_tmp"),
		},
		Log: Log{
			Dir: logDir,
		},
	}
}

// LoadConfig reads the YAML file at configFile on top of Default().
// An empty configFile returns the defaults; a named file that cannot be read or parsed is an error.
func LoadConfig(configFile string) (Config, error) {
	cfg := Default()
	if configFile == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(configFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", configFile, err)
	}

	// Fields absent from the file keep their defaults.
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal %s: %w", configFile, err)
	}

	// An explicitly configured log dir moves the cleanup work dir along with it
	// unless that was set too.
	var probe struct {
		Cleanup struct {
			WorkDir *string `yaml:"work_dir"`
		} `yaml:"cleanup"`
	}
	_ = yaml.Unmarshal(raw, &probe)
	if probe.Cleanup.WorkDir == nil {
		cfg.Cleanup.WorkDir = filepath.Join(cfg.Log.Dir, "tron_tmp")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", configFile, err)
	}
	return cfg, nil
}

// Validate checks the fields that cannot be defaulted away.
func (c Config) Validate() error {
	var problems []string
	switch c.Cleanup.Source {
	case "url":
		if c.Cleanup.URL == "" {
			problems = append(problems, "cleanup.url is required when cleanup.source is url")
		}
	case "github":
		if c.Cleanup.Repo == "" {
			problems = append(problems, "cleanup.repo is required when cleanup.source is github")
		}
	default:
		problems = append(problems, fmt.Sprintf("cleanup.source must be url or github, got %q", c.Cleanup.Source))
	}
	if c.Cleanup.Script == "" {
		problems = append(problems, "cleanup.script must not be empty")
	}
	if c.Log.Dir == "" {
		problems = append(problems, "log.dir must not be empty")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// LogFile is the full path of the log file.
func (c Config) LogFile() string {
	return filepath.Join(c.Log.Dir, LogFileName)
}

// ReportFile is the full path of the JSON run report.
func (c Config) ReportFile() string {
	return filepath.Join(c.Log.Dir, ReportFileName)
}
