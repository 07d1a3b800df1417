package config

// Config is the top-level structure loaded from the optional YAML file.
// Every field has a default, so an absent file yields a usable Config.
type Config struct {
	Defaults Defaults `yaml:"defaults"`
	Winget   Winget   `yaml:"winget"`
	Cleanup  Cleanup  `yaml:"cleanup"`
	Log      Log      `yaml:"log"`
}

// Defaults holds the selection used when the corresponding CLI flag is not set.
// - Preset: preset tag; empty means "ask interactively or fail".
// - Browser: browser tag, "edge" keeps the Windows default.
// - Antivirus/AntivirusVendor: install an antivirus and which one.
// - Cleanup: run the cleanup utility after installs.
type Defaults struct {
	Preset          string `yaml:"preset"`
	Browser         string `yaml:"browser"`
	Antivirus       bool   `yaml:"antivirus"`
	AntivirusVendor string `yaml:"antivirus_vendor"`
	Cleanup         bool   `yaml:"cleanup"`
}

// Winget configures the package manager invocation.
type Winget struct {
	Path      string   `yaml:"path"`       // Executable name or absolute path
	ExtraArgs []string `yaml:"extra_args"` // Appended to every install command
}

// Cleanup configures where the cleanup utility comes from and how it is started.
// - Source: "url" downloads URL directly, "github" resolves Repo's latest release asset matching Asset.
// - Script: file inside the archive to run.
// - WorkDir: download and extraction directory.
type Cleanup struct {
	Source  string `yaml:"source"`
	URL     string `yaml:"url"`
	Repo    string `yaml:"repo"`
	Asset   string `yaml:"asset"`
	Script  string `yaml:"script"`
	WorkDir string `yaml:"work_dir"`
}

// Log configures where the log file and run report are written.
type Log struct {
	Dir string `yaml:"dir"`
}
