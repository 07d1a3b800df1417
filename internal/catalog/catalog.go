// Package catalog is the static registry of presets, browsers and antivirus
// vendors, each mapped to winget package identifiers.
package catalog

import (
	"fmt"
	"strings"
)

// PackageID is a winget package identifier, e.g. "Valve.Steam".
type PackageID string

// Preset names a bundle of applications targeting a use case.
type Preset string

const (
	PresetNone         Preset = "none"
	PresetGamer        Preset = "gamer"
	PresetDeveloper    Preset = "developer"
	PresetSecondaryPC  Preset = "secondaryPC"
	PresetStreamer     Preset = "streamer"
	PresetProductivity Preset = "productivity"
	PresetMinimalist   Preset = "minimalist"
	PresetWork         Preset = "work"
	PresetKids         Preset = "kids"
)

// Browser is the browser the user wants in addition to the preset.
type Browser string

const (
	BrowserEdge           Browser = "edge"
	BrowserChrome         Browser = "chrome"
	BrowserFirefox        Browser = "firefox"
	BrowserFirefoxNightly Browser = "firefox-nightly"
)

// DefaultBrowser ships with Windows and therefore installs nothing.
const DefaultBrowser = BrowserEdge

// Antivirus is the vendor installed when antivirus is enabled.
type Antivirus string

const (
	AntivirusMalwarebytes Antivirus = "malwarebytes"
	AntivirusAvast        Antivirus = "avast"
	AntivirusBitdefender  Antivirus = "bitdefender"
)

// DefaultAntivirus is used when antivirus is enabled without naming a vendor.
const DefaultAntivirus = AntivirusMalwarebytes

// presetOrder fixes the listing order for prompts and help output.
var presetOrder = []Preset{
	PresetGamer,
	PresetDeveloper,
	PresetSecondaryPC,
	PresetStreamer,
	PresetProductivity,
	PresetMinimalist,
	PresetWork,
	PresetKids,
	PresetNone,
}

var presets = map[Preset][]PackageID{
	PresetNone: {},
	PresetGamer: {
		"Valve.Steam",
		"Roblox.Roblox",
		"Moonsworth.LunarClient",
	},
	PresetDeveloper: {
		"Python.Python.3",
		"Microsoft.VisualStudio.2022.Community",
		"Microsoft.VisualStudioCode",
		"Git.Git",
		"OpenJS.NodeJS",
	},
	PresetSecondaryPC: {
		"7zip.7zip",
		"VideoLAN.VLC",
		"Mozilla.Firefox",
		"Notepad++.Notepad++",
	},
	PresetStreamer: {
		"OBSProject.OBSStudio",
		"Streamlabs.Streamlabs",
		"Discord.Discord",
		"Audacity.Audacity",
		"DaVinciResolve.DaVinciResolve",
		"Spotify.Spotify",
		"VideoLAN.VLC",
	},
	PresetProductivity: {
		// Store-backed in some regions; winget may refuse it.
		"Microsoft.Office",
		"Notion.Notion",
		"Google.Drive",
		"Zoom.Zoom",
		"Spotify.Spotify",
	},
	PresetMinimalist: {
		"7zip.7zip",
		"Notepad++.Notepad++",
		"Mozilla.Firefox",
		"voidtools.Everything",
		"VideoLAN.VLC",
	},
	PresetWork: {
		"Google.Chrome",
		"Microsoft.Office",
		"Microsoft.Teams",
		"Zoom.Zoom",
		"SlackTechnologies.Slack",
		"Git.Git",
	},
	PresetKids: {
		"Minecraft.MinecraftLauncher",
		"Roblox.Roblox",
		"Google.Chrome",
		"Spotify.Spotify",
		"VideoLAN.VLC",
	},
}

var browserOrder = []Browser{BrowserEdge, BrowserChrome, BrowserFirefox, BrowserFirefoxNightly}

var browsers = map[Browser]PackageID{
	BrowserEdge:           "",
	BrowserChrome:         "Google.Chrome",
	BrowserFirefox:        "Mozilla.Firefox",
	BrowserFirefoxNightly: "Mozilla.Firefox.Nightly",
}

var antivirusOrder = []Antivirus{AntivirusMalwarebytes, AntivirusAvast, AntivirusBitdefender}

var antiviruses = map[Antivirus]PackageID{
	AntivirusMalwarebytes: "Malwarebytes.Malwarebytes",
	AntivirusAvast:        "Avast.AntivirusFree",
	AntivirusBitdefender:  "Bitdefender.TotalSecurity",
}

// UnknownPresetError is returned for a preset tag outside the catalog.
type UnknownPresetError struct {
	Preset string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown preset %q (valid: %s)", e.Preset, joinTags(presetOrder))
}

// UnknownOptionError is returned for a browser or antivirus identifier outside the catalog.
type UnknownOptionError struct {
	Option string // "browser" or "antivirus"
	Value  string
}

func (e *UnknownOptionError) Error() string {
	var valid string
	switch e.Option {
	case "browser":
		valid = joinTags(browserOrder)
	case "antivirus":
		valid = joinTags(antivirusOrder)
	}
	return fmt.Sprintf("unknown %s %q (valid: %s)", e.Option, e.Value, valid)
}

// ParsePreset resolves user input to a Preset. Matching ignores case.
func ParsePreset(s string) (Preset, error) {
	for _, p := range presetOrder {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", &UnknownPresetError{Preset: s}
}

// ParseBrowser resolves user input to a Browser. An empty string selects DefaultBrowser.
func ParseBrowser(s string) (Browser, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultBrowser, nil
	}
	for _, b := range browserOrder {
		if strings.EqualFold(string(b), s) {
			return b, nil
		}
	}
	return "", &UnknownOptionError{Option: "browser", Value: s}
}

// ParseAntivirus resolves user input to an Antivirus vendor. An empty string selects DefaultAntivirus.
func ParseAntivirus(s string) (Antivirus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultAntivirus, nil
	}
	for _, a := range antivirusOrder {
		if strings.EqualFold(string(a), s) {
			return a, nil
		}
	}
	return "", &UnknownOptionError{Option: "antivirus", Value: s}
}

// PackagesForPreset returns a copy of the ordered package list implied by p.
func PackagesForPreset(p Preset) ([]PackageID, error) {
	pkgs, ok := presets[p]
	if !ok {
		return nil, &UnknownPresetError{Preset: string(p)}
	}
	out := make([]PackageID, len(pkgs))
	copy(out, pkgs)
	return out, nil
}

// PackageForBrowser returns the package for b, or "" when b ships with Windows.
func PackageForBrowser(b Browser) (PackageID, error) {
	id, ok := browsers[b]
	if !ok {
		return "", &UnknownOptionError{Option: "browser", Value: string(b)}
	}
	return id, nil
}

// PackageForAntivirus returns the package for vendor a; "" means DefaultAntivirus.
func PackageForAntivirus(a Antivirus) (PackageID, error) {
	if a == "" {
		a = DefaultAntivirus
	}
	id, ok := antiviruses[a]
	if !ok {
		return "", &UnknownOptionError{Option: "antivirus", Value: string(a)}
	}
	return id, nil
}

// Presets lists every preset in display order.
func Presets() []Preset {
	return append([]Preset(nil), presetOrder...)
}

// Browsers lists every browser in display order.
func Browsers() []Browser {
	return append([]Browser(nil), browserOrder...)
}

// Antiviruses lists every antivirus vendor in display order.
func Antiviruses() []Antivirus {
	return append([]Antivirus(nil), antivirusOrder...)
}

func joinTags[T ~string](tags []T) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
