// Package plan compiles a user's selection into an ordered execution plan.
//
// Compilation is a pure lookup over the catalog: it never touches the
// filesystem, network or package manager, and the same Selection always
// yields the same Plan.
package plan

import (
	"fmt"
	"strings"

	"setup-windows/internal/catalog"
)

// Kind distinguishes the two actions a plan can contain.
type Kind int

const (
	InstallPackage Kind = iota
	RunCleanup
)

func (k Kind) String() string {
	switch k {
	case InstallPackage:
		return "install"
	case RunCleanup:
		return "cleanup"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Action is a single unit of work. PackageID is empty for RunCleanup.
type Action struct {
	Kind      Kind              `yaml:"kind"`
	PackageID catalog.PackageID `yaml:"package,omitempty"`
}

// Label is the identifier shown in logs and the run summary.
func (a Action) Label() string {
	if a.Kind == RunCleanup {
		return "cleanup"
	}
	return string(a.PackageID)
}

// MarshalYAML renders the kind by name rather than by number.
func (a Action) MarshalYAML() (any, error) {
	return struct {
		Kind      string `yaml:"kind"`
		PackageID string `yaml:"package,omitempty"`
	}{a.Kind.String(), string(a.PackageID)}, nil
}

// Selection is the user's choice for one run. It is built once and never mutated.
type Selection struct {
	Preset          catalog.Preset    `json:"preset" yaml:"preset"`
	Browser         catalog.Browser   `json:"browser" yaml:"browser"`
	Antivirus       bool              `json:"antivirus" yaml:"antivirus"`
	AntivirusVendor catalog.Antivirus `json:"antivirus_vendor,omitempty" yaml:"antivirus_vendor,omitempty"`
	Cleanup         bool              `json:"cleanup" yaml:"cleanup"`
}

// Plan is the ordered, de-duplicated list of actions for a run.
type Plan struct {
	Actions []Action `yaml:"actions"`
}

// Len returns the number of actions.
func (p Plan) Len() int { return len(p.Actions) }

// Packages returns the package identifiers in plan order.
func (p Plan) Packages() []catalog.PackageID {
	var out []catalog.PackageID
	for _, a := range p.Actions {
		if a.Kind == InstallPackage {
			out = append(out, a.PackageID)
		}
	}
	return out
}

// HasCleanup reports whether the plan ends with a cleanup run.
func (p Plan) HasCleanup() bool {
	n := len(p.Actions)
	return n > 0 && p.Actions[n-1].Kind == RunCleanup
}

// String renders one numbered action per line.
func (p Plan) String() string {
	var b strings.Builder
	for i, a := range p.Actions {
		fmt.Fprintf(&b, "%2d. %-8s %s\n", i+1, a.Kind, a.Label())
	}
	return b.String()
}

// Compile produces the execution plan for sel.
//
// Preset packages come first in catalog order, then the browser package, then
// the antivirus package; a package already present keeps its first position.
// Cleanup, when requested, is always the final action. Catalog errors
// (*catalog.UnknownPresetError, *catalog.UnknownOptionError) are returned as is.
func Compile(sel Selection) (Plan, error) {
	base, err := catalog.PackagesForPreset(sel.Preset)
	if err != nil {
		return Plan{}, err
	}

	browser := sel.Browser
	if browser == "" {
		browser = catalog.DefaultBrowser
	}
	browserPkg, err := catalog.PackageForBrowser(browser)
	if err != nil {
		return Plan{}, err
	}

	candidates := append(base, browserPkg)

	if sel.Antivirus {
		avPkg, err := catalog.PackageForAntivirus(sel.AntivirusVendor)
		if err != nil {
			return Plan{}, err
		}
		candidates = append(candidates, avPkg)
	}

	seen := make(map[catalog.PackageID]bool, len(candidates))
	actions := make([]Action, 0, len(candidates)+1)
	for _, id := range candidates {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		actions = append(actions, Action{Kind: InstallPackage, PackageID: id})
	}

	if sel.Cleanup {
		actions = append(actions, Action{Kind: RunCleanup})
	}
	return Plan{Actions: actions}, nil
}
