// Package prompt asks the user for a selection when none was given on the command line.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"setup-windows/internal/catalog"
	"setup-windows/internal/plan"
)

// ErrAborted is returned when the user cancels a prompt or declines to begin.
var ErrAborted = errors.New("cancelled by user")

// UI defines the interaction methods.
type UI interface {
	Select(title string, options []string, current *string) error
	Confirm(title string, value *bool) error
	Note(title, body string) error
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct{}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

func (HuhUI) run(form *huh.Form) error {
	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// Select renders a single-choice prompt.
func (ui HuhUI) Select(title string, options []string, current *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}
	return ui.run(huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title(title).Options(opts...).Value(current),
	)))
}

// Confirm renders a yes/no prompt.
func (ui HuhUI) Confirm(title string, value *bool) error {
	return ui.run(huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(value),
	)))
}

// Note renders an informational screen.
func (ui HuhUI) Note(title, body string) error {
	return ui.run(huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(title).Description(body),
	)))
}

// AskSelection walks the user through preset, browser, antivirus and cleanup,
// starting from def, then asks for confirmation before anything runs.
func AskSelection(ui UI, def plan.Selection) (plan.Selection, error) {
	preset := string(def.Preset)
	if preset == "" {
		preset = string(catalog.PresetGamer)
	}
	if err := ui.Select("Select a preset:", tags(catalog.Presets()), &preset); err != nil {
		return plan.Selection{}, err
	}

	browser := string(def.Browser)
	if browser == "" {
		browser = string(catalog.DefaultBrowser)
	}
	if err := ui.Select("Pick a browser (edge keeps the Windows default):", tags(catalog.Browsers()), &browser); err != nil {
		return plan.Selection{}, err
	}

	antivirus := def.Antivirus
	if err := ui.Confirm("Install an antivirus?", &antivirus); err != nil {
		return plan.Selection{}, err
	}
	vendor := string(def.AntivirusVendor)
	if antivirus {
		if vendor == "" {
			vendor = string(catalog.DefaultAntivirus)
		}
		if err := ui.Select("Which antivirus?", tags(catalog.Antiviruses()), &vendor); err != nil {
			return plan.Selection{}, err
		}
	}

	cleanup := def.Cleanup
	if err := ui.Confirm("Run Tron cleanup script? (advanced, recommended only in a VM)", &cleanup); err != nil {
		return plan.Selection{}, err
	}

	sel := plan.Selection{
		Preset:          catalog.Preset(preset),
		Browser:         catalog.Browser(browser),
		Antivirus:       antivirus,
		AntivirusVendor: catalog.Antivirus(vendor),
		Cleanup:         cleanup,
	}

	if err := ui.Note("Summary", Summary(sel)); err != nil {
		return plan.Selection{}, err
	}
	begin := true
	if err := ui.Confirm("Begin?", &begin); err != nil {
		return plan.Selection{}, err
	}
	if !begin {
		return plan.Selection{}, ErrAborted
	}
	return sel, nil
}

// Summary renders a selection for confirmation screens and logs.
func Summary(sel plan.Selection) string {
	av := "none (Windows Defender)"
	if sel.Antivirus {
		av = string(sel.AntivirusVendor)
		if av == "" {
			av = string(catalog.DefaultAntivirus)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Preset:    %s\n", sel.Preset)
	fmt.Fprintf(&b, "Browser:   %s\n", sel.Browser)
	fmt.Fprintf(&b, "Antivirus: %s\n", av)
	fmt.Fprintf(&b, "Run Tron:  %t\n", sel.Cleanup)
	return b.String()
}

func tags[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
