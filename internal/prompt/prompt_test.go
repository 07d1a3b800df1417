package prompt

import (
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setup-windows/internal/catalog"
	"setup-windows/internal/plan"
)

// scriptedUI answers prompts from queues and records the titles it saw.
type scriptedUI struct {
	selects  []string
	confirms []bool
	titles   []string
	noteBody string
	failOn   string
}

func (s *scriptedUI) Select(title string, options []string, current *string) error {
	s.titles = append(s.titles, title)
	if title == s.failOn {
		return ErrAborted
	}
	*current, s.selects = s.selects[0], s.selects[1:]
	return nil
}

func (s *scriptedUI) Confirm(title string, value *bool) error {
	s.titles = append(s.titles, title)
	if title == s.failOn {
		return ErrAborted
	}
	*value, s.confirms = s.confirms[0], s.confirms[1:]
	return nil
}

func (s *scriptedUI) Note(title, body string) error {
	s.noteBody = body
	return nil
}

func TestAskSelectionWithAntivirus(t *testing.T) {
	ui := &scriptedUI{
		selects:  []string{"developer", "chrome", "avast"},
		confirms: []bool{true, true, true},
	}
	sel, err := AskSelection(ui, plan.Selection{})
	require.NoError(t, err)

	assert.Equal(t, plan.Selection{
		Preset:          catalog.PresetDeveloper,
		Browser:         catalog.BrowserChrome,
		Antivirus:       true,
		AntivirusVendor: catalog.AntivirusAvast,
		Cleanup:         true,
	}, sel)
	assert.Contains(t, ui.noteBody, "Antivirus: avast")
}

func TestAskSelectionSkipsVendorWithoutAntivirus(t *testing.T) {
	ui := &scriptedUI{
		selects:  []string{"gamer", "edge"},
		confirms: []bool{false, false, true},
	}
	sel, err := AskSelection(ui, plan.Selection{})
	require.NoError(t, err)
	assert.False(t, sel.Antivirus)
	assert.NotContains(t, ui.titles, "Which antivirus?")
	assert.Contains(t, ui.noteBody, "none (Windows Defender)")
}

func TestAskSelectionDeclinedToBegin(t *testing.T) {
	ui := &scriptedUI{
		selects:  []string{"kids", "firefox"},
		confirms: []bool{false, false, false},
	}
	_, err := AskSelection(ui, plan.Selection{})
	assert.ErrorIs(t, err, ErrAborted)
}

func TestAskSelectionPropagatesAbort(t *testing.T) {
	ui := &scriptedUI{selects: []string{"gamer"}, failOn: "Install an antivirus?"}
	ui.selects = append(ui.selects, "edge")
	_, err := AskSelection(ui, plan.Selection{})
	assert.ErrorIs(t, err, ErrAborted)
}

func TestHuhUIMapsUserAbort(t *testing.T) {
	orig := runFormFunc
	t.Cleanup(func() { runFormFunc = orig })

	runFormFunc = func(form *huh.Form) error {
		assert.NotNil(t, form)
		return huh.ErrUserAborted
	}
	var v bool
	assert.ErrorIs(t, HuhUI{}.Confirm("Begin?", &v), ErrAborted)

	runFormFunc = func(*huh.Form) error { return nil }
	var s string
	assert.NoError(t, HuhUI{}.Select("Pick", []string{"a", "b"}, &s))
	assert.NoError(t, HuhUI{}.Note("t", "b"))
}

func TestSummary(t *testing.T) {
	out := Summary(plan.Selection{Preset: catalog.PresetGamer, Browser: catalog.BrowserEdge, Antivirus: true})
	assert.Contains(t, out, "Preset:    gamer")
	assert.Contains(t, out, "Antivirus: malwarebytes")
	assert.Contains(t, out, "Run Tron:  false")
}
