package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/report"
	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/scan"
)

func browseFixture() report.Document {
	return report.Document{
		Timestamp:   "2026-02-04T00:00:00Z",
		ReturnCode:  1,
		TotalIssues: 2,
		Issues: []scan.Issue{
			{
				Type:       "MissingDependency",
				Severity:   scan.SeverityHigh,
				Pattern:    "ModuleNotFoundError: No module named 'RestrictedPython'",
				Dependency: "RestrictedPython",
				Context:    "ModuleNotFoundError: No module named 'RestrictedPython'",
				Fix:        "Add 'RestrictedPython>=6.0' to requirements.txt or pyproject.toml",
			},
			{
				Type:         "ImportError",
				Severity:     scan.SeverityHigh,
				ImportedName: "Foo",
				FromModule:   "pkg.bar",
				Context:      "ImportError: cannot import name 'Foo' from 'pkg.bar'",
				Fix:          "Check that 'Foo' is exported from module 'pkg.bar'",
			},
		},
		BySeverity: report.BySeverity{High: 2},
	}
}

func TestBrowseModelListView(t *testing.T) {
	m := newBrowseModel(browseFixture())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model := updated.(browseModel)

	view := model.View()
	if !strings.Contains(view, "MissingDependency") {
		t.Fatalf("expected first issue in list view:\n%s", view)
	}
}

func TestBrowseModelDetailAndBack(t *testing.T) {
	m := newBrowseModel(browseFixture())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model := updated.(browseModel)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(browseModel)
	if model.mode != browseModeDetail {
		t.Fatalf("expected detail mode after enter")
	}

	view := model.View()
	if !strings.Contains(view, "MissingDependency") {
		t.Fatalf("expected issue kind in detail view:\n%s", view)
	}
	if !strings.Contains(view, "requirements.txt") {
		t.Fatalf("expected fix hint in detail view:\n%s", view)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = updated.(browseModel)
	if model.mode != browseModeList {
		t.Fatalf("expected list mode after esc")
	}
}

func TestBrowseModelQuit(t *testing.T) {
	m := newBrowseModel(browseFixture())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}
