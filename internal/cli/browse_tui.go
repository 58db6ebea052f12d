package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/report"
	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/scan"
)

type browseMode int

const (
	browseModeList browseMode = iota
	browseModeDetail
)

var (
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	detailLabel = lipgloss.NewStyle().Bold(true)
)

func severityStyle(sev scan.Severity) lipgloss.Style {
	switch sev {
	case scan.SeverityHigh:
		return highStyle
	case scan.SeverityMedium:
		return mediumStyle
	default:
		return lowStyle
	}
}

type issueItem struct {
	index int
	iss   scan.Issue
}

func (i issueItem) Title() string {
	return fmt.Sprintf("[%d] %s %s", i.index+1, severityStyle(i.iss.Severity).Render(string(i.iss.Severity)), i.iss.Type)
}

func (i issueItem) Description() string {
	return i.iss.Fix
}

func (i issueItem) FilterValue() string {
	return strings.ToLower(i.iss.Type + " " + i.iss.Identifier())
}

type browseModel struct {
	doc      report.Document
	list     list.Model
	mode     browseMode
	selected issueItem
	width    int
	height   int
}

func newBrowseModel(doc report.Document) browseModel {
	items := make([]list.Item, 0, len(doc.Issues))
	for i, iss := range doc.Issues {
		items = append(items, issueItem{index: i, iss: iss})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	listModel := list.New(items, delegate, 0, 0)
	listModel.Title = fmt.Sprintf("CI diagnostic report (%d issues)", doc.TotalIssues)
	listModel.SetShowStatusBar(false)
	listModel.SetShowHelp(true)

	return browseModel{doc: doc, list: listModel, mode: browseModeList}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case browseModeList:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "enter":
				if item, ok := m.list.SelectedItem().(issueItem); ok {
					m.selected = item
					m.mode = browseModeDetail
				}
				return m, nil
			}
		case browseModeDetail:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "enter":
				m.mode = browseModeList
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	if m.mode == browseModeDetail {
		return m.detailView()
	}
	return m.list.View()
}

func (m browseModel) detailView() string {
	iss := m.selected.iss

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", detailLabel.Render("Issue:"), iss.Type)
	fmt.Fprintf(&b, "%s %s\n", detailLabel.Render("Severity:"), severityStyle(iss.Severity).Render(string(iss.Severity)))
	if iss.Pattern != "" {
		fmt.Fprintf(&b, "%s %s\n", detailLabel.Render("Pattern:"), iss.Pattern)
	} else if id := iss.Identifier(); id != "" {
		fmt.Fprintf(&b, "%s %s\n", detailLabel.Render("Identifier:"), id)
	}
	fmt.Fprintf(&b, "%s %s\n", detailLabel.Render("Fix:"), iss.Fix)
	fmt.Fprintf(&b, "%s\n%s\n", detailLabel.Render("Context:"), iss.Context)
	b.WriteString("\n(esc to go back, q to quit)")

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return detailStyle.Width(width).Render(b.String())
}

func runBrowser(doc report.Document) error {
	program := tea.NewProgram(newBrowseModel(doc), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
