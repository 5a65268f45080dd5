package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor  = lipgloss.Color("#3B82F6")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	passStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	selectedStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
)

func renderResultLine(r programResult) string {
	elapsed := mutedStyle.Render(fmt.Sprintf("(%s)", r.Elapsed.Round(time.Microsecond)))
	if r.Passed() {
		return fmt.Sprintf("%s %s %s", passStyle.Render("PASS"), r.Name, elapsed)
	}
	return fmt.Sprintf("%s %s %s %s", failStyle.Render("FAIL"), r.Name, failStyle.Render(r.Status()), elapsed)
}

func renderSummaryLine(name string, results []programResult) string {
	passed := 0
	for _, r := range results {
		if r.Passed() {
			passed++
		}
	}
	failed := len(results) - passed
	line := fmt.Sprintf("%s: %d passed, %d failed", name, passed, failed)
	if failed == 0 {
		return passStyle.Render(line)
	}
	return failStyle.Render(line)
}

type browseKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

var browseKeys = browseKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous program"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next program"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type browseModel struct {
	title    string
	results  []programResult
	cursor   int
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	quitting bool
}

func newBrowseModel(title string, results []programResult) browseModel {
	return browseModel{title: title, results: results}
}

func (m browseModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		detailHeight := m.height - len(m.results) - 7
		if detailHeight < 3 {
			detailHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, detailHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = detailHeight
		}
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browseKeys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, browseKeys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.refreshDetail()
			}
			return m, nil

		case key.Matches(msg, browseKeys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
				m.refreshDetail()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refreshDetail fills the lower pane with the selected program's outcome:
// the full runtime error rendering, code frame and trace included, or a
// short pass note.
func (m *browseModel) refreshDetail() {
	if !m.ready || len(m.results) == 0 {
		return
	}
	r := m.results[m.cursor]
	if r.Err == nil {
		m.viewport.SetContent(passStyle.Render("pass") + mutedStyle.Render(fmt.Sprintf(" in %s", r.Elapsed.Round(time.Microsecond))))
	} else {
		m.viewport.SetContent(r.Err.Error())
	}
	m.viewport.GotoTop()
}

func (m browseModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("tiny suite") + " " + m.title + "  " + renderSummaryLine("results", m.results) + "\n\n")

	for i, r := range m.results {
		marker := "  "
		line := renderResultLine(r)
		if i == m.cursor {
			marker = selectedStyle.Render("▸ ")
		}
		b.WriteString(marker + line + "\n")
	}

	b.WriteString("\n" + detailStyle.Render(m.viewport.View()) + "\n")

	footer := selectedStyle.Render("↑/↓") + mutedStyle.Render(" select  ") +
		selectedStyle.Render("pgup/pgdn") + mutedStyle.Render(" scroll  ") +
		selectedStyle.Render("q") + mutedStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func browseResults(title string, results []programResult) error {
	p := tea.NewProgram(newBrowseModel(title, results), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
