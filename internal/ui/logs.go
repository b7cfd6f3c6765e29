package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/realmboard/internal/logtail"
)

// logTailLines bounds how much of the log file is read per refresh.
const logTailLines = 500

type logLinesMsg struct {
	entries []logtail.Entry
	err     error
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, logTailLines)
		return logLinesMsg{entries: logtail.ParseLines(lines), err: err}
	}
}

// applyLogLines replaces the log buffer and keeps the viewport pinned to the
// bottom while following.
func (m *Model) applyLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.logErr = msg.err.Error()
		return
	}
	m.logErr = ""
	m.logEntries = msg.entries
	m.updateLogViewport()
}

func (m *Model) updateLogViewport() {
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		lines = append(lines, formatLogEntry(e, styles))
	}
	m.logView.SetContent(strings.Join(lines, "\n"))
	if m.logFollow {
		m.logView.GotoBottom()
	}
}

// formatLogEntry renders one entry as "15:04:05 LEVEL [logger] message k=v".
func formatLogEntry(e logtail.Entry, styles Styles) string {
	if e.Raw != "" || (e.Message == "" && e.Level == "") {
		return styles.Text.Render(e.Raw)
	}

	var parts []string
	if !e.Time.IsZero() {
		parts = append(parts, styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
	}
	parts = append(parts, levelStyle(e.Level, styles).Render(padRight(e.Level, 5)))
	if e.Logger != "" {
		parts = append(parts, styles.InfoText.Render("["+e.Logger+"]"))
	}
	parts = append(parts, styles.Text.Render(e.Message))
	for _, f := range e.Fields {
		parts = append(parts, styles.MutedText.Render(f.Key+"=")+styles.Text.Render(f.Value))
	}
	return strings.Join(parts, " ")
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return styles.DangerText
	case "WARN":
		return styles.WarningText.Bold(true)
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.SuccessText
	}
}

// handleLogsKey scrolls the log view. Scrolling up stops following; G
// resumes it.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Bottom):
		m.logFollow = true
		m.logView.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.logFollow = false
		m.logView.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.logFollow = false
	}

	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	if m.logView.AtBottom() {
		m.logFollow = true
	}
	return m, cmd
}

// renderLogs renders the tail of realmboard's own log file.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2

	if m.logPath == "" {
		msg := styles.FaintText.Render("File logging is disabled")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)
	}

	follow := "off"
	if m.logFollow {
		follow = "on"
	}
	title := fmt.Sprintf("Log %d lines, follow %s", len(m.logEntries), follow)

	content := m.logView.View()
	switch {
	case m.logErr != "":
		content = styles.DangerText.Render(m.logErr)
	case len(m.logEntries) == 0:
		content = styles.FaintText.Render("No log entries yet")
	}
	return m.renderTitledBox(title, content, m.width, contentHeight, true)
}
