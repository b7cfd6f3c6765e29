package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/realmboard/internal/fetch"
	"github.com/five82/realmboard/internal/sotah"
)

func newRealmTable(theme Theme) table.Model {
	t := table.New(
		table.WithColumns(realmColumns(0)),
		table.WithFocused(true),
	)
	t.SetStyles(tableStyles(theme))
	return t
}

// tableStyles maps the theme onto the bubbles table.
func tableStyles(theme Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(theme.Muted)).
		Bold(true)
	s.Cell = s.Cell.Foreground(lipgloss.Color(theme.Text))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(theme.SelectionText)).
		Background(lipgloss.Color(theme.SelectionBg)).
		Bold(false)
	return s
}

// realmColumns sizes the realm table for the given terminal width.
func realmColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "", Width: 1},
		{Title: "Realm", Width: 24},
		{Title: "Population", Width: 10},
		{Title: "Queue", Width: 5},
		{Title: "Status", Width: 7},
		{Title: "Auctions", Width: 9},
	}
	if width >= LayoutWideWidth {
		cols = append(cols,
			table.Column{Title: "Type", Width: 8},
			table.Column{Title: "Locale", Width: 6},
			table.Column{Title: "Battlegroup", Width: 14},
		)
	}
	return cols
}

// realmRow formats one realm for the table. current marks the selected realm.
func realmRow(r sotah.Realm, current bool, wide bool) table.Row {
	marker := ""
	if current {
		marker = "●"
	}
	queue := "no"
	if r.Queue {
		queue = "yes"
	}
	status := "offline"
	if r.Status {
		status = "online"
	}
	row := table.Row{
		marker,
		r.Name,
		populationLabel(r.Population),
		queue,
		status,
		formatAge(r.LastModifiedTime(), relativeNow()),
	}
	if wide {
		row = append(row, titleCase(r.Type), r.Locale, r.Battlegroup)
	}
	return row
}

func populationLabel(p sotah.Population) string {
	if p == "" || p == sotah.PopulationNA {
		return string(sotah.PopulationNA)
	}
	return titleCase(string(p))
}

// realmList returns the current region's realms in delivery order.
func (m *Model) realmList() []sotah.Realm {
	if m.snapshot == nil {
		return nil
	}
	return m.snapshot.RealmList.Data
}

// updateRealmTable refreshes rows, keeping the cursor on the same realm.
func (m *Model) updateRealmTable() {
	realms := m.realmList()
	wide := m.width >= LayoutWideWidth

	var selected sotah.RealmSlug
	if row := m.realmTable.Cursor(); row >= 0 && row < len(m.realmTable.Rows()) {
		if prev := m.realmTable.Rows()[row]; len(prev) > 1 {
			selected = slugByName(realms, prev[1])
		}
	}
	if selected == "" && m.snapshot != nil && m.snapshot.CurrentRealm != nil {
		selected = m.snapshot.CurrentRealm.Slug
	}

	var current sotah.RealmSlug
	if m.snapshot != nil && m.snapshot.CurrentRealm != nil {
		current = m.snapshot.CurrentRealm.Slug
	}

	rows := make([]table.Row, 0, len(realms))
	cursor := 0
	for i, r := range realms {
		rows = append(rows, realmRow(r, r.Slug == current, wide))
		if r.Slug == selected {
			cursor = i
		}
	}

	// Columns and rows must agree in length before either is set.
	m.realmTable.SetRows(nil)
	m.realmTable.SetColumns(realmColumns(m.width))
	m.realmTable.SetRows(rows)
	m.realmTable.SetCursor(cursor)
}

func slugByName(realms []sotah.Realm, name string) sotah.RealmSlug {
	for _, r := range realms {
		if r.Name == name {
			return r.Slug
		}
	}
	return ""
}

// selectedRealm returns the realm under the table cursor.
func (m Model) selectedRealm() (sotah.Realm, bool) {
	realms := m.realmList()
	i := m.realmTable.Cursor()
	if i < 0 || i >= len(realms) {
		return sotah.Realm{}, false
	}
	return realms[i], true
}

// handleRealmsKey processes keyboard input for the realms view.
func (m Model) handleRealmsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		realm, ok := m.selectedRealm()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return realmPickedMsg{realm: realm} }
	}
	var cmd tea.Cmd
	m.realmTable, cmd = m.realmTable.Update(msg)
	return m, cmd
}

// renderRealms renders the realm table of the current region.
func (m Model) renderRealms() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2 // header + command bar

	region := "-"
	if m.snapshot.CurrentRegion != nil {
		region = strings.ToUpper(string(m.snapshot.CurrentRegion.Name))
	}
	realms := m.realmList()
	title := fmt.Sprintf("Realms %s (%d)", region, len(realms))

	if len(realms) == 0 {
		var msg string
		switch m.snapshot.RealmList.Level {
		case fetch.Prompted, fetch.Fetching:
			msg = styles.AccentText.Render(m.spinner.View()) + " " + styles.MutedText.Render("Loading realms...")
		case fetch.Failure:
			msg = styles.DangerText.Render("Could not load realms for " + region)
		default:
			msg = m.bootMessage(styles)
		}
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)
	}

	summary := m.realmSummary(styles)
	if m.snapshot.RealmList.Level == fetch.Failure {
		summary = styles.DangerText.Render("Refresh failed, showing last known realms")
	}
	content := summary + "\n" + m.realmTable.View()
	return m.renderTitledBox(title, content, m.width, contentHeight, true)
}

// realmSummary renders badges for the current realm.
func (m Model) realmSummary(styles Styles) string {
	r := m.snapshot.CurrentRealm
	if r == nil {
		return styles.FaintText.Render("No realm selected")
	}
	parts := []string{
		styles.Text.Bold(true).Render(r.Name),
		styles.PopulationBadge(r.Population),
		styles.StatusBadge(r.Status),
	}
	if r.Queue {
		parts = append(parts, styles.QueueBadge())
	}
	return strings.Join(parts, " ")
}

// bootMessage explains what the dashboard is waiting for before realms.
func (m Model) bootMessage(styles Styles) string {
	s := m.snapshot
	switch {
	case s.Ping.Level == fetch.Failure:
		return styles.DangerText.Render("API unreachable, retrying...")
	case s.Boot.Level == fetch.Failure:
		return styles.DangerText.Render("Could not load regions")
	default:
		return styles.AccentText.Render(m.spinner.View()) + " " + styles.MutedText.Render("Starting up...")
	}
}
