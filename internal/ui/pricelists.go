package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/realmboard/internal/fetch"
	"github.com/five82/realmboard/internal/sotah"
	"github.com/five82/realmboard/internal/state"
)

func (m Model) pricelists() []sotah.Pricelist {
	if m.snapshot == nil {
		return nil
	}
	return m.snapshot.PricelistList.Data
}

// listPaneWidth is the width of the list column in the pricelists view.
func (m Model) listPaneWidth() int {
	return min(max(m.width/3, 20), 40)
}

// updatePricelists follows the store's selected list and refreshes the
// entries pane.
func (m *Model) updatePricelists() {
	lists := m.pricelists()
	if m.snapshot != nil && m.snapshot.SelectedList != nil {
		for i, l := range lists {
			if l.ID == m.snapshot.SelectedList.ID {
				m.listRow = i
				break
			}
		}
	}
	if m.listRow >= len(lists) {
		m.listRow = max(len(lists)-1, 0)
	}

	if len(lists) == 0 {
		m.entries.SetContent("")
		return
	}
	m.entries.SetContent(m.renderEntries(lists[m.listRow]))
}

func (m Model) renderEntries(list sotah.Pricelist) string {
	styles := m.theme.Styles()
	if len(list.Entries) == 0 {
		return styles.FaintText.Render("No entries")
	}
	var b strings.Builder
	b.WriteString(styles.MutedText.Bold(true).Render(padRight("Item", 12) + "Quantity"))
	for _, e := range list.Entries {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(padRight(fmt.Sprintf("%d", e.ItemID), 12)))
		b.WriteString(styles.AccentText.Render(fmt.Sprintf("x%d", e.QuantityModifier)))
	}
	return b.String()
}

// handlePricelistsKey processes keyboard input for the pricelists view.
func (m Model) handlePricelistsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lists := m.pricelists()
	if len(lists) == 0 {
		return m, nil
	}

	row := m.listRow
	switch {
	case key.Matches(msg, m.keys.Up):
		row = max(row-1, 0)
	case key.Matches(msg, m.keys.Down):
		row = min(row+1, len(lists)-1)
	case key.Matches(msg, m.keys.Top):
		row = 0
	case key.Matches(msg, m.keys.Bottom):
		row = len(lists) - 1
	case key.Matches(msg, m.keys.Confirm):
	default:
		var cmd tea.Cmd
		m.entries, cmd = m.entries.Update(msg)
		return m, cmd
	}

	m.listRow = row
	if m.actions != nil {
		m.actions.SelectList(lists[row])
	}
	m.entries.SetContent(m.renderEntries(lists[row]))
	m.entries.GotoTop()
	return m, nil
}

// renderPricelists renders the list column and the selected list's entries.
func (m Model) renderPricelists() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2

	if m.snapshot.AuthLevel != state.AuthAuthenticated {
		msg := styles.MutedText.Render("Log in (L) to see your pricelists")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)
	}

	lists := m.pricelists()
	if len(lists) == 0 {
		var msg string
		switch m.snapshot.PricelistList.Level {
		case fetch.Failure:
			msg = styles.DangerText.Render("Could not load pricelists")
		case fetch.Success:
			msg = styles.FaintText.Render("No pricelists for this realm")
		default:
			msg = styles.AccentText.Render(m.spinner.View()) + " " + styles.MutedText.Render("Loading pricelists...")
		}
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)
	}

	leftWidth := m.listPaneWidth()
	rightWidth := max(m.width-leftWidth, 0)

	var rows []string
	for i, l := range lists {
		line := padRight(truncate(l.Name, leftWidth-6), leftWidth-6)
		count := fmt.Sprintf("%3d", len(l.Entries))
		if i == m.listRow {
			rows = append(rows, styles.Selected.Render(line+" "+count))
			continue
		}
		rows = append(rows, styles.Text.Render(line)+" "+styles.FaintText.Render(count))
	}

	realm := "-"
	if m.snapshot.CurrentRealm != nil {
		realm = m.snapshot.CurrentRealm.Name
	}
	left := m.renderTitledBox(fmt.Sprintf("Pricelists %s", realm), strings.Join(rows, "\n"), leftWidth, contentHeight, true)

	title := lists[m.listRow].Name
	if m.snapshot.PricelistList.Level == fetch.Fetching {
		title = m.spinner.View() + " " + title
	}
	right := m.renderTitledBox(title, m.entries.View(), rightWidth, contentHeight, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
