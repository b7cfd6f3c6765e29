package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/realmboard/internal/fetch"
	"github.com/five82/realmboard/internal/state"
)

// renderHeader renders the status bar with all information.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	content := m.buildStatusContent(styles, bg)

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(content)
}

// buildStatusContent builds the status bar content string.
func (m Model) buildStatusContent(styles Styles, bg BgStyle) string {
	s := m.snapshot
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("realmboard", styles.Logo)}

	// API reachability
	switch s.Ping.Level {
	case fetch.Success:
		parts = append(parts, bg.Render("● API", styles.SuccessText))
	case fetch.Failure:
		parts = append(parts,
			bg.Render("● API DOWN", styles.DangerText)+bg.Space()+
				bg.Render("Retrying...", styles.WarningText.Bold(true)))
	default:
		parts = append(parts,
			bg.Render(m.spinner.View(), styles.AccentText)+bg.Space()+
				bg.Render("Connecting...", styles.WarningText.Bold(true)))
	}

	// Region and realm
	region := "-"
	if s.CurrentRegion != nil {
		region = strings.ToUpper(string(s.CurrentRegion.Name))
	}
	parts = append(parts, bg.Render("Region:", styles.MutedText)+bg.Space()+
		m.levelLabel(s.Boot.Level, region, styles, bg))

	realm := "-"
	if s.CurrentRealm != nil {
		realm = s.CurrentRealm.Name
		if compact {
			realm = truncate(realm, 16)
		}
	}
	parts = append(parts, bg.Render("Realm:", styles.MutedText)+bg.Space()+
		m.levelLabel(s.RealmList.Level, realm, styles, bg))

	// Account
	parts = append(parts, m.formatAccount(styles, bg))

	if ts := m.formatTimestamp(); ts != "" && !compact {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	// Transient action error
	if m.errorMsg != "" {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render("!", styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(truncate(m.errorMsg, maxErr), styles.WarningText))
	}

	return bg.Join(parts, "  ")
}

// levelLabel decorates value with the fetch state that produces it.
func (m Model) levelLabel(level fetch.Level, value string, styles Styles, bg BgStyle) string {
	switch level {
	case fetch.Fetching, fetch.Prompted:
		return bg.Render(m.spinner.View(), styles.AccentText) + bg.Space() + bg.Render(value, styles.Text)
	case fetch.Failure:
		return bg.Render(value, styles.Text) + bg.Space() + bg.Render("(failed)", styles.DangerText)
	default:
		return bg.Render(value, styles.Text)
	}
}

func (m Model) formatAccount(styles Styles, bg BgStyle) string {
	s := m.snapshot
	switch s.AuthLevel {
	case state.AuthAuthenticated:
		label := "logged in"
		if s.Profile != nil && s.Profile.User.Email != "" {
			label = s.Profile.User.Email
		}
		return bg.Render("User:", styles.MutedText) + bg.Space() + bg.Render(label, styles.InfoText)
	case state.AuthUnauthenticated:
		return bg.Render("User:", styles.MutedText) + bg.Space() + bg.Render("anonymous", styles.FaintText)
	default:
		return bg.Render("User:", styles.MutedText) + bg.Space() + bg.Render("...", styles.FaintText)
	}
}

// formatTimestamp renders when the last snapshot arrived.
func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}
	return m.lastUpdated.Format("15:04:05")
}

// renderCommandBar renders the per-view key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewPricelists:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"ctrl+r", "Refresh"},
			{"v", "Realms"},
			{"r/R", "Region/Realm"},
		}
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"G", "Follow"},
			{"v", "Realms"},
		}
	default: // ViewRealms
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Select realm"},
			{"r/R", "Region/Realm"},
			{"p", "Pricelists"},
		}
	}
	if m.snapshot.AuthLevel == state.AuthAuthenticated {
		commands = append(commands, cmd{"L", "Logout"})
	} else {
		commands = append(commands, cmd{"L", "Login"})
	}
	commands = append(commands, cmd{"?", "More"})

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// relativeNow is swapped in tests.
var relativeNow = time.Now
