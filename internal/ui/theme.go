package ui

import (
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/realmboard/internal/sotah"
)

// Theme is a named palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string
	Surface    string
	SurfaceAlt string
	FocusBg    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	Badges Badges
}

// Badges colors the realm summary chips.
type Badges struct {
	Population map[sotah.Population]string
	Online     string
	Offline    string
	Queue      string
}

// Styles holds the text styles a view renders with.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	badges Badges
	ink    string
	muted  string
}

// Styles builds the lipgloss styles for t.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:     fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),

		badges: t.Badges,
		ink:    t.Background,
		muted:  t.Muted,
	}
}

// PopulationBadge renders the chip for a realm population bucket. Unknown
// buckets use the muted color.
func (s Styles) PopulationBadge(p sotah.Population) string {
	return s.badge(s.badges.Population[p]).Render(populationLabel(p))
}

// StatusBadge renders the online/offline chip.
func (s Styles) StatusBadge(online bool) string {
	if online {
		return s.badge(s.badges.Online).Render("online")
	}
	return s.badge(s.badges.Offline).Render("offline")
}

// QueueBadge renders the chip shown while a realm has a login queue.
func (s Styles) QueueBadge() string {
	return s.badge(s.badges.Queue).Render("queue")
}

func (s Styles) badge(color string) lipgloss.Style {
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.ink)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground paints every text style onto bg, so text drawn on a
// colored bar does not punch holes through it. Badges keep their colors.
func (s Styles) WithBackground(bg string) Styles {
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo, &out.Selected,
	} {
		*st = st.Background(lipgloss.Color(bg))
	}
	return out
}

var themes = []Theme{
	{
		// https://github.com/EdenEast/nightfox.nvim
		Name:       "Nightfox",
		Background: "#131a24", Surface: "#192330", SurfaceAlt: "#212e3f", FocusBg: "#29394f",
		SelectionBg: "#2b3b51", SelectionText: "#cdcecf",
		Border: "#39506d", BorderFocus: "#719cd6",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
		Badges: Badges{
			Population: map[sotah.Population]string{
				sotah.PopulationMedium: "#81b29a",
				sotah.PopulationHigh:   "#dbc074",
				sotah.PopulationFull:   "#c94f6d",
			},
			Online: "#81b29a", Offline: "#c94f6d", Queue: "#f4a261",
		},
	},
	{
		// https://github.com/rebelot/kanagawa.nvim
		Name:       "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28", SurfaceAlt: "#2A2A37", FocusBg: "#2A2A37",
		SelectionBg: "#2D4F67", SelectionText: "#DCD7BA",
		Border: "#54546D", BorderFocus: "#7E9CD8",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169", Accent: "#7E9CD8",
		Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876", Info: "#7FB4CA",
		Badges: Badges{
			Population: map[sotah.Population]string{
				sotah.PopulationNA:     "#727169",
				sotah.PopulationMedium: "#98BB6C",
				sotah.PopulationHigh:   "#E6C384",
				sotah.PopulationFull:   "#E46876",
			},
			Online: "#98BB6C", Offline: "#E46876", Queue: "#957FB8",
		},
	},
	{
		// Tailwind slate and sky scales
		Name:       "Slate",
		Background: "#020617", Surface: "#0f172a", SurfaceAlt: "#1e293b", FocusBg: "#283548",
		SelectionBg: "#0284c7", SelectionText: "#f8fafc",
		Border: "#334155", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
		Badges: Badges{
			Population: map[sotah.Population]string{
				sotah.PopulationMedium: "#22c55e",
				sotah.PopulationHigh:   "#f59e0b",
				sotah.PopulationFull:   "#dc2626",
			},
			Online: "#16a34a", Offline: "#dc2626", Queue: "#06b6d4",
		},
	},
}

// GetTheme returns the theme called name, or the first theme.
func GetTheme(name string) Theme {
	if i := slices.IndexFunc(themes, func(t Theme) bool { return t.Name == name }); i >= 0 {
		return themes[i]
	}
	return themes[0]
}

// NextTheme returns the theme after current in cycle order.
func NextTheme(current string) string {
	i := slices.IndexFunc(themes, func(t Theme) bool { return t.Name == current })
	return themes[(i+1)%len(themes)].Name
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
