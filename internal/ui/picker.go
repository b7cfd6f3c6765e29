package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/realmboard/internal/state"
)

const pickerVisibleRows = 12

type pickerItem struct {
	label   string
	detail  string
	current bool
	pick    func() tea.Msg
}

// pickerModal is a filterable single-choice list.
type pickerModal struct {
	title   string
	items   []pickerItem
	filter  textinput.Model
	matches []int
	cursor  int
	offset  int
}

func newPickerModal(title string, items []pickerItem) *pickerModal {
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.Prompt = "/ "
	filter.CharLimit = 32
	filter.Focus()

	p := &pickerModal{title: title, items: items, filter: filter}
	p.refilter()
	for i, idx := range p.matches {
		if items[idx].current {
			p.cursor = i
			break
		}
	}
	p.scroll()
	return p
}

// newRegionPicker lists the boot regions. It returns nil before boot.
func newRegionPicker(s *state.AppState) Modal {
	regions := s.RegionList()
	if len(regions) == 0 {
		return nil
	}
	items := make([]pickerItem, 0, len(regions))
	for _, r := range regions {
		region := r
		items = append(items, pickerItem{
			label:   strings.ToUpper(string(r.Name)),
			detail:  r.Hostname,
			current: s.CurrentRegion != nil && s.CurrentRegion.Name == r.Name,
			pick:    func() tea.Msg { return regionPickedMsg{region: region} },
		})
	}
	return newPickerModal("Select region", items)
}

// newRealmPicker lists the current region's realms. It returns nil until
// realms have been fetched.
func newRealmPicker(s *state.AppState) Modal {
	realms := s.RealmList.Data
	if len(realms) == 0 {
		return nil
	}
	items := make([]pickerItem, 0, len(realms))
	for _, r := range realms {
		realm := r
		items = append(items, pickerItem{
			label:   r.Name,
			detail:  populationLabel(r.Population),
			current: s.CurrentRealm != nil && s.CurrentRealm.Slug == r.Slug,
			pick:    func() tea.Msg { return realmPickedMsg{realm: realm} },
		})
	}
	title := "Select realm"
	if s.CurrentRegion != nil {
		title = fmt.Sprintf("Select %s realm", strings.ToUpper(string(s.CurrentRegion.Name)))
	}
	return newPickerModal(title, items)
}

func (p *pickerModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}

	switch {
	case key.Matches(km, keys.Escape):
		return p, nil, true
	case key.Matches(km, keys.Confirm):
		if len(p.matches) == 0 {
			return p, nil, false
		}
		return p, p.items[p.matches[p.cursor]].pick, true
	}

	switch km.String() {
	case "up", "ctrl+p":
		p.move(-1)
		return p, nil, false
	case "down", "ctrl+n":
		p.move(1)
		return p, nil, false
	case "pgup":
		p.move(-pickerVisibleRows)
		return p, nil, false
	case "pgdown":
		p.move(pickerVisibleRows)
		return p, nil, false
	}

	var cmd tea.Cmd
	before := p.filter.Value()
	p.filter, cmd = p.filter.Update(km)
	if p.filter.Value() != before {
		p.refilter()
	}
	return p, cmd, false
}

func (p *pickerModal) move(delta int) {
	if len(p.matches) == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.matches)-1)
	p.scroll()
}

// scroll keeps the cursor inside the visible window.
func (p *pickerModal) scroll() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerVisibleRows {
		p.offset = p.cursor - pickerVisibleRows + 1
	}
}

func (p *pickerModal) refilter() {
	query := strings.ToLower(strings.TrimSpace(p.filter.Value()))
	p.matches = p.matches[:0]
	for i, item := range p.items {
		if query == "" || strings.Contains(strings.ToLower(item.label), query) {
			p.matches = append(p.matches, i)
		}
	}
	p.cursor = 0
	p.offset = 0
}

func (p *pickerModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	modalWidth := min(max(width/2, 36), 56)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.title))
	b.WriteString("\n")
	b.WriteString(p.filter.View())
	b.WriteString("\n\n")

	if len(p.matches) == 0 {
		b.WriteString(styles.FaintText.Render("No matches"))
	}
	end := min(p.offset+pickerVisibleRows, len(p.matches))
	labelWidth := modalWidth - 18
	for row := p.offset; row < end; row++ {
		item := p.items[p.matches[row]]
		marker := "  "
		if item.current {
			marker = "● "
		}
		line := marker + padRight(truncate(item.label, labelWidth), labelWidth)
		if row == p.cursor {
			b.WriteString(styles.Selected.Render(line + " " + truncate(item.detail, 10)))
		} else {
			b.WriteString(styles.Text.Render(line) + " " + styles.MutedText.Render(truncate(item.detail, 10)))
		}
		if row < end-1 {
			b.WriteString("\n")
		}
	}
	if len(p.matches) > pickerVisibleRows {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d/%d", p.cursor+1, len(p.matches))))
	}

	return placeModal(theme, b.String(), modalWidth, width, height)
}
