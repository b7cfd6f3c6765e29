package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// View switching
	ViewRealms     key.Binding
	ViewPricelists key.Binding
	ViewLogs       key.Binding

	// Selection
	RegionPicker key.Binding
	RealmPicker  key.Binding
	Login        key.Binding
	Refresh      key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Dialogs
	Confirm        key.Binding
	NextField      key.Binding
	ToggleRegister key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / back to realms"),
		),

		// View switching
		ViewRealms: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Realms view"),
		),
		ViewPricelists: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Pricelists view"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Log view"),
		),

		// Selection
		RegionPicker: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Pick region"),
		),
		RealmPicker: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Pick realm"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Log in / out"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Refresh pricelists"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		// Dialogs
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Next field"),
		),
		ToggleRegister: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "Toggle login/register"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewRealms, k.ViewPricelists, k.ViewLogs, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.Confirm},
		{k.RegionPicker, k.RealmPicker, k.Refresh},
		{k.Login, k.NextField, k.ToggleRegister},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
