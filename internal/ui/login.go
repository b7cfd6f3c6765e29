package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldEmail = iota
	fieldPassword
)

// loginModal collects credentials for login or registration. It stays open
// while a submission is pending; the store decides when it closes.
type loginModal struct {
	inputs   [2]textinput.Model
	focus    int
	register bool
	pending  bool
	err      string
}

func newLoginModal() *loginModal {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "Email    "
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password "
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &loginModal{inputs: [2]textinput.Model{email, password}}
}

func textinputBlink() tea.Cmd {
	return textinput.Blink
}

func (l *loginModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		l.inputs[l.focus], cmd = l.inputs[l.focus].Update(msg)
		return l, cmd, false
	}

	switch {
	case key.Matches(km, keys.Escape):
		return l, nil, true
	case l.pending:
		return l, nil, false
	case key.Matches(km, keys.NextField):
		l.setFocus(1 - l.focus)
		return l, textinput.Blink, false
	case key.Matches(km, keys.ToggleRegister):
		l.register = !l.register
		l.err = ""
		return l, nil, false
	case key.Matches(km, keys.Confirm):
		if l.focus == fieldEmail {
			l.setFocus(fieldPassword)
			return l, textinput.Blink, false
		}
		return l, l.submit(), false
	}

	var cmd tea.Cmd
	l.inputs[l.focus], cmd = l.inputs[l.focus].Update(km)
	return l, cmd, false
}

func (l *loginModal) setFocus(field int) {
	l.focus = field
	for i := range l.inputs {
		if i == field {
			l.inputs[i].Focus()
		} else {
			l.inputs[i].Blur()
		}
	}
}

// submit validates the form and emits the credentials.
func (l *loginModal) submit() tea.Cmd {
	email := strings.TrimSpace(l.inputs[fieldEmail].Value())
	password := l.inputs[fieldPassword].Value()
	switch {
	case email == "":
		l.err = "email is required"
		l.setFocus(fieldEmail)
		return nil
	case password == "":
		l.err = "password is required"
		return nil
	}

	l.err = ""
	l.pending = true
	register := l.register
	return func() tea.Msg {
		return loginSubmitMsg{email: email, password: password, register: register}
	}
}

func (l *loginModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	title := "Log in"
	toggle := "ctrl+n: create an account"
	if l.register {
		title = "Register"
		toggle = "ctrl+n: use an existing account"
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n\n")
	b.WriteString(l.inputs[fieldEmail].View())
	b.WriteString("\n")
	b.WriteString(l.inputs[fieldPassword].View())
	b.WriteString("\n\n")

	switch {
	case l.pending:
		b.WriteString(styles.AccentText.Render("Signing in..."))
	case l.err != "":
		b.WriteString(styles.DangerText.Render(truncate(l.err, 40)))
	default:
		b.WriteString(styles.FaintText.Render("enter: submit  tab: next field"))
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(toggle))

	return placeModal(theme, b.String(), 48, width, height)
}
