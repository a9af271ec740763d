package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/api"
)

// loginPage collects credentials and bootstraps the session
type loginPage struct {
	email    textinput.Model
	password textinput.Model
	focusIdx int
	loading  bool
	loginErr string
}

func newLoginPage() loginPage {
	email := textinput.New()
	email.Placeholder = "admin@campus.edu"
	email.CharLimit = 120
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginPage{email: email, password: password}
}

func (p *loginPage) submittable() bool {
	return strings.TrimSpace(p.email.Value()) != "" && p.password.Value() != ""
}

func (p loginPage) update(msg tea.KeyMsg, client *api.Client) (loginPage, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		p.focusIdx = (p.focusIdx + 1) % 2
		if p.focusIdx == 0 {
			p.email.Focus()
			p.password.Blur()
		} else {
			p.email.Blur()
			p.password.Focus()
		}
		return p, textinput.Blink
	case "enter":
		if !p.submittable() || p.loading {
			return p, nil
		}
		p.loading = true
		p.loginErr = ""
		return p, doLogin(client, strings.TrimSpace(p.email.Value()), p.password.Value())
	}

	var cmd tea.Cmd
	if p.focusIdx == 0 {
		p.email, cmd = p.email.Update(msg)
	} else {
		p.password, cmd = p.password.Update(msg)
	}
	return p, cmd
}

func (p loginPage) view(width, height int) string {
	lines := []string{
		titleStyle.Render("🛡  Campus Safety Admin"),
		mutedStyle.Render("Sign in to continue"),
		"",
		p.email.View(),
		p.password.View(),
	}
	if p.loading {
		lines = append(lines, "", mutedStyle.Render("Signing in..."))
	}
	if p.loginErr != "" {
		lines = append(lines, "", bannerErrorStyle.Render("✗ "+p.loginErr))
	}
	lines = append(lines, "", helpStyle.Render("Tab: Switch field • Enter: Sign in • Ctrl+C: Quit"))

	box := paneStyle.Width(50).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
