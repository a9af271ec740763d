package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/api"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/collection"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

var roleFilters = []string{"all", "student", "campus_security", "admin"}

// usersPage owns the campus directory view
type usersPage struct {
	ctrl      *collection.Controller[models.User]
	search    textinput.Model
	searching bool
	filter    int
	stale     bool
	loading   bool
}

func newUsersPage() usersPage {
	search := textinput.New()
	search.Placeholder = "Search name or email..."
	search.CharLimit = 100
	search.Width = 30

	return usersPage{
		ctrl: collection.New(collection.Config[models.User]{
			ID:         func(u models.User) string { return u.ID },
			SearchText: func(u models.User) []string { return []string{u.FullName, u.Email, u.StudentID} },
			Fallback:   collection.FallbackFirst,
		}),
		search: search,
	}
}

func (p *usersPage) visible() []models.User {
	filter := roleFilters[p.filter]
	var match func(models.User) bool
	if filter != "all" {
		match = func(u models.User) bool { return string(u.Role) == filter }
	}
	return p.ctrl.Filter(p.search.Value(), match)
}

func (p usersPage) update(msg tea.KeyMsg, client *api.Client) (usersPage, tea.Cmd) {
	if p.searching {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			p.searching = false
			p.search.Blur()
			return p, nil
		}
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(msg)
		return p, cmd
	}

	switch msg.String() {
	case "/":
		p.searching = true
		p.search.Focus()
		return p, textinput.Blink
	case "up", "k":
		moveFocus(p.ctrl, p.visible(), -1, func(u models.User) string { return u.ID })
	case "down", "j":
		moveFocus(p.ctrl, p.visible(), 1, func(u models.User) string { return u.ID })
	case "f":
		p.filter = (p.filter + 1) % len(roleFilters)
	case "d":
		if u, ok := p.ctrl.Focused(); ok {
			p.loading = true
			return p, deleteUser(client, u.ID)
		}
	}
	return p, nil
}

func (p usersPage) view(width int) string {
	visible := p.visible()

	var rows []string
	focusedID := p.ctrl.FocusedID()
	for _, u := range visible {
		device := " "
		if u.HasDeviceToken {
			device = "📱"
		}
		line := fmt.Sprintf("%-24s %-28s %-16s %s", truncate(u.FullName, 24), truncate(u.Email, 28), u.Role, device)
		if u.ID == focusedID {
			rows = append(rows, focusedRowStyle.Render("> "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, mutedStyle.Render("No users match."))
	}

	header := fmt.Sprintf("Users (%d/%d) • role: %s", len(visible), p.ctrl.Len(), roleFilters[p.filter])
	if p.stale {
		header += "  " + staleStyle.Render("[offline snapshot]")
	}

	left := paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(header),
		p.search.View(),
		"",
		strings.Join(rows, "\n"),
	))
	right := paneStyle.Render(p.viewDetail())
	help := helpStyle.Render("/: Search • F: Filter role • D: Remove user • R: Reload")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		help,
	)
}

func (p usersPage) viewDetail() string {
	u, ok := p.ctrl.Focused()
	if !ok {
		return mutedStyle.Render("No user selected")
	}

	lines := []string{
		titleStyle.Render(u.FullName),
		"",
		labelStyle.Render("Email:     ") + valueStyle.Render(u.Email),
		labelStyle.Render("Role:      ") + valueStyle.Render(string(u.Role)),
	}
	if u.StudentID != "" {
		lines = append(lines, labelStyle.Render("Student ID:")+valueStyle.Render(" "+u.StudentID))
	}
	device := "no"
	if u.HasDeviceToken {
		device = "yes"
	}
	lines = append(lines,
		labelStyle.Render("Device:    ")+valueStyle.Render(device),
		labelStyle.Render("Joined:    ")+valueStyle.Render(u.JoinedAt.Format("2006-01-02")),
	)

	if len(u.TrustedContacts) > 0 {
		lines = append(lines, "", labelStyle.Render("Trusted contacts:"))
		for _, c := range u.TrustedContacts {
			lines = append(lines, valueStyle.Render(fmt.Sprintf("  %s (%s) %s %s", c.Name, c.Relationship, c.Email, c.Phone)))
		}
	}
	return strings.Join(lines, "\n")
}
