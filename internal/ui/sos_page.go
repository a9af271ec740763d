package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/collection"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

// sosPage shows the panic alert feed. Resolution happens in the field
// and flows back through the API; this console only tracks it.
type sosPage struct {
	ctrl    *collection.Controller[models.SOSAlert]
	stale   bool
	loading bool
}

func newSOSPage() sosPage {
	return sosPage{
		ctrl: collection.New(collection.Config[models.SOSAlert]{
			ID:         func(a models.SOSAlert) string { return a.ID },
			SearchText: func(a models.SOSAlert) []string { return []string{a.UserID} },
			Less: func(a, b models.SOSAlert) bool {
				return a.CreatedAt.After(b.CreatedAt)
			},
			Fallback: collection.FallbackNone,
		}),
	}
}

func (p sosPage) update(msg tea.KeyMsg) (sosPage, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		moveFocus(p.ctrl, p.ctrl.Items(), -1, func(a models.SOSAlert) string { return a.ID })
	case "down", "j":
		moveFocus(p.ctrl, p.ctrl.Items(), 1, func(a models.SOSAlert) string { return a.ID })
	}
	return p, nil
}

func (p sosPage) view(width int) string {
	var rows []string
	focusedID := p.ctrl.FocusedID()
	open := 0
	for _, a := range p.ctrl.Items() {
		status := severityHighStyle.Render("ACTIVE")
		if a.Resolved {
			status = severityLowStyle.Render("resolved")
		} else {
			open++
		}
		line := fmt.Sprintf("%-20s %s  (%.4f, %.4f)  %s",
			truncate(a.UserID, 20), a.CreatedAt.Format("Jan 02 15:04"), a.Latitude, a.Longitude, status)
		if a.ID == focusedID {
			rows = append(rows, focusedRowStyle.Render("> "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, mutedStyle.Render("No panic alerts."))
	}

	header := fmt.Sprintf("SOS / Panic Alerts (%d, %d active)", p.ctrl.Len(), open)
	if p.stale {
		header += "  " + staleStyle.Render("[offline snapshot]")
	}

	pane := paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(header),
		"",
		strings.Join(rows, "\n"),
	))
	help := helpStyle.Render("↑/↓: Navigate • R: Reload")

	return lipgloss.JoinVertical(lipgloss.Left, pane, help)
}
