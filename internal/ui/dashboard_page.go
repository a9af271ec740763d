package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

// dashboardPage summarizes the whole platform at a glance. Its four
// reads are issued in parallel on mount and joined before rendering.
type dashboardPage struct {
	zones     []models.Zone
	incidents []models.Incident
	sos       []models.SOSAlert
	users     []models.User
	loaded    bool
}

func (p dashboardPage) view(width int) string {
	if !p.loaded {
		return mutedStyle.Render("Loading dashboard...")
	}

	highZones, pendingIncidents, activeSOS := 0, 0, 0
	for _, z := range p.zones {
		if z.Severity == models.SeverityHigh {
			highZones++
		}
	}
	for _, i := range p.incidents {
		if i.IsOpen() {
			pendingIncidents++
		}
	}
	for _, a := range p.sos {
		if !a.Resolved {
			activeSOS++
		}
	}

	stat := func(label string, value int, accent lipgloss.Style) string {
		return paneStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			accent.Render(fmt.Sprintf("%d", value)),
			mutedStyle.Render(label),
		))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("danger zones", len(p.zones), titleStyle),
		stat("high severity", highZones, severityHighStyle),
		stat("pending reports", pendingIncidents, severityMediumStyle),
		stat("active SOS", activeSOS, severityHighStyle),
		stat("users", len(p.users), titleStyle),
	)

	var recent []string
	recent = append(recent, titleStyle.Render("Latest incidents"))
	count := 0
	for _, i := range p.incidents {
		if count >= 5 {
			break
		}
		recent = append(recent, fmt.Sprintf("  %s  %-32s %s",
			i.ReportedAt.Format("Jan 02 15:04"), truncate(i.Tag, 32), incidentStatusStyle(i.Status).Render(string(i.Status))))
		count++
	}
	if count == 0 {
		recent = append(recent, mutedStyle.Render("  No incidents reported."))
	}

	help := helpStyle.Render("R: Reload • 1-6: Switch pages • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		paneStyle.Render(strings.Join(recent, "\n")),
		help,
	)
}
