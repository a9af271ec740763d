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

var incidentFilters = []string{"all", "pending", "resolved", "rejected"}

// incidentsPage owns the incident report view. Incidents are never
// deleted here; admins only move them through their status lifecycle.
type incidentsPage struct {
	ctrl      *collection.Controller[models.Incident]
	search    textinput.Model
	searching bool
	filter    int
	stale     bool
	loading   bool

	// zoneNames resolves zone back-references in the detail pane
	zoneNames map[string]string
}

func newIncidentsPage() incidentsPage {
	search := textinput.New()
	search.Placeholder = "Search incidents..."
	search.CharLimit = 100
	search.Width = 30

	return incidentsPage{
		ctrl: collection.New(collection.Config[models.Incident]{
			ID:         func(i models.Incident) string { return i.ID },
			SearchText: func(i models.Incident) []string { return []string{i.Tag, i.Description} },
			Less: func(a, b models.Incident) bool {
				return a.ReportedAt.After(b.ReportedAt)
			},
			Fallback: collection.FallbackNone,
		}),
		search:    search,
		zoneNames: make(map[string]string),
	}
}

func (p *incidentsPage) visible() []models.Incident {
	filter := incidentFilters[p.filter]
	var match func(models.Incident) bool
	if filter != "all" {
		match = func(i models.Incident) bool { return string(i.Status) == filter }
	}
	return p.ctrl.Filter(p.search.Value(), match)
}

// clearZoneRefs nulls the zone back-reference on every incident that
// pointed at a deleted zone. The incidents themselves stay.
func (p *incidentsPage) clearZoneRefs(zoneID string) {
	for _, incident := range p.ctrl.Items() {
		if incident.ZoneID == zoneID {
			incident.ZoneID = ""
			p.ctrl.ApplyUpdate(incident)
		}
	}
	delete(p.zoneNames, zoneID)
}

// setZoneNames refreshes the id→name index used by the detail pane
func (p *incidentsPage) setZoneNames(zones []models.Zone) {
	p.zoneNames = make(map[string]string, len(zones))
	for _, z := range zones {
		p.zoneNames[z.ID] = z.Name
	}
}

func (p incidentsPage) update(msg tea.KeyMsg, client *api.Client) (incidentsPage, tea.Cmd) {
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
		moveFocus(p.ctrl, p.visible(), -1, func(i models.Incident) string { return i.ID })
	case "down", "j":
		moveFocus(p.ctrl, p.visible(), 1, func(i models.Incident) string { return i.ID })
	case "f":
		p.filter = (p.filter + 1) % len(incidentFilters)
	case "s":
		if i, ok := p.ctrl.Focused(); ok && i.Status != models.IncidentResolved {
			p.loading = true
			return p, changeIncidentStatus(client, i.ID, models.IncidentResolved)
		}
	case "x":
		if i, ok := p.ctrl.Focused(); ok && i.Status != models.IncidentRejected {
			p.loading = true
			return p, changeIncidentStatus(client, i.ID, models.IncidentRejected)
		}
	case "p":
		if i, ok := p.ctrl.Focused(); ok && i.Status != models.IncidentPending {
			p.loading = true
			return p, changeIncidentStatus(client, i.ID, models.IncidentPending)
		}
	}
	return p, nil
}

func (p incidentsPage) view(width int) string {
	visible := p.visible()

	var rows []string
	focusedID := p.ctrl.FocusedID()
	for _, i := range visible {
		reporter := ""
		if i.Anonymous {
			reporter = " (anonymous)"
		}
		line := fmt.Sprintf("%-30s %-10s %s%s", truncate(i.Tag, 30), i.Status, i.ReportedAt.Format("Jan 02 15:04"), reporter)
		if i.ID == focusedID {
			rows = append(rows, focusedRowStyle.Render("> "+line))
		} else {
			rows = append(rows, "  "+incidentStatusStyle(i.Status).Render(line))
		}
	}
	if len(rows) == 0 {
		rows = append(rows, mutedStyle.Render("No incidents match."))
	}

	header := fmt.Sprintf("Incident Reports (%d/%d) • status: %s", len(visible), p.ctrl.Len(), incidentFilters[p.filter])
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
	help := helpStyle.Render("/: Search • F: Filter status • S: Resolve • X: Reject • P: Reopen • R: Reload")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		help,
	)
}

func (p incidentsPage) viewDetail() string {
	i, ok := p.ctrl.Focused()
	if !ok {
		return mutedStyle.Render("No incident selected")
	}

	zoneLine := "No zone linked"
	if i.ZoneID != "" {
		if name, ok := p.zoneNames[i.ZoneID]; ok {
			zoneLine = name
		} else {
			zoneLine = i.ZoneID
		}
	}

	lines := []string{
		titleStyle.Render(i.Tag),
		"",
		labelStyle.Render("Status:    ") + incidentStatusStyle(i.Status).Render(string(i.Status)),
		labelStyle.Render("Reported:  ") + valueStyle.Render(i.ReportedAt.Format("2006-01-02 15:04")),
		labelStyle.Render("Location:  ") + valueStyle.Render(fmt.Sprintf("%.4f, %.4f", i.Latitude, i.Longitude)),
		labelStyle.Render("Zone:      ") + valueStyle.Render(zoneLine),
	}
	if i.EvidenceURL != "" {
		lines = append(lines, labelStyle.Render("Evidence:  ")+valueStyle.Render(i.EvidenceURL))
	}
	if i.Description != "" {
		lines = append(lines, "", valueStyle.Render(i.Description))
	}
	return strings.Join(lines, "\n")
}

func incidentStatusStyle(s models.IncidentStatus) lipgloss.Style {
	switch s {
	case models.IncidentResolved:
		return severityLowStyle
	case models.IncidentRejected:
		return mutedStyle
	default:
		return severityMediumStyle
	}
}
