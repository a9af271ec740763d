package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/api"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/collection"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

// zone form field order
const (
	zoneFieldName = iota
	zoneFieldDescription
	zoneFieldRadius
	zoneFieldLatitude
	zoneFieldLongitude
	zoneFieldCount
)

var zoneSeverities = []models.ZoneSeverity{models.SeverityLow, models.SeverityMedium, models.SeverityHigh}
var zoneStatuses = []models.ZoneStatus{models.ZoneActive, models.ZoneInactive, models.ZoneUnderReview}
var severityFilters = []string{"all", "low", "medium", "high"}

// zoneForm collects zone input for create and edit
type zoneForm struct {
	inputs    []textinput.Model
	severity  int
	status    int
	focusIdx  int
	editingID string // empty means create
	formErr   string
}

func newZoneForm() zoneForm {
	labels := []string{"Name", "Description", "Radius (m)", "Latitude", "Longitude"}
	inputs := make([]textinput.Model, zoneFieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 200
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[zoneFieldName].Focus()
	return zoneForm{inputs: inputs}
}

// payload builds the submission; zone validation runs on the caller
func (f *zoneForm) payload() (api.ZonePayload, error) {
	radius, err := strconv.ParseFloat(strings.TrimSpace(f.inputs[zoneFieldRadius].Value()), 64)
	if err != nil {
		return api.ZonePayload{}, fmt.Errorf("radius must be a number")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(f.inputs[zoneFieldLatitude].Value()), 64)
	if err != nil {
		return api.ZonePayload{}, fmt.Errorf("latitude must be a number")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(f.inputs[zoneFieldLongitude].Value()), 64)
	if err != nil {
		return api.ZonePayload{}, fmt.Errorf("longitude must be a number")
	}

	payload := api.ZonePayload{
		Name:        strings.TrimSpace(f.inputs[zoneFieldName].Value()),
		Severity:    zoneSeverities[f.severity],
		Status:      zoneStatuses[f.status],
		Description: strings.TrimSpace(f.inputs[zoneFieldDescription].Value()),
		Radius:      radius,
		Latitude:    lat,
		Longitude:   lon,
	}

	probe := models.Zone{
		Name:      payload.Name,
		Severity:  payload.Severity,
		Status:    payload.Status,
		Radius:    payload.Radius,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
	}
	if err := probe.Validate(); err != nil {
		return api.ZonePayload{}, err
	}
	return payload, nil
}

// submittable gates the submit key while required fields are blank
func (f *zoneForm) submittable() bool {
	return strings.TrimSpace(f.inputs[zoneFieldName].Value()) != "" &&
		strings.TrimSpace(f.inputs[zoneFieldRadius].Value()) != "" &&
		strings.TrimSpace(f.inputs[zoneFieldLatitude].Value()) != "" &&
		strings.TrimSpace(f.inputs[zoneFieldLongitude].Value()) != ""
}

// zonesPage owns the danger zone collection view
type zonesPage struct {
	ctrl     *collection.Controller[models.Zone]
	search   textinput.Model
	searching bool
	filter   int // index into severityFilters
	showForm bool
	form     zoneForm
	stale    bool
	loading  bool
}

func newZonesPage() zonesPage {
	search := textinput.New()
	search.Placeholder = "Search zones..."
	search.CharLimit = 100
	search.Width = 30

	return zonesPage{
		ctrl: collection.New(collection.Config[models.Zone]{
			ID:         func(z models.Zone) string { return z.ID },
			SearchText: func(z models.Zone) []string { return []string{z.Name, z.Description} },
			Fallback:   collection.FallbackFirst,
		}),
		search: search,
	}
}

// visible derives the filtered view from search text and the severity
// filter.
func (p *zonesPage) visible() []models.Zone {
	filter := severityFilters[p.filter]
	var match func(models.Zone) bool
	if filter != "all" {
		match = func(z models.Zone) bool { return string(z.Severity) == filter }
	}
	return p.ctrl.Filter(p.search.Value(), match)
}

func (p zonesPage) update(msg tea.KeyMsg, client *api.Client) (zonesPage, tea.Cmd) {
	if p.showForm {
		return p.updateForm(msg, client)
	}

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
		p.moveFocus(-1)
	case "down", "j":
		p.moveFocus(1)
	case "f":
		p.filter = (p.filter + 1) % len(severityFilters)
	case "n":
		p.showForm = true
		p.form = newZoneForm()
	case "e":
		if z, ok := p.ctrl.Focused(); ok {
			p.showForm = true
			p.form = newZoneForm()
			p.form.editingID = z.ID
			p.form.inputs[zoneFieldName].SetValue(z.Name)
			p.form.inputs[zoneFieldDescription].SetValue(z.Description)
			p.form.inputs[zoneFieldRadius].SetValue(strconv.FormatFloat(z.Radius, 'f', -1, 64))
			p.form.inputs[zoneFieldLatitude].SetValue(strconv.FormatFloat(z.Latitude, 'f', -1, 64))
			p.form.inputs[zoneFieldLongitude].SetValue(strconv.FormatFloat(z.Longitude, 'f', -1, 64))
			for i, s := range zoneSeverities {
				if s == z.Severity {
					p.form.severity = i
				}
			}
			for i, s := range zoneStatuses {
				if s == z.Status {
					p.form.status = i
				}
			}
		}
	case "d":
		if z, ok := p.ctrl.Focused(); ok {
			p.loading = true
			return p, deleteZone(client, z.ID)
		}
	}
	return p, nil
}

func (p zonesPage) updateForm(msg tea.KeyMsg, client *api.Client) (zonesPage, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.showForm = false
		return p, nil
	case "tab", "down":
		p.form.focusIdx = (p.form.focusIdx + 1) % zoneFieldCount
		p.syncFormFocus()
		return p, textinput.Blink
	case "shift+tab", "up":
		p.form.focusIdx = (p.form.focusIdx + zoneFieldCount - 1) % zoneFieldCount
		p.syncFormFocus()
		return p, textinput.Blink
	case "ctrl+v":
		p.form.severity = (p.form.severity + 1) % len(zoneSeverities)
		return p, nil
	case "ctrl+t":
		p.form.status = (p.form.status + 1) % len(zoneStatuses)
		return p, nil
	case "enter":
		// Submit stays disabled while required fields are blank.
		if !p.form.submittable() {
			return p, nil
		}
		payload, err := p.form.payload()
		if err != nil {
			p.form.formErr = err.Error()
			return p, nil
		}
		p.showForm = false
		p.loading = true
		if p.form.editingID != "" {
			return p, updateZone(client, p.form.editingID, payload)
		}
		return p, createZone(client, payload)
	}

	var cmd tea.Cmd
	p.form.inputs[p.form.focusIdx], cmd = p.form.inputs[p.form.focusIdx].Update(msg)
	return p, cmd
}

func (p *zonesPage) syncFormFocus() {
	for i := range p.form.inputs {
		if i == p.form.focusIdx {
			p.form.inputs[i].Focus()
		} else {
			p.form.inputs[i].Blur()
		}
	}
}

// moveFocus walks focus through the filtered view
func (p *zonesPage) moveFocus(delta int) {
	moveFocus(p.ctrl, p.visible(), delta, func(z models.Zone) string { return z.ID })
}

func (p zonesPage) view(width int) string {
	if p.showForm {
		return p.viewForm()
	}

	visible := p.visible()

	var rows []string
	focusedID := p.ctrl.FocusedID()
	for _, z := range visible {
		line := fmt.Sprintf("%-28s %-8s %-12s %3d incidents", truncate(z.Name, 28), z.Severity, z.Status, z.IncidentCount)
		if z.ID == focusedID {
			rows = append(rows, focusedRowStyle.Render("> "+line))
		} else {
			rows = append(rows, "  "+severityStyle(string(z.Severity)).Render(line))
		}
	}
	if len(rows) == 0 {
		rows = append(rows, mutedStyle.Render("No zones match."))
	}

	header := fmt.Sprintf("Danger Zones (%d/%d) • severity: %s", len(visible), p.ctrl.Len(), severityFilters[p.filter])
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
	help := helpStyle.Render("/: Search • F: Filter severity • N: New • E: Edit • D: Delete • R: Reload")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		help,
	)
}

func (p zonesPage) viewDetail() string {
	z, ok := p.ctrl.Focused()
	if !ok {
		return mutedStyle.Render("No zone selected")
	}

	lines := []string{
		titleStyle.Render(z.Name),
		"",
		labelStyle.Render("Severity:  ") + severityStyle(string(z.Severity)).Render(string(z.Severity)),
		labelStyle.Render("Status:    ") + valueStyle.Render(string(z.Status)),
		labelStyle.Render("Radius:    ") + valueStyle.Render(fmt.Sprintf("%.0f m", z.Radius)),
		labelStyle.Render("Location:  ") + valueStyle.Render(fmt.Sprintf("%.4f, %.4f", z.Latitude, z.Longitude)),
		labelStyle.Render("Incidents: ") + valueStyle.Render(strconv.Itoa(z.IncidentCount)),
	}
	if z.Description != "" {
		lines = append(lines, "", valueStyle.Render(z.Description))
	}
	return strings.Join(lines, "\n")
}

func (p zonesPage) viewForm() string {
	title := "New Danger Zone"
	if p.form.editingID != "" {
		title = "Edit Danger Zone"
	}

	lines := []string{titleStyle.Render(title), ""}
	for i := range p.form.inputs {
		lines = append(lines, p.form.inputs[i].View())
	}
	lines = append(lines,
		"",
		labelStyle.Render("Severity: ")+severityStyle(string(zoneSeverities[p.form.severity])).Render(string(zoneSeverities[p.form.severity]))+mutedStyle.Render("  (ctrl+v cycles)"),
		labelStyle.Render("Status:   ")+valueStyle.Render(string(zoneStatuses[p.form.status]))+mutedStyle.Render("  (ctrl+t cycles)"),
	)
	if p.form.formErr != "" {
		lines = append(lines, "", bannerErrorStyle.Render(p.form.formErr))
	}
	if !p.form.submittable() {
		lines = append(lines, "", mutedStyle.Render("Fill name, radius, latitude and longitude to enable submit"))
	}
	lines = append(lines, "", helpStyle.Render("Tab: Next field • Enter: Save • Esc: Cancel"))

	return paneStyle.Render(strings.Join(lines, "\n"))
}
