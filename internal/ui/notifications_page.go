package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/api"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/collection"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

var (
	notificationTypes      = []models.NotificationType{models.TypeAlert, models.TypeAnnouncement}
	notificationPriorities = []models.NotificationPriority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}
	audiences              = []models.Audience{models.AudienceAll, models.AudienceStudents, models.AudienceStaff, models.AudienceFaculty}
	typeFilters            = []string{"all", "alert", "announcement"}
)

// composeForm collects a notification draft
type composeForm struct {
	title     textinput.Model
	content   textarea.Model
	schedule  textinput.Model
	typ       int
	priority  int
	audience  int
	scheduled bool // delivery mode: false = now, true = schedule
	focusIdx  int  // 0 title, 1 content, 2 schedule
	formErr   string
}

func newComposeForm() composeForm {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Width = 48
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Message content..."
	content.SetWidth(48)
	content.SetHeight(4)

	schedule := textinput.New()
	schedule.Placeholder = "2006-01-02 15:04"
	schedule.CharLimit = 16
	schedule.Width = 20

	return composeForm{title: title, content: content, schedule: schedule}
}

// draft builds the validated notification draft
func (f *composeForm) draft(now time.Time) (models.NotificationDraft, error) {
	d := models.NotificationDraft{
		Title:    strings.TrimSpace(f.title.Value()),
		Content:  strings.TrimSpace(f.content.Value()),
		Type:     notificationTypes[f.typ],
		Priority: notificationPriorities[f.priority],
		Audience: audiences[f.audience],
		Mode:     models.DeliverNow,
	}
	if f.scheduled {
		d.Mode = models.DeliverSchedule
		raw := strings.TrimSpace(f.schedule.Value())
		if raw != "" {
			at, err := time.ParseInLocation("2006-01-02 15:04", raw, time.Local)
			if err != nil {
				return d, fmt.Errorf("scheduled time must look like 2006-01-02 15:04")
			}
			d.ScheduledAt = &at
		}
	}
	if err := d.Validate(now); err != nil {
		return d, err
	}
	return d, nil
}

func (f *composeForm) submittable() bool {
	return strings.TrimSpace(f.title.Value()) != "" && strings.TrimSpace(f.content.Value()) != ""
}

// notificationsPage owns the merged alert + announcement feed
type notificationsPage struct {
	ctrl      *collection.Controller[models.Notification]
	search    textinput.Model
	searching bool
	filter    int
	showForm  bool
	form      composeForm
	stale     bool
	loading   bool
}

func newNotificationsPage() notificationsPage {
	search := textinput.New()
	search.Placeholder = "Search notifications..."
	search.CharLimit = 100
	search.Width = 30

	return notificationsPage{
		ctrl: collection.New(collection.Config[models.Notification]{
			ID:         func(n models.Notification) string { return n.ID },
			SearchText: func(n models.Notification) []string { return []string{n.Title, n.Content} },
			Less:       models.FeedLess,
			Fallback:   collection.FallbackFirst,
		}),
		search: search,
	}
}

func (p *notificationsPage) visible() []models.Notification {
	filter := typeFilters[p.filter]
	var match func(models.Notification) bool
	if filter != "all" {
		match = func(n models.Notification) bool { return string(n.Type) == filter }
	}
	return p.ctrl.Filter(p.search.Value(), match)
}

func (p notificationsPage) update(msg tea.KeyMsg, client *api.Client) (notificationsPage, tea.Cmd) {
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
		moveFocus(p.ctrl, p.visible(), -1, func(n models.Notification) string { return n.ID })
	case "down", "j":
		moveFocus(p.ctrl, p.visible(), 1, func(n models.Notification) string { return n.ID })
	case "f":
		p.filter = (p.filter + 1) % len(typeFilters)
	case "n":
		p.showForm = true
		p.form = newComposeForm()
	case "d":
		if n, ok := p.ctrl.Focused(); ok {
			p.loading = true
			return p, deleteNotification(client, n.ID)
		}
	}
	return p, nil
}

func (p notificationsPage) updateForm(msg tea.KeyMsg, client *api.Client) (notificationsPage, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.showForm = false
		return p, nil
	case "tab":
		fieldCount := 2
		if p.form.scheduled {
			fieldCount = 3
		}
		p.form.focusIdx = (p.form.focusIdx + 1) % fieldCount
		p.syncComposeFocus()
		return p, textinput.Blink
	case "ctrl+y":
		p.form.typ = (p.form.typ + 1) % len(notificationTypes)
		return p, nil
	case "ctrl+p":
		p.form.priority = (p.form.priority + 1) % len(notificationPriorities)
		return p, nil
	case "ctrl+a":
		p.form.audience = (p.form.audience + 1) % len(audiences)
		return p, nil
	case "ctrl+d":
		p.form.scheduled = !p.form.scheduled
		if !p.form.scheduled && p.form.focusIdx == 2 {
			p.form.focusIdx = 0
			p.syncComposeFocus()
		}
		return p, nil
	case "ctrl+s":
		if !p.form.submittable() {
			return p, nil
		}
		draft, err := p.form.draft(time.Now())
		if err != nil {
			// Validation failures never reach the network.
			p.form.formErr = err.Error()
			return p, nil
		}
		p.showForm = false
		p.loading = true
		return p, createNotification(client, api.NotificationPayload{
			Title:       draft.Title,
			Content:     draft.Content,
			Type:        draft.Type,
			Priority:    draft.Priority,
			Audience:    draft.Audience,
			ScheduledAt: draft.ScheduledAt,
		})
	}

	var cmd tea.Cmd
	switch p.form.focusIdx {
	case 0:
		p.form.title, cmd = p.form.title.Update(msg)
	case 1:
		p.form.content, cmd = p.form.content.Update(msg)
	case 2:
		p.form.schedule, cmd = p.form.schedule.Update(msg)
	}
	return p, cmd
}

func (p *notificationsPage) syncComposeFocus() {
	p.form.title.Blur()
	p.form.content.Blur()
	p.form.schedule.Blur()
	switch p.form.focusIdx {
	case 0:
		p.form.title.Focus()
	case 1:
		p.form.content.Focus()
	case 2:
		p.form.schedule.Focus()
	}
}

func (p notificationsPage) view(width int) string {
	if p.showForm {
		return p.viewForm()
	}

	visible := p.visible()

	var rows []string
	focusedID := p.ctrl.FocusedID()
	for _, n := range visible {
		marker := "⚠"
		if n.Type == models.TypeAnnouncement {
			marker = "📢"
			if n.ScheduledAt != nil {
				marker = "🕑"
			}
		}
		line := fmt.Sprintf("%s %-32s %-8s %s", marker, truncate(n.Title, 32), n.Priority, n.CreatedAt.Format("Jan 02 15:04"))
		if n.ID == focusedID {
			rows = append(rows, focusedRowStyle.Render("> "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, mutedStyle.Render("No notifications match."))
	}

	header := fmt.Sprintf("Notifications (%d/%d) • type: %s", len(visible), p.ctrl.Len(), typeFilters[p.filter])
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
	help := helpStyle.Render("/: Search • F: Filter type • N: Compose • D: Delete • R: Reload")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		help,
	)
}

func (p notificationsPage) viewDetail() string {
	n, ok := p.ctrl.Focused()
	if !ok {
		return mutedStyle.Render("No notification selected")
	}

	lines := []string{
		titleStyle.Render(n.Title),
		"",
		labelStyle.Render("Type:     ") + valueStyle.Render(string(n.Type)),
		labelStyle.Render("Priority: ") + severityStyle(string(n.Priority)).Render(string(n.Priority)),
		labelStyle.Render("Audience: ") + valueStyle.Render(string(n.Audience)),
		labelStyle.Render("Created:  ") + valueStyle.Render(n.CreatedAt.Format("2006-01-02 15:04")),
	}
	if n.ScheduledAt != nil {
		lines = append(lines, labelStyle.Render("Sends at: ")+valueStyle.Render(n.ScheduledAt.Format("2006-01-02 15:04")))
	}
	lines = append(lines, "", valueStyle.Render(n.Content))
	return strings.Join(lines, "\n")
}

func (p notificationsPage) viewForm() string {
	mode := "send now"
	if p.form.scheduled {
		mode = "schedule"
	}

	lines := []string{
		titleStyle.Render("Compose Notification"),
		"",
		p.form.title.View(),
		p.form.content.View(),
		"",
		labelStyle.Render("Type:     ") + valueStyle.Render(string(notificationTypes[p.form.typ])) + mutedStyle.Render("  (ctrl+y cycles)"),
		labelStyle.Render("Priority: ") + valueStyle.Render(string(notificationPriorities[p.form.priority])) + mutedStyle.Render("  (ctrl+p cycles)"),
		labelStyle.Render("Audience: ") + valueStyle.Render(string(audiences[p.form.audience])) + mutedStyle.Render("  (ctrl+a cycles)"),
		labelStyle.Render("Delivery: ") + valueStyle.Render(mode) + mutedStyle.Render("  (ctrl+d toggles)"),
	}
	if p.form.scheduled {
		lines = append(lines, labelStyle.Render("At:       ")+p.form.schedule.View())
	}
	if p.form.formErr != "" {
		lines = append(lines, "", bannerErrorStyle.Render(p.form.formErr))
	}
	if !p.form.submittable() {
		lines = append(lines, "", mutedStyle.Render("Title and content are required"))
	}
	lines = append(lines, "", helpStyle.Render("Tab: Next field • Ctrl+S: Send • Esc: Cancel"))

	return paneStyle.Render(strings.Join(lines, "\n"))
}
