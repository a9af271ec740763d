// Package ui is the bubbletea shell of the campus safety admin
// console: a login screen plus six tabbed collection pages over one
// shared API client, session store and presence channel.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/api"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/cache"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/presence"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/session"
)

// Page identifies the active screen
type Page int

const (
	PageLogin Page = iota
	PageDashboard
	PageZones
	PageIncidents
	PageNotifications
	PageUsers
	PageSOS
)

var pageTitles = map[Page]string{
	PageDashboard:     "Dashboard",
	PageZones:         "Zones",
	PageIncidents:     "Incidents",
	PageNotifications: "Notifications",
	PageUsers:         "Users",
	PageSOS:           "SOS",
}

var pageOrder = []Page{PageDashboard, PageZones, PageIncidents, PageNotifications, PageUsers, PageSOS}

// Model is the application root
type Model struct {
	client    *api.Client
	sessions  *session.Store
	presence  *presence.Client
	snapshots *cache.Store
	log       *logrus.Logger

	page   Page
	width  int
	height int
	banner banner

	login         loginPage
	dashboard     dashboardPage
	zones         zonesPage
	incidents     incidentsPage
	notifications notificationsPage
	users         usersPage
	sos           sosPage
}

// NewModel creates the application model. A persisted session skips
// the login screen.
func NewModel(client *api.Client, sessions *session.Store, presenceClient *presence.Client, snapshots *cache.Store, log *logrus.Logger) Model {
	m := Model{
		client:        client,
		sessions:      sessions,
		presence:      presenceClient,
		snapshots:     snapshots,
		log:           log,
		page:          PageLogin,
		login:         newLoginPage(),
		zones:         newZonesPage(),
		incidents:     newIncidentsPage(),
		notifications: newNotificationsPage(),
		users:         newUsersPage(),
		sos:           newSOSPage(),
	}
	if sessions.LoggedIn() {
		m.page = PageDashboard
	}
	return m
}

// Init starts the initial loads when a session already exists
func (m Model) Init() tea.Cmd {
	if !m.sessions.LoggedIn() {
		return nil
	}
	return tea.Batch(m.loadAll()...)
}

// loadAll issues every page's load plus the profile read
func (m Model) loadAll() []tea.Cmd {
	return []tea.Cmd{
		loadDashboard(m.client),
		loadZones(m.client, m.snapshots),
		loadIncidents(m.client, m.snapshots),
		loadFeed(m.client, m.snapshots),
		loadUsers(m.client, m.snapshots),
		loadSOS(m.client, m.snapshots),
		loadProfile(m.client),
	}
}

// typing reports whether a text field currently owns the keyboard, in
// which case global shortcuts stay out of the way.
func (m Model) typing() bool {
	switch m.page {
	case PageLogin:
		return true
	case PageZones:
		return m.zones.searching || m.zones.showForm
	case PageIncidents:
		return m.incidents.searching
	case PageNotifications:
		return m.notifications.searching || m.notifications.showForm
	case PageUsers:
		return m.users.searching
	}
	return false
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case bannerExpiredMsg:
		m.banner.expire(msg)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m.updateData(msg)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.presence.Close()
		return m, tea.Quit
	}

	if !m.typing() {
		switch msg.String() {
		case "q":
			m.presence.Close()
			return m, tea.Quit
		case "1":
			m.page = PageDashboard
			return m, nil
		case "2":
			m.page = PageZones
			return m, nil
		case "3":
			m.page = PageIncidents
			return m, nil
		case "4":
			m.page = PageNotifications
			return m, nil
		case "5":
			m.page = PageUsers
			return m, nil
		case "6":
			m.page = PageSOS
			return m, nil
		case "tab":
			m.page = nextPage(m.page)
			return m, nil
		case "shift+tab":
			m.page = prevPage(m.page)
			return m, nil
		case "r":
			return m, m.reloadCurrent()
		}
	}

	var cmd tea.Cmd
	switch m.page {
	case PageLogin:
		m.login, cmd = m.login.update(msg, m.client)
	case PageZones:
		m.zones, cmd = m.zones.update(msg, m.client)
	case PageIncidents:
		m.incidents, cmd = m.incidents.update(msg, m.client)
	case PageNotifications:
		m.notifications, cmd = m.notifications.update(msg, m.client)
	case PageUsers:
		m.users, cmd = m.users.update(msg, m.client)
	case PageSOS:
		m.sos, cmd = m.sos.update(msg)
	}
	return m, cmd
}

func nextPage(p Page) Page {
	for i, page := range pageOrder {
		if page == p {
			return pageOrder[(i+1)%len(pageOrder)]
		}
	}
	return pageOrder[0]
}

func prevPage(p Page) Page {
	for i, page := range pageOrder {
		if page == p {
			return pageOrder[(i+len(pageOrder)-1)%len(pageOrder)]
		}
	}
	return pageOrder[0]
}

func (m Model) reloadCurrent() tea.Cmd {
	switch m.page {
	case PageDashboard:
		return loadDashboard(m.client)
	case PageZones:
		return loadZones(m.client, m.snapshots)
	case PageIncidents:
		return loadIncidents(m.client, m.snapshots)
	case PageNotifications:
		return loadFeed(m.client, m.snapshots)
	case PageUsers:
		return loadUsers(m.client, m.snapshots)
	case PageSOS:
		return loadSOS(m.client, m.snapshots)
	}
	return nil
}

// fail surfaces a request failure. Authorization failures are global:
// the session is already cleared by the API client, so the shell
// drops to the login screen within the same interaction.
func (m *Model) fail(err error) tea.Cmd {
	if api.IsUnauthorized(err) {
		m.presence.Close()
		m.page = PageLogin
		m.login = newLoginPage()
		return m.banner.show(bannerError, "Session expired, please sign in again")
	}
	m.log.WithError(err).Warn("request failed")
	return m.banner.show(bannerError, err.Error())
}

func (m Model) updateData(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.login.loading = false
		if msg.err != nil {
			m.login.loginErr = msg.err.Error()
			return m, nil
		}
		m.page = PageDashboard
		return m, tea.Batch(m.loadAll()...)

	case profileLoadedMsg:
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		// Presence announces the identity we just confirmed.
		return m, connectPresence(m.presence)

	case presenceConnectedMsg:
		if msg.err != nil {
			// Presence is best effort; the console works without it.
			m.log.WithError(msg.err).Warn("presence unavailable")
		}
		return m, nil

	case dashboardLoadedMsg:
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.dashboard.zones = msg.zones
		m.dashboard.incidents = msg.incidents
		m.dashboard.sos = msg.sos
		m.dashboard.users = msg.users
		m.dashboard.loaded = true
		return m, nil

	case zonesLoadedMsg:
		return m.applyZonesLoaded(msg)

	case zoneCreatedMsg:
		m.zones.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.zones.ctrl.ApplyCreate(*msg.zone, true)
		return m, m.banner.show(bannerInfo, "Zone created")

	case zoneSavedMsg:
		m.zones.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.zones.ctrl.ApplyUpdate(*msg.zone)
		return m, m.banner.show(bannerInfo, "Zone updated")

	case zoneDeletedMsg:
		m.zones.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.zones.ctrl.ApplyRemove(msg.id)
		// Incidents that pointed at the zone lose the link but stay.
		m.incidents.clearZoneRefs(msg.id)
		return m, m.banner.show(bannerInfo, "Zone deleted")

	case incidentsLoadedMsg:
		m.incidents.loading = false
		if msg.err != nil && msg.incidents == nil {
			return m, m.fail(msg.err)
		}
		m.incidents.ctrl.SetLoaded(msg.incidents)
		m.incidents.stale = msg.stale
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		return m, nil

	case incidentStatusChangedMsg:
		m.incidents.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.incidents.ctrl.ApplyUpdate(*msg.incident)
		return m, m.banner.show(bannerInfo, "Incident status updated")

	case feedLoadedMsg:
		m.notifications.loading = false
		if msg.err != nil && msg.feed == nil {
			return m, m.fail(msg.err)
		}
		m.notifications.ctrl.SetLoaded(msg.feed)
		m.notifications.stale = msg.stale
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		return m, nil

	case notificationCreatedMsg:
		m.notifications.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.notifications.ctrl.ApplyCreate(*msg.notification, true)
		return m, m.banner.show(bannerInfo, "Notification sent")

	case notificationDeletedMsg:
		m.notifications.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.notifications.ctrl.ApplyRemove(msg.id)
		return m, m.banner.show(bannerInfo, "Notification deleted")

	case usersLoadedMsg:
		m.users.loading = false
		if msg.err != nil && msg.users == nil {
			return m, m.fail(msg.err)
		}
		m.users.ctrl.SetLoaded(msg.users)
		m.users.stale = msg.stale
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		return m, nil

	case userDeletedMsg:
		m.users.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.users.ctrl.ApplyRemove(msg.id)
		return m, m.banner.show(bannerInfo, "User removed")

	case sosLoadedMsg:
		m.sos.loading = false
		if msg.err != nil && msg.alerts == nil {
			return m, m.fail(msg.err)
		}
		m.sos.ctrl.SetLoaded(msg.alerts)
		m.sos.stale = msg.stale
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		return m, nil
	}

	return m, nil
}

// applyZonesLoaded updates the zones page and the incident page's
// zone-name index together.
func (m Model) applyZonesLoaded(msg zonesLoadedMsg) (tea.Model, tea.Cmd) {
	m.zones.loading = false
	if msg.err != nil && msg.zones == nil {
		// Failed load leaves prior state untouched.
		return m, m.fail(msg.err)
	}
	m.zones.ctrl.SetLoaded(msg.zones)
	m.zones.stale = msg.stale
	m.incidents.setZoneNames(msg.zones)
	if msg.err != nil {
		// Snapshot served; still surface why the API read failed.
		return m, m.fail(msg.err)
	}
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.page == PageLogin {
		content := m.login.view(m.width, m.height)
		if m.banner.kind != bannerNone {
			return lipgloss.JoinVertical(lipgloss.Left, m.banner.view(), content)
		}
		return content
	}

	var sections []string
	sections = append(sections, m.viewTabs())
	if m.banner.kind != bannerNone {
		sections = append(sections, m.banner.view())
	}

	switch m.page {
	case PageDashboard:
		sections = append(sections, m.dashboard.view(m.width))
	case PageZones:
		sections = append(sections, m.zones.view(m.width))
	case PageIncidents:
		sections = append(sections, m.incidents.view(m.width))
	case PageNotifications:
		sections = append(sections, m.notifications.view(m.width))
	case PageUsers:
		sections = append(sections, m.users.view(m.width))
	case PageSOS:
		sections = append(sections, m.sos.view(m.width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for _, page := range pageOrder {
		label := pageTitles[page]
		if page == m.page {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	who := ""
	if u := m.sessions.User(); u != nil {
		who = mutedStyle.Render("  " + u.FullName + " • " + m.presence.State().String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, who)...)
}
