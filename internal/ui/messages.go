package ui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/api"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/cache"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/presence"
)

const requestTimeout = 30 * time.Second

// Message types for async operations

// loginResultMsg is sent when the login call completes
type loginResultMsg struct {
	user *models.User
	err  error
}

// profileLoadedMsg is sent when the admin profile has been fetched
type profileLoadedMsg struct {
	user *models.User
	err  error
}

// presenceConnectedMsg is sent when the presence channel settles
type presenceConnectedMsg struct {
	err error
}

// zonesLoadedMsg carries the zone collection; stale marks a snapshot
// served because the API was unreachable.
type zonesLoadedMsg struct {
	zones []models.Zone
	stale bool
	err   error
}

type zoneCreatedMsg struct {
	zone *models.Zone
	err  error
}

type zoneSavedMsg struct {
	zone *models.Zone
	err  error
}

type zoneDeletedMsg struct {
	id  string
	err error
}

type incidentsLoadedMsg struct {
	incidents []models.Incident
	stale     bool
	err       error
}

type incidentStatusChangedMsg struct {
	incident *models.Incident
	err      error
}

// feedLoadedMsg carries the merged alert + announcement feed
type feedLoadedMsg struct {
	feed  []models.Notification
	stale bool
	err   error
}

type notificationCreatedMsg struct {
	notification *models.Notification
	err          error
}

type notificationDeletedMsg struct {
	id  string
	err error
}

type usersLoadedMsg struct {
	users []models.User
	stale bool
	err   error
}

type userDeletedMsg struct {
	id  string
	err error
}

type sosLoadedMsg struct {
	alerts []models.SOSAlert
	stale  bool
	err    error
}

// dashboardLoadedMsg joins the parallel dashboard reads; any single
// failure aborts the join.
type dashboardLoadedMsg struct {
	zones     []models.Zone
	incidents []models.Incident
	sos       []models.SOSAlert
	users     []models.User
	err       error
}

// bannerExpiredMsg dismisses the banner shown with the same sequence
type bannerExpiredMsg struct {
	seq int
}

// loadWithSnapshot fetches a collection, persisting a snapshot on
// success and falling back to the last snapshot on failure. The fetch
// error is preserved so the page can still banner it.
func loadWithSnapshot[T any](fetch func(context.Context) ([]T, error), store *cache.Store, domain string) ([]T, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	items, err := fetch(ctx)
	if err == nil {
		if store != nil {
			// Snapshot persistence is best effort.
			_ = cache.SaveSnapshot(store, domain, items)
		}
		return items, false, nil
	}

	if store != nil {
		if snapshot, _, ok, loadErr := cache.LoadSnapshot[T](store, domain); loadErr == nil && ok {
			return snapshot, true, err
		}
	}
	return nil, false, err
}

// loadZones fetches the danger zone collection
func loadZones(client *api.Client, store *cache.Store) tea.Cmd {
	return func() tea.Msg {
		zones, stale, err := loadWithSnapshot(client.ListZones, store, "zones")
		return zonesLoadedMsg{zones: zones, stale: stale, err: err}
	}
}

func createZone(client *api.Client, payload api.ZonePayload) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		zone, err := client.CreateZone(ctx, payload)
		return zoneCreatedMsg{zone: zone, err: err}
	}
}

func updateZone(client *api.Client, id string, payload api.ZonePayload) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		zone, err := client.UpdateZone(ctx, id, payload)
		return zoneSavedMsg{zone: zone, err: err}
	}
}

func deleteZone(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.DeleteZone(ctx, id)
		return zoneDeletedMsg{id: id, err: err}
	}
}

func loadIncidents(client *api.Client, store *cache.Store) tea.Cmd {
	return func() tea.Msg {
		incidents, stale, err := loadWithSnapshot(client.ListIncidents, store, "incidents")
		return incidentsLoadedMsg{incidents: incidents, stale: stale, err: err}
	}
}

func changeIncidentStatus(client *api.Client, id string, status models.IncidentStatus) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		incident, err := client.UpdateIncidentStatus(ctx, id, status)
		return incidentStatusChangedMsg{incident: incident, err: err}
	}
}

// loadFeed concatenates alerts and announcements into one collection;
// the controller's comparator puts alerts first, newest first.
func loadFeed(client *api.Client, store *cache.Store) tea.Cmd {
	return func() tea.Msg {
		fetch := func(ctx context.Context) ([]models.Notification, error) {
			alerts, err := client.ListAlerts(ctx)
			if err != nil {
				return nil, err
			}
			announcements, err := client.ListAnnouncements(ctx)
			if err != nil {
				return nil, err
			}
			return append(alerts, announcements...), nil
		}
		feed, stale, err := loadWithSnapshot(fetch, store, "notifications")
		return feedLoadedMsg{feed: feed, stale: stale, err: err}
	}
}

func createNotification(client *api.Client, payload api.NotificationPayload) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		notification, err := client.CreateNotification(ctx, payload)
		return notificationCreatedMsg{notification: notification, err: err}
	}
}

func deleteNotification(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.DeleteNotification(ctx, id)
		return notificationDeletedMsg{id: id, err: err}
	}
}

func loadUsers(client *api.Client, store *cache.Store) tea.Cmd {
	return func() tea.Msg {
		users, stale, err := loadWithSnapshot(client.ListUsers, store, "users")
		return usersLoadedMsg{users: users, stale: stale, err: err}
	}
}

func deleteUser(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.DeleteUser(ctx, id)
		return userDeletedMsg{id: id, err: err}
	}
}

func loadSOS(client *api.Client, store *cache.Store) tea.Cmd {
	return func() tea.Msg {
		alerts, stale, err := loadWithSnapshot(client.ListSOSAlerts, store, "sos")
		return sosLoadedMsg{alerts: alerts, stale: stale, err: err}
	}
}

// loadDashboard issues the four reads in parallel and joins them; the
// first error wins and aborts the joined result.
func loadDashboard(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			out dashboardLoadedMsg
		)
		fail := func(err error) {
			mu.Lock()
			if out.err == nil {
				out.err = err
			}
			mu.Unlock()
		}

		wg.Add(4)
		go func() {
			defer wg.Done()
			zones, err := client.ListZones(ctx)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			out.zones = zones
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			incidents, err := client.ListIncidents(ctx)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			out.incidents = incidents
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			sos, err := client.ListSOSAlerts(ctx)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			out.sos = sos
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			users, err := client.ListUsers(ctx)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			out.users = users
			mu.Unlock()
		}()
		wg.Wait()

		if out.err != nil {
			return dashboardLoadedMsg{err: out.err}
		}
		return out
	}
}

func doLogin(client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := client.Login(ctx, email, password)
		return loginResultMsg{user: user, err: err}
	}
}

func loadProfile(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := client.Profile(ctx)
		return profileLoadedMsg{user: user, err: err}
	}
}

func connectPresence(client *presence.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return presenceConnectedMsg{err: client.Connect(ctx)}
	}
}
