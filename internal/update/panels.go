package update

import (
	"strings"

	"github.com/sandeepkv93/focusd/internal/views"
)

const maxNotifications = 40

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Title+": "+n.Body)
}

func (m Model) renderStatsView() string {
	return views.RenderStatsPanel(views.StatsPanelData{
		Title:     m.t("view.stats"),
		TableView: m.statsTable.View(),
	})
}

// notify records an in-app notification. Desktop and bell delivery happen in
// the app's completion hook.
func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now().UTC(),
	})
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
}

func (m *Model) cycleLocale() {
	codes := m.app.Catalogs.Codes()
	next := codes[0]
	for i, code := range codes {
		if code == m.Locale {
			next = codes[(i+1)%len(codes)]
			break
		}
	}
	m.app.Locale.Set(next)
	m.refresh()
	m.Status = StatusBar{Text: m.t("status.locale", m.Locale)}
}
