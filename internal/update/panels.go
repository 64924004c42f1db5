package update

import (
	"strings"
	"time"

	"github.com/studyflow/matrixd/internal/views"
)

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
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) renderRecurrenceEditorIfVisible() string {
	return views.RenderRecurrenceEditor(views.RecurrenceEditorData{
		Active:     m.recurrenceEditor.Active,
		Interval:   string(m.recurrenceEditor.Interval),
		CustomText: m.recurrenceEditor.CustomText,
		ErrorText:  m.recurrenceEditor.Err,
		Preview:    m.recurrenceEditor.Preview,
	})
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
