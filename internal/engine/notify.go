package engine

type NotificationKind string

const (
	NotifyTaskAdded       NotificationKind = "task_added"
	NotifyTaskUpdated     NotificationKind = "task_updated"
	NotifyTaskDeleted     NotificationKind = "task_deleted"
	NotifyTaskCompleted   NotificationKind = "task_completed"
	NotifyTaskUncompleted NotificationKind = "task_uncompleted"
	NotifyTaskRegenerated NotificationKind = "task_regenerated"
)

// Notification describes an engine event for the presentation layer. The
// engine never decides how an event is surfaced.
type Notification struct {
	Kind        NotificationKind
	Title       string
	Description string
}

type Notifier interface {
	Notify(Notification)
}

type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}
