package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/studyflow/matrixd/internal/engine"
	"github.com/studyflow/matrixd/internal/model"
	"github.com/studyflow/matrixd/internal/scheduler"
	"github.com/studyflow/matrixd/internal/storage"
	"github.com/studyflow/matrixd/internal/views"
)

type View string

const (
	ViewMatrix View = "Matrix"
	ViewReview View = "Review"
	ViewFocus  View = "Focus"
	ViewStats  View = "Stats"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Matrix string
	Review string
	Focus  string
	Stats  string
	Help   string
	Quit   string
}

type Model struct {
	CurrentView    View
	Tasks          []model.Task
	SelectedTaskID string
	Engine         *engine.Engine
	Repo           storage.Repository
	Scheduler      *scheduler.Engine
	DueLog         []scheduler.DueEvent
	Matrix         MatrixState
	Review         ReviewState
	Focus          FocusState
	Stats          StatsState
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	SnapshotPath   string
	// Bubble components used for rich TUI controls
	quickAddInput textinput.Model
	commandInput  textinput.Model
	focusProgress progress.Model
	saveSpinner   spinner.Model
	helpModel     help.Model
	helpViewport  viewport.Model
	spinnerActive bool
	// Recurrence editor
	recurrenceEditor RecurrenceEditorState
}

type MatrixState struct {
	Quadrant model.Quadrant
	Cursor   int
	QuickAdd bool
}

type ReviewMode string

const (
	ReviewModeList     ReviewMode = "list"
	ReviewModePractice ReviewMode = "practice"
)

type ReviewState struct {
	Mode      ReviewMode
	Cursor    int
	CardIndex int
	Revealed  bool
}

type FocusPhase string

const (
	FocusPhaseWork  FocusPhase = "work"
	FocusPhaseBreak FocusPhase = "break"
)

type FocusState struct {
	TaskID            string
	TaskTitle         string
	WorkDurationSec   int
	BreakDurationSec  int
	TargetSessions    int
	RemainingSec      int
	Running           bool
	Phase             FocusPhase
	CompletedSessions int
}

type StatsState struct {
	Period engine.Period
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type RecurrenceEditorState struct {
	Active     bool
	Interval   model.RecurrenceInterval
	CustomText string
	Preview    []string
	Err        string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type QuickAddTaskMsg struct {
	Title    string
	Quadrant model.Quadrant
	Subject  string
}

type FocusTickMsg struct{}

type DueEventMsg struct {
	Event scheduler.DueEvent
}

func NewModel() Model {
	m := Model{
		CurrentView: ViewMatrix,
		Engine:      engine.New(),
		Matrix: MatrixState{
			Quadrant: model.QuadrantUrgentImportant,
		},
		Review: ReviewState{Mode: ReviewModeList},
		Focus: FocusState{
			WorkDurationSec:  25 * 60,
			BreakDurationSec: 5 * 60,
			TargetSessions:   4,
			RemainingSec:     25 * 60,
			Phase:            FocusPhaseWork,
		},
		Stats:          StatsState{Period: engine.PeriodWeekly},
		DesktopEnabled: false,
		notifier:       NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Matrix: "1",
			Review: "2",
			Focus:  "3",
			Stats:  "4",
			Help:   "?",
			Quit:   "q",
		},
		recurrenceEditor: RecurrenceEditorState{
			Interval:   model.RecurrenceWeekly,
			CustomText: "7",
		},
	}
	m.initBubbleComponents()
	return m
}

func NewModelWithTasks(tasks []model.Task) Model {
	m := NewModel()
	m.Tasks = tasks
	m.runRecurrenceSweep()
	return m
}

func NewModelWithConfig(tasks []model.Task, repo storage.Repository, sched *scheduler.Engine, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModel()
	m.Tasks = tasks
	m.Repo = repo
	m.Scheduler = sched
	m.DesktopEnabled = cfg.DesktopNotifications
	m.SnapshotPath = cfg.SnapshotPath
	if notifier != nil {
		m.notifier = notifier
	}
	if cfg.FocusWorkMinutes > 0 {
		m.Focus.WorkDurationSec = cfg.FocusWorkMinutes * 60
	}
	if cfg.FocusBreakMinutes > 0 {
		m.Focus.BreakDurationSec = cfg.FocusBreakMinutes * 60
	}
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
	m.runRecurrenceSweep()
	if m.Scheduler != nil {
		_ = m.Scheduler.Reset(m.Tasks, m.Engine.Now())
	}
	return m
}

func (m *Model) initBubbleComponents() {
	quickAdd := textinput.New()
	quickAdd.Placeholder = "task title"
	quickAdd.CharLimit = 120
	m.quickAddInput = quickAdd

	command := textinput.New()
	command.Placeholder = "add q1 title subject:math"
	command.CharLimit = 200
	m.commandInput = command

	m.focusProgress = progress.New(progress.WithDefaultGradient())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m.saveSpinner = sp

	m.helpModel = help.New()
	m.helpViewport = viewport.New(56, 12)
	m.helpViewport.SetContent(views.RenderMarkdown(helpMarkdown))
}
