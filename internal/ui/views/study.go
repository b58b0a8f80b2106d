package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ontrack-app/ontrack/internal/models"
	"github.com/ontrack-app/ontrack/internal/store"
	"github.com/ontrack-app/ontrack/internal/timer"
	"github.com/ontrack-app/ontrack/internal/ui/keys"
	"github.com/ontrack-app/ontrack/internal/ui/styles"
)

const frameInterval = time.Second / 10

// StudyView runs the countdown against the study-session task set. The
// second-resolution countdown is authoritative; a faster frame tick only
// smooths the progress bars between seconds.
type StudyView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	timer *timer.Timer
	track *timer.Track

	sessionBar progress.Model
	lapBar     progress.Model

	studyTasks []models.Task

	width  int
	height int

	cursor    int
	statusMsg string
	finished  bool

	// gen tags outstanding tick/frame callbacks; bumping it on any stop or
	// reconfigure orphans whatever is still in flight, so a new Start can
	// never race a stale callback from the previous run.
	gen       int
	lastFrame time.Time
}

// NewStudyView creates the study page with the configured session length.
func NewStudyView(st *store.Store, sessionMinutes float64) *StudyView {
	tm := timer.New(sessionMinutes)

	sessionBar := progress.New(progress.WithGradient("#10b981", "#34d399"))
	sessionBar.Width = 40
	sessionBar.ShowPercentage = false

	lapBar := progress.New(progress.WithGradient("#00a2ff", "#33b5ff"))
	lapBar.Width = 40
	lapBar.ShowPercentage = false

	return &StudyView{
		store:      st,
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		timer:      tm,
		track:      timer.NewTrack(tm),
		sessionBar: sessionBar,
		lapBar:     lapBar,
	}
}

func (v *StudyView) Init() tea.Cmd {
	return v.reload
}

type studyLoaded struct {
	tasks []models.Task
	err   error
}

type studyTickMsg struct{ gen int }

type studyFrameMsg struct {
	gen int
	at  time.Time
}

func (v *StudyView) reload() tea.Msg {
	tasks, err := v.store.StudyTasks()
	return studyLoaded{tasks: tasks, err: err}
}

func (v *StudyView) tickCmd() tea.Cmd {
	gen := v.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return studyTickMsg{gen: gen}
	})
}

func (v *StudyView) frameCmd() tea.Cmd {
	gen := v.gen
	return tea.Tick(frameInterval, func(at time.Time) tea.Msg {
		return studyFrameMsg{gen: gen, at: at}
	})
}

// cancelTicks orphans all outstanding callbacks.
func (v *StudyView) cancelTicks() {
	v.gen++
}

func (v *StudyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case studyLoaded:
		if msg.err != nil {
			v.statusMsg = msg.err.Error()
			return v, nil
		}
		v.studyTasks = msg.tasks
		v.cursor = clamp(v.cursor, 0, max(0, len(v.studyTasks)-1))
		return v, nil

	case studyTickMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		done := v.timer.Tick()
		v.track.Sync()
		if done {
			v.finished = true
			v.cancelTicks()
			return v, nil
		}
		return v, v.tickCmd()

	case studyFrameMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		v.track.Advance(msg.at.Sub(v.lastFrame).Seconds())
		v.lastFrame = msg.at
		return v, v.frameCmd()

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *StudyView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Enter), msg.String() == " ":
		if v.timer.Running {
			v.cancelTicks()
			v.timer.Stop()
			v.track.Sync()
			return v, nil
		}
		v.timer.Start()
		if !v.timer.Running {
			return v, nil // nothing remaining, Start was a no-op
		}
		v.finished = false
		v.cancelTicks()
		v.lastFrame = time.Now()
		v.track.Sync()
		return v, tea.Batch(v.tickCmd(), v.frameCmd())

	case msg.String() == "r":
		v.cancelTicks()
		v.timer.Reset()
		v.track.Sync()
		v.finished = false

	case msg.String() == "+", msg.String() == "=":
		v.setMinutes(float64(v.timer.Total)/60 + 1)

	case msg.String() == "-":
		v.setMinutes(float64(v.timer.Total)/60 - 1)

	case key.Matches(msg, v.keys.Up):
		v.cursor = clamp(v.cursor-1, 0, max(0, len(v.studyTasks)-1))

	case key.Matches(msg, v.keys.Down):
		v.cursor = clamp(v.cursor+1, 0, max(0, len(v.studyTasks)-1))

	case key.Matches(msg, v.keys.Delete):
		if v.cursor < len(v.studyTasks) {
			tasks, err := v.store.RemoveStudyTask(v.studyTasks[v.cursor].ID)
			if err != nil {
				v.statusMsg = err.Error()
				return v, nil
			}
			v.studyTasks = tasks
			v.cursor = clamp(v.cursor, 0, max(0, len(tasks)-1))
		}

	case key.Matches(msg, v.keys.Clear):
		if err := v.store.ClearStudySession(); err != nil {
			v.statusMsg = err.Error()
			return v, nil
		}
		v.studyTasks = nil
		v.cursor = 0
		v.statusMsg = "Study session cleared"
	}
	return v, nil
}

// setMinutes reconfigures the session length; the timer stops and resets,
// so outstanding callbacks are orphaned too.
func (v *StudyView) setMinutes(minutes float64) {
	v.cancelTicks()
	v.timer.SetMinutes(minutes)
	v.track.Sync()
	v.finished = false
}

func (v *StudyView) View() string {
	s := v.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("Study Session") + "\n\n")

	clock := lipgloss.NewStyle().Bold(true).Render(v.timer.Clock())
	state := "paused"
	if v.timer.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("%s  %s\n\n", clock, s.TitleMuted.Render(state)))

	b.WriteString(s.TitleMuted.Render("Session progress") + "\n")
	b.WriteString(v.sessionBar.ViewAs(v.track.SessionProgress()) + "\n")
	b.WriteString(s.TitleMuted.Render(fmt.Sprintf("Lap %d / %d  •  %d completed",
		v.track.CurrentLap(), v.track.TotalLaps(), v.track.LapsCompleted())) + "\n")
	b.WriteString(s.TitleMuted.Render("Current lap") + "\n")
	b.WriteString(v.lapBar.ViewAs(v.track.LapProgress()) + "\n")

	if v.finished {
		b.WriteString("\n" + s.SuccessText.Render("Time's up! Take a break.") + "\n")
	}

	b.WriteString("\n" + s.Title.Render("Focus tasks") + "\n")
	if len(v.studyTasks) == 0 {
		b.WriteString(s.Placeholder.Render("Empty. Add tasks from the board with s.") + "\n")
	}
	for i, task := range v.studyTasks {
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		if task.Color != "" {
			style = style.Foreground(lipgloss.Color(task.Color))
		}
		b.WriteString(style.Render(task.Title) + "\n")
	}

	if v.statusMsg != "" {
		b.WriteString("\n" + s.TitleMuted.Render(v.statusMsg))
	}
	b.WriteString("\n" + s.Help.Render(fmt.Sprintf("space: start/stop • r: reset • +/-: length (%d min) • d: remove • x: clear all",
		v.timer.Total/60)))
	return b.String()
}
