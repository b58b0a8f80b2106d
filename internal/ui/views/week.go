package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ontrack-app/ontrack/internal/models"
	"github.com/ontrack-app/ontrack/internal/schedule"
	"github.com/ontrack-app/ontrack/internal/store"
	"github.com/ontrack-app/ontrack/internal/ui/keys"
	"github.com/ontrack-app/ontrack/internal/ui/styles"
)

// WeekView assigns tasks to weekdays. The assignment is independent of due
// dates; it is a planning board over the named days Sunday through Saturday.
type WeekView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	tasks []models.Task

	width  int
	height int

	dayIdx    int
	taskIdx   int
	assigning bool
	assignIdx int // cursor within the all-tasks picker
	statusMsg string
}

// NewWeekView creates the weekday board.
func NewWeekView(st *store.Store) *WeekView {
	return &WeekView{
		store:  st,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *WeekView) Init() tea.Cmd {
	return v.reload
}

type weekLoaded struct {
	tasks []models.Task
	err   error
}

func (v *WeekView) reload() tea.Msg {
	tasks, err := v.store.Tasks()
	return weekLoaded{tasks: tasks, err: err}
}

func (v *WeekView) dayTasks(day string) []models.Task {
	return schedule.BucketByDay(v.tasks)[day]
}

func (v *WeekView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case weekLoaded:
		if msg.err != nil {
			v.statusMsg = msg.err.Error()
			return v, nil
		}
		v.tasks = msg.tasks
		return v, nil

	case tea.KeyMsg:
		if v.assigning {
			return v.updateAssigning(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *WeekView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	day := models.Weekdays[v.dayIdx]
	bucket := v.dayTasks(day)

	switch {
	case key.Matches(msg, v.keys.Left):
		v.dayIdx = clamp(v.dayIdx-1, 0, 6)
		v.taskIdx = 0

	case key.Matches(msg, v.keys.Right):
		v.dayIdx = clamp(v.dayIdx+1, 0, 6)
		v.taskIdx = 0

	case key.Matches(msg, v.keys.Up):
		v.taskIdx = clamp(v.taskIdx-1, 0, max(0, len(bucket)-1))

	case key.Matches(msg, v.keys.Down):
		v.taskIdx = clamp(v.taskIdx+1, 0, max(0, len(bucket)-1))

	case key.Matches(msg, v.keys.Assign):
		if len(v.tasks) > 0 {
			v.assigning = true
			v.assignIdx = 0
		}

	case key.Matches(msg, v.keys.Complete):
		if v.taskIdx < len(bucket) {
			tasks, err := v.store.CompleteTask(bucket[v.taskIdx].ID)
			if err != nil {
				v.statusMsg = err.Error()
				return v, nil
			}
			v.tasks = tasks
			v.taskIdx = clamp(v.taskIdx, 0, max(0, len(v.dayTasks(day))-1))
			v.statusMsg = "Task completed"
		}

	case key.Matches(msg, v.keys.Delete):
		if v.taskIdx < len(bucket) {
			tasks, err := v.store.DeleteTask(bucket[v.taskIdx].ID)
			if err != nil {
				v.statusMsg = err.Error()
				return v, nil
			}
			v.tasks = tasks
			v.taskIdx = clamp(v.taskIdx, 0, max(0, len(v.dayTasks(day))-1))
		}

	case key.Matches(msg, v.keys.Clear):
		// unassign every task on this day in one write
		cleared := make([]models.Task, len(v.tasks))
		copy(cleared, v.tasks)
		for i := range cleared {
			if cleared[i].Day == day {
				cleared[i].Day = ""
			}
		}
		tasks, err := v.store.SetTasks(cleared)
		if err != nil {
			v.statusMsg = err.Error()
			return v, nil
		}
		v.tasks = tasks
		v.taskIdx = 0
		v.statusMsg = fmt.Sprintf("Cleared %s", day)
	}
	return v, nil
}

func (v *WeekView) updateAssigning(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.assigning = false

	case key.Matches(msg, v.keys.Up):
		v.assignIdx = clamp(v.assignIdx-1, 0, max(0, len(v.tasks)-1))

	case key.Matches(msg, v.keys.Down):
		v.assignIdx = clamp(v.assignIdx+1, 0, max(0, len(v.tasks)-1))

	case key.Matches(msg, v.keys.Enter):
		if v.assignIdx < len(v.tasks) {
			day := models.Weekdays[v.dayIdx]
			tasks, err := v.store.UpdateTask(v.tasks[v.assignIdx].ID, store.TaskUpdate{Day: &day})
			if err != nil {
				v.statusMsg = err.Error()
			} else {
				v.tasks = tasks
			}
		}
		v.assigning = false
	}
	return v, nil
}

func (v *WeekView) View() string {
	s := v.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("Weekly Planner") + "\n\n")

	if v.assigning {
		b.WriteString(v.renderAssignPicker())
	} else {
		b.WriteString(v.renderDays())
	}

	if v.statusMsg != "" {
		b.WriteString("\n" + s.TitleMuted.Render(v.statusMsg))
	}
	b.WriteString("\n" + s.Help.Render("←/→: day • ↑/↓: task • a: assign a task • c: complete • d: delete • x: clear day"))
	return b.String()
}

func (v *WeekView) renderDays() string {
	s := v.styles

	var columns []string
	for i, day := range models.Weekdays {
		header := s.Tab.Render(day)
		if i == v.dayIdx {
			header = s.TabActive.Render(day)
		}

		var lines []string
		lines = append(lines, header)
		bucket := v.dayTasks(day)
		if len(bucket) == 0 {
			lines = append(lines, s.Placeholder.Render("No tasks"))
		}
		for j, task := range bucket {
			style := s.ListItem
			if i == v.dayIdx && j == v.taskIdx {
				style = s.ListSelected
			}
			if task.Color != "" {
				style = style.Foreground(lipgloss.Color(task.Color))
			}
			lines = append(lines, style.Render(task.Title))
		}

		panel := s.Panel
		if i == v.dayIdx {
			panel = s.PanelFocused
		}
		columns = append(columns, panel.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (v *WeekView) renderAssignPicker() string {
	s := v.styles
	day := models.Weekdays[v.dayIdx]

	var b strings.Builder
	b.WriteString(s.TitleMuted.Render(fmt.Sprintf("Assign a task to %s:", day)) + "\n")
	for i, task := range v.tasks {
		label := task.Title
		if task.Day != "" {
			label += "  " + s.TitleMuted.Render("(on "+task.Day+")")
		}
		if i == v.assignIdx {
			b.WriteString(s.ListSelected.Render(label))
		} else {
			b.WriteString(s.ListItem.Render(label))
		}
		b.WriteString("\n")
	}
	b.WriteString(s.TitleMuted.Render("↑/↓: choose • enter: assign • esc: cancel") + "\n")
	return b.String()
}
