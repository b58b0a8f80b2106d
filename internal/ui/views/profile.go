package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ontrack-app/ontrack/internal/models"
	"github.com/ontrack-app/ontrack/internal/schedule"
	"github.com/ontrack-app/ontrack/internal/store"
	"github.com/ontrack-app/ontrack/internal/ui/keys"
	"github.com/ontrack-app/ontrack/internal/ui/styles"
)

// ProfileView shows the activity calendar: the month density grid, the
// selected week's due tasks, and the lifetime completed counter.
type ProfileView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	tasks     []models.Task
	completed int

	width  int
	height int

	selectedDate time.Time
	statusMsg    string
}

// NewProfileView creates the profile/calendar page.
func NewProfileView(st *store.Store) *ProfileView {
	return &ProfileView{
		store:        st,
		styles:       styles.NewStyles(),
		keys:         keys.DefaultKeyMap(),
		selectedDate: time.Now(),
	}
}

func (v *ProfileView) Init() tea.Cmd {
	return v.reload
}

type profileLoaded struct {
	tasks     []models.Task
	completed int
	err       error
}

func (v *ProfileView) reload() tea.Msg {
	tasks, err := v.store.Tasks()
	if err != nil {
		return profileLoaded{err: err}
	}
	completed, err := v.store.Completed()
	if err != nil {
		return profileLoaded{err: err}
	}
	return profileLoaded{tasks: tasks, completed: completed}
}

func (v *ProfileView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case profileLoaded:
		if msg.err != nil {
			v.statusMsg = msg.err.Error()
			return v, nil
		}
		v.tasks = msg.tasks
		v.completed = msg.completed
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Left):
			v.selectedDate = v.selectedDate.AddDate(0, 0, -1)
		case key.Matches(msg, v.keys.Right):
			v.selectedDate = v.selectedDate.AddDate(0, 0, 1)
		case key.Matches(msg, v.keys.Up):
			v.selectedDate = v.selectedDate.AddDate(0, 0, -7)
		case key.Matches(msg, v.keys.Down):
			v.selectedDate = v.selectedDate.AddDate(0, 0, 7)
		case msg.String() == "[":
			v.selectedDate = v.selectedDate.AddDate(0, -1, 0)
		case msg.String() == "]":
			v.selectedDate = v.selectedDate.AddDate(0, 1, 0)
		case msg.String() == "T":
			v.selectedDate = time.Now()
		}
	}
	return v, nil
}

func (v *ProfileView) View() string {
	s := v.styles

	username := ""
	if sess := v.store.Session(); sess != nil {
		username = sess.Username
	}
	greeting := username
	if greeting != "" {
		greeting = strings.ToUpper(greeting[:1]) + greeting[1:]
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Hello "+greeting+"!") + "  ")
	b.WriteString(s.TitleMuted.Render(fmt.Sprintf("%d tasks completed", v.completed)) + "\n\n")

	left := v.renderMonth()
	right := v.renderWeek()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, s.Panel.Render(left), " ", s.Panel.Render(right)))

	if v.statusMsg != "" {
		b.WriteString("\n" + s.TitleMuted.Render(v.statusMsg))
	}
	b.WriteString("\n" + s.Help.Render("←/→: day • ↑/↓: week • [/]: month • T: today"))
	return b.String()
}

func (v *ProfileView) renderMonth() string {
	s := v.styles

	// today is read fresh each render so the marker survives midnight
	today := time.Now()
	month := schedule.MonthGrid(v.selectedDate, v.tasks)

	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("%s %d", month.Month, month.Year)) + "\n")
	b.WriteString(s.TitleMuted.Render(" S  M  T  W  T  F  S") + "\n")

	for _, week := range month.Weeks {
		for _, cell := range week {
			if cell.Day == 0 {
				b.WriteString(s.CalendarPad.Render(" .."))
				continue
			}

			label := fmt.Sprintf("%3d", cell.Day)
			style := s.CalendarTiers[cell.Tier]
			switch {
			case schedule.SameDay(cell.Date, v.selectedDate):
				style = s.ListSelected.Padding(0)
			case schedule.SameDay(cell.Date, today):
				style = s.CalendarToday
			}
			b.WriteString(style.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + s.TitleMuted.Render("less ") +
		s.CalendarTiers[0].Render("·") +
		s.CalendarTiers[1].Render("·") +
		s.CalendarTiers[2].Render("·") +
		s.CalendarTiers[3].Render("·") +
		s.TitleMuted.Render(" more"))
	return b.String()
}

func (v *ProfileView) renderWeek() string {
	s := v.styles

	week := schedule.WeekOf(v.selectedDate)
	buckets := schedule.BucketWeek(week, v.tasks)

	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("Week of %s", schedule.ISODate(week.Start()))) + "\n")

	for i, date := range week.Days {
		heading := date.Format("Mon 1/2")
		if schedule.SameDay(date, v.selectedDate) {
			b.WriteString(s.TabActive.Render(heading))
		} else {
			b.WriteString(s.TitleMuted.Render(heading))
		}
		b.WriteString("\n")

		if len(buckets[i]) == 0 {
			b.WriteString(s.Placeholder.Render("No tasks") + "\n")
			continue
		}
		for _, task := range buckets[i] {
			style := s.ListItem
			if task.Color != "" {
				style = style.Foreground(lipgloss.Color(task.Color))
			}
			b.WriteString(style.Render(task.Title) + "\n")
		}
	}
	return b.String()
}
