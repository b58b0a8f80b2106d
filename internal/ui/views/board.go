package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ontrack-app/ontrack/internal/models"
	"github.com/ontrack-app/ontrack/internal/schedule"
	"github.com/ontrack-app/ontrack/internal/store"
	"github.com/ontrack-app/ontrack/internal/ui/keys"
	"github.com/ontrack-app/ontrack/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

type boardMode int

const (
	boardNormal boardMode = iota
	boardAddingTask
	boardAddingColumn
	boardRenamingColumn
	boardConfirmDeleteTask
	boardConfirmDeleteColumn
	boardAssigning
)

// BoardView shows the user's tabs with their tasks, plus the unsorted bucket.
type BoardView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	cols  []models.Column
	tasks []models.Task

	width  int
	height int

	// UI state
	mode        boardMode
	selectedTab int // 0..len(cols)-1 are tabs, len(cols) is Unsorted
	cursor      int
	statusMsg   string

	// Task creation form
	newTitle textinput.Model
	newDesc  textinput.Model
	newDue   textinput.Model
	focusIdx int

	// Column creation / rename
	colTitle textinput.Model

	// Assignment target
	assignIdx int

	// Delete confirmation
	deleteTaskID   int64
	deleteTaskName string
}

// NewBoardView creates the board over the given store.
func NewBoardView(st *store.Store) *BoardView {
	newTitle := textinput.New()
	newTitle.Placeholder = "Task title"
	newTitle.CharLimit = 200

	newDesc := textinput.New()
	newDesc.Placeholder = "Description (optional)"
	newDesc.CharLimit = 500

	newDue := textinput.New()
	newDue.Placeholder = "Due date YYYY-MM-DD (optional)"
	newDue.CharLimit = 10

	colTitle := textinput.New()
	colTitle.Placeholder = "Tab name"
	colTitle.CharLimit = 50

	return &BoardView{
		store:    st,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		newTitle: newTitle,
		newDesc:  newDesc,
		newDue:   newDue,
		colTitle: colTitle,
	}
}

func (v *BoardView) Init() tea.Cmd {
	return v.reload
}

type boardLoaded struct {
	cols  []models.Column
	tasks []models.Task
	err   error
}

func (v *BoardView) reload() tea.Msg {
	cols, err := v.store.Columns()
	if err != nil {
		return boardLoaded{err: err}
	}
	tasks, err := v.store.Tasks()
	if err != nil {
		return boardLoaded{err: err}
	}
	return boardLoaded{cols: cols, tasks: tasks}
}

// currentBucket returns the tasks shown under the selected tab.
func (v *BoardView) currentBucket() []models.Task {
	byColumn, unsorted := schedule.BucketByColumn(v.tasks, v.cols)
	if v.selectedTab < len(v.cols) {
		return byColumn[v.cols[v.selectedTab].ID]
	}
	return unsorted
}

func (v *BoardView) currentColumn() *models.Column {
	if v.selectedTab < len(v.cols) {
		return &v.cols[v.selectedTab]
	}
	return nil
}

func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case boardLoaded:
		if msg.err != nil {
			v.statusMsg = msg.err.Error()
			return v, nil
		}
		v.cols = msg.cols
		v.tasks = msg.tasks
		v.selectedTab = clamp(v.selectedTab, 0, len(v.cols))
		v.cursor = clamp(v.cursor, 0, max(0, len(v.currentBucket())-1))
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case boardAddingTask:
			return v.updateAddingTask(msg)
		case boardAddingColumn, boardRenamingColumn:
			return v.updateColumnForm(msg)
		case boardConfirmDeleteTask:
			return v.updateConfirmDeleteTask(msg)
		case boardConfirmDeleteColumn:
			return v.updateConfirmDeleteColumn(msg)
		case boardAssigning:
			return v.updateAssigning(msg)
		default:
			return v.updateNormal(msg)
		}
	}
	return v, nil
}

func (v *BoardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	bucket := v.currentBucket()

	switch {
	case key.Matches(msg, v.keys.Left):
		v.selectedTab = clamp(v.selectedTab-1, 0, len(v.cols))
		v.cursor = 0

	case key.Matches(msg, v.keys.Right):
		v.selectedTab = clamp(v.selectedTab+1, 0, len(v.cols))
		v.cursor = 0

	case key.Matches(msg, v.keys.Up):
		v.cursor = clamp(v.cursor-1, 0, max(0, len(bucket)-1))

	case key.Matches(msg, v.keys.Down):
		v.cursor = clamp(v.cursor+1, 0, max(0, len(bucket)-1))

	case key.Matches(msg, v.keys.New):
		v.mode = boardAddingTask
		v.statusMsg = ""
		v.focusIdx = 0
		v.newTitle.SetValue("")
		v.newDesc.SetValue("")
		v.newDue.SetValue("")
		v.newTitle.Focus()
		v.newDesc.Blur()
		v.newDue.Blur()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Complete):
		if v.cursor < len(bucket) {
			tasks, err := v.store.CompleteTask(bucket[v.cursor].ID)
			if err != nil {
				v.statusMsg = err.Error()
				return v, nil
			}
			v.tasks = tasks
			v.cursor = clamp(v.cursor, 0, max(0, len(v.currentBucket())-1))
			v.statusMsg = "Task completed"
		}

	case key.Matches(msg, v.keys.Delete):
		if v.cursor < len(bucket) {
			v.mode = boardConfirmDeleteTask
			v.deleteTaskID = bucket[v.cursor].ID
			v.deleteTaskName = bucket[v.cursor].Title
		}

	case key.Matches(msg, v.keys.Assign):
		if v.cursor < len(bucket) && len(v.cols) > 0 {
			v.mode = boardAssigning
			v.assignIdx = 0
		}

	case key.Matches(msg, v.keys.Study):
		if v.cursor < len(bucket) {
			if _, err := v.store.AddStudyTask(bucket[v.cursor]); err != nil {
				v.statusMsg = err.Error()
				return v, nil
			}
			v.statusMsg = fmt.Sprintf("%q added to study session", bucket[v.cursor].Title)
		}

	case msg.String() == "t":
		v.mode = boardAddingColumn
		v.statusMsg = ""
		v.colTitle.SetValue("")
		v.colTitle.Focus()
		return v, textinput.Blink

	case msg.String() == "r":
		if col := v.currentColumn(); col != nil {
			v.mode = boardRenamingColumn
			v.colTitle.SetValue(col.Title)
			v.colTitle.Focus()
			return v, textinput.Blink
		}

	case msg.String() == "D":
		if v.currentColumn() != nil {
			v.mode = boardConfirmDeleteColumn
		}
	}
	return v, nil
}

func (v *BoardView) updateAddingTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = boardNormal
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 3
		inputs := []*textinput.Model{&v.newTitle, &v.newDesc, &v.newDue}
		for i, in := range inputs {
			if i == v.focusIdx {
				in.Focus()
			} else {
				in.Blur()
			}
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		title := strings.TrimSpace(v.newTitle.Value())
		if title == "" {
			v.statusMsg = "Title is required"
			return v, nil
		}
		due := strings.TrimSpace(v.newDue.Value())
		if due != "" {
			if _, err := schedule.ParseISODate(due); err != nil {
				v.statusMsg = "Due date must be YYYY-MM-DD"
				return v, nil
			}
		}

		task := models.Task{
			Title:       title,
			Description: strings.TrimSpace(v.newDesc.Value()),
			DueDate:     due,
		}
		if col := v.currentColumn(); col != nil {
			task.Status = col.ID
			task.Color = col.Color
		}

		tasks, err := v.store.AddTask(task)
		if err != nil {
			v.statusMsg = err.Error()
			return v, nil
		}
		v.tasks = tasks
		v.mode = boardNormal
		v.statusMsg = ""
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.newTitle, cmd = v.newTitle.Update(msg)
	case 1:
		v.newDesc, cmd = v.newDesc.Update(msg)
	case 2:
		v.newDue, cmd = v.newDue.Update(msg)
	}
	return v, cmd
}

func (v *BoardView) updateColumnForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = boardNormal
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		title := strings.TrimSpace(v.colTitle.Value())
		if title == "" {
			v.statusMsg = "Tab name is required"
			return v, nil
		}

		if v.mode == boardRenamingColumn {
			col := v.currentColumn()
			cols, err := v.store.UpdateColumn(col.ID, title, "")
			if err != nil {
				v.statusMsg = err.Error()
				return v, nil
			}
			v.cols = cols
		} else {
			color := styles.ColumnPalette[len(v.cols)%len(styles.ColumnPalette)]
			cols, err := v.store.AddColumn(title, color)
			if errors.Is(err, store.ErrColumnLimit) {
				v.statusMsg = fmt.Sprintf("You can have at most %d tabs", store.MaxColumns)
				v.mode = boardNormal
				return v, nil
			}
			if err != nil {
				v.statusMsg = err.Error()
				return v, nil
			}
			v.cols = cols
			v.selectedTab = len(cols) - 1
		}
		v.mode = boardNormal
		v.statusMsg = ""
		return v, nil
	}

	var cmd tea.Cmd
	v.colTitle, cmd = v.colTitle.Update(msg)
	return v, cmd
}

func (v *BoardView) updateConfirmDeleteTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		tasks, err := v.store.DeleteTask(v.deleteTaskID)
		if err != nil {
			v.statusMsg = err.Error()
		} else {
			v.tasks = tasks
			v.cursor = clamp(v.cursor, 0, max(0, len(v.currentBucket())-1))
		}
		v.mode = boardNormal
	case "n", "N", "esc":
		v.mode = boardNormal
	}
	return v, nil
}

func (v *BoardView) updateConfirmDeleteColumn(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		col := v.currentColumn()
		cols, tasks, err := v.store.DeleteColumn(col.ID)
		if err != nil {
			v.statusMsg = err.Error()
		} else {
			v.cols = cols
			v.tasks = tasks
			v.selectedTab = clamp(v.selectedTab, 0, len(cols))
			v.cursor = 0
		}
		v.mode = boardNormal
	case "n", "N", "esc":
		v.mode = boardNormal
	}
	return v, nil
}

func (v *BoardView) updateAssigning(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = boardNormal

	case key.Matches(msg, v.keys.Left):
		v.assignIdx = clamp(v.assignIdx-1, 0, len(v.cols)-1)

	case key.Matches(msg, v.keys.Right):
		v.assignIdx = clamp(v.assignIdx+1, 0, len(v.cols)-1)

	case key.Matches(msg, v.keys.Enter):
		bucket := v.currentBucket()
		if v.cursor < len(bucket) {
			target := v.cols[v.assignIdx]
			tasks, err := v.store.UpdateTask(bucket[v.cursor].ID, store.TaskUpdate{
				Status: &target.ID,
				Color:  &target.Color,
			})
			if err != nil {
				v.statusMsg = err.Error()
			} else {
				v.tasks = tasks
				v.cursor = clamp(v.cursor, 0, max(0, len(v.currentBucket())-1))
			}
		}
		v.mode = boardNormal
	}
	return v, nil
}

func (v *BoardView) View() string {
	s := v.styles

	var b strings.Builder
	b.WriteString(v.renderTabs() + "\n\n")

	switch v.mode {
	case boardAddingTask:
		b.WriteString(v.renderTaskForm())
	case boardAddingColumn:
		b.WriteString(s.Panel.Render("New tab: "+v.colTitle.View()) + "\n")
	case boardRenamingColumn:
		b.WriteString(s.Panel.Render("Rename tab: "+v.colTitle.View()) + "\n")
	case boardConfirmDeleteTask:
		b.WriteString(s.ErrorText.Render(fmt.Sprintf("Delete %q? (y/n)", v.deleteTaskName)) + "\n")
	case boardConfirmDeleteColumn:
		col := v.currentColumn()
		b.WriteString(s.ErrorText.Render(fmt.Sprintf("Delete tab %q? Its tasks move to Unsorted. (y/n)", col.Title)) + "\n")
	case boardAssigning:
		b.WriteString(v.renderAssignPicker())
	default:
		b.WriteString(v.renderTaskList())
	}

	if v.statusMsg != "" {
		b.WriteString("\n" + s.TitleMuted.Render(v.statusMsg))
	}
	b.WriteString("\n" + s.Help.Render("n: new task • c: complete • d: delete • a: assign • s: study set • t: new tab • r: rename tab • D: delete tab"))
	return b.String()
}

func (v *BoardView) renderTabs() string {
	s := v.styles

	var tabs []string
	for i, col := range v.cols {
		label := col.Title
		style := s.Tab
		if i == v.selectedTab {
			style = s.TabActive
		}
		if col.Color != "" {
			style = style.Foreground(lipgloss.Color(col.Color))
		}
		tabs = append(tabs, style.Render(label))
	}
	style := s.Tab
	if v.selectedTab == len(v.cols) {
		style = s.TabActive
	}
	tabs = append(tabs, style.Render("Unsorted"))

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v *BoardView) renderTaskList() string {
	s := v.styles
	bucket := v.currentBucket()

	if len(bucket) == 0 {
		return s.Placeholder.Render("No tasks here. Press n to add one.")
	}

	var b strings.Builder
	for i, task := range bucket {
		line := task.Title
		if task.DueDate != "" {
			line += "  " + s.TitleMuted.Render("due "+task.DueDate)
		}
		if task.Description != "" {
			line += "  " + s.TitleMuted.Render(task.Description)
		}
		if i == v.cursor {
			b.WriteString(s.ListSelected.Render(line))
		} else {
			b.WriteString(s.ListItem.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *BoardView) renderTaskForm() string {
	s := v.styles

	inputStyle := func(idx int) lipgloss.Style {
		if idx == v.focusIdx {
			return s.InputFocused
		}
		return s.Input
	}

	var b strings.Builder
	b.WriteString(inputStyle(0).Render(v.newTitle.View()) + "\n")
	b.WriteString(inputStyle(1).Render(v.newDesc.View()) + "\n")
	b.WriteString(inputStyle(2).Render(v.newDue.View()) + "\n")
	b.WriteString(s.TitleMuted.Render("tab: next field • enter: save • esc: cancel") + "\n")
	return b.String()
}

func (v *BoardView) renderAssignPicker() string {
	s := v.styles

	var targets []string
	for i, col := range v.cols {
		style := s.Tab
		if i == v.assignIdx {
			style = s.TabActive
		}
		targets = append(targets, style.Render(col.Title))
	}
	picker := lipgloss.JoinHorizontal(lipgloss.Top, targets...)
	return s.Panel.Render("Move to: "+picker) + "\n" + s.TitleMuted.Render("←/→: choose • enter: move • esc: cancel") + "\n"
}
