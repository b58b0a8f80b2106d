package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/ontrack-app/ontrack/internal/store"
	"github.com/ontrack-app/ontrack/internal/ui/styles"
	"github.com/ontrack-app/ontrack/internal/ui/views"
)

// Currently active page
type Page int

const (
	PageAuth Page = iota
	PageBoard
	PageWeek
	PageProfile
	PageStudy
)

type pageModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

type App struct {
	store          *store.Store
	logger         *log.Logger
	sessionMinutes float64

	currentPage Page
	auth        *views.AuthView
	board       *views.BoardView
	week        *views.WeekView
	profile     *views.ProfileView
	study       *views.StudyView

	styles *styles.Styles
	width  int
	height int
}

// NewApp creates the application root. logger may be nil.
func NewApp(st *store.Store, logger *log.Logger, sessionMinutes float64) *App {
	return &App{
		store:          st,
		logger:         logger,
		sessionMinutes: sessionMinutes,
		currentPage:    PageAuth,
		auth:           views.NewAuthView(st),
		styles:         styles.NewStyles(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.auth.Init()
}

func (a *App) activeView() pageModel {
	switch a.currentPage {
	case PageBoard:
		return a.board
	case PageWeek:
		return a.week
	case PageProfile:
		return a.profile
	case PageStudy:
		return a.study
	default:
		return a.auth
	}
}

// switchTo changes the active page and refreshes its data.
func (a *App) switchTo(page Page) tea.Cmd {
	a.currentPage = page
	return a.activeView().Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.broadcast(msg)

	case views.LoggedIn:
		// seed the starter tab for first-time users before showing the board
		if _, err := a.store.EnsureDefaultColumn(); err != nil && a.logger != nil {
			a.logger.Error("seeding default column", "err", err)
		}
		a.board = views.NewBoardView(a.store)
		a.week = views.NewWeekView(a.store)
		a.profile = views.NewProfileView(a.store)
		a.study = views.NewStudyView(a.store, a.sessionMinutes)
		return a, tea.Batch(
			a.switchTo(PageBoard),
			func() tea.Msg { return tea.WindowSizeMsg{Width: a.width, Height: a.height} },
		)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentPage != PageAuth {
			switch msg.String() {
			case "ctrl+b":
				return a, a.switchTo(PageBoard)
			case "ctrl+w":
				return a, a.switchTo(PageWeek)
			case "ctrl+p":
				return a, a.switchTo(PageProfile)
			case "ctrl+s":
				return a, a.switchTo(PageStudy)
			case "ctrl+l":
				a.store.Logout()
				a.board, a.week, a.profile, a.study = nil, nil, nil, nil
				return a, a.switchTo(PageAuth)
			}
		}
		// keys go only to the page being looked at
		_, cmd := a.activeView().Update(msg)
		return a, cmd
	}

	// everything else (tick messages, load results) reaches every live view,
	// so a running study timer keeps counting while another page is shown
	return a, a.broadcast(msg)
}

func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, v := range []pageModel{a.auth, a.board, a.week, a.profile, a.study} {
		if v == nil {
			continue
		}
		if _, cmd := v.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) View() string {
	content := a.activeView().View()
	if a.currentPage == PageAuth {
		return content
	}

	username := ""
	if sess := a.store.Session(); sess != nil {
		username = sess.Username
	}
	bar := a.styles.StatusBar.Render(
		username + "  •  ^b board  ^w week  ^p profile  ^s study  ^l log out  ^c quit")
	return content + "\n" + bar
}
