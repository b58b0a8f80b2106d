package views

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ontrack-app/ontrack/internal/store"
	"github.com/ontrack-app/ontrack/internal/ui/keys"
	"github.com/ontrack-app/ontrack/internal/ui/styles"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// AuthView is the login/registration form shown before a session exists.
type AuthView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	mode     authMode
	username textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focusIdx int
	errMsg   string

	width  int
	height int
}

// NewAuthView creates the auth form.
func NewAuthView(st *store.Store) *AuthView {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 50
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password"
	confirm.CharLimit = 100
	confirm.EchoMode = textinput.EchoPassword

	return &AuthView{
		store:    st,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		username: username,
		password: password,
		confirm:  confirm,
	}
}

func (v *AuthView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *AuthView) fieldCount() int {
	if v.mode == modeRegister {
		return 3
	}
	return 2
}

func (v *AuthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Tab):
			v.focusIdx = (v.focusIdx + 1) % v.fieldCount()
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			return v, v.submit()

		case msg.String() == "ctrl+n":
			if v.mode == modeLogin {
				v.mode = modeRegister
			} else {
				v.mode = modeLogin
			}
			v.errMsg = ""
			v.confirm.SetValue("")
			v.password.SetValue("")
			v.focusIdx = 0
			v.updateFocus()
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.username, cmd = v.username.Update(msg)
	case 1:
		v.password, cmd = v.password.Update(msg)
	case 2:
		v.confirm, cmd = v.confirm.Update(msg)
	}
	return v, cmd
}

func (v *AuthView) updateFocus() {
	inputs := []*textinput.Model{&v.username, &v.password, &v.confirm}
	for i, in := range inputs {
		if i == v.focusIdx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (v *AuthView) submit() tea.Cmd {
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()

	if v.mode == modeRegister {
		if password == "" {
			v.errMsg = "Password cannot be empty"
			return nil
		}
		if password != v.confirm.Value() {
			v.errMsg = "Passwords do not match"
			return nil
		}
		if _, err := v.store.Register(username, password); err != nil {
			v.errMsg = authErrorText(err)
			return nil
		}
	} else {
		if _, err := v.store.Login(username, password); err != nil {
			v.errMsg = authErrorText(err)
			return nil
		}
	}

	v.errMsg = ""
	v.password.SetValue("")
	v.confirm.SetValue("")
	return func() tea.Msg {
		return LoggedIn{Username: username}
	}
}

func authErrorText(err error) string {
	switch {
	case errors.Is(err, store.ErrMissingFields):
		return "Username and password are required"
	case errors.Is(err, store.ErrUserExists):
		return "That username is already taken"
	case errors.Is(err, store.ErrInvalidCredentials):
		return "Invalid username or password"
	default:
		return err.Error()
	}
}

func (v *AuthView) View() string {
	s := v.styles

	title := "Log In"
	switchHint := "ctrl+n: create account"
	if v.mode == modeRegister {
		title = "Create Account"
		switchHint = "ctrl+n: log in instead"
	}

	inputStyle := func(idx int) lipgloss.Style {
		if idx == v.focusIdx {
			return s.InputFocused
		}
		return s.Input
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("OnTrack") + "  " + s.TitleMuted.Render(title))
	b.WriteString("\n\n")
	b.WriteString(inputStyle(0).Render(v.username.View()) + "\n")
	b.WriteString(inputStyle(1).Render(v.password.View()) + "\n")
	if v.mode == modeRegister {
		b.WriteString(inputStyle(2).Render(v.confirm.View()) + "\n")
	}
	if v.errMsg != "" {
		b.WriteString("\n" + s.ErrorText.Render(v.errMsg) + "\n")
	}
	b.WriteString(s.Help.Render("tab: next field • enter: submit • " + switchHint + " • ctrl+c: quit"))

	content := b.String()
	if v.width > 0 && v.height > 0 {
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
