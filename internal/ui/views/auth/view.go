package auth

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "github.com/SdReum/classmood-cli/internal/modules/session/dto"
	"github.com/SdReum/classmood-cli/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the session use-case.
type Port interface {
	Login(ctx context.Context, username, password string) (sessiondto.LoginOutput, error)
	Register(ctx context.Context, username, password string) (sessiondto.RegisterOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoginDoneMsg is sent when a login attempt finishes. The parent model
// watches it to leave the auth screen on success.
type LoginDoneMsg struct {
	Out sessiondto.LoginOutput
	Err error
}

// RegisterDoneMsg is sent when a registration attempt finishes.
type RegisterDoneMsg struct {
	Out sessiondto.RegisterOutput
	Err error
}

// ─── mode ────────────────────────────────────────────────────────────────────

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

func (m mode) String() string {
	if m == modeRegister {
		return "create account"
	}
	return "sign in"
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the self-contained Bubble Tea model for the auth screen.
type Model struct {
	port       Port
	username   textinput.Model
	password   textinput.Model
	focus      int
	mode       mode
	spinner    spinner.Model
	submitting bool
	notice     string
	noticeErr  bool
	width      int
	height     int
}

func New(port Port) Model {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		username: user,
		password: pass,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoginDoneMsg:
		m.submitting = false
		if msg.Err != nil {
			m.notice = msg.Err.Error()
			m.noticeErr = true
		}

	case RegisterDoneMsg:
		m.submitting = false
		if msg.Err != nil {
			m.notice = msg.Err.Error()
			m.noticeErr = true
		} else {
			m.mode = modeLogin
			m.notice = msg.Out.Message + " — sign in to continue"
			m.noticeErr = false
			m.password.SetValue("")
		}

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.submitting {
			return m, tea.Batch(cmds...)
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.toggleFocus()
		case "ctrl+r":
			if m.mode == modeLogin {
				m.mode = modeRegister
			} else {
				m.mode = modeLogin
			}
			m.notice = ""
		case "enter":
			user := strings.TrimSpace(m.username.Value())
			pass := m.password.Value()
			if user == "" || pass == "" {
				m.notice = "username and password are required"
				m.noticeErr = true
				return m, nil
			}
			m.submitting = true
			m.notice = ""
			cmds = append(cmds, m.submitCmd(user, pass), m.spinner.Tick)
		default:
			cmds = append(cmds, m.updateFocused(msg))
		}
		return m, tea.Batch(cmds...)
	}

	cmds = append(cmds, m.updateFocused(msg))
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("ClassMood") + "  " + theme.Muted.Render(m.mode.String()) + "\n\n")
	sb.WriteString(m.username.View() + "\n")
	sb.WriteString(m.password.View() + "\n\n")

	switch {
	case m.submitting:
		sb.WriteString(m.spinner.View() + " talking to server…\n")
	case m.notice != "":
		style := theme.Good
		if m.noticeErr {
			style = theme.Error
		}
		sb.WriteString(style.Render(m.notice) + "\n")
	}

	sb.WriteString("\n" + theme.Muted.Render("tab: next field  ctrl+r: sign in/register  enter: submit  ctrl+c: quit"))

	box := theme.Pane.Padding(1, 2).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) toggleFocus() {
	m.focus = (m.focus + 1) % 2
	if m.focus == 0 {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.password.Focus()
		m.username.Blur()
	}
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

func (m Model) submitCmd(user, pass string) tea.Cmd {
	if m.mode == modeRegister {
		return func() tea.Msg {
			out, err := m.port.Register(context.Background(), user, pass)
			return RegisterDoneMsg{Out: out, Err: err}
		}
	}
	return func() tea.Msg {
		out, err := m.port.Login(context.Background(), user, pass)
		return LoginDoneMsg{Out: out, Err: err}
	}
}
