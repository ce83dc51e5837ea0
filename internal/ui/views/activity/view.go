package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	"github.com/SdReum/classmood-cli/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the activity use-case.
type Port interface {
	Tail(ctx context.Context, limit int) ([]activitydto.EntryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// TailLoadedMsg is sent when the journal tail finishes loading.
type TailLoadedMsg struct {
	Entries []activitydto.EntryOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	entries  []activitydto.EntryOutput
	loading  bool
	loadErr  error
	width    int
	height   int
}

func New(port Port) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Peach)

	return Model{port: port, viewport: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTailCmd(), m.spinner.Tick)
}

// Refresh reloads the journal tail.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadTailCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width - 2
		m.viewport.Height = m.height - 3
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		m.viewport.SetContent(m.renderEntries())

	case TailLoadedMsg:
		m.loading = false
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.entries = msg.Entries
		}
		m.viewport.SetContent(m.renderEntries())
		m.viewport.GotoTop()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if msg.String() == "r" && !m.loading {
			cmds = append(cmds, m.Refresh())
			return m, tea.Batch(cmds...)
		}
	}

	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Reading journal…")
	}
	header := theme.Title.Render("Activity") + "  " +
		theme.Muted.Render("r: refresh  ↑/↓: scroll") + "\n"
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderEntries() string {
	if m.loadErr != nil {
		return theme.Error.Render("journal: " + m.loadErr.Error())
	}
	if len(m.entries) == 0 {
		return theme.Muted.Render("Nothing recorded yet. Uploads, deletes, and analyses land here.")
	}
	var sb strings.Builder
	for _, e := range m.entries {
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n",
			theme.Muted.Render(e.OccurredAt.Format("2006-01-02 15:04:05")),
			theme.Hot.Render(fmt.Sprintf("%-8s", e.Kind)),
			e.Detail))
	}
	return sb.String()
}

func (m Model) loadTailCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.port.Tail(context.Background(), 50)
		return TailLoadedMsg{Entries: entries, Err: err}
	}
}
