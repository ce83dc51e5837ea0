package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	insightsdto "github.com/SdReum/classmood-cli/internal/modules/insights/dto"
	"github.com/SdReum/classmood-cli/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the insights use-case.
type Port interface {
	Top(ctx context.Context, limit int) ([]insightsdto.SummaryOutput, error)
	ForFile(ctx context.Context, fileID int64) (insightsdto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// TopLoadedMsg is sent when the leaderboard finishes loading.
type TopLoadedMsg struct {
	Summaries []insightsdto.SummaryOutput
	Err       error
}

// DetailLoadedMsg is sent when a single file's summary finishes loading.
type DetailLoadedMsg struct {
	Summary insightsdto.SummaryOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type summaryItem struct {
	summary insightsdto.SummaryOutput
}

func (i summaryItem) Title() string {
	if i.summary.Filename != "" {
		return i.summary.Filename
	}
	return fmt.Sprintf("file %d", i.summary.FileID)
}
func (i summaryItem) Description() string {
	return fmt.Sprintf("mean %.2f  %d samples", i.summary.Mean, i.summary.Points)
}
func (i summaryItem) FilterValue() string { return i.Title() }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	current insightsdto.SummaryOutput
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Green).BorderForeground(theme.Green)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Green)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Insights"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{
		port:    port,
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTopCmd(), m.spinner.Tick)
}

// Refresh reloads the leaderboard.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadTopCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case TopLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Insights — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Insights"
		items := make([]list.Item, len(msg.Summaries))
		for i, s := range msg.Summaries {
			items[i] = summaryItem{summary: s}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.current = msg.Summary
			m.detail.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(summaryItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.summary.FileID))
			}
		case "r":
			if !m.Filtering() {
				cmds = append(cmds, m.Refresh())
				return m, tea.Batch(cmds...)
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Ranking lectures…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := theme.Pane.
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	s := m.current
	if s.FileID == 0 {
		return theme.Muted.Render("Select a lecture and press enter for its numbers")
	}
	name := s.Filename
	if name == "" {
		name = fmt.Sprintf("file %d", s.FileID)
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(name) + "\n\n")
	sb.WriteString(theme.Muted.Render("file id:  ") + fmt.Sprintf("%d", s.FileID) + "\n")
	sb.WriteString(theme.Muted.Render("samples:  ") + fmt.Sprintf("%d", s.Points) + "\n")
	sb.WriteString(theme.Muted.Render("min:      ") + fmt.Sprintf("%.3f", s.Min) + "\n")
	sb.WriteString(theme.Muted.Render("max:      ") + fmt.Sprintf("%.3f", s.Max) + "\n")
	sb.WriteString(theme.Muted.Render("mean:     ") + fmt.Sprintf("%.3f", s.Mean) + "\n")
	sb.WriteString(theme.Muted.Render("analyzed: ") + s.AnalyzedAt.Format("2006-01-02 15:04:05") + "\n")
	sb.WriteString("\n" + theme.Muted.Render("r: refresh  enter: reload selection"))
	return sb.String()
}

func (m Model) loadTopCmd() tea.Cmd {
	return func() tea.Msg {
		summaries, err := m.port.Top(context.Background(), 20)
		return TopLoadedMsg{Summaries: summaries, Err: err}
	}
}

func (m Model) loadDetailCmd(fileID int64) tea.Cmd {
	return func() tea.Msg {
		summary, err := m.port.ForFile(context.Background(), fileID)
		return DetailLoadedMsg{Summary: summary, Err: err}
	}
}
