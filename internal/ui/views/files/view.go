package files

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mediadto "github.com/SdReum/classmood-cli/internal/modules/media/dto"
	"github.com/SdReum/classmood-cli/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the media use-case.
type Port interface {
	List(ctx context.Context) ([]mediadto.FileOutput, error)
	Delete(ctx context.Context, id int64, confirmed bool) (mediadto.DeleteOutput, error)
	Open(ctx context.Context, id int64) (mediadto.OpenOutput, error)
	Preview(ctx context.Context, id int64) (mediadto.PreviewOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoadedMsg is sent when the file listing finishes loading.
type LoadedMsg struct {
	Files []mediadto.FileOutput
	Err   error
}

// DeleteDoneMsg is sent when a confirmed delete finishes. Out.Files
// carries the refreshed listing even when the delete itself failed.
type DeleteDoneMsg struct {
	Out mediadto.DeleteOutput
	Err error
}

// OpenDoneMsg is sent when a file has been handed to the desktop.
type OpenDoneMsg struct {
	Out mediadto.OpenOutput
	Err error
}

// PreviewLoadedMsg is sent when a local preview finishes.
type PreviewLoadedMsg struct {
	FileID int64
	Out    mediadto.PreviewOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type fileItem struct {
	file mediadto.FileOutput
}

func (i fileItem) Title() string { return i.file.Filename }
func (i fileItem) Description() string {
	return fmt.Sprintf("#%d  %s", i.file.ID, i.file.UploadedAt.Format("2006-01-02 15:04"))
}
func (i fileItem) FilterValue() string { return i.file.Filename }

// ─── mode ────────────────────────────────────────────────────────────────────

type mode int

const (
	modeBrowse  mode = iota
	modeConfirm      // delete armed, waiting for y/n
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	mode    mode
	pending mediadto.FileOutput
	preview mediadto.PreviewOutput
	prevID  int64
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Files"
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
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches a fresh listing from the backend.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		files, err := m.port.List(context.Background())
		return LoadedMsg{Files: files, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Files — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Files"
		cmds = append(cmds, m.setFiles(msg.Files))

	case DeleteDoneMsg:
		m.loading = false
		m.mode = modeBrowse
		// The use-case already ran its single refresh; adopt that result
		// unless both delete and refresh failed and there is nothing new.
		if msg.Err == nil || len(msg.Out.Files) > 0 {
			cmds = append(cmds, m.setFiles(msg.Out.Files))
		}

	case PreviewLoadedMsg:
		m.loading = false
		if msg.Err == nil {
			m.preview = msg.Out
			m.prevID = msg.FileID
		}
		m.detail.SetContent(m.renderDetail())

	case OpenDoneMsg:
		m.loading = false

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.mode == modeConfirm {
			switch msg.String() {
			case "y":
				m.mode = modeBrowse
				m.loading = true
				cmds = append(cmds, m.deleteCmd(m.pending.ID), m.spinner.Tick)
			case "n", "esc":
				m.mode = modeBrowse
			}
			return m, tea.Batch(cmds...)
		}
		switch msg.String() {
		case "d":
			if !m.Filtering() {
				if item, ok := m.list.SelectedItem().(fileItem); ok {
					m.pending = item.file
					m.mode = modeConfirm
					return m, nil
				}
			}
		case "r":
			if !m.Filtering() {
				m.loading = true
				cmds = append(cmds, m.Reload(), m.spinner.Tick)
				return m, tea.Batch(cmds...)
			}
		case "p":
			if !m.Filtering() {
				if item, ok := m.list.SelectedItem().(fileItem); ok {
					m.loading = true
					cmds = append(cmds, m.previewCmd(item.file.ID), m.spinner.Tick)
					return m, tea.Batch(cmds...)
				}
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Working…")
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

	panes := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	if m.mode == modeConfirm {
		banner := theme.Error.Render(fmt.Sprintf(" delete %q (#%d)? y/n ", m.pending.Filename, m.pending.ID))
		return lipgloss.JoinVertical(lipgloss.Left, banner, panes)
	}
	return panes
}

// SelectedFileID returns the current selection's file ID, if any.
func (m Model) SelectedFileID() (int64, bool) {
	if item, ok := m.list.SelectedItem().(fileItem); ok {
		return item.file.ID, true
	}
	return 0, false
}

// SelectedFilename returns the current selection's name.
func (m Model) SelectedFilename() string {
	if item, ok := m.list.SelectedItem().(fileItem); ok {
		return item.file.Filename
	}
	return ""
}

// Confirming reports whether a delete is waiting on its y/n keypress.
func (m Model) Confirming() bool { return m.mode == modeConfirm }

// ArmDelete puts the view into delete confirmation for the selection.
// Used by the command palette's delete command.
func (m *Model) ArmDelete() bool {
	item, ok := m.list.SelectedItem().(fileItem)
	if !ok {
		return false
	}
	m.pending = item.file
	m.mode = modeConfirm
	return true
}

// OpenSelected hands the selected file to the desktop.
func (m *Model) OpenSelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(fileItem)
	if !ok {
		return nil
	}
	m.loading = true
	return tea.Batch(m.openCmd(item.file.ID), m.spinner.Tick)
}

// Refresh reloads the listing with the loading spinner up.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	return tea.Batch(m.Reload(), m.spinner.Tick)
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

func (m *Model) setFiles(files []mediadto.FileOutput) tea.Cmd {
	items := make([]list.Item, len(files))
	for i, f := range files {
		items[i] = fileItem{file: f}
	}
	cmd := m.list.SetItems(items)
	m.detail.SetContent(m.renderDetail())
	return cmd
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(fileItem)
	if !ok {
		return theme.Muted.Render("Upload a recording with :upload <path>")
	}
	f := item.file
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(f.Filename) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:       ") + fmt.Sprintf("%d", f.ID) + "\n")
	sb.WriteString(theme.Muted.Render("uploaded: ") + f.UploadedAt.Format("2006-01-02 15:04:05") + "\n")
	if m.prevID == f.ID && m.preview.Kind != "" {
		sb.WriteString("\n" + theme.Title.Render("Preview") + "  " +
			theme.Muted.Render(fmt.Sprintf("[%s, %d pages]", m.preview.Kind, m.preview.PageCount)) + "\n")
		if m.preview.Excerpt != "" {
			sb.WriteString(m.preview.Excerpt + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: open  c: chart  p: preview  d: delete  r: refresh"))
	return sb.String()
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Delete(context.Background(), id, true)
		return DeleteDoneMsg{Out: out, Err: err}
	}
}

func (m Model) openCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Open(context.Background(), id)
		return OpenDoneMsg{Out: out, Err: err}
	}
}

func (m Model) previewCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Preview(context.Background(), id)
		return PreviewLoadedMsg{FileID: id, Out: out, Err: err}
	}
}
