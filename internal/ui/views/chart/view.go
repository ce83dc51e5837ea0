package chart

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SdReum/classmood-cli/internal/modules/analysis/domain"
	analysisdto "github.com/SdReum/classmood-cli/internal/modules/analysis/dto"
	"github.com/SdReum/classmood-cli/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the analysis use-case.
type Port interface {
	Analyze(ctx context.Context, fileID int64) (analysisdto.AnalyzeOutput, error)
	Chart(ctx context.Context, fileID int64, width, height int) (analysisdto.ChartOutput, error)
	Export(ctx context.Context, fileID int64, path string) (analysisdto.ExportOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// PlotLoadedMsg is sent when the chart geometry finishes loading.
type PlotLoadedMsg struct {
	FileID int64
	Out    analysisdto.ChartOutput
	Err    error
}

// SummaryLoadedMsg is sent when the series summary finishes loading.
type SummaryLoadedMsg struct {
	Out analysisdto.AnalyzeOutput
	Err error
}

// ExportDoneMsg is sent when a PNG export finishes.
type ExportDoneMsg struct {
	Out analysisdto.ExportOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	fileID   int64
	filename string
	plot     domain.Plot
	hasPlot  bool
	summary  analysisdto.AnalyzeOutput
	spinner  spinner.Model
	loading  bool
	notice   string
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{port: port, spinner: sp}
}

// Init is a no-op: the chart is idle until Load is called.
func (m Model) Init() tea.Cmd { return nil }

// Load fetches plot geometry and summary for one file.
func (m *Model) Load(fileID int64, filename string) tea.Cmd {
	if fileID <= 0 {
		return nil
	}
	m.fileID = fileID
	m.filename = filename
	m.hasPlot = false
	m.notice = ""
	m.loading = true
	return tea.Batch(m.plotCmd(fileID), m.summaryCmd(fileID), m.spinner.Tick)
}

// Reload refetches the chart for the file already shown, if any.
func (m *Model) Reload() tea.Cmd {
	return m.Load(m.fileID, m.filename)
}

// Export writes the current file's chart as a PNG. An empty path picks
// the default under the data dir.
func (m *Model) Export(path string) tea.Cmd {
	if m.fileID <= 0 {
		return nil
	}
	m.loading = true
	return tea.Batch(m.exportCmd(m.fileID, path), m.spinner.Tick)
}

// FileID returns the file the chart is currently showing, zero if none.
func (m Model) FileID() int64 { return m.fileID }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case PlotLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.notice = "chart: " + msg.Err.Error()
			return m, nil
		}
		if msg.Out.Points == 0 {
			m.hasPlot = false
			m.notice = "no samples in this recording"
			return m, nil
		}
		m.plot = msg.Out.Plot
		m.hasPlot = true
		m.notice = ""

	case SummaryLoadedMsg:
		if msg.Err == nil {
			m.summary = msg.Out
		}

	case ExportDoneMsg:
		m.loading = false
		if msg.Err != nil {
			m.notice = "export: " + msg.Err.Error()
		} else if msg.Out.Path == "" {
			m.notice = "nothing to export"
		} else {
			m.notice = "wrote " + msg.Out.Path
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			if m.fileID > 0 && !m.loading {
				cmds = append(cmds, m.Export(""))
			}
		case "r":
			if m.fileID > 0 && !m.loading {
				cmds = append(cmds, m.Load(m.fileID, m.filename))
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.fileID == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Pick a file in the Files tab and press c, or :chart <file-id>"))
	}
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Crunching engagement…")
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	if m.hasPlot {
		body = renderPlotGrid(m.plot, m.width-4, bodyH)
	} else {
		body = theme.Muted.Render("(nothing to draw)")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderHeader() string {
	name := m.filename
	if name == "" {
		name = fmt.Sprintf("file %d", m.fileID)
	}
	parts := []string{theme.Title.Render("Engagement: " + name)}
	if m.summary.Points > 0 {
		parts = append(parts, theme.Muted.Render(fmt.Sprintf(
			"%d samples  min %.2f  max %.2f  mean %.2f",
			m.summary.Points, m.summary.Min, m.summary.Max, m.summary.Mean)))
	}
	return strings.Join(parts, "  ") + "\n"
}

func (m Model) renderFooter() string {
	left := theme.Muted.Render("e: export png  r: reload")
	if m.notice != "" {
		left = theme.Hot.Render(m.notice) + "  " + left
	}
	if !m.hasPlot {
		return "\n" + left
	}
	ranges := fmt.Sprintf("t %s to %s s,  engagement %s to %s",
		m.plot.XTicks[0].Label, m.plot.XTicks[1].Label,
		m.plot.YTicks[0].Label, m.plot.YTicks[1].Label)
	return "\n" + theme.Muted.Render(ranges) + "   " + left
}

func (m Model) plotCmd(fileID int64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Chart(context.Background(), fileID, 0, 0)
		return PlotLoadedMsg{FileID: fileID, Out: out, Err: err}
	}
}

func (m Model) summaryCmd(fileID int64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Analyze(context.Background(), fileID)
		return SummaryLoadedMsg{Out: out, Err: err}
	}
}

func (m Model) exportCmd(fileID int64, path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Export(context.Background(), fileID, path)
		return ExportDoneMsg{Out: out, Err: err}
	}
}

// ─── rune grid ───────────────────────────────────────────────────────────────

// renderPlotGrid scales the pixel-space plot onto a gw x gh character
// grid. The plot stays authoritative for geometry; this only rescales.
func renderPlotGrid(p domain.Plot, gw, gh int) string {
	if gw < 24 {
		gw = 24
	}
	if gh < 8 {
		gh = 8
	}

	cells := make([][]rune, gh)
	for y := range cells {
		cells[y] = make([]rune, gw)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}

	pw, ph := p.Layout.Width, p.Layout.Height
	if pw < 2 {
		pw = 2
	}
	if ph < 2 {
		ph = 2
	}
	sx := func(px int) int { return clamp(px*(gw-1)/(pw-1), 0, gw-1) }
	sy := func(py int) int { return clamp(py*(gh-1)/(ph-1), 0, gh-1) }

	set := func(x, y int, r rune) {
		cells[y][x] = r
	}

	for _, axis := range p.Axes {
		x0, y0 := sx(axis.From.X), sy(axis.From.Y)
		x1, y1 := sx(axis.To.X), sy(axis.To.Y)
		if y0 == y1 {
			for x := minInt(x0, x1); x <= maxInt(x0, x1); x++ {
				set(x, y0, '─')
			}
		} else {
			for y := minInt(y0, y1); y <= maxInt(y0, y1); y++ {
				set(x0, y, '│')
			}
		}
	}
	if len(p.Axes) == 2 {
		// Origin corner where the two axes meet.
		set(sx(p.Axes[1].To.X), sy(p.Axes[1].To.Y), '└')
	}
	for _, t := range p.XTicks {
		set(sx(t.At.X), sy(t.At.Y), '┬')
	}
	for _, t := range p.YTicks {
		set(sx(t.At.X), sy(t.At.Y), '┤')
	}

	var last *[2]int
	for _, px := range p.Polyline {
		x, y := sx(px.X), sy(px.Y)
		if last != nil {
			drawSegment(cells, last[0], last[1], x, y)
		}
		last = &[2]int{x, y}
	}
	for _, px := range p.Polyline {
		set(sx(px.X), sy(px.Y), '●')
	}

	rows := make([]string, gh)
	for y, row := range cells {
		rows[y] = string(row)
	}
	return strings.Join(rows, "\n")
}

// drawSegment walks the longer delta one cell at a time.
func drawSegment(cells [][]rune, x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := maxInt(absInt(dx), absInt(dy))
	if steps == 0 {
		return
	}
	for i := 1; i < steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		if cells[y][x] == ' ' {
			cells[y][x] = '·'
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
