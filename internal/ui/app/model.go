package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	analysisdto "github.com/SdReum/classmood-cli/internal/modules/analysis/dto"
	insightsdto "github.com/SdReum/classmood-cli/internal/modules/insights/dto"
	mediadto "github.com/SdReum/classmood-cli/internal/modules/media/dto"
	plugindto "github.com/SdReum/classmood-cli/internal/modules/plugin/dto"
	"github.com/SdReum/classmood-cli/internal/modules/session/domain"
	sessiondto "github.com/SdReum/classmood-cli/internal/modules/session/dto"
	"github.com/SdReum/classmood-cli/internal/ui/components"
	"github.com/SdReum/classmood-cli/internal/ui/theme"
	activityview "github.com/SdReum/classmood-cli/internal/ui/views/activity"
	authview "github.com/SdReum/classmood-cli/internal/ui/views/auth"
	chartview "github.com/SdReum/classmood-cli/internal/ui/views/chart"
	filesview "github.com/SdReum/classmood-cli/internal/ui/views/files"
	insightsview "github.com/SdReum/classmood-cli/internal/ui/views/insights"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sessionPort interface {
	Check(ctx context.Context, path string) (sessiondto.CheckOutput, error)
	Login(ctx context.Context, username, password string) (sessiondto.LoginOutput, error)
	Register(ctx context.Context, username, password string) (sessiondto.RegisterOutput, error)
	Logout(ctx context.Context) (sessiondto.LogoutOutput, error)
	CurrentUser(ctx context.Context) (sessiondto.CurrentUserOutput, error)
}

type mediaPort interface {
	Upload(ctx context.Context, paths []string) (mediadto.UploadOutput, error)
	List(ctx context.Context, cached bool) ([]mediadto.FileOutput, error)
	Delete(ctx context.Context, id int64, confirmed bool) (mediadto.DeleteOutput, error)
	Open(ctx context.Context, id int64) (mediadto.OpenOutput, error)
	Preview(ctx context.Context, id int64) (mediadto.PreviewOutput, error)
}

type analysisPort interface {
	Analyze(ctx context.Context, fileID int64) (analysisdto.AnalyzeOutput, error)
	Chart(ctx context.Context, fileID int64, width, height int) (analysisdto.ChartOutput, error)
	Export(ctx context.Context, fileID int64, path string) (analysisdto.ExportOutput, error)
}

type insightsPort interface {
	Top(ctx context.Context, limit int) ([]insightsdto.SummaryOutput, error)
	ForFile(ctx context.Context, fileID int64) (insightsdto.SummaryOutput, error)
}

type activityPort interface {
	Tail(ctx context.Context, limit int) ([]activitydto.EntryOutput, error)
}

type pluginPort interface {
	Run(ctx context.Context, input plugindto.RunInput) (plugindto.RunOutput, error)
}

// ─── ui state ────────────────────────────────────────────────────────────────

// uiState is the top-level screen the shell is showing. The guard's
// decision on startup picks the first one.
type uiState int

const (
	stateChecking uiState = iota
	stateAuth
	stateTabs
)

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabFiles tabID = iota
	tabChart
	tabInsights
	tabActivity
	tabCount
)

var tabLabels = [tabCount]string{
	"Files", "Chart", "Insights", "Activity",
}

// ─── async messages ───────────────────────────────────────────────────────────

type guardCheckedMsg struct {
	out sessiondto.CheckOutput
	err error
}

type userLoadedMsg struct {
	username string
}

type loggedOutMsg struct {
	out sessiondto.LogoutOutput
	err error
}

type uploadDoneMsg struct {
	out mediadto.UploadOutput
	err error
}

type pluginRunDoneMsg struct {
	out plugindto.RunOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Open    key.Binding
	Chart   key.Binding
	Delete  key.Binding
	Preview key.Binding
	Refresh key.Binding
	Export  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open file")),
		Chart:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chart file")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete file")),
		Preview: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview file")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export png")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Open, k.Chart},
		{k.Delete, k.Preview, k.Refresh, k.Export},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the auth/tabs state
// machine, tab routing, the help overlay, and the command palette. All
// business logic is delegated to port interfaces; all rendering is
// delegated to sub-views.
type Model struct {
	// ports used at this orchestration level only
	session sessionPort
	media   mediaPort
	plugin  pluginPort

	// sub-views
	authView     authview.Model
	filesView    filesview.Model
	chartView    chartview.Model
	insightsView insightsview.Model
	activityView activityview.Model

	// global UI state
	state     uiState
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	username  string
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	session sessionPort,
	media mediaPort,
	analysis analysisPort,
	insights insightsPort,
	activity activityPort,
	plugin pluginPort,
) Model {
	h := help.New()
	h.ShowAll = true

	return Model{
		session:      session,
		media:        media,
		plugin:       plugin,
		authView:     authview.New(authBridge{p: session}),
		filesView:    filesview.New(filesBridge{p: media}),
		chartView:    chartview.New(analysis),
		insightsView: insightsview.New(insights),
		activityView: activityview.New(activity),
		state:        stateChecking,
		activeTab:    tabFiles,
		keys:         defaultKeys(),
		help:         h,
		palette:      components.NewPalette(),
		status:       "checking session",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkCmd(), m.authView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case guardCheckedMsg:
		return m.applyGuard(msg)

	case userLoadedMsg:
		m.username = msg.username
		return m, nil

	case loggedOutMsg:
		return m.applyLogout(msg)

	case uploadDoneMsg:
		if msg.err != nil {
			m.status = "upload: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("uploaded %d file(s)", len(msg.out.Files))
		cmd := m.filesView.Refresh()
		return m, cmd

	case pluginRunDoneMsg:
		if msg.err != nil {
			m.status = "plugin: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("plugin %s:%s exit=%d", msg.out.PluginName, msg.out.CommandID, msg.out.ExitCode)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	// Auth results flow through the top level so the state machine can
	// leave the sign-in screen.
	case authview.LoginDoneMsg:
		if msg.Err == nil {
			m.username = msg.Out.Username
			m.status = "signed in as " + msg.Out.Username
			return m.enterTabs()
		}
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		return m, cmd

	case authview.RegisterDoneMsg:
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		return m, cmd

	// View results are routed to their owning view regardless of the
	// active tab, so background loads are never lost.
	case filesview.LoadedMsg:
		var cmd tea.Cmd
		m.filesView, cmd = m.filesView.Update(msg)
		return m, cmd

	case filesview.DeleteDoneMsg:
		if msg.Err != nil {
			m.status = "delete: " + msg.Err.Error()
		} else if msg.Out.Deleted {
			m.status = "deleted, list refreshed"
		}
		var cmd tea.Cmd
		m.filesView, cmd = m.filesView.Update(msg)
		return m, cmd

	case filesview.OpenDoneMsg:
		if msg.Err != nil {
			m.status = "open: " + msg.Err.Error()
		} else {
			m.status = "opened " + msg.Out.Path
		}
		var cmd tea.Cmd
		m.filesView, cmd = m.filesView.Update(msg)
		return m, cmd

	case filesview.PreviewLoadedMsg:
		if msg.Err != nil {
			m.status = "preview: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.filesView, cmd = m.filesView.Update(msg)
		return m, cmd

	case chartview.PlotLoadedMsg, chartview.SummaryLoadedMsg:
		var cmd tea.Cmd
		m.chartView, cmd = m.chartView.Update(msg)
		return m, cmd

	case chartview.ExportDoneMsg:
		if msg.Err != nil {
			m.status = "export: " + msg.Err.Error()
		} else if msg.Out.Path != "" {
			m.status = "wrote " + msg.Out.Path
		}
		var cmd tea.Cmd
		m.chartView, cmd = m.chartView.Update(msg)
		return m, cmd

	case insightsview.TopLoadedMsg, insightsview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.insightsView, cmd = m.insightsView.Update(msg)
		return m, cmd

	case activityview.TailLoadedMsg:
		var cmd tea.Cmd
		m.activityView, cmd = m.activityView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.state != stateTabs {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.authView, cmd = m.authView.Update(msg)
			return m, cmd
		}

		if m.showHelp {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "?", "esc":
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the sub-view while it is capturing input.
		if m.subViewCapturing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "enter":
			if m.activeTab == tabFiles {
				if cmd := m.filesView.OpenSelected(); cmd != nil {
					return m, cmd
				}
			}
		case "c":
			if m.activeTab == tabFiles {
				if id, ok := m.filesView.SelectedFileID(); ok {
					name := m.filesView.SelectedFilename()
					cmd := m.chartView.Load(id, name)
					m.activeTab = tabChart
					m.status = "charting " + name
					return m, cmd
				}
			}
		}
	}

	if m.state != stateTabs {
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		return m, cmd
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabFiles:
		m.filesView, tabCmd = m.filesView.Update(msg)
	case tabChart:
		m.chartView, tabCmd = m.chartView.Update(msg)
	case tabInsights:
		m.insightsView, tabCmd = m.insightsView.Update(msg)
	case tabActivity:
		m.activityView, tabCmd = m.activityView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.state == stateChecking:
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, theme.Muted.Render("checking session…"))
	case m.state == stateAuth:
		content = m.authView.View()
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabFiles:
		return m.filesView.View()
	case tabChart:
		return m.chartView.View()
	case tabInsights:
		return m.insightsView.View()
	case tabActivity:
		return m.activityView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	if m.state != stateTabs {
		bar := theme.Title.Render("classmood") + "  " + theme.Muted.Render("lecture engagement")
		return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
	}
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "classmood  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.username != "" {
		left = theme.Hot.Render("● "+m.username) + "  " + left
	}
	right := theme.Muted.Render("ctrl+c:quit")
	if m.state == stateTabs {
		right = theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── state transitions ────────────────────────────────────────────────────────

func (m Model) applyGuard(msg guardCheckedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = stateAuth
		m.status = "session check: " + msg.err.Error()
		return m, nil
	}
	if msg.out.TokenCleared {
		if msg.out.BootChanged {
			m.status = "server restarted, sign in again"
		} else {
			m.status = "session expired, sign in again"
		}
	}
	switch {
	case msg.out.State == domain.StateShowPrivateContent:
		m.status = "ready"
		return m.enterTabs()
	case msg.out.State == domain.StateRedirecting &&
		domain.ClassifyPage(msg.out.TargetPath).Kind == domain.PagePrivate:
		// A redirect into the private area only happens with a live token.
		m.status = "ready"
		return m.enterTabs()
	}
	m.state = stateAuth
	return m, nil
}

func (m Model) enterTabs() (tea.Model, tea.Cmd) {
	m.state = stateTabs
	m.activeTab = tabFiles
	return m, tea.Batch(
		m.filesView.Init(),
		m.insightsView.Init(),
		m.activityView.Init(),
		m.loadUserCmd(),
	)
}

func (m Model) applyLogout(msg loggedOutMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "logout: " + msg.err.Error()
		return m, nil
	}
	m.state = stateAuth
	m.username = ""
	if msg.out.HadSession {
		m.status = "signed out"
	} else {
		m.status = "no active session"
	}
	m.authView = authview.New(authBridge{p: m.session})
	return m, m.authView.Init()
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "upload":
		if len(parts) < 2 {
			m.status = "usage: upload <path>"
			return m, nil
		}
		path := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		m.status = "uploading " + path
		return m, m.uploadCmd([]string{path})

	case "delete":
		if !m.filesView.ArmDelete() {
			m.status = "no file selected"
			return m, nil
		}
		m.activeTab = tabFiles
		return m, nil

	case "refresh":
		cmd := m.refreshActive()
		return m, cmd

	case "chart":
		if len(parts) < 2 {
			m.status = "usage: chart <file-id>"
			return m, nil
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || id <= 0 {
			m.status = "invalid file id"
			return m, nil
		}
		cmd := m.chartView.Load(id, "")
		m.activeTab = tabChart
		return m, cmd

	case "export":
		if m.chartView.FileID() == 0 {
			m.status = "open a chart first"
			return m, nil
		}
		path := ""
		if len(parts) >= 2 {
			path = strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		}
		m.activeTab = tabChart
		cmd := m.chartView.Export(path)
		return m, cmd

	case "open":
		cmd := m.filesView.OpenSelected()
		if cmd == nil {
			m.status = "no file selected"
			return m, nil
		}
		m.activeTab = tabFiles
		return m, cmd

	case "plugin:run":
		if len(parts) < 3 {
			m.status = "usage: plugin:run <name> <command>"
			return m, nil
		}
		var fileID int64
		if id, ok := m.filesView.SelectedFileID(); ok {
			fileID = id
		} else if id := m.chartView.FileID(); id > 0 {
			fileID = id
		}
		m.status = fmt.Sprintf("running %s:%s", parts[1], parts[2])
		return m, m.pluginRunCmd(plugindto.RunInput{
			PluginName: parts[1],
			CommandID:  parts[2],
			FileID:     fileID,
		})

	case "logout":
		return m, m.logoutCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCapturing reports whether the active tab needs raw key input,
// either for a list filter or a pending delete confirmation.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabFiles:
		return m.filesView.Filtering() || m.filesView.Confirming()
	case tabInsights:
		return m.insightsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.authView, _ = m.authView.Update(sz)
	m.filesView, _ = m.filesView.Update(sz)
	m.chartView, _ = m.chartView.Update(sz)
	m.insightsView, _ = m.insightsView.Update(sz)
	m.activityView, _ = m.activityView.Update(sz)
}

func (m *Model) refreshActive() tea.Cmd {
	switch m.activeTab {
	case tabFiles:
		return m.filesView.Refresh()
	case tabChart:
		return m.chartView.Reload()
	case tabInsights:
		return m.insightsView.Refresh()
	case tabActivity:
		return m.activityView.Refresh()
	}
	return nil
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) checkCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Check(context.Background(), domain.PathUpload)
		return guardCheckedMsg{out: out, err: err}
	}
}

func (m Model) loadUserCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.CurrentUser(context.Background())
		if err != nil {
			// Best effort: the status bar simply shows no name.
			return userLoadedMsg{}
		}
		return userLoadedMsg{username: out.Username}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Logout(context.Background())
		return loggedOutMsg{out: out, err: err}
	}
}

func (m Model) uploadCmd(paths []string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.media.Upload(context.Background(), paths)
		return uploadDoneMsg{out: out, err: err}
	}
}

func (m Model) pluginRunCmd(input plugindto.RunInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.plugin.Run(context.Background(), input)
		return pluginRunDoneMsg{out: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type authBridge struct{ p sessionPort }

func (b authBridge) Login(ctx context.Context, username, password string) (sessiondto.LoginOutput, error) {
	return b.p.Login(ctx, username, password)
}
func (b authBridge) Register(ctx context.Context, username, password string) (sessiondto.RegisterOutput, error) {
	return b.p.Register(ctx, username, password)
}

type filesBridge struct{ p mediaPort }

func (b filesBridge) List(ctx context.Context) ([]mediadto.FileOutput, error) {
	return b.p.List(ctx, false)
}
func (b filesBridge) Delete(ctx context.Context, id int64, confirmed bool) (mediadto.DeleteOutput, error) {
	return b.p.Delete(ctx, id, confirmed)
}
func (b filesBridge) Open(ctx context.Context, id int64) (mediadto.OpenOutput, error) {
	return b.p.Open(ctx, id)
}
func (b filesBridge) Preview(ctx context.Context, id int64) (mediadto.PreviewOutput, error) {
	return b.p.Preview(ctx, id)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
