package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stagewatch-io/stagewatch/internal/client"
	"github.com/stagewatch-io/stagewatch/internal/diag"
	"github.com/stagewatch-io/stagewatch/internal/models"
	"github.com/stagewatch-io/stagewatch/internal/sheet"
	"github.com/stagewatch-io/stagewatch/internal/state"
)

// Top-level tabs.
const (
	tabPipeline = iota
	tabLogs
	tabPending
	tabStats
	tabSettings
	tabCount
)

var tabNames = []string{"Pipeline", "Logs", "Pending", "Stats", "Settings"}

// Logs sub-tabs.
const (
	logsSubLogs = iota
	logsSubTasks
)

// Settings sub-tabs.
const (
	setSubLLM = iota
	setSubServices
	setSubRepos
)

// statusFilterCycle and the agent filter cycle feed state.LogFilter.
var statusFilterCycle = []string{"all", "success", "failed", "running", "cancelled", "info"}

// Model is the root Bubbletea model for the dashboard.
type Model struct {
	client   *client.Client
	store    *state.Store
	settings *models.Settings
	sheet    *sheet.Sheet

	tab        int
	logsSubTab int
	setSubTab  int
	width      int
	height     int

	// Poll loop guard: exactly one pending tick at a time.
	polling bool

	// Pipeline tab + bottom sheet.
	agentCursor   int
	selectedAgent string
	historyCursor int
	historyDetail *models.HistoryEntry

	// Logs tab.
	searchInput  textinput.Model
	searching    bool
	statusCycle  int
	agentCycle   int
	taskCursor   int
	taskDetail   *models.TaskDetail
	tasksLoaded  bool

	// Pending tab.
	pendingCursor int
	respondArea   textarea.Model
	responding    bool
	respondItemID string
	imageInput    textinput.Model
	attachingImg  bool

	// Stats tab.
	statsScroll int

	// Settings tab.
	llmCursor  int
	llmEdits   map[string]string
	llmDirty   bool
	repoCursor int
	repoForm   *RepoForm
	debugMode  bool

	// Overlays.
	activeOverlay int
	ingestForm    *IngestForm

	// Transient status bar notice.
	notice    string
	noticeErr bool

	program *programRef
}

// NewModel creates the initial dashboard model.
func NewModel(c *client.Client, settings *models.Settings, program *programRef) Model {
	si := textinput.New()
	si.Placeholder = "search message or agent"
	si.CharLimit = 120

	ra := textarea.New()
	ra.Placeholder = "Type your answer"
	ra.SetHeight(4)
	ra.CharLimit = 4000

	ii := textinput.New()
	ii.Placeholder = "path to image file"
	ii.CharLimit = 400

	return Model{
		client:      c,
		store:       state.New(),
		settings:    settings,
		sheet:       sheet.New(sheetConfigFrom(settings)),
		searchInput: si,
		respondArea: ra,
		imageInput:  ii,
		llmEdits:    map[string]string{},
		program:     program,
	}
}

func sheetConfigFrom(settings *models.Settings) sheet.Config {
	return sheet.Config{
		CollapseThreshold: settings.Sheet.CollapseThreshold,
		ExpandThreshold:   settings.Sheet.ExpandThreshold,
		BackdropFade:      settings.Sheet.BackdropFade,
	}
}

func (m *Model) pollInterval() time.Duration {
	ms := m.settings.Backend.PollIntervalMs
	if ms <= 0 {
		ms = 1000
	}
	return time.Duration(ms) * time.Millisecond
}

func (m *Model) rowScale() int {
	scale := m.settings.Sheet.RowScale
	if scale <= 0 {
		scale = 25
	}
	return scale
}

// Init fires the initial full fetch round. The repeating poll loop starts
// as soon as the first response lands, success or failure, so an unreachable
// backend keeps being retried until it comes up.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchAgentsCmd(m.client),
		fetchLogsCmd(m.client),
		fetchQueuesCmd(m.client),
		fetchPendingCmd(m.client),
		fetchMetricsCmd(m.client),
		fetchStatusesCmd(m.client),
		fetchImprovementsCmd(m.client),
		fetchSystemCmd(m.client),
		fetchLLMCmd(m.client),
		fetchAdaptersCmd(m.client),
		fetchReposCmd(m.client),
	)
}

// startPolling schedules the first poll tick. The guard keeps exactly one
// timer alive no matter how many responses race in.
func (m *Model) startPolling() tea.Cmd {
	if m.polling {
		return nil
	}
	m.polling = true
	return pollTick(m.pollInterval())
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = min(m.width-20, 60)
		m.respondArea.SetWidth(min(m.width-8, 78))
		m.imageInput.Width = min(m.width-20, 60)
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	// ── Poll loop ──────────────────────────────────────────────────
	case PollTickMsg:
		cmds = append(cmds,
			fetchLogsCmd(m.client),
			fetchQueuesCmd(m.client),
			fetchPendingCmd(m.client),
			fetchMetricsCmd(m.client),
			fetchStatusesCmd(m.client),
			pollTick(m.pollInterval()),
		)
		// The agent roster is normally fetched once at startup; keep
		// retrying it until a round succeeds so a backend that was down
		// at launch still populates the pipeline.
		if len(m.store.AgentOrder) == 0 {
			cmds = append(cmds, fetchAgentsCmd(m.client))
		}
		return m, tea.Batch(cmds...)

	// ── Resource reads ─────────────────────────────────────────────
	case AgentsMsg:
		m.store.Connected = true
		m.store.SetAgents(msg.Resp)
		m.clampCursors()
		cmd := m.startPolling()
		return m, cmd

	case LogsMsg:
		m.store.Connected = true
		m.store.SetLogs(msg.Logs)
		cmd := m.startPolling()
		return m, cmd

	case StatusesMsg:
		m.store.Connected = true
		m.store.SetStatuses(msg.Statuses)
		cmd := m.startPolling()
		return m, cmd

	case QueuesMsg:
		m.store.Connected = true
		m.store.SetQueues(msg.Queues)
		cmd := m.startPolling()
		return m, cmd

	case PendingMsg:
		m.store.Connected = true
		m.store.SetPending(msg.Items)
		m.clampCursors()
		cmd := m.startPolling()
		return m, cmd

	case MetricsMsg:
		m.store.Connected = true
		m.store.SetMetrics(msg.Metrics)
		cmd := m.startPolling()
		return m, cmd

	case ImprovementsMsg:
		m.store.Connected = true
		m.store.Improvements = msg.Improvements
		return m, nil

	case TasksMsg:
		m.store.Connected = true
		m.store.Tasks = msg.Tasks
		m.tasksLoaded = true
		m.clampCursors()
		return m, nil

	case TaskDetailMsg:
		m.store.Connected = true
		m.taskDetail = msg.Detail
		return m, nil

	case HistoryMsg:
		// A stale response for a previously selected agent is dropped.
		if msg.Agent != m.selectedAgent {
			return m, nil
		}
		if msg.Err != nil {
			m.store.SetHistory(nil)
			return m, nil
		}
		m.store.Connected = true
		m.store.SetHistory(msg.Entries)
		if m.historyCursor >= len(msg.Entries) {
			m.historyCursor = 0
		}
		return m, nil

	case SystemMsg:
		m.store.Connected = true
		m.store.System = msg.Status
		return m, nil

	case LLMSettingsMsg:
		m.store.Connected = true
		m.store.LLM = msg.Settings
		if !m.llmDirty {
			m.llmEdits = map[string]string{}
		}
		return m, nil

	case AdaptersMsg:
		m.store.Connected = true
		m.store.Adapters = msg.Adapters
		return m, nil

	case ReposMsg:
		m.store.Connected = true
		m.store.Repos = msg.Repos
		if m.repoCursor >= len(msg.Repos) {
			m.repoCursor = 0
		}
		return m, nil

	// ── Action outcomes ────────────────────────────────────────────
	case RespondDoneMsg:
		if msg.Err != nil {
			diag.Logf("tui", "respond %s: %v", msg.ItemID, msg.Err)
			m.notice = "send failed, draft kept"
			m.noticeErr = true
			return m, clearNoticeAfter(4 * time.Second)
		}
		m.store.ClearDraft(msg.ItemID)
		if m.respondItemID == msg.ItemID {
			m.responding = false
			m.respondArea.Reset()
			m.respondArea.Blur()
		}
		m.notice = "response sent"
		cmds = append(cmds, fetchPendingCmd(m.client), clearNoticeAfter(3*time.Second))
		return m, tea.Batch(cmds...)

	case ActionDoneMsg:
		if msg.Err != nil {
			diag.Logf("tui", "%s: %v", msg.Name, msg.Err)
			m.notice = msg.Name + " failed"
			m.noticeErr = true
			return m, clearNoticeAfter(4 * time.Second)
		}
		m.notice = msg.Name + " ok"
		cmds = append(cmds, clearNoticeAfter(3*time.Second))
		switch msg.Name {
		case "approve", "debug-approve", "approve work item":
			cmds = append(cmds, fetchPendingCmd(m.client))
		case "save llm settings":
			m.llmDirty = false
			cmds = append(cmds, fetchLLMCmd(m.client))
		case "add repo", "delete repo":
			cmds = append(cmds, fetchReposCmd(m.client))
		case "restart backend", "n8n start", "n8n stop", "n8n restart":
			cmds = append(cmds, fetchSystemCmd(m.client))
		}
		return m, tea.Batch(cmds...)

	case IngestDoneMsg:
		if msg.Err != nil {
			diag.Logf("tui", "ingest: %v", msg.Err)
			m.notice = "ingest failed"
			m.noticeErr = true
			return m, clearNoticeAfter(4 * time.Second)
		}
		m.activeOverlay = overlayNone
		m.ingestForm = nil
		m.notice = "queued as " + msg.Result.EventID
		cmds = append(cmds, fetchTasksCmd(m.client, m.settings.Backend.TaskLimit), clearNoticeAfter(4*time.Second))
		return m, tea.Batch(cmds...)

	case FetchFailedMsg:
		if !client.Rejected(msg.Err) {
			m.store.Connected = false
		}
		cmd := m.startPolling()
		return m, cmd

	// ── Ambient ────────────────────────────────────────────────────
	case SettingsReloadedMsg:
		m.settings = msg.Settings
		m.sheet.SetConfig(sheetConfigFrom(msg.Settings))
		if msg.Settings.Backend.BaseURL != m.client.BaseURL() {
			m.client = client.New(msg.Settings.Backend.BaseURL)
			m.store.Connected = false
		}
		m.notice = "settings reloaded"
		return m, clearNoticeAfter(3 * time.Second)

	case ClearNoticeMsg:
		m.notice = ""
		m.noticeErr = false
		return m, nil
	}

	return m, nil
}

// clampCursors keeps list cursors in bounds after wholesale data replacement.
func (m *Model) clampCursors() {
	if n := len(m.store.AgentOrder); n > 0 && m.agentCursor >= n {
		m.agentCursor = n - 1
	}
	if n := len(m.store.Pending); m.pendingCursor >= n {
		m.pendingCursor = max(0, n-1)
	}
	if n := len(m.store.Tasks); m.taskCursor >= n {
		m.taskCursor = max(0, n-1)
	}
}

// ── Key handling ─────────────────────────────────────────────────

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Overlays capture input first.
	if m.activeOverlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	// Text-entry modes capture everything except their own exits.
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.attachingImg {
		return m.handleImageInputKey(msg)
	}
	if m.responding {
		return m.handleRespondKey(msg)
	}
	if m.repoForm != nil {
		return m.handleRepoFormKey(msg)
	}

	// Bottom sheet captures navigation while open.
	if m.sheet.State() != sheet.Closed {
		if cmd, handled := m.handleSheetKey(msg); handled {
			return cmd
		}
	}

	switch {
	case key.Matches(msg, globalKeys.Quit), msg.Type == tea.KeyCtrlC:
		m.program.Clear()
		return tea.Quit
	case key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayHelp
		return nil
	case key.Matches(msg, globalKeys.Ingest):
		m.openIngestForm()
		return nil
	case key.Matches(msg, globalKeys.Tab1):
		return m.switchTab(tabPipeline)
	case key.Matches(msg, globalKeys.Tab2):
		return m.switchTab(tabLogs)
	case key.Matches(msg, globalKeys.Tab3):
		return m.switchTab(tabPending)
	case key.Matches(msg, globalKeys.Tab4):
		return m.switchTab(tabStats)
	case key.Matches(msg, globalKeys.Tab5):
		return m.switchTab(tabSettings)
	}

	switch m.tab {
	case tabPipeline:
		return m.handlePipelineKey(msg)
	case tabLogs:
		return m.handleLogsKey(msg)
	case tabPending:
		return m.handlePendingKey(msg)
	case tabStats:
		return m.handleStatsKey(msg)
	case tabSettings:
		return m.handleSettingsKey(msg)
	}
	return nil
}

// switchTab is a pure selection-state write; entering a data sub-tab
// triggers its fetch.
func (m *Model) switchTab(tab int) tea.Cmd {
	m.tab = tab
	switch tab {
	case tabLogs:
		if m.logsSubTab == logsSubTasks {
			return fetchTasksCmd(m.client, m.settings.Backend.TaskLimit)
		}
	case tabSettings:
		return m.fetchSettingsSubTab()
	}
	return nil
}

func (m *Model) fetchSettingsSubTab() tea.Cmd {
	switch m.setSubTab {
	case setSubLLM:
		return tea.Batch(fetchLLMCmd(m.client), fetchAdaptersCmd(m.client))
	case setSubServices:
		return fetchSystemCmd(m.client)
	case setSubRepos:
		return fetchReposCmd(m.client)
	}
	return nil
}

// ── Pipeline tab + sheet ─────────────────────────────────────────

func (m *Model) handlePipelineKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, listKeys.Up):
		if m.agentCursor > 0 {
			m.agentCursor--
		}
	case key.Matches(msg, listKeys.Down):
		if m.agentCursor < len(m.store.AgentOrder)-1 {
			m.agentCursor++
		}
	case key.Matches(msg, listKeys.Enter):
		if m.agentCursor < len(m.store.AgentOrder) {
			return m.selectAgent(m.store.AgentOrder[m.agentCursor])
		}
	}
	return nil
}

// selectAgent opens (or re-opens) the bottom sheet on an agent. Re-selection
// resets to collapsed, clears the drill-down, and refetches history; the old
// entries are dropped immediately so a failed fetch leaves the list empty.
func (m *Model) selectAgent(name string) tea.Cmd {
	m.historyDetail = nil
	m.historyCursor = 0
	m.store.SetHistory(nil)

	if m.sheet.State() == sheet.Closed {
		m.sheet.Open()
	} else {
		m.sheet.Reopen()
	}
	m.selectedAgent = name
	return fetchHistoryCmd(m.client, name, m.settings.Backend.HistoryLimit)
}

func (m *Model) handleSheetKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, sheetKeys.Close):
		if m.historyDetail != nil {
			m.historyDetail = nil
			return nil, true
		}
		m.sheet.Close()
		m.selectedAgent = ""
		m.store.SetHistory(nil)
		return nil, true
	case key.Matches(msg, sheetKeys.Expand):
		m.sheet.Expand()
		return nil, true
	case key.Matches(msg, sheetKeys.Collapse):
		if m.sheet.State() == sheet.OpenExpanded {
			m.sheet.Reopen()
		} else {
			m.sheet.Close()
			m.selectedAgent = ""
			m.store.SetHistory(nil)
		}
		return nil, true
	case key.Matches(msg, listKeys.Up):
		if m.historyCursor > 0 {
			m.historyCursor--
		}
		return nil, true
	case key.Matches(msg, listKeys.Down):
		if m.historyCursor < len(m.store.History)-1 {
			m.historyCursor++
		}
		return nil, true
	case key.Matches(msg, listKeys.Enter):
		if m.historyCursor < len(m.store.History) {
			entry := m.store.History[m.historyCursor]
			m.historyDetail = &entry
			m.sheet.Expand()
		}
		return nil, true
	}
	return nil, false
}

// ── Logs tab ─────────────────────────────────────────────────────

func (m *Model) handleLogsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, subTabKeys.Next), key.Matches(msg, subTabKeys.Prev):
		m.logsSubTab = 1 - m.logsSubTab
		m.taskDetail = nil
		if m.logsSubTab == logsSubTasks {
			return fetchTasksCmd(m.client, m.settings.Backend.TaskLimit)
		}
		return nil
	}

	if m.logsSubTab == logsSubTasks {
		return m.handleTasksKey(msg)
	}

	switch {
	case key.Matches(msg, logFilterKeys.Search):
		m.searching = true
		m.searchInput.Focus()
	case key.Matches(msg, logFilterKeys.CycleStatus):
		m.statusCycle = (m.statusCycle + 1) % len(statusFilterCycle)
	case key.Matches(msg, logFilterKeys.CycleAgent):
		m.agentCycle = (m.agentCycle + 1) % (len(m.store.AgentOrder) + 1)
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEscape:
		m.searching = false
		m.searchInput.Blur()
		if msg.Type == tea.KeyEscape {
			m.searchInput.Reset()
		}
		return nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return cmd
}

func (m *Model) handleTasksKey(msg tea.KeyMsg) tea.Cmd {
	if m.taskDetail != nil {
		if key.Matches(msg, listKeys.Back) {
			m.taskDetail = nil
		}
		return nil
	}

	switch {
	case key.Matches(msg, listKeys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case key.Matches(msg, listKeys.Down):
		if m.taskCursor < len(m.store.Tasks)-1 {
			m.taskCursor++
		}
	case key.Matches(msg, listKeys.Enter):
		if m.taskCursor < len(m.store.Tasks) {
			return fetchTaskDetailCmd(m.client, m.store.Tasks[m.taskCursor].ID)
		}
	}
	return nil
}

// logFilter assembles the current filter from the three controls.
func (m *Model) logFilter() state.LogFilter {
	agent := "all"
	if m.agentCycle > 0 && m.agentCycle <= len(m.store.AgentOrder) {
		agent = m.store.AgentOrder[m.agentCycle-1]
	}
	return state.LogFilter{
		Search: m.searchInput.Value(),
		Status: statusFilterCycle[m.statusCycle],
		Agent:  agent,
	}
}

// ── Pending tab ──────────────────────────────────────────────────

func (m *Model) handlePendingKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, listKeys.Up):
		if m.pendingCursor > 0 {
			m.pendingCursor--
		}
	case key.Matches(msg, listKeys.Down):
		if m.pendingCursor < len(m.store.Pending)-1 {
			m.pendingCursor++
		}
	case key.Matches(msg, pendingKeys.Respond):
		item := m.selectedPending()
		if item != nil && item.Kind == models.PendingClarification {
			m.responding = true
			m.respondItemID = item.ID
			m.respondArea.SetValue(m.store.Draft(item.ID).Text)
			m.respondArea.Focus()
		}
	case key.Matches(msg, pendingKeys.Approve):
		switch item := m.selectedPending(); {
		case item == nil || item.Kind == models.PendingClarification:
			// Clarifications want an answer, not a rubber stamp.
		case item.Kind == models.PendingApproval:
			return approveWorkItemCmd(m.client, item.ID)
		case item.Kind == models.PendingDebug:
			return debugApproveCmd(m.client, item.ID)
		default:
			// Unknown kinds fall back to the plain pending approval route.
			return approveCmd(m.client, item.ID)
		}
	case key.Matches(msg, pendingKeys.Debug):
		if item := m.selectedPending(); item != nil && item.Kind == models.PendingDebug {
			return debugApproveCmd(m.client, item.ID)
		}
	}
	return nil
}

func (m *Model) selectedPending() *models.PendingItem {
	if m.pendingCursor < 0 || m.pendingCursor >= len(m.store.Pending) {
		return nil
	}
	return &m.store.Pending[m.pendingCursor]
}

func (m *Model) handleRespondKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, pendingKeys.CancelEdit):
		// Draft survives cancel; only a successful send clears it.
		m.store.Draft(m.respondItemID).Text = m.respondArea.Value()
		m.responding = false
		m.respondArea.Blur()
		return nil
	case key.Matches(msg, pendingKeys.Submit):
		return m.submitRespond()
	case key.Matches(msg, pendingKeys.AttachImg):
		m.store.Draft(m.respondItemID).Text = m.respondArea.Value()
		m.attachingImg = true
		m.imageInput.Focus()
		return nil
	case key.Matches(msg, pendingKeys.RemoveImg):
		draft := m.store.Draft(m.respondItemID)
		if n := len(draft.Images); n > 0 {
			m.store.UnstageImage(m.respondItemID, draft.Images[n-1].ID)
		}
		return nil
	}
	var cmd tea.Cmd
	m.respondArea, cmd = m.respondArea.Update(msg)
	return cmd
}

func (m *Model) submitRespond() tea.Cmd {
	text := strings.TrimSpace(m.respondArea.Value())
	draft := m.store.Draft(m.respondItemID)
	draft.Text = text
	if text == "" && len(draft.Images) == 0 {
		m.notice = "nothing to send"
		m.noticeErr = true
		return clearNoticeAfter(3 * time.Second)
	}
	return respondCmd(m.client, m.respondItemID, text, draft.Images)
}

func (m *Model) handleImageInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEscape:
		m.attachingImg = false
		m.imageInput.Reset()
		m.imageInput.Blur()
		return nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.imageInput.Value())
		m.attachingImg = false
		m.imageInput.Reset()
		m.imageInput.Blur()
		if path == "" {
			return nil
		}
		if err := m.store.StageImage(m.respondItemID, path); err != nil {
			diag.Logf("tui", "stage image: %v", err)
			m.notice = "could not read image"
			m.noticeErr = true
			return clearNoticeAfter(4 * time.Second)
		}
		return nil
	}
	var cmd tea.Cmd
	m.imageInput, cmd = m.imageInput.Update(msg)
	return cmd
}

// ── Stats tab ────────────────────────────────────────────────────

func (m *Model) handleStatsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, listKeys.Up):
		if m.statsScroll > 0 {
			m.statsScroll--
		}
	case key.Matches(msg, listKeys.Down):
		m.statsScroll++
	}
	return nil
}

// ── Settings tab ─────────────────────────────────────────────────

func (m *Model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, subTabKeys.Next):
		m.setSubTab = (m.setSubTab + 1) % 3
		return m.fetchSettingsSubTab()
	case key.Matches(msg, subTabKeys.Prev):
		m.setSubTab = (m.setSubTab + 2) % 3
		return m.fetchSettingsSubTab()
	}

	switch m.setSubTab {
	case setSubLLM:
		return m.handleLLMKey(msg)
	case setSubServices:
		return m.handleServicesKey(msg)
	case setSubRepos:
		return m.handleReposKey(msg)
	}
	return nil
}

func (m *Model) handleLLMKey(msg tea.KeyMsg) tea.Cmd {
	agents := m.llmAgents()
	switch {
	case key.Matches(msg, listKeys.Up):
		if m.llmCursor > 0 {
			m.llmCursor--
		}
	case key.Matches(msg, listKeys.Down):
		if m.llmCursor < len(agents)-1 {
			m.llmCursor++
		}
	case key.Matches(msg, settingsViewKeys.CycleValue):
		if m.llmCursor < len(agents) && len(m.store.Adapters) > 0 {
			dir := 1
			if s := msg.String(); s == "left" || s == "h" {
				dir = -1
			}
			agent := agents[m.llmCursor]
			m.llmEdits[agent] = m.cycleAdapter(agent, dir)
			m.llmDirty = true
		}
	case key.Matches(msg, settingsViewKeys.Save):
		if m.llmDirty {
			return saveLLMCmd(m.client, m.effectiveLLM())
		}
	}
	return nil
}

// llmAgents lists the agents shown in the LLM form, preferring pipeline
// order and falling back to whatever the settings payload names.
func (m *Model) llmAgents() []string {
	if len(m.store.AgentOrder) > 0 {
		return m.store.AgentOrder
	}
	if m.store.LLM == nil {
		return nil
	}
	agents := make([]string, 0, len(m.store.LLM.Settings))
	for agent := range m.store.LLM.Settings {
		agents = append(agents, agent)
	}
	sort.Strings(agents)
	return agents
}

func (m *Model) currentAdapter(agent string) string {
	if v, ok := m.llmEdits[agent]; ok {
		return v
	}
	if m.store.LLM != nil {
		if v, ok := m.store.LLM.Settings[agent]; ok {
			return v
		}
		if v, ok := m.store.LLM.Defaults[agent]; ok {
			return v
		}
	}
	return ""
}

func (m *Model) cycleAdapter(agent string, dir int) string {
	current := m.currentAdapter(agent)
	idx := 0
	for i, a := range m.store.Adapters {
		if a.Name == current {
			idx = i
			break
		}
	}
	n := len(m.store.Adapters)
	return m.store.Adapters[((idx+dir)%n+n)%n].Name
}

// effectiveLLM merges local edits over the fetched assignments.
func (m *Model) effectiveLLM() map[string]string {
	out := map[string]string{}
	if m.store.LLM != nil {
		for agent, adapter := range m.store.LLM.Settings {
			out[agent] = adapter
		}
	}
	for agent, adapter := range m.llmEdits {
		out[agent] = adapter
	}
	return out
}

func (m *Model) handleServicesKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, settingsViewKeys.Restart):
		return systemRestartCmd(m.client)
	case key.Matches(msg, settingsViewKeys.N8NStart):
		return n8nActionCmd(m.client, "start")
	case key.Matches(msg, settingsViewKeys.N8NStop):
		return n8nActionCmd(m.client, "stop")
	case key.Matches(msg, settingsViewKeys.N8NRestart):
		return n8nActionCmd(m.client, "restart")
	case key.Matches(msg, settingsViewKeys.ToggleDbg):
		m.debugMode = !m.debugMode
		return setDebugCmd(m.client, m.debugMode)
	}
	return nil
}

func (m *Model) handleReposKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, listKeys.Up):
		if m.repoCursor > 0 {
			m.repoCursor--
		}
	case key.Matches(msg, listKeys.Down):
		if m.repoCursor < len(m.store.Repos)-1 {
			m.repoCursor++
		}
	case key.Matches(msg, settingsViewKeys.Add):
		m.repoForm = NewRepoForm(min(m.width-10, 70))
	case key.Matches(msg, settingsViewKeys.Delete):
		if m.repoCursor < len(m.store.Repos) {
			return deleteRepoCmd(m.client, m.store.Repos[m.repoCursor].Name)
		}
	}
	return nil
}

func (m *Model) handleRepoFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, overlayKeys.Cancel):
		m.repoForm = nil
		return nil
	case key.Matches(msg, overlayKeys.Tab):
		m.repoForm.FocusNext()
		return nil
	case key.Matches(msg, overlayKeys.Save):
		repo, ok := m.repoForm.Repo()
		if !ok {
			m.notice = "name and url are required"
			m.noticeErr = true
			return clearNoticeAfter(3 * time.Second)
		}
		m.repoForm = nil
		return addRepoCmd(m.client, repo)
	}
	m.repoForm.UpdateFocused(msg)
	return nil
}

// ── Overlays ─────────────────────────────────────────────────────

func (m *Model) openIngestForm() {
	m.ingestForm = NewIngestForm(min(m.width-10, 70))
	m.activeOverlay = overlayIngest
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	switch m.activeOverlay {
	case overlayHelp:
		if key.Matches(msg, overlayKeys.Cancel) || key.Matches(msg, globalKeys.Help) {
			m.activeOverlay = overlayNone
		}
		return nil

	case overlayIngest:
		switch {
		case key.Matches(msg, overlayKeys.Cancel):
			m.activeOverlay = overlayNone
			m.ingestForm = nil
			return nil
		case key.Matches(msg, overlayKeys.Save):
			prompt := m.ingestForm.Prompt()
			if prompt == "" {
				m.notice = "prompt is required"
				m.noticeErr = true
				return clearNoticeAfter(3 * time.Second)
			}
			return ingestCmd(m.client, prompt)
		}
		m.ingestForm.Update(msg)
		return nil
	}
	return nil
}

// ── Mouse handling ───────────────────────────────────────────────

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	// Sheet gestures take priority while the sheet is open.
	if m.sheet.State() != sheet.Closed {
		if cmd, handled := m.handleSheetMouse(msg); handled {
			return cmd
		}
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
		return m.clickHeaderTab(msg.X)
	}
	return nil
}

// handleSheetMouse maps terminal rows to gesture units via RowScale so the
// original drag thresholds keep their meaning.
func (m *Model) handleSheetMouse(msg tea.MouseMsg) (tea.Cmd, bool) {
	top := m.sheetTopRow()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil, false
		}
		if msg.Y >= top {
			m.sheet.DragStart(msg.Y * m.rowScale())
			return nil, true
		}
		// Tap on the backdrop closes the sheet, but not mid-drag.
		if m.sheet.BackdropInteractive() {
			m.sheet.Close()
			m.selectedAgent = ""
			m.store.SetHistory(nil)
			return nil, true
		}
		return nil, true

	case tea.MouseActionMotion:
		if m.sheet.Dragging() {
			m.sheet.DragMove(msg.Y * m.rowScale())
			return nil, true
		}

	case tea.MouseActionRelease:
		if m.sheet.Dragging() {
			m.sheet.DragEnd()
			if m.sheet.State() == sheet.Closed {
				m.selectedAgent = ""
				m.store.SetHistory(nil)
			}
			return nil, true
		}
	}
	return nil, false
}

func (m *Model) clickHeaderTab(x int) tea.Cmd {
	// Header layout: " Pipeline | Logs | Pending | Stats | Settings".
	col := 1
	for i := range tabNames {
		w := lipgloss.Width(m.tabLabel(i))
		if x >= col && x < col+w {
			return m.switchTab(i)
		}
		col += w + 3 // " | "
	}
	return nil
}

