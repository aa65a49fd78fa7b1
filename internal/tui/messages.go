package tui

import (
	"github.com/stagewatch-io/stagewatch/internal/models"
)

// AgentsMsg carries the stage roster from GET /agents.
type AgentsMsg struct {
	Resp *models.AgentsResponse
}

// LogsMsg carries the log window from GET /agent/logs.
type LogsMsg struct {
	Logs []models.LogEntry
}

// StatusesMsg carries the backend's per-agent status map.
type StatusesMsg struct {
	Statuses map[string]string
}

// QueuesMsg carries all queue snapshots.
type QueuesMsg struct {
	Queues map[string]models.QueueSnapshot
}

// PendingMsg carries the human-in-the-loop item list.
type PendingMsg struct {
	Items []models.PendingItem
}

// MetricsMsg carries per-agent performance counters.
type MetricsMsg struct {
	Metrics map[string]models.AgentMetric
}

// ImprovementsMsg carries recent improvement suggestions.
type ImprovementsMsg struct {
	Improvements []models.Improvement
}

// TasksMsg carries the recent pipeline run list.
type TasksMsg struct {
	Tasks []models.Task
}

// TaskDetailMsg carries one run with its stage events.
type TaskDetailMsg struct {
	Detail *models.TaskDetail
}

// HistoryMsg carries one agent's recent event history. Err is set on fetch
// failure; the handler then empties the history rather than keeping the
// previous agent's entries.
type HistoryMsg struct {
	Agent   string
	Entries []models.HistoryEntry
	Err     error
}

// SystemMsg carries backend/n8n service status.
type SystemMsg struct {
	Status *models.SystemStatus
}

// LLMSettingsMsg carries the per-agent adapter assignments.
type LLMSettingsMsg struct {
	Settings *models.LLMSettings
}

// AdaptersMsg carries the adapter catalog.
type AdaptersMsg struct {
	Adapters []models.LLMAdapter
}

// ReposMsg carries the registered repositories.
type ReposMsg struct {
	Repos []models.Repo
}

// RespondDoneMsg reports the outcome of an upload+respond round trip for one
// pending item.
type RespondDoneMsg struct {
	ItemID string
	Err    error
}

// ActionDoneMsg reports the outcome of a fire-and-forget action (approve,
// debug-approve, system controls, settings writes).
type ActionDoneMsg struct {
	Name string
	Err  error
}

// IngestDoneMsg reports the outcome of submitting a new task prompt.
type IngestDoneMsg struct {
	Result *models.IngestResult
	Err    error
}

// FetchFailedMsg reports a failed resource read. Transport failures flip the
// connectivity indicator; backend rejections do not.
type FetchFailedMsg struct {
	Resource string
	Err      error
}

// PollTickMsg drives the repeating poll round.
type PollTickMsg struct{}

// SettingsReloadedMsg is sent by the fsnotify watcher goroutine when the
// settings file changes on disk.
type SettingsReloadedMsg struct {
	Settings *models.Settings
}

// ClearNoticeMsg clears the transient status bar notice.
type ClearNoticeMsg struct{}
