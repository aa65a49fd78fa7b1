// Package state holds the dashboard's last-known snapshot of every remote
// resource plus UI-only selection state. The store is owned by the TUI model
// and only ever mutated from its update loop; each successful fetch replaces
// its slice of state wholesale, so a stale late response simply overwrites
// and is itself overwritten on the next tick.
package state

import (
	"github.com/stagewatch-io/stagewatch/internal/models"
)

// Store is the single mutable state container behind the dashboard.
type Store struct {
	// Remote snapshots, wholesale-replaced per poll.
	Agents       []models.AgentInfo
	AgentOrder   []string
	Logs         []models.LogEntry
	Queues       map[string]models.QueueSnapshot
	Pending      []models.PendingItem
	Metrics      map[string]models.AgentMetric
	Improvements []models.Improvement
	Tasks        []models.Task
	System       *models.SystemStatus
	LLM          *models.LLMSettings
	Adapters     []models.LLMAdapter
	Repos        []models.Repo

	// AgentStatus is derived from the incoming log batch: for every agent
	// mentioned, the status of its most recent line in the fetched window.
	AgentStatus map[string]string

	// History is the selected agent's recent event history.
	History []models.HistoryEntry

	// Connected is the single global connectivity indicator.
	Connected bool

	drafts map[string]*Draft
}

// New creates an empty store.
func New() *Store {
	return &Store{
		Queues:      map[string]models.QueueSnapshot{},
		Metrics:     map[string]models.AgentMetric{},
		AgentStatus: map[string]string{},
		drafts:      map[string]*Draft{},
	}
}

// SetAgents replaces the stage roster.
func (s *Store) SetAgents(resp *models.AgentsResponse) {
	if resp == nil {
		return
	}
	s.Agents = resp.Agents
	s.AgentOrder = resp.Order
}

// SetLogs replaces the log window and folds it into the per-agent status
// map. A later line for the same agent overwrites an earlier one, so the
// displayed status is "status of the agent's most recent log line across
// the fetched window", not cumulative history.
func (s *Store) SetLogs(logs []models.LogEntry) {
	s.Logs = logs
	for _, entry := range logs {
		if entry.Agent == "" {
			continue
		}
		s.AgentStatus[entry.Agent] = string(entry.Status)
	}
}

// SetQueues replaces all queue snapshots.
func (s *Store) SetQueues(queues map[string]models.QueueSnapshot) {
	if queues == nil {
		queues = map[string]models.QueueSnapshot{}
	}
	s.Queues = queues
}

// SetPending replaces the pending item list.
func (s *Store) SetPending(items []models.PendingItem) {
	s.Pending = items
}

// SetMetrics replaces the per-agent metrics.
func (s *Store) SetMetrics(metrics map[string]models.AgentMetric) {
	if metrics == nil {
		metrics = map[string]models.AgentMetric{}
	}
	s.Metrics = metrics
}

// SetStatuses merges the backend's own status map over the log-derived one.
func (s *Store) SetStatuses(statuses map[string]string) {
	for agent, status := range statuses {
		s.AgentStatus[agent] = status
	}
}

// SetHistory replaces the selected agent's history. A fetch failure must
// pass nil here so the previous agent's entries never linger.
func (s *Store) SetHistory(entries []models.HistoryEntry) {
	s.History = entries
}

// QueueDepth returns the item count for one agent's queue, preferring the
// count field and falling back to the items collection.
func (s *Store) QueueDepth(agent string) int {
	snap, ok := s.Queues[models.QueuePrefix+agent]
	if !ok {
		return 0
	}
	if snap.Count > 0 {
		return snap.Count
	}
	return snap.Items.Len()
}
