package state

import (
	"sort"
	"strings"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

// Bottleneck scans all queue:-prefixed snapshots and returns the agent whose
// queue holds the strict maximum item count, but only when that maximum
// exceeds one. Keys are walked in sorted order so repeated polls over
// unchanged data yield the same answer; which agent wins an exact tie is
// otherwise unspecified.
func (s *Store) Bottleneck() (string, bool) {
	keys := make([]string, 0, len(s.Queues))
	for key := range s.Queues {
		if strings.HasPrefix(key, models.QueuePrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	best := ""
	bestCount := 0
	for _, key := range keys {
		snap := s.Queues[key]
		count := snap.Count
		if count == 0 {
			count = snap.Items.Len()
		}
		if count > bestCount {
			bestCount = count
			best = strings.TrimPrefix(key, models.QueuePrefix)
		}
	}

	if bestCount <= 1 {
		return "", false
	}
	return best, true
}

// ClarificationCount reads the waiting:clarification queue's count field,
// falling back to counting its items collection when the field is absent.
func (s *Store) ClarificationCount() int {
	snap, ok := s.Queues[models.ClarificationQueue]
	if !ok {
		return 0
	}
	if snap.Count > 0 {
		return snap.Count
	}
	return snap.Items.Len()
}

// LogFilter is the current log view filter. "all" (or empty) disables the
// status and agent predicates.
type LogFilter struct {
	Search string
	Status string
	Agent  string
}

// Matches reports whether one entry passes all three predicates: the search
// substring (case-insensitive, against message or agent name), the exact
// status, and the exact agent.
func (f LogFilter) Matches(entry models.LogEntry) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(entry.Message), needle) &&
			!strings.Contains(strings.ToLower(entry.Agent), needle) {
			return false
		}
	}
	if f.Status != "" && f.Status != "all" && string(entry.Status) != f.Status {
		return false
	}
	if f.Agent != "" && f.Agent != "all" && entry.Agent != f.Agent {
		return false
	}
	return true
}

// FilterLogs recomputes the filtered view from the full log list. No
// incremental index: the list is small and replaced wholesale each poll.
func (s *Store) FilterLogs(f LogFilter) []models.LogEntry {
	out := make([]models.LogEntry, 0, len(s.Logs))
	for _, entry := range s.Logs {
		if f.Matches(entry) {
			out = append(out, entry)
		}
	}
	return out
}
