package state

import (
	"testing"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

func TestSetLogsFoldsAgentStatus(t *testing.T) {
	s := New()
	s.SetLogs([]models.LogEntry{
		{Agent: "CODE", Status: "running", Timestamp: "2026-08-30T10:00:00"},
		{Agent: "PLAN", Status: "success", Timestamp: "2026-08-30T10:00:01"},
		{Agent: "CODE", Status: "failed", Timestamp: "2026-08-30T10:00:02"},
		{Agent: "", Status: "info", Timestamp: "2026-08-30T10:00:03"},
	})

	if got := s.AgentStatus["CODE"]; got != "failed" {
		t.Errorf("CODE status = %q, want the later line's %q", got, "failed")
	}
	if got := s.AgentStatus["PLAN"]; got != "success" {
		t.Errorf("PLAN status = %q, want %q", got, "success")
	}
	if _, ok := s.AgentStatus[""]; ok {
		t.Error("agent-less log line should not create a status entry")
	}
}

func TestSetStatusesMergesOverLogDerived(t *testing.T) {
	s := New()
	s.SetLogs([]models.LogEntry{
		{Agent: "CODE", Status: "running"},
		{Agent: "PLAN", Status: "running"},
	})
	s.SetStatuses(map[string]string{"CODE": "idle"})

	if got := s.AgentStatus["CODE"]; got != "idle" {
		t.Errorf("CODE status = %q, want backend's %q", got, "idle")
	}
	if got := s.AgentStatus["PLAN"]; got != "running" {
		t.Errorf("PLAN status = %q, want untouched %q", got, "running")
	}
}

func TestQueueDepth(t *testing.T) {
	s := New()
	s.SetQueues(map[string]models.QueueSnapshot{
		"queue:CODE": queueWithCount(7),
		"queue:PLAN": queueWithItems(3),
	})

	if got := s.QueueDepth("CODE"); got != 7 {
		t.Errorf("QueueDepth(CODE) = %d, want count field 7", got)
	}
	if got := s.QueueDepth("PLAN"); got != 3 {
		t.Errorf("QueueDepth(PLAN) = %d, want items fallback 3", got)
	}
	if got := s.QueueDepth("DOC"); got != 0 {
		t.Errorf("QueueDepth(DOC) = %d, want 0 for missing queue", got)
	}
}

func TestSetQueuesNilResets(t *testing.T) {
	s := New()
	s.SetQueues(map[string]models.QueueSnapshot{"queue:CODE": queueWithCount(2)})
	s.SetQueues(nil)

	if got := s.QueueDepth("CODE"); got != 0 {
		t.Errorf("QueueDepth after nil replace = %d, want 0", got)
	}
}

func TestSetHistoryNilClears(t *testing.T) {
	s := New()
	s.SetHistory([]models.HistoryEntry{{EventID: "evt_1"}})
	s.SetHistory(nil)

	if len(s.History) != 0 {
		t.Errorf("History has %d entries after nil replace, want 0", len(s.History))
	}
}
