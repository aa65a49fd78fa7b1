package state

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

func queueWithCount(n int) models.QueueSnapshot {
	return models.QueueSnapshot{Count: n}
}

func queueWithItems(n int) models.QueueSnapshot {
	items := models.QueueItems{}
	for i := 0; i < n; i++ {
		items.List = append(items.List, json.RawMessage(`{}`))
	}
	return models.QueueSnapshot{Items: items}
}

func TestBottleneck(t *testing.T) {
	tests := []struct {
		name      string
		queues    map[string]models.QueueSnapshot
		wantAgent string
		wantOK    bool
	}{
		{
			name:   "no queues",
			queues: map[string]models.QueueSnapshot{},
			wantOK: false,
		},
		{
			name: "max of one is not a bottleneck",
			queues: map[string]models.QueueSnapshot{
				"queue:CODE": queueWithCount(1),
				"queue:PLAN": queueWithCount(1),
			},
			wantOK: false,
		},
		{
			name: "strict maximum wins",
			queues: map[string]models.QueueSnapshot{
				"queue:CODE":   queueWithCount(5),
				"queue:PLAN":   queueWithCount(2),
				"queue:TESTQA": queueWithCount(3),
			},
			wantAgent: "CODE",
			wantOK:    true,
		},
		{
			name: "prefix is stripped",
			queues: map[string]models.QueueSnapshot{
				"queue:REFACTORING": queueWithCount(4),
			},
			wantAgent: "REFACTORING",
			wantOK:    true,
		},
		{
			name: "non-queue keys are ignored",
			queues: map[string]models.QueueSnapshot{
				"waiting:clarification": queueWithCount(9),
				"queue:DOC":             queueWithCount(2),
			},
			wantAgent: "DOC",
			wantOK:    true,
		},
		{
			name: "missing count falls back to item length",
			queues: map[string]models.QueueSnapshot{
				"queue:ARCHITECT": queueWithItems(3),
				"queue:CODE":      queueWithCount(2),
			},
			wantAgent: "ARCHITECT",
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SetQueues(tt.queues)

			agent, ok := s.Bottleneck()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && agent != tt.wantAgent {
				t.Errorf("agent = %q, want %q", agent, tt.wantAgent)
			}
		})
	}
}

func TestBottleneckTieReportsAMaxKey(t *testing.T) {
	// Tie order is unspecified; the winner just has to be one of the tied
	// maximum queues.
	s := New()
	s.SetQueues(map[string]models.QueueSnapshot{
		"queue:CODE": queueWithCount(4),
		"queue:PLAN": queueWithCount(4),
		"queue:DOC":  queueWithCount(1),
	})

	agent, ok := s.Bottleneck()
	if !ok {
		t.Fatal("expected a bottleneck")
	}
	if agent != "CODE" && agent != "PLAN" {
		t.Errorf("tie winner = %q, want one of the tied maxima", agent)
	}
}

func TestClarificationCount(t *testing.T) {
	tests := []struct {
		name   string
		queues map[string]models.QueueSnapshot
		want   int
	}{
		{"absent queue", map[string]models.QueueSnapshot{}, 0},
		{"count field", map[string]models.QueueSnapshot{
			"waiting:clarification": queueWithCount(3),
		}, 3},
		{"fallback to items", map[string]models.QueueSnapshot{
			"waiting:clarification": queueWithItems(2),
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SetQueues(tt.queues)
			if got := s.ClarificationCount(); got != tt.want {
				t.Errorf("count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFilterLogs(t *testing.T) {
	logs := []models.LogEntry{
		{Agent: "CODE", Status: models.LogSuccess, Message: "Pushed branch feature/42", Timestamp: "2026-03-01T10:00:00"},
		{Agent: "CODE", Status: models.LogFailed, Message: "compile error", Timestamp: "2026-03-01T10:01:00"},
		{Agent: "TESTQA", Status: models.LogSuccess, Message: "all suites green", Timestamp: "2026-03-01T10:02:00"},
		{Agent: "PLAN", Status: models.LogRunning, Message: "Drafting milestones", Timestamp: "2026-03-01T10:03:00"},
	}

	tests := []struct {
		name   string
		filter LogFilter
		want   []string // expected messages, in order
	}{
		{
			name:   "no filter passes everything",
			filter: LogFilter{},
			want:   []string{"Pushed branch feature/42", "compile error", "all suites green", "Drafting milestones"},
		},
		{
			name:   "search matches message case-insensitively",
			filter: LogFilter{Search: "PUSHED"},
			want:   []string{"Pushed branch feature/42"},
		},
		{
			name:   "search matches agent name",
			filter: LogFilter{Search: "testqa"},
			want:   []string{"all suites green"},
		},
		{
			name:   "search failing both fields excludes entry",
			filter: LogFilter{Search: "deploy"},
			want:   []string{},
		},
		{
			name:   "status must match exactly",
			filter: LogFilter{Status: "success"},
			want:   []string{"Pushed branch feature/42", "all suites green"},
		},
		{
			name:   "status all disables the predicate",
			filter: LogFilter{Status: "all"},
			want:   []string{"Pushed branch feature/42", "compile error", "all suites green", "Drafting milestones"},
		},
		{
			name:   "agent must match exactly",
			filter: LogFilter{Agent: "CODE"},
			want:   []string{"Pushed branch feature/42", "compile error"},
		},
		{
			name:   "all predicates combine",
			filter: LogFilter{Search: "branch", Status: "success", Agent: "CODE"},
			want:   []string{"Pushed branch feature/42"},
		},
		{
			name:   "passing two predicates but failing the third excludes",
			filter: LogFilter{Search: "branch", Status: "failed", Agent: "CODE"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SetLogs(logs)

			got := s.FilterLogs(tt.filter)
			var msgs []string
			for _, e := range got {
				msgs = append(msgs, e.Message)
			}
			if len(msgs) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(msgs, tt.want) {
				t.Errorf("filtered = %v, want %v", msgs, tt.want)
			}
		})
	}
}

func TestAgentStatusFollowsLatestLogLine(t *testing.T) {
	s := New()
	s.SetLogs([]models.LogEntry{
		{Agent: "CODE", Status: models.LogRunning, Message: "Processing evt_1"},
		{Agent: "PLAN", Status: models.LogSuccess, Message: "done"},
		{Agent: "CODE", Status: models.LogFailed, Message: "compile error"},
	})

	if got := s.AgentStatus["CODE"]; got != "failed" {
		t.Errorf("CODE status = %q, want failed (latest line wins)", got)
	}
	if got := s.AgentStatus["PLAN"]; got != "success" {
		t.Errorf("PLAN status = %q, want success", got)
	}
}

func TestAgentStatusSurvivesAgentlessWindow(t *testing.T) {
	s := New()
	s.SetLogs([]models.LogEntry{
		{Agent: "CODE", Status: models.LogSuccess, Message: "done"},
	})
	// Next poll window no longer mentions CODE; its last known status stays.
	s.SetLogs([]models.LogEntry{
		{Agent: "DOC", Status: models.LogRunning, Message: "writing"},
	})

	if got := s.AgentStatus["CODE"]; got != "success" {
		t.Errorf("CODE status = %q, want last known success", got)
	}
}

func TestDerivedViewsAreIdempotent(t *testing.T) {
	queues := map[string]models.QueueSnapshot{
		"queue:CODE": queueWithCount(4),
		"queue:PLAN": queueWithCount(4),
		"queue:DOC":  queueWithCount(2),
	}
	logs := []models.LogEntry{
		{Agent: "CODE", Status: models.LogRunning, Message: "x"},
	}

	s := New()
	var lastAgent string
	var lastLogs []models.LogEntry
	for i := 0; i < 10; i++ {
		s.SetQueues(queues)
		s.SetLogs(logs)

		agent, _ := s.Bottleneck()
		filtered := s.FilterLogs(LogFilter{Status: "running"})
		if i > 0 {
			if agent != lastAgent {
				t.Fatalf("bottleneck flickered: %q then %q", lastAgent, agent)
			}
			if !reflect.DeepEqual(filtered, lastLogs) {
				t.Fatalf("filtered logs flickered")
			}
		}
		lastAgent = agent
		lastLogs = filtered
	}
}
