package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stagewatch-io/stagewatch/internal/client"
	"github.com/stagewatch-io/stagewatch/internal/models"
	"github.com/stagewatch-io/stagewatch/internal/sheet"
)

func newTestModel() Model {
	return NewModel(client.New("http://localhost:1"), models.NewSettings(), &programRef{})
}

func update(t *testing.T, m Model, msg interface{}) (Model, bool) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd != nil
}

func TestFirstResponseStartsExactlyOnePollTimer(t *testing.T) {
	m := newTestModel()

	m, scheduled := update(t, m, LogsMsg{})
	if !scheduled {
		t.Fatal("first resource response should schedule the poll tick")
	}
	if !m.polling {
		t.Fatal("polling guard should be set after first response")
	}

	_, scheduled = update(t, m, QueuesMsg{})
	if scheduled {
		t.Error("a second resource response must not schedule another timer")
	}
}

func TestFailedFirstRoundStillStartsPolling(t *testing.T) {
	m := newTestModel()
	m.store.Connected = true

	m, scheduled := update(t, m, FetchFailedMsg{Resource: "logs", Err: errors.New("connection refused")})
	if !scheduled {
		t.Fatal("a failed first response must still schedule the poll tick")
	}
	if !m.polling {
		t.Fatal("polling guard should be set after a failed response")
	}
	if m.store.Connected {
		t.Error("transport failure should mark the store disconnected")
	}

	_, scheduled = update(t, m, FetchFailedMsg{Resource: "queues", Err: errors.New("connection refused")})
	if scheduled {
		t.Error("further failures must not schedule another timer")
	}
}

func TestStaleHistoryResponseIsDropped(t *testing.T) {
	m := newTestModel()
	m.selectedAgent = "CODE"

	m, _ = update(t, m, HistoryMsg{
		Agent:   "PLAN",
		Entries: []models.HistoryEntry{{EventID: "evt_old"}},
	})
	if len(m.store.History) != 0 {
		t.Errorf("stale history applied: %d entries", len(m.store.History))
	}

	m, _ = update(t, m, HistoryMsg{
		Agent:   "CODE",
		Entries: []models.HistoryEntry{{EventID: "evt_new"}},
	})
	if len(m.store.History) != 1 || m.store.History[0].EventID != "evt_new" {
		t.Errorf("matching history not applied: %+v", m.store.History)
	}
}

func TestHistoryFetchFailureEmptiesList(t *testing.T) {
	m := newTestModel()
	m.selectedAgent = "CODE"
	m.store.SetHistory([]models.HistoryEntry{{EventID: "evt_prev"}})

	m, _ = update(t, m, HistoryMsg{Agent: "CODE", Err: errors.New("boom")})
	if len(m.store.History) != 0 {
		t.Errorf("failed fetch left %d stale entries", len(m.store.History))
	}
}

func TestOnlyTransportFailuresDisconnect(t *testing.T) {
	m := newTestModel()
	m.store.Connected = true

	m, _ = update(t, m, FetchFailedMsg{
		Resource: "pending",
		Err:      &client.RequestError{StatusCode: 404, Message: "not found"},
	})
	if !m.store.Connected {
		t.Error("a backend rejection must not flip the connectivity indicator")
	}

	m, _ = update(t, m, FetchFailedMsg{Resource: "pending", Err: errors.New("connection refused")})
	if m.store.Connected {
		t.Error("a transport failure must flip the connectivity indicator")
	}
}

func TestRespondOutcomeDraftHandling(t *testing.T) {
	m := newTestModel()
	m.store.Draft("itm_1").Text = "my answer"
	m.store.Draft("itm_2").Text = "other answer"

	// Failure keeps the draft for retry.
	m, _ = update(t, m, RespondDoneMsg{ItemID: "itm_1", Err: errors.New("boom")})
	if !m.store.HasDraft("itm_1") {
		t.Fatal("failed respond must keep the draft")
	}

	// Success clears only that item's draft.
	m, refetch := update(t, m, RespondDoneMsg{ItemID: "itm_1"})
	if m.store.HasDraft("itm_1") {
		t.Error("successful respond must clear the item's draft")
	}
	if !m.store.HasDraft("itm_2") {
		t.Error("other items' drafts must survive")
	}
	if !refetch {
		t.Error("successful respond should trigger a pending refetch")
	}
}

func TestSelectAgentResetsSheetState(t *testing.T) {
	m := newTestModel()
	m.store.SetAgents(&models.AgentsResponse{Order: []string{"PLAN", "CODE"}})
	m.store.SetHistory([]models.HistoryEntry{{EventID: "evt_1"}})
	m.historyCursor = 3
	entry := models.HistoryEntry{EventID: "evt_1"}
	m.historyDetail = &entry

	cmd := m.selectAgent("CODE")
	if cmd == nil {
		t.Fatal("selecting an agent should fetch its history")
	}
	if m.selectedAgent != "CODE" {
		t.Errorf("selectedAgent = %q", m.selectedAgent)
	}
	if m.historyDetail != nil || m.historyCursor != 0 {
		t.Error("selection must clear the drill-down and cursor")
	}
	if len(m.store.History) != 0 {
		t.Error("previous agent's history must be dropped immediately")
	}
}

func TestHistorySelectionExpandsSheet(t *testing.T) {
	m := newTestModel()
	m.store.SetAgents(&models.AgentsResponse{Order: []string{"CODE"}})
	_ = m.selectAgent("CODE")
	m.store.SetHistory([]models.HistoryEntry{{EventID: "evt_1"}})

	if got := m.sheet.State(); got != sheet.OpenCollapsed {
		t.Fatalf("sheet state after select = %v, want collapsed", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.historyDetail == nil || m.historyDetail.EventID != "evt_1" {
		t.Fatalf("enter did not open the drill-down: %+v", m.historyDetail)
	}
	if got := m.sheet.State(); got != sheet.OpenExpanded {
		t.Errorf("drill-down left the sheet in %v, want expanded", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.historyDetail != nil {
		t.Error("esc should close the drill-down before the sheet")
	}
	if got := m.sheet.State(); got != sheet.OpenExpanded {
		t.Errorf("esc from the drill-down left the sheet in %v, want still expanded", got)
	}
}

func TestSettingsReloadSwapsClientOnNewBaseURL(t *testing.T) {
	m := newTestModel()
	m.store.Connected = true

	reloaded := models.NewSettings()
	reloaded.Backend.BaseURL = "http://elsewhere:8000"

	m, _ = update(t, m, SettingsReloadedMsg{Settings: reloaded})
	if m.client.BaseURL() != "http://elsewhere:8000" {
		t.Errorf("client base URL = %q after reload", m.client.BaseURL())
	}
	if m.store.Connected {
		t.Error("connectivity should reset when the backend target changes")
	}

	// Same URL keeps the client.
	before := m.client
	m, _ = update(t, m, SettingsReloadedMsg{Settings: reloaded})
	if m.client != before {
		t.Error("reload without a URL change must keep the client")
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name                       string
		total, height, cursor      int
		wantStart, wantEnd         int
	}{
		{"all fit", 3, 10, 0, 0, 3},
		{"cursor at top", 20, 5, 0, 0, 5},
		{"cursor inside first page", 20, 5, 4, 0, 5},
		{"cursor scrolled", 20, 5, 10, 6, 11},
		{"cursor at end", 20, 5, 19, 15, 20},
		{"zero height", 20, 0, 3, 0, 0},
	}
	for _, tt := range tests {
		start, end := window(tt.total, tt.height, tt.cursor)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("%s: window(%d,%d,%d) = [%d,%d), want [%d,%d)",
				tt.name, tt.total, tt.height, tt.cursor, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}
