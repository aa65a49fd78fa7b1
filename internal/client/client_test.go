package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewWithClient(srv.URL, srv.Client())
}

func TestQueuesParsesBothItemForms(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/queues", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"queues":{
			"queue:CODE":{"count":2,"items":[{"meta":{"event_id":"evt_1"}},{"meta":{"event_id":"evt_2"}}]},
			"waiting:clarification":{"count":1,"items":{"waiting:clarification:evt_3":{"meta":{"event_id":"evt_3"}}}}
		}}`)
	})

	c := newTestClient(t, mux)
	queues, err := c.Queues(context.Background())
	if err != nil {
		t.Fatalf("queues: %v", err)
	}

	code := queues["queue:CODE"]
	if code.Count != 2 || code.Items.Len() != 2 {
		t.Errorf("queue:CODE count=%d items=%d, want 2/2", code.Count, code.Items.Len())
	}
	if env := models.DecodeEnvelope(code.Items.List[0]); env.Meta.EventID != "evt_1" {
		t.Errorf("first envelope event id = %q, want evt_1", env.Meta.EventID)
	}

	waiting := queues["waiting:clarification"]
	if waiting.Items.Len() != 1 {
		t.Errorf("clarification items = %d, want 1 (object form)", waiting.Items.Len())
	}
}

func TestPendingDispatchesTaggedUnion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pending", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"count":3,"pending_items":[
			{"id":"evt_1","type":"clarification","question":"Which database?","original_prompt":"build a service","created_at":"2026-03-01T09:00:00"},
			{"id":"wi_2","type":"approval","title":"payments service","current_state":"DESIGN","pending_approvals":["UX","ARCH"],"created_at":"2026-03-01T08:00:00"},
			{"id":"evt_3:CODE","type":"debug","agent":"CODE","title":"[CODE] build a service","message":"step gate","created_at":"2026-03-01T07:00:00"}
		]}`)
	})

	c := newTestClient(t, mux)
	items, err := c.Pending(context.Background())
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	if items[0].Kind != models.PendingClarification || items[0].Clarification == nil {
		t.Errorf("item 0 not a clarification: %+v", items[0])
	} else if items[0].Clarification.Question != "Which database?" {
		t.Errorf("question = %q", items[0].Clarification.Question)
	}

	if items[1].Kind != models.PendingApproval || items[1].Approval == nil {
		t.Errorf("item 1 not an approval: %+v", items[1])
	} else if len(items[1].Approval.PendingApprovals) != 2 {
		t.Errorf("pending approvals = %v", items[1].Approval.PendingApprovals)
	}

	if items[2].Kind != models.PendingDebug || items[2].Debug == nil {
		t.Errorf("item 2 not a debug gate: %+v", items[2])
	} else if items[2].Debug.Agent != "CODE" {
		t.Errorf("debug agent = %q", items[2].Debug.Agent)
	}
}

func TestMissingFieldsDefaultToEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/agent/logs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})
	mux.HandleFunc("/metrics/agents", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"agents":{"CODE":{"total":10,"success_rate":90.0}}}`)
	})

	c := newTestClient(t, mux)

	logs, err := c.Logs(context.Background())
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("absent logs field yielded %d entries", len(logs))
	}

	metrics, err := c.AgentMetrics(context.Background())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	m := metrics["CODE"]
	if m.Total != 10 || m.AvgDurationMs != 0 {
		t.Errorf("partial metric decoded as %+v", m)
	}
}

func TestNonOKBecomesRequestError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pending/evt_9/respond", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Pending item not found: evt_9"}`)
	})

	c := newTestClient(t, mux)
	err := c.Respond(context.Background(), "evt_9", "answer", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !Rejected(err) {
		t.Fatalf("expected a rejection, got %v", err)
	}
	if got := err.Error(); got != "http 404: Pending item not found: evt_9" {
		t.Errorf("error = %q", got)
	}
}

func TestUnreachableIsNotARejection(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	c := NewWithClient(srv.URL, srv.Client())
	srv.Close() // backend gone

	_, err := c.Logs(context.Background())
	if err == nil {
		t.Fatal("expected an error from a closed server")
	}
	if Rejected(err) {
		t.Errorf("transport failure classified as rejection: %v", err)
	}
}

func TestRespondSendsNullImagesForEmptyDraft(t *testing.T) {
	var body map[string]json.RawMessage
	mux := http.NewServeMux()
	mux.HandleFunc("/pending/evt_1/respond", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"status":"responded"}`)
	})

	c := newTestClient(t, mux)
	if err := c.Respond(context.Background(), "evt_1", "use postgres", nil); err != nil {
		t.Fatalf("respond: %v", err)
	}

	if string(body["images"]) != "null" {
		t.Errorf("images = %s, want null for zero attachments", body["images"])
	}
	if string(body["response"]) != `"use postgres"` {
		t.Errorf("response = %s", body["response"])
	}
}

func TestRespondSendsImageURLList(t *testing.T) {
	var body map[string]json.RawMessage
	mux := http.NewServeMux()
	mux.HandleFunc("/pending/evt_1/respond", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"status":"responded"}`)
	})

	c := newTestClient(t, mux)
	err := c.Respond(context.Background(), "evt_1", "see screenshots", []string{"/files/a.png", "/files/b.png"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}

	var urls []string
	if err := json.Unmarshal(body["images"], &urls); err != nil {
		t.Fatalf("images not a list: %s", body["images"])
	}
	if len(urls) != 2 {
		t.Errorf("sent %d urls, want 2", len(urls))
	}
}

func TestUploadImagesCountMismatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/upload-images", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"urls":["/files/only-one.png"]}`)
	})

	c := newTestClient(t, mux)
	_, err := c.UploadImages(context.Background(), []ImagePayload{
		{Name: "a.png", Data: "aaaa"},
		{Name: "b.png", Data: "bbbb"},
	})
	if err == nil {
		t.Fatal("expected an error when url count differs from payload count")
	}
}

func TestUploadImagesSkipsEmptyPayload(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/files/upload-images", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	c := newTestClient(t, mux)
	urls, err := c.UploadImages(context.Background(), nil)
	if err != nil || urls != nil {
		t.Fatalf("empty upload: urls=%v err=%v", urls, err)
	}
	if called {
		t.Error("empty upload still hit the backend")
	}
}

func TestAgentHistoryQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/agent/CODE/history", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("limit = %q, want 20", got)
		}
		_, _ = io.WriteString(w, `{"history":[{"event_id":"evt_1","stage":"CODE","status":"success"}]}`)
	})

	c := newTestClient(t, mux)
	history, err := c.AgentHistory(context.Background(), "CODE", 20)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].EventID != "evt_1" {
		t.Errorf("history = %+v", history)
	}
}

func TestN8NActionValidation(t *testing.T) {
	c := New("http://localhost:0")
	if err := c.N8NAction(context.Background(), "vaporize"); err == nil {
		t.Error("expected an error for an unknown action")
	}
}

func TestIngest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/event/ingest", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var body struct {
			Task string `json:"task"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Task != "add dark mode" {
			t.Errorf("task = %q", body.Task)
		}
		_, _ = io.WriteString(w, `{"status":"queued","event_id":"evt_42","queue":"queue:REQUIREMENT"}`)
	})

	c := newTestClient(t, mux)
	res, err := c.Ingest(context.Background(), "add dark mode")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.EventID != "evt_42" || res.Queue != "queue:REQUIREMENT" {
		t.Errorf("result = %+v", res)
	}
}
