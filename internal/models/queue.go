package models

import "encoding/json"

// Queue key conventions used by the backend's Redis layout.
const (
	QueuePrefix        = "queue:"
	ClarificationQueue = "waiting:clarification"
)

// QueueItems holds the opaque task envelopes of one queue. Agent queues
// serialize items as a JSON array; the clarification waiting set serializes
// them as an object keyed by waiting-key. Both forms are accepted and only
// the envelopes and their count are retained.
type QueueItems struct {
	List []json.RawMessage
	Keys []string // set only for the object form, aligned with List
}

// UnmarshalJSON accepts either an array or an object of envelopes.
func (qi *QueueItems) UnmarshalJSON(data []byte) error {
	qi.List = nil
	qi.Keys = nil

	var asList []json.RawMessage
	if err := json.Unmarshal(data, &asList); err == nil {
		qi.List = asList
		return nil
	}

	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &asMap); err != nil {
		return err
	}
	for k, v := range asMap {
		qi.Keys = append(qi.Keys, k)
		qi.List = append(qi.List, v)
	}
	return nil
}

// Len returns the number of envelopes regardless of wire form.
func (qi QueueItems) Len() int {
	return len(qi.List)
}

// QueueSnapshot is one queue's state from GET /queues.
type QueueSnapshot struct {
	Count int        `json:"count"`
	Items QueueItems `json:"items"`
}

// QueuesResponse is the payload of GET /queues.
type QueuesResponse struct {
	Queues map[string]QueueSnapshot `json:"queues"`
}

// TaskEnvelope is the subset of a queued event envelope the dashboard
// renders. Envelopes are otherwise treated as opaque.
type TaskEnvelope struct {
	Meta struct {
		EventID   string `json:"event_id"`
		Timestamp string `json:"timestamp"`
	} `json:"meta"`
	Task struct {
		Title          string `json:"title"`
		Type           string `json:"type"`
		Status         string `json:"status"`
		CurrentStage   string `json:"current_stage"`
		OriginalPrompt string `json:"original_prompt"`
	} `json:"task"`
}

// DecodeEnvelope leniently decodes a raw queue item. Unparseable envelopes
// come back zero-valued rather than failing the whole queue render.
func DecodeEnvelope(raw json.RawMessage) TaskEnvelope {
	var env TaskEnvelope
	_ = json.Unmarshal(raw, &env)
	return env
}
