package models

import "encoding/json"

// PendingKind discriminates the pending item union.
type PendingKind string

const (
	PendingClarification PendingKind = "clarification"
	PendingApproval      PendingKind = "approval"
	PendingDebug         PendingKind = "debug"
)

// Clarification is the payload of a clarification request.
type Clarification struct {
	Question       string `json:"question"`
	OriginalPrompt string `json:"original_prompt"`
}

// Approval is the payload of an approval request.
type Approval struct {
	Title            string   `json:"title"`
	CurrentState     string   `json:"current_state"`
	PendingApprovals []string `json:"pending_approvals"`
	Message          string   `json:"message"`
}

// DebugGate is the payload of a debug-mode step gate.
type DebugGate struct {
	Agent   string `json:"agent"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// PendingItem is one human-in-the-loop item from GET /pending. Exactly one
// variant pointer is set for the known kinds; unknown kinds keep their tag
// with no payload so the renderer can fall through to a generic row.
type PendingItem struct {
	ID        string
	Kind      PendingKind
	CreatedAt string

	Clarification *Clarification
	Approval      *Approval
	Debug         *DebugGate
}

// pendingWire is the flat backend representation.
type pendingWire struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	CreatedAt        string   `json:"created_at"`
	Question         string   `json:"question"`
	OriginalPrompt   string   `json:"original_prompt"`
	Title            string   `json:"title"`
	CurrentState     string   `json:"current_state"`
	PendingApprovals []string `json:"pending_approvals"`
	Message          string   `json:"message"`
	Agent            string   `json:"agent"`
}

// UnmarshalJSON dispatches the flat wire form into the tagged union.
func (p *PendingItem) UnmarshalJSON(data []byte) error {
	var w pendingWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = PendingItem{
		ID:        w.ID,
		Kind:      PendingKind(w.Type),
		CreatedAt: w.CreatedAt,
	}

	switch p.Kind {
	case PendingClarification:
		p.Clarification = &Clarification{
			Question:       w.Question,
			OriginalPrompt: w.OriginalPrompt,
		}
	case PendingApproval:
		p.Approval = &Approval{
			Title:            w.Title,
			CurrentState:     w.CurrentState,
			PendingApprovals: w.PendingApprovals,
			Message:          w.Message,
		}
	case PendingDebug:
		p.Debug = &DebugGate{
			Agent:   w.Agent,
			Title:   w.Title,
			Message: w.Message,
		}
	}
	return nil
}

// PendingResponse is the payload of GET /pending.
type PendingResponse struct {
	Count        int           `json:"count"`
	PendingItems []PendingItem `json:"pending_items"`
}
