// Package models contains the JSON payload types consumed from the pipeline
// backend, plus the dashboard's own YAML settings.
package models

// AgentInfo describes one pipeline stage as reported by GET /agents.
type AgentInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Queue       string `json:"queue"`
	NextAgent   string `json:"next_agent"`
}

// AgentsResponse is the payload of GET /agents.
type AgentsResponse struct {
	Agents []AgentInfo `json:"agents"`
	Order  []string    `json:"order"`
}

// HistoryEntry is one processed event from GET /agent/{name}/history.
type HistoryEntry struct {
	EventID    string  `json:"event_id"`
	Stage      string  `json:"stage"`
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Timestamp  string  `json:"timestamp"`
	DurationMs float64 `json:"duration_ms"`
	Output     string  `json:"output"`
}

// HistoryResponse is the payload of GET /agent/{name}/history.
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
}

// DisplayMeta is static presentation metadata for a pipeline stage,
// resolved client-side by agent name.
type DisplayMeta struct {
	Label string
	Icon  string
	Color string // hex accent color
}

// agentDisplay maps the fixed stage names to their presentation metadata.
var agentDisplay = map[string]DisplayMeta{
	"REQUIREMENT": {Label: "Requirements", Icon: "📋", Color: "#60a5fa"},
	"PLAN":        {Label: "Planning", Icon: "🗺", Color: "#818cf8"},
	"UXUI":        {Label: "UX/UI Design", Icon: "🎨", Color: "#c084fc"},
	"ARCHITECT":   {Label: "Architecture", Icon: "🏛", Color: "#e879f9"},
	"CODE":        {Label: "Coding", Icon: "⌨", Color: "#22d3ee"},
	"REFACTORING": {Label: "Refactoring", Icon: "♻", Color: "#2dd4bf"},
	"TESTQA":      {Label: "Test & QA", Icon: "🧪", Color: "#4ade80"},
	"DOC":         {Label: "Documentation", Icon: "📚", Color: "#a3e635"},
	"RELEASE":     {Label: "Release", Icon: "🚀", Color: "#facc15"},
	"MONITORING":  {Label: "Monitoring", Icon: "📡", Color: "#fb923c"},
	"EVALUATION":  {Label: "Evaluation", Icon: "⚖", Color: "#f87171"},
}

// Display resolves presentation metadata for an agent name. Unknown agents
// get a passthrough label so new backend stages still render.
func Display(name string) DisplayMeta {
	if meta, ok := agentDisplay[name]; ok {
		return meta
	}
	return DisplayMeta{Label: name, Icon: "●", Color: "#9ca3af"}
}
