package models

// AgentMetric holds per-agent performance counters from GET /metrics/agents.
type AgentMetric struct {
	Total         int     `json:"total"`
	Success       int     `json:"success"`
	Failed        int     `json:"failed"`
	SuccessRate   float64 `json:"success_rate"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// MetricsResponse is the payload of GET /metrics/agents.
type MetricsResponse struct {
	Agents map[string]AgentMetric `json:"agents"`
}

// Improvement is one suggestion from GET /metrics/improvements.
type Improvement struct {
	Agent      string `json:"agent"`
	Suggestion string `json:"suggestion"`
	CreatedAt  string `json:"created_at"`
}

// ImprovementsResponse is the payload of GET /metrics/improvements.
type ImprovementsResponse struct {
	Improvements []Improvement `json:"improvements"`
}
