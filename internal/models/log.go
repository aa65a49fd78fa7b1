package models

// LogStatus is the status tag the backend attaches to each log line.
type LogStatus string

const (
	LogSuccess   LogStatus = "success"
	LogFailed    LogStatus = "failed"
	LogRunning   LogStatus = "running"
	LogCancelled LogStatus = "cancelled"
	LogInfo      LogStatus = "info"
)

// LogEntry is a single pipeline log line from GET /agent/logs.
// Entries arrive oldest-first and are rendered reverse-chronological.
type LogEntry struct {
	Agent     string    `json:"agent"`
	Status    LogStatus `json:"status"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
}

// LogsResponse is the payload of GET /agent/logs.
type LogsResponse struct {
	Logs []LogEntry `json:"logs"`
}

// StatusesResponse is the payload of GET /agents/status.
type StatusesResponse struct {
	Statuses map[string]string `json:"statuses"`
}
