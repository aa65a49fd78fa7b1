package models

// Task is one historical pipeline run from GET /tasks.
type Task struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	CurrentStage string `json:"current_stage"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// TasksResponse is the payload of GET /tasks.
type TasksResponse struct {
	Tasks []Task `json:"tasks"`
}

// TaskEvent is one stage transition in a task's history.
type TaskEvent struct {
	Stage         string `json:"stage"`
	Message       string `json:"message"`
	Timestamp     string `json:"timestamp"`
	OutputSummary string `json:"output_summary"`
}

// TaskDetail is the payload of GET /tasks/{id}.
type TaskDetail struct {
	Task
	Events []TaskEvent `json:"events"`
}

// IngestResult is the payload of POST /event/ingest.
type IngestResult struct {
	Status  string `json:"status"`
	EventID string `json:"event_id"`
	Queue   string `json:"queue"`
}
