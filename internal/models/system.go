package models

// SystemStatus is the payload of GET /system/status.
type SystemStatus struct {
	Backend string `json:"backend"`
	N8N     string `json:"n8n"`
}

// ActionResult is the generic payload of control POSTs
// (/system/restart, /system/n8n/*, /settings/debug).
type ActionResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// LLMSettings is the payload of GET /settings/llm: adapter name per agent.
type LLMSettings struct {
	Settings map[string]string `json:"settings"`
	Defaults map[string]string `json:"defaults"`
}

// LLMAdapter describes one selectable adapter from GET /settings/llm/adapters.
type LLMAdapter struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// AdaptersResponse is the payload of GET /settings/llm/adapters.
type AdaptersResponse struct {
	Adapters []LLMAdapter `json:"adapters"`
}

// Repo is one registered repository from GET /settings/repos.
type Repo struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Branch string `json:"branch"`
}

// ReposResponse is the payload of GET /settings/repos.
type ReposResponse struct {
	Repos []Repo `json:"repos"`
}

// UploadResponse is the payload of POST /files/upload-images.
type UploadResponse struct {
	URLs []string `json:"urls"`
}
