// Package client wraps the pipeline backend's REST endpoints. Every method
// performs exactly one request and returns a parsed payload or an error; there
// is no retry or backoff, each poll tick is an independent attempt.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/stagewatch-io/stagewatch/internal/diag"
	"github.com/stagewatch-io/stagewatch/internal/models"
)

// Client talks to one backend base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL using the default transport.
func New(baseURL string) *Client {
	return NewWithClient(baseURL, &http.Client{})
}

// NewWithClient creates a client with a caller-supplied http.Client.
func NewWithClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestError is a non-OK response from the backend.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

// do performs one request and decodes the JSON response into out (out may be
// nil for fire-and-forget actions). Failures are mirrored to the diagnostic
// channel here; callers still receive the error for the connectivity signal.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	err := c.doOnce(ctx, method, path, query, body, out)
	if err != nil {
		diag.Logf("client", "%s %s: %v", method, path, err)
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RequestError{StatusCode: resp.StatusCode, Message: errorDetail(data)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorDetail pulls the backend's {"detail": ...} message out of an error
// body, falling back to the raw text.
func errorDetail(data []byte) string {
	var wire struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &wire); err == nil && wire.Detail != "" {
		return wire.Detail
	}
	return strings.TrimSpace(string(data))
}

// Rejected reports whether err is a backend rejection (non-OK status) rather
// than a transport failure.
func Rejected(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// ── Resource reads ───────────────────────────────────────────────

// Agents fetches the pipeline stage roster.
func (c *Client) Agents(ctx context.Context) (*models.AgentsResponse, error) {
	var resp models.AgentsResponse
	if err := c.do(ctx, http.MethodGet, "/agents", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logs fetches the full stored log window.
func (c *Client) Logs(ctx context.Context) ([]models.LogEntry, error) {
	var resp models.LogsResponse
	if err := c.do(ctx, http.MethodGet, "/agent/logs", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

// AgentStatuses fetches the backend's own per-agent status map.
func (c *Client) AgentStatuses(ctx context.Context) (map[string]string, error) {
	var resp models.StatusesResponse
	if err := c.do(ctx, http.MethodGet, "/agents/status", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Statuses, nil
}

// Queues fetches all queue snapshots.
func (c *Client) Queues(ctx context.Context) (map[string]models.QueueSnapshot, error) {
	var resp models.QueuesResponse
	if err := c.do(ctx, http.MethodGet, "/queues", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Queues, nil
}

// Pending fetches all human-in-the-loop items.
func (c *Client) Pending(ctx context.Context) ([]models.PendingItem, error) {
	var resp models.PendingResponse
	if err := c.do(ctx, http.MethodGet, "/pending", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.PendingItems, nil
}

// AgentMetrics fetches per-agent performance counters.
func (c *Client) AgentMetrics(ctx context.Context) (map[string]models.AgentMetric, error) {
	var resp models.MetricsResponse
	if err := c.do(ctx, http.MethodGet, "/metrics/agents", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Agents, nil
}

// Improvements fetches recent improvement suggestions.
func (c *Client) Improvements(ctx context.Context) ([]models.Improvement, error) {
	var resp models.ImprovementsResponse
	if err := c.do(ctx, http.MethodGet, "/metrics/improvements", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Improvements, nil
}

// Tasks fetches the most recent pipeline runs.
func (c *Client) Tasks(ctx context.Context, limit int) ([]models.Task, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	var resp models.TasksResponse
	if err := c.do(ctx, http.MethodGet, "/tasks", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Task fetches one run with its stage event sequence.
func (c *Client) Task(ctx context.Context, id string) (*models.TaskDetail, error) {
	var resp models.TaskDetail
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AgentHistory fetches the most recent processed events for one agent.
func (c *Client) AgentHistory(ctx context.Context, name string, limit int) ([]models.HistoryEntry, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	var resp models.HistoryResponse
	if err := c.do(ctx, http.MethodGet, "/agent/"+url.PathEscape(name)+"/history", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// SystemStatus fetches backend/n8n service status.
func (c *Client) SystemStatus(ctx context.Context) (*models.SystemStatus, error) {
	var resp models.SystemStatus
	if err := c.do(ctx, http.MethodGet, "/system/status", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LLMSettings fetches the per-agent adapter assignments.
func (c *Client) LLMSettings(ctx context.Context) (*models.LLMSettings, error) {
	var resp models.LLMSettings
	if err := c.do(ctx, http.MethodGet, "/settings/llm", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LLMAdapters fetches the adapter catalog.
func (c *Client) LLMAdapters(ctx context.Context) ([]models.LLMAdapter, error) {
	var resp models.AdaptersResponse
	if err := c.do(ctx, http.MethodGet, "/settings/llm/adapters", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Adapters, nil
}

// Repos fetches the registered repositories.
func (c *Client) Repos(ctx context.Context) ([]models.Repo, error) {
	var resp models.ReposResponse
	if err := c.do(ctx, http.MethodGet, "/settings/repos", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Repos, nil
}

// ── Actions ──────────────────────────────────────────────────────

// respondBody is the POST /pending/{id}/respond payload. A nil Images slice
// deliberately serializes as JSON null: the backend distinguishes "no images"
// from an empty attachment list.
type respondBody struct {
	Response string   `json:"response"`
	Images   []string `json:"images"`
}

// Respond submits a clarification answer with optional uploaded image URLs.
func (c *Client) Respond(ctx context.Context, itemID, text string, imageURLs []string) error {
	return c.do(ctx, http.MethodPost, "/pending/"+url.PathEscape(itemID)+"/respond", nil,
		respondBody{Response: text, Images: imageURLs}, nil)
}

// Approve approves a pending approval item.
func (c *Client) Approve(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodPost, "/pending/"+url.PathEscape(itemID)+"/approve", nil, nil, nil)
}

// DebugApprove releases a debug-mode step gate.
func (c *Client) DebugApprove(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodPost, "/pending/"+url.PathEscape(itemID)+"/debug-approve", nil, nil, nil)
}

// ApproveWorkItem approves a workflow work item (DESIGN/RELEASE gates).
func (c *Client) ApproveWorkItem(ctx context.Context, workItemID string) error {
	return c.do(ctx, http.MethodPost, "/workitem/"+url.PathEscape(workItemID)+"/approve", nil, nil, nil)
}

// ingestBody is the POST /event/ingest payload.
type ingestBody struct {
	Task    string `json:"task"`
	Context any    `json:"context,omitempty"`
}

// Ingest submits a new task prompt to the head of the pipeline.
func (c *Client) Ingest(ctx context.Context, prompt string) (*models.IngestResult, error) {
	var resp models.IngestResult
	if err := c.do(ctx, http.MethodPost, "/event/ingest", nil, ingestBody{Task: prompt}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveLLMSettings writes per-agent adapter assignments.
func (c *Client) SaveLLMSettings(ctx context.Context, settings map[string]string) error {
	body := struct {
		Settings map[string]string `json:"settings"`
	}{Settings: settings}
	return c.do(ctx, http.MethodPost, "/settings/llm", nil, body, nil)
}

// SetDebug toggles the backend's step-by-step debug mode.
func (c *Client) SetDebug(ctx context.Context, enabled bool) error {
	body := struct {
		Enabled bool `json:"enabled"`
	}{Enabled: enabled}
	return c.do(ctx, http.MethodPost, "/settings/debug", nil, body, nil)
}

// AddRepo registers a repository with the backend.
func (c *Client) AddRepo(ctx context.Context, repo models.Repo) error {
	return c.do(ctx, http.MethodPost, "/settings/repos", nil, repo, nil)
}

// DeleteRepo removes a registered repository.
func (c *Client) DeleteRepo(ctx context.Context, name string) error {
	q := url.Values{}
	q.Set("name", name)
	return c.do(ctx, http.MethodDelete, "/settings/repos", q, nil, nil)
}

// SystemRestart asks the backend process to restart itself.
func (c *Client) SystemRestart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/system/restart", nil, nil, nil)
}

// N8NAction starts, stops, or restarts the n8n service.
func (c *Client) N8NAction(ctx context.Context, action string) error {
	switch action {
	case "start", "stop", "restart":
	default:
		return fmt.Errorf("unknown n8n action %q", action)
	}
	return c.do(ctx, http.MethodPost, "/system/n8n/"+action, nil, nil, nil)
}
