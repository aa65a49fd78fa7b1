package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stagewatch-io/stagewatch/internal/client"
	"github.com/stagewatch-io/stagewatch/internal/models"
	"github.com/stagewatch-io/stagewatch/internal/state"
)

const fetchTimeout = 5 * time.Second

func fetchAgentsCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		resp, err := c.Agents(ctx)
		if err != nil {
			return FetchFailedMsg{Resource: "agents", Err: err}
		}
		return AgentsMsg{Resp: resp}
	}
}

func fetchLogsCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		logs, err := c.Logs(ctx)
		if err != nil {
			return FetchFailedMsg{Resource: "logs", Err: err}
		}
		return LogsMsg{Logs: logs}
	}
}

func fetchStatusesCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		statuses, err := c.AgentStatuses(ctx)
		if err != nil {
			return FetchFailedMsg{Resource: "statuses", Err: err}
		}
		return StatusesMsg{Statuses: statuses}
	}
}

func fetchQueuesCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		queues, err := c.Queues(ctx)
		if err != nil {
			return FetchFailedMsg{Resource: "queues", Err: err}
		}
		return QueuesMsg{Queues: queues}
	}
}

func fetchPendingCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		items, err := c.Pending(ctx)
		if err != nil {
			return FetchFailedMsg{Resource: "pending", Err: err}
		}
		return PendingMsg{Items: items}
	}
}

func fetchMetricsCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		metrics, err := c.AgentMetrics(ctx)
		if err != nil {
			return FetchFailedMsg{Resource: "metrics", Err: err}
		}
		return MetricsMsg{Metrics: metrics}
	}
}

func fetchImprovementsCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		improvements, err := c.Improvements(ctx)
		if err != nil {
			return FetchFailedMsg{Resource: "improvements", Err: err}
		}
		return ImprovementsMsg{Improvements: improvements}
	}
}

func fetchTasksCmd(c *client.Client, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		tasks, err := c.Tasks(ctx, limit)
		if err != nil {
			return FetchFailedMsg{Resource: "tasks", Err: err}
		}
		return TasksMsg{Tasks: tasks}
	}
}

func fetchTaskDetailCmd(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		detail, err := c.Task(ctx, id)
		if err != nil {
			return FetchFailedMsg{Resource: "task detail", Err: err}
		}
		return TaskDetailMsg{Detail: detail}
	}
}

func fetchHistoryCmd(c *client.Client, agent string, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		entries, err := c.AgentHistory(ctx, agent, limit)
		return HistoryMsg{Agent: agent, Entries: entries, Err: err}
	}
}

func fetchSystemCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		status, err := c.SystemStatus(ctx)
		if err != nil {
			return FetchFailedMsg{Resource: "system", Err: err}
		}
		return SystemMsg{Status: status}
	}
}

func fetchLLMCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		settings, err := c.LLMSettings(ctx)
		if err != nil {
			return FetchFailedMsg{Resource: "llm settings", Err: err}
		}
		return LLMSettingsMsg{Settings: settings}
	}
}

func fetchAdaptersCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		adapters, err := c.LLMAdapters(ctx)
		if err != nil {
			return FetchFailedMsg{Resource: "adapters", Err: err}
		}
		return AdaptersMsg{Adapters: adapters}
	}
}

func fetchReposCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		repos, err := c.Repos(ctx)
		if err != nil {
			return FetchFailedMsg{Resource: "repos", Err: err}
		}
		return ReposMsg{Repos: repos}
	}
}

// respondCmd uploads the draft's staged images, then submits the response
// with the returned URLs. The upload must finish before the respond call; a
// failure anywhere leaves the draft untouched.
func respondCmd(c *client.Client, itemID, text string, images []state.StagedImage) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var urls []string
		if len(images) > 0 {
			payloads := make([]client.ImagePayload, len(images))
			for i, img := range images {
				payloads[i] = img.Payload
			}
			var err error
			urls, err = c.UploadImages(ctx, payloads)
			if err != nil {
				return RespondDoneMsg{ItemID: itemID, Err: err}
			}
		}

		err := c.Respond(ctx, itemID, text, urls)
		return RespondDoneMsg{ItemID: itemID, Err: err}
	}
}

func approveCmd(c *client.Client, itemID string) tea.Cmd {
	return actionCmd("approve", func(ctx context.Context) error {
		return c.Approve(ctx, itemID)
	})
}

func debugApproveCmd(c *client.Client, itemID string) tea.Cmd {
	return actionCmd("debug-approve", func(ctx context.Context) error {
		return c.DebugApprove(ctx, itemID)
	})
}

func approveWorkItemCmd(c *client.Client, workItemID string) tea.Cmd {
	return actionCmd("approve work item", func(ctx context.Context) error {
		return c.ApproveWorkItem(ctx, workItemID)
	})
}

func saveLLMCmd(c *client.Client, settings map[string]string) tea.Cmd {
	return actionCmd("save llm settings", func(ctx context.Context) error {
		return c.SaveLLMSettings(ctx, settings)
	})
}

func setDebugCmd(c *client.Client, enabled bool) tea.Cmd {
	return actionCmd("set debug", func(ctx context.Context) error {
		return c.SetDebug(ctx, enabled)
	})
}

func addRepoCmd(c *client.Client, repo models.Repo) tea.Cmd {
	return actionCmd("add repo", func(ctx context.Context) error {
		return c.AddRepo(ctx, repo)
	})
}

func deleteRepoCmd(c *client.Client, name string) tea.Cmd {
	return actionCmd("delete repo", func(ctx context.Context) error {
		return c.DeleteRepo(ctx, name)
	})
}

func systemRestartCmd(c *client.Client) tea.Cmd {
	return actionCmd("restart backend", func(ctx context.Context) error {
		return c.SystemRestart(ctx)
	})
}

func n8nActionCmd(c *client.Client, action string) tea.Cmd {
	return actionCmd("n8n "+action, func(ctx context.Context) error {
		return c.N8NAction(ctx, action)
	})
}

func actionCmd(name string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return ActionDoneMsg{Name: name, Err: fn(ctx)}
	}
}

func ingestCmd(c *client.Client, prompt string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		result, err := c.Ingest(ctx, prompt)
		return IngestDoneMsg{Result: result, Err: err}
	}
}

func pollTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(_ time.Time) tea.Msg {
		return PollTickMsg{}
	})
}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}
