package agent

import (
	"context"
	"fmt"
	"log/slog"

	"dartagent/pkg/api"
	"dartagent/pkg/llm"
	"dartagent/pkg/monitor"
	"dartagent/pkg/tools"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Runner drives one sub-agent: a system prompt, a tool registry and a
// bounded blocking tool loop against the LLM. One Run call handles one
// dispatched request end to end; there is no cross-run state beyond what
// the tools themselves write to the session store.
type Runner struct {
	name          string
	client        llm.LLMClient
	registry      api.ToolRegistry
	systemPrompt  string
	maxIterations int
	actionLog     *monitor.ActionLog
}

// NewRunner assembles a sub-agent runner. maxIterations bounds the number
// of LLM round trips, not the number of tool calls inside one round.
func NewRunner(name string, client llm.LLMClient, registry api.ToolRegistry, systemPrompt string, maxIterations int, actionLog *monitor.ActionLog) *Runner {
	if maxIterations <= 0 {
		maxIterations = 1
	}
	return &Runner{
		name:          name,
		client:        client,
		registry:      registry,
		systemPrompt:  systemPrompt,
		maxIterations: maxIterations,
		actionLog:     actionLog,
	}
}

// Name returns the agent name used in logs and planner decisions.
func (r *Runner) Name() string {
	return r.name
}

// Run executes the tool loop for one request and returns the agent's final
// natural-language answer.
func (r *Runner) Run(ctx context.Context, input string) (string, error) {
	messages := []llm.Message{
		llm.NewSystemMessage(r.systemPrompt),
		llm.NewUserMessage(input),
	}
	specs := tools.Specs(r.registry.GetAll())

	for iteration := 1; iteration <= r.maxIterations; iteration++ {
		resp, err := r.client.Chat(ctx, messages, specs)
		if err != nil {
			return "", fmt.Errorf("%s 에이전트 LLM 호출 실패: %w", r.name, err)
		}

		if !resp.HasToolCalls() {
			answer := resp.Text()
			r.record(monitor.ActionFinalAnswer, answer)
			return answer, nil
		}

		messages = append(messages, resp.AssistantMessage())

		for _, call := range resp.ToolCalls {
			result := r.executeToolCall(ctx, call)
			messages = append(messages, llm.NewToolResultMessage(call.ID, result))
		}
	}

	slog.Warn("Agent hit iteration limit", "agent", r.name, "max", r.maxIterations)
	answer := fmt.Sprintf("요청을 %d회 안에 처리하지 못했습니다. 요청을 더 작은 단위로 나누어 다시 시도해주세요.", r.maxIterations)
	r.record(monitor.ActionFinalAnswer, answer)
	return answer, nil
}

func (r *Runner) executeToolCall(ctx context.Context, call llm.ToolCall) string {
	r.record(monitor.ActionToolUse, fmt.Sprintf("%s(%s)", call.Name, call.Function.Arguments))

	tool, ok := r.registry.Get(call.Name)
	if !ok {
		result := fmt.Sprintf("알 수 없는 도구입니다: %s", call.Name)
		r.record(monitor.ActionToolResult, result)
		return result
	}

	args := map[string]any{}
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			result := fmt.Sprintf("도구 인자 파싱 실패: %v", err)
			r.record(monitor.ActionToolResult, result)
			return result
		}
	}

	toolResult, err := tool.Execute(ctx, args)
	if err != nil {
		result := fmt.Sprintf("도구 실행 중 오류 발생: %v", err)
		slog.Error("Tool execution failed", "agent", r.name, "tool", call.Name, "error", err)
		r.record(monitor.ActionToolResult, result)
		return result
	}

	r.record(monitor.ActionToolResult, toolResult.Content)
	return toolResult.Content
}

func (r *Runner) record(kind, payload string) {
	if r.actionLog != nil {
		r.actionLog.Record(r.name, kind, payload)
	}
}
