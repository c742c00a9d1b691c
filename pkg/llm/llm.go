package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// json handles JSON inside package llm, json-iterator everywhere.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Usage holds normalized token accounting for a single completion.
type Usage struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	StopReason       string `json:"stop_reason,omitempty"`
}

// ToolSpec describes one callable tool in a provider-neutral form.
// Parameters is a JSON Schema object.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Response is the complete result of one blocking chat call.
type Response struct {
	Content      []ContentBlock `json:"content"`
	ToolCalls    []ToolCall     `json:"tool_calls,omitempty"`
	FinishReason string         `json:"finish_reason"`
	Usage        *Usage         `json:"usage,omitempty"`
}

// Text concatenates every text block of the response.
func (r *Response) Text() string {
	var out string
	for _, block := range r.Content {
		if block.Type == BlockTypeText {
			out += block.Text
		}
	}
	return out
}

// HasToolCalls reports whether the model requested tool execution.
func (r *Response) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// AssistantMessage converts the response into a conversation message so it
// can be appended to the history before tool results are attached.
func (r *Response) AssistantMessage() Message {
	return Message{
		Role:      RoleAssistant,
		Content:   r.Content,
		ToolCalls: r.ToolCalls,
		Timestamp: time.Now().Unix(),
	}
}

// LogUsage emits the normalized usage statistics of a completed call.
func LogUsage(model string, usage *Usage) {
	if usage == nil {
		return
	}
	slog.Debug("LLM usage",
		"model", model,
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
		"total_tokens", usage.TotalTokens,
		"stop_reason", usage.StopReason)
}

// LLMClient is the common blocking client interface for all providers.
type LLMClient interface {
	// Chat sends the full conversation plus the available tool schemas and
	// waits for the complete response. tools may be nil.
	Chat(ctx context.Context, messages []Message, tools []ToolSpec) (*Response, error)

	// IsTransientError reports whether err is worth retrying (503, rate
	// limit, network hiccup).
	IsTransientError(err error) bool

	// Provider returns the provider name for logging.
	Provider() string
}

// FallbackClient tries multiple clients in order, each with retries.
type FallbackClient struct {
	Clients    []LLMClient
	MaxRetries int
	RetryDelay time.Duration
}

func (f *FallbackClient) Chat(ctx context.Context, messages []Message, tools []ToolSpec) (*Response, error) {
	var lastErr error
	for i, client := range f.Clients {
		if i > 0 {
			slog.Warn("Previous provider failed, trying fallback", "provider", client.Provider(), "rank", i+1)
		}

		maxRetries := f.MaxRetries
		if maxRetries <= 0 {
			maxRetries = 1
		}

		for retry := 1; retry <= maxRetries; retry++ {
			if retry > 1 {
				slog.Info("Retrying provider", "provider", client.Provider(), "attempt", retry, "max", maxRetries)
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(time.Duration(retry-1) * f.RetryDelay):
				}
			}

			resp, err := client.Chat(ctx, messages, tools)
			if err == nil {
				return resp, nil
			}

			lastErr = err

			if client.IsTransientError(err) && retry < maxRetries {
				slog.Warn("Provider failed with transient error", "provider", client.Provider(), "error", err)
				continue
			}

			slog.Error("Provider failed", "provider", client.Provider(), "error", err)
			break
		}
	}
	return nil, fmt.Errorf("all fallback providers failed, last error: %w", lastErr)
}

// IsTransientError implements LLMClient. A FallbackClient error means every
// child already exhausted its retries, so it is final.
func (f *FallbackClient) IsTransientError(err error) bool {
	return false
}

func (f *FallbackClient) Provider() string {
	return "fallback"
}
