package ollamachat

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"log/slog"

	"dartagent/pkg/llm"

	jsoniter "github.com/json-iterator/go"
	"github.com/ollama/ollama/api"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to a local or remote Ollama instance in blocking mode.
type Client struct {
	client  *api.Client
	model   string
	options map[string]any
}

// NewClient creates an Ollama client.
func NewClient(model string, baseURL string, options map[string]any) (*Client, error) {
	var client *api.Client
	var err error

	// Local models can take minutes to answer, so the HTTP client itself
	// carries no timeout. Cancellation comes from the request context.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 0,
	}

	customClient := &http.Client{
		Transport: transport,
		Timeout:   0,
	}

	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		client = api.NewClient(u, customClient)
	} else {
		client, err = api.ClientFromEnvironment()
	}

	if err != nil {
		return nil, err
	}

	slog.Info("Ollama client initialized", "model", model, "base_url", baseURL)

	return &Client{
		client:  client,
		model:   model,
		options: options,
	}, nil
}

func (c *Client) Provider() string {
	return "ollama"
}

func (c *Client) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "server busy") ||
		strings.Contains(msg, "loading model") {
		return true
	}
	return false
}

// Chat implements llm.LLMClient.
func (c *Client) Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSpec) (*llm.Response, error) {
	apiMessages, err := c.convertMessages(messages)
	if err != nil {
		return nil, err
	}

	// Tool specs go through a JSON round trip to sidestep SDK type
	// mismatch issues between schema representations.
	var ollamaTools []api.Tool
	if len(tools) > 0 {
		wrapped := make([]map[string]any, 0, len(tools))
		for _, t := range tools {
			wrapped = append(wrapped, map[string]any{
				"type": "function",
				"function": map[string]any{
					"name":        t.Name,
					"description": t.Description,
					"parameters":  t.Parameters,
				},
			})
		}
		rawB, err := json.Marshal(wrapped)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tools: %w", err)
		}
		if err := json.Unmarshal(rawB, &ollamaTools); err != nil {
			return nil, fmt.Errorf("failed to convert tools: %w", err)
		}
	}

	streamVal := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: apiMessages,
		Options:  c.options,
		Tools:    ollamaTools,
		Stream:   &streamVal,
	}

	var final api.ChatResponse
	err = c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		// Stream is disabled, so the callback fires once with the full
		// response.
		final = resp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat failed: %w", err)
	}

	resp := &llm.Response{
		FinishReason: normalizeStopReason(final.DoneReason),
	}

	if final.Message.Content != "" {
		resp.Content = append(resp.Content, llm.NewTextBlock(final.Message.Content))
	}

	for _, tc := range final.Message.ToolCalls {
		argsB, err := json.Marshal(tc.Function.Arguments)
		if err != nil {
			slog.Warn("Failed to marshal tool call arguments", "provider", "ollama", "error", err)
			argsB = []byte("{}")
		}
		resp.ToolCalls = append(resp.ToolCalls, llm.ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Function: llm.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: string(argsB),
			},
		})
	}
	if len(resp.ToolCalls) > 0 {
		resp.FinishReason = llm.StopReasonToolUse
	}

	if final.Metrics.EvalCount > 0 || final.Metrics.PromptEvalCount > 0 {
		resp.Usage = &llm.Usage{
			PromptTokens:     final.Metrics.PromptEvalCount,
			CompletionTokens: final.Metrics.EvalCount,
			TotalTokens:      final.Metrics.PromptEvalCount + final.Metrics.EvalCount,
			StopReason:       resp.FinishReason,
		}
	}

	llm.LogUsage(c.model, resp.Usage)
	return resp, nil
}

func (c *Client) convertMessages(messages []llm.Message) ([]api.Message, error) {
	apiMessages := make([]api.Message, 0, len(messages))

	for _, m := range messages {
		msg := api.Message{
			Role:    m.Role,
			Content: m.GetTextContent(),
		}

		for _, tc := range m.ToolCalls {
			var args api.ToolCallFunctionArguments
			if tc.Function.Arguments != "" {
				if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
					return nil, fmt.Errorf("invalid tool call arguments for %s: %w", tc.Function.Name, err)
				}
			}
			msg.ToolCalls = append(msg.ToolCalls, api.ToolCall{
				Function: api.ToolCallFunction{
					Name:      tc.Function.Name,
					Arguments: args,
				},
			})
		}

		apiMessages = append(apiMessages, msg)
	}

	return apiMessages, nil
}

func normalizeStopReason(reason string) string {
	switch strings.ToLower(reason) {
	case "stop", "":
		return llm.StopReasonStop
	case "length":
		return llm.StopReasonLength
	default:
		return reason
	}
}
