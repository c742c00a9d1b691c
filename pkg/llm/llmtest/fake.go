// Package llmtest provides a scripted LLM client for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"dartagent/pkg/llm"
)

// Call records one Chat invocation.
type Call struct {
	Messages []llm.Message
	Tools    []llm.ToolSpec
}

// FakeClient replays a fixed script of responses.
type FakeClient struct {
	mu        sync.Mutex
	responses []*llm.Response
	errs      []error
	calls     []Call
}

// NewFakeClient builds a client that returns the given responses in order.
func NewFakeClient(responses ...*llm.Response) *FakeClient {
	return &FakeClient{responses: responses}
}

// TextResponse builds a plain text response for scripting.
func TextResponse(text string) *llm.Response {
	return &llm.Response{
		Content:      []llm.ContentBlock{llm.NewTextBlock(text)},
		FinishReason: llm.StopReasonStop,
	}
}

// ToolCallResponse builds a response requesting a single tool call.
func ToolCallResponse(id, name, arguments string) *llm.Response {
	return &llm.Response{
		ToolCalls: []llm.ToolCall{{
			ID:   id,
			Name: name,
			Function: llm.FunctionCall{
				Name:      name,
				Arguments: arguments,
			},
		}},
		FinishReason: llm.StopReasonToolUse,
	}
}

// QueueError makes the next call fail with err before resuming the script.
func (f *FakeClient) QueueError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
}

// Chat implements llm.LLMClient.
func (f *FakeClient) Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSpec) (*llm.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Messages: messages, Tools: tools})

	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}

	if len(f.responses) == 0 {
		return nil, fmt.Errorf("fake client script exhausted after %d calls", len(f.calls))
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

// IsTransientError implements llm.LLMClient.
func (f *FakeClient) IsTransientError(err error) bool {
	return false
}

// Provider implements llm.LLMClient.
func (f *FakeClient) Provider() string {
	return "fake"
}

// Calls returns every recorded invocation.
func (f *FakeClient) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns how many times Chat was invoked.
func (f *FakeClient) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
