package api

import (
	"context"
)

// Tool defines the structural interface for any capability that an agent
// can execute. It includes metadata for prompt injection (JSON Schema)
// and the execution logic itself.
type Tool interface {
	// Name is the unique identifier the model uses to call the tool.
	Name() string
	// Description tells the model when the tool applies.
	Description() string
	// Parameters returns the JSON Schema object describing the arguments.
	Parameters() map[string]any
	// Execute performs the actual tool logic using the provided argument map.
	// Domain failures (missing data, unknown account) come back inside the
	// ToolResult so the model can react; only infrastructure failures are
	// returned as errors.
	Execute(ctx context.Context, args map[string]any) (*ToolResult, error)
}

// ToolResult encapsulates the outcome of a tool execution.
type ToolResult struct {
	// Content is the text handed back to the model as the tool result.
	Content string `json:"content"`
	// IsError marks domain-level failures that the model should see.
	IsError bool `json:"is_error,omitempty"`
	// Details holds arbitrary technical metadata for logging.
	Details map[string]any `json:"details,omitempty"`
}

// NewToolResult builds a successful text result.
func NewToolResult(content string) *ToolResult {
	return &ToolResult{Content: content}
}

// NewToolError builds a domain-level failure result shown to the model.
func NewToolError(content string) *ToolResult {
	return &ToolResult{Content: content, IsError: true}
}

// ToolRegistry defines the interface for managing and accessing tools.
type ToolRegistry interface {
	Register(tool Tool)
	Unregister(name string)
	Get(name string) (Tool, bool)
	GetAll() []Tool
}
