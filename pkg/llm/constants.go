package llm

// Role constants name the participants of a conversation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// StopReason constants define normalized reasons for LLM generation termination.
// All providers must normalize their native stop reasons to these values.
const (
	StopReasonStop    = "stop"     // Normal completion
	StopReasonLength  = "length"   // Output truncated due to token limit
	StopReasonToolUse = "tool_use" // Model requested one or more tool calls
)

// ContentBlock Type constants define the supported content block formats
// used throughout the message pipeline.
const (
	BlockTypeText  = "text"  // Plain text content
	BlockTypeError = "error" // Error message displayed to user
)
