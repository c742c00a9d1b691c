package monitor

import (
	"log/slog"
	"sync"
	"time"
)

// Action kinds recorded by the session log.
const (
	ActionToolUse     = "tool_use"
	ActionToolResult  = "tool_result"
	ActionFinalAnswer = "final_answer"
)

// ActionRecord is one structured entry of the per-session action log.
// Records exist for observability only and never feed control decisions.
type ActionRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Agent     string    `json:"agent"`
	Kind      string    `json:"kind"`
	Payload   string    `json:"payload"`
}

// ActionLog accumulates sub-agent actions during a session.
type ActionLog struct {
	mu      sync.Mutex
	records []ActionRecord
}

// NewActionLog creates an empty action log.
func NewActionLog() *ActionLog {
	return &ActionLog{}
}

// Record appends one entry, truncating oversized payloads for readability.
func (l *ActionLog) Record(agent, kind, payload string) {
	const maxPayload = 200
	display := payload
	if len([]rune(display)) > maxPayload {
		display = string([]rune(display)[:maxPayload]) + "..."
	}

	l.mu.Lock()
	l.records = append(l.records, ActionRecord{
		Timestamp: time.Now(),
		Agent:     agent,
		Kind:      kind,
		Payload:   payload,
	})
	l.mu.Unlock()

	slog.Debug("Session action", "agent", agent, "kind", kind, "payload", display)
}

// Records returns a snapshot of every entry in order.
func (l *ActionLog) Records() []ActionRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ActionRecord(nil), l.records...)
}

// Reset clears the log for a new session.
func (l *ActionLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
}
