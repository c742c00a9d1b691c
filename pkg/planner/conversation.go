package planner

import (
	"fmt"
	"strings"
	"time"
)

// Entry kinds. Every conversation entry carries exactly one of these tags
// so consumers never have to sniff content prefixes to tell a routing
// decision apart from an agent answer.
const (
	KindUserMessage     = "user_message"
	KindAgentMessage    = "agent_message"
	KindPlannerDecision = "planner_decision"
)

// Entry is one turn of the conversation.
type Entry struct {
	Kind      string `json:"kind"`
	Agent     string `json:"agent,omitempty"` // producing agent for agent messages
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Conversation is the append-only per-session message history shared by the
// planner and both sub-agents. Not safe for concurrent use; the execution
// model is single-threaded per session.
type Conversation struct {
	entries []Entry
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// AddUser appends a user message.
func (c *Conversation) AddUser(content string) {
	c.append(Entry{Kind: KindUserMessage, Content: content})
}

// AddAgent appends a sub-agent answer.
func (c *Conversation) AddAgent(agent, content string) {
	c.append(Entry{Kind: KindAgentMessage, Agent: agent, Content: content})
}

// AddDecision appends a planner routing decision.
func (c *Conversation) AddDecision(decision string) {
	c.append(Entry{Kind: KindPlannerDecision, Content: decision})
}

func (c *Conversation) append(e Entry) {
	e.Timestamp = time.Now().Unix()
	c.entries = append(c.entries, e)
}

// Entries returns a snapshot of the history in order.
func (c *Conversation) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// LatestUserMessage returns the most recent user message, or "".
func (c *Conversation) LatestUserMessage() string {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].Kind == KindUserMessage {
			return c.entries[i].Content
		}
	}
	return ""
}

// LastAgentMessage returns the most recent sub-agent answer, skipping
// planner decisions, or "".
func (c *Conversation) LastAgentMessage() string {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].Kind == KindAgentMessage {
			return c.entries[i].Content
		}
	}
	return ""
}

// Window renders the trailing n entries for the planner prompt, each
// truncated to snippetRunes runes.
func (c *Conversation) Window(n, snippetRunes int) string {
	start := len(c.entries) - n
	if start < 0 {
		start = 0
	}

	var lines []string
	for _, e := range c.entries[start:] {
		label := "user"
		switch e.Kind {
		case KindAgentMessage:
			label = e.Agent
		case KindPlannerDecision:
			label = "planner"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, truncateRunes(e.Content, snippetRunes)))
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
