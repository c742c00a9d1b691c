package monitor

import (
	"fmt"
	"io"
	"os"
)

// ChannelMonitor implements the Monitor interface, echoing the traffic of
// remote channels (web, telegram) to the terminal. It is not used when the
// terminal runs the interactive REPL.
type ChannelMonitor struct {
	writer io.Writer
}

// NewChannelMonitor creates a terminal traffic monitor.
func NewChannelMonitor() *ChannelMonitor {
	return &ChannelMonitor{
		writer: os.Stdout,
	}
}

// Start prints the monitor header.
func (m *ChannelMonitor) Start() error {
	fmt.Fprintln(m.writer, "----------------------------------------------------------------")
	fmt.Fprintln(m.writer, "💬 채널 모니터 활성화 - 모든 채널의 대화가 여기에 표시됩니다")
	fmt.Fprintln(m.writer, "----------------------------------------------------------------")
	return nil
}

// Stop deactivates the monitor.
func (m *ChannelMonitor) Stop() error {
	return nil
}

// OnMessage displays one observed message. Long answers are cut so the
// terminal stays readable.
func (m *ChannelMonitor) OnMessage(msg MonitorMessage) {
	timestamp := msg.Timestamp.Format("2006-01-02 15:04:05")

	content := msg.Content
	if runes := []rune(content); len(runes) > 300 {
		content = string(runes[:300]) + "..."
	}

	var displayMsg string
	if msg.MessageType == "ASSISTANT" {
		displayMsg = fmt.Sprintf("[AI] %s", content)
	} else {
		displayMsg = fmt.Sprintf("[%s/%s] %s", msg.ChannelID, msg.Username, content)
	}

	fmt.Fprintf(m.writer, "\033[90m[%s]\033[0m %s\n", timestamp, displayMsg)
}
