package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"dartagent/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureContext struct {
	messages []*api.UnifiedMessage
}

func (c *captureContext) SendReply(session api.SessionContext, content string) error { return nil }

func (c *captureContext) SendSignal(session api.SessionContext, signal string) error { return nil }

func (c *captureContext) OnMessage(channelID string, msg *api.UnifiedMessage) {
	c.messages = append(c.messages, msg)
}

func newTestChannel(input string) (*CLIChannel, *bytes.Buffer) {
	var out bytes.Buffer
	ch := NewCLIChannel(CLIConfig{})
	ch.in = strings.NewReader(input)
	ch.out = &out
	return ch, &out
}

func waitDone(t *testing.T, ch *CLIChannel) {
	t.Helper()
	select {
	case <-ch.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not finish")
	}
}

func TestREPLForwardsLinesUntilExit(t *testing.T) {
	ch, _ := newTestChannel("삼성전자 재무제표 찾아줘\n\nexit\n이건 무시\n")
	ctx := &captureContext{}

	require.NoError(t, ch.Start(ctx))
	waitDone(t, ch)

	// The blank line is skipped and nothing after exit is processed.
	require.Len(t, ctx.messages, 1)
	assert.Equal(t, "삼성전자 재무제표 찾아줘", ctx.messages[0].Content)
	assert.Equal(t, "cli", ctx.messages[0].Session.ChannelID)
	assert.Equal(t, "cli:local", ctx.messages[0].Session.SessionKey())
}

func TestExitCommandVariants(t *testing.T) {
	assert.True(t, isExitCommand("exit"))
	assert.True(t, isExitCommand("QUIT"))
	assert.True(t, isExitCommand("종료"))
	assert.False(t, isExitCommand("계속"))
}

func TestEOFEndsSession(t *testing.T) {
	ch, _ := newTestChannel("안녕\n")
	ctx := &captureContext{}

	require.NoError(t, ch.Start(ctx))
	waitDone(t, ch)

	require.Len(t, ctx.messages, 1)
}

func TestSendAndSignalOutput(t *testing.T) {
	ch, out := newTestChannel("")
	session := api.SessionContext{ChannelID: "cli"}

	require.NoError(t, ch.SendSignal(session, "thinking"))
	require.NoError(t, ch.Send(session, "9,500억원입니다"))

	assert.Contains(t, out.String(), "생각 중...")
	assert.Contains(t, out.String(), "9,500억원입니다")
}
