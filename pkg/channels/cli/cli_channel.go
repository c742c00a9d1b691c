package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"dartagent/pkg/api"
)

// exitCommands terminate the REPL.
var exitCommands = []string{"exit", "quit", "종료"}

// CLIConfig controls the interactive terminal channel.
type CLIConfig struct {
	Prompt string `json:"prompt"` // Input prompt marker, default "> "
}

// CLIChannel is a blocking read-eval-print loop on standard input. Each
// line is one user turn; the reply is printed before the next prompt is
// shown. Typing an exit command closes the Done channel so the process can
// shut down.
type CLIChannel struct {
	config CLIConfig
	in     io.Reader
	out    io.Writer
	done   chan struct{}
	once   sync.Once
}

func NewCLIChannel(cfg CLIConfig) *CLIChannel {
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	return &CLIChannel{
		config: cfg,
		in:     os.Stdin,
		out:    os.Stdout,
		done:   make(chan struct{}),
	}
}

func (c *CLIChannel) ID() string {
	return "cli"
}

// Done is closed when the user ends the session.
func (c *CLIChannel) Done() <-chan struct{} {
	return c.done
}

// Start runs the REPL in a background goroutine. OnMessage is called
// synchronously from the loop, so the next prompt only appears after the
// current turn finished and its reply was printed.
func (c *CLIChannel) Start(ctx api.ChannelContext) error {
	session := api.SessionContext{
		ChannelID: "cli",
		UserID:    "local",
		ChatID:    "local",
		Username:  "user",
	}

	go func() {
		defer c.close()

		fmt.Fprintln(c.out, "질문을 입력하세요. 종료하려면 'exit'를 입력하세요.")
		scanner := bufio.NewScanner(c.in)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)

		for {
			select {
			case <-c.done:
				return
			default:
			}

			fmt.Fprint(c.out, c.config.Prompt)
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					slog.Error("CLI read error", "error", err)
				}
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if isExitCommand(line) {
				fmt.Fprintln(c.out, "대화를 종료합니다.")
				return
			}

			ctx.OnMessage(c.ID(), &api.UnifiedMessage{
				Session: session,
				Content: line,
			})
		}
	}()

	return nil
}

func (c *CLIChannel) Stop() error {
	c.close()
	return nil
}

func (c *CLIChannel) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// Send prints the reply to the terminal.
func (c *CLIChannel) Send(session api.SessionContext, message string) error {
	_, err := fmt.Fprintf(c.out, "\n%s\n\n", message)
	return err
}

// SendSignal implements api.SignalingChannel. The thinking signal becomes a
// short status line so the user knows a slow turn is in progress.
func (c *CLIChannel) SendSignal(session api.SessionContext, signal string) error {
	if signal == "thinking" {
		fmt.Fprintln(c.out, "생각 중...")
	}
	return nil
}

func isExitCommand(line string) bool {
	lowered := strings.ToLower(line)
	for _, cmd := range exitCommands {
		if lowered == cmd {
			return true
		}
	}
	return false
}
