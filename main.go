package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dartagent/pkg/channels"
	"dartagent/pkg/channels/cli"
	_ "dartagent/pkg/channels/telegram"
	_ "dartagent/pkg/channels/web"
	"dartagent/pkg/config"
	"dartagent/pkg/dart"
	"dartagent/pkg/gateway"
	"dartagent/pkg/handler"
	"dartagent/pkg/llm"
	_ "dartagent/pkg/llm/geminichat"
	_ "dartagent/pkg/llm/ollamachat"
	_ "dartagent/pkg/llm/openaichat"
	"dartagent/pkg/monitor"
	"dartagent/pkg/prompts"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	flagQuiet   bool
	flagWeb     bool
	flagPrompts string
)

var rootCmd = &cobra.Command{
	Use:   "dartagent",
	Short: "OpenDART 재무 데이터 분석 에이전트",
	Long:  "공시 재무제표를 수집하고 자연어로 분석하는 대화형 에이전트입니다.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug 로그를 출력합니다")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "warn 이상의 로그만 출력합니다")
	rootCmd.Flags().BoolVar(&flagWeb, "web", false, "웹 UI 채널을 활성화합니다")
	rootCmd.Flags().StringVar(&flagPrompts, "prompts", "", "프롬프트 오버라이드 디렉터리")
}

func run() error {
	cfg, sysCfg, err := config.Load()
	if err != nil {
		return err
	}

	level := sysCfg.LogLevel
	if flagVerbose {
		level = "debug"
	} else if flagQuiet {
		level = "warn"
	}
	monitor.SetupSlog(level)
	monitor.PrintBanner()

	apiKey, err := config.DartAPIKey()
	if err != nil {
		return err
	}

	client, err := llm.NewFromConfig(cfg.LLM, sysCfg)
	if err != nil {
		return fmt.Errorf("failed to init LLM client: %w", err)
	}

	dartClient := dart.NewClient(apiKey, time.Duration(sysCfg.DartTimeoutMs)*time.Millisecond)
	corpRegistry := dart.NewCompanyRegistry(dartClient.FetchCorpList)

	promptDir := cfg.PromptDir
	if flagPrompts != "" {
		promptDir = flagPrompts
	}
	loader := prompts.NewLoader(promptDir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if files := loader.Files(); len(files) > 0 {
		reloadCh := config.WatchFiles(ctx, files...)
		go func() {
			for range reloadCh {
				loader.Reload()
				slog.Info("Prompt overrides reloaded")
			}
		}()
	}

	channelCfgs := channelConfigs(cfg)
	h := handler.NewChatHandler(client, dartClient, corpRegistry, loader, sysCfg)

	builder := gateway.NewGatewayBuilder().
		WithHandler(h).
		WithChannelLoader(func(g *gateway.GatewayManager) {
			channels.LoadFromConfig(g, channelCfgs, sysCfg)
		})

	// The terminal monitor only makes sense when the terminal is not
	// already occupied by the REPL.
	if _, cliMode := channelCfgs["cli"]; !cliMode {
		builder = builder.WithMonitor(monitor.NewChannelMonitor())
	}

	gw, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to build gateway: %w", err)
	}

	waitForShutdown(gw)

	slog.Info("Shutting down")
	gw.StopAll()
	return nil
}

// channelConfigs resolves which channels to run. No configured channels
// means the interactive REPL; --web adds the web UI on its default port.
func channelConfigs(cfg *config.Config) map[string]jsoniter.RawMessage {
	configs := make(map[string]jsoniter.RawMessage)
	for name, raw := range cfg.Channels {
		configs[name] = raw
	}
	if flagWeb {
		if _, ok := configs["web"]; !ok {
			configs["web"] = jsoniter.RawMessage("{}")
		}
		delete(configs, "cli")
	}
	if len(configs) == 0 {
		configs["cli"] = jsoniter.RawMessage("{}")
	}
	return configs
}

// waitForShutdown blocks until SIGINT/SIGTERM, or until the REPL user types
// an exit command.
func waitForShutdown(gw *gateway.GatewayManager) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var replDone <-chan struct{}
	if c, ok := gw.GetChannel("cli"); ok {
		if repl, ok := c.(*cli.CLIChannel); ok {
			replDone = repl.Done()
		}
	}

	select {
	case <-sigChan:
	case <-replDone:
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
