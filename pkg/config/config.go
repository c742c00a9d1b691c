package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
)

// EnvDartAPIKey is the environment variable holding the OpenDART API key.
// The agent cannot collect anything without it, so startup fails when it is
// absent.
const EnvDartAPIKey = "DART_API_KEY"

// Config defines the global application configuration structure.
// This structure maps directly to the config.json file and holds
// business-level settings like channel API keys and LLM provider choices.
type Config struct {
	// Channels contains a map of channel identifiers (e.g., "cli", "web",
	// "telegram") to their specific configuration payloads in raw JSON format.
	Channels map[string]jsoniter.RawMessage `json:"channels"`
	// LLM holds the configuration for the LLM provider groups in raw JSON.
	LLM jsoniter.RawMessage `json:"llm"`
	// PromptDir optionally points to a directory with prompt overrides.
	// Empty means the embedded prompts are used as-is.
	PromptDir string `json:"prompt_dir,omitempty"`
}

// Validate ensures the configuration structure contains all mandatory fields.
// It acts as a primary guard before the system proceeds to initialization.
func (c *Config) Validate() error {
	if len(c.LLM) == 0 {
		return fmt.Errorf("mandatory 'llm' configuration is missing or empty")
	}
	return nil
}

// SystemConfig defines engine-level technical parameters.
// These settings are stored in system.json and control the reliability and
// bounds of the agent loop.
type SystemConfig struct {
	// MaxRetries is the number of times the system will attempt to
	// recover from a transient LLM or network error before giving up.
	MaxRetries int `json:"max_retries"`
	// RetryDelayMs is the duration to wait (in milliseconds) between
	// consecutive retry attempts.
	RetryDelayMs int `json:"retry_delay_ms"`
	// LLMTimeoutMs is the hard cutoff time (in milliseconds) for a single
	// LLM request. The context will be cancelled if exceeded.
	LLMTimeoutMs int `json:"llm_timeout_ms"`
	// OllamaDefaultURL is the fallback endpoint used when connecting
	// to a local Ollama instance if no specific URL is provided.
	OllamaDefaultURL string `json:"ollama_default_url"`
	// DartTimeoutMs is the timeout (in milliseconds) for OpenDART API calls.
	DartTimeoutMs int `json:"dart_timeout_ms"`
	// MaxPlannerSteps caps the number of routing decisions a single user
	// turn may consume before the turn is force-terminated.
	MaxPlannerSteps int `json:"max_planner_steps"`
	// CollectorMaxIterations caps the tool loop of the data collection agent.
	CollectorMaxIterations int `json:"collector_max_iterations"`
	// AnalystMaxIterations caps the tool loop of the analysis agent.
	AnalystMaxIterations int `json:"analyst_max_iterations"`
	// ContextWindowMessages is how many trailing conversation entries the
	// planner sees when deciding the next route.
	ContextWindowMessages int `json:"context_window_messages"`
	// ContextSnippetRunes truncates each routed conversation entry to this
	// many runes to keep the planner prompt small.
	ContextSnippetRunes int `json:"context_snippet_runes"`
	// TelegramMessageLimit is the maximum character count for a single
	// Telegram message. Longer responses will be split into multiple chunks.
	TelegramMessageLimit int `json:"telegram_message_limit"`
	// LogLevel sets the minimum severity for log output.
	// Accepted values: "debug", "info", "warn", "error". Default: "info".
	LogLevel string `json:"log_level"`
}

// DefaultSystemConfig returns a SystemConfig pointer initialized with hardcoded
// safe default values. This is used as a fallback when the system.json file
// is missing or corrupt, ensuring the engine can always start.
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		MaxRetries:             3,
		RetryDelayMs:           500,
		LLMTimeoutMs:           600000,
		OllamaDefaultURL:       "http://localhost:11434",
		DartTimeoutMs:          30000,
		MaxPlannerSteps:        50,
		CollectorMaxIterations: 5,
		AnalystMaxIterations:   10,
		ContextWindowMessages:  10,
		ContextSnippetRunes:    200,
		TelegramMessageLimit:   4000,
		LogLevel:               "info",
	}
}

// Load reads and parses the JSON configuration files from the current working directory.
// It first attempts to load 'config.json' (app config). If this file is missing, it returns an error.
// Then it calls LoadSystemConfig to load 'system.json'.
// Returns pointers to the loaded Config and SystemConfig, or an error if the mandatory app config fails.
func Load() (*Config, *SystemConfig, error) {
	// 1. Load Application Config
	appPath := "config.json"
	if _, err := os.Stat(appPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("config file '%s' not found. please create one", appPath)
	}

	appFile, err := os.ReadFile(appPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(appFile, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// 1a. Validate structure integrity
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	// 2. Load System Config independently
	sysCfg := LoadSystemConfig("system.json")

	return &cfg, sysCfg, nil
}

// LoadSystemConfig attempts to load system settings, returns defaults if it fails
func LoadSystemConfig(path string) *SystemConfig {
	cfg := DefaultSystemConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		return cfg // File not found, use defaults
	}

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(file, cfg); err != nil {
		return cfg // Parse failed, use defaults
	}

	return cfg
}

// DartAPIKey loads the OpenDART credential from the environment, reading a
// local .env file first so development setups work without exporting vars.
// A missing key is a fatal configuration error.
func DartAPIKey() (string, error) {
	_ = godotenv.Load()

	key := os.Getenv(EnvDartAPIKey)
	if key == "" {
		return "", fmt.Errorf("%s 환경변수가 설정되지 않았습니다", EnvDartAPIKey)
	}
	return key, nil
}
