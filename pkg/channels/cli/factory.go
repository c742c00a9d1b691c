package cli

import (
	"fmt"

	"dartagent/pkg/channels"
	"dartagent/pkg/config"
	"dartagent/pkg/gateway"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CLIFactory builds the interactive terminal channel.
type CLIFactory struct{}

// Create implements channels.ChannelFactory.
func (f *CLIFactory) Create(rawConfig jsoniter.RawMessage, system *config.SystemConfig) (gateway.Channel, error) {
	var cfg CLIConfig
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse cli config: %w", err)
		}
	}

	return NewCLIChannel(cfg), nil
}

func init() {
	channels.RegisterChannel("cli", &CLIFactory{})
}
