package web

import (
	"fmt"

	"dartagent/pkg/channels"
	"dartagent/pkg/config"
	"dartagent/pkg/gateway"

	jsoniter "github.com/json-iterator/go"
)

// WebFactory builds the web UI channel from raw channel config.
type WebFactory struct{}

// Create implements channels.ChannelFactory.
func (f *WebFactory) Create(rawConfig jsoniter.RawMessage, system *config.SystemConfig) (gateway.Channel, error) {
	var pCfg WebConfig
	if err := json.Unmarshal(rawConfig, &pCfg); err != nil {
		return nil, fmt.Errorf("failed to parse web config: %w", err)
	}

	return NewWebChannel(pCfg), nil
}

func init() {
	channels.RegisterChannel("web", &WebFactory{})
}
