package channels

import (
	"log/slog"

	"dartagent/pkg/config"
	"dartagent/pkg/gateway"

	jsoniter "github.com/json-iterator/go"
)

// LoadFromConfig is the central orchestration point for dynamic channel
// initialization. It iterates through the configured channel map, resolves
// factories, and registers the resulting channels with the GatewayManager.
func LoadFromConfig(gw *gateway.GatewayManager, configs map[string]jsoniter.RawMessage, system *config.SystemConfig) {
	for name, rawConfig := range configs {
		factory, ok := GetChannelFactory(name)
		if !ok {
			slog.Warn("Unknown channel type", "name", name)
			continue
		}

		channel, err := factory.Create(rawConfig, system)
		if err != nil {
			slog.Error("Failed to create channel", "name", name, "error", err)
			continue
		}

		// A nil channel without error means the factory opted out.
		if channel == nil {
			continue
		}

		gw.Register(channel)
		slog.Info("Channel registered", "name", name)
	}
}
