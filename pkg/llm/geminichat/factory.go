package geminichat

import (
	"context"
	"log/slog"

	"dartagent/pkg/config"
	"dartagent/pkg/llm"
)

// Factory handles creation of Gemini clients.
type Factory struct{}

// Create implements llm.ProviderFactory.
func (f *Factory) Create(cfg llm.ProviderGroupConfig, sys *config.SystemConfig) ([]llm.LLMClient, error) {
	var clients []llm.LLMClient

	// Cartesian product: models x keys (models take precedence)
	for _, model := range cfg.Models {
		for _, key := range cfg.APIKeys {
			client, err := NewClient(context.Background(), key, model)
			if err != nil {
				slog.Error("Failed to create Gemini client", "model", model, "error", err)
				continue
			}
			clients = append(clients, client)
		}
	}
	return clients, nil
}

func init() {
	llm.RegisterProvider("gemini", &Factory{})
}
