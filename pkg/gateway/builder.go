package gateway

import (
	"fmt"

	"dartagent/pkg/api"
	"dartagent/pkg/monitor"
)

// GatewayBuilder assembles a GatewayManager from pre-built components.
// Channels and the handler are constructed by the caller; the builder only
// wires them together and starts everything.
type GatewayBuilder struct {
	gw             *GatewayManager
	monitor        monitor.Monitor
	handlerBuilder func(api.MessageResponder) api.MessageProcessor
	channels       []api.Channel
	channelLoader  func(*GatewayManager)
}

// NewGatewayBuilder creates a fresh builder with an empty GatewayManager.
func NewGatewayBuilder() *GatewayBuilder {
	return &GatewayBuilder{
		gw: NewGatewayManager(),
	}
}

// WithMonitor injects a monitoring implementation. The monitor is started
// during Build().
func (b *GatewayBuilder) WithMonitor(m monitor.Monitor) *GatewayBuilder {
	b.monitor = m
	return b
}

// WithChannel adds pre-built channel instances to the gateway.
func (b *GatewayBuilder) WithChannel(channels ...api.Channel) *GatewayBuilder {
	b.channels = append(b.channels, channels...)
	return b
}

// WithChannelLoader registers a function that creates and registers
// channels from configuration. It runs during Build(), after directly
// injected channels are registered.
func (b *GatewayBuilder) WithChannelLoader(load func(*GatewayManager)) *GatewayBuilder {
	b.channelLoader = load
	return b
}

// WithHandler injects the message handler. A handler implementing
// api.ResponderAware receives the gateway as its responder during Build().
func (b *GatewayBuilder) WithHandler(h api.MessageProcessor) *GatewayBuilder {
	b.handlerBuilder = func(responder api.MessageResponder) api.MessageProcessor {
		if setter, ok := h.(api.ResponderAware); ok {
			setter.SetResponder(responder)
		}
		return h
	}
	return b
}

// Build wires all dependencies into the GatewayManager, starts the monitor
// and every channel, and returns the operational gateway.
func (b *GatewayBuilder) Build() (*GatewayManager, error) {
	if b.monitor != nil {
		b.gw.SetMonitor(b.monitor)
		if err := b.monitor.Start(); err != nil {
			return nil, fmt.Errorf("failed to start monitor: %w", err)
		}
	}

	for _, c := range b.channels {
		b.gw.Register(c)
	}

	if b.channelLoader != nil {
		b.channelLoader(b.gw)
	}

	if b.handlerBuilder != nil {
		handler := b.handlerBuilder(b.gw)
		if handler != nil {
			b.gw.SetMessageHandler(handler.OnMessage)
		}
	}

	if err := b.gw.StartAll(); err != nil {
		return nil, fmt.Errorf("failed to start channels: %w", err)
	}

	return b.gw, nil
}
