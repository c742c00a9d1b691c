package gateway

import (
	"dartagent/pkg/api"
)

// Aliases to the shared api types so channel implementations and the
// handler only depend on one definition.
type Channel = api.Channel
type SignalingChannel = api.SignalingChannel
type MessageResponder = api.MessageResponder
type ChannelContext = api.ChannelContext
type UnifiedMessage = api.UnifiedMessage
type SessionContext = api.SessionContext

type MessageHandler = api.MessageHandler
