// Copyright 2020 WolkAbout Technology s.r.o.

// Package connectivity exchanges messages with the gateway.
package connectivity

import (
	"errors"

	"github.com/wolkabout/wolk-gateway-module-go/model"
)

// ErrNotConnected is returned when publishing without an established connection.
var ErrNotConnected = errors.New("not connected to gateway")

// Service is a connection to the gateway over which messages are exchanged.
type Service interface {
	// Connect establishes the connection and subscribes to all tracked topics.
	Connect() error
	// Disconnect announces the last will and closes the connection.
	Disconnect() error
	// Connected reports whether the connection is currently established.
	Connected() bool

	// Publish sends a message to the gateway. Returns ErrNotConnected when
	// there is no connection; the caller decides whether to queue the message.
	Publish(msg model.Message) error

	// Subscribe adds inbound topics, effective immediately when connected and
	// renewed on every reconnect.
	Subscribe(topics ...string) error
	// Unsubscribe removes inbound topics.
	Unsubscribe(topics ...string) error

	// SetInboundMessageListener sets the handler for inbound messages.
	// The handler is invoked on the connection's network loop and must not block.
	SetInboundMessageListener(listener func(model.Message))

	// SetLastWill sets the message the broker publishes if the connection dies
	// unexpectedly. Must be set before Connect.
	SetLastWill(msg model.Message)
}
