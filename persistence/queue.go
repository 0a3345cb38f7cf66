// Copyright 2020 WolkAbout Technology s.r.o.

// Package persistence stores outbound messages before they are published to
// the gateway. Messages are delivered strictly in the order they were stored:
// readings without a timestamp are treated as live by the platform, so
// reordering would corrupt history.
package persistence

import (
	"github.com/wolkabout/wolk-gateway-module-go/model"
)

// Queue is a FIFO store of outbound messages.
type Queue interface {
	// Put places a message at the tail of the queue.
	Put(msg model.Message) error
	// Get removes and returns the head of the queue, nil when empty.
	Get() (*model.Message, error)
	// Peek returns the head of the queue without removing it, nil when empty.
	Peek() (*model.Message, error)
	// Size returns the current number of stored messages.
	Size() int
	// Close releases the underlying storage.
	Close() error
}
