// Copyright 2020 WolkAbout Technology s.r.o.

package persistence

import (
	"sync"

	"github.com/wolkabout/wolk-gateway-module-go/model"
)

// MemQueue is an in-memory FIFO message queue. It is the default queue and
// loses its contents when the process exits.
type MemQueue struct {
	mu       sync.Mutex
	messages []model.Message
}

var _ Queue = (*MemQueue)(nil)

// NewMemQueue returns an empty in-memory queue.
func NewMemQueue() *MemQueue {
	return &MemQueue{}
}

func (q *MemQueue) Put(msg model.Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, msg)
	return nil
}

func (q *MemQueue) Get() (*model.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) == 0 {
		return nil, nil
	}
	msg := q.messages[0]
	q.messages = q.messages[1:]
	return &msg, nil
}

func (q *MemQueue) Peek() (*model.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) == 0 {
		return nil, nil
	}
	msg := q.messages[0]
	return &msg, nil
}

func (q *MemQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}

func (q *MemQueue) Close() error { return nil }
