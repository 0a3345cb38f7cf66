// Copyright 2020 WolkAbout Technology s.r.o.

package persistence

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/wolkabout/wolk-gateway-module-go/model"
)

// LevelDBQueue is a durable FIFO message queue on LevelDB. Keys are big-endian
// sequence numbers, so LevelDB's sorted iteration preserves insertion order
// and queued messages survive module restarts.
type LevelDBQueue struct {
	db   *leveldb.DB
	mu   sync.Mutex
	head uint64 // sequence number of the next message to deliver
	tail uint64 // sequence number of the next message to store
}

var _ Queue = (*LevelDBQueue)(nil)

// NewLevelDBQueue opens (or creates) a queue database at the given path and
// restores the head and tail positions from the stored keys.
func NewLevelDBQueue(path string, opts *opt.Options) (*LevelDBQueue, error) {
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("error opening queue database: %v", err)
	}

	q := &LevelDBQueue{db: db}

	// Recover queue bounds from a snapshot of the stored keys
	iter := db.NewIterator(nil, nil)
	if iter.First() {
		q.head = binary.BigEndian.Uint64(iter.Key())
		iter.Last()
		q.tail = binary.BigEndian.Uint64(iter.Key()) + 1
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error loading queue database: %v", err)
	}

	logger.Debugf("Opened queue database %s with %d stored messages", path, q.tail-q.head)
	return q, nil
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func (q *LevelDBQueue) Put(msg model.Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	value, err := json.Marshal(&msg)
	if err != nil {
		return err
	}
	if err := q.db.Put(sequenceKey(q.tail), value, nil); err != nil {
		return fmt.Errorf("error storing message: %v", err)
	}
	q.tail++
	return nil
}

func (q *LevelDBQueue) Get() (*model.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	msg, err := q.get()
	if err != nil || msg == nil {
		return nil, err
	}
	if err := q.db.Delete(sequenceKey(q.head), nil); err != nil {
		return nil, fmt.Errorf("error removing message: %v", err)
	}
	q.head++
	return msg, nil
}

func (q *LevelDBQueue) Peek() (*model.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.get()
}

// get reads the head message. Callers must hold the mutex.
func (q *LevelDBQueue) get() (*model.Message, error) {
	if q.head == q.tail {
		return nil, nil
	}

	value, err := q.db.Get(sequenceKey(q.head), nil)
	if err != nil {
		return nil, fmt.Errorf("error reading message: %v", err)
	}
	var msg model.Message
	if err := json.Unmarshal(value, &msg); err != nil {
		return nil, fmt.Errorf("error parsing stored message: %v", err)
	}
	return &msg, nil
}

func (q *LevelDBQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int(q.tail - q.head)
}

func (q *LevelDBQueue) Close() error {
	return q.db.Close()
}
