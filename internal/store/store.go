// Package store holds the session state of the charging station: pending
// outbound requests keyed by correlation id, the FIFO delivery queue, the
// last-sent marker driving the queue's flow-control gate, active
// transactions, and connector availability.
//
// The in-memory implementation is mutex-guarded so it stays correct if the
// engine's timers and handlers are ever split across goroutines. Nothing
// survives a process restart.
package store

import (
	"sync"
	"time"
)

// LastSent describes the most recently transmitted queued message, or the
// zero value if nothing has been sent yet.
type LastSent struct {
	ID        string
	Timestamp time.Time
}

// Exists reports whether a queued message has been transmitted this
// session.
func (l LastSent) Exists() bool {
	return l.ID != ""
}

// Store is the session state accessed by the protocol engine.
type Store interface {
	// Pending request correlation. Messages are stored serialized and
	// re-decoded on correlation; an existing id is overwritten.
	StoreMessage(id string, frame []byte)
	FetchMessage(id string) ([]byte, bool)

	// Outbound delivery queue, strict FIFO.
	Enqueue(frame []byte)
	Dequeue() ([]byte, bool)
	QueueSize() int

	// Flow-control marker for the delivery queue.
	RecordLastSent(id string, ts time.Time)
	LastSent() LastSent

	// Active charging transactions, keyed by transaction id. The payload
	// is the verbatim start request body.
	StoreTransaction(id string, payload []byte)
	FetchTransaction(id string) ([]byte, bool)
	DeleteTransaction(id string)

	// Connector availability, addressed 0-based by (evse, connector).
	// The bool result is false when the address is out of range.
	ConnectorStatus(evse, connector int) (string, bool)
	SetConnectorStatus(evse, connector int, status string) bool
}

// Memory is the in-memory Store used for a single session.
type Memory struct {
	mu           sync.Mutex
	messages     map[string][]byte
	queue        [][]byte
	lastSent     LastSent
	transactions map[string][]byte
	connectors   [][]string
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty store with the given connector layout. Every
// connector starts Unavailable until the boot handshake marks it
// Available.
func NewMemory(evseCount, connectorsPerEVSE int, initialStatus string) *Memory {
	connectors := make([][]string, evseCount)
	for i := range connectors {
		connectors[i] = make([]string, connectorsPerEVSE)
		for j := range connectors[i] {
			connectors[i][j] = initialStatus
		}
	}
	return &Memory{
		messages:     make(map[string][]byte),
		transactions: make(map[string][]byte),
		connectors:   connectors,
	}
}

func (m *Memory) StoreMessage(id string, frame []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[id] = frame
}

func (m *Memory) FetchMessage(id string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	frame, ok := m.messages[id]
	return frame, ok
}

func (m *Memory) Enqueue(frame []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, frame)
}

func (m *Memory) Dequeue() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil, false
	}
	frame := m.queue[0]
	m.queue = m.queue[1:]
	return frame, true
}

func (m *Memory) QueueSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func (m *Memory) RecordLastSent(id string, ts time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSent = LastSent{ID: id, Timestamp: ts}
}

func (m *Memory) LastSent() LastSent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSent
}

func (m *Memory) StoreTransaction(id string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[id] = payload
}

func (m *Memory) FetchTransaction(id string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.transactions[id]
	return payload, ok
}

func (m *Memory) DeleteTransaction(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transactions, id)
}

func (m *Memory) ConnectorStatus(evse, connector int) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if evse < 0 || evse >= len(m.connectors) || connector < 0 || connector >= len(m.connectors[evse]) {
		return "", false
	}
	return m.connectors[evse][connector], true
}

func (m *Memory) SetConnectorStatus(evse, connector int, status string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if evse < 0 || evse >= len(m.connectors) || connector < 0 || connector >= len(m.connectors[evse]) {
		return false
	}
	m.connectors[evse][connector] = status
	return true
}
