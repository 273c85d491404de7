package store

import (
	"bytes"
	"testing"
	"time"
)

func newTestStore() *Memory {
	return NewMemory(1, 1, "Unavailable")
}

func TestMessages(t *testing.T) {
	m := newTestStore()

	if _, ok := m.FetchMessage("missing"); ok {
		t.Error("FetchMessage() found a message in an empty store")
	}

	m.StoreMessage("id-1", []byte("first"))
	got, ok := m.FetchMessage("id-1")
	if !ok || !bytes.Equal(got, []byte("first")) {
		t.Errorf("FetchMessage() = %q, %v, want %q, true", got, ok, "first")
	}

	// Overwrite by id
	m.StoreMessage("id-1", []byte("second"))
	got, _ = m.FetchMessage("id-1")
	if !bytes.Equal(got, []byte("second")) {
		t.Errorf("FetchMessage() after overwrite = %q, want %q", got, "second")
	}
}

func TestQueueFIFO(t *testing.T) {
	m := newTestStore()

	if _, ok := m.Dequeue(); ok {
		t.Error("Dequeue() on empty queue returned a message")
	}
	if m.QueueSize() != 0 {
		t.Errorf("QueueSize() = %d, want 0", m.QueueSize())
	}

	m.Enqueue([]byte("a"))
	m.Enqueue([]byte("b"))
	m.Enqueue([]byte("c"))
	if m.QueueSize() != 3 {
		t.Errorf("QueueSize() = %d, want 3", m.QueueSize())
	}

	for _, want := range []string{"a", "b", "c"} {
		got, ok := m.Dequeue()
		if !ok || string(got) != want {
			t.Errorf("Dequeue() = %q, %v, want %q, true", got, ok, want)
		}
	}
	if m.QueueSize() != 0 {
		t.Errorf("QueueSize() after draining = %d, want 0", m.QueueSize())
	}
}

func TestLastSent(t *testing.T) {
	m := newTestStore()

	if m.LastSent().Exists() {
		t.Error("LastSent().Exists() = true for a fresh store")
	}

	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	m.RecordLastSent("id-1", ts)

	last := m.LastSent()
	if !last.Exists() {
		t.Fatal("LastSent().Exists() = false after RecordLastSent")
	}
	if last.ID != "id-1" || !last.Timestamp.Equal(ts) {
		t.Errorf("LastSent() = %+v, want id-1 at %v", last, ts)
	}
}

func TestTransactions(t *testing.T) {
	m := newTestStore()

	if _, ok := m.FetchTransaction("tx-1"); ok {
		t.Error("FetchTransaction() found a transaction in an empty store")
	}

	payload := []byte(`{"remoteStartId":42,"evseId":1}`)
	m.StoreTransaction("tx-1", payload)

	got, ok := m.FetchTransaction("tx-1")
	if !ok || !bytes.Equal(got, payload) {
		t.Errorf("FetchTransaction() = %q, %v, want stored payload", got, ok)
	}

	m.DeleteTransaction("tx-1")
	if _, ok := m.FetchTransaction("tx-1"); ok {
		t.Error("FetchTransaction() found a deleted transaction")
	}

	// Deleting again is harmless
	m.DeleteTransaction("tx-1")
}

func TestConnectorStatus(t *testing.T) {
	m := NewMemory(2, 1, "Unavailable")

	status, ok := m.ConnectorStatus(0, 0)
	if !ok || status != "Unavailable" {
		t.Errorf("ConnectorStatus(0,0) = %q, %v, want Unavailable, true", status, ok)
	}

	if !m.SetConnectorStatus(1, 0, "Available") {
		t.Error("SetConnectorStatus(1,0) = false, want true")
	}
	status, _ = m.ConnectorStatus(1, 0)
	if status != "Available" {
		t.Errorf("ConnectorStatus(1,0) = %q, want Available", status)
	}

	// The sibling connector is untouched
	status, _ = m.ConnectorStatus(0, 0)
	if status != "Unavailable" {
		t.Errorf("ConnectorStatus(0,0) = %q, want Unavailable", status)
	}

	// Out-of-range addresses
	for _, addr := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 1}} {
		if _, ok := m.ConnectorStatus(addr[0], addr[1]); ok {
			t.Errorf("ConnectorStatus(%d,%d) = ok, want out of range", addr[0], addr[1])
		}
		if m.SetConnectorStatus(addr[0], addr[1], "Available") {
			t.Errorf("SetConnectorStatus(%d,%d) = true, want false", addr[0], addr[1])
		}
	}
}
