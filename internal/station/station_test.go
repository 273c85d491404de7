package station

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/voltlab/stationd/internal/components"
	"github.com/voltlab/stationd/internal/ocpp"
	"github.com/voltlab/stationd/internal/store"
)

// fakeTransport records every frame the engine writes.
type fakeTransport struct {
	sent   [][]byte
	closed bool
}

func (f *fakeTransport) Send(data []byte) error {
	f.sent = append(f.sent, data)
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func newTestClient(t *testing.T) (*Client, *fakeTransport, *store.Memory) {
	t.Helper()

	st := store.NewMemory(1, 1, ocpp.ConnectorStatusUnavailable)
	ft := &fakeTransport{}
	c := New(Config{
		URL:                "ws://csms.test/station-01",
		Model:              "EV-42",
		VendorName:         "Voltlab",
		BootReason:         ocpp.BootReasonPowerUp,
		QueueFetchInterval: 50 * time.Millisecond,
		MessageExpiry:      10 * time.Second,
	}, st, components.New())
	c.transport = ft
	return c, ft, st
}

// deliverCall feeds a serialized Call frame into the router as if it had
// arrived from the CSMS.
func deliverCall(t *testing.T, c *Client, id, action string, payload any) {
	t.Helper()

	data, err := ocpp.EncodeCall(id, action, payload)
	if err != nil {
		t.Fatalf("EncodeCall() error = %v", err)
	}
	c.handleFrame(data)
}

// deliverCallResult feeds a serialized CallResult frame into the router.
func deliverCallResult(t *testing.T, c *Client, id string, payload any) {
	t.Helper()

	data, err := ocpp.EncodeCallResult(id, payload)
	if err != nil {
		t.Fatalf("EncodeCallResult() error = %v", err)
	}
	c.handleFrame(data)
}

// drainQueue pops every queued frame and returns the decoded Calls in
// queue order.
func drainQueue(t *testing.T, st *store.Memory) []*ocpp.Frame {
	t.Helper()

	var frames []*ocpp.Frame
	for {
		data, ok := st.Dequeue()
		if !ok {
			return frames
		}
		frame, err := ocpp.Decode(data)
		if err != nil {
			t.Fatalf("queued frame does not decode: %v", err)
		}
		frames = append(frames, frame)
	}
}

// lastSentFrame decodes the most recent frame written to the transport.
func lastSentFrame(t *testing.T, ft *fakeTransport) *ocpp.Frame {
	t.Helper()

	if len(ft.sent) == 0 {
		t.Fatal("no frame was sent")
	}
	frame, err := ocpp.Decode(ft.sent[len(ft.sent)-1])
	if err != nil {
		t.Fatalf("sent frame does not decode: %v", err)
	}
	return frame
}

func unmarshalPayload(t *testing.T, frame *ocpp.Frame, out any) {
	t.Helper()

	if err := json.Unmarshal(frame.Payload, out); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
}

func connectorStatus(t *testing.T, st *store.Memory) string {
	t.Helper()

	status, ok := st.ConnectorStatus(0, 0)
	if !ok {
		t.Fatal("connector (0,0) out of range")
	}
	return status
}
