package station

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/voltlab/stationd/internal/logging"
	"github.com/voltlab/stationd/internal/ocpp"
	"github.com/voltlab/stationd/internal/store"
)

// Subprotocol is the websocket subprotocol the station requires from the
// CSMS during the handshake.
const Subprotocol = "ocpp2.0"

// dialTimeout bounds the websocket handshake.
const dialTimeout = 30 * time.Second

// Config holds the session parameters for one CSMS connection.
type Config struct {
	URL string

	// Station identity, reported in BootNotification.
	Model        string
	VendorName   string
	SerialNumber string // empty = not reported
	BootReason   string

	// Delivery queue tuning.
	QueueFetchInterval time.Duration
	MessageExpiry      time.Duration
}

// Transport writes serialized frames to the CSMS. It exists so handler
// logic can be exercised without a live websocket.
type Transport interface {
	Send(data []byte) error
	Close() error
}

// CapabilityTable reports how the station classifies component/variable
// addresses received from the CSMS.
type CapabilityTable interface {
	LookupVariable(component, variable string) (status, value string)
	ClassifySet(component, variable string) string
}

// Client is the protocol engine for one CSMS session. All frame and timer
// events are processed on the single goroutine running Run; handlers never
// block and never run concurrently with each other.
type Client struct {
	cfg       Config
	store     store.Store
	caps      CapabilityTable
	transport Transport

	inbound chan []byte

	// Heartbeat scheduling. The interval is written exactly once, by the
	// BootNotification response handler, and read only on the reactor
	// goroutine when the timer is rearmed. heartbeatC stays nil until the
	// interval is known, so the reactor select never fires early.
	heartbeatInterval time.Duration
	heartbeat         *time.Timer
	heartbeatC        <-chan time.Time
}

// New creates a Client. Dial must be called before Run.
func New(cfg Config, st store.Store, caps CapabilityTable) *Client {
	return &Client{
		cfg:     cfg,
		store:   st,
		caps:    caps,
		inbound: make(chan []byte),
	}
}

// wsTransport adapts a gorilla websocket connection to Transport. OCPP-J
// frames travel as text messages.
type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) Send(data []byte) error {
	return t.conn.WriteMessage(websocket.TextMessage, data)
}

func (t *wsTransport) Close() error {
	return t.conn.Close()
}

// Dial connects to the CSMS, negotiating the ocpp2.0 subprotocol. The
// connection fails if the server does not accept it.
func (c *Client) Dial(ctx context.Context) error {
	dialer := websocket.Dialer{
		Subprotocols:     []string{Subprotocol},
		HandshakeTimeout: dialTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to CSMS at %s: %w", c.cfg.URL, err)
	}

	if conn.Subprotocol() != Subprotocol {
		_ = conn.Close()
		return fmt.Errorf("CSMS did not accept subprotocol %q (negotiated %q)", Subprotocol, conn.Subprotocol())
	}

	logging.LogConnection(conn.RemoteAddr().String(), "websocket_connected")

	c.transport = &wsTransport{conn: conn}
	go c.readLoop(conn)

	return nil
}

// readLoop feeds inbound frames to the reactor. Any read error is
// terminal for the session; the loop closes the inbound channel and the
// reactor shuts down.
func (c *Client) readLoop(conn *websocket.Conn) {
	defer close(c.inbound)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logging.Info("Connection closed",
				zap.String("remote_addr", conn.RemoteAddr().String()),
				zap.Error(err),
			)
			return
		}
		c.inbound <- data
	}
}

// Run drives the session until the connection closes or ctx is cancelled.
// It processes exactly one inbound frame or timer event at a time.
func (c *Client) Run(ctx context.Context) error {
	c.onOpen()

	// The queue-fetch timer always rearms itself, whether or not the tick
	// did any work; a ticker gives exactly that behavior.
	ticker := time.NewTicker(c.cfg.QueueFetchInterval)
	defer ticker.Stop()
	defer c.stopHeartbeat()

	for {
		select {
		case <-ctx.Done():
			_ = c.transport.Close()
			return ctx.Err()

		case data, ok := <-c.inbound:
			if !ok {
				// Peer close or transport error: terminal, no reconnect.
				_ = c.transport.Close()
				return nil
			}
			c.handleFrame(data)

		case <-ticker.C:
			c.pumpQueue(time.Now())

		case <-c.heartbeatC:
			c.onHeartbeat()
		}
	}
}

// onOpen enqueues the BootNotification Call that starts the session.
func (c *Client) onOpen() {
	id := ocpp.NewMessageID()
	frame, err := ocpp.BuildBootNotification(id, c.cfg.BootReason, c.cfg.Model, c.cfg.VendorName, c.cfg.SerialNumber)
	if err != nil {
		logging.Error("Failed to build BootNotification", zap.Error(err))
		return
	}
	c.enqueueCall(id, ocpp.ActionBootNotification, frame)
}

// onHeartbeat enqueues one Heartbeat Call and rearms the timer with the
// session interval.
func (c *Client) onHeartbeat() {
	id := ocpp.NewMessageID()
	frame, err := ocpp.BuildHeartbeat(id)
	if err != nil {
		logging.Error("Failed to build Heartbeat", zap.Error(err))
	} else {
		c.enqueueCall(id, ocpp.ActionHeartbeat, frame)
	}
	c.heartbeat.Reset(c.heartbeatInterval)
}

// armHeartbeat starts the heartbeat timer once the interval is known from
// the boot handshake. Rearming an already armed timer is a no-op: the
// interval is session-scoped and written once.
func (c *Client) armHeartbeat(interval time.Duration) {
	if c.heartbeatC != nil {
		logging.Warn("Heartbeat timer already armed, ignoring new interval",
			zap.Duration("interval", interval),
		)
		return
	}
	c.heartbeatInterval = interval
	c.heartbeat = time.NewTimer(interval)
	c.heartbeatC = c.heartbeat.C
	logging.Info("Heartbeat timer armed", zap.Duration("interval", interval))
}

func (c *Client) stopHeartbeat() {
	if c.heartbeat != nil {
		c.heartbeat.Stop()
	}
}

// enqueueCall records an outbound Call as pending under its id and appends
// it to the delivery queue.
func (c *Client) enqueueCall(id, action string, frame []byte) {
	c.store.StoreMessage(id, frame)
	c.store.Enqueue(frame)
	logging.Debug("Call enqueued",
		zap.String("action", action),
		zap.String("message_id", id),
	)
}

// sendDirect writes a response frame straight to the transport, bypassing
// the delivery queue. Responses answer a Call the CSMS is waiting on and
// are never queued behind station-initiated traffic.
func (c *Client) sendDirect(data []byte) {
	if err := c.transport.Send(data); err != nil {
		logging.Error("Failed to send response", zap.Error(err))
	}
}
