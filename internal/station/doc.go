// Package station implements the client-side OCPP 2.0 protocol engine of
// the charging station.
//
// # Architecture
//
// One Client owns one CSMS session. A reader goroutine feeds inbound
// frames into a channel; the reactor loop in Run selects over that
// channel, the fixed-period queue-fetch ticker, and the heartbeat timer,
// and processes exactly one event at a time to completion. Handlers never
// block, so no locking is needed beyond what the store provides.
//
// # Message flow
//
// Inbound frames are classified by message type id. Calls dispatch to an
// action handler; CallResults are correlated to the pending Call with the
// same id and dispatch on the original action; CallErrors are logged.
//
// Outbound traffic splits in two: responses to CSMS Calls are written
// directly to the socket, while station-initiated Calls (BootNotification,
// Heartbeat, StatusNotification, TransactionEvent) are recorded as pending
// and placed on the delivery queue. The queue transmits at most one
// message per expiry window; see pumpQueue.
//
// # Session lifecycle
//
// Dial negotiates the ocpp2.0 websocket subprotocol; Run enqueues
// BootNotification and drives the reactor. Boot acceptance marks the
// connector Available and arms the heartbeat timer with the
// server-provided interval. Peer close or a transport error ends the
// session; there is no reconnect.
package station
