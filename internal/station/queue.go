package station

import (
	"time"

	"go.uber.org/zap"

	"github.com/voltlab/stationd/internal/logging"
	"github.com/voltlab/stationd/internal/ocpp"
)

// pumpQueue runs one pass of the delivery policy. At most one queued
// message is in flight at a time: the head is transmitted only when
// nothing has been sent yet or the in-flight window has expired.
//
// An expired message is not retransmitted; the queue simply advances to
// the next one. That trades reliability for forward progress and is the
// intended behavior, not an oversight.
func (c *Client) pumpQueue(now time.Time) {
	if c.store.QueueSize() == 0 {
		return
	}

	last := c.store.LastSent()
	if last.Exists() && now.Sub(last.Timestamp) < c.cfg.MessageExpiry {
		return
	}

	data, ok := c.store.Dequeue()
	if !ok {
		return
	}

	frame, err := ocpp.Decode(data)
	if err != nil {
		// A queued frame is always one of our own builds, so this points
		// at a builder bug. Drop it rather than wedge the queue.
		logging.Error("Dropping unparseable queued message", zap.Error(err))
		return
	}

	if err := c.transport.Send(data); err != nil {
		logging.Error("Failed to send queued message",
			zap.String("action", frame.Action),
			zap.String("message_id", frame.ID),
			zap.Error(err),
		)
		return
	}

	logging.LogFrameSent(frame.Action, frame.ID, len(data))
	c.store.RecordLastSent(frame.ID, now)
}
