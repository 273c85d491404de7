package station

import (
	"go.uber.org/zap"

	"github.com/voltlab/stationd/internal/logging"
	"github.com/voltlab/stationd/internal/ocpp"
)

// handleFrame classifies one inbound frame and dispatches it. A frame that
// cannot be decoded is logged and dropped; the session stays alive.
func (c *Client) handleFrame(data []byte) {
	frame, err := ocpp.Decode(data)
	if err != nil {
		logging.Warn("Discarding malformed frame",
			zap.Error(err),
			zap.Int("length", len(data)),
		)
		return
	}

	switch frame.Type {
	case ocpp.MessageTypeCall:
		logging.LogFrameReceived("CALL", frame.ID, len(data))
		c.handleCall(frame)

	case ocpp.MessageTypeCallResult:
		logging.LogFrameReceived("CALLRESULT", frame.ID, len(data))
		c.handleCallResult(frame)

	case ocpp.MessageTypeCallError:
		// Logged with no corrective action: the station neither retries
		// the original request nor reverts state already applied.
		logging.Warn("CALLERROR received",
			zap.String("message_id", frame.ID),
			zap.String("error_code", frame.ErrorCode),
			zap.String("error_description", frame.ErrorDescription),
			zap.ByteString("error_details", frame.ErrorDetails),
		)
	}
}

// handleCall dispatches a CSMS request to its action handler. A handler
// error means the payload was unusable; the Call is answered with a
// CallError and the session continues.
func (c *Client) handleCall(frame *ocpp.Frame) {
	var err error
	switch frame.Action {
	case ocpp.ActionSetVariables:
		err = c.handleSetVariables(frame)
	case ocpp.ActionGetVariables:
		err = c.handleGetVariables(frame)
	case ocpp.ActionRequestStartTransaction:
		err = c.handleRequestStartTransaction(frame)
	case ocpp.ActionRequestStopTransaction:
		err = c.handleRequestStopTransaction(frame)
	default:
		logging.Warn("No request handler for action",
			zap.String("action", frame.Action),
			zap.String("message_id", frame.ID),
		)
		return
	}

	if err != nil {
		logging.Warn("Rejecting malformed CALL",
			zap.String("action", frame.Action),
			zap.String("message_id", frame.ID),
			zap.Error(err),
		)
		resp, buildErr := ocpp.EncodeCallError(frame.ID, ocpp.ErrorFormationViolation, err.Error(), nil)
		if buildErr != nil {
			logging.Error("Failed to build CALLERROR", zap.Error(buildErr))
			return
		}
		c.sendDirect(resp)
	}
}

// handleCallResult correlates a response to the pending Call it answers
// and dispatches on the original action. An unknown id is a stale or
// duplicate response and is ignored.
func (c *Client) handleCallResult(frame *ocpp.Frame) {
	stored, ok := c.store.FetchMessage(frame.ID)
	if !ok {
		logging.Debug("CALLRESULT for unknown message id",
			zap.String("message_id", frame.ID),
		)
		return
	}

	orig, err := ocpp.Decode(stored)
	if err != nil {
		logging.Error("Stored pending message is unparseable",
			zap.String("message_id", frame.ID),
			zap.Error(err),
		)
		return
	}

	switch orig.Action {
	case ocpp.ActionBootNotification:
		c.handleBootNotificationResult(frame)
	default:
		logging.Warn("No response handler for action",
			zap.String("action", orig.Action),
			zap.String("message_id", frame.ID),
		)
	}
}
