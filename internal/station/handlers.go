package station

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/voltlab/stationd/internal/logging"
	"github.com/voltlab/stationd/internal/ocpp"
)

// handleSetVariables answers a SetVariables Call with one result item per
// request item, preserving request order. No variable is actually
// writable in this build; known addresses classify as Rejected.
func (c *Client) handleSetVariables(frame *ocpp.Frame) error {
	var req ocpp.SetVariablesRequest
	if err := json.Unmarshal(frame.Payload, &req); err != nil {
		return fmt.Errorf("decoding SetVariables payload: %w", err)
	}

	results := make([]ocpp.SetVariableResult, 0, len(req.SetVariableData))
	for _, item := range req.SetVariableData {
		results = append(results, ocpp.SetVariableResult{
			AttributeStatus: c.caps.ClassifySet(item.Component, item.Variable.Name),
			Component:       item.Component,
			Variable:        item.Variable,
		})
	}

	resp, err := ocpp.BuildSetVariablesResult(frame.ID, results)
	if err != nil {
		return err
	}
	c.sendDirect(resp)
	return nil
}

// handleGetVariables answers a GetVariables Call from the capability
// table. attributeValue appears in a result item only when the table
// knows a value for the address.
func (c *Client) handleGetVariables(frame *ocpp.Frame) error {
	var req ocpp.GetVariablesRequest
	if err := json.Unmarshal(frame.Payload, &req); err != nil {
		return fmt.Errorf("decoding GetVariables payload: %w", err)
	}

	results := make([]ocpp.GetVariableResult, 0, len(req.GetVariableData))
	for _, item := range req.GetVariableData {
		status, value := c.caps.LookupVariable(item.Component, item.Variable.Name)
		results = append(results, ocpp.GetVariableResult{
			AttributeStatus: status,
			AttributeValue:  value,
			Component:       item.Component,
			Variable:        item.Variable,
		})
	}

	resp, err := ocpp.BuildGetVariablesResult(frame.ID, results)
	if err != nil {
		return err
	}
	c.sendDirect(resp)
	return nil
}

// handleRequestStartTransaction starts a remote charging transaction.
//
// The addressed connector (evseId translated to the 0-based store index,
// sub-connector 0) must be Available; otherwise the request is Rejected
// and nothing changes. On acceptance the handler responds, marks the
// connector Occupied, and enqueues StatusNotification, TransactionEvent
// Started and TransactionEvent Updated, in that order.
func (c *Client) handleRequestStartTransaction(frame *ocpp.Frame) error {
	var req ocpp.RequestStartTransactionRequest
	if err := json.Unmarshal(frame.Payload, &req); err != nil {
		return fmt.Errorf("decoding RequestStartTransaction payload: %w", err)
	}
	if req.RemoteStartID == nil {
		return fmt.Errorf("RequestStartTransaction payload missing remoteStartId")
	}
	if req.EvseID == nil {
		return fmt.Errorf("RequestStartTransaction payload missing evseId")
	}
	remoteStartID := *req.RemoteStartID
	evseID := *req.EvseID

	status := ocpp.StatusAccepted
	current, ok := c.store.ConnectorStatus(evseID-1, 0)
	if !ok || current != ocpp.ConnectorStatusAvailable {
		status = ocpp.StatusRejected
	}

	resp, err := ocpp.BuildRequestStartTransactionResult(frame.ID, status, remoteStartID)
	if err != nil {
		return err
	}
	c.sendDirect(resp)

	if status == ocpp.StatusRejected {
		logging.Info("RequestStartTransaction rejected",
			zap.Int("evse_id", evseID),
			zap.String("connector_status", current),
		)
		return nil
	}

	transactionID := ocpp.NewMessageID()
	now := time.Now()

	c.setConnectorStatus(evseID, ocpp.ConnectorStatusOccupied, now)

	// Started event first, then the cable-plugged-in update. Both are
	// pending before they are queued, like every other Call.
	startedID := ocpp.NewMessageID()
	started, err := ocpp.BuildTransactionEvent(startedID, transactionID, ocpp.EventStarted, ocpp.TriggerRemoteStart, "", &remoteStartID, "", now)
	if err != nil {
		logging.Error("Failed to build TransactionEvent Started", zap.Error(err))
		return nil
	}
	c.enqueueCall(startedID, ocpp.ActionTransactionEvent, started)

	// The transaction record keeps the request body verbatim; the stop
	// handler re-reads evseId from it.
	c.store.StoreTransaction(transactionID, frame.Payload)

	updatedID := ocpp.NewMessageID()
	updated, err := ocpp.BuildTransactionEvent(updatedID, transactionID, ocpp.EventUpdated, ocpp.TriggerCablePluggedIn, ocpp.ChargingStateCharging, nil, "", now)
	if err != nil {
		logging.Error("Failed to build TransactionEvent Updated", zap.Error(err))
		return nil
	}
	c.enqueueCall(updatedID, ocpp.ActionTransactionEvent, updated)

	logging.Info("Transaction started",
		zap.String("transaction_id", transactionID),
		zap.Int("remote_start_id", remoteStartID),
		zap.Int("evse_id", evseID),
	)
	return nil
}

// handleRequestStopTransaction stops a running transaction. An unknown
// transaction id is Rejected with no state change. On acceptance the
// handler enqueues TransactionEvent Updated and Ended, deletes the
// transaction record, and returns the connector to Available.
func (c *Client) handleRequestStopTransaction(frame *ocpp.Frame) error {
	var req ocpp.RequestStopTransactionRequest
	if err := json.Unmarshal(frame.Payload, &req); err != nil {
		return fmt.Errorf("decoding RequestStopTransaction payload: %w", err)
	}
	if req.TransactionID == nil {
		return fmt.Errorf("RequestStopTransaction payload missing transactionId")
	}
	transactionID := *req.TransactionID

	startPayload, found := c.store.FetchTransaction(transactionID)

	status := ocpp.StatusAccepted
	if !found {
		status = ocpp.StatusRejected
	}

	resp, err := ocpp.BuildRequestStopTransactionResult(frame.ID, status)
	if err != nil {
		return err
	}
	c.sendDirect(resp)

	if !found {
		logging.Info("RequestStopTransaction rejected, unknown transaction",
			zap.String("transaction_id", transactionID),
		)
		return nil
	}

	now := time.Now()

	updatedID := ocpp.NewMessageID()
	updated, err := ocpp.BuildTransactionEvent(updatedID, transactionID, ocpp.EventUpdated, ocpp.TriggerRemoteStop, "", nil, "", now)
	if err != nil {
		logging.Error("Failed to build TransactionEvent Updated", zap.Error(err))
		return nil
	}
	c.enqueueCall(updatedID, ocpp.ActionTransactionEvent, updated)

	endedID := ocpp.NewMessageID()
	ended, err := ocpp.BuildTransactionEvent(endedID, transactionID, ocpp.EventEnded, ocpp.TriggerRemoteStop, "", nil, ocpp.StoppedReasonRemote, now)
	if err != nil {
		logging.Error("Failed to build TransactionEvent Ended", zap.Error(err))
		return nil
	}
	c.enqueueCall(endedID, ocpp.ActionTransactionEvent, ended)

	c.store.DeleteTransaction(transactionID)

	c.setConnectorStatus(c.transactionEvseID(startPayload), ocpp.ConnectorStatusAvailable, now)

	logging.Info("Transaction stopped", zap.String("transaction_id", transactionID))
	return nil
}

// transactionEvseID recovers the 1-based evseId from a stored start
// request payload, defaulting to 1 when the record cannot be decoded.
func (c *Client) transactionEvseID(startPayload []byte) int {
	var start ocpp.RequestStartTransactionRequest
	if err := json.Unmarshal(startPayload, &start); err == nil && start.EvseID != nil {
		return *start.EvseID
	}
	return 1
}

// handleBootNotificationResult reacts to the CSMS answer to our
// BootNotification. Acceptance marks the connector Available and arms the
// heartbeat timer with the interval from the payload. Any other status is
// left alone; this station does not retry the boot handshake.
func (c *Client) handleBootNotificationResult(frame *ocpp.Frame) {
	var resp ocpp.BootNotificationResponse
	if err := json.Unmarshal(frame.Payload, &resp); err != nil {
		logging.Warn("Discarding malformed BootNotification response", zap.Error(err))
		return
	}

	if resp.Status != ocpp.StatusAccepted {
		logging.Warn("BootNotification not accepted",
			zap.String("status", resp.Status),
		)
		return
	}
	logging.Info("BootNotification accepted")

	c.setConnectorStatus(1, ocpp.ConnectorStatusAvailable, time.Now())

	if resp.Interval == nil {
		logging.Warn("BootNotification response missing interval, heartbeat not armed")
		return
	}
	c.armHeartbeat(time.Duration(*resp.Interval) * time.Second)
}

// setConnectorStatus updates connector (evseID-1, 0) in the store and
// enqueues the StatusNotification reporting the change. evseID is
// 1-based, matching the wire form.
func (c *Client) setConnectorStatus(evseID int, status string, now time.Time) {
	if !c.store.SetConnectorStatus(evseID-1, 0, status) {
		logging.Warn("Connector address out of range",
			zap.Int("evse_id", evseID),
			zap.String("status", status),
		)
		return
	}

	id := ocpp.NewMessageID()
	frame, err := ocpp.BuildStatusNotification(id, evseID, 1, status, now)
	if err != nil {
		logging.Error("Failed to build StatusNotification", zap.Error(err))
		return
	}
	c.enqueueCall(id, ocpp.ActionStatusNotification, frame)
}
