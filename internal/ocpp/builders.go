package ocpp

import (
	"time"

	"github.com/google/uuid"
)

// Message builder library for the frames this station sends to the CSMS.
// Builders are pure: given the semantic fields they return the serialized
// frame, ready for the delivery queue or a direct response write.

// NewMessageID returns a fresh correlation id. Ids are random v4 UUIDs, so
// they are unique for the lifetime of the session. Transaction ids use the
// same generator.
func NewMessageID() string {
	return uuid.NewString()
}

// BuildBootNotification builds the BootNotification Call carrying the
// station identity. serialNumber is omitted from the payload when empty.
func BuildBootNotification(id, reason, model, vendorName, serialNumber string) ([]byte, error) {
	return EncodeCall(id, ActionBootNotification, BootNotificationRequest{
		Reason: reason,
		ChargingStation: ChargingStation{
			Model:        model,
			VendorName:   vendorName,
			SerialNumber: serialNumber,
		},
	})
}

// BuildHeartbeat builds a Heartbeat Call. The payload is an empty object.
func BuildHeartbeat(id string) ([]byte, error) {
	return EncodeCall(id, ActionHeartbeat, struct{}{})
}

// BuildStatusNotification builds a StatusNotification Call reporting a
// connector status. evseID and connectorID are the 1-based wire indices.
func BuildStatusNotification(id string, evseID, connectorID int, status string, now time.Time) ([]byte, error) {
	return EncodeCall(id, ActionStatusNotification, StatusNotificationRequest{
		Timestamp:       now.UTC().Format(time.RFC3339),
		ConnectorStatus: status,
		EvseID:          evseID,
		ConnectorID:     connectorID,
	})
}

// BuildTransactionEvent builds a TransactionEvent Call. chargingState and
// stoppedReason may be empty and remoteStartID nil; absent fields are
// omitted from the payload.
func BuildTransactionEvent(id, transactionID, eventType, trigger, chargingState string, remoteStartID *int, stoppedReason string, now time.Time) ([]byte, error) {
	return EncodeCall(id, ActionTransactionEvent, TransactionEventRequest{
		EventType:     eventType,
		Timestamp:     now.UTC().Format(time.RFC3339),
		TriggerReason: trigger,
		TransactionInfo: TransactionInfo{
			TransactionID: transactionID,
			ChargingState: chargingState,
			RemoteStartID: remoteStartID,
			StoppedReason: stoppedReason,
		},
	})
}

// BuildSetVariablesResult builds the CallResult answering a SetVariables
// Call, with one result item per request item in request order.
func BuildSetVariablesResult(id string, results []SetVariableResult) ([]byte, error) {
	return EncodeCallResult(id, SetVariablesResponse{SetVariableResult: results})
}

// BuildGetVariablesResult builds the CallResult answering a GetVariables
// Call.
func BuildGetVariablesResult(id string, results []GetVariableResult) ([]byte, error) {
	return EncodeCallResult(id, GetVariablesResponse{GetVariableResult: results})
}

// BuildRequestStartTransactionResult builds the CallResult answering a
// RequestStartTransaction Call.
func BuildRequestStartTransactionResult(id, status string, remoteStartID int) ([]byte, error) {
	return EncodeCallResult(id, RequestStartTransactionResponse{
		Status:        status,
		RemoteStartID: remoteStartID,
	})
}

// BuildRequestStopTransactionResult builds the CallResult answering a
// RequestStopTransaction Call.
func BuildRequestStopTransactionResult(id, status string) ([]byte, error) {
	return EncodeCallResult(id, RequestStopTransactionResponse{Status: status})
}
