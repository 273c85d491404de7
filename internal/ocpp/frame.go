package ocpp

import (
	"encoding/json"
	"fmt"
)

// OCPP-J message type identifiers (first element of every frame array)
const (
	MessageTypeCall       = 2
	MessageTypeCallResult = 3
	MessageTypeCallError  = 4
)

// Actions the station sends or handles
const (
	ActionBootNotification        = "BootNotification"
	ActionHeartbeat               = "Heartbeat"
	ActionStatusNotification      = "StatusNotification"
	ActionTransactionEvent        = "TransactionEvent"
	ActionSetVariables            = "SetVariables"
	ActionGetVariables            = "GetVariables"
	ActionRequestStartTransaction = "RequestStartTransaction"
	ActionRequestStopTransaction  = "RequestStopTransaction"
)

// Frame represents a decoded OCPP-J frame. Which fields are populated
// depends on Type:
//
//	Call:       ID, Action, Payload
//	CallResult: ID, Payload
//	CallError:  ID, ErrorCode, ErrorDescription, ErrorDetails
type Frame struct {
	Type             int
	ID               string
	Action           string
	Payload          json.RawMessage
	ErrorCode        string
	ErrorDescription string
	ErrorDetails     json.RawMessage
}

// Decode parses a wire frame into its typed representation.
//
// OCPP-J frames are positional JSON arrays:
//
//	[2, "<id>", "<action>", {payload}]                      Call
//	[3, "<id>", {payload}]                                  CallResult
//	[4, "<id>", "<code>", "<description>", {details}]       CallError
//
// A decode error never indicates anything about the session; callers log
// the failure and drop the frame.
func Decode(data []byte) (*Frame, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("frame is not a JSON array: %w", err)
	}
	if len(elems) < 2 {
		return nil, fmt.Errorf("frame has %d elements, need at least 2", len(elems))
	}

	frame := &Frame{}
	if err := json.Unmarshal(elems[0], &frame.Type); err != nil {
		return nil, fmt.Errorf("message type id is not a number: %w", err)
	}
	if err := json.Unmarshal(elems[1], &frame.ID); err != nil {
		return nil, fmt.Errorf("message id is not a string: %w", err)
	}

	switch frame.Type {
	case MessageTypeCall:
		if len(elems) != 4 {
			return nil, fmt.Errorf("CALL frame has %d elements, want 4", len(elems))
		}
		if err := json.Unmarshal(elems[2], &frame.Action); err != nil {
			return nil, fmt.Errorf("CALL action is not a string: %w", err)
		}
		frame.Payload = elems[3]

	case MessageTypeCallResult:
		if len(elems) != 3 {
			return nil, fmt.Errorf("CALLRESULT frame has %d elements, want 3", len(elems))
		}
		frame.Payload = elems[2]

	case MessageTypeCallError:
		if len(elems) != 5 {
			return nil, fmt.Errorf("CALLERROR frame has %d elements, want 5", len(elems))
		}
		if err := json.Unmarshal(elems[2], &frame.ErrorCode); err != nil {
			return nil, fmt.Errorf("CALLERROR code is not a string: %w", err)
		}
		if err := json.Unmarshal(elems[3], &frame.ErrorDescription); err != nil {
			return nil, fmt.Errorf("CALLERROR description is not a string: %w", err)
		}
		frame.ErrorDetails = elems[4]

	default:
		return nil, fmt.Errorf("unknown message type id %d", frame.Type)
	}

	return frame, nil
}

// EncodeCall serializes a Call frame.
func EncodeCall(id, action string, payload any) ([]byte, error) {
	data, err := json.Marshal([]any{MessageTypeCall, id, action, payload})
	if err != nil {
		return nil, fmt.Errorf("encoding CALL %s: %w", action, err)
	}
	return data, nil
}

// EncodeCallResult serializes a CallResult frame answering the Call
// identified by id.
func EncodeCallResult(id string, payload any) ([]byte, error) {
	data, err := json.Marshal([]any{MessageTypeCallResult, id, payload})
	if err != nil {
		return nil, fmt.Errorf("encoding CALLRESULT: %w", err)
	}
	return data, nil
}

// EncodeCallError serializes a CallError frame answering the Call
// identified by id. details may be nil; it is encoded as an empty object.
func EncodeCallError(id, code, description string, details any) ([]byte, error) {
	if details == nil {
		details = struct{}{}
	}
	data, err := json.Marshal([]any{MessageTypeCallError, id, code, description, details})
	if err != nil {
		return nil, fmt.Errorf("encoding CALLERROR: %w", err)
	}
	return data, nil
}
