package ocpp

// Status values used in responses and notifications. The protocol defines
// more connector states; this station only ever reports Available and
// Occupied (Unavailable is the pre-boot placeholder, never sent).
const (
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"

	AttributeStatusAccepted         = "Accepted"
	AttributeStatusRejected         = "Rejected"
	AttributeStatusUnknownComponent = "UnknownComponent"
	AttributeStatusUnknownVariable  = "UnknownVariable"

	ConnectorStatusAvailable   = "Available"
	ConnectorStatusOccupied    = "Occupied"
	ConnectorStatusUnavailable = "Unavailable"
)

// Transaction event vocabulary
const (
	EventStarted = "Started"
	EventUpdated = "Updated"
	EventEnded   = "Ended"

	TriggerRemoteStart    = "RemoteStart"
	TriggerRemoteStop     = "RemoteStop"
	TriggerCablePluggedIn = "CablePluggedIn"

	ChargingStateCharging = "Charging"
	StoppedReasonRemote   = "Remote"

	BootReasonPowerUp = "PowerUp"
)

// CallError codes the station emits
const (
	ErrorFormationViolation = "FormationViolation"
)

// Variable addresses a variable within a component.
type Variable struct {
	Name string `json:"name"`
}

// ChargingStation carries the station identity reported at boot.
type ChargingStation struct {
	Model        string `json:"model"`
	VendorName   string `json:"vendorName"`
	SerialNumber string `json:"serialNumber,omitempty"`
}

// BootNotificationRequest is the payload of the BootNotification Call sent
// when the connection opens.
type BootNotificationRequest struct {
	Reason          string          `json:"reason"`
	ChargingStation ChargingStation `json:"chargingStation"`
}

// BootNotificationResponse is the CSMS answer to BootNotification.
// Interval is a pointer so a missing field can be told apart from zero.
type BootNotificationResponse struct {
	CurrentTime string `json:"currentTime,omitempty"`
	Interval    *int   `json:"interval"`
	Status      string `json:"status"`
}

// StatusNotificationRequest reports a connector status change. EvseID and
// ConnectorID are 1-based on the wire.
type StatusNotificationRequest struct {
	Timestamp       string `json:"timestamp"`
	ConnectorStatus string `json:"connectorStatus"`
	EvseID          int    `json:"evseId"`
	ConnectorID     int    `json:"connectorId"`
}

// TransactionInfo identifies the transaction a TransactionEvent belongs to.
type TransactionInfo struct {
	TransactionID string `json:"transactionId"`
	ChargingState string `json:"chargingState,omitempty"`
	RemoteStartID *int   `json:"remoteStartId,omitempty"`
	StoppedReason string `json:"stoppedReason,omitempty"`
}

// TransactionEventRequest notifies the CSMS about transaction lifecycle
// changes (Started, Updated, Ended).
type TransactionEventRequest struct {
	EventType       string          `json:"eventType"`
	Timestamp       string          `json:"timestamp"`
	TriggerReason   string          `json:"triggerReason"`
	SeqNo           int             `json:"seqNo"`
	TransactionInfo TransactionInfo `json:"transactionInfo"`
}

// SetVariableData is one item of a SetVariables request.
type SetVariableData struct {
	AttributeValue string   `json:"attributeValue,omitempty"`
	Component      string   `json:"component"`
	Variable       Variable `json:"variable"`
}

// SetVariablesRequest asks the station to change variable values.
type SetVariablesRequest struct {
	SetVariableData []SetVariableData `json:"setVariableData"`
}

// SetVariableResult is one item of the SetVariables response, in the same
// order as the request items.
type SetVariableResult struct {
	AttributeStatus string   `json:"attributeStatus"`
	Component       string   `json:"component"`
	Variable        Variable `json:"variable"`
}

// SetVariablesResponse answers a SetVariables Call.
type SetVariablesResponse struct {
	SetVariableResult []SetVariableResult `json:"setVariableResult"`
}

// GetVariableData is one item of a GetVariables request.
type GetVariableData struct {
	Component string   `json:"component"`
	Variable  Variable `json:"variable"`
}

// GetVariablesRequest asks the station to report variable values.
type GetVariablesRequest struct {
	GetVariableData []GetVariableData `json:"getVariableData"`
}

// GetVariableResult is one item of the GetVariables response.
// AttributeValue is present only when the capability table knows a value.
type GetVariableResult struct {
	AttributeStatus string   `json:"attributeStatus"`
	AttributeValue  string   `json:"attributeValue,omitempty"`
	Component       string   `json:"component"`
	Variable        Variable `json:"variable"`
}

// GetVariablesResponse answers a GetVariables Call.
type GetVariablesResponse struct {
	GetVariableResult []GetVariableResult `json:"getVariableResult"`
}

// RequestStartTransactionRequest is the CSMS command to start charging
// remotely. Mandatory fields are pointers so the handler can reject a
// payload that omits them instead of acting on zero values.
type RequestStartTransactionRequest struct {
	RemoteStartID *int `json:"remoteStartId"`
	EvseID        *int `json:"evseId"`
}

// RequestStartTransactionResponse answers RequestStartTransaction.
type RequestStartTransactionResponse struct {
	Status        string `json:"status"`
	RemoteStartID int    `json:"remoteStartId"`
}

// RequestStopTransactionRequest is the CSMS command to stop a running
// transaction.
type RequestStopTransactionRequest struct {
	TransactionID *string `json:"transactionId"`
}

// RequestStopTransactionResponse answers RequestStopTransaction.
type RequestStopTransactionResponse struct {
	Status string `json:"status"`
}
