// Package ocpp implements the OCPP 2.0 JSON wire format used between the
// charging station and the CSMS.
//
// # Frame Format
//
// Every message travels as a positional JSON array whose first element is
// the message type id:
//
//	[2, "<id>", "<action>", {payload}]                 Call (request)
//	[3, "<id>", {payload}]                             CallResult (success)
//	[4, "<id>", "<code>", "<description>", {details}]  CallError (failure)
//
// The second element is an opaque correlation id linking a Call to its
// eventual CallResult or CallError. This station generates random UUID v4
// ids, so ids never collide within a session.
//
// # Usage Example - Parsing
//
//	frame, err := ocpp.Decode(data)
//	if err != nil {
//	    // malformed frame: log and drop, the session stays up
//	}
//	switch frame.Type {
//	case ocpp.MessageTypeCall:
//	    // dispatch on frame.Action, unmarshal frame.Payload
//	}
//
// # Usage Example - Construction
//
//	id := ocpp.NewMessageID()
//	msg, err := ocpp.BuildHeartbeat(id)
//	// store as pending under id, then enqueue msg
//
// # Thread Safety
//
// All encode, decode, and builder functions are stateless and safe for
// concurrent use.
package ocpp
