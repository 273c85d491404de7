// Package logging provides structured logging for the station daemon.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the protocol engine. All log functions use
// structured fields for queryability:
//
//	logging.Info("CALL received",
//	    zap.String("action", "RequestStartTransaction"),
//	    zap.String("message_id", id),
//	)
//
// # Configuration
//
// Initialize logging at startup and flush on exit:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// When no level is given, the STATIOND_LOG_LEVEL environment variable is
// consulted; with neither set the logger is a no-op.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
