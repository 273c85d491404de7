// Stationd is an OCPP 2.0 charging station client.
//
// It connects to a Charging Station Management System (CSMS) over a
// persistent websocket, announces itself with BootNotification, and then
// handles remote commands (variable access, remote start/stop of charging
// transactions) while reporting heartbeats, connector status, and
// transaction events.
//
// Usage:
//
//	stationd run --url ws://csms.example:9000/station-01 [flags]
//
// See 'stationd run --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voltlab/stationd/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stationd",
	Short: "OCPP 2.0 charging station client",
	Long: `A charging station client speaking OCPP 2.0 over websocket.

The client serves exactly one CSMS session: it dials the configured
endpoint with the ocpp2.0 subprotocol, performs the boot handshake, and
processes remote commands until the connection closes.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stationd %s\n", version.Full())
	},
}
