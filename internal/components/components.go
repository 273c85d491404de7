// Package components is the static capability table of the charging
// station: which components and variables exist, and what the station
// reports when the CSMS reads or writes them.
package components

import "github.com/voltlab/stationd/internal/ocpp"

// Table answers component/variable lookups for GetVariables and
// classifies SetVariables attempts.
type Table struct {
	// component -> variable -> current value
	variables map[string]map[string]string
}

// New returns the capability table of this station build. The only
// settable-looking capability, AuthCtrlr/AuthorizeRemoteStart, is pinned
// and write attempts are rejected.
func New() *Table {
	return &Table{
		variables: map[string]map[string]string{
			"AuthCtrlr": {
				"AuthorizeRemoteStart": "false",
			},
		},
	}
}

// LookupVariable returns the attribute status for reading the addressed
// variable and, when the variable is known, its current value.
func (t *Table) LookupVariable(component, variable string) (status, value string) {
	vars, ok := t.variables[component]
	if !ok {
		return ocpp.AttributeStatusUnknownComponent, ""
	}
	val, ok := vars[variable]
	if !ok {
		return ocpp.AttributeStatusUnknownVariable, ""
	}
	return ocpp.AttributeStatusAccepted, val
}

// ClassifySet returns the attribute status for a write attempt. Known
// variables are read-only in this build, so a recognized address always
// classifies as Rejected.
func (t *Table) ClassifySet(component, variable string) string {
	vars, ok := t.variables[component]
	if !ok {
		return ocpp.AttributeStatusUnknownComponent
	}
	if _, ok := vars[variable]; !ok {
		return ocpp.AttributeStatusUnknownVariable
	}
	return ocpp.AttributeStatusRejected
}
