// Package preflight answers the filesystem questions that must hold before a
// customer migration job is handed to Pentaho Kitchen.
//
// Each check is an independent predicate: it returns a bool, never an error,
// and reports a failure exactly once through the injected Reporter at the
// severity that describes how bad the failure is. A passing check reports
// nothing. Checks never decide whether a job may run; RunAll collects their
// Results and Blocking/Ready turn them into a go/no-go answer for callers.
//
// The checks only stat paths. They never create, modify, or remove anything
// under the Pentaho installation or the migration root.
package preflight
