// Package main hosts the migrunner CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the preflight checks for a customer
// migration, lists customer folders under the migration root, browses the
// recorded check history, and scaffolds configuration. Configuration is
// resolved once per invocation and logging is assembled from it, so
// subcommands only translate flags into calls on the internal packages.
package main
