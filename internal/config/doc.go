// Package config loads, normalizes, and validates migrunner configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the PENTAHO_DIR and MIG_ROOT
// environment fallbacks. The Config type centralizes the Pentaho installation
// root, the migration root, the reserved customer folder names, and the closed
// set of migration types, so the preflight checks receive every value in one
// pass.
//
// Load the file once per process and treat the result as read-only; the
// preflight package copies what it needs at construction time.
package config
