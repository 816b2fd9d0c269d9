// Package history persists preflight check sessions in SQLite so operators
// can see when a customer last passed or failed its checks.
//
// The schema is applied from embedded migrations/*.sql files, each at most
// once, tracked in schema_migrations.
package history
