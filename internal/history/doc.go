// Package history persists a record of completed pipeline runs in a local
// SQLite database so past transcriptions, costs, and failures can be
// reviewed from the CLI.
package history
