// Package cli provides the interactive prepa command-line client.
//
// It wires configuration, the persisted session, the API client, and an
// interactive REPL. Typical flow: resume the stored session (or log in),
// then execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - Profile: whoami, edit, password change, account deletion
//   - Alerts: list, add, delete
//   - Employees: list, add
//
// When the HTTP layer reports that the session could not be refreshed, the
// REPL prints a notice and opens the login prompt before the next command.
// Commands that need a session do the same when none is held.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
