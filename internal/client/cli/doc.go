// Package cli provides the interactive taskkeeper command-line client.
//
// It wires configuration, the local session store, API services and an
// interactive REPL. On start the previous session is restored, a background
// watcher tracks server reachability, and user commands are executed until
// the user exits.
//
// Key features:
//   - register / login / logout, with the session kept across restarts
//   - profile viewing and editing
//   - listing (with search), adding, completing, editing and deleting tasks
//   - exporting tasks to object storage
//
// help only lists the commands usable in the current session state.
package cli
