// Package cli provides the interactive booking command-line client.
//
// It wires configuration, the local session store, API services and an
// interactive REPL. Typical flow: start a background session watcher, then
// execute user commands until exit.
//
// Key features:
//   - Login / Signup (three steps) / Forgot password / Logout
//   - Status of the stored session
//   - Browse provinces, hosts, tours and stays
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartSessionWatcher, and runREPL for details.
package cli
