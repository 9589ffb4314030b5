// Package cli provides the interactive odooclock command-line client.
//
// It wires configuration, the local vault, the session manager, and an
// interactive REPL for attendance tracking. Typical flow: reconnect with the
// saved profile (or prompt for credentials), start a background status
// watcher, and execute user commands.
//
// Key features:
//   - Login / Reconnect / Logout against the backend server
//   - Punch in / punch out with server-derived state
//   - Today's status and attendance history
//   - Partner listing and name search
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartStatusWatcher, and runREPL for details.
package cli
