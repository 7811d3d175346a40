// Package cli provides the interactive DineBridge back-office terminal.
//
// It wires configuration, local storage, the shared API client, the session
// manager, and an interactive REPL for restaurant staff. Typical flow: restore
// a previous session if one is stored, then execute user commands against the
// POS backend.
//
// Key features:
//   - Login / Logout with a "stay signed in" choice
//   - Floor overview: list tables, change table status
//   - Orders: list, inspect, create, advance through the kitchen pipeline
//   - Menu browsing
//   - Live order feed over the WebSocket channel
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, NewApp, and runREPL for details.
package cli
