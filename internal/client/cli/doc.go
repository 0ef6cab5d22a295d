// Package cli provides the interactive employeeboard command-line client.
//
// It wires configuration, the GraphQL transport, the caching data service,
// the view-model reconciler and an interactive REPL. A background watcher
// pings the server and the prompt shows whether it is reachable.
//
// Views:
//   - employee list (sorted newest first)
//   - employee detail with posts
//   - post detail with comments (newest first)
//
// Create commands prompt for the form fields; delete commands ask for
// confirmation. The REPL is started via App.Run(ctx), which blocks until the
// user exits. See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
