// Package cli provides the interactive gophmedia command-line client.
//
// It wires configuration, the local media cache, the remote media client
// (REST or S3), the read-side stores and the action layer behind a REPL.
// Results of background operations are printed as they arrive by a
// dispatcher subscriber, so a command can return before its upload or
// deletion settles.
//
// Key features:
//   - Browse the library page by page, filtered by search text, MIME type or
//     parent post
//   - Upload local files or URLs, attached to the active parent post
//   - Retitle, describe, replace and delete items
//   - Select items and clear validation errors
//   - Online/offline status from a background connectivity watcher
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
