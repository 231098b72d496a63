// Package client contains the remote side of gophmedia.
//
// # Overview
//
// The package provides:
//  1. The transport-agnostic contract the action layer talks to (see
//     MediaClient): get, list, add (by URL or by file), update, edit (replace
//     the file) and delete, all scoped to a site.
//  2. RESTClient, a resty-based implementation against a WordPress.com-style
//     media endpoint, with bearer tokens checked for expiry before sending.
//  3. S3Client, an implementation over S3-compatible object storage that keeps
//     one JSON sidecar per record next to the content object.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite media cache, applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures map to sentinel errors matchable with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrTokenExpired. Other non-2xx
// responses surface as *APIError. The action layer never inspects them; it
// forwards them verbatim in result actions.
//
// # Concurrency & Contexts
//
// Both clients are safe for concurrent use. Every call takes a
// context.Context and honors its deadline.
package client
