// Package actions is the media action layer of gophmedia.
//
// # Overview
//
// Actions sits between the user interface and the remote media client. Every
// operation first emits an intent (view action) on the dispatcher, in the
// caller's goroutine, so the stores can update optimistically. Network work
// then runs in the background and its outcome is emitted as a result (server
// action). The package never touches store internals; it only reads them
// through the interfaces in Stores.
//
// The operations:
//   - FetchItem fetches one record, at most once concurrently per site/item.
//   - Upload creates placeholder records for a batch of files and uploads them
//     one at a time, in input order.
//   - Edit, Update, UpdateAll, Delete and DeleteAll change existing records.
//   - SetQuery and FetchNextPage drive library paging.
//   - SetLibrarySelectedItems, ClearValidationErrors and
//     ClearValidationErrorsByType are pure intents.
//
// # Errors
//
// Nothing here returns an error. Client failures are delivered verbatim in the
// result action and are never retried.
//
// # Concurrency
//
// Background operations return a channel that is closed once every result
// action of the call has been emitted; callers may ignore it. Network calls
// run with context.WithoutCancel: cancelling the caller's context does not
// abort work already started.
package actions
