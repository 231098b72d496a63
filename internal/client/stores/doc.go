// Package stores holds the read side of gophmedia: in-memory views of media
// records, library paging, validation errors, the library selection and the
// editing session.
//
// Every store except EditSession is a dispatcher subscriber. Register its
// Handle method on a dispatcher.Bus; it then updates itself synchronously for
// each payload. Reads are safe for concurrent use.
//
//	bus := dispatcher.NewBus()
//	bus.Register(validation.Handle)
//	bus.Register(records.Handle)
//	bus.Register(pages.Handle)
package stores
