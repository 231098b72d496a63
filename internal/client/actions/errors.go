package actions

import "errors"

// ErrPanic is returned for a client request that panicked.
var ErrPanic = errors.New("media request panicked")
