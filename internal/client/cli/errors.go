package cli

import "errors"

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrUsage          = errors.New("usage")
	ErrNoSite         = errors.New("no site configured")
)
