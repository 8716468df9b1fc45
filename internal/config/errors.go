package config

import "errors"

// Validation errors returned by [Config.validate].
var (
	// ErrInvalidWorkers indicates a non-positive worker count.
	ErrInvalidWorkers = errors.New("invalid worker configuration")
	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLang indicates an unsupported message language.
	ErrInvalidLang = errors.New("invalid language")
)
