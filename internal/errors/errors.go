package errors

import "errors"

var (
	ErrPrefixTooShort = errors.New("bin prefix too short")
	ErrCacheMiss      = errors.New("cache miss")
	ErrInvalidKey     = errors.New("invalid key")
	ErrLookupFailed   = errors.New("bin range lookup failed")
)
