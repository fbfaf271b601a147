package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("invalid config")
	// ErrLoad is wrapped when a layer cannot be read or decoded.
	ErrLoad = errors.New("load config failed")
)
