package internal

import "errors"

var (
	// ErrConfigMissing is returned when a required configuration key is absent.
	ErrConfigMissing = errors.New("configuration key not found")
	// ErrConfigInvalid is returned when a configuration value cannot be parsed
	// or falls outside its enumerated set.
	ErrConfigInvalid = errors.New("invalid configuration value")
	// ErrParamInconsistent is returned when chunking parameters contradict each
	// other, e.g. min > avg or a zero window.
	ErrParamInconsistent = errors.New("inconsistent chunking parameters")
)
