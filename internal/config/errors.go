package config

import "errors"

// ErrInvalidConfig marks a placement configuration that failed Validate.
// ErrLoadConfig marks a .env, YAML or environment source that could not be read.
var (
	ErrInvalidConfig = errors.New("placement config: invalid")
	ErrLoadConfig    = errors.New("placement config: load failed")
)
