package config

import "errors"

// Sentinel errors for configuration loading
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
	ErrUnknownKey    = errors.New("unknown config key")
)
