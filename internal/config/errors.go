package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidIdentityConfigs indicates an unusable lockout policy.
	ErrInvalidIdentityConfigs = errors.New("invalid identity configuration")
	// ErrInvalidTracingConfigs indicates tracing is enabled but cannot export.
	ErrInvalidTracingConfigs = errors.New("invalid tracing configuration")
)
