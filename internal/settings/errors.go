package settings

import "codeberg.org/mutker/powerctl/internal/errors"

const (
	ErrReadSettings      = errors.ErrorCode("read_settings_failed")
	ErrUnmarshalSettings = errors.ErrorCode("unmarshal_settings_failed")
	ErrInvalidLogLevel   = errors.ErrorCode("invalid_log_level")
	ErrInvalidInterval   = errors.ErrorCode("invalid_interval")
)
