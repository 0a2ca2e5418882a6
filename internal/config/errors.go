package config

import "codeberg.org/mutker/powerctl/internal/errors"

const (
	ErrRead    = errors.ErrorCode("config_read_failed")
	ErrParse   = errors.ErrorCode("config_parse_failed")
	ErrWrite   = errors.ErrorCode("config_write_failed")
	ErrInvalid = errors.ErrorCode("config_invalid")
)
