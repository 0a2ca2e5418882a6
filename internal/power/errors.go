package power

import "codeberg.org/mutker/powerctl/internal/errors"

const (
	ErrInvalidProfile    = errors.ErrorCode("invalid_profile")
	ErrInvalidThresholds = errors.ErrorCode("invalid_thresholds")
	ErrInvalidTuning     = errors.ErrorCode("invalid_tuning")
	ErrUnsupportedVendor = errors.ErrorCode("unsupported_vendor")
)
