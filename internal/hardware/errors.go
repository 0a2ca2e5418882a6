package hardware

import "codeberg.org/mutker/powerctl/internal/errors"

const (
	ErrUnknownCurve  = errors.ErrorCode("unknown_curve")
	ErrSysfsRead     = errors.ErrorCode("sysfs_read_failed")
	ErrSysfsWrite    = errors.ErrorCode("sysfs_write_failed")
	ErrNoBattery     = errors.ErrorCode("no_battery_present")
	ErrScriptFailed  = errors.ErrorCode("script_failed")
	ErrApplyFailed   = errors.ErrorCode("apply_tuning_failed")
	ErrModprobeWrite = errors.ErrorCode("modprobe_write_failed")
)
