package daemon

import "codeberg.org/mutker/powerctl/internal/errors"

const (
	ErrBusConnect  = errors.ErrorCode("bus_connect_failed")
	ErrBusExport   = errors.ErrorCode("bus_export_failed")
	ErrNameTaken   = errors.ErrorCode("bus_name_taken")
	ErrPersist     = errors.ErrorCode("persist_failed")
	ErrApplyTuning = errors.ErrorCode("apply_tuning_failed")
)
