package pid

import (
	"os"
	"strconv"
	"syscall"

	"codeberg.org/mutker/powerctl/internal/errors"
)

const pidFile = "/run/powerctl.pid"

// Write writes the current process ID to the PID file, refusing to start
// when another daemon instance is already running.
func Write() error {
	pid := os.Getpid()

	if data, err := os.ReadFile(pidFile); err == nil {
		oldPid, err := strconv.Atoi(string(data))
		if err == nil {
			process, err := os.FindProcess(oldPid)
			if err == nil && process.Signal(syscall.Signal(0)) == nil {
				return errors.New(errors.ErrAlreadyRunning).WithData(oldPid)
			}
		}
	}

	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return errors.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Remove removes the PID file.
func Remove() error {
	if _, err := os.Stat(pidFile); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(pidFile); err != nil {
		return errors.Wrap(errors.ErrInternal, err)
	}

	return nil
}
