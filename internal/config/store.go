package config

import (
	"os"
	"path/filepath"

	"codeberg.org/mutker/powerctl/internal/errors"
	"codeberg.org/mutker/powerctl/internal/logger"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store loads and persists the policy document at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store bound to the well-known config path.
func NewStore() *Store {
	return NewStoreAt(DefaultPath)
}

// NewStoreAt returns a store bound to an explicit path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the persisted document.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted configuration. It never fails: a missing
// file is synthesized from the compiled-in defaults and persisted
// best-effort, and an unreadable or unparsable file falls back to the
// defaults while the original file is left untouched so nothing is
// silently lost.
func (s *Store) Load() *Config {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info().Msgf("config file does not exist at %s; creating it", s.path)
			cfg := Default()
			if err := s.Persist(cfg); err != nil {
				logger.ErrorWithCode(errors.Wrap(ErrWrite, err)).
					Msg("failed to write config to file system")
			}

			return cfg
		}

		logger.ErrorWithCode(errors.Wrap(ErrRead, err)).
			Msg("failed to read config file (defaults will be used, instead)")

		return Default()
	}

	cfg, err := Parse(data)
	if err != nil {
		logger.ErrorWithCode(errors.Wrap(ErrParse, err)).
			Msg("failed to parse config file (defaults will be used, instead)")

		return Default()
	}

	return cfg
}

// Persist writes the configuration to disk, creating the parent directory
// if needed. The document is staged in a temporary file and renamed into
// place so a reader never observes a partial write.
func (s *Store) Persist(cfg *Config) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return errors.Wrap(ErrWrite, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return errors.Wrap(ErrWrite, err)
	}

	if _, err := tmp.Write(Serialize(cfg)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return errors.Wrap(ErrWrite, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return errors.Wrap(ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return errors.Wrap(ErrWrite, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())

		return errors.Wrap(ErrWrite, err)
	}

	return nil
}
