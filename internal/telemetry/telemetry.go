package telemetry

import (
	"context"

	"codeberg.org/mutker/powerctl/internal/errors"
)

type service struct {
	repo Repository
	cfg  Config
}

// NewService builds a collector persisting transitions to the configured
// database.
func NewService(cfg Config) (Collector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err)
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err // Already wrapped with appropriate error
	}

	return &service{
		repo: repo,
		cfg:  cfg,
	}, nil
}

func (s *service) Record(ctx context.Context, transition *Transition) error {
	if transition == nil {
		return errors.New(ErrInvalidTransition)
	}

	select {
	case <-ctx.Done():
		return errors.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		if err := s.repo.Store(ctx, transition); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Close() error {
	if err := s.repo.Close(); err != nil {
		return errors.Wrap(ErrServiceShutdown, err)
	}
	return nil
}
