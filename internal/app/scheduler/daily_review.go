package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
)

const (
	DefaultReviewHour = 18
	DefaultRetryDelay = time.Hour
)

// Clock abstracts wall time so the loop can be driven in tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type Config struct {
	Hour       int
	Location   *time.Location
	RetryDelay time.Duration
}

// DailyReviewScheduler fires the review generator once a day at a local hour
// and retries a failed run once after RetryDelay.
type DailyReviewScheduler struct {
	generator ports.DailyReviewGenerator
	cfg       Config
	clock     Clock
	logger    *zap.Logger
}

func NewDailyReviewScheduler(generator ports.DailyReviewGenerator, cfg Config, logger *zap.Logger) *DailyReviewScheduler {
	if cfg.Hour < 0 || cfg.Hour > 23 {
		cfg.Hour = DefaultReviewHour
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if logger == nil {
		logger = zap.L()
	}
	return &DailyReviewScheduler{
		generator: generator,
		cfg:       cfg,
		clock:     systemClock{},
		logger:    logger,
	}
}

// WithClock swaps the wall clock.
func (s *DailyReviewScheduler) WithClock(clock Clock) *DailyReviewScheduler {
	s.clock = clock
	return s
}

// NextRun returns the first occurrence of hour:00 in loc strictly after now.
func NextRun(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}
	return next
}

// Run blocks until ctx is cancelled. Schedule state is recomputed from the
// clock on every start.
func (s *DailyReviewScheduler) Run(ctx context.Context) error {
	regular := NextRun(s.clock.Now(), s.cfg.Hour, s.cfg.Location)
	var retryAt time.Time
	var retryDay time.Time

	s.logger.Info("daily review scheduler started",
		zap.Int("hour", s.cfg.Hour),
		zap.String("location", s.cfg.Location.String()),
		zap.Time("next_run", regular),
	)

	for {
		target := regular
		isRetry := !retryAt.IsZero() && retryAt.Before(regular)
		if isRetry {
			target = retryAt
		}

		wait := target.Sub(s.clock.Now())
		if wait < 0 {
			wait = 0
		}
		select {
		case <-ctx.Done():
			s.logger.Info("daily review scheduler stopped")
			return ctx.Err()
		case <-s.clock.After(wait):
		}

		day := target
		if isRetry {
			day = retryDay
			retryAt = time.Time{}
		} else {
			regular = NextRun(target, s.cfg.Hour, s.cfg.Location)
		}

		err := s.runOnce(ctx, day)
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if isRetry {
			s.logger.Error("daily review retry failed, waiting for the next scheduled run",
				zap.Time("day", day), zap.Time("next_run", regular), zap.Error(err))
			continue
		}
		retryAt = s.clock.Now().Add(s.cfg.RetryDelay)
		retryDay = day
		s.logger.Error("daily review run failed, retry armed",
			zap.Time("day", day), zap.Time("retry_at", retryAt), zap.Error(err))
	}
}

func (s *DailyReviewScheduler) runOnce(ctx context.Context, day time.Time) error {
	review, err := s.generator.GenerateDailyReview(ctx, day)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSchedulerRun, err)
	}
	if review.AnalysisFailed {
		return fmt.Errorf("%w: analysis backend failed for %s, fallback summary saved", domain.ErrSchedulerRun, review.Date)
	}
	return nil
}
