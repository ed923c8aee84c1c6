package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskorganizer/internal/core/domain"
)

// fakeClock fires every After immediately by advancing its own time. Once
// fires runs out it cancels the run and blocks.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	fires  int
	cancel context.CancelFunc
	waits  []time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fires == 0 {
		c.cancel()
		return nil
	}
	c.fires--
	c.now = c.now.Add(d)
	c.waits = append(c.waits, d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

type generatorResult struct {
	review domain.DailyReview
	err    error
}

type fakeGenerator struct {
	mu      sync.Mutex
	results []generatorResult
	days    []time.Time
}

func (g *fakeGenerator) GenerateDailyReview(ctx context.Context, day time.Time) (domain.DailyReview, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.days = append(g.days, day)
	if len(g.results) == 0 {
		return domain.DailyReview{Date: day.Format(domain.DateLayout)}, nil
	}
	result := g.results[0]
	g.results = g.results[1:]
	return result.review, result.err
}

func runScheduler(t *testing.T, gen *fakeGenerator, start time.Time, fires int) *fakeClock {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := &fakeClock{now: start, fires: fires, cancel: cancel}
	s := NewDailyReviewScheduler(gen, Config{Hour: 18, Location: time.UTC}, zap.NewNop()).WithClock(clock)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	return clock
}

var schedulerStart = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func at(day, hour int) time.Time {
	return time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC)
}

func TestRun_FiresDailyAtHour(t *testing.T) {
	gen := &fakeGenerator{}

	clock := runScheduler(t, gen, schedulerStart, 2)

	assert.Equal(t, []time.Duration{8 * time.Hour, 24 * time.Hour}, clock.waits)
	assert.Equal(t, []time.Time{at(1, 18), at(2, 18)}, gen.days)
}

func TestRun_RetriesOnceAfterFailure(t *testing.T) {
	gen := &fakeGenerator{results: []generatorResult{{err: errors.New("db down")}}}

	clock := runScheduler(t, gen, schedulerStart, 3)

	assert.Equal(t, []time.Duration{8 * time.Hour, time.Hour, 23 * time.Hour}, clock.waits)
	assert.Equal(t, []time.Time{at(1, 18), at(1, 18), at(2, 18)}, gen.days)
}

func TestRun_FailedRetryWaitsForNextDay(t *testing.T) {
	gen := &fakeGenerator{results: []generatorResult{
		{err: errors.New("db down")},
		{err: errors.New("still down")},
	}}

	clock := runScheduler(t, gen, schedulerStart, 3)

	assert.Equal(t, []time.Duration{8 * time.Hour, time.Hour, 23 * time.Hour}, clock.waits)
	assert.Equal(t, []time.Time{at(1, 18), at(1, 18), at(2, 18)}, gen.days)
}

func TestRun_AnalysisFailureCountsAsFailure(t *testing.T) {
	gen := &fakeGenerator{results: []generatorResult{
		{review: domain.DailyReview{Date: "2024-03-01", AnalysisFailed: true}},
	}}

	clock := runScheduler(t, gen, schedulerStart, 2)

	assert.Equal(t, []time.Duration{8 * time.Hour, time.Hour}, clock.waits)
	assert.Equal(t, []time.Time{at(1, 18), at(1, 18)}, gen.days)
}

func TestRun_StopsBeforeFirstRun(t *testing.T) {
	gen := &fakeGenerator{}

	clock := runScheduler(t, gen, schedulerStart, 0)

	assert.Empty(t, clock.waits)
	assert.Empty(t, gen.days)
}

func TestNextRun(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before hour", at(1, 10), at(1, 18)},
		{"exactly at hour", at(1, 18), at(2, 18)},
		{"after hour", at(1, 20), at(2, 18)},
		{"month end", time.Date(2024, 2, 29, 19, 0, 0, 0, time.UTC), at(1, 18)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextRun(tt.now, 18, time.UTC))
		})
	}

	// 10:00 UTC is 19:00 in Seoul, past the hour.
	next := NextRun(at(1, 10), 18, seoul)
	assert.Equal(t, time.Date(2024, 3, 2, 18, 0, 0, 0, seoul), next)
}

func TestNewDailyReviewScheduler_Defaults(t *testing.T) {
	s := NewDailyReviewScheduler(&fakeGenerator{}, Config{Hour: 42}, nil)

	assert.Equal(t, DefaultReviewHour, s.cfg.Hour)
	assert.Equal(t, DefaultRetryDelay, s.cfg.RetryDelay)
	assert.Equal(t, time.Local, s.cfg.Location)
}
