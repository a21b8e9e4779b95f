package offer

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/clauseguard/clauseguard/internal/common"
	"github.com/clauseguard/clauseguard/internal/kvstore"
	"github.com/clauseguard/clauseguard/internal/logging"
)

// Scheduler persists the banner cycle epoch and answers visibility queries
// against it. It is the only component that ever writes the cycle start;
// the value is never deleted, only superseded by a re-seed.
type Scheduler struct {
	store kvstore.Store
	log   logging.Logger
	now   func() time.Time // overridable in tests
}

func NewScheduler(store kvstore.Store, log logging.Logger) *Scheduler {
	if log == nil {
		log = logging.Nop()
	}
	return &Scheduler{store: store, log: log, now: time.Now}
}

// CycleStart reads the persisted cycle start. ok is false when nothing is
// stored, the stored bytes are not a decimal epoch-millisecond value, the
// value is older than MaxCycleAge, or it lies in the future (clock skew).
// All of those mean the next EnsureCycleStart will seed a fresh cycle.
func (s *Scheduler) CycleStart(ctx context.Context) (time.Time, bool, error) {
	data, err := s.store.Get(ctx, kvstore.KeyOfferCycleStart)
	if errors.Is(err, common.ErrNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		s.log.Warn(ctx, "discarding non-numeric offer cycle start", "value", string(data))
		return time.Time{}, false, nil
	}

	start := time.UnixMilli(ms)
	now := s.now()
	if start.After(now) {
		s.log.Warn(ctx, "discarding future offer cycle start", "start", start)
		return time.Time{}, false, nil
	}
	if now.Sub(start) > MaxCycleAge {
		return time.Time{}, false, nil
	}
	return start, true, nil
}

// EnsureCycleStart returns the established cycle start, seeding and
// persisting the current time when none is valid. This is the sole
// mutation path for the cycle epoch.
func (s *Scheduler) EnsureCycleStart(ctx context.Context) (time.Time, error) {
	start, ok, err := s.CycleStart(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if ok {
		return start, nil
	}

	now := s.now()
	value := strconv.FormatInt(now.UnixMilli(), 10)
	if err := s.store.Set(ctx, kvstore.KeyOfferCycleStart, []byte(value)); err != nil {
		return time.Time{}, err
	}
	s.log.Info(ctx, "seeded new offer cycle", "start", now)
	return now, nil
}

// ShouldShow reports whether the banner is visible right now. An absent or
// invalid cycle start always shows.
func (s *Scheduler) ShouldShow(ctx context.Context) (bool, error) {
	start, ok, err := s.CycleStart(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return InShowWindow(start, s.now()), nil
}

// WindowExpiresAt returns when the current visible window closes; ok is
// false when no cycle is established or the banner is hidden.
func (s *Scheduler) WindowExpiresAt(ctx context.Context) (time.Time, bool, error) {
	start, cycleOK, err := s.CycleStart(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	if !cycleOK {
		return time.Time{}, false, nil
	}
	exp, ok := ExpiresAt(start, s.now())
	return exp, ok, nil
}
