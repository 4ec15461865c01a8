package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"career-sync/internal/domain/recommend"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	retrainLockKey = "model:retrain:lock"
	statusKey      = "model:status"
)

var (
	ErrRetrainInProgress = errors.New("retrain already in progress")
	ErrTrainingFailed    = errors.New("training failed")
)

// Trainer produces a fully built snapshot from the configured data source.
type Trainer interface {
	Train(ctx context.Context) (*recommend.Snapshot, error)
	Source() string
}

// TrainingCache is the shared store used for the cross-instance retrain lock and the
// published model status.
type TrainingCache interface {
	Available() bool
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	ReleaseIfValue(ctx context.Context, key string, value string) (bool, error)
}

type ModelStatus struct {
	Ready         bool            `json:"ready"`
	Source        string          `json:"source"`
	Snapshot      *recommend.Info `json:"snapshot,omitempty"`
	Published     *recommend.Info `json:"published,omitempty"`
	LastError     string          `json:"last_error,omitempty"`
	LastAttemptAt *time.Time      `json:"last_attempt_at,omitempty"`
}

type ModelUsecase interface {
	Retrain(ctx context.Context) (recommend.Info, error)
	Status(ctx context.Context) (ModelStatus, error)
}

type ModelOptions struct {
	LockTTL   time.Duration
	StatusTTL time.Duration
	// OnUpdated runs after a new snapshot is published.
	OnUpdated func(info recommend.Info, source string)
}

type Model struct {
	trainer Trainer
	store   *SnapshotStore
	cache   TrainingCache
	opts    ModelOptions
	log     zerolog.Logger
	now     func() time.Time

	retrainMu sync.Mutex

	stateMu       sync.RWMutex
	lastError     string
	lastAttemptAt time.Time
}

func NewModelUsecase(trainer Trainer, store *SnapshotStore, cache TrainingCache, opts ModelOptions, logger zerolog.Logger) *Model {
	if opts.LockTTL <= 0 {
		opts.LockTTL = 5 * time.Minute
	}
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = 24 * time.Hour
	}
	return &Model{
		trainer: trainer,
		store:   store,
		cache:   cache,
		opts:    opts,
		log:     logger,
		now:     time.Now,
	}
}

// Retrain builds a new snapshot and swaps it in. Requests keep being served by the previous
// snapshot until the swap, and a failed build leaves it in place.
func (u *Model) Retrain(ctx context.Context) (recommend.Info, error) {
	if u.trainer == nil {
		return recommend.Info{}, ErrInternal
	}
	if !u.retrainMu.TryLock() {
		return recommend.Info{}, ErrRetrainInProgress
	}
	defer u.retrainMu.Unlock()

	release, err := u.acquireSharedLock(ctx)
	if err != nil {
		return recommend.Info{}, err
	}
	defer release()

	snap, err := u.trainer.Train(ctx)
	u.recordAttempt(err)
	if err != nil {
		return recommend.Info{}, fmt.Errorf("%w: %w", ErrTrainingFailed, err)
	}

	prev := u.store.Swap(snap)
	info := snap.Info()

	ev := u.log.Info().Str("snapshot_id", info.ID.String()).Int("samples", info.Samples)
	if prev != nil {
		ev = ev.Str("previous_snapshot_id", prev.Info().ID.String())
	}
	ev.Msg("model snapshot published")

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, statusKey, info, u.opts.StatusTTL); err != nil {
			u.log.Warn().Err(err).Msg("publish model status failed")
		}
	}
	if u.opts.OnUpdated != nil {
		u.opts.OnUpdated(info, u.trainer.Source())
	}
	return info, nil
}

func (u *Model) acquireSharedLock(ctx context.Context) (func(), error) {
	noop := func() {}
	if u.cache == nil || !u.cache.Available() {
		return noop, nil
	}

	token := uuid.NewString()
	ok, err := u.cache.SetIfNotExists(ctx, retrainLockKey, token, u.opts.LockTTL)
	if err != nil {
		u.log.Warn().Err(err).Msg("retrain lock unavailable, continuing with local lock")
		return noop, nil
	}
	if !ok {
		return nil, ErrRetrainInProgress
	}
	return func() {
		if _, err := u.cache.ReleaseIfValue(context.Background(), retrainLockKey, token); err != nil {
			u.log.Warn().Err(err).Msg("release retrain lock failed")
		}
	}, nil
}

func (u *Model) recordAttempt(err error) {
	u.stateMu.Lock()
	defer u.stateMu.Unlock()
	u.lastAttemptAt = u.now().UTC()
	if err != nil {
		u.lastError = err.Error()
		return
	}
	u.lastError = ""
}

func (u *Model) Status(ctx context.Context) (ModelStatus, error) {
	out := ModelStatus{}
	if u.trainer != nil {
		out.Source = u.trainer.Source()
	}

	if snap := u.store.Load(); snap != nil {
		info := snap.Info()
		out.Ready = true
		out.Snapshot = &info
	}

	u.stateMu.RLock()
	out.LastError = u.lastError
	if !u.lastAttemptAt.IsZero() {
		at := u.lastAttemptAt
		out.LastAttemptAt = &at
	}
	u.stateMu.RUnlock()

	if u.cache != nil && u.cache.Available() {
		var published recommend.Info
		hit, err := u.cache.GetJSON(ctx, statusKey, &published)
		if err != nil {
			u.log.Warn().Err(err).Msg("read published model status failed")
		} else if hit {
			out.Published = &published
		}
	}
	return out, nil
}
