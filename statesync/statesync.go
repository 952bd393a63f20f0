package statesync

import (
	"context"
	"errors"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/neothink-dao/platform-bridge/domain"
	"github.com/neothink-dao/platform-bridge/localcache"
	"github.com/neothink-dao/platform-bridge/repo/staterepo"
)

const CName = "bridge.statesync"

const DefaultMaxRecentItems = 10

var log = logger.NewNamed(CName)

func New() StateSync {
	return new(stateSync)
}

// StateSync reads and writes the whole-user state aggregate. Every write
// round-trips the entire aggregate (one row per user, not per user×platform);
// callers must not assume cheap partial writes. Concurrent saves for the same
// user are a last-writer-wins race at the store.
type StateSync interface {
	FullState(ctx context.Context, userId string) *domain.State
	Save(ctx context.Context, userId string, platform domain.Platform, partial domain.Document) error
	InitialState(ctx context.Context, userId string, platform domain.Platform) domain.Document
	Transfer(ctx context.Context, userId string, from, to domain.Platform, keys ...string) error
	AddRecentItem(ctx context.Context, userId string, platform domain.Platform, itemId string, maxItems int) error
	Clear(ctx context.Context, userId string) error
	app.Component
}

type stateSync struct {
	cache localcache.LocalCache
	repo  staterepo.StateRepo
}

func (s *stateSync) Init(a *app.App) (err error) {
	s.cache = a.MustComponent(localcache.CName).(localcache.LocalCache)
	s.repo = a.MustComponent(staterepo.CName).(staterepo.StateRepo)
	return
}

func (s *stateSync) Name() (name string) {
	return CName
}

// FullState returns the cached aggregate. The returned value is a shared
// snapshot and must be treated as read-only; writes go through Save.
func (s *stateSync) FullState(ctx context.Context, userId string) *domain.State {
	if v, ok := s.cache.Get(userId, localcache.KindState); ok {
		if state, ok := v.(*domain.State); ok {
			return state
		}
	}
	state, err := s.repo.Get(ctx, userId)
	if err != nil {
		if !errors.Is(err, staterepo.ErrNotFound) {
			log.Warn("state read failed, falling back to defaults",
				zap.String("userId", userId), zap.Error(err))
		}
		state = domain.DefaultState(userId)
	}
	s.cache.Put(userId, localcache.KindState, state)
	return state
}

func (s *stateSync) Save(ctx context.Context, userId string, platform domain.Platform, partial domain.Document) error {
	if userId == "" {
		return domain.ErrEmptyUserId
	}
	if !platform.Valid() {
		return domain.ErrInvalidPlatform
	}
	return s.update(ctx, userId, platform, func(state *domain.State) {
		doc := state.Doc(platform)
		for k, v := range partial {
			doc[k] = v
		}
	})
}

// update clones the current aggregate, applies the mutation and upserts the
// clone. The cache is refreshed only once the remote accepts the write, so a
// rejected write never becomes readable and readers holding the previous
// pointer see an immutable snapshot. Concurrent updates for one user are
// last-writer-wins.
func (s *stateSync) update(ctx context.Context, userId string, platform domain.Platform, mutate func(state *domain.State)) error {
	state := s.FullState(ctx, userId).Clone()
	state.CurrentPlatform = platform
	state.LastVisited[platform] = time.Now().Unix()
	mutate(state)
	if err := s.repo.Save(ctx, state); err != nil {
		log.Warn("state save failed",
			zap.String("userId", userId), zap.String("platform", string(platform)), zap.Error(err))
		return err
	}
	s.cache.Put(userId, localcache.KindState, state)
	return nil
}

// InitialState returns the per-platform document for a platform being entered.
// Entering always marks the platform visited, so this performs an empty Save
// as a side effect before returning.
func (s *stateSync) InitialState(ctx context.Context, userId string, platform domain.Platform) domain.Document {
	if err := s.Save(ctx, userId, platform, nil); err != nil {
		log.Warn("initial state visit stamp failed",
			zap.String("userId", userId), zap.String("platform", string(platform)), zap.Error(err))
	}
	return s.FullState(ctx, userId).Doc(platform)
}

// Transfer union-merges the source platform's document (all keys, or only the
// named subset) into the destination. Destination keys absent from the source
// are left untouched. Running the same transfer twice yields the same result.
func (s *stateSync) Transfer(ctx context.Context, userId string, from, to domain.Platform, keys ...string) error {
	if userId == "" {
		return domain.ErrEmptyUserId
	}
	if !from.Valid() || !to.Valid() {
		return domain.ErrInvalidPlatform
	}
	state := s.FullState(ctx, userId)
	src := state.Doc(from)
	partial := domain.Document{}
	if len(keys) == 0 {
		for k, v := range src {
			partial[k] = v
		}
	} else {
		for _, k := range keys {
			if v, ok := src[k]; ok {
				partial[k] = v
			}
		}
	}
	return s.Save(ctx, userId, to, partial)
}

// AddRecentItem prepends itemId to the platform's recent-items list, removing
// any previous occurrence and truncating to maxItems.
func (s *stateSync) AddRecentItem(ctx context.Context, userId string, platform domain.Platform, itemId string, maxItems int) error {
	if userId == "" {
		return domain.ErrEmptyUserId
	}
	if !platform.Valid() {
		return domain.ErrInvalidPlatform
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxRecentItems
	}
	return s.update(ctx, userId, platform, func(state *domain.State) {
		current := state.RecentItems[platform]
		items := make([]string, 0, len(current)+1)
		items = append(items, itemId)
		for _, id := range current {
			if id != itemId {
				items = append(items, id)
			}
		}
		if len(items) > maxItems {
			items = items[:maxItems]
		}
		state.RecentItems[platform] = items
	})
}

// Clear removes the remote aggregate and the cached entry; used on logout and
// account deletion.
func (s *stateSync) Clear(ctx context.Context, userId string) error {
	if userId == "" {
		return domain.ErrEmptyUserId
	}
	if err := s.repo.Delete(ctx, userId); err != nil {
		log.Warn("state clear failed", zap.String("userId", userId), zap.Error(err))
		return err
	}
	s.cache.Invalidate(userId, localcache.KindState)
	return nil
}
