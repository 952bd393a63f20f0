package prefsync

import (
	"context"
	"errors"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/neothink-dao/platform-bridge/domain"
	"github.com/neothink-dao/platform-bridge/localcache"
	"github.com/neothink-dao/platform-bridge/repo/prefsrepo"
)

const CName = "bridge.prefsync"

var log = logger.NewNamed(CName)

func New() PrefsSync {
	return new(prefsSync)
}

// PrefsSync reads and writes per-platform preference documents through the
// local cache and the remote store. Reads never fail: a missing document or a
// remote error degrades to the global defaults.
type PrefsSync interface {
	Get(ctx context.Context, userId string, platform domain.Platform) domain.Preferences
	Save(ctx context.Context, userId string, platform domain.Platform, partial domain.Document) error
	SyncAcrossPlatforms(ctx context.Context, userId string, partial domain.Document, platforms ...domain.Platform) error
	Reset(ctx context.Context, userId string, platform domain.Platform) error
	app.Component
}

type prefsSync struct {
	cache localcache.LocalCache
	repo  prefsrepo.PrefsRepo
}

func (s *prefsSync) Init(a *app.App) (err error) {
	s.cache = a.MustComponent(localcache.CName).(localcache.LocalCache)
	s.repo = a.MustComponent(prefsrepo.CName).(prefsrepo.PrefsRepo)
	return
}

func (s *prefsSync) Name() (name string) {
	return CName
}

// cached preference documents are whole-user aggregates: one cache entry maps
// every platform to its preferences.
func (s *prefsSync) cachedSet(userId string) map[domain.Platform]domain.Preferences {
	if v, ok := s.cache.Get(userId, localcache.KindPreferences); ok {
		if set, ok := v.(map[domain.Platform]domain.Preferences); ok {
			return set
		}
	}
	return nil
}

// putCached replaces the cached aggregate with a copy: the stored map is
// shared with concurrent readers and must never be written in place.
func (s *prefsSync) putCached(userId string, platform domain.Platform, prefs domain.Preferences) {
	old := s.cachedSet(userId)
	set := make(map[domain.Platform]domain.Preferences, len(old)+1)
	for p, v := range old {
		set[p] = v
	}
	set[platform] = prefs
	s.cache.Put(userId, localcache.KindPreferences, set)
}

func (s *prefsSync) Get(ctx context.Context, userId string, platform domain.Platform) domain.Preferences {
	if set := s.cachedSet(userId); set != nil {
		if prefs, ok := set[platform]; ok {
			return prefs
		}
	}
	prefs, err := s.repo.Get(ctx, userId, platform)
	if err != nil {
		if !errors.Is(err, prefsrepo.ErrNotFound) {
			log.Warn("preferences read failed, falling back to defaults",
				zap.String("userId", userId), zap.String("platform", string(platform)), zap.Error(err))
		}
		prefs = domain.DefaultPreferences()
	}
	s.putCached(userId, platform, prefs)
	return prefs
}

func (s *prefsSync) Save(ctx context.Context, userId string, platform domain.Platform, partial domain.Document) error {
	if userId == "" {
		return domain.ErrEmptyUserId
	}
	if !platform.Valid() {
		return domain.ErrInvalidPlatform
	}
	merged := s.Get(ctx, userId, platform).Merge(partial)
	// stamped here so the cached and stored documents carry the same value
	merged.Updated = time.Now().Unix()
	if err := s.repo.Save(ctx, userId, platform, merged); err != nil {
		log.Warn("preferences save failed",
			zap.String("userId", userId), zap.String("platform", string(platform)), zap.Error(err))
		return err
	}
	s.putCached(userId, platform, merged)
	return nil
}

// SyncAcrossPlatforms applies the same partial to each platform independently.
// A partial failure is reported but already-saved platforms are not rolled
// back: the merge is idempotent, so the caller can simply retry.
func (s *prefsSync) SyncAcrossPlatforms(ctx context.Context, userId string, partial domain.Document, platforms ...domain.Platform) error {
	if len(platforms) == 0 {
		platforms = domain.AllPlatforms()
	}
	var errs []error
	for _, platform := range platforms {
		if err := s.Save(ctx, userId, platform, partial); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *prefsSync) Reset(ctx context.Context, userId string, platform domain.Platform) error {
	if userId == "" {
		return domain.ErrEmptyUserId
	}
	if !platform.Valid() {
		return domain.ErrInvalidPlatform
	}
	def := domain.DefaultPreferences()
	def.Updated = time.Now().Unix()
	if err := s.repo.Save(ctx, userId, platform, def); err != nil {
		log.Warn("preferences reset failed",
			zap.String("userId", userId), zap.String("platform", string(platform)), zap.Error(err))
		return err
	}
	s.putCached(userId, platform, def)
	return nil
}
