package statesync

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/neothink-dao/platform-bridge/domain"
	"github.com/neothink-dao/platform-bridge/localcache"
	"github.com/neothink-dao/platform-bridge/repo/staterepo"
	"github.com/neothink-dao/platform-bridge/repo/staterepo/mock_staterepo"
)

var ctx = context.Background()

func TestStateSync_FullState(t *testing.T) {
	t.Run("defaults on remote miss", func(t *testing.T) {
		fx := newFixture(t)
		fx.stateRepo.EXPECT().Get(ctx, "u1").Return(nil, staterepo.ErrNotFound)

		st := fx.FullState(ctx, "u1")
		assert.Equal(t, domain.PlatformHub, st.CurrentPlatform)
		for _, p := range domain.AllPlatforms() {
			assert.NotNil(t, st.Platforms[p])
			assert.Equal(t, domain.DefaultPreferences(), st.Preferences[p])
		}
		// second read comes from the cache
		assert.Same(t, st, fx.FullState(ctx, "u1"))
	})
	t.Run("defaults on remote error", func(t *testing.T) {
		fx := newFixture(t)
		fx.stateRepo.EXPECT().Get(ctx, "u1").Return(nil, errors.New("mongo down"))

		st := fx.FullState(ctx, "u1")
		assert.Equal(t, "u1", st.UserId)
		assert.Equal(t, domain.PlatformHub, st.CurrentPlatform)
	})
}

func TestStateSync_Save(t *testing.T) {
	fx := newFixture(t)
	fx.stateRepo.EXPECT().Get(ctx, "u1").Return(nil, staterepo.ErrNotFound)
	var saved *domain.State
	fx.stateRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, st *domain.State) error {
		saved = st
		return nil
	})

	require.NoError(t, fx.Save(ctx, "u1", domain.PlatformAscenders, domain.Document{"step": 3}))
	require.NotNil(t, saved)
	assert.Equal(t, domain.PlatformAscenders, saved.CurrentPlatform)
	assert.Equal(t, 3, saved.Platforms[domain.PlatformAscenders]["step"])
	assert.NotZero(t, saved.LastVisited[domain.PlatformAscenders])
}

func TestStateSync_SaveRemoteFailure(t *testing.T) {
	fx := newFixture(t)
	fx.stateRepo.EXPECT().Get(ctx, "u1").Return(nil, staterepo.ErrNotFound)
	saveErr := errors.New("mongo down")
	fx.stateRepo.EXPECT().Save(ctx, gomock.Any()).Return(saveErr)

	require.ErrorIs(t, fx.Save(ctx, "u1", domain.PlatformAscenders, domain.Document{"step": 3}), saveErr)
	// the rejected write must not be readable afterwards
	st := fx.FullState(ctx, "u1")
	assert.Equal(t, domain.PlatformHub, st.CurrentPlatform)
	assert.Empty(t, st.Platforms[domain.PlatformAscenders])
	assert.Zero(t, st.LastVisited[domain.PlatformAscenders])
}

func TestStateSync_ConcurrentSaveAndRead(t *testing.T) {
	fx := newFixture(t)
	fx.stateRepo.EXPECT().Get(ctx, "u1").Return(nil, staterepo.ErrNotFound).AnyTimes()
	fx.stateRepo.EXPECT().Save(ctx, gomock.Any()).Return(nil).AnyTimes()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.NoError(t, fx.Save(ctx, "u1", domain.PlatformAscenders, domain.Document{"step": j}))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				st := fx.FullState(ctx, "u1")
				_ = st.Platforms[domain.PlatformAscenders]["step"]
			}
		}()
	}
	wg.Wait()
}

func TestStateSync_InitialState(t *testing.T) {
	fx := newFixture(t)
	stored := domain.DefaultState("u1")
	stored.Platforms[domain.PlatformNeothinkers] = domain.Document{"lesson": "l7"}
	fx.stateRepo.EXPECT().Get(ctx, "u1").Return(stored, nil)
	fx.stateRepo.EXPECT().Save(ctx, gomock.Any()).Return(nil)

	doc := fx.InitialState(ctx, "u1", domain.PlatformNeothinkers)
	assert.Equal(t, "l7", doc["lesson"])
	// entering marks the platform visited
	st := fx.FullState(ctx, "u1")
	assert.Equal(t, domain.PlatformNeothinkers, st.CurrentPlatform)
	assert.NotZero(t, st.LastVisited[domain.PlatformNeothinkers])
}

func TestStateSync_Transfer(t *testing.T) {
	newState := func() *domain.State {
		st := domain.DefaultState("u2")
		st.Platforms[domain.PlatformHub] = domain.Document{"a": 1, "b": 2}
		st.Platforms[domain.PlatformAscenders] = domain.Document{"b": 99, "c": 3}
		return st
	}
	t.Run("subset union-merge", func(t *testing.T) {
		fx := newFixture(t)
		fx.stateRepo.EXPECT().Get(ctx, "u2").Return(newState(), nil)
		var saved *domain.State
		fx.stateRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, st *domain.State) error {
			saved = st
			return nil
		}).Times(2)

		require.NoError(t, fx.Transfer(ctx, "u2", domain.PlatformHub, domain.PlatformAscenders, "a"))
		want := domain.Document{"a": 1, "b": 99, "c": 3}
		assert.Equal(t, want, saved.Platforms[domain.PlatformAscenders])
		// untouched source
		assert.Equal(t, domain.Document{"a": 1, "b": 2}, saved.Platforms[domain.PlatformHub])

		// running the same transfer again yields the same destination
		require.NoError(t, fx.Transfer(ctx, "u2", domain.PlatformHub, domain.PlatformAscenders, "a"))
		assert.Equal(t, want, saved.Platforms[domain.PlatformAscenders])
	})
	t.Run("all keys when none named", func(t *testing.T) {
		fx := newFixture(t)
		fx.stateRepo.EXPECT().Get(ctx, "u2").Return(newState(), nil)
		var saved *domain.State
		fx.stateRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, st *domain.State) error {
			saved = st
			return nil
		})

		require.NoError(t, fx.Transfer(ctx, "u2", domain.PlatformHub, domain.PlatformAscenders))
		assert.Equal(t, domain.Document{"a": 1, "b": 2, "c": 3}, saved.Platforms[domain.PlatformAscenders])
	})
}

func TestStateSync_AddRecentItem(t *testing.T) {
	fx := newFixture(t)
	fx.stateRepo.EXPECT().Get(ctx, "u1").Return(nil, staterepo.ErrNotFound)
	fx.stateRepo.EXPECT().Save(ctx, gomock.Any()).Return(nil).AnyTimes()

	hub := domain.PlatformHub
	require.NoError(t, fx.AddRecentItem(ctx, "u1", hub, "x", 0))
	require.NoError(t, fx.AddRecentItem(ctx, "u1", hub, "y", 0))
	// re-adding moves to front, no duplicate
	require.NoError(t, fx.AddRecentItem(ctx, "u1", hub, "x", 0))
	st := fx.FullState(ctx, "u1")
	assert.Equal(t, []string{"x", "y"}, st.RecentItems[hub])

	// the cap truncates the oldest
	require.NoError(t, fx.AddRecentItem(ctx, "u1", hub, "z", 2))
	assert.Equal(t, []string{"z", "x"}, fx.FullState(ctx, "u1").RecentItems[hub])
}

func TestStateSync_Clear(t *testing.T) {
	fx := newFixture(t)
	fx.stateRepo.EXPECT().Get(ctx, "u1").Return(nil, staterepo.ErrNotFound).Times(2)
	fx.stateRepo.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	require.NoError(t, fx.Save(ctx, "u1", domain.PlatformHub, domain.Document{"k": "v"}))

	fx.stateRepo.EXPECT().Delete(ctx, "u1").Return(nil)
	require.NoError(t, fx.Clear(ctx, "u1"))

	// the cached aggregate is gone too: next read goes remote again
	st := fx.FullState(ctx, "u1")
	assert.Empty(t, st.Platforms[domain.PlatformHub])
}

type fixture struct {
	StateSync
	stateRepo *mock_staterepo.MockStateRepo
	a         *app.App
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	fx := &fixture{
		StateSync: New(),
		a:         new(app.App),
		stateRepo: mock_staterepo.NewMockStateRepo(ctrl),
	}
	fx.stateRepo.EXPECT().Name().Return(staterepo.CName).AnyTimes()
	fx.stateRepo.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.stateRepo.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.stateRepo.EXPECT().Close(gomock.Any()).AnyTimes()

	fx.a.Register(&testConfig{}).
		Register(localcache.New()).
		Register(fx.stateRepo).
		Register(fx.StateSync)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, fx.a.Close(ctx))
		ctrl.Finish()
	})
	return fx
}

type testConfig struct{}

func (t *testConfig) Init(a *app.App) (err error) {
	return
}

func (t *testConfig) Name() (name string) {
	return "config"
}

func (t *testConfig) GetCache() localcache.Config {
	return localcache.Config{}
}
