package staterepo

import (
	"context"
	"testing"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neothink-dao/platform-bridge/db"
	"github.com/neothink-dao/platform-bridge/domain"
)

var ctx = context.Background()

func TestStateRepo_SaveGet(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.Get(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)

	state := domain.DefaultState("u1")
	state.CurrentPlatform = domain.PlatformAscenders
	state.Platforms[domain.PlatformAscenders] = domain.Document{"step": int64(3)}
	require.NoError(t, fx.Save(ctx, state))
	assert.NotZero(t, state.Updated)

	got, err := fx.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformAscenders, got.CurrentPlatform)
	assert.Equal(t, int64(3), got.Platforms[domain.PlatformAscenders]["step"])
	// decode renormalizes: every platform map is usable
	for _, p := range domain.AllPlatforms() {
		assert.NotNil(t, got.Platforms[p])
	}

	// save is an upsert on the user
	state.CurrentPlatform = domain.PlatformHub
	require.NoError(t, fx.Save(ctx, state))
	got, err = fx.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformHub, got.CurrentPlatform)
}

func TestStateRepo_Delete(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.Save(ctx, domain.DefaultState("u1")))
	require.NoError(t, fx.Delete(ctx, "u1"))
	_, err := fx.Get(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)
	// deleting twice is fine
	require.NoError(t, fx.Delete(ctx, "u1"))
}

func TestStateRepo_Snapshot(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.GetSnapshot(ctx, "u1", domain.PlatformHub)
	require.ErrorIs(t, err, ErrNotFound)

	state := domain.DefaultState("u1")
	state.Platforms[domain.PlatformHub] = domain.Document{"lastPath": "/dashboard"}
	require.NoError(t, fx.SaveSnapshot(ctx, "u1", domain.PlatformHub, state))

	got, err := fx.GetSnapshot(ctx, "u1", domain.PlatformHub)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", got.Platforms[domain.PlatformHub]["lastPath"])

	// snapshots are keyed per platform
	_, err = fx.GetSnapshot(ctx, "u1", domain.PlatformAscenders)
	require.ErrorIs(t, err, ErrNotFound)

	// a later preserve replaces the previous snapshot
	state.Platforms[domain.PlatformHub] = domain.Document{"lastPath": "/settings"}
	require.NoError(t, fx.SaveSnapshot(ctx, "u1", domain.PlatformHub, state))
	got, err = fx.GetSnapshot(ctx, "u1", domain.PlatformHub)
	require.NoError(t, err)
	assert.Equal(t, "/settings", got.Platforms[domain.PlatformHub]["lastPath"])
}

func newFixture(t testing.TB) *fixture {
	fx := &fixture{
		StateRepo: New(),
		a:         new(app.App),
	}
	fx.a.Register(&testConfig{
		Mongo: db.Mongo{
			Connect:  "mongodb://localhost:27017",
			Database: "bridge_unittest",
		},
	}).
		Register(db.New()).
		Register(fx.StateRepo)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		fx.finish(t)
	})
	return fx
}

type fixture struct {
	StateRepo
	a *app.App
}

func (fx *fixture) finish(t testing.TB) {
	_ = fx.StateRepo.(*stateRepo).coll.Drop(ctx)
	_ = fx.StateRepo.(*stateRepo).snapColl.Drop(ctx)
	require.NoError(t, fx.a.Close(ctx))
}

type testConfig struct {
	Mongo db.Mongo
}

func (t testConfig) Init(a *app.App) (err error) {
	return
}

func (t testConfig) Name() (name string) {
	return "config"
}

func (t testConfig) GetMongo() db.Mongo {
	return t.Mongo
}
