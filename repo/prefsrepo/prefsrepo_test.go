package prefsrepo

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

func TestPrefsRepo_SaveGet(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.Get(ctx, "u1", domain.PlatformHub)
	require.ErrorIs(t, err, ErrNotFound)

	prefs := domain.DefaultPreferences()
	prefs.Theme = domain.ThemeDark
	prefs.Custom = domain.Document{"sidebar": "collapsed"}
	require.NoError(t, fx.Save(ctx, "u1", domain.PlatformHub, prefs))

	got, err := fx.Get(ctx, "u1", domain.PlatformHub)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, got.Theme)
	assert.Equal(t, "collapsed", got.Custom["sidebar"])
	assert.NotZero(t, got.Updated)

	// per-platform isolation
	_, err = fx.Get(ctx, "u1", domain.PlatformAscenders)
	require.ErrorIs(t, err, ErrNotFound)

	// save is an upsert on the user/platform pair; a caller stamp is kept
	prefs.Theme = domain.ThemeLight
	prefs.Updated = 42
	require.NoError(t, fx.Save(ctx, "u1", domain.PlatformHub, prefs))
	got, err = fx.Get(ctx, "u1", domain.PlatformHub)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, got.Theme)
	assert.Equal(t, int64(42), got.Updated)
}

func newFixture(t testing.TB) *fixture {
	fx := &fixture{
		PrefsRepo: New(),
		a:         new(app.App),
	}
	fx.a.Register(&testConfig{
		Mongo: db.Mongo{
			Connect:  "mongodb://localhost:27017",
			Database: "bridge_unittest",
		},
	}).
		Register(db.New()).
		Register(fx.PrefsRepo)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		fx.finish(t)
	})
	return fx
}

type fixture struct {
	PrefsRepo
	a *app.App
}

func (fx *fixture) finish(t testing.TB) {
	_ = fx.PrefsRepo.(*prefsRepo).coll.Drop(ctx)
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
