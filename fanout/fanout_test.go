package fanout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/neothink-dao/platform-bridge/domain"
	"github.com/neothink-dao/platform-bridge/queue"
	"github.com/neothink-dao/platform-bridge/queue/mock_queue"
	"github.com/neothink-dao/platform-bridge/repo/notificationrepo"
	"github.com/neothink-dao/platform-bridge/repo/notificationrepo/mock_notificationrepo"
)

var ctx = context.Background()

func TestFanout_Send(t *testing.T) {
	t.Run("persists then publishes", func(t *testing.T) {
		fx := newFixture(t)
		var added domain.Notification
		fx.repo.EXPECT().Add(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, n domain.Notification) error {
			added = n
			return nil
		})
		fx.queue.EXPECT().Add(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, msg queue.Message) error {
			assert.Equal(t, added.Id, msg.Id)
			assert.Equal(t, "u1", msg.UserId)
			return nil
		})

		id, err := fx.Send(ctx, "u1", domain.PlatformHub, []domain.Platform{domain.PlatformAscenders}, "hi", "body", SendOpts{})
		require.NoError(t, err)
		assert.Equal(t, added.Id, id)
		assert.Equal(t, domain.PriorityMedium, added.Priority)
		assert.False(t, added.Read)
	})
	t.Run("publish failure is not fatal", func(t *testing.T) {
		fx := newFixture(t)
		fx.repo.EXPECT().Add(ctx, gomock.Any()).Return(nil)
		fx.queue.EXPECT().Add(ctx, gomock.Any()).Return(errors.New("redis down"))

		id, err := fx.Send(ctx, "u1", domain.PlatformHub, []domain.Platform{domain.PlatformHub}, "hi", "", SendOpts{})
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})
	t.Run("validation", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.Send(ctx, "", domain.PlatformHub, []domain.Platform{domain.PlatformHub}, "t", "b", SendOpts{})
		require.ErrorIs(t, err, domain.ErrEmptyUserId)
		_, err = fx.Send(ctx, "u1", domain.PlatformHub, nil, "t", "b", SendOpts{})
		require.ErrorIs(t, err, ErrNoTargets)
		_, err = fx.Send(ctx, "u1", domain.PlatformHub, []domain.Platform{"myspace"}, "t", "b", SendOpts{})
		require.ErrorIs(t, err, domain.ErrInvalidPlatform)
		_, err = fx.Send(ctx, "u1", "myspace", []domain.Platform{domain.PlatformHub}, "t", "b", SendOpts{})
		require.ErrorIs(t, err, domain.ErrInvalidPlatform)
	})
}

func TestFanout_MarkRead(t *testing.T) {
	fx := newFixture(t)
	// empty id list never reaches the repo
	require.NoError(t, fx.MarkRead(ctx, "u1", nil))

	fx.repo.EXPECT().MarkRead(ctx, "u1", []string{"n1"}).Return(nil)
	require.NoError(t, fx.MarkRead(ctx, "u1", []string{"n1"}))
}

func TestFanout_Subscribe(t *testing.T) {
	fx := newFixture(t)
	n := domain.Notification{
		Id:      "n1",
		UserId:  "u1",
		Targets: []domain.Platform{domain.PlatformHub},
		Title:   "hi",
	}
	fx.repo.EXPECT().Get(gomock.Any(), "n1").Return(n, nil)

	received := make(chan domain.Notification, 1)
	subId := fx.Subscribe("u1", []domain.Platform{domain.PlatformHub, domain.PlatformAscenders}, func(n domain.Notification) {
		received <- n
	})
	// a subscription on a non-target platform stays silent
	quietId := fx.Subscribe("u1", []domain.Platform{domain.PlatformImmortals}, func(n domain.Notification) {
		t.Errorf("unexpected delivery to non-target subscription: %v", n)
	})

	require.NoError(t, fx.fanout.dispatch(queue.Message{Id: "n1", UserId: "u1"}))
	select {
	case got := <-received:
		assert.Equal(t, n, got)
	case <-time.After(time.Second):
		t.Fatal("push delivery timeout")
	}

	fx.Unsubscribe(subId)
	fx.Unsubscribe(subId) // idempotent
	fx.Unsubscribe(quietId)
}

func TestFanout_DispatchMissingRow(t *testing.T) {
	fx := newFixture(t)
	fx.repo.EXPECT().Get(gomock.Any(), "gone").Return(domain.Notification{}, notificationrepo.ErrNotFound)
	// a vanished row is dropped, not retried
	require.NoError(t, fx.fanout.dispatch(queue.Message{Id: "gone", UserId: "u1"}))
}

func TestFanout_SubscribeWithPolling(t *testing.T) {
	fx := newFixture(t)
	first := []domain.Notification{{Id: "n1", UserId: "u1", Targets: []domain.Platform{domain.PlatformHub}}}
	second := append(first, domain.Notification{Id: "n2", UserId: "u1", Targets: []domain.Platform{domain.PlatformHub}})
	calls := 0
	fx.repo.EXPECT().List(gomock.Any(), "u1", []domain.Platform{domain.PlatformHub}, int64(10), int64(0)).
		DoAndReturn(func(context.Context, string, []domain.Platform, int64, int64) ([]domain.Notification, error) {
			calls++
			if calls == 1 {
				return first, nil
			}
			return second, nil
		}).MinTimes(2)

	lists := make(chan []domain.Notification, 10)
	cancel := fx.SubscribeWithPolling("u1", []domain.Platform{domain.PlatformHub}, 10, func(list []domain.Notification) {
		lists <- list
	})

	// the first delivery happens synchronously on subscribe
	select {
	case got := <-lists:
		assert.Equal(t, first, got)
	case <-time.After(time.Second):
		t.Fatal("initial delivery timeout")
	}
	// the poller redelivers the refreshed full list, not a delta
	deadline := time.After(3 * time.Second)
	for {
		select {
		case got := <-lists:
			if len(got) == 2 {
				assert.Equal(t, second, got)
				cancel()
				cancel() // idempotent
				return
			}
		case <-deadline:
			t.Fatal("poll delivery timeout")
		}
	}
}

type fixture struct {
	Fanout
	fanout *fanout
	repo   *mock_notificationrepo.MockNotificationRepo
	queue  *mock_queue.MockQueue
	a      *app.App
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	fx := &fixture{
		Fanout: New(),
		a:      new(app.App),
		repo:   mock_notificationrepo.NewMockNotificationRepo(ctrl),
		queue:  mock_queue.NewMockQueue(ctrl),
	}
	fx.fanout = fx.Fanout.(*fanout)
	fx.repo.EXPECT().Name().Return(notificationrepo.CName).AnyTimes()
	fx.repo.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.repo.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.repo.EXPECT().Close(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Name().Return(queue.CName).AnyTimes()
	fx.queue.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Close(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	fx.a.Register(&testConfig{}).
		Register(fx.repo).
		Register(fx.queue).
		Register(fx.Fanout)
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

func (t *testConfig) GetFanout() Config {
	return Config{PollIntervalSec: 1}
}
