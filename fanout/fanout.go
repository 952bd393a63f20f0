package fanout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/anyproto/any-sync/metric"
	"github.com/cheggaaa/mb/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neothink-dao/platform-bridge/domain"
	"github.com/neothink-dao/platform-bridge/queue"
	"github.com/neothink-dao/platform-bridge/repo/notificationrepo"
)

const CName = "bridge.fanout"

var log = logger.NewNamed(CName)

var ErrNoTargets = errors.New("notification has no target platforms")

func New() Fanout {
	return new(fanout)
}

type SendOpts struct {
	Priority  domain.Priority
	ActionUrl string
}

// Fanout delivers notifications addressed to a set of target platforms. An
// empty platforms argument on the read operations means all platforms. The
// queue is the push channel; subscriptions are matched server-side by user and
// re-checked client-side for target-platform intersection. SubscribeWithPolling
// layers an independent poll over the push path: both redeliver the full list,
// so consumers de-duplicate by replacing their whole view.
type Fanout interface {
	Send(ctx context.Context, userId string, source domain.Platform, targets []domain.Platform, title, body string, opts SendOpts) (id string, err error)
	List(ctx context.Context, userId string, platforms []domain.Platform, limit, offset int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userId string, ids []string) error
	UnreadCount(ctx context.Context, userId string, platforms []domain.Platform) (int64, error)
	Subscribe(userId string, platforms []domain.Platform, callback func(n domain.Notification)) (subId string)
	Unsubscribe(subId string)
	SubscribeWithPolling(userId string, platforms []domain.Platform, limit int64, callback func(list []domain.Notification)) (cancel func())
	app.ComponentRunnable
}

type subscription struct {
	id        string
	userId    string
	platforms []domain.Platform
	callback  func(n domain.Notification)
	events    *mb.MB[domain.Notification]
	done      chan struct{}
}

type fanout struct {
	conf  Config
	repo  notificationrepo.NotificationRepo
	queue queue.Queue

	mu     sync.Mutex
	subs   map[string]*subscription
	byUser map[string]map[string]*subscription

	metrics fanoutMetrics

	runCtx       context.Context
	runCtxCancel context.CancelFunc
}

func (f *fanout) Init(a *app.App) (err error) {
	f.conf = a.MustComponent("config").(configSource).GetFanout()
	f.repo = a.MustComponent(notificationrepo.CName).(notificationrepo.NotificationRepo)
	f.queue = a.MustComponent(queue.CName).(queue.Queue)
	f.subs = map[string]*subscription{}
	f.byUser = map[string]map[string]*subscription{}
	f.runCtx, f.runCtxCancel = context.WithCancel(context.Background())
	if m := a.Component(metric.CName); m != nil {
		registerMetrics(m.(metric.Metric).Registry(), f)
	}
	return
}

func (f *fanout) Name() (name string) {
	return CName
}

func (f *fanout) Run(ctx context.Context) (err error) {
	return f.queue.Consume(f.runCtx, f.dispatch)
}

func (f *fanout) Send(ctx context.Context, userId string, source domain.Platform, targets []domain.Platform, title, body string, opts SendOpts) (id string, err error) {
	if userId == "" {
		return "", domain.ErrEmptyUserId
	}
	if !source.Valid() {
		return "", domain.ErrInvalidPlatform
	}
	if len(targets) == 0 {
		return "", ErrNoTargets
	}
	for _, t := range targets {
		if !t.Valid() {
			return "", domain.ErrInvalidPlatform
		}
	}
	priority := opts.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	n := domain.Notification{
		Id:        uuid.NewString(),
		UserId:    userId,
		Source:    source,
		Targets:   targets,
		Title:     title,
		Body:      body,
		ActionUrl: opts.ActionUrl,
		Priority:  priority,
		Created:   time.Now().Unix(),
	}
	if err = f.repo.Add(ctx, n); err != nil {
		return "", err
	}
	f.metrics.sent.Add(1)
	// push is best-effort: the row is committed, polling covers a lost event
	if qErr := f.queue.Add(ctx, queue.Message{
		Id:      n.Id,
		UserId:  n.UserId,
		Targets: n.Targets,
		Created: n.Created,
	}); qErr != nil {
		log.Warn("push publish failed, relying on polling",
			zap.String("id", n.Id), zap.Error(qErr))
	}
	return n.Id, nil
}

func (f *fanout) List(ctx context.Context, userId string, platforms []domain.Platform, limit, offset int64) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = int64(f.conf.Limit())
	}
	return f.repo.List(ctx, userId, platforms, limit, offset)
}

func (f *fanout) MarkRead(ctx context.Context, userId string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return f.repo.MarkRead(ctx, userId, ids)
}

func (f *fanout) UnreadCount(ctx context.Context, userId string, platforms []domain.Platform) (int64, error) {
	return f.repo.UnreadCount(ctx, userId, platforms)
}

func (f *fanout) Subscribe(userId string, platforms []domain.Platform, callback func(n domain.Notification)) (subId string) {
	sub := &subscription{
		id:        uuid.NewString(),
		userId:    userId,
		platforms: platforms,
		callback:  callback,
		events:    mb.New[domain.Notification](100),
		done:      make(chan struct{}),
	}
	f.mu.Lock()
	f.subs[sub.id] = sub
	userSubs := f.byUser[userId]
	if userSubs == nil {
		userSubs = map[string]*subscription{}
		f.byUser[userId] = userSubs
	}
	userSubs[sub.id] = sub
	f.mu.Unlock()
	go f.deliverLoop(sub)
	return sub.id
}

// Unsubscribe tears the subscription down and waits for its delivery loop to
// exit, so no callback fires after return. Safe to call repeatedly.
func (f *fanout) Unsubscribe(subId string) {
	f.mu.Lock()
	sub, ok := f.subs[subId]
	if ok {
		delete(f.subs, subId)
		delete(f.byUser[sub.userId], subId)
		if len(f.byUser[sub.userId]) == 0 {
			delete(f.byUser, sub.userId)
		}
	}
	f.mu.Unlock()
	if !ok {
		return
	}
	_ = sub.events.Close()
	<-sub.done
}

func (f *fanout) deliverLoop(sub *subscription) {
	defer close(sub.done)
	for {
		msgs, err := sub.events.Wait(f.runCtx)
		if err != nil {
			return
		}
		for _, n := range msgs {
			sub.callback(n)
			f.metrics.delivered.Add(1)
		}
	}
}

// dispatch handles one queue message. The queue filters nothing beyond the
// payload's user id, so the per-subscription platform intersection is checked
// here before delivery.
func (f *fanout) dispatch(msg queue.Message) error {
	n, err := f.repo.Get(f.runCtx, msg.Id)
	if err != nil {
		if errors.Is(err, notificationrepo.ErrNotFound) {
			log.Warn("queued notification missing, dropping", zap.String("id", msg.Id))
			return nil
		}
		return err
	}
	f.mu.Lock()
	subs := make([]*subscription, 0, len(f.byUser[n.UserId]))
	for _, sub := range f.byUser[n.UserId] {
		subs = append(subs, sub)
	}
	f.mu.Unlock()
	for _, sub := range subs {
		if !n.TargetsAny(sub.platforms) {
			continue
		}
		if err = sub.events.Add(f.runCtx, n); err != nil {
			log.Debug("subscription closed during dispatch", zap.String("subId", sub.id))
		}
	}
	return nil
}

// SubscribeWithPolling composes push and poll: an immediate list, a push
// subscription that re-lists on every event, and an independent timer that
// re-lists in case the push channel silently fails. Every path redelivers the
// full refreshed list rather than a delta, so redundant invocations with an
// unchanged list are expected and the consumer replaces its entire view.
func (f *fanout) SubscribeWithPolling(userId string, platforms []domain.Platform, limit int64, callback func(list []domain.Notification)) (cancel func()) {
	deliver := func() {
		list, err := f.List(f.runCtx, userId, platforms, limit, 0)
		if err != nil {
			log.Warn("poll list failed", zap.String("userId", userId), zap.Error(err))
			return
		}
		f.metrics.polls.Add(1)
		callback(list)
	}
	deliver()
	subId := f.Subscribe(userId, platforms, func(domain.Notification) {
		deliver()
	})
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(f.conf.PollInterval())
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-f.runCtx.Done():
				return
			case <-ticker.C:
				deliver()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			f.Unsubscribe(subId)
			close(done)
			wg.Wait()
		})
	}
}

func (f *fanout) Close(ctx context.Context) (err error) {
	if f.runCtxCancel != nil {
		f.runCtxCancel()
	}
	f.mu.Lock()
	subs := make([]*subscription, 0, len(f.subs))
	for _, sub := range f.subs {
		subs = append(subs, sub)
	}
	f.mu.Unlock()
	for _, sub := range subs {
		f.Unsubscribe(sub.id)
	}
	return nil
}
