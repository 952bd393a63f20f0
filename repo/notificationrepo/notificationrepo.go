//go:generate mockgen -destination mock_notificationrepo/mock_notificationrepo.go github.com/neothink-dao/platform-bridge/repo/notificationrepo NotificationRepo

package notificationrepo

import (
	"context"
	"errors"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neothink-dao/platform-bridge/db"
	"github.com/neothink-dao/platform-bridge/domain"
)

const CName = "bridge.notificationrepo"

const collName = "notifications"

func New() NotificationRepo {
	return new(notificationRepo)
}

var ErrNotFound = errors.New("notification not found")

type NotificationRepo interface {
	Add(ctx context.Context, n domain.Notification) error
	Get(ctx context.Context, id string) (domain.Notification, error)
	List(ctx context.Context, userId string, platforms []domain.Platform, limit, offset int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userId string, ids []string) error
	UnreadCount(ctx context.Context, userId string, platforms []domain.Platform) (int64, error)
	app.ComponentRunnable
}

type notificationRepo struct {
	coll *mongo.Collection
}

func (r *notificationRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *notificationRepo) Name() (name string) {
	return CName
}

func (r *notificationRepo) Run(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "read", Value: 1}, {Key: "created", Value: -1}},
	})
	return err
}

func (r *notificationRepo) Add(ctx context.Context, n domain.Notification) error {
	_, err := r.coll.InsertOne(ctx, n)
	return err
}

func (r *notificationRepo) Get(ctx context.Context, id string) (n domain.Notification, err error) {
	err = r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return n, ErrNotFound
		}
		return n, err
	}
	return n, nil
}

// targetFilter matches rows whose targets intersect the requested platforms.
// An empty platforms slice is the "all platforms" query, not the empty
// intersection: it drops the targets clause and matches every row of the user.
func targetFilter(userId string, platforms []domain.Platform) bson.M {
	filter := bson.M{"userId": userId}
	if len(platforms) > 0 {
		filter["targets"] = bson.M{"$in": platforms}
	}
	return filter
}

func (r *notificationRepo) List(ctx context.Context, userId string, platforms []domain.Platform, limit, offset int64) ([]domain.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}}).SetSkip(offset)
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := r.coll.Find(ctx, targetFilter(userId, platforms), opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	var notifications []domain.Notification
	if err = cur.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, userId string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	// scoped to userId: a user can only mark their own rows read
	_, err := r.coll.UpdateMany(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}, "userId": userId},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

func (r *notificationRepo) UnreadCount(ctx context.Context, userId string, platforms []domain.Platform) (int64, error) {
	filter := targetFilter(userId, platforms)
	filter["read"] = false
	return r.coll.CountDocuments(ctx, filter)
}

func (r *notificationRepo) Close(ctx context.Context) error {
	return nil
}
