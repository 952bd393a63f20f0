//go:generate mockgen -destination mock_grantrepo/mock_grantrepo.go github.com/neothink-dao/platform-bridge/repo/grantrepo GrantRepo

package grantrepo

import (
	"context"
	"errors"
	"time"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neothink-dao/platform-bridge/db"
	"github.com/neothink-dao/platform-bridge/domain"
)

const CName = "bridge.grantrepo"

const collName = "access_grants"

var ErrNotFound = errors.New("grant not found")

func New() GrantRepo {
	return new(grantRepo)
}

type GrantRepo interface {
	Get(ctx context.Context, userId string, platform domain.Platform) (domain.AccessGrant, error)
	Grant(ctx context.Context, grant domain.AccessGrant) error
	Revoke(ctx context.Context, userId string, platform domain.Platform) error
	app.ComponentRunnable
}

type grantRepo struct {
	coll *mongo.Collection
}

func (r *grantRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *grantRepo) Name() (name string) {
	return CName
}

func (r *grantRepo) Run(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	return err
}

func (r *grantRepo) Get(ctx context.Context, userId string, platform domain.Platform) (grant domain.AccessGrant, err error) {
	err = r.coll.FindOne(ctx, bson.M{"_id": domain.GrantKey(userId, platform)}).Decode(&grant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return grant, ErrNotFound
		}
		return grant, err
	}
	return grant, nil
}

func (r *grantRepo) Grant(ctx context.Context, grant domain.AccessGrant) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateByID(
		ctx,
		domain.GrantKey(grant.UserId, grant.Platform),
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "userId", Value: grant.UserId},
				{Key: "platform", Value: grant.Platform},
				{Key: "level", Value: grant.Level},
				{Key: "expiresAt", Value: grant.ExpiresAt},
			}},
			{Key: "$setOnInsert", Value: bson.D{{Key: "created", Value: time.Now().Unix()}}},
		},
		opts,
	)
	return err
}

func (r *grantRepo) Revoke(ctx context.Context, userId string, platform domain.Platform) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": domain.GrantKey(userId, platform)})
	return err
}

func (r *grantRepo) Close(ctx context.Context) error {
	return nil
}
