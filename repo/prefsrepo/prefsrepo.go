//go:generate mockgen -destination mock_prefsrepo/mock_prefsrepo.go github.com/neothink-dao/platform-bridge/repo/prefsrepo PrefsRepo

package prefsrepo

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

const CName = "bridge.prefsrepo"

const collName = "preferences"

var ErrNotFound = errors.New("preferences not found")

func New() PrefsRepo {
	return new(prefsRepo)
}

type PrefsRepo interface {
	Get(ctx context.Context, userId string, platform domain.Platform) (domain.Preferences, error)
	Save(ctx context.Context, userId string, platform domain.Platform, prefs domain.Preferences) error
	app.ComponentRunnable
}

type prefsRepo struct {
	coll *mongo.Collection
}

func (r *prefsRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *prefsRepo) Name() (name string) {
	return CName
}

func (r *prefsRepo) Run(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	return err
}

func (r *prefsRepo) Get(ctx context.Context, userId string, platform domain.Platform) (prefs domain.Preferences, err error) {
	var doc domain.PrefsDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": domain.PrefsKey(userId, platform)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return prefs, ErrNotFound
		}
		return prefs, err
	}
	return doc.Prefs, nil
}

func (r *prefsRepo) Save(ctx context.Context, userId string, platform domain.Platform, prefs domain.Preferences) error {
	// a caller-provided stamp is kept so the caller's cached copy matches
	if prefs.Updated == 0 {
		prefs.Updated = time.Now().Unix()
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateByID(
		ctx,
		domain.PrefsKey(userId, platform),
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "userId", Value: userId},
				{Key: "platform", Value: platform},
				{Key: "prefs", Value: prefs},
			}},
			{Key: "$setOnInsert", Value: bson.D{{Key: "created", Value: time.Now().Unix()}}},
		},
		opts,
	)
	return err
}

func (r *prefsRepo) Close(ctx context.Context) error {
	return nil
}
