//go:generate mockgen -destination mock_staterepo/mock_staterepo.go github.com/neothink-dao/platform-bridge/repo/staterepo StateRepo

package staterepo

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

const CName = "bridge.staterepo"

const (
	collName     = "state"
	snapCollName = "state_snapshots"
)

var ErrNotFound = errors.New("state not found")

func New() StateRepo {
	return new(stateRepo)
}

// StateRepo stores the whole-user state aggregate (one row per user) and the
// per-platform snapshots preserved on switching.
type StateRepo interface {
	Get(ctx context.Context, userId string) (*domain.State, error)
	Save(ctx context.Context, state *domain.State) error
	Delete(ctx context.Context, userId string) error
	SaveSnapshot(ctx context.Context, userId string, platform domain.Platform, state *domain.State) error
	GetSnapshot(ctx context.Context, userId string, platform domain.Platform) (*domain.State, error)
	app.ComponentRunnable
}

type stateRepo struct {
	coll     *mongo.Collection
	snapColl *mongo.Collection
}

func (r *stateRepo) Init(a *app.App) (err error) {
	mdb := a.MustComponent(db.CName).(db.Database).Db()
	r.coll = mdb.Collection(collName)
	r.snapColl = mdb.Collection(snapCollName)
	return
}

func (r *stateRepo) Name() (name string) {
	return CName
}

func (r *stateRepo) Run(ctx context.Context) error {
	_, err := r.snapColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "platform", Value: 1}},
	})
	return err
}

func (r *stateRepo) Get(ctx context.Context, userId string) (*domain.State, error) {
	var state domain.State
	err := r.coll.FindOne(ctx, bson.M{"_id": userId}).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	state.Normalize()
	return &state, nil
}

func (r *stateRepo) Save(ctx context.Context, state *domain.State) error {
	state.Updated = time.Now().Unix()
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": state.UserId}, state, opts)
	return err
}

func (r *stateRepo) Delete(ctx context.Context, userId string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": userId})
	return err
}

type snapshot struct {
	Id       string          `bson:"_id"`
	UserId   string          `bson:"userId"`
	Platform domain.Platform `bson:"platform"`
	State    *domain.State   `bson:"state"`
	Updated  int64           `bson:"updated"`
}

func (r *stateRepo) SaveSnapshot(ctx context.Context, userId string, platform domain.Platform, state *domain.State) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.snapColl.ReplaceOne(ctx, bson.M{"_id": userId + "/" + string(platform)}, snapshot{
		Id:       userId + "/" + string(platform),
		UserId:   userId,
		Platform: platform,
		State:    state,
		Updated:  time.Now().Unix(),
	}, opts)
	return err
}

func (r *stateRepo) GetSnapshot(ctx context.Context, userId string, platform domain.Platform) (*domain.State, error) {
	var snap snapshot
	err := r.snapColl.FindOne(ctx, bson.M{"_id": userId + "/" + string(platform)}).Decode(&snap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if snap.State != nil {
		snap.State.Normalize()
	}
	return snap.State, nil
}

func (r *stateRepo) Close(ctx context.Context) error {
	return nil
}
