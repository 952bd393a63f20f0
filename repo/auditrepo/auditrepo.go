//go:generate mockgen -destination mock_auditrepo/mock_auditrepo.go github.com/neothink-dao/platform-bridge/repo/auditrepo AuditRepo

package auditrepo

import (
	"context"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neothink-dao/platform-bridge/db"
	"github.com/neothink-dao/platform-bridge/domain"
)

const CName = "bridge.auditrepo"

const collName = "switch_audit"

func New() AuditRepo {
	return new(auditRepo)
}

// AuditRepo is the append-only record of platform switches.
type AuditRepo interface {
	Append(ctx context.Context, audit domain.SwitchAudit) error
	ListByUser(ctx context.Context, userId string, limit int64) ([]domain.SwitchAudit, error)
	app.ComponentRunnable
}

type auditRepo struct {
	coll *mongo.Collection
}

func (r *auditRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *auditRepo) Name() (name string) {
	return CName
}

func (r *auditRepo) Run(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "time", Value: -1}},
	})
	return err
}

func (r *auditRepo) Append(ctx context.Context, audit domain.SwitchAudit) error {
	_, err := r.coll.InsertOne(ctx, audit)
	return err
}

func (r *auditRepo) ListByUser(ctx context.Context, userId string, limit int64) ([]domain.SwitchAudit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := r.coll.Find(ctx, bson.M{"userId": userId}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	var audits []domain.SwitchAudit
	if err = cur.All(ctx, &audits); err != nil {
		return nil, err
	}
	return audits, nil
}

func (r *auditRepo) Close(ctx context.Context) error {
	return nil
}
