package switcher

import (
	"context"
	"errors"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/anyproto/any-sync/metric"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neothink-dao/platform-bridge/domain"
	"github.com/neothink-dao/platform-bridge/repo/auditrepo"
	"github.com/neothink-dao/platform-bridge/repo/grantrepo"
	"github.com/neothink-dao/platform-bridge/repo/staterepo"
)

const CName = "bridge.switcher"

var log = logger.NewNamed(CName)

func New() Switcher {
	return new(switcher)
}

// Switcher orchestrates a platform switch: access gate, source-state
// preservation, target-state restore and an audit record. The sequence is
// non-atomic by design: preservation committed before a later failure is kept,
// not rolled back.
type Switcher interface {
	CheckAccess(ctx context.Context, userId string, target domain.Platform) bool
	PreserveState(ctx context.Context, userId string, source domain.Platform, custom domain.Document) error
	RestoreState(ctx context.Context, userId string, target domain.Platform) *domain.State
	SwitchPlatform(ctx context.Context, userId string, target domain.Platform, preserveCurrent bool, current domain.Platform) domain.SwitchResult
	app.Component
}

type switcher struct {
	grantRepo grantrepo.GrantRepo
	stateRepo staterepo.StateRepo
	auditRepo auditrepo.AuditRepo
	metric    metric.Metric
}

func (s *switcher) Init(a *app.App) (err error) {
	s.grantRepo = a.MustComponent(grantrepo.CName).(grantrepo.GrantRepo)
	s.stateRepo = a.MustComponent(staterepo.CName).(staterepo.StateRepo)
	s.auditRepo = a.MustComponent(auditrepo.CName).(auditrepo.AuditRepo)
	if m := a.Component(metric.CName); m != nil {
		s.metric = m.(metric.Metric)
	}
	return
}

func (s *switcher) Name() (name string) {
	return CName
}

// CheckAccess reports whether a non-expired grant exists for (userId, target).
// Absence and lookup errors both read as denied.
func (s *switcher) CheckAccess(ctx context.Context, userId string, target domain.Platform) bool {
	grant, err := s.grantRepo.Get(ctx, userId, target)
	if err != nil {
		if !errors.Is(err, grantrepo.ErrNotFound) {
			log.Warn("access check failed, denying",
				zap.String("userId", userId), zap.String("platform", string(target)), zap.Error(err))
		}
		return false
	}
	return grant.Active(time.Now().Unix())
}

// PreserveState snapshots the user's current aggregate keyed to (userId,
// source). When custom is given it overrides the source platform's document.
func (s *switcher) PreserveState(ctx context.Context, userId string, source domain.Platform, custom domain.Document) error {
	if userId == "" {
		return domain.ErrEmptyUserId
	}
	if !source.Valid() {
		return domain.ErrInvalidPlatform
	}
	state, err := s.stateRepo.Get(ctx, userId)
	if err != nil {
		if !errors.Is(err, staterepo.ErrNotFound) {
			return err
		}
		state = domain.DefaultState(userId)
	}
	if custom != nil {
		state.Platforms[source] = custom
	}
	return s.stateRepo.SaveSnapshot(ctx, userId, source, state)
}

// RestoreState is a remote-only read: switching is infrequent enough that the
// local cache's staleness window is not worth the risk. Returns nil on miss or
// error; callers treat nil as a first visit.
func (s *switcher) RestoreState(ctx context.Context, userId string, target domain.Platform) *domain.State {
	state, err := s.stateRepo.GetSnapshot(ctx, userId, target)
	if err != nil {
		if errors.Is(err, staterepo.ErrNotFound) {
			log.Debug("no preserved state for target",
				zap.String("userId", userId), zap.String("platform", string(target)))
		} else {
			log.Warn("state restore failed",
				zap.String("userId", userId), zap.String("platform", string(target)), zap.Error(err))
		}
		return nil
	}
	return state
}

func (s *switcher) SwitchPlatform(ctx context.Context, userId string, target domain.Platform, preserveCurrent bool, current domain.Platform) (res domain.SwitchResult) {
	st := time.Now()
	defer func() {
		if s.metric != nil {
			s.metric.RequestLog(ctx, "bridge.switchPlatform",
				metric.TotalDur(time.Since(st)),
				zap.String("userId", userId),
				zap.String("target", string(target)),
				zap.Bool("success", res.Success),
			)
		}
	}()
	if userId == "" {
		return failed(domain.ErrEmptyUserId.Error())
	}
	if !target.Valid() {
		return failed(domain.ErrInvalidPlatform.Error())
	}
	// the access gate comes before any mutation
	if !s.CheckAccess(ctx, userId, target) {
		return domain.SwitchResult{Err: &domain.SwitchError{
			Code:    domain.SwitchErrAccessDenied,
			Message: "no access to platform",
			Details: string(target),
		}}
	}
	// preservation of the platform being left is advisory
	if preserveCurrent && current.Valid() {
		if err := s.PreserveState(ctx, userId, current, nil); err != nil {
			log.Warn("preserve state failed, continuing switch",
				zap.String("userId", userId), zap.String("platform", string(current)), zap.Error(err))
		}
	}
	restored := s.RestoreState(ctx, userId, target)
	if err := s.auditRepo.Append(ctx, domain.SwitchAudit{
		Id:     uuid.NewString(),
		UserId: userId,
		From:   current,
		To:     target,
		Time:   time.Now().Unix(),
	}); err != nil {
		log.Warn("switch audit append failed",
			zap.String("userId", userId), zap.Error(err))
	}
	return domain.SwitchResult{Success: true, State: restored}
}

func failed(details string) domain.SwitchResult {
	return domain.SwitchResult{Err: &domain.SwitchError{
		Code:    domain.SwitchErrFailed,
		Message: "platform switch failed",
		Details: details,
	}}
}
