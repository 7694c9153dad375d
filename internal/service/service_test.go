package service

import (
	"context"
	"testing"

	"github.com/haierkeys/trade-journal-service/internal/dao"
	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/writequeue"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv 基于内存 sqlite 的完整服务组合
type testEnv struct {
	users     domain.UserRepository
	sessions  domain.SessionRepository
	accounts  domain.TradingAccountRepository
	nets      domain.SafetyNetRepository
	plans     domain.TradingPlanRepository
	shares    domain.SharedPlanRepository
	templates domain.JournalTemplateRepository
	journals  domain.JournalRepository

	note      NoteService
	auth      AuthService
	user      UserService
	account   AccountService
	safetyNet SafetyNetService
	plan      PlanService
	template  JournalTemplateService
	journal   JournalService
	dashboard DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &dao.DatabaseConfig{Type: "sqlite", Path: ":memory:", AutoMigrate: true}
	db, err := dao.NewDBEngineWithConfig(cfg, zap.NewNop())
	require.NoError(t, err)

	wq := writequeue.New(nil, zap.NewNop())
	t.Cleanup(func() {
		_ = wq.Shutdown(context.Background())
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	d := dao.New(db, context.Background(), dao.WithConfig(cfg))
	logger := zap.NewNop()
	sc := &ServiceConfig{}

	e := &testEnv{
		users:     dao.NewUserRepository(d),
		sessions:  dao.NewSessionRepository(d),
		accounts:  dao.NewTradingAccountRepository(d),
		nets:      dao.NewSafetyNetRepository(d),
		plans:     dao.NewTradingPlanRepository(d),
		shares:    dao.NewSharedPlanRepository(d),
		templates: dao.NewJournalTemplateRepository(d),
		journals:  dao.NewJournalRepository(d),
	}
	tm := app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret"})

	e.note = NewNoteService(nil, logger, sc)
	e.auth = NewAuthService(e.users, e.sessions, tm, logger, sc)
	e.user = NewUserService(e.users, logger, sc)
	e.account = NewAccountService(e.accounts, e.users, wq, logger, sc)
	e.safetyNet = NewSafetyNetService(e.nets, e.users, wq, logger)
	e.plan = NewPlanService(e.plans, e.shares, e.users, e.note, wq, logger, sc)
	e.template = NewJournalTemplateService(e.templates, e.note, logger)
	e.journal = NewJournalService(e.journals, e.accounts, logger)
	e.dashboard = NewDashboardService(e.plans, e.templates, e.note, logger, sc)
	return e
}

func (e *testEnv) createUser(t *testing.T, id string) *domain.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), &domain.User{
		ID:             id,
		ParticipantID:  "p-" + id,
		Name:           "Trader " + id,
		Email:          id + "@example.com",
		OnboardingStep: domain.StepAccountSetup,
	})
	require.NoError(t, err)
	return u
}
