package dao

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/pkg/note"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	cfg := &DatabaseConfig{Type: "sqlite", Path: ":memory:", AutoMigrate: true}
	db, err := NewDBEngineWithConfig(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(db, context.Background(), WithConfig(cfg), WithLogger(zap.NewNop()))
}

func createUser(t *testing.T, d *Dao, id string) *domain.User {
	t.Helper()
	u, err := NewUserRepository(d).Create(context.Background(), &domain.User{
		ID:            id,
		ParticipantID: "p-" + id,
		Name:          "Trader " + id,
		Email:         id + "@example.com",
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository(t *testing.T) {
	d := newTestDao(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	u := createUser(t, d, "g-1")
	assert.Equal(t, domain.StepAccountSetup, u.OnboardingStep)

	got, err := repo.GetByEmail(ctx, "g-1@example.com")
	require.NoError(t, err)
	assert.Equal(t, "g-1", got.ID)
	assert.False(t, got.OnboardingCompleted)

	require.NoError(t, repo.UpdateOnboarding(ctx, "g-1", domain.StepComplete, true))
	got, err = repo.GetByID(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepComplete, got.OnboardingStep)
	assert.True(t, got.OnboardingCompleted)

	err = repo.UpdateOnboarding(ctx, "missing", domain.StepComplete, true)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSessionRepository(t *testing.T) {
	d := newTestDao(t)
	repo := NewSessionRepository(d)
	ctx := context.Background()

	live, err := repo.Create(ctx, &domain.Session{UserID: "u", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Len(t, live.ID, 26)

	_, err = repo.Create(ctx, &domain.Session{UserID: "u", ExpiresAt: time.Now().Add(-time.Hour)})
	require.NoError(t, err)

	n, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, "u", got.UserID)

	require.NoError(t, repo.Delete(ctx, live.ID))
	_, err = repo.GetByID(ctx, live.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTradingAccountRepository(t *testing.T) {
	d := newTestDao(t)
	repo := NewTradingAccountRepository(d)
	ctx := context.Background()

	a, err := repo.Create(ctx, &domain.TradingAccount{
		UserID:           "u1",
		Goal:             domain.GoalProp,
		IsProp:           true,
		Broker:           "FTMO",
		AccountSize:      100000,
		AccountCurrency:  "USD",
		AccountName:      "Challenge",
		BiggestChallenge: []domain.Challenge{domain.ChallengePatience, domain.ChallengeRiskManagement},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, a.AccountID)

	other, err := repo.Create(ctx, &domain.TradingAccount{UserID: "u2", Goal: domain.GoalImprove, AccountSize: 10, AccountCurrency: "EUR", AccountName: "x"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, a.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Challenge{domain.ChallengePatience, domain.ChallengeRiskManagement}, got.BiggestChallenge)
	assert.Nil(t, got.FundedAt)

	_, err = repo.GetByID(ctx, a.ID, "u2")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	count, err := repo.CountByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	owned, err := repo.OwnedIDs(ctx, "u1", []string{a.ID, other.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, owned)

	list, err := repo.ListByUser(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other.ID, list[0].ID)
}

func TestSafetyNetRepository_DefaultHandling(t *testing.T) {
	d := newTestDao(t)
	repo := NewSafetyNetRepository(d)
	ctx := context.Background()

	first, isFirst, err := repo.Create(ctx, &domain.SafetyNet{UserID: "u", MaxDailyRisk: 2, MaxOpenTrades: 3})
	require.NoError(t, err)
	assert.True(t, isFirst)
	assert.True(t, first.IsDefault)

	second, isFirst, err := repo.Create(ctx, &domain.SafetyNet{UserID: "u", MaxDailyRisk: 1})
	require.NoError(t, err)
	assert.False(t, isFirst)
	assert.False(t, second.IsDefault)

	third, _, err := repo.Create(ctx, &domain.SafetyNet{UserID: "u", IsDefault: true})
	require.NoError(t, err)
	assert.True(t, third.IsDefault)

	nets, err := repo.ListByUser(ctx, "u")
	require.NoError(t, err)
	require.Len(t, nets, 3)
	defaults := 0
	for _, n := range nets {
		if n.IsDefault {
			defaults++
			assert.Equal(t, third.ID, n.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestTradingPlanRepository(t *testing.T) {
	d := newTestDao(t)
	plans := NewTradingPlanRepository(d)
	templates := NewJournalTemplateRepository(d)
	ctx := context.Background()

	content := note.Content{Raw: "# Plan", HTML: "<h1>Plan</h1>", Format: note.FormatMarkdown}
	tmpl := note.Content{Raw: "{}", HTML: "<p>t</p>", Format: note.FormatJSON}
	p, err := plans.Create(ctx, &domain.TradingPlan{
		UserID:          "u",
		TradingStyle:    "swing",
		TradingSessions: []string{"London", "New York"},
		TimeZone:        "UTC",
		RiskRewardRatio: 3,
		Note:            &content,
	}, &domain.JournalTemplate{Note: tmpl})
	require.NoError(t, err)

	got, err := plans.GetByUserID(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, []string{"London", "New York"}, got.TradingSessions)
	require.NotNil(t, got.Note)
	assert.Equal(t, content, *got.Note)
	assert.False(t, got.IsOwner)

	gotTmpl, err := templates.GetByUserID(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, tmpl, gotTmpl.Note)

	got.TradingStyle = "scalping"
	got.IsOwner = true
	updated, err := plans.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "scalping", updated.TradingStyle)
	assert.True(t, updated.IsOwner)

	newNote := note.Content{Raw: "x", HTML: "<p>x</p>", Format: note.FormatHTML}
	require.NoError(t, plans.UpdateNote(ctx, p.ID, newNote))
	got, err = plans.GetByUserID(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, newNote, *got.Note)

	assert.True(t, errors.Is(plans.UpdateNote(ctx, "missing", newNote), gorm.ErrRecordNotFound))
}

func TestJournalTemplateRepository_Upsert(t *testing.T) {
	d := newTestDao(t)
	repo := NewJournalTemplateRepository(d)
	ctx := context.Background()

	a, err := repo.Upsert(ctx, "u", note.Content{Raw: "a", HTML: "<p>a</p>", Format: note.FormatHTML})
	require.NoError(t, err)
	b, err := repo.Upsert(ctx, "u", note.Content{Raw: "b", HTML: "<p>b</p>", Format: note.FormatHTML})
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "b", b.Note.Raw)
}

func TestSharedPlanRepository(t *testing.T) {
	d := newTestDao(t)
	plans := NewTradingPlanRepository(d)
	shares := NewSharedPlanRepository(d)
	ctx := context.Background()

	p, err := plans.Create(ctx, &domain.TradingPlan{UserID: "u", TradingStyle: "day", TimeZone: "UTC", RiskRewardRatio: 2}, nil)
	require.NoError(t, err)

	s, err := shares.Create(ctx, &domain.SharedPlan{
		PlanID:     p.ID,
		UserID:     "u",
		Visibility: domain.VisibilityPrivate,
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	got, err := shares.GetWithPlan(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Plan)
	assert.Equal(t, "day", got.Plan.TradingStyle)
	assert.Nil(t, got.Plan.Note)
	assert.False(t, got.Viewed)

	ok, err := shares.MarkViewed(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = shares.MarkViewed(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = shares.Create(ctx, &domain.SharedPlan{PlanID: p.ID, UserID: "u", Visibility: domain.VisibilityPublic, ExpiresAt: time.Now().Add(-time.Minute)})
	require.NoError(t, err)
	n, err := shares.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestJournalRepository(t *testing.T) {
	d := newTestDao(t)
	accounts := NewTradingAccountRepository(d)
	journals := NewJournalRepository(d)
	ctx := context.Background()

	mine, err := accounts.Create(ctx, &domain.TradingAccount{UserID: "u1", Goal: domain.GoalProp, AccountSize: 1, AccountCurrency: "USD", AccountName: "a"})
	require.NoError(t, err)
	theirs, err := accounts.Create(ctx, &domain.TradingAccount{UserID: "u2", Goal: domain.GoalProp, AccountSize: 1, AccountCurrency: "USD", AccountName: "b"})
	require.NoError(t, err)

	entry := decimal.RequireFromString("1.085")
	created, err := journals.CreateBatch(ctx, []*domain.Journal{
		{
			AccountID:         mine.ID,
			ExecutionStyle:    "market",
			Instrument:        "EURUSD",
			Side:              "long",
			Size:              decimal.RequireFromString("1.5"),
			PlannedEntryPrice: entry,
			PlannedStopLoss:   decimal.RequireFromString("1.082"),
			PlannedTakeProfit: decimal.RequireFromString("1.091"),
			Note:              json.RawMessage(`{"type":"doc","content":[]}`),
		},
		{AccountID: theirs.ID, ExecutionStyle: "limit", Instrument: "GBPUSD", Side: "short"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	got, err := journals.GetOwned(ctx, created[0].ID, "u1")
	require.NoError(t, err)
	assert.True(t, entry.Equal(got.PlannedEntryPrice))
	assert.False(t, got.ExitPrice.Valid)
	assert.Nil(t, got.TargetHit)
	assert.JSONEq(t, `{"type":"doc","content":[]}`, string(got.Note))

	_, err = journals.GetOwned(ctx, created[1].ID, "u1")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	list, err := journals.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = journals.ListByAccount(ctx, theirs.ID, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	exit := decimal.RequireFromString("1.09")
	hit := true
	updated, err := journals.Update(ctx, created[0].ID, &domain.JournalPatch{
		ExitPrice:      &exit,
		TargetHit:      &hit,
		ExecutionNotes: json.RawMessage(`{"type":"doc"}`),
	})
	require.NoError(t, err)
	assert.True(t, updated.ExitPrice.Valid)
	assert.True(t, exit.Equal(updated.ExitPrice.Decimal))
	require.NotNil(t, updated.TargetHit)
	assert.True(t, *updated.TargetHit)
	assert.JSONEq(t, `{"type":"doc"}`, string(updated.ExecutionNotes))
}
