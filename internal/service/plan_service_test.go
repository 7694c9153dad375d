package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func planRequest(n *string) *dto.TradingPlanRequest {
	return &dto.TradingPlanRequest{
		TradingStyle:    "day_trading",
		TradingSessions: []string{"london", "new_york"},
		TimeZone:        "UTC",
		RiskRewardRatio: 2,
		Note:            n,
	}
}

func TestPlanService_GetMissing(t *testing.T) {
	e := newTestEnv(t)
	res, err := e.plan.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Trading plan not found", res.Message)
	assert.Nil(t, res.Plan)
}

func TestPlanService_CreateWithTemplate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createUser(t, "u1")

	res, err := e.plan.Create(ctx, "u1", planRequest(strPtr("")))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Trading plan created successfully", res.Message)
	require.NotNil(t, res.Plan)
	assert.False(t, res.Plan.IsOwner)
	require.NotNil(t, res.Plan.Note)
	assert.Equal(t, note.FormatHTML, res.Plan.Note.Format)
	assert.Contains(t, res.Plan.Note.HTML, "Planning Date")

	// journal template is created with the plan
	tpl, err := e.template.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, tpl)
	assert.Equal(t, note.FormatJSON, tpl.Note.Format)
	assert.NotEmpty(t, tpl.Note.HTML)

	u, err := e.users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepComplete, u.OnboardingStep)
	assert.True(t, u.OnboardingCompleted)

	_, err = e.plan.Create(ctx, "u1", planRequest(nil))
	assert.True(t, errors.Is(err, code.ErrorTradingPlanExists))
}

func TestPlanService_CreateWithoutNote(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "u1")

	res, err := e.plan.Create(context.Background(), "u1", planRequest(nil))
	require.NoError(t, err)
	require.NotNil(t, res.Plan.Note)
	assert.True(t, res.Plan.Note.IsEmpty())
}

func TestPlanService_CreateMarkdown(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "u1")

	req := planRequest(strPtr("# Rules\n\n- **no** revenge trades"))
	req.RenderAs = "markdown"
	res, err := e.plan.Create(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.Equal(t, note.FormatMarkdown, res.Plan.Note.Format)
	assert.Contains(t, res.Plan.Note.HTML, "<h1>Rules</h1>")
	assert.Contains(t, res.Plan.Note.HTML, "<strong>no</strong>")

	req.RenderAs = "pdf"
	_, err = e.plan.Create(context.Background(), "u2", req)
	assert.True(t, errors.Is(err, code.ErrorInvalidRenderFormat))
}

func TestPlanService_UpdateAndShare(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createUser(t, "u1")

	_, err := e.plan.Update(ctx, "u1", planRequest(nil))
	assert.True(t, errors.Is(err, code.ErrorTradingPlanNotFound))

	_, err = e.plan.Create(ctx, "u1", planRequest(strPtr("<p>first</p>")))
	require.NoError(t, err)

	_, err = e.plan.Share(ctx, "u1", "PUBLIC")
	assert.True(t, errors.Is(err, code.ErrorTradingPlanNotShareable))

	req := planRequest(nil)
	req.TradingStyle = "swing"
	res, err := e.plan.Update(ctx, "u1", req)
	require.NoError(t, err)
	assert.True(t, res.Plan.IsOwner)
	assert.Equal(t, "swing", res.Plan.TradingStyle)
	// note kept when not provided
	assert.Equal(t, "<p>first</p>", res.Plan.Note.Raw)

	_, err = e.plan.Share(ctx, "u1", "friends")
	assert.True(t, errors.Is(err, code.ErrorInvalidEnumValue))

	shared, err := e.plan.Share(ctx, "u1", "public")
	require.NoError(t, err)
	assert.True(t, shared.Success)
	assert.Equal(t, "PUBLIC", shared.SharedPlan.Visibility)
	assert.Equal(t, res.Plan.ID, shared.SharedPlan.OriginalPlanID)

	for i := 0; i < 2; i++ {
		got, err := e.plan.GetShared(ctx, shared.SharedPlan.ID)
		require.NoError(t, err)
		assert.True(t, got.Success)
		assert.False(t, got.SharedPlan.Viewed)
		require.NotNil(t, got.SharedPlan.Plan)
		assert.Equal(t, "swing", got.SharedPlan.Plan.TradingStyle)
	}
}

func TestPlanService_PrivateShareViewedOnce(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createUser(t, "u1")

	_, err := e.plan.Create(ctx, "u1", planRequest(nil))
	require.NoError(t, err)
	_, err = e.plan.UpdateNote(ctx, "u1", "<p>edited</p>")
	require.NoError(t, err)

	shared, err := e.plan.Share(ctx, "u1", "PRIVATE")
	require.NoError(t, err)

	first, err := e.plan.GetShared(ctx, shared.SharedPlan.ID)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.True(t, first.SharedPlan.Viewed)

	second, err := e.plan.GetShared(ctx, shared.SharedPlan.ID)
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Equal(t, "This private plan has already been viewed", second.Message)

	missing, err := e.plan.GetShared(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, missing.Success)
	assert.Equal(t, "Shared plan not found", missing.Message)
}

func TestPlanService_ShareExpires(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createUser(t, "u1")

	_, err := e.plan.Create(ctx, "u1", planRequest(nil))
	require.NoError(t, err)
	_, err = e.plan.UpdateNote(ctx, "u1", "edited")
	require.NoError(t, err)

	shared, err := e.plan.Share(ctx, "u1", "PUBLIC")
	require.NoError(t, err)

	ps := e.plan.(*planService)
	ps.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	got, err := e.plan.GetShared(ctx, shared.SharedPlan.ID)
	require.NoError(t, err)
	assert.False(t, got.Success)
	assert.Equal(t, "Shared plan has expired", got.Message)

	n, err := e.plan.CleanupShares(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPlanService_UpdateNote(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createUser(t, "u1")

	_, err := e.plan.UpdateNote(ctx, "u1", "x")
	assert.True(t, errors.Is(err, code.ErrorTradingPlanNotFound))

	_, err = e.plan.Create(ctx, "u1", planRequest(nil))
	require.NoError(t, err)

	res, err := e.plan.UpdateNote(ctx, "u1", "<p>hi</p><script>alert(1)</script>")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, note.FormatHTML, res.Plan.Note.Format)
	assert.NotContains(t, res.Plan.Note.HTML, "<script")

	got, err := e.plan.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.Plan.IsOwner)
	assert.Contains(t, got.Plan.Note.HTML, "<p>hi</p>")
}
