package service

import (
	"context"
	"errors"
	"testing"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAccountService_Setup(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createUser(t, "u1")

	req := &dto.AccountSetupRequest{
		Goal:             "PROP",
		Broker:           "FTMO",
		AccountSize:      0,
		AccountCurrency:  "USD",
		AccountName:      "challenge",
		BiggestChallenge: []string{"RISK_MANAGEMENT", "PATIENCE"},
	}
	_, err := e.account.Setup(ctx, "u1", req)
	assert.True(t, errors.Is(err, code.ErrorAccountSizeInvalid))

	req.AccountSize = 25000.75
	acc, err := e.account.Setup(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), acc.AccountSize)
	assert.True(t, acc.IsProp)
	assert.Equal(t, "PROP", acc.Goal)
	assert.Equal(t, []string{"RISK_MANAGEMENT", "PATIENCE"}, acc.BiggestChallenge)

	u, err := e.users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepSafetyNet, u.OnboardingStep)

	list, err := e.account.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := e.account.Get(ctx, "u2", acc.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSafetyNetService_Create(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createUser(t, "u1")

	first, err := e.safetyNet.Create(ctx, "u1", &dto.SafetyNetCreateRequest{MaxDailyRisk: 2, MaxOpenTrades: 3})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	u, err := e.users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepTradingStyle, u.OnboardingStep)

	yes := true
	second, err := e.safetyNet.Create(ctx, "u1", &dto.SafetyNetCreateRequest{MaxDailyRisk: 1, IsDefault: &yes})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	nets, err := e.safetyNet.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, nets, 2)
	defaults := 0
	for _, n := range nets {
		if n.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

// nilSafetyNetRepo 返回无法复制的空实体
type nilSafetyNetRepo struct{}

func (nilSafetyNetRepo) Create(ctx context.Context, net *domain.SafetyNet) (*domain.SafetyNet, bool, error) {
	return nil, false, nil
}

func (nilSafetyNetRepo) ListByUser(ctx context.Context, userID string) ([]*domain.SafetyNet, error) {
	return []*domain.SafetyNet{nil}, nil
}

func TestSafetyNetService_CopyFailure(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createUser(t, "u1")

	svc := NewSafetyNetService(nilSafetyNetRepo{}, e.users, nil, zap.NewNop())

	nets, err := svc.List(ctx, "u1")
	assert.Nil(t, nets)
	assert.True(t, errors.Is(err, code.ErrorServerInternal))

	created, err := svc.Create(ctx, "u1", &dto.SafetyNetCreateRequest{MaxDailyRisk: 2})
	assert.Nil(t, created)
	assert.True(t, errors.Is(err, code.ErrorServerInternal))
}
