package dao

import (
	"context"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/model"
	"github.com/haierkeys/trade-journal-service/pkg/idgen"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// tradingAccountRepository 实现 domain.TradingAccountRepository 接口
type tradingAccountRepository struct {
	dao *Dao
}

// NewTradingAccountRepository 创建 TradingAccountRepository 实例
func NewTradingAccountRepository(dao *Dao) domain.TradingAccountRepository {
	return &tradingAccountRepository{dao: dao}
}

func (r *tradingAccountRepository) account(ctx context.Context) *gorm.DB {
	return r.dao.UseTableWithOnceFunc(ctx, func(g *gorm.DB) {
		r.dao.Migrate(g, "TradingAccount")
	}, "trading_account#trading_account").Model(&model.TradingAccount{})
}

func (r *tradingAccountRepository) toDomain(m *model.TradingAccount) *domain.TradingAccount {
	if m == nil {
		return nil
	}
	a := &domain.TradingAccount{
		ID:              m.ID,
		AccountID:       m.AccountID,
		UserID:          m.UserID,
		Goal:            domain.Goal(m.Goal),
		IsProp:          m.IsProp,
		Funded:          m.Funded,
		PropFirm:        m.PropFirm,
		Broker:          m.Broker,
		AccountSize:     m.AccountSize,
		AccountCurrency: m.AccountCurrency,
		AccountName:     m.AccountName,
		ExperienceLevel: domain.ExperienceLevel(m.ExperienceLevel),
		CreatedAt:       time.Time(m.CreatedAt),
		UpdatedAt:       time.Time(m.UpdatedAt),
	}
	if !m.FundedAt.IsZero() {
		fundedAt := time.Time(m.FundedAt)
		a.FundedAt = &fundedAt
	}
	for _, c := range m.BiggestChallenge {
		a.BiggestChallenge = append(a.BiggestChallenge, domain.Challenge(c))
	}
	return a
}

func (r *tradingAccountRepository) toModel(a *domain.TradingAccount) *model.TradingAccount {
	m := &model.TradingAccount{
		ID:              a.ID,
		AccountID:       a.AccountID,
		UserID:          a.UserID,
		Goal:            string(a.Goal),
		IsProp:          a.IsProp,
		Funded:          a.Funded,
		PropFirm:        a.PropFirm,
		Broker:          a.Broker,
		AccountSize:     a.AccountSize,
		AccountCurrency: a.AccountCurrency,
		AccountName:     a.AccountName,
		ExperienceLevel: string(a.ExperienceLevel),
		CreatedAt:       timex.Time(a.CreatedAt),
		UpdatedAt:       timex.Time(a.UpdatedAt),
	}
	if a.FundedAt != nil {
		m.FundedAt = timex.Time(*a.FundedAt)
	}
	challenges := make(datatypes.JSONSlice[string], 0, len(a.BiggestChallenge))
	for _, c := range a.BiggestChallenge {
		challenges = append(challenges, string(c))
	}
	m.BiggestChallenge = challenges
	return m
}

// Create 创建交易账户，生成 UUID 主键和 snowflake 账户号
func (r *tradingAccountRepository) Create(ctx context.Context, a *domain.TradingAccount) (*domain.TradingAccount, error) {
	m := r.toModel(a)
	if m.ID == "" {
		m.ID = idgen.UUID()
	}
	if m.AccountID == "" {
		m.AccountID = idgen.Snowflake()
	}
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.account(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *tradingAccountRepository) GetByID(ctx context.Context, id, userID string) (*domain.TradingAccount, error) {
	var m model.TradingAccount
	if err := r.account(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *tradingAccountRepository) ListByUser(ctx context.Context, userID string) ([]*domain.TradingAccount, error) {
	var ms []*model.TradingAccount
	if err := r.account(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.TradingAccount, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

func (r *tradingAccountRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.account(ctx).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// OwnedIDs 筛选属于用户的账户ID
func (r *tradingAccountRepository) OwnedIDs(ctx context.Context, userID string, ids []string) ([]string, error) {
	owned := make([]string, 0, len(ids))
	if len(ids) == 0 {
		return owned, nil
	}
	err := r.account(ctx).Where("user_id = ? AND id IN ?", userID, ids).Pluck("id", &owned).Error
	return owned, err
}

var _ domain.TradingAccountRepository = (*tradingAccountRepository)(nil)
