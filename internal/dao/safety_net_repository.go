package dao

import (
	"context"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/model"
	"github.com/haierkeys/trade-journal-service/pkg/idgen"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"gorm.io/gorm"
)

// safetyNetRepository 实现 domain.SafetyNetRepository 接口
type safetyNetRepository struct {
	dao *Dao
}

// NewSafetyNetRepository 创建 SafetyNetRepository 实例
func NewSafetyNetRepository(dao *Dao) domain.SafetyNetRepository {
	return &safetyNetRepository{dao: dao}
}

func (r *safetyNetRepository) safetyNet(ctx context.Context) *gorm.DB {
	return r.dao.UseTableWithOnceFunc(ctx, func(g *gorm.DB) {
		r.dao.Migrate(g, "SafetyNet")
	}, "safety_net#safety_net")
}

func (r *safetyNetRepository) toDomain(m *model.SafetyNet) *domain.SafetyNet {
	return &domain.SafetyNet{
		ID:               m.ID,
		UserID:           m.UserID,
		MaxDailyRisk:     m.MaxDailyRisk,
		MaxDailyDrawdown: m.MaxDailyDrawdown,
		MaxTotalDrawdown: m.MaxTotalDrawdown,
		RiskPerTrade:     m.RiskPerTrade,
		MaxOpenTrades:    m.MaxOpenTrades,
		IsDefault:        m.IsDefault,
		CreatedAt:        time.Time(m.CreatedAt),
		UpdatedAt:        time.Time(m.UpdatedAt),
	}
}

// Create 创建风控规则
func (r *safetyNetRepository) Create(ctx context.Context, net *domain.SafetyNet) (*domain.SafetyNet, bool, error) {
	m := &model.SafetyNet{
		ID:               idgen.UUID(),
		UserID:           net.UserID,
		MaxDailyRisk:     net.MaxDailyRisk,
		MaxDailyDrawdown: net.MaxDailyDrawdown,
		MaxTotalDrawdown: net.MaxTotalDrawdown,
		RiskPerTrade:     net.RiskPerTrade,
		MaxOpenTrades:    net.MaxOpenTrades,
		CreatedAt:        timex.Now(),
		UpdatedAt:        timex.Now(),
	}

	var first bool
	err := r.safetyNet(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.SafetyNet{}).Where("user_id = ?", net.UserID).Count(&count).Error; err != nil {
			return err
		}
		first = count == 0
		m.IsDefault = first || net.IsDefault

		if m.IsDefault && !first {
			if err := tx.Model(&model.SafetyNet{}).
				Where("user_id = ?", net.UserID).
				Updates(map[string]interface{}{"is_default": false, "updated_at": timex.Now()}).Error; err != nil {
				return err
			}
		}
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, false, err
	}
	return r.toDomain(m), first, nil
}

func (r *safetyNetRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SafetyNet, error) {
	var ms []*model.SafetyNet
	if err := r.safetyNet(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.SafetyNet, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

var _ domain.SafetyNetRepository = (*safetyNetRepository)(nil)
