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

// sharedPlanRepository 实现 domain.SharedPlanRepository 接口
type sharedPlanRepository struct {
	dao *Dao
}

// NewSharedPlanRepository 创建 SharedPlanRepository 实例
func NewSharedPlanRepository(dao *Dao) domain.SharedPlanRepository {
	return &sharedPlanRepository{dao: dao}
}

func (r *sharedPlanRepository) share(ctx context.Context) *gorm.DB {
	return r.dao.UseTableWithOnceFunc(ctx, func(g *gorm.DB) {
		r.dao.Migrate(g, "SharedPlan")
		r.dao.Migrate(g, "TradingPlan")
	}, "shared_plan#shared_plan")
}

func (r *sharedPlanRepository) toDomain(m *model.SharedPlan) *domain.SharedPlan {
	return &domain.SharedPlan{
		ID:         m.ID,
		PlanID:     m.PlanID,
		UserID:     m.UserID,
		Visibility: domain.PlanVisibility(m.Visibility),
		Viewed:     m.Viewed,
		ExpiresAt:  time.Time(m.ExpiresAt),
		CreatedAt:  time.Time(m.CreatedAt),
	}
}

// Create 创建分享记录，ID 为 ULID
func (r *sharedPlanRepository) Create(ctx context.Context, share *domain.SharedPlan) (*domain.SharedPlan, error) {
	m := &model.SharedPlan{
		ID:         idgen.ULID(),
		PlanID:     share.PlanID,
		UserID:     share.UserID,
		Visibility: string(share.Visibility),
		ExpiresAt:  timex.Time(share.ExpiresAt),
		CreatedAt:  timex.Now(),
	}
	if err := r.share(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetWithPlan 获取分享记录并加载原始计划，计划已删除时视为不存在
func (r *sharedPlanRepository) GetWithPlan(ctx context.Context, id string) (*domain.SharedPlan, error) {
	var m model.SharedPlan
	if err := r.share(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}

	var p model.TradingPlan
	if err := r.share(ctx).Where("id = ?", m.PlanID).First(&p).Error; err != nil {
		return nil, err
	}

	s := r.toDomain(&m)
	s.Plan = planToDomain(&p)
	return s, nil
}

// MarkViewed 条件更新，只有 viewed=false 的记录会被标记
func (r *sharedPlanRepository) MarkViewed(ctx context.Context, id string) (bool, error) {
	res := r.share(ctx).Model(&model.SharedPlan{}).
		Where("id = ? AND viewed = ?", id, false).
		Update("viewed", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteExpired 删除过期的分享记录
func (r *sharedPlanRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.share(ctx).Where("expires_at < ?", timex.Time(before)).Delete(&model.SharedPlan{})
	return res.RowsAffected, res.Error
}

var _ domain.SharedPlanRepository = (*sharedPlanRepository)(nil)
