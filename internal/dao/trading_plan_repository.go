package dao

import (
	"context"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/model"
	"github.com/haierkeys/trade-journal-service/pkg/idgen"
	"github.com/haierkeys/trade-journal-service/pkg/note"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// tradingPlanRepository 实现 domain.TradingPlanRepository 接口
type tradingPlanRepository struct {
	dao *Dao
}

// NewTradingPlanRepository 创建 TradingPlanRepository 实例
func NewTradingPlanRepository(dao *Dao) domain.TradingPlanRepository {
	return &tradingPlanRepository{dao: dao}
}

func (r *tradingPlanRepository) plan(ctx context.Context) *gorm.DB {
	return r.dao.UseTableWithOnceFunc(ctx, func(g *gorm.DB) {
		r.dao.Migrate(g, "TradingPlan")
		r.dao.Migrate(g, "JournalingNoteTemplate")
	}, "trading_plan#trading_plan")
}

func planToDomain(m *model.TradingPlan) *domain.TradingPlan {
	if m == nil {
		return nil
	}
	p := &domain.TradingPlan{
		ID:              m.ID,
		UserID:          m.UserID,
		TradingStyle:    m.TradingStyle,
		TradingSessions: []string(m.TradingSessions),
		TimeZone:        m.TimeZone,
		RiskRewardRatio: m.RiskRewardRatio,
		IsOwner:         m.IsOwner,
		CreatedAt:       time.Time(m.CreatedAt),
		UpdatedAt:       time.Time(m.UpdatedAt),
	}
	// 未写入笔记的计划没有 format
	if c := m.Note.Data(); c.Format != "" {
		p.Note = &c
	}
	return p
}

func planToModel(p *domain.TradingPlan) *model.TradingPlan {
	m := &model.TradingPlan{
		ID:              p.ID,
		UserID:          p.UserID,
		TradingStyle:    p.TradingStyle,
		TradingSessions: datatypes.JSONSlice[string](p.TradingSessions),
		TimeZone:        p.TimeZone,
		RiskRewardRatio: p.RiskRewardRatio,
		IsOwner:         p.IsOwner,
		CreatedAt:       timex.Time(p.CreatedAt),
		UpdatedAt:       timex.Time(p.UpdatedAt),
	}
	if m.TradingSessions == nil {
		m.TradingSessions = datatypes.JSONSlice[string]{}
	}
	if p.Note != nil {
		m.Note = datatypes.NewJSONType(*p.Note)
	}
	return m
}

func (r *tradingPlanRepository) GetByUserID(ctx context.Context, userID string) (*domain.TradingPlan, error) {
	var m model.TradingPlan
	if err := r.plan(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, err
	}
	return planToDomain(&m), nil
}

// Create 创建计划并同时写入日志模板
func (r *tradingPlanRepository) Create(ctx context.Context, plan *domain.TradingPlan, template *domain.JournalTemplate) (*domain.TradingPlan, error) {
	m := planToModel(plan)
	m.ID = idgen.UUID()
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	err := r.plan(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if template == nil {
			return nil
		}
		return upsertTemplate(tx, plan.UserID, template.Note)
	})
	if err != nil {
		return nil, err
	}
	return planToDomain(m), nil
}

// Update 更新计划的全部可编辑字段
func (r *tradingPlanRepository) Update(ctx context.Context, plan *domain.TradingPlan) (*domain.TradingPlan, error) {
	m := planToModel(plan)
	m.UpdatedAt = timex.Now()

	cols := map[string]interface{}{
		"trading_style":     m.TradingStyle,
		"trading_sessions":  m.TradingSessions,
		"time_zone":         m.TimeZone,
		"risk_reward_ratio": m.RiskRewardRatio,
		"is_owner":          m.IsOwner,
		"note":              m.Note,
		"updated_at":        m.UpdatedAt,
	}
	res := r.plan(ctx).Model(&model.TradingPlan{}).Where("id = ?", plan.ID).Updates(cols)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var updated model.TradingPlan
	if err := r.plan(ctx).Where("id = ?", plan.ID).First(&updated).Error; err != nil {
		return nil, err
	}
	return planToDomain(&updated), nil
}

// UpdateNote 更新笔记并标记用户已编辑
func (r *tradingPlanRepository) UpdateNote(ctx context.Context, id string, content note.Content) error {
	res := r.plan(ctx).Model(&model.TradingPlan{}).Where("id = ?", id).Updates(map[string]interface{}{
		"note":       datatypes.NewJSONType(content),
		"is_owner":   true,
		"updated_at": timex.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ domain.TradingPlanRepository = (*tradingPlanRepository)(nil)
