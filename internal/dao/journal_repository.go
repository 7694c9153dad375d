package dao

import (
	"context"
	"encoding/json"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/model"
	"github.com/haierkeys/trade-journal-service/pkg/idgen"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// journalRepository 实现 domain.JournalRepository 接口
type journalRepository struct {
	dao *Dao
}

// NewJournalRepository 创建 JournalRepository 实例
func NewJournalRepository(dao *Dao) domain.JournalRepository {
	return &journalRepository{dao: dao}
}

func (r *journalRepository) journal(ctx context.Context) *gorm.DB {
	return r.dao.UseTableWithOnceFunc(ctx, func(g *gorm.DB) {
		r.dao.Migrate(g, "Journal")
		r.dao.Migrate(g, "TradingAccount")
	}, "journal#journal")
}

// ownedAccounts 用户拥有的交易账户ID子查询
func ownedAccounts(db *gorm.DB, userID string) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&model.TradingAccount{}).
		Select("id").
		Where("user_id = ?", userID)
}

func rawJSON(j datatypes.JSON) json.RawMessage {
	if len(j) == 0 {
		return nil
	}
	return json.RawMessage(j)
}

func (r *journalRepository) toDomain(m *model.Journal) *domain.Journal {
	return &domain.Journal{
		ID:                 m.ID,
		AccountID:          m.AccountID,
		ExecutionStyle:     m.ExecutionStyle,
		Instrument:         m.Instrument,
		Side:               m.Side,
		Size:               m.Size,
		PlannedEntryPrice:  m.PlannedEntryPrice,
		PlannedStopLoss:    m.PlannedStopLoss,
		PlannedTakeProfit:  m.PlannedTakeProfit,
		Note:               rawJSON(m.Note),
		ExecutedEntryPrice: m.ExecutedEntryPrice,
		ExecutedStopLoss:   m.ExecutedStopLoss,
		ExecutionNotes:     rawJSON(m.ExecutionNotes),
		ExitPrice:          m.ExitPrice,
		TargetHit:          m.TargetHit,
		CreatedAt:          time.Time(m.CreatedAt),
		UpdatedAt:          time.Time(m.UpdatedAt),
	}
}

func (r *journalRepository) toModel(j *domain.Journal) *model.Journal {
	return &model.Journal{
		ID:                 j.ID,
		AccountID:          j.AccountID,
		ExecutionStyle:     j.ExecutionStyle,
		Instrument:         j.Instrument,
		Side:               j.Side,
		Size:               j.Size,
		PlannedEntryPrice:  j.PlannedEntryPrice,
		PlannedStopLoss:    j.PlannedStopLoss,
		PlannedTakeProfit:  j.PlannedTakeProfit,
		Note:               datatypes.JSON(j.Note),
		ExecutedEntryPrice: j.ExecutedEntryPrice,
		ExecutedStopLoss:   j.ExecutedStopLoss,
		ExecutionNotes:     datatypes.JSON(j.ExecutionNotes),
		ExitPrice:          j.ExitPrice,
		TargetHit:          j.TargetHit,
		CreatedAt:          timex.Time(j.CreatedAt),
		UpdatedAt:          timex.Time(j.UpdatedAt),
	}
}

func (r *journalRepository) toDomainList(ms []*model.Journal) []*domain.Journal {
	list := make([]*domain.Journal, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list
}

// CreateBatch 在一个事务内创建多条日志
func (r *journalRepository) CreateBatch(ctx context.Context, journals []*domain.Journal) ([]*domain.Journal, error) {
	ms := make([]*model.Journal, 0, len(journals))
	for _, j := range journals {
		m := r.toModel(j)
		m.ID = idgen.UUID()
		m.CreatedAt = timex.Now()
		m.UpdatedAt = timex.Now()
		ms = append(ms, m)
	}
	if len(ms) == 0 {
		return nil, nil
	}

	err := r.journal(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range ms {
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// GetOwned 通过账户归属获取日志
func (r *journalRepository) GetOwned(ctx context.Context, id, userID string) (*domain.Journal, error) {
	db := r.journal(ctx)
	var m model.Journal
	err := db.Where("id = ? AND account_id IN (?)", id, ownedAccounts(db, userID)).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *journalRepository) ListByAccount(ctx context.Context, accountID, userID string) ([]*domain.Journal, error) {
	db := r.journal(ctx)
	var ms []*model.Journal
	err := db.Where("account_id = ? AND account_id IN (?)", accountID, ownedAccounts(db, userID)).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *journalRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Journal, error) {
	db := r.journal(ctx)
	var ms []*model.Journal
	err := db.Where("account_id IN (?)", ownedAccounts(db, userID)).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// Update 按列更新日志，[]byte 列按 JSON 写入
func (r *journalRepository) Update(ctx context.Context, id string, patch *domain.JournalPatch) (*domain.Journal, error) {
	cols := patch.Columns()
	for k, v := range cols {
		if b, ok := v.([]byte); ok {
			cols[k] = datatypes.JSON(b)
		}
	}
	cols["updated_at"] = timex.Now()

	db := r.journal(ctx)
	res := db.Model(&model.Journal{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var m model.Journal
	if err := r.journal(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

var _ domain.JournalRepository = (*journalRepository)(nil)
