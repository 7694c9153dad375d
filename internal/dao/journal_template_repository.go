package dao

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/model"
	"github.com/haierkeys/trade-journal-service/pkg/idgen"
	"github.com/haierkeys/trade-journal-service/pkg/note"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// journalTemplateRepository 实现 domain.JournalTemplateRepository 接口
type journalTemplateRepository struct {
	dao *Dao
}

// NewJournalTemplateRepository 创建 JournalTemplateRepository 实例
func NewJournalTemplateRepository(dao *Dao) domain.JournalTemplateRepository {
	return &journalTemplateRepository{dao: dao}
}

func (r *journalTemplateRepository) template(ctx context.Context) *gorm.DB {
	return r.dao.UseTableWithOnceFunc(ctx, func(g *gorm.DB) {
		r.dao.Migrate(g, "JournalingNoteTemplate")
	}, "journaling_note_template#journaling_note_template")
}

func templateToDomain(m *model.JournalingNoteTemplate) *domain.JournalTemplate {
	return &domain.JournalTemplate{
		ID:        m.ID,
		UserID:    m.UserID,
		Note:      m.Note.Data(),
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *journalTemplateRepository) GetByUserID(ctx context.Context, userID string) (*domain.JournalTemplate, error) {
	var m model.JournalingNoteTemplate
	if err := r.template(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, err
	}
	return templateToDomain(&m), nil
}

// Upsert 创建或更新模板
func (r *journalTemplateRepository) Upsert(ctx context.Context, userID string, content note.Content) (*domain.JournalTemplate, error) {
	err := r.template(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertTemplate(tx, userID, content)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

// upsertTemplate 在给定事务内写入模板，每个用户只有一条
func upsertTemplate(tx *gorm.DB, userID string, content note.Content) error {
	var existing model.JournalingNoteTemplate
	err := tx.Where("user_id = ?", userID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.Create(&model.JournalingNoteTemplate{
			ID:        idgen.UUID(),
			UserID:    userID,
			Note:      datatypes.NewJSONType(content),
			CreatedAt: timex.Now(),
			UpdatedAt: timex.Now(),
		}).Error
	case err != nil:
		return err
	}
	return tx.Model(&model.JournalingNoteTemplate{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
		"note":       datatypes.NewJSONType(content),
		"updated_at": timex.Now(),
	}).Error
}

var _ domain.JournalTemplateRepository = (*journalTemplateRepository)(nil)
