package service

import (
	"context"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/note"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"go.uber.org/zap"
)

// JournalTemplateService 日志模板业务服务接口
type JournalTemplateService interface {
	// Get 获取用户的日志模板，不存在时返回 nil
	Get(ctx context.Context, uid string) (*dto.JournalTemplateDTO, error)

	// Update 以 HTML 格式化笔记并写入模板
	Update(ctx context.Context, uid string, value interface{}) (*dto.MessageDTO, error)
}

type journalTemplateService struct {
	templateRepo domain.JournalTemplateRepository
	noteService  NoteService
	logger       *zap.Logger
}

// NewJournalTemplateService 创建 JournalTemplateService 实例
func NewJournalTemplateService(templateRepo domain.JournalTemplateRepository, noteService NoteService, logger *zap.Logger) JournalTemplateService {
	return &journalTemplateService{
		templateRepo: templateRepo,
		noteService:  noteService,
		logger:       logger,
	}
}

func templateToDTO(t *domain.JournalTemplate) *dto.JournalTemplateDTO {
	if t == nil {
		return nil
	}
	return &dto.JournalTemplateDTO{
		ID:        t.ID,
		Note:      t.Note,
		CreatedAt: timex.Time(t.CreatedAt),
		UpdatedAt: timex.Time(t.UpdatedAt),
	}
}

func (s *journalTemplateService) Get(ctx context.Context, uid string) (*dto.JournalTemplateDTO, error) {
	t, err := s.templateRepo.GetByUserID(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, dbError(s.logger, "get journal template failed", err, zap.String("uid", uid))
	}
	return templateToDTO(t), nil
}

func (s *journalTemplateService) Update(ctx context.Context, uid string, value interface{}) (*dto.MessageDTO, error) {
	content, err := s.noteService.Format(ctx, value, string(note.FormatHTML))
	if err != nil {
		return nil, err
	}
	if _, err := s.templateRepo.Upsert(ctx, uid, content); err != nil {
		s.logger.Error("upsert journal template failed", zap.String("uid", uid), zap.Error(err))
		return nil, code.ErrorJournalTemplateUpdate.WithDetails(err.Error())
	}
	return &dto.MessageDTO{Success: true, Message: code.SuccessJournalTemplate.Msg()}, nil
}
