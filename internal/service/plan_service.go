package service

import (
	"context"
	"strings"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/note"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"github.com/haierkeys/trade-journal-service/pkg/writequeue"
	"go.uber.org/zap"
)

// PlanService 交易计划业务服务接口
type PlanService interface {
	// Get 获取用户的交易计划，不存在时 Success=false
	Get(ctx context.Context, uid string) (*dto.TradingPlanResultDTO, error)

	// Create 创建交易计划和日志模板，并完成引导
	Create(ctx context.Context, uid string, params *dto.TradingPlanRequest) (*dto.TradingPlanResultDTO, error)

	// Update 更新交易计划，Note 为 nil 时保留原笔记
	Update(ctx context.Context, uid string, params *dto.TradingPlanRequest) (*dto.TradingPlanResultDTO, error)

	// UpdateNote 以 HTML 格式更新计划笔记
	UpdateNote(ctx context.Context, uid string, value interface{}) (*dto.TradingPlanResultDTO, error)

	// Share 分享已编辑过的计划
	Share(ctx context.Context, uid string, visibility string) (*dto.SharedPlanResultDTO, error)

	// GetShared 查看分享的计划，私有分享只能查看一次
	GetShared(ctx context.Context, id string) (*dto.SharedPlanResultDTO, error)

	// CleanupShares 删除过期的分享
	CleanupShares(ctx context.Context) (int64, error)
}

type planService struct {
	planRepo    domain.TradingPlanRepository
	shareRepo   domain.SharedPlanRepository
	userRepo    domain.UserRepository
	noteService NoteService
	writeQueue  *writequeue.Manager
	logger      *zap.Logger
	config      *ServiceConfig
	now         func() time.Time
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(planRepo domain.TradingPlanRepository, shareRepo domain.SharedPlanRepository, userRepo domain.UserRepository,
	noteService NoteService, wq *writequeue.Manager, logger *zap.Logger, config *ServiceConfig) PlanService {
	return &planService{
		planRepo:    planRepo,
		shareRepo:   shareRepo,
		userRepo:    userRepo,
		noteService: noteService,
		writeQueue:  wq,
		logger:      logger,
		config:      config,
		now:         time.Now,
	}
}

// planToDTO 存储的笔记经过格式化器的再入路径输出
func planToDTO(ns NoteService, p *domain.TradingPlan) *dto.TradingPlanDTO {
	if p == nil {
		return nil
	}
	sessions := p.TradingSessions
	if sessions == nil {
		sessions = []string{}
	}
	return &dto.TradingPlanDTO{
		ID:              p.ID,
		UserID:          p.UserID,
		TradingStyle:    p.TradingStyle,
		TradingSessions: sessions,
		TimeZone:        p.TimeZone,
		RiskRewardRatio: p.RiskRewardRatio,
		IsOwner:         p.IsOwner,
		Note:            ns.Reformat(p.Note),
		CreatedAt:       timex.Time(p.CreatedAt),
		UpdatedAt:       timex.Time(p.UpdatedAt),
	}
}

func (s *planService) Get(ctx context.Context, uid string) (*dto.TradingPlanResultDTO, error) {
	plan, err := s.planRepo.GetByUserID(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return &dto.TradingPlanResultDTO{Success: false, Message: code.ErrorTradingPlanNotFound.Msg()}, nil
		}
		return nil, dbError(s.logger, "get trading plan failed", err, zap.String("uid", uid))
	}
	return &dto.TradingPlanResultDTO{
		Success: true,
		Message: code.SuccessTradingPlanFound.Msg(),
		Plan:    planToDTO(s.noteService, plan),
	}, nil
}

// createNote 计划笔记：显式传入空字符串时使用计划模板，未传入时为空笔记
func (s *planService) createNote(ctx context.Context, params *dto.TradingPlanRequest) (note.Content, error) {
	if params.Note != nil && strings.TrimSpace(*params.Note) == "" {
		return s.noteService.FormatText(ctx, GenerateTradingPlanTemplate(s.now()), note.FormatHTML)
	}
	var raw interface{}
	if params.Note != nil {
		raw = *params.Note
	}
	return s.noteService.Format(ctx, raw, params.RenderAs)
}

func (s *planService) Create(ctx context.Context, uid string, params *dto.TradingPlanRequest) (*dto.TradingPlanResultDTO, error) {
	content, err := s.createNote(ctx, params)
	if err != nil {
		return nil, err
	}
	templateNote, err := s.noteService.FormatText(ctx, GenerateJournalNoteTemplate(), note.FormatJSON)
	if err != nil {
		return nil, err
	}

	var created *domain.TradingPlan
	err = serialize(ctx, s.writeQueue, uid, func() error {
		_, err := s.planRepo.GetByUserID(ctx, uid)
		if err == nil {
			return code.ErrorTradingPlanExists
		}
		if !isNotFound(err) {
			return dbError(s.logger, "get trading plan failed", err, zap.String("uid", uid))
		}

		created, err = s.planRepo.Create(ctx, &domain.TradingPlan{
			UserID:          uid,
			TradingStyle:    params.TradingStyle,
			TradingSessions: params.TradingSessions,
			TimeZone:        params.TimeZone,
			RiskRewardRatio: params.RiskRewardRatio,
			IsOwner:         false,
			Note:            &content,
		}, &domain.JournalTemplate{UserID: uid, Note: templateNote})
		if err != nil {
			s.logger.Error("create trading plan failed", zap.String("uid", uid), zap.Error(err))
			return code.ErrorTradingPlanCreate.WithDetails(err.Error())
		}

		if err := s.userRepo.UpdateOnboarding(ctx, uid, domain.StepComplete, true); err != nil {
			s.logger.Warn("complete onboarding failed", zap.String("uid", uid), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.TradingPlanResultDTO{
		Success: true,
		Message: code.SuccessTradingPlanCreated.Msg(),
		Plan:    planToDTO(s.noteService, created),
	}, nil
}

func (s *planService) Update(ctx context.Context, uid string, params *dto.TradingPlanRequest) (*dto.TradingPlanResultDTO, error) {
	existing, err := s.planRepo.GetByUserID(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorTradingPlanNotFound
		}
		return nil, dbError(s.logger, "get trading plan failed", err, zap.String("uid", uid))
	}

	content := existing.Note
	if params.Note != nil {
		c, err := s.noteService.Format(ctx, *params.Note, params.RenderAs)
		if err != nil {
			return nil, err
		}
		content = &c
	}

	updated, err := s.planRepo.Update(ctx, &domain.TradingPlan{
		ID:              existing.ID,
		UserID:          uid,
		TradingStyle:    params.TradingStyle,
		TradingSessions: params.TradingSessions,
		TimeZone:        params.TimeZone,
		RiskRewardRatio: params.RiskRewardRatio,
		IsOwner:         true,
		Note:            content,
	})
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorTradingPlanNotFound
		}
		s.logger.Error("update trading plan failed", zap.String("uid", uid), zap.Error(err))
		return nil, code.ErrorTradingPlanUpdate.WithDetails(err.Error())
	}

	return &dto.TradingPlanResultDTO{
		Success: true,
		Message: code.SuccessTradingPlanUpdated.Msg(),
		Plan:    planToDTO(s.noteService, updated),
	}, nil
}

func (s *planService) UpdateNote(ctx context.Context, uid string, value interface{}) (*dto.TradingPlanResultDTO, error) {
	content, err := s.noteService.Format(ctx, value, string(note.FormatHTML))
	if err != nil {
		return nil, err
	}

	existing, err := s.planRepo.GetByUserID(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorTradingPlanNotFound
		}
		return nil, dbError(s.logger, "get trading plan failed", err, zap.String("uid", uid))
	}

	if err := s.planRepo.UpdateNote(ctx, existing.ID, content); err != nil {
		if isNotFound(err) {
			return nil, code.ErrorTradingPlanNotFound
		}
		s.logger.Error("update trading plan note failed", zap.String("uid", uid), zap.Error(err))
		return nil, code.ErrorTradingPlanUpdate.WithDetails(err.Error())
	}

	existing.Note = &content
	existing.IsOwner = true
	return &dto.TradingPlanResultDTO{
		Success: true,
		Message: code.SuccessTradingPlanNote.Msg(),
		Plan:    planToDTO(s.noteService, existing),
	}, nil
}

func (s *planService) sharedToDTO(sp *domain.SharedPlan, plan *domain.TradingPlan) *dto.SharedPlanDTO {
	return &dto.SharedPlanDTO{
		ID:             sp.ID,
		OriginalPlanID: sp.PlanID,
		SharedByUserID: sp.UserID,
		Visibility:     string(sp.Visibility),
		Viewed:         sp.Viewed,
		ExpiresAt:      timex.Time(sp.ExpiresAt),
		CreatedAt:      timex.Time(sp.CreatedAt),
		Plan:           planToDTO(s.noteService, plan),
	}
}

func (s *planService) Share(ctx context.Context, uid string, visibility string) (*dto.SharedPlanResultDTO, error) {
	v := domain.PlanVisibility(strings.ToUpper(visibility))
	if !v.Valid() {
		return nil, code.ErrorInvalidEnumValue.WithDetails("visibility", visibility)
	}

	plan, err := s.planRepo.GetByUserID(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorTradingPlanNotShareable
		}
		return nil, dbError(s.logger, "get trading plan failed", err, zap.String("uid", uid))
	}
	if !plan.IsOwner {
		return nil, code.ErrorTradingPlanNotShareable
	}

	shared, err := s.shareRepo.Create(ctx, &domain.SharedPlan{
		PlanID:     plan.ID,
		UserID:     uid,
		Visibility: v,
		ExpiresAt:  s.now().Add(s.config.shareExpiry()),
	})
	if err != nil {
		return nil, dbError(s.logger, "create shared plan failed", err, zap.String("uid", uid))
	}

	s.logger.Info("trading plan shared", zap.String("uid", uid), zap.String("share", shared.ID), zap.String("visibility", string(v)))
	return &dto.SharedPlanResultDTO{
		Success:    true,
		Message:    code.SuccessTradingPlanShared.Msg(),
		SharedPlan: s.sharedToDTO(shared, plan),
	}, nil
}

// GetShared 私有分享通过条件更新标记已查看，并发的两次查看只有一次成功
func (s *planService) GetShared(ctx context.Context, id string) (*dto.SharedPlanResultDTO, error) {
	fail := func(c *code.Code) (*dto.SharedPlanResultDTO, error) {
		return &dto.SharedPlanResultDTO{Success: false, Message: c.Msg()}, nil
	}

	shared, err := s.shareRepo.GetWithPlan(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return fail(code.ErrorSharedPlanNotFound)
		}
		return nil, dbError(s.logger, "get shared plan failed", err, zap.String("share", id))
	}
	if shared.Expired(s.now()) {
		return fail(code.ErrorSharedPlanExpired)
	}
	if shared.ConsumedPrivate() {
		return fail(code.ErrorSharedPlanViewed)
	}

	if shared.Visibility == domain.VisibilityPrivate {
		ok, err := s.shareRepo.MarkViewed(ctx, shared.ID)
		if err != nil {
			return nil, dbError(s.logger, "mark shared plan viewed failed", err, zap.String("share", id))
		}
		if !ok {
			return fail(code.ErrorSharedPlanViewed)
		}
		shared.Viewed = true
	}

	return &dto.SharedPlanResultDTO{
		Success:    true,
		Message:    code.SuccessSharedPlanFound.Msg(),
		SharedPlan: s.sharedToDTO(shared, shared.Plan),
	}, nil
}

func (s *planService) CleanupShares(ctx context.Context) (int64, error) {
	n, err := s.shareRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, dbError(s.logger, "delete expired shared plans failed", err)
	}
	return n, nil
}
