package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// JournalService 交易日志业务服务接口
type JournalService interface {
	// Create 为每个账户创建一条日志，所有账户必须属于当前用户
	Create(ctx context.Context, uid string, params *dto.JournalCreateRequest) (*dto.JournalResultDTO, error)

	// Get 获取单条日志
	Get(ctx context.Context, uid string, id string) (*dto.JournalDTO, error)

	// ListByAccount 获取账户下的日志
	ListByAccount(ctx context.Context, uid string, accountID string) ([]*dto.JournalDTO, error)

	// ListLogged 获取用户所有账户的日志
	ListLogged(ctx context.Context, uid string) ([]*dto.JournalDTO, error)

	// Update 更新允许修改的字段
	Update(ctx context.Context, uid string, params *dto.JournalUpdateRequest) (*dto.JournalResultDTO, error)
}

type journalService struct {
	journalRepo domain.JournalRepository
	accountRepo domain.TradingAccountRepository
	logger      *zap.Logger
}

// NewJournalService 创建 JournalService 实例
func NewJournalService(journalRepo domain.JournalRepository, accountRepo domain.TradingAccountRepository, logger *zap.Logger) JournalService {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

func nullFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

func decimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

// jsonOrNil JSON null 与空输入都视为未提供
func jsonOrNil(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return trimmed
}

func journalToDTO(j *domain.Journal) *dto.JournalDTO {
	return &dto.JournalDTO{
		ID:                 j.ID,
		AccountID:          j.AccountID,
		ExecutionStyle:     j.ExecutionStyle,
		Instrument:         j.Instrument,
		Side:               j.Side,
		Size:               j.Size.InexactFloat64(),
		PlannedEntryPrice:  j.PlannedEntryPrice.InexactFloat64(),
		PlannedStopLoss:    j.PlannedStopLoss.InexactFloat64(),
		PlannedTakeProfit:  j.PlannedTakeProfit.InexactFloat64(),
		Note:               j.Note,
		ExecutedEntryPrice: nullFloat(j.ExecutedEntryPrice),
		ExecutedStopLoss:   nullFloat(j.ExecutedStopLoss),
		ExecutionNotes:     j.ExecutionNotes,
		ExitPrice:          nullFloat(j.ExitPrice),
		TargetHit:          j.TargetHit,
		CreatedAt:          timex.Time(j.CreatedAt),
		UpdatedAt:          timex.Time(j.UpdatedAt),
	}
}

func journalsToDTO(list []*domain.Journal) []*dto.JournalDTO {
	out := make([]*dto.JournalDTO, 0, len(list))
	for _, j := range list {
		out = append(out, journalToDTO(j))
	}
	return out
}

// uniqueIDs 去除空值和重复值，保持原顺序
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *journalService) Create(ctx context.Context, uid string, params *dto.JournalCreateRequest) (*dto.JournalResultDTO, error) {
	ids := uniqueIDs(params.AccountIDs)
	if len(ids) == 0 {
		return nil, code.ErrorJournalAccountRequired
	}

	owned, err := s.accountRepo.OwnedIDs(ctx, uid, ids)
	if err != nil {
		return nil, dbError(s.logger, "check account ownership failed", err, zap.String("uid", uid))
	}
	if len(owned) != len(ids) {
		s.logger.Warn("journal create denied", zap.String("uid", uid), zap.Strings("accounts", ids))
		return nil, code.ErrorTradingAccountDenied
	}

	journals := make([]*domain.Journal, 0, len(ids))
	for _, accountID := range ids {
		journals = append(journals, &domain.Journal{
			AccountID:         accountID,
			ExecutionStyle:    params.ExecutionStyle,
			Instrument:        params.Instrument,
			Side:              params.Side,
			Size:              decimal.NewFromFloat(params.Size),
			PlannedEntryPrice: decimal.NewFromFloat(params.PlannedEntryPrice),
			PlannedStopLoss:   decimal.NewFromFloat(params.PlannedStopLoss),
			PlannedTakeProfit: decimal.NewFromFloat(params.PlannedTakeProfit),
			Note:              jsonOrNil(params.Note),
		})
	}

	created, err := s.journalRepo.CreateBatch(ctx, journals)
	if err != nil {
		s.logger.Error("create journal failed", zap.String("uid", uid), zap.Error(err))
		return nil, code.ErrorJournalCreate.WithDetails(err.Error())
	}

	return &dto.JournalResultDTO{
		Success:  true,
		Message:  code.SuccessJournalCreated.Msg(),
		Journals: journalsToDTO(created),
	}, nil
}

func (s *journalService) Get(ctx context.Context, uid string, id string) (*dto.JournalDTO, error) {
	if strings.TrimSpace(id) == "" {
		return nil, code.ErrorJournalIDRequired
	}
	j, err := s.journalRepo.GetOwned(ctx, id, uid)
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorJournalNotFound
		}
		return nil, dbError(s.logger, "get journal failed", err, zap.String("uid", uid), zap.String("journal", id))
	}
	return journalToDTO(j), nil
}

func (s *journalService) ListByAccount(ctx context.Context, uid string, accountID string) ([]*dto.JournalDTO, error) {
	list, err := s.journalRepo.ListByAccount(ctx, accountID, uid)
	if err != nil {
		return nil, dbError(s.logger, "list journals failed", err, zap.String("uid", uid), zap.String("account", accountID))
	}
	return journalsToDTO(list), nil
}

func (s *journalService) ListLogged(ctx context.Context, uid string) ([]*dto.JournalDTO, error) {
	list, err := s.journalRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, dbError(s.logger, "list journals failed", err, zap.String("uid", uid))
	}
	return journalsToDTO(list), nil
}

// toPatch 只保留允许修改的字段
func toPatch(params *dto.JournalUpdateRequest) *domain.JournalPatch {
	return &domain.JournalPatch{
		ExecutedEntryPrice: decimalPtr(params.ExecutedEntryPrice),
		ExecutedStopLoss:   decimalPtr(params.ExecutedStopLoss),
		ExecutionNotes:     jsonOrNil(params.ExecutionNotes),
		ExitPrice:          decimalPtr(params.ExitPrice),
		TargetHit:          params.TargetHit,
		Note:               jsonOrNil(params.Note),
		PlannedEntryPrice:  decimalPtr(params.PlannedEntryPrice),
		PlannedStopLoss:    decimalPtr(params.PlannedStopLoss),
		PlannedTakeProfit:  decimalPtr(params.PlannedTakeProfit),
		ExecutionStyle:     params.ExecutionStyle,
		Instrument:         params.Instrument,
		Side:               params.Side,
		Size:               decimalPtr(params.Size),
	}
}

func (s *journalService) Update(ctx context.Context, uid string, params *dto.JournalUpdateRequest) (*dto.JournalResultDTO, error) {
	if strings.TrimSpace(params.ID) == "" {
		return nil, code.ErrorJournalIDRequired
	}

	if _, err := s.journalRepo.GetOwned(ctx, params.ID, uid); err != nil {
		if isNotFound(err) {
			return nil, code.ErrorJournalNotFound
		}
		return nil, dbError(s.logger, "get journal failed", err, zap.String("uid", uid), zap.String("journal", params.ID))
	}

	patch := toPatch(params)
	if patch.Empty() {
		return nil, code.ErrorJournalNoFields
	}

	updated, err := s.journalRepo.Update(ctx, params.ID, patch)
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorJournalNotFound
		}
		s.logger.Error("update journal failed", zap.String("uid", uid), zap.String("journal", params.ID), zap.Error(err))
		return nil, code.ErrorJournalUpdate.WithDetails(err.Error())
	}

	return &dto.JournalResultDTO{
		Success: true,
		Message: code.SuccessJournalUpdated.Msg(),
		Journal: journalToDTO(updated),
	}, nil
}
