package service

import (
	"context"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/convert"
	"github.com/haierkeys/trade-journal-service/pkg/writequeue"
	"go.uber.org/zap"
)

// SafetyNetService 风控规则业务服务接口
type SafetyNetService interface {
	// Create 创建风控规则，第一条规则把引导推进到 trading_style
	Create(ctx context.Context, uid string, params *dto.SafetyNetCreateRequest) (*dto.SafetyNetDTO, error)

	List(ctx context.Context, uid string) ([]*dto.SafetyNetDTO, error)
}

type safetyNetService struct {
	netRepo    domain.SafetyNetRepository
	userRepo   domain.UserRepository
	writeQueue *writequeue.Manager
	logger     *zap.Logger
}

// NewSafetyNetService 创建 SafetyNetService 实例
func NewSafetyNetService(netRepo domain.SafetyNetRepository, userRepo domain.UserRepository, wq *writequeue.Manager, logger *zap.Logger) SafetyNetService {
	return &safetyNetService{
		netRepo:    netRepo,
		userRepo:   userRepo,
		writeQueue: wq,
		logger:     logger,
	}
}

func safetyNetToDTO(n *domain.SafetyNet) (*dto.SafetyNetDTO, error) {
	out := &dto.SafetyNetDTO{}
	if err := convert.Copy(out, n); err != nil {
		return nil, err
	}
	return out, nil
}

// toDTO 转换失败时记录日志并返回内部错误
func (s *safetyNetService) toDTO(uid string, n *domain.SafetyNet) (*dto.SafetyNetDTO, error) {
	out, err := safetyNetToDTO(n)
	if err != nil {
		s.logger.Error("copy safety net failed", zap.String("uid", uid), zap.Error(err))
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return out, nil
}

func (s *safetyNetService) Create(ctx context.Context, uid string, params *dto.SafetyNetCreateRequest) (*dto.SafetyNetDTO, error) {
	net := &domain.SafetyNet{
		UserID:           uid,
		MaxDailyRisk:     params.MaxDailyRisk,
		MaxDailyDrawdown: params.MaxDailyDrawdown,
		MaxTotalDrawdown: params.MaxTotalDrawdown,
		RiskPerTrade:     params.RiskPerTrade,
		MaxOpenTrades:    params.MaxOpenTrades,
	}
	if params.IsDefault != nil {
		net.IsDefault = *params.IsDefault
	}

	var created *domain.SafetyNet
	err := serialize(ctx, s.writeQueue, uid, func() error {
		var first bool
		var err error
		created, first, err = s.netRepo.Create(ctx, net)
		if err != nil {
			s.logger.Error("create safety net failed", zap.String("uid", uid), zap.Error(err))
			return code.ErrorSafetyNetCreate.WithDetails(err.Error())
		}
		if first {
			if err := s.userRepo.UpdateOnboarding(ctx, uid, domain.StepTradingStyle, false); err != nil {
				s.logger.Warn("advance onboarding to trading_style failed", zap.String("uid", uid), zap.Error(err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toDTO(uid, created)
}

func (s *safetyNetService) List(ctx context.Context, uid string) ([]*dto.SafetyNetDTO, error) {
	nets, err := s.netRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, dbError(s.logger, "list safety nets failed", err, zap.String("uid", uid))
	}
	out := make([]*dto.SafetyNetDTO, 0, len(nets))
	for _, n := range nets {
		d, err := s.toDTO(uid, n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
