package service

import (
	"context"
	"math"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"github.com/haierkeys/trade-journal-service/pkg/writequeue"
	"go.uber.org/zap"
)

// AccountService 交易账户业务服务接口
type AccountService interface {
	// Setup 创建交易账户，用户的第一个账户会把引导推进到 safety_net
	Setup(ctx context.Context, uid string, params *dto.AccountSetupRequest) (*dto.TradingAccountDTO, error)

	// List 列出用户的全部交易账户
	List(ctx context.Context, uid string) ([]*dto.TradingAccountDTO, error)

	// Get 获取用户的交易账户，不存在时返回 nil, nil
	Get(ctx context.Context, uid, id string) (*dto.TradingAccountDTO, error)
}

type accountService struct {
	accountRepo domain.TradingAccountRepository
	userRepo    domain.UserRepository
	writeQueue  *writequeue.Manager
	logger      *zap.Logger
	config      *ServiceConfig
}

// NewAccountService 创建 AccountService 实例
func NewAccountService(accountRepo domain.TradingAccountRepository, userRepo domain.UserRepository, wq *writequeue.Manager, logger *zap.Logger, config *ServiceConfig) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		writeQueue:  wq,
		logger:      logger,
		config:      config,
	}
}

// accountToDTO 枚举值转为大写形式输出
func accountToDTO(a *domain.TradingAccount) *dto.TradingAccountDTO {
	if a == nil {
		return nil
	}
	challenges := make([]string, 0, len(a.BiggestChallenge))
	for _, c := range a.BiggestChallenge {
		challenges = append(challenges, domain.EnumName(string(c)))
	}
	out := &dto.TradingAccountDTO{
		ID:               a.ID,
		AccountID:        a.AccountID,
		UserID:           a.UserID,
		Goal:             domain.EnumName(string(a.Goal)),
		PropFirm:         a.PropFirm,
		Broker:           a.Broker,
		AccountSize:      a.AccountSize,
		AccountCurrency:  a.AccountCurrency,
		AccountName:      a.AccountName,
		ExperienceLevel:  domain.EnumName(string(a.ExperienceLevel)),
		BiggestChallenge: challenges,
		IsProp:           a.IsProp,
		Funded:           a.Funded,
		CreatedAt:        timex.Time(a.CreatedAt),
		UpdatedAt:        timex.Time(a.UpdatedAt),
	}
	if a.FundedAt != nil {
		t := timex.Time(*a.FundedAt)
		out.FundedAt = &t
	}
	return out
}

// toAccount 校验并转换创建参数
func toAccount(uid string, params *dto.AccountSetupRequest) (*domain.TradingAccount, error) {
	if params.AccountSize <= 0 || math.IsNaN(params.AccountSize) || math.IsInf(params.AccountSize, 0) {
		return nil, code.ErrorAccountSizeInvalid
	}

	goal, ok := domain.ParseGoal(params.Goal)
	if !ok {
		return nil, code.ErrorInvalidEnumValue.WithDetails("goal", params.Goal)
	}

	currencyOK := false
	for _, c := range domain.Currencies {
		if c == params.AccountCurrency {
			currencyOK = true
			break
		}
	}
	if !currencyOK {
		return nil, code.ErrorInvalidEnumValue.WithDetails("accountCurrency", params.AccountCurrency)
	}

	acc := &domain.TradingAccount{
		UserID:          uid,
		Goal:            goal,
		IsProp:          goal == domain.GoalProp,
		Broker:          params.Broker,
		AccountSize:     int64(math.Floor(params.AccountSize)),
		AccountCurrency: params.AccountCurrency,
		AccountName:     params.AccountName,
	}
	if params.PropFirm != nil {
		acc.PropFirm = *params.PropFirm
	}
	if params.ExperienceLevel != nil && *params.ExperienceLevel != "" {
		lvl, ok := domain.ParseExperienceLevel(*params.ExperienceLevel)
		if !ok {
			return nil, code.ErrorInvalidEnumValue.WithDetails("experienceLevel", *params.ExperienceLevel)
		}
		acc.ExperienceLevel = lvl
	}
	for _, raw := range params.BiggestChallenge {
		c, ok := domain.ParseChallenge(raw)
		if !ok {
			return nil, code.ErrorInvalidEnumValue.WithDetails("biggestChallenge", raw)
		}
		acc.BiggestChallenge = append(acc.BiggestChallenge, c)
	}
	return acc, nil
}

func (s *accountService) Setup(ctx context.Context, uid string, params *dto.AccountSetupRequest) (*dto.TradingAccountDTO, error) {
	acc, err := toAccount(uid, params)
	if err != nil {
		return nil, err
	}

	var created *domain.TradingAccount
	err = serialize(ctx, s.writeQueue, uid, func() error {
		count, err := s.accountRepo.CountByUser(ctx, uid)
		if err != nil {
			return dbError(s.logger, "count trading accounts failed", err, zap.String("uid", uid))
		}

		created, err = s.accountRepo.Create(ctx, acc)
		if err != nil {
			s.logger.Error("create trading account failed", zap.String("uid", uid), zap.Error(err))
			return code.ErrorTradingAccountCreate.WithDetails(err.Error())
		}

		if count == 0 {
			if err := s.userRepo.UpdateOnboarding(ctx, uid, domain.StepSafetyNet, false); err != nil {
				s.logger.Warn("advance onboarding to safety_net failed", zap.String("uid", uid), zap.Error(err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("trading account created", zap.String("uid", uid), zap.String("accountId", created.AccountID))
	return accountToDTO(created), nil
}

func (s *accountService) List(ctx context.Context, uid string) ([]*dto.TradingAccountDTO, error) {
	accounts, err := s.accountRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, dbError(s.logger, "list trading accounts failed", err, zap.String("uid", uid))
	}
	out := make([]*dto.TradingAccountDTO, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountToDTO(a))
	}
	return out, nil
}

func (s *accountService) Get(ctx context.Context, uid, id string) (*dto.TradingAccountDTO, error) {
	acc, err := s.accountRepo.GetByID(ctx, id, uid)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, dbError(s.logger, "get trading account failed", err, zap.String("uid", uid))
	}
	return accountToDTO(acc), nil
}
