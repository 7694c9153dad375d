package service

import (
	"context"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"go.uber.org/zap"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid string) (*dto.UserDTO, error)

	// GetStatus 获取用户引导状态及跳转地址
	GetStatus(ctx context.Context, uid string) (*dto.UserStatusDTO, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo domain.UserRepository
	logger   *zap.Logger
	config   *ServiceConfig
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, logger *zap.Logger, config *ServiceConfig) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
		config:   config,
	}
}

// userToDTO 将领域模型转换为 DTO
func userToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		ID:                  user.ID,
		ParticipantID:       user.ParticipantID,
		Name:                user.Name,
		Email:               user.Email,
		Image:               user.Image,
		OnboardingStep:      string(user.OnboardingStep),
		OnboardingCompleted: user.OnboardingCompleted,
		CreatedAt:           timex.Time(user.CreatedAt),
		UpdatedAt:           timex.Time(user.UpdatedAt),
	}
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorUserNotFound
		}
		return nil, dbError(s.logger, "get user failed", err, zap.String("uid", uid))
	}
	return userToDTO(user), nil
}

// GetStatus 获取用户状态
func (s *userService) GetStatus(ctx context.Context, uid string) (*dto.UserStatusDTO, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorUserNotFound
		}
		return nil, dbError(s.logger, "get user failed", err, zap.String("uid", uid))
	}
	return &dto.UserStatusDTO{
		User:       userToDTO(user),
		RedirectTo: user.RedirectPath(),
	}, nil
}
