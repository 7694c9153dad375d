package dao

import (
	"context"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/model"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// user 获取用户表连接
func (r *userRepository) user(ctx context.Context) *gorm.DB {
	return r.dao.UseTableWithOnceFunc(ctx, func(g *gorm.DB) {
		r.dao.Migrate(g, "User")
	}, "user#user").Model(&model.User{})
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:                  m.ID,
		ParticipantID:       m.ParticipantID,
		Name:                m.Name,
		Email:               m.Email,
		Image:               m.Image,
		OnboardingStep:      domain.OnboardingStep(m.OnboardingStep),
		OnboardingCompleted: m.OnboardingCompleted,
		CreatedAt:           time.Time(m.CreatedAt),
		UpdatedAt:           time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *userRepository) toModel(user *domain.User) *model.User {
	if user == nil {
		return nil
	}
	return &model.User{
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

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var m model.User
	if err := r.user(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	if err := r.user(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()
	if m.OnboardingStep == "" {
		m.OnboardingStep = string(domain.StepAccountSetup)
	}

	if err := r.user(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdateOnboarding 更新引导步骤
func (r *userRepository) UpdateOnboarding(ctx context.Context, id string, step domain.OnboardingStep, completed bool) error {
	res := r.user(ctx).Where("id = ?", id).Updates(map[string]interface{}{
		"onboarding_step":      string(step),
		"onboarding_completed": completed,
		"updated_at":           timex.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// 确保 userRepository 实现了 domain.UserRepository 接口
var _ domain.UserRepository = (*userRepository)(nil)
