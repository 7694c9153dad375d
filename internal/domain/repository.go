package domain

import (
	"context"
	"time"

	"github.com/haierkeys/trade-journal-service/pkg/note"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByID 根据ID获取用户
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// UpdateOnboarding 更新引导步骤
	UpdateOnboarding(ctx context.Context, id string, step OnboardingStep, completed bool) error
}

// SessionRepository 会话仓储接口
type SessionRepository interface {
	Create(ctx context.Context, session *Session) (*Session, error)
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error

	// DeleteExpired 删除在 before 之前过期的会话，返回删除条数
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// TradingAccountRepository 交易账户仓储接口
type TradingAccountRepository interface {
	Create(ctx context.Context, account *TradingAccount) (*TradingAccount, error)

	// GetByID 获取属于 userID 的账户
	GetByID(ctx context.Context, id, userID string) (*TradingAccount, error)

	ListByUser(ctx context.Context, userID string) ([]*TradingAccount, error)

	CountByUser(ctx context.Context, userID string) (int64, error)

	// OwnedIDs 从 ids 中筛选出属于 userID 的账户ID
	OwnedIDs(ctx context.Context, userID string, ids []string) ([]string, error)
}

// SafetyNetRepository 风控规则仓储接口
type SafetyNetRepository interface {
	// Create 在一个事务内创建风控规则
	// 用户的第一条规则总是默认规则；新的默认规则会取消其余规则的默认标记
	// first 表示这是否为用户的第一条规则
	Create(ctx context.Context, net *SafetyNet) (created *SafetyNet, first bool, err error)

	ListByUser(ctx context.Context, userID string) ([]*SafetyNet, error)
}

// TradingPlanRepository 交易计划仓储接口
type TradingPlanRepository interface {
	GetByUserID(ctx context.Context, userID string) (*TradingPlan, error)

	// Create 在一个事务内创建计划和日志模板
	Create(ctx context.Context, plan *TradingPlan, template *JournalTemplate) (*TradingPlan, error)

	Update(ctx context.Context, plan *TradingPlan) (*TradingPlan, error)

	// UpdateNote 仅更新笔记，并标记 is_owner
	UpdateNote(ctx context.Context, id string, content note.Content) error
}

// SharedPlanRepository 计划分享仓储接口
type SharedPlanRepository interface {
	Create(ctx context.Context, share *SharedPlan) (*SharedPlan, error)

	// GetWithPlan 获取分享记录及其原始计划
	GetWithPlan(ctx context.Context, id string) (*SharedPlan, error)

	// MarkViewed 将未查看的分享标记为已查看
	// 返回 false 表示已被其他请求抢先查看
	MarkViewed(ctx context.Context, id string) (bool, error)

	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// JournalTemplateRepository 日志模板仓储接口
type JournalTemplateRepository interface {
	GetByUserID(ctx context.Context, userID string) (*JournalTemplate, error)

	// Upsert 不存在时创建，存在时更新笔记
	Upsert(ctx context.Context, userID string, content note.Content) (*JournalTemplate, error)
}

// JournalRepository 交易日志仓储接口
type JournalRepository interface {
	// CreateBatch 在一个事务内创建多条日志
	CreateBatch(ctx context.Context, journals []*Journal) ([]*Journal, error)

	// GetOwned 获取日志，通过交易账户校验归属
	GetOwned(ctx context.Context, id, userID string) (*Journal, error)

	ListByAccount(ctx context.Context, accountID, userID string) ([]*Journal, error)

	ListByUser(ctx context.Context, userID string) ([]*Journal, error)

	// Update 按列更新日志
	Update(ctx context.Context, id string, patch *JournalPatch) (*Journal, error)
}
