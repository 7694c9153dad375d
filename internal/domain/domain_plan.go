package domain

import (
	"time"

	"github.com/haierkeys/trade-journal-service/pkg/note"
)

// PlanVisibility 分享可见性
type PlanVisibility string

const (
	// VisibilityPublic 任何持有链接的人都可以查看
	VisibilityPublic PlanVisibility = "PUBLIC"
	// VisibilityPrivate 仅可被查看一次
	VisibilityPrivate PlanVisibility = "PRIVATE"
)

// Valid 判断可见性是否合法
func (v PlanVisibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// TradingPlan 交易计划，每个用户最多一个
type TradingPlan struct {
	ID              string
	UserID          string
	TradingStyle    string
	TradingSessions []string
	TimeZone        string
	RiskRewardRatio int
	// IsOwner 用户是否编辑过计划，只有编辑过的计划才能分享
	IsOwner   bool
	Note      *note.Content
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SharedPlan 计划分享记录
type SharedPlan struct {
	ID         string
	PlanID     string
	UserID     string
	Visibility PlanVisibility
	Viewed     bool
	ExpiresAt  time.Time
	CreatedAt  time.Time

	Plan *TradingPlan
}

// Expired 判断分享是否过期
func (s *SharedPlan) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// ConsumedPrivate 私有分享是否已被查看过
func (s *SharedPlan) ConsumedPrivate() bool {
	return s.Visibility == VisibilityPrivate && s.Viewed
}

// JournalTemplate 用户的日志笔记模板
type JournalTemplate struct {
	ID        string
	UserID    string
	Note      note.Content
	CreatedAt time.Time
	UpdatedAt time.Time
}
