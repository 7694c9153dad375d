// Package domain 定义领域模型和接口
package domain

import "time"

// OnboardingStep 新用户引导步骤
type OnboardingStep string

const (
	StepAccountSetup OnboardingStep = "account_setup"
	StepSafetyNet    OnboardingStep = "safety_net"
	StepTradingStyle OnboardingStep = "trading_style"
	StepComplete     OnboardingStep = "complete"
)

// Valid 判断引导步骤是否合法
func (s OnboardingStep) Valid() bool {
	switch s {
	case StepAccountSetup, StepSafetyNet, StepTradingStyle, StepComplete:
		return true
	}
	return false
}

// User 用户领域模型
// ID 为 Google 账号的 subject
type User struct {
	ID                  string
	ParticipantID       string
	Name                string
	Email               string
	Image               string
	OnboardingStep      OnboardingStep
	OnboardingCompleted bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RedirectPath 登录后前端跳转路径
func (u *User) RedirectPath() string {
	if u.OnboardingCompleted {
		return "/dashboard"
	}
	return "/onboarding"
}

// Session 登录会话
type Session struct {
	ID        string
	UserID    string
	IP        string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired 判断会话是否过期
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
