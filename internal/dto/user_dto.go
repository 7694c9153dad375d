package dto

import "github.com/haierkeys/trade-journal-service/pkg/timex"

// GoogleProfile Google userinfo response
// GoogleProfile Google 用户信息
type GoogleProfile struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// UserDTO User data transfer object
// UserDTO 用户数据传输对象
type UserDTO struct {
	ID                  string     `json:"id"`                  // Google subject // 用户唯一标识
	ParticipantID       string     `json:"participantId"`       // Snowflake participant id // 参与者ID
	Name                string     `json:"name"`                // Display name // 名称
	Email               string     `json:"email"`               // Email address // 邮件地址
	Image               string     `json:"image"`               // Avatar URL // 头像
	OnboardingStep      string     `json:"onboardingStep"`      // Current onboarding step // 引导步骤
	OnboardingCompleted bool       `json:"onboardingCompleted"` // Onboarding finished // 引导是否完成
	CreatedAt           timex.Time `json:"createdAt"`
	UpdatedAt           timex.Time `json:"updatedAt"`
}

// UserStatusDTO /api/user/status response
// UserStatusDTO 用户状态响应
type UserStatusDTO struct {
	User       *UserDTO `json:"user"`
	RedirectTo string   `json:"redirectTo"`
}

// LoginResultDTO result of a completed OAuth login
// LoginResultDTO 登录结果
type LoginResultDTO struct {
	User       *UserDTO
	Token      string
	SessionID  string
	RedirectTo string
}
