package model

import "github.com/haierkeys/trade-journal-service/pkg/timex"

const TableNameUser = "user"

// User mapped from table <user>
type User struct {
	ID                  string     `gorm:"column:id;primaryKey;size:64" json:"id" form:"id"`
	ParticipantID       string     `gorm:"column:participant_id;size:64;uniqueIndex" json:"participantId" form:"participantId"`
	Name                string     `gorm:"column:name" json:"name" form:"name"`
	Email               string     `gorm:"column:email;size:191;not null;uniqueIndex" json:"email" form:"email"`
	Image               string     `gorm:"column:image" json:"image" form:"image"`
	OnboardingStep      string     `gorm:"column:onboarding_step;size:32;default:account_setup" json:"onboardingStep" form:"onboardingStep"`
	OnboardingCompleted bool       `gorm:"column:onboarding_completed;default:false" json:"onboardingCompleted" form:"onboardingCompleted"`
	CreatedAt           timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt           timex.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}

const TableNameSession = "session"

// Session mapped from table <session>
type Session struct {
	ID        string     `gorm:"column:id;primaryKey;size:32" json:"id" form:"id"`
	UserID    string     `gorm:"column:user_id;size:64;not null;index:idx_session_user" json:"userId" form:"userId"`
	IP        string     `gorm:"column:ip;size:64" json:"ip" form:"ip"`
	UserAgent string     `gorm:"column:user_agent" json:"userAgent" form:"userAgent"`
	ExpiresAt timex.Time `gorm:"column:expires_at;not null;index:idx_session_expires" json:"expiresAt" form:"expiresAt"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName Session's table name
func (*Session) TableName() string {
	return TableNameSession
}
