package model

import (
	"github.com/haierkeys/trade-journal-service/pkg/note"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"gorm.io/datatypes"
)

const TableNameTradingPlan = "trading_plan"

// TradingPlan mapped from table <trading_plan>
type TradingPlan struct {
	ID              string                           `gorm:"column:id;primaryKey;size:36" json:"id" form:"id"`
	UserID          string                           `gorm:"column:user_id;size:64;not null;uniqueIndex" json:"userId" form:"userId"`
	TradingStyle    string                           `gorm:"column:trading_style;not null" json:"tradingStyle" form:"tradingStyle"`
	TradingSessions datatypes.JSONSlice[string]      `gorm:"column:trading_sessions;not null" json:"tradingSessions" form:"tradingSessions"`
	TimeZone        string                           `gorm:"column:time_zone;size:64;not null" json:"timeZone" form:"timeZone"`
	RiskRewardRatio int                              `gorm:"column:risk_reward_ratio;not null" json:"riskRewardRatio" form:"riskRewardRatio"`
	IsOwner         bool                             `gorm:"column:is_owner;not null;default:false" json:"isOwner" form:"isOwner"`
	Note            datatypes.JSONType[note.Content] `gorm:"column:note" json:"note" form:"note"`
	CreatedAt       timex.Time                       `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt       timex.Time                       `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName TradingPlan's table name
func (*TradingPlan) TableName() string {
	return TableNameTradingPlan
}

const TableNameSharedPlan = "shared_plan"

// SharedPlan mapped from table <shared_plan>
type SharedPlan struct {
	ID         string     `gorm:"column:id;primaryKey;size:26" json:"id" form:"id"`
	PlanID     string     `gorm:"column:plan_id;size:36;not null;index:idx_shared_plan_plan" json:"planId" form:"planId"`
	UserID     string     `gorm:"column:user_id;size:64;not null" json:"userId" form:"userId"`
	Visibility string     `gorm:"column:visibility;size:16;not null" json:"visibility" form:"visibility"`
	Viewed     bool       `gorm:"column:viewed;not null;default:false" json:"viewed" form:"viewed"`
	ExpiresAt  timex.Time `gorm:"column:expires_at;not null;index:idx_shared_plan_expires" json:"expiresAt" form:"expiresAt"`
	CreatedAt  timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName SharedPlan's table name
func (*SharedPlan) TableName() string {
	return TableNameSharedPlan
}
