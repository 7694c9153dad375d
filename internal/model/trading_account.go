package model

import (
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"gorm.io/datatypes"
)

const TableNameTradingAccount = "trading_account"

// TradingAccount mapped from table <trading_account>
type TradingAccount struct {
	ID               string                      `gorm:"column:id;primaryKey;size:36" json:"id" form:"id"`
	AccountID        string                      `gorm:"column:account_id;size:32;not null;uniqueIndex" json:"accountId" form:"accountId"`
	UserID           string                      `gorm:"column:user_id;size:64;not null;index:idx_account_user" json:"userId" form:"userId"`
	Goal             string                      `gorm:"column:goal;size:16;not null" json:"goal" form:"goal"`
	IsProp           bool                        `gorm:"column:is_prop;not null;default:false" json:"isProp" form:"isProp"`
	Funded           bool                        `gorm:"column:funded;not null;default:false" json:"funded" form:"funded"`
	FundedAt         timex.Time                  `gorm:"column:funded_at" json:"fundedAt" form:"fundedAt"`
	PropFirm         string                      `gorm:"column:prop_firm" json:"propFirm" form:"propFirm"`
	Broker           string                      `gorm:"column:broker" json:"broker" form:"broker"`
	AccountSize      int64                       `gorm:"column:account_size;not null" json:"accountSize" form:"accountSize"`
	AccountCurrency  string                      `gorm:"column:account_currency;size:8;not null" json:"accountCurrency" form:"accountCurrency"`
	AccountName      string                      `gorm:"column:account_name;not null" json:"accountName" form:"accountName"`
	ExperienceLevel  string                      `gorm:"column:experience_level;size:16" json:"experienceLevel" form:"experienceLevel"`
	BiggestChallenge datatypes.JSONSlice[string] `gorm:"column:biggest_challenge" json:"biggestChallenge" form:"biggestChallenge"`
	CreatedAt        timex.Time                  `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt        timex.Time                  `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName TradingAccount's table name
func (*TradingAccount) TableName() string {
	return TableNameTradingAccount
}

const TableNameSafetyNet = "safety_net"

// SafetyNet mapped from table <safety_net>
type SafetyNet struct {
	ID               string     `gorm:"column:id;primaryKey;size:36" json:"id" form:"id"`
	UserID           string     `gorm:"column:user_id;size:64;not null;index:idx_safety_net_user" json:"userId" form:"userId"`
	MaxDailyRisk     int        `gorm:"column:max_daily_risk;not null" json:"maxDailyRisk" form:"maxDailyRisk"`
	MaxDailyDrawdown int        `gorm:"column:max_daily_drawdown;not null" json:"maxDailyDrawdown" form:"maxDailyDrawdown"`
	MaxTotalDrawdown int        `gorm:"column:max_total_drawdown;not null" json:"maxTotalDrawdown" form:"maxTotalDrawdown"`
	RiskPerTrade     int        `gorm:"column:risk_per_trade;not null" json:"riskPerTrade" form:"riskPerTrade"`
	MaxOpenTrades    int        `gorm:"column:max_open_trades;not null" json:"maxOpenTrades" form:"maxOpenTrades"`
	IsDefault        bool       `gorm:"column:is_default;not null;default:false" json:"isDefault" form:"isDefault"`
	CreatedAt        timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt        timex.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName SafetyNet's table name
func (*SafetyNet) TableName() string {
	return TableNameSafetyNet
}
