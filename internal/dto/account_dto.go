package dto

import "github.com/haierkeys/trade-journal-service/pkg/timex"

// AccountSetupRequest trading account setup parameters
// AccountSetupRequest 交易账户创建参数
type AccountSetupRequest struct {
	Goal             string   `json:"goal" binding:"required,oneof=PROP IMPROVE DISCIPLINE ANALYTICS"`
	PropFirm         *string  `json:"propFirm"`
	Broker           string   `json:"broker" binding:"required"`
	AccountSize      float64  `json:"accountSize"`
	AccountCurrency  string   `json:"accountCurrency" binding:"required,oneof=USD EUR GBP"`
	AccountName      string   `json:"accountName" binding:"required,max=255"`
	ExperienceLevel  *string  `json:"experienceLevel" binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	BiggestChallenge []string `json:"biggestChallenge" binding:"omitempty,dive,oneof=RISK_MANAGEMENT CONSISTENCY PSYCHOLOGY PATIENCE"`
}

// TradingAccountDTO trading account, enums in GraphQL form (upper case)
// TradingAccountDTO 交易账户，枚举为大写形式
type TradingAccountDTO struct {
	ID               string      `json:"id"`
	AccountID        string      `json:"accountId"`
	UserID           string      `json:"userId"`
	Goal             string      `json:"goal"`
	PropFirm         string      `json:"propFirm"`
	Broker           string      `json:"broker"`
	AccountSize      int64       `json:"accountSize"`
	AccountCurrency  string      `json:"accountCurrency"`
	AccountName      string      `json:"accountName"`
	ExperienceLevel  string      `json:"experienceLevel"`
	BiggestChallenge []string    `json:"biggestChallenge"`
	IsProp           bool        `json:"isProp"`
	Funded           bool        `json:"funded"`
	FundedAt         *timex.Time `json:"fundedAt"`
	CreatedAt        timex.Time  `json:"createdAt"`
	UpdatedAt        timex.Time  `json:"updatedAt"`
}

// SafetyNetCreateRequest safety net parameters
// SafetyNetCreateRequest 风控规则参数
type SafetyNetCreateRequest struct {
	MaxDailyRisk     int   `json:"maxDailyRisk" binding:"gte=0"`
	MaxDailyDrawdown int   `json:"maxDailyDrawdown" binding:"gte=0"`
	MaxTotalDrawdown int   `json:"maxTotalDrawdown" binding:"gte=0"`
	RiskPerTrade     int   `json:"riskPerTrade" binding:"gte=0"`
	MaxOpenTrades    int   `json:"maxOpenTrades" binding:"gte=0"`
	IsDefault        *bool `json:"isDefault"`
}

// SafetyNetDTO safety net
// SafetyNetDTO 风控规则
type SafetyNetDTO struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	MaxDailyRisk     int        `json:"maxDailyRisk"`
	MaxDailyDrawdown int        `json:"maxDailyDrawdown"`
	MaxTotalDrawdown int        `json:"maxTotalDrawdown"`
	RiskPerTrade     int        `json:"riskPerTrade"`
	MaxOpenTrades    int        `json:"maxOpenTrades"`
	IsDefault        bool       `json:"isDefault"`
	CreatedAt        timex.Time `json:"createdAt"`
	UpdatedAt        timex.Time `json:"updatedAt"`
}
