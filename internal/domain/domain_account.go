package domain

import (
	"strings"
	"time"
)

// Goal 账户目标，存储为小写
type Goal string

const (
	GoalProp       Goal = "prop"
	GoalImprove    Goal = "improve"
	GoalDiscipline Goal = "discipline"
	GoalAnalytics  Goal = "analytics"
)

// ExperienceLevel 交易经验
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// Challenge 最大挑战
type Challenge string

const (
	ChallengeRiskManagement Challenge = "riskManagement"
	ChallengeConsistency    Challenge = "consistency"
	ChallengePsychology     Challenge = "psychology"
	ChallengePatience       Challenge = "patience"
)

// Currencies 支持的账户币种
var Currencies = []string{"USD", "EUR", "GBP"}

var (
	goals       = []Goal{GoalProp, GoalImprove, GoalDiscipline, GoalAnalytics}
	experiences = []ExperienceLevel{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
	challenges  = []Challenge{ChallengeRiskManagement, ChallengeConsistency, ChallengePsychology, ChallengePatience}
)

// ParseGoal 解析 GraphQL 枚举值 (PROP) 为存储值 (prop)
func ParseGoal(s string) (Goal, bool) {
	for _, g := range goals {
		if strings.EqualFold(string(g), s) {
			return g, true
		}
	}
	return "", false
}

// ParseExperienceLevel 解析经验等级
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	for _, e := range experiences {
		if strings.EqualFold(string(e), s) {
			return e, true
		}
	}
	return "", false
}

// ParseChallenge 解析 RISK_MANAGEMENT 或 riskManagement 形式
func ParseChallenge(s string) (Challenge, bool) {
	key := strings.ReplaceAll(s, "_", "")
	for _, c := range challenges {
		if strings.EqualFold(string(c), key) {
			return c, true
		}
	}
	return "", false
}

// EnumName 将存储值转为 GraphQL 枚举名, riskManagement -> RISK_MANAGEMENT
func EnumName(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// TradingAccount 交易账户
type TradingAccount struct {
	ID               string
	AccountID        string // snowflake
	UserID           string
	Goal             Goal
	IsProp           bool
	Funded           bool
	FundedAt         *time.Time
	PropFirm         string
	Broker           string
	AccountSize      int64
	AccountCurrency  string
	AccountName      string
	ExperienceLevel  ExperienceLevel
	BiggestChallenge []Challenge
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SafetyNet 风控规则
type SafetyNet struct {
	ID               string
	UserID           string
	MaxDailyRisk     int
	MaxDailyDrawdown int
	MaxTotalDrawdown int
	RiskPerTrade     int
	MaxOpenTrades    int
	IsDefault        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
