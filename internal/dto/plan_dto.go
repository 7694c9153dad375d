package dto

import (
	"github.com/haierkeys/trade-journal-service/pkg/note"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
)

// TradingPlanRequest create / update trading plan parameters
// TradingPlanRequest 创建或更新交易计划参数
type TradingPlanRequest struct {
	TradingStyle    string   `json:"tradingStyle" binding:"required"`
	TradingSessions []string `json:"tradingSessions"`
	TimeZone        string   `json:"timeZone" binding:"required"`
	RiskRewardRatio int      `json:"riskRewardRatio" binding:"gte=0"`
	// Note nil means the field was not sent // nil 表示未传入
	Note     *string `json:"note"`
	RenderAs string  `json:"renderAs" binding:"omitempty,notefmt"`
}

// TradingPlanDTO trading plan
// TradingPlanDTO 交易计划
type TradingPlanDTO struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	TradingStyle    string        `json:"tradingStyle"`
	TradingSessions []string      `json:"tradingSessions"`
	TimeZone        string        `json:"timeZone"`
	RiskRewardRatio int           `json:"riskRewardRatio"`
	IsOwner         bool          `json:"isOwner"`
	Note            *note.Content `json:"note"`
	CreatedAt       timex.Time    `json:"createdAt"`
	UpdatedAt       timex.Time    `json:"updatedAt"`
}

// TradingPlanResultDTO plan query / mutation result
// TradingPlanResultDTO 计划操作结果
type TradingPlanResultDTO struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Plan    *TradingPlanDTO `json:"plan"`
}

// SharedPlanDTO shared trading plan
// SharedPlanDTO 分享的交易计划
type SharedPlanDTO struct {
	ID             string          `json:"id"`
	OriginalPlanID string          `json:"originalPlanId"`
	SharedByUserID string          `json:"sharedByUserId"`
	Visibility     string          `json:"visibility"`
	Viewed         bool            `json:"viewed"`
	ExpiresAt      timex.Time      `json:"expiresAt"`
	CreatedAt      timex.Time      `json:"createdAt"`
	Plan           *TradingPlanDTO `json:"plan"`
}

// SharedPlanResultDTO shared plan result
// SharedPlanResultDTO 分享操作结果
type SharedPlanResultDTO struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	SharedPlan *SharedPlanDTO `json:"sharedPlan"`
}

// JournalTemplateDTO journaling note template
// JournalTemplateDTO 日志笔记模板
type JournalTemplateDTO struct {
	ID        string       `json:"id"`
	Note      note.Content `json:"note"`
	CreatedAt timex.Time   `json:"createdAt"`
	UpdatedAt timex.Time   `json:"updatedAt"`
}

// NotePreviewRequest note preview parameters
// NotePreviewRequest 笔记预览参数
type NotePreviewRequest struct {
	Content  string `json:"content" form:"content"`
	RenderAs string `json:"renderAs" form:"renderAs" binding:"omitempty,notefmt"`
}
