package dto

import (
	"encoding/json"

	"github.com/haierkeys/trade-journal-service/pkg/timex"
)

// JournalCreateRequest create journal parameters, one row per account
// JournalCreateRequest 创建日志参数，每个账户一条
type JournalCreateRequest struct {
	AccountIDs        []string        `json:"accountId"`
	ExecutionStyle    string          `json:"executionStyle" binding:"required,max=50"`
	Instrument        string          `json:"instrument" binding:"required,max=20"`
	Side              string          `json:"side" binding:"required,max=10"`
	Size              float64         `json:"size"`
	PlannedEntryPrice float64         `json:"plannedEntryPrice"`
	PlannedStopLoss   float64         `json:"plannedStopLoss"`
	PlannedTakeProfit float64         `json:"plannedTakeProfit"`
	Note              json.RawMessage `json:"note"`
}

// JournalUpdateRequest update journal parameters, nil fields are ignored
// JournalUpdateRequest 更新日志参数，nil 字段不修改
type JournalUpdateRequest struct {
	ID                 string          `json:"id"`
	ExecutedEntryPrice *float64        `json:"executedEntryPrice"`
	ExecutedStopLoss   *float64        `json:"executedStopLoss"`
	ExecutionNotes     json.RawMessage `json:"executionNotes"`
	ExitPrice          *float64        `json:"exitPrice"`
	TargetHit          *bool           `json:"targetHit"`
	Note               json.RawMessage `json:"note"`
	PlannedEntryPrice  *float64        `json:"plannedEntryPrice"`
	PlannedStopLoss    *float64        `json:"plannedStopLoss"`
	PlannedTakeProfit  *float64        `json:"plannedTakeProfit"`
	ExecutionStyle     *string         `json:"executionStyle"`
	Instrument         *string         `json:"instrument"`
	Side               *string         `json:"side"`
	Size               *float64        `json:"size"`
}

// JournalDTO trade journal entry
// JournalDTO 交易日志
type JournalDTO struct {
	ID                 string          `json:"id"`
	AccountID          string          `json:"accountId"`
	ExecutionStyle     string          `json:"executionStyle"`
	Instrument         string          `json:"instrument"`
	Side               string          `json:"side"`
	Size               float64         `json:"size"`
	PlannedEntryPrice  float64         `json:"plannedEntryPrice"`
	PlannedStopLoss    float64         `json:"plannedStopLoss"`
	PlannedTakeProfit  float64         `json:"plannedTakeProfit"`
	Note               json.RawMessage `json:"note"`
	ExecutedEntryPrice *float64        `json:"executedEntryPrice"`
	ExecutedStopLoss   *float64        `json:"executedStopLoss"`
	ExecutionNotes     json.RawMessage `json:"executionNotes"`
	ExitPrice          *float64        `json:"exitPrice"`
	TargetHit          *bool           `json:"targetHit"`
	CreatedAt          timex.Time      `json:"createdAt"`
	UpdatedAt          timex.Time      `json:"updatedAt"`
}

// JournalResultDTO journal mutation result
// JournalResultDTO 日志操作结果
type JournalResultDTO struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Journals []*JournalDTO `json:"journals,omitempty"`
	Journal  *JournalDTO   `json:"journal,omitempty"`
}
