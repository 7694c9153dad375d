package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Journal 交易日志
type Journal struct {
	ID        string
	AccountID string

	ExecutionStyle    string
	Instrument        string
	Side              string
	Size              decimal.Decimal
	PlannedEntryPrice decimal.Decimal
	PlannedStopLoss   decimal.Decimal
	PlannedTakeProfit decimal.Decimal

	// Note 富文本 (TipTap JSON 或任意 JSON)
	Note json.RawMessage

	ExecutedEntryPrice decimal.NullDecimal
	ExecutedStopLoss   decimal.NullDecimal
	ExecutionNotes     json.RawMessage

	ExitPrice decimal.NullDecimal
	TargetHit *bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// JournalPatch 日志的可更新字段，nil 表示不修改
type JournalPatch struct {
	ExecutedEntryPrice *decimal.Decimal
	ExecutedStopLoss   *decimal.Decimal
	ExecutionNotes     json.RawMessage
	ExitPrice          *decimal.Decimal
	TargetHit          *bool
	Note               json.RawMessage
	PlannedEntryPrice  *decimal.Decimal
	PlannedStopLoss    *decimal.Decimal
	PlannedTakeProfit  *decimal.Decimal
	ExecutionStyle     *string
	Instrument         *string
	Side               *string
	Size               *decimal.Decimal
}

// Columns 返回需要更新的列，键为数据库列名
func (p *JournalPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	dec := func(name string, v *decimal.Decimal) {
		if v != nil {
			cols[name] = *v
		}
	}
	str := func(name string, v *string) {
		if v != nil {
			cols[name] = *v
		}
	}
	raw := func(name string, v json.RawMessage) {
		if v != nil {
			cols[name] = []byte(v)
		}
	}

	dec("executed_entry_price", p.ExecutedEntryPrice)
	dec("executed_stop_loss", p.ExecutedStopLoss)
	raw("execution_notes", p.ExecutionNotes)
	dec("exit_price", p.ExitPrice)
	if p.TargetHit != nil {
		cols["target_hit"] = *p.TargetHit
	}
	raw("note", p.Note)
	dec("planned_entry_price", p.PlannedEntryPrice)
	dec("planned_stop_loss", p.PlannedStopLoss)
	dec("planned_take_profit", p.PlannedTakeProfit)
	str("execution_style", p.ExecutionStyle)
	str("instrument", p.Instrument)
	str("side", p.Side)
	dec("size", p.Size)
	return cols
}

// Empty 没有任何可更新字段
func (p *JournalPatch) Empty() bool {
	return len(p.Columns()) == 0
}
