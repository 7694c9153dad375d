package model

import (
	"github.com/haierkeys/trade-journal-service/pkg/note"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const TableNameJournalingNoteTemplate = "journaling_note_template"

// JournalingNoteTemplate mapped from table <journaling_note_template>
type JournalingNoteTemplate struct {
	ID        string                           `gorm:"column:id;primaryKey;size:36" json:"id" form:"id"`
	UserID    string                           `gorm:"column:user_id;size:64;not null;uniqueIndex" json:"userId" form:"userId"`
	Note      datatypes.JSONType[note.Content] `gorm:"column:note;not null" json:"note" form:"note"`
	CreatedAt timex.Time                       `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time                       `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName JournalingNoteTemplate's table name
func (*JournalingNoteTemplate) TableName() string {
	return TableNameJournalingNoteTemplate
}

const TableNameJournal = "journal"

// Journal mapped from table <journal>
type Journal struct {
	ID                 string              `gorm:"column:id;primaryKey;size:36" json:"id" form:"id"`
	AccountID          string              `gorm:"column:account_id;size:36;not null;index:idx_journal_account" json:"accountId" form:"accountId"`
	ExecutionStyle     string              `gorm:"column:execution_style;size:50;not null" json:"executionStyle" form:"executionStyle"`
	Instrument         string              `gorm:"column:instrument;size:20;not null" json:"instrument" form:"instrument"`
	Side               string              `gorm:"column:side;size:10;not null" json:"side" form:"side"`
	Size               decimal.Decimal     `gorm:"column:size;type:decimal(10,2);not null" json:"size" form:"size"`
	PlannedEntryPrice  decimal.Decimal     `gorm:"column:planned_entry_price;type:decimal(10,5);not null" json:"plannedEntryPrice" form:"plannedEntryPrice"`
	PlannedStopLoss    decimal.Decimal     `gorm:"column:planned_stop_loss;type:decimal(10,5);not null" json:"plannedStopLoss" form:"plannedStopLoss"`
	PlannedTakeProfit  decimal.Decimal     `gorm:"column:planned_take_profit;type:decimal(10,5);not null" json:"plannedTakeProfit" form:"plannedTakeProfit"`
	Note               datatypes.JSON      `gorm:"column:note" json:"note" form:"note"`
	ExecutedEntryPrice decimal.NullDecimal `gorm:"column:executed_entry_price;type:decimal(10,5)" json:"executedEntryPrice" form:"executedEntryPrice"`
	ExecutedStopLoss   decimal.NullDecimal `gorm:"column:executed_stop_loss;type:decimal(10,5)" json:"executedStopLoss" form:"executedStopLoss"`
	ExecutionNotes     datatypes.JSON      `gorm:"column:execution_notes" json:"executionNotes" form:"executionNotes"`
	ExitPrice          decimal.NullDecimal `gorm:"column:exit_price;type:decimal(10,5)" json:"exitPrice" form:"exitPrice"`
	TargetHit          *bool               `gorm:"column:target_hit" json:"targetHit" form:"targetHit"`
	CreatedAt          timex.Time          `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt          timex.Time          `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Journal's table name
func (*Journal) TableName() string {
	return TableNameJournal
}
