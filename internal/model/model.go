// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名迁移单张表
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "User":
		return db.AutoMigrate(User{})
	case "Session":
		return db.AutoMigrate(Session{})
	case "TradingAccount":
		return db.AutoMigrate(TradingAccount{})
	case "SafetyNet":
		return db.AutoMigrate(SafetyNet{})
	case "TradingPlan":
		return db.AutoMigrate(TradingPlan{})
	case "SharedPlan":
		return db.AutoMigrate(SharedPlan{})
	case "JournalingNoteTemplate":
		return db.AutoMigrate(JournalingNoteTemplate{})
	case "Journal":
		return db.AutoMigrate(Journal{})
	}
	return nil
}

// AutoMigrateAll 迁移全部表
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		User{},
		Session{},
		TradingAccount{},
		SafetyNet{},
		TradingPlan{},
		SharedPlan{},
		JournalingNoteTemplate{},
		Journal{},
	)
}
