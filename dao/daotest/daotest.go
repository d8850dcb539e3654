// Package daotest 提供基于内存 SQLite 的测试数据库
package daotest

import (
	"Focus/dao"
	"Focus/models"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 每次调用得到一个独立的空库，已完成建表
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// 内存库只存在于单个连接内
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := dao.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, id uint64) {
	t.Helper()
	if err := db.Create(&models.User{ID: id, Nickname: "tester", Status: 1}).Error; err != nil {
		t.Fatalf("create user %d: %v", id, err)
	}
}

// CreateReward stock 为 nil 表示不限量
func CreateReward(t testing.TB, db *gorm.DB, name string, cost int64, stock *int64) *models.RewardItem {
	t.Helper()
	item := &models.RewardItem{
		Name:          name,
		CostFragments: cost,
		IsActive:      true,
		StockQuantity: stock,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create reward %s: %v", name, err)
	}
	return item
}

func Stock(n int64) *int64 {
	return &n
}
