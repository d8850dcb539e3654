package models

import "time"

// User 账号主表，碎片服务只读
type User struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	Nickname  string    `gorm:"column:nickname;size:64"`
	Status    int8      `gorm:"column:status;not null;default:1"` // 0-注销, 1-正常
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
