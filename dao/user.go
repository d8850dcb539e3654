package dao

import (
	"Focus/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

// Exists 用户存在且未注销
func (u *Users) Exists(ctx context.Context, userID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	exist, err := u.IsExist(ctx, "id = ? AND status = ?", userID, 1)
	if err != nil {
		return false, fmt.Errorf("dao.Users.Exists error: %w", err)
	}
	return exist, nil
}
