package models

import (
	"time"

	"gorm.io/datatypes"
)

// 角色枚举，权限表见 middleware/permission.go
const (
	RoleNone       = "none"
	RoleUser       = "user"
	RoleStaff      = "staff"
	RoleRegister   = "register"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Account 用户积分账户
// balance 任何时刻不允许为负，扣减一律走条件更新
type Account struct {
	UserID     uint64            `gorm:"primaryKey;column:user_id"`
	Balance    int64             `gorm:"column:balance;default:0"`
	Role       string            `gorm:"column:role;size:16;default:none"`
	Attendance datatypes.JSONMap `gorm:"column:attendance"` // 日期 -> 是否到场
	CreatedAt  time.Time         `gorm:"column:created_at"`
	UpdatedAt  time.Time         `gorm:"column:updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// VoteRight 分类维度的投票券余额
type VoteRight struct {
	UserID    uint64    `gorm:"primaryKey;column:user_id"`
	Category  string    `gorm:"primaryKey;column:category;size:32"`
	Rights    int64     `gorm:"column:rights;default:0"` // 剩余可用票数，>= 0
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (VoteRight) TableName() string {
	return "vote_rights"
}
