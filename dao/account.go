package dao

import (
	"Carnival/models"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Account struct {
	Repo[models.Account]
}

func NewAccount(db *gorm.DB) *Account {
	return &Account{
		Repo: NewRepo[models.Account](db),
	}
}

// GetOrCreate 首次登录自动开户，余额 0、角色 none
func (a *Account) GetOrCreate(ctx context.Context, userID uint64) (*models.Account, error) {
	account := &models.Account{UserID: userID, Role: models.RoleNone}
	err := a.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(account).Error
	return account, err
}

func (a *Account) Get(tx *gorm.DB, userID uint64) (*models.Account, error) {
	var account models.Account
	err := tx.Where("user_id = ?", userID).First(&account).Error
	return &account, err
}

// Debit 条件扣减，balance >= amount 才会命中
// 返回受影响行数，0 行表示余额不足，并发下由数据库行锁保证只有一个赢家
func (a *Account) Debit(tx *gorm.DB, userID uint64, amount int64) (int64, error) {
	result := tx.Model(&models.Account{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	return result.RowsAffected, result.Error
}

// Credit 原子加钱
func (a *Account) Credit(tx *gorm.DB, userID uint64, amount int64) (int64, error) {
	result := tx.Model(&models.Account{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	return result.RowsAffected, result.Error
}

func (a *Account) SetBalance(tx *gorm.DB, userID uint64, balance int64) error {
	return tx.Model(&models.Account{}).
		Where("user_id = ?", userID).
		Update("balance", balance).Error
}

func (a *Account) SetRole(tx *gorm.DB, userID uint64, role string) error {
	return tx.Model(&models.Account{}).
		Where("user_id = ?", userID).
		Update("role", role).Error
}

func (a *Account) SetAttendance(tx *gorm.DB, userID uint64, day string, checked bool) error {
	account := &models.Account{}
	if err := tx.Where("user_id = ?", userID).First(account).Error; err != nil {
		return err
	}
	if account.Attendance == nil {
		account.Attendance = map[string]any{}
	}
	account.Attendance[day] = checked
	return tx.Model(&models.Account{}).
		Where("user_id = ?", userID).
		Update("attendance", account.Attendance).Error
}

// ListUserIDs 全量用户ID，开场发免费票用
func (a *Account) ListUserIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := a.Db.WithContext(ctx).Model(&models.Account{}).Pluck("user_id", &ids).Error
	return ids, err
}

// GetRights 查询分类票数，没有记录按 0 处理
func (a *Account) GetRights(ctx context.Context, userID uint64, category string) (int64, error) {
	var right models.VoteRight
	err := a.Db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		First(&right).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return right.Rights, err
}

func (a *Account) ListRights(ctx context.Context, userID uint64) ([]models.VoteRight, error) {
	var rights []models.VoteRight
	err := a.Db.WithContext(ctx).Where("user_id = ?", userID).Find(&rights).Error
	return rights, err
}

// AddRights upsert 票数，不存在则建行
func (a *Account) AddRights(tx *gorm.DB, userID uint64, category string, delta int64) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.Assignments(map[string]any{"rights": gorm.Expr("rights + ?", delta)}),
	}).Create(&models.VoteRight{UserID: userID, Category: category, Rights: delta}).Error
}

// ConsumeRight 条件扣票，rights > 0 才会命中，0 行即无票可用
func (a *Account) ConsumeRight(tx *gorm.DB, userID uint64, category string) (int64, error) {
	result := tx.Model(&models.VoteRight{}).
		Where("user_id = ? AND category = ? AND rights > 0", userID, category).
		Update("rights", gorm.Expr("rights - ?", 1))
	return result.RowsAffected, result.Error
}
