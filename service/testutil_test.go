package service

import (
	"Carnival/config"
	"Carnival/dao"
	"Carnival/models"
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB 每个测试一个独立的 sqlite 文件库
// 连接数限成 1，避免 sqlite 并发写锁干扰，条件更新的竞争语义不受影响
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "carnival.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Account{},
		&models.VoteRight{},
		&models.VoteRecord{},
		&models.Candidate{},
		&models.VoteCategory{},
		&models.VoteRightGrant{},
		&models.PrizeTicket{},
		&models.GachaRecord{},
		&models.AuditLog{},
		&models.Setting{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Jwt: &config.Jwt{Secret: "test-secret"},
		Game: &config.Game{
			SpinCost:       30,
			VoteRightPrice: 50,
			CheckinPoints:  100,
			Prizes: []config.GachaPrize{
				{Label: "贴纸", Weight: 1},
			},
		},
	}
}

func seedAccount(t *testing.T, db *gorm.DB, userID uint64, balance int64, role string) {
	t.Helper()
	err := db.Create(&models.Account{UserID: userID, Balance: balance, Role: role}).Error
	if err != nil {
		t.Fatalf("seed account %d: %v", userID, err)
	}
}

func balanceOf(t *testing.T, db *gorm.DB, userID uint64) int64 {
	t.Helper()
	var account models.Account
	if err := db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		t.Fatalf("load account %d: %v", userID, err)
	}
	return account.Balance
}

func auditCount(t *testing.T, db *gorm.DB, userID uint64, kind string) int64 {
	t.Helper()
	count, err := dao.NewAudit(db).CountByUser(context.Background(), userID, kind)
	if err != nil {
		t.Fatalf("count audit: %v", err)
	}
	return count
}

func newAccountService(db *gorm.DB) *AccountService {
	return &AccountService{
		Config:     newTestConfig(),
		DB:         db,
		AccountDAO: dao.NewAccount(db),
		AuditDAO:   dao.NewAudit(db),
	}
}
