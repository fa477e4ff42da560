package service

import (
	"Carnival/dao"
	"Carnival/models"
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func newAdminService(db *gorm.DB) *AdminService {
	return &AdminService{
		DB:           db,
		AccountDAO:   dao.NewAccount(db),
		CandidateDAO: dao.NewCandidate(db),
		SettingDAO:   dao.NewSetting(db),
		AuditDAO:     dao.NewAudit(db),
	}
}

func TestAdjustPoints(t *testing.T) {
	db := newTestDB(t)
	s := newAdminService(db)
	ctx := context.Background()
	seedAccount(t, db, 1, 120, models.RoleUser)

	if err := s.AdjustPoints(ctx, 1, 500, "活动补偿", 900); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got := balanceOf(t, db, 1); got != 500 {
		t.Fatalf("balance = %d, want 500", got)
	}

	// 审计要带调整前后的余额
	logs, err := dao.NewAudit(db).ListRecords(ctx, models.AuditAdminAdjust, 1, 0, 10)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("audit = %d, want 1", len(logs))
	}
	if logs[0].BalanceBefore != 120 || logs[0].BalanceAfter != 500 {
		t.Fatalf("audit before/after = %d/%d, want 120/500", logs[0].BalanceBefore, logs[0].BalanceAfter)
	}

	if err := s.AdjustPoints(ctx, 1, -1, "x", 900); !errors.Is(err, ErrInvalidBalance) {
		t.Fatalf("err = %v, want ErrInvalidBalance", err)
	}
}

func TestSetRole(t *testing.T) {
	db := newTestDB(t)
	s := newAdminService(db)
	ctx := context.Background()
	seedAccount(t, db, 1, 0, models.RoleUser)
	seedAccount(t, db, 900, 0, models.RoleAdmin)
	seedAccount(t, db, 999, 0, models.RoleSuperAdmin)

	if err := s.SetRole(ctx, 1, models.RoleStaff, 900); err != nil {
		t.Fatalf("set role: %v", err)
	}

	// superadmin 的授予只认库里的 superadmin，admin 不行
	if err := s.SetRole(ctx, 1, models.RoleSuperAdmin, 900); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if err := s.SetRole(ctx, 1, models.RoleSuperAdmin, 999); err != nil {
		t.Fatalf("superadmin grant: %v", err)
	}

	// 回收 superadmin 同样只认 superadmin
	if err := s.SetRole(ctx, 1, models.RoleUser, 900); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if err := s.SetRole(ctx, 1, models.RoleUser, 999); err != nil {
		t.Fatalf("superadmin revoke: %v", err)
	}

	if err := s.SetRole(ctx, 1, "king", 999); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
}

func TestUpdateCandidate(t *testing.T) {
	db := newTestDB(t)
	s := newAdminService(db)
	ctx := context.Background()
	err := db.Create(&models.Candidate{ID: 11, Category: "cosplay", Name: "小明", Visible: true, Active: true}).Error
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	hidden := false
	points := int64(25)
	err = s.UpdateCandidate(ctx, 11, &CandidateUpdate{Visible: &hidden, PurchasedPoints: &points}, 900)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var c models.Candidate
	if err := db.First(&c, 11).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Visible || c.PurchasedPoints != 25 {
		t.Fatalf("candidate = %+v, want hidden with 25 purchased points", c)
	}
	// 改了购买分要走专门的审计类型
	if got := auditCount(t, db, 900, models.AuditUpdatePurchasePoints); got != 1 {
		t.Fatalf("UPDATE_PURCHASE_POINTS audit = %d, want 1", got)
	}

	negative := int64(-1)
	err = s.UpdateCandidate(ctx, 11, &CandidateUpdate{PurchasedPoints: &negative}, 900)
	if !errors.Is(err, ErrInvalidBalance) {
		t.Fatalf("err = %v, want ErrInvalidBalance", err)
	}

	if err := s.UpdateCandidate(ctx, 404, &CandidateUpdate{Visible: &hidden}, 900); !errors.Is(err, ErrCandidateInvalid) {
		t.Fatalf("err = %v, want ErrCandidateInvalid", err)
	}
}

func TestSetAttendance(t *testing.T) {
	db := newTestDB(t)
	s := newAdminService(db)
	ctx := context.Background()
	seedAccount(t, db, 1, 0, models.RoleUser)

	if err := s.SetAttendance(ctx, 1, "2026-01-17", true, 900); err != nil {
		t.Fatalf("set attendance: %v", err)
	}
	// 后台可以改回未到场，签到接口做不到
	if err := s.SetAttendance(ctx, 1, "2026-01-17", false, 900); err != nil {
		t.Fatalf("unset attendance: %v", err)
	}

	var account models.Account
	if err := db.Where("user_id = ?", 1).First(&account).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if checked, _ := account.Attendance["2026-01-17"].(bool); checked {
		t.Fatal("attendance should be reset to false")
	}
	if got := auditCount(t, db, 1, models.AuditCheckin); got != 2 {
		t.Fatalf("CHECKIN audit = %d, want 2", got)
	}
}

func TestSetPodiumMode(t *testing.T) {
	db := newTestDB(t)
	s := newAdminService(db)
	ctx := context.Background()

	if err := s.SetPodiumMode(ctx, "reveal", 900); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	mode, err := dao.NewSetting(db).Get(ctx, models.SettingPodiumMode)
	if err != nil {
		t.Fatalf("get setting: %v", err)
	}
	if mode != "reveal" {
		t.Fatalf("mode = %q, want reveal", mode)
	}
	if got := auditCount(t, db, 900, models.AuditChangePodiumMode); got != 1 {
		t.Fatalf("CHANGE_PODIUM_MODE audit = %d, want 1", got)
	}
}

func TestToggleAnnouncement(t *testing.T) {
	db := newTestDB(t)
	s := newAdminService(db)
	ctx := context.Background()

	visible, err := s.ToggleAnnouncement(ctx, 900)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !visible {
		t.Fatal("first toggle should turn announcement on")
	}

	visible, err = s.ToggleAnnouncement(ctx, 900)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if visible {
		t.Fatal("second toggle should turn announcement off")
	}
	if got := auditCount(t, db, 900, models.AuditToggleAnnouncement); got != 2 {
		t.Fatalf("TOGGLE_ANNOUNCEMENT audit = %d, want 2", got)
	}
}
