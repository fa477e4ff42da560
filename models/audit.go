package models

import "time"

// 审计类型，已落库的枚举值不允许改
const (
	AuditPointGrant           = "POINT_GRANT"
	AuditPointDeduct          = "POINT_DEDUCT"
	AuditVoteCast             = "VOTE_CAST"
	AuditVoteRightsPurchase   = "VOTE_RIGHTS_PURCHASE"
	AuditPrizeClaim           = "PRIZE_CLAIM"
	AuditGameSpin             = "GAME_SPIN"
	AuditAdminAdjust          = "ADMIN_ADJUST"
	AuditCheckin              = "CHECKIN"
	AuditGrantFreeVote        = "GRANT_FREE_VOTE"
	AuditUpdatePurchasePoints = "UPDATE_PURCHASE_POINTS"
	AuditChangePodiumMode     = "CHANGE_PODIUM_MODE"
	AuditToggleAnnouncement   = "TOGGLE_ANNOUNCEMENT"
)

// AuditLog 操作审计流水，只追加，不更新不删除
// 每一笔成功的状态变更都必须在同一个事务里写入一条
type AuditLog struct {
	ID            uint64    `gorm:"primaryKey;column:id"`
	Kind          string    `gorm:"column:kind;size:32;index:idx_kind"`
	UserID        uint64    `gorm:"column:user_id;index"` // 被操作的用户
	ActorID       uint64    `gorm:"column:actor_id"`                  // 操作者，本人或工作人员
	BalanceBefore int64     `gorm:"column:balance_before"`
	BalanceAfter  int64     `gorm:"column:balance_after"`
	Description   string    `gorm:"column:description;size:255"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
