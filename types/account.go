package types

// AccountDashboard 我的页面总览
type AccountDashboard struct {
	UserID     uint64           `json:"user_id"`
	Balance    int64            `json:"balance"`    // 当前可用积分余额
	Role       string           `json:"role"`       // 角色
	Attendance map[string]bool  `json:"attendance"` // 日期 -> 是否到场
	Rights     map[string]int64 `json:"rights"`     // 分类 -> 剩余投票券
}

// CheckinReq 工作人员扫码签到
type CheckinReq struct {
	UserID uint64 `json:"user_id" binding:"required"` // 扫出来的用户ID
	Day    string `json:"day" binding:"required"`     // 如 day1 / day2
}

// GrantPointsReq 手动发积分
type GrantPointsReq struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"required"`
}

// AuditRecord 审计流水一条
type AuditRecord struct {
	ID            uint64 `json:"id"`
	Kind          string `json:"kind"`
	UserID        uint64 `json:"user_id"`
	ActorID       uint64 `json:"actor_id"`
	BalanceBefore int64  `json:"balance_before"`
	BalanceAfter  int64  `json:"balance_after"`
	Description   string `json:"description"`
	CreatedAt     string `json:"created_at"`
}

// ListAudit 审计流水列表包装
type ListAudit struct {
	Records    []AuditRecord `json:"records"`
	NextCursor int64         `json:"next_cursor"` // 游标：用于下一页请求
	HasMore    bool          `json:"has_more"`
}
