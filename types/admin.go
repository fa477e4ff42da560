package types

// AdjustPointsReq 后台直接设置余额
type AdjustPointsReq struct {
	UserID     uint64 `json:"user_id" binding:"required"`
	NewBalance int64  `json:"new_balance" binding:"gte=0"`
	Reason     string `json:"reason" binding:"required"`
}

// SetAttendanceReq 后台修改到场记录
type SetAttendanceReq struct {
	UserID  uint64 `json:"user_id" binding:"required"`
	Day     string `json:"day" binding:"required"`
	Checked bool   `json:"checked"`
}

// SetRoleReq 后台修改角色
type SetRoleReq struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// UpdateCandidateReq 后台编辑候选者，指针字段不传不改
type UpdateCandidateReq struct {
	Visible         *bool  `json:"visible"`
	Active          *bool  `json:"active"`
	PurchasedPoints *int64 `json:"purchased_points"`
}

// PodiumModeReq 结果页展示模式
type PodiumModeReq struct {
	Mode string `json:"mode" binding:"required"`
}
