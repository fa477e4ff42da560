package types

// ClaimTicketReq 核销请求，code 来自扫码
type ClaimTicketReq struct {
	Code string `json:"code" binding:"required"`
}

// TicketInfo 兑换券详情
type TicketInfo struct {
	Code      string `json:"code"`
	Prize     string `json:"prize"`
	UserID    uint64 `json:"user_id"`
	Claimed   bool   `json:"claimed"`
	ClaimedBy uint64 `json:"claimed_by,omitempty"`
	ClaimedAt string `json:"claimed_at,omitempty"`
}
