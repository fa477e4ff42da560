package types

// SpinResult 单次抽奖结果
type SpinResult struct {
	Prize      string `json:"prize"`
	Cost       int64  `json:"cost"`
	Balance    int64  `json:"balance"`               // 扣费后余额
	TicketCode string `json:"ticket_code,omitempty"` // 中实物奖时的兑换券码
}

// SpinRecord 抽奖历史一条
type SpinRecord struct {
	ID        uint64 `json:"id"`
	Prize     string `json:"prize"`
	Cost      int64  `json:"cost"`
	CreatedAt string `json:"created_at"`
}
