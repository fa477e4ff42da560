package config

// GachaPrize 奖品配置项，Weight 为 0 的奖品永远不会被抽中
type GachaPrize struct {
	Label  string `json:"label" yaml:"label"`
	Weight int64  `json:"weight" yaml:"weight"`
	Ticket bool   `json:"ticket" yaml:"ticket"` // 是否发放实物兑换券
}

// Game 玩法相关配置：抽奖消耗、投票券单价、签到奖励、奖品表
type Game struct {
	SpinCost       int64        `json:"spin_cost" yaml:"spin_cost"`
	VoteRightPrice int64        `json:"vote_right_price" yaml:"vote_right_price"`
	CheckinPoints  int64        `json:"checkin_points" yaml:"checkin_points"`
	Prizes         []GachaPrize `json:"prizes" yaml:"prizes"`
}
