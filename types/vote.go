package types

// CastVoteReq 投票请求
type CastVoteReq struct {
	Category    string `json:"category" binding:"required"`
	CandidateID uint64 `json:"candidate_id" binding:"required"`
}

// PurchaseRightsReq 购买投票券
type PurchaseRightsReq struct {
	Category string `json:"category" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

// CategoryState 分类开闭状态
type CategoryState struct {
	ID        string `json:"id"`
	Open      bool   `json:"open"`
	SessionID string `json:"session_id"`
}

// RankingItem 排名一行，得分 = 票数 + 购买分
type RankingItem struct {
	Rank            int    `json:"rank"`
	CandidateID     uint64 `json:"candidate_id"`
	Name            string `json:"name"`
	Votes           int64  `json:"votes"`
	PurchasedPoints int64  `json:"purchased_points"`
	Score           int64  `json:"score"`
}

type RankingResp struct {
	Category string        `json:"category"`
	Items    []RankingItem `json:"items"`
}
