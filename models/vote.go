package models

import "time"

// VoteRecord 投票记录
// (user_id, category, session_id) 是联合主键，主键冲突即重复投票，
// 不做先查后插，冲突本身就是并发守卫
type VoteRecord struct {
	UserID        uint64    `gorm:"primaryKey;column:user_id"`
	Category      string    `gorm:"primaryKey;column:category;size:32"`
	SessionID     string    `gorm:"primaryKey;column:session_id;size:64"`
	CandidateID   uint64    `gorm:"column:candidate_id;index:idx_candidate_id"`
	CandidateName string    `gorm:"column:candidate_name;size:64"` // 投票时的名称快照
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VoteRecord) TableName() string {
	return "vote_records"
}

// Candidate 候选者
// votes 是冗余计数，真实票数以 vote_records 为准，可随时重算
type Candidate struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	Category        string    `gorm:"column:category;size:32;index:idx_category"`
	SessionID       string    `gorm:"column:session_id;size:64"` // 登记时所属场次
	Name            string    `gorm:"column:name;size:64"`
	DisplayOrder    int       `gorm:"column:display_order;default:0"`
	Votes           int64     `gorm:"column:votes;default:0"`
	Visible         bool      `gorm:"column:visible;default:true"`
	Active          bool      `gorm:"column:active;default:true"` // 是否计入排名
	PurchasedPoints int64     `gorm:"column:purchased_points;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// VoteCategory 投票分类及其当前场次
type VoteCategory struct {
	ID        string     `gorm:"primaryKey;column:id;size:32"`
	Open      bool       `gorm:"column:open;default:false"`
	SessionID string     `gorm:"column:session_id;size:64"`
	OpenedAt  *time.Time `gorm:"column:opened_at"`
	ClosedAt  *time.Time `gorm:"column:closed_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (VoteCategory) TableName() string {
	return "vote_categories"
}

// VoteRightGrant 免费票发放流水
// 联合主键保证同一场次对同一用户只发一次，重放开场操作不会重复发券
type VoteRightGrant struct {
	UserID    uint64    `gorm:"primaryKey;column:user_id"`
	Category  string    `gorm:"primaryKey;column:category;size:32"`
	SessionID string    `gorm:"primaryKey;column:session_id;size:64"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VoteRightGrant) TableName() string {
	return "vote_right_grants"
}
