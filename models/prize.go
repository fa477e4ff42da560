package models

import "time"

// PrizeTicket 实物兑换券
// claimed 只允许 false -> true 翻转一次，核销走条件更新
type PrizeTicket struct {
	ID        uint64     `gorm:"primaryKey;column:id"`
	Code      string     `gorm:"column:code;uniqueIndex;size:32"` // 二维码内容
	UserID    uint64     `gorm:"column:user_id;index"`
	Prize     string     `gorm:"column:prize;size:64"`
	Claimed   bool       `gorm:"column:claimed;default:false"`
	ClaimedBy uint64     `gorm:"column:claimed_by"`
	ClaimedAt *time.Time `gorm:"column:claimed_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (PrizeTicket) TableName() string {
	return "prize_tickets"
}

// GachaRecord 用户抽奖历史
type GachaRecord struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	UserID    uint64    `gorm:"column:user_id;index"`
	Prize     string    `gorm:"column:prize;size:64"`
	Cost      int64     `gorm:"column:cost"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (GachaRecord) TableName() string {
	return "gacha_records"
}
