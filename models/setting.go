package models

import "time"

// 站点开关键名
const (
	SettingPodiumMode   = "podium_mode"  // 结果页展示模式
	SettingAnnouncement = "announcement" // 公告是否可见
)

type Setting struct {
	Key       string    `gorm:"primaryKey;column:key;size:32"`
	Value     string    `gorm:"column:value;size:255"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
