package dao

import (
	"Carnival/models"
	"Carnival/pkg/snowflake"
	"context"

	"gorm.io/gorm"
)

type Audit struct {
	Repo[models.AuditLog]
}

func NewAudit(db *gorm.DB) *Audit {
	return &Audit{
		Repo: NewRepo[models.AuditLog](db),
	}
}

// Append 追加一条审计流水，必须和业务写发生在同一个事务里
// 审计写失败会让整个事务回滚，不存在有变更没流水的情况
func (a *Audit) Append(tx *gorm.DB, entry *models.AuditLog) error {
	if entry.ID == 0 {
		entry.ID = uint64(snowflake.GenID())
	}
	return tx.Create(entry).Error
}

// ListRecords 游标分页，给后台和导出用
func (a *Audit) ListRecords(ctx context.Context, kind string, userID uint64, cursor int64, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	query := a.Db.WithContext(ctx).Model(&models.AuditLog{})

	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}

	err := query.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// CountByUser 某用户的审计条数，测试和对账用
func (a *Audit) CountByUser(ctx context.Context, userID uint64, kind string) (int64, error) {
	var count int64
	query := a.Db.WithContext(ctx).Model(&models.AuditLog{}).Where("user_id = ?", userID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Count(&count).Error
	return count, err
}
