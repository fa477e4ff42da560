package dao

import (
	"Carnival/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Category struct {
	Repo[models.VoteCategory]
}

func NewCategory(db *gorm.DB) *Category {
	return &Category{
		Repo: NewRepo[models.VoteCategory](db),
	}
}

func (c *Category) Get(ctx context.Context, id string) (*models.VoteCategory, error) {
	return c.FindByWhere(ctx, "id = ?", id)
}

func (c *Category) List(ctx context.Context) ([]models.VoteCategory, error) {
	var items []models.VoteCategory
	err := c.Db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

// Open 开场：换新场次ID，旧场次的投票记录不再挡新一轮投票
// open = false 才会命中，0 行说明已被并发开过
func (c *Category) Open(tx *gorm.DB, id string, sessionID string, at time.Time) (int64, error) {
	result := tx.Model(&models.VoteCategory{}).
		Where("id = ? AND open = ?", id, false).
		Updates(map[string]any{
			"open":       true,
			"session_id": sessionID,
			"opened_at":  at,
		})
	return result.RowsAffected, result.Error
}

// Close 关场，open = true 才会命中
func (c *Category) Close(tx *gorm.DB, id string, at time.Time) (int64, error) {
	result := tx.Model(&models.VoteCategory{}).
		Where("id = ? AND open = ?", id, true).
		Updates(map[string]any{
			"open":      false,
			"closed_at": at,
		})
	return result.RowsAffected, result.Error
}

// CreateGrant 免费票发放流水，主键冲突说明该场次已发过
func (c *Category) CreateGrant(tx *gorm.DB, grant *models.VoteRightGrant) error {
	return tx.Create(grant).Error
}
