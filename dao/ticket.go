package dao

import (
	"Carnival/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Ticket struct {
	Repo[models.PrizeTicket]
}

func NewTicket(db *gorm.DB) *Ticket {
	return &Ticket{
		Repo: NewRepo[models.PrizeTicket](db),
	}
}

func (t *Ticket) GetByCode(ctx context.Context, code string) (*models.PrizeTicket, error) {
	return t.FindByWhere(ctx, "code = ?", code)
}

func (t *Ticket) Issue(tx *gorm.DB, ticket *models.PrizeTicket) error {
	return tx.Create(ticket).Error
}

// Claim 核销兑换券，claimed = false 才会命中
// 两个工作人员同时扫码时只有一个能拿到 1 行，另一个拿 0 行
func (t *Ticket) Claim(tx *gorm.DB, id uint64, staffID uint64, at time.Time) (int64, error) {
	result := tx.Model(&models.PrizeTicket{}).
		Where("id = ? AND claimed = ?", id, false).
		Updates(map[string]any{
			"claimed":    true,
			"claimed_by": staffID,
			"claimed_at": at,
		})
	return result.RowsAffected, result.Error
}

func (t *Ticket) ListByUser(ctx context.Context, userID uint64) ([]models.PrizeTicket, error) {
	var items []models.PrizeTicket
	err := t.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&items).Error
	return items, err
}
