package dao

import (
	"Carnival/models"
	"context"

	"gorm.io/gorm"
)

type Candidate struct {
	Repo[models.Candidate]
}

func NewCandidate(db *gorm.DB) *Candidate {
	return &Candidate{
		Repo: NewRepo[models.Candidate](db),
	}
}

func (c *Candidate) GetByID(ctx context.Context, id uint64) (*models.Candidate, error) {
	return c.FindByWhere(ctx, "id = ?", id)
}

// ListByCategory 排名用，只取可见且参与计分的候选者
func (c *Candidate) ListByCategory(ctx context.Context, category string) ([]models.Candidate, error) {
	var items []models.Candidate
	err := c.Db.WithContext(ctx).
		Where("category = ? AND visible = ? AND active = ?", category, true, true).
		Order("votes + purchased_points DESC, display_order ASC").
		Find(&items).Error
	return items, err
}

func (c *Candidate) ListAllByCategory(tx *gorm.DB, category string) ([]models.Candidate, error) {
	var items []models.Candidate
	err := tx.Where("category = ?", category).Find(&items).Error
	return items, err
}

// IncrVotes 冗余计数自增，真实值以 vote_records 重算为准
func (c *Candidate) IncrVotes(tx *gorm.DB, id uint64) error {
	return tx.Model(&models.Candidate{}).
		Where("id = ?", id).
		Update("votes", gorm.Expr("votes + ?", 1)).Error
}

// SetVotes 重算后回写
func (c *Candidate) SetVotes(tx *gorm.DB, id uint64, votes int64) error {
	return tx.Model(&models.Candidate{}).
		Where("id = ?", id).
		Update("votes", votes).Error
}

func (c *Candidate) Updates(tx *gorm.DB, id uint64, data map[string]any) error {
	return tx.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(data).Error
}
