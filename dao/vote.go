package dao

import (
	"Carnival/models"
	"context"

	"gorm.io/gorm"
)

type Vote struct {
	Repo[models.VoteRecord]
}

func NewVote(db *gorm.DB) *Vote {
	return &Vote{
		Repo: NewRepo[models.VoteRecord](db),
	}
}

// CreateRecord 落投票记录
// 联合主键冲突时返回 gorm.ErrDuplicatedKey，调用方据此判定重复投票
func (v *Vote) CreateRecord(tx *gorm.DB, record *models.VoteRecord) error {
	return tx.Create(record).Error
}

func (v *Vote) HasVoted(ctx context.Context, userID uint64, category, sessionID string) (bool, error) {
	return v.IsExist(ctx, "user_id = ? AND category = ? AND session_id = ?", userID, category, sessionID)
}

// CountByCandidate 某候选者的真实票数，重算用
func (v *Vote) CountByCandidate(tx *gorm.DB, category string, candidateID uint64) (int64, error) {
	var count int64
	err := tx.Model(&models.VoteRecord{}).
		Where("category = ? AND candidate_id = ?", category, candidateID).
		Count(&count).Error
	return count, err
}

func (v *Vote) ListByUser(ctx context.Context, userID uint64) ([]models.VoteRecord, error) {
	return v.FindAllByWhere(ctx, "user_id = ?", userID)
}
