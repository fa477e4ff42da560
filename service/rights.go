package service

import (
	"Carnival/config"
	"Carnival/dao"
	"Carnival/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type RightsService struct {
	Config     *config.Config
	DB         *gorm.DB
	AccountDAO *dao.Account
	AuditDAO   *dao.Audit
}

var _ IRightsService = (*RightsService)(nil)

type IRightsService interface {
	Purchase(ctx context.Context, userID uint64, category string, quantity int64) (int64, error)
}

// Purchase 积分换投票券，单价 × 数量一次扣清
// 扣费、加券、审计在同一个事务里，余额不足整体回滚
func (s *RightsService) Purchase(ctx context.Context, userID uint64, category string, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	cost := quantity * s.Config.Game.VoteRightPrice

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.AccountDAO.Get(tx, userID); err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		rows, err := s.AccountDAO.Debit(tx, userID, cost)
		if err != nil {
			return fmt.Errorf("扣减积分失败: %w", err)
		}
		if rows == 0 {
			return ErrInsufficientFunds
		}
		if err := s.AccountDAO.AddRights(tx, userID, category, quantity); err != nil {
			return fmt.Errorf("增加投票券失败: %w", err)
		}

		// 审计前后值从扣减后的行反推，并发购买的流水才能首尾相接
		account, err := s.AccountDAO.Get(tx, userID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:          models.AuditVoteRightsPurchase,
			UserID:        userID,
			ActorID:       userID,
			BalanceBefore: account.Balance + cost,
			BalanceAfter:  account.Balance,
			Description:   fmt.Sprintf("购买投票券 %s x%d，消耗 %d", category, quantity, cost),
		})
	})
	if err != nil {
		return 0, err
	}

	return s.AccountDAO.GetRights(ctx, userID, category)
}
