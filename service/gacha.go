package service

import (
	"Carnival/config"
	"Carnival/dao"
	"Carnival/models"
	"Carnival/pkg/snowflake"
	"Carnival/pkg/utils"
	"Carnival/types"
	"context"
	"errors"
	"fmt"
	"math/rand"

	"gorm.io/gorm"
)

type GachaService struct {
	Config     *config.Config
	DB         *gorm.DB
	AccountDAO *dao.Account
	TicketDAO  *dao.Ticket
	AuditDAO   *dao.Audit
}

var _ IGachaService = (*GachaService)(nil)

type IGachaService interface {
	Spin(ctx context.Context, userID uint64) (*types.SpinResult, error)
	History(ctx context.Context, userID uint64, limit int) ([]types.SpinRecord, error)
}

// drawPrize 累积权重抽取
// roll 取值 [0, totalWeight)，权重为 0 的奖品不占区间，永远抽不中
func drawPrize(prizes []config.GachaPrize, roll int64) (config.GachaPrize, bool) {
	var cumulative int64
	for _, p := range prizes {
		if p.Weight <= 0 {
			continue
		}
		cumulative += p.Weight
		if roll < cumulative {
			return p, true
		}
	}
	return config.GachaPrize{}, false
}

func totalWeight(prizes []config.GachaPrize) int64 {
	var total int64
	for _, p := range prizes {
		if p.Weight > 0 {
			total += p.Weight
		}
	}
	return total
}

// Spin 抽一次奖：扣费、抽取、写历史、发券、记审计，全部在一个事务里
// 扣费失败直接回滚，不会产生任何奖品和流水
func (s *GachaService) Spin(ctx context.Context, userID uint64) (*types.SpinResult, error) {
	cost := s.Config.Game.SpinCost
	prizes := s.Config.Game.Prizes
	total := totalWeight(prizes)
	if total <= 0 {
		return nil, errors.New("奖品表未配置")
	}

	var result types.SpinResult
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

		// 审计前后值从扣减后的行反推，并发抽奖的流水才能首尾相接
		account, err := s.AccountDAO.Get(tx, userID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}

		prize, ok := drawPrize(prizes, rand.Int63n(total))
		if !ok {
			return errors.New("抽取奖品失败")
		}

		record := &models.GachaRecord{
			ID:     uint64(snowflake.GenID()),
			UserID: userID,
			Prize:  prize.Label,
			Cost:   cost,
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("写抽奖历史失败: %w", err)
		}

		result = types.SpinResult{
			Prize:   prize.Label,
			Cost:    cost,
			Balance: account.Balance,
		}

		// 中了实物奖就顺手发一张兑换券
		if prize.Ticket {
			id := snowflake.GenID()
			ticket := &models.PrizeTicket{
				ID:     uint64(id),
				Code:   utils.GenHashID(s.Config.Jwt.Secret, id),
				UserID: userID,
				Prize:  prize.Label,
			}
			if err := s.TicketDAO.Issue(tx, ticket); err != nil {
				return fmt.Errorf("发放兑换券失败: %w", err)
			}
			result.TicketCode = ticket.Code
		}

		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:          models.AuditGameSpin,
			UserID:        userID,
			ActorID:       userID,
			BalanceBefore: account.Balance + cost,
			BalanceAfter:  account.Balance,
			Description:   fmt.Sprintf("抽奖消耗 %d，获得 %s", cost, prize.Label),
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *GachaService) History(ctx context.Context, userID uint64, limit int) ([]types.SpinRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var records []models.GachaRecord
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询抽奖历史失败: %w", err)
	}

	resp := make([]types.SpinRecord, 0, len(records))
	for _, r := range records {
		resp = append(resp, types.SpinRecord{
			ID:        r.ID,
			Prize:     r.Prize,
			Cost:      r.Cost,
			CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp, nil
}
