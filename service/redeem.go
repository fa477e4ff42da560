package service

import (
	"Carnival/dao"
	"Carnival/models"
	"Carnival/types"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type RedeemService struct {
	DB         *gorm.DB
	TicketDAO  *dao.Ticket
	AccountDAO *dao.Account
	AuditDAO   *dao.Audit
}

var _ IRedeemService = (*RedeemService)(nil)

type IRedeemService interface {
	Claim(ctx context.Context, code string, staffID uint64) (*types.TicketInfo, error)
	ListUserTickets(ctx context.Context, userID uint64) ([]types.TicketInfo, error)
}

// Claim 核销兑换券
// claimed 的条件更新就是 CAS，两个工作人员同时扫同一张券只有一个能成功
func (s *RedeemService) Claim(ctx context.Context, code string, staffID uint64) (*types.TicketInfo, error) {
	ticket, err := s.TicketDAO.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("查询兑换券失败: %w", err)
	}

	now := time.Now()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.TicketDAO.Claim(tx, ticket.ID, staffID, now)
		if err != nil {
			return fmt.Errorf("核销兑换券失败: %w", err)
		}
		if rows == 0 {
			return ErrAlreadyClaimed
		}
		account, err := s.AccountDAO.Get(tx, ticket.UserID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:          models.AuditPrizeClaim,
			UserID:        ticket.UserID,
			ActorID:       staffID,
			BalanceBefore: account.Balance,
			BalanceAfter:  account.Balance,
			Description:   fmt.Sprintf("核销兑换券 %s (%s)", ticket.Code, ticket.Prize),
		})
	})
	if err != nil {
		return nil, err
	}

	return &types.TicketInfo{
		Code:      ticket.Code,
		Prize:     ticket.Prize,
		UserID:    ticket.UserID,
		Claimed:   true,
		ClaimedBy: staffID,
		ClaimedAt: now.Format("2006-01-02 15:04:05"),
	}, nil
}

func (s *RedeemService) ListUserTickets(ctx context.Context, userID uint64) ([]types.TicketInfo, error) {
	tickets, err := s.TicketDAO.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询兑换券失败: %w", err)
	}
	resp := make([]types.TicketInfo, 0, len(tickets))
	for _, t := range tickets {
		info := types.TicketInfo{
			Code:      t.Code,
			Prize:     t.Prize,
			UserID:    t.UserID,
			Claimed:   t.Claimed,
			ClaimedBy: t.ClaimedBy,
		}
		if t.ClaimedAt != nil {
			info.ClaimedAt = t.ClaimedAt.Format("2006-01-02 15:04:05")
		}
		resp = append(resp, info)
	}
	return resp, nil
}
