package service

import (
	"Carnival/config"
	"Carnival/dao"
	"Carnival/models"
	"Carnival/types"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type AccountService struct {
	Config     *config.Config
	DB         *gorm.DB
	AccountDAO *dao.Account
	AuditDAO   *dao.Audit
}

var _ IAccountService = (*AccountService)(nil)

type IAccountService interface {
	GetOrCreate(ctx context.Context, userID uint64) (*models.Account, error)
	Dashboard(ctx context.Context, userID uint64) (*types.AccountDashboard, error)
	Grant(ctx context.Context, userID uint64, amount int64, reason string, actorID uint64) error
	Deduct(ctx context.Context, userID uint64, amount int64, reason string, actorID uint64) error
	Checkin(ctx context.Context, userID uint64, day string, actorID uint64) error
	ListAudit(ctx context.Context, kind string, userID uint64, cursor int64, limit int) (*types.ListAudit, error)
}

func (s *AccountService) GetOrCreate(ctx context.Context, userID uint64) (*models.Account, error) {
	return s.AccountDAO.GetOrCreate(ctx, userID)
}

func (s *AccountService) Dashboard(ctx context.Context, userID uint64) (*types.AccountDashboard, error) {
	account, err := s.AccountDAO.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询积分账户失败: %w", err)
	}

	rights, err := s.AccountDAO.ListRights(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询投票券失败: %w", err)
	}

	resp := &types.AccountDashboard{
		UserID:     account.UserID,
		Balance:    account.Balance,
		Role:       account.Role,
		Attendance: map[string]bool{},
		Rights:     map[string]int64{},
	}
	for day, v := range account.Attendance {
		if checked, ok := v.(bool); ok {
			resp.Attendance[day] = checked
		}
	}
	for _, r := range rights {
		resp.Rights[r.Category] = r.Rights
	}
	return resp, nil
}

// Grant 加积分，POINT_GRANT
// 审计前后值从更新后的行反推，并发加减下各笔流水首尾相接
func (s *AccountService) Grant(ctx context.Context, userID uint64, amount int64, reason string, actorID uint64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.AccountDAO.Credit(tx, userID, amount)
		if err != nil {
			return fmt.Errorf("更新积分余额失败: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("积分账户不存在: %w", gorm.ErrRecordNotFound)
		}
		account, err := s.AccountDAO.Get(tx, userID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:          models.AuditPointGrant,
			UserID:        userID,
			ActorID:       actorID,
			BalanceBefore: account.Balance - amount,
			BalanceAfter:  account.Balance,
			Description:   reason,
		})
	})
}

// Deduct 扣积分，POINT_DEDUCT
// 条件更新没命中行即余额不足，并发下两笔同额扣减只有一笔能赢
// 审计前后值从扣减后的行反推，事务前的快照读在并发下会记错转移
func (s *AccountService) Deduct(ctx context.Context, userID uint64, amount int64, reason string, actorID uint64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.AccountDAO.Get(tx, userID); err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		rows, err := s.AccountDAO.Debit(tx, userID, amount)
		if err != nil {
			return fmt.Errorf("更新积分余额失败: %w", err)
		}
		if rows == 0 {
			return ErrInsufficientFunds
		}
		account, err := s.AccountDAO.Get(tx, userID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:          models.AuditPointDeduct,
			UserID:        userID,
			ActorID:       actorID,
			BalanceBefore: account.Balance + amount,
			BalanceAfter:  account.Balance,
			Description:   reason,
		})
	})
}

// Checkin 工作人员扫码签到：记到场 + 发签到积分，CHECKIN
// 同一天重复扫码直接拒绝，防止重复发分
func (s *AccountService) Checkin(ctx context.Context, userID uint64, day string, actorID uint64) error {
	points := s.Config.Game.CheckinPoints
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := s.AccountDAO.Get(tx, userID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		if v, ok := account.Attendance[day]; ok {
			if checked, _ := v.(bool); checked {
				return ErrAlreadyChecked
			}
		}
		if err := s.AccountDAO.SetAttendance(tx, userID, day, true); err != nil {
			return fmt.Errorf("更新到场记录失败: %w", err)
		}
		if _, err := s.AccountDAO.Credit(tx, userID, points); err != nil {
			return fmt.Errorf("发放签到积分失败: %w", err)
		}
		account, err = s.AccountDAO.Get(tx, userID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:          models.AuditCheckin,
			UserID:        userID,
			ActorID:       actorID,
			BalanceBefore: account.Balance - points,
			BalanceAfter:  account.Balance,
			Description:   fmt.Sprintf("签到 %s", day),
		})
	})
}

func (s *AccountService) ListAudit(ctx context.Context, kind string, userID uint64, cursor int64, limit int) (*types.ListAudit, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	logs, err := s.AuditDAO.ListRecords(ctx, kind, userID, cursor, limit+1)
	if err != nil {
		return nil, fmt.Errorf("查询审计流水失败: %w", err)
	}

	resp := &types.ListAudit{
		Records: make([]types.AuditRecord, 0),
		HasMore: false,
	}
	if len(logs) > limit {
		resp.HasMore = true
		logs = logs[:limit]
	}
	for _, l := range logs {
		resp.Records = append(resp.Records, types.AuditRecord{
			ID:            l.ID,
			Kind:          l.Kind,
			UserID:        l.UserID,
			ActorID:       l.ActorID,
			BalanceBefore: l.BalanceBefore,
			BalanceAfter:  l.BalanceAfter,
			Description:   l.Description,
			CreatedAt:     l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	if len(resp.Records) > 0 {
		resp.NextCursor = int64(resp.Records[len(resp.Records)-1].ID)
	}
	return resp, nil
}
