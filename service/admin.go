package service

import (
	"Carnival/dao"
	"Carnival/dao/cache"
	"Carnival/models"
	"Carnival/pkg/live"
	"Carnival/pkg/log"
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AdminService struct {
	DB           *gorm.DB
	AccountDAO   *dao.Account
	CandidateDAO *dao.Candidate
	SettingDAO   *dao.Setting
	AuditDAO     *dao.Audit
	Ranking      *cache.RankingStorage
	Hub          *live.Hub
}

var _ IAdminService = (*AdminService)(nil)

type IAdminService interface {
	AdjustPoints(ctx context.Context, userID uint64, newBalance int64, reason string, actorID uint64) error
	SetAttendance(ctx context.Context, userID uint64, day string, checked bool, actorID uint64) error
	SetRole(ctx context.Context, userID uint64, role string, actorID uint64) error
	UpdateCandidate(ctx context.Context, candidateID uint64, req *CandidateUpdate, actorID uint64) error
	SetPodiumMode(ctx context.Context, mode string, actorID uint64) error
	ToggleAnnouncement(ctx context.Context, actorID uint64) (bool, error)
}

// CandidateUpdate 后台候选者编辑，nil 字段不动
type CandidateUpdate struct {
	Visible         *bool
	Active          *bool
	PurchasedPoints *int64
}

var validRoles = map[string]struct{}{
	models.RoleNone:       {},
	models.RoleUser:       {},
	models.RoleStaff:      {},
	models.RoleRegister:   {},
	models.RoleAdmin:      {},
	models.RoleSuperAdmin: {},
}

// AdjustPoints 后台直接改余额，前后值都进审计
func (s *AdminService) AdjustPoints(ctx context.Context, userID uint64, newBalance int64, reason string, actorID uint64) error {
	if newBalance < 0 {
		return ErrInvalidBalance
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := s.AccountDAO.Get(tx, userID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		if err := s.AccountDAO.SetBalance(tx, userID, newBalance); err != nil {
			return fmt.Errorf("更新余额失败: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:          models.AuditAdminAdjust,
			UserID:        userID,
			ActorID:       actorID,
			BalanceBefore: account.Balance,
			BalanceAfter:  newBalance,
			Description:   reason,
		})
	})
}

func (s *AdminService) SetAttendance(ctx context.Context, userID uint64, day string, checked bool, actorID uint64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := s.AccountDAO.Get(tx, userID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		if err := s.AccountDAO.SetAttendance(tx, userID, day, checked); err != nil {
			return fmt.Errorf("更新到场记录失败: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:          models.AuditCheckin,
			UserID:        userID,
			ActorID:       actorID,
			BalanceBefore: account.Balance,
			BalanceAfter:  account.Balance,
			Description:   fmt.Sprintf("后台修改到场 %s = %v", day, checked),
		})
	})
}

// SetRole 改角色
// superadmin 的授予和回收只允许 superadmin 操作，权限表在中间件里，
// 这里拿库里的角色再查一遍，中间件放行了也不信
func (s *AdminService) SetRole(ctx context.Context, userID uint64, role string, actorID uint64) error {
	if _, ok := validRoles[role]; !ok {
		return ErrInvalidRole
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := s.AccountDAO.Get(tx, userID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		if role == models.RoleSuperAdmin || target.Role == models.RoleSuperAdmin {
			actor, err := s.AccountDAO.Get(tx, actorID)
			if err != nil || actor.Role != models.RoleSuperAdmin {
				return ErrUnauthorized
			}
		}
		if err := s.AccountDAO.SetRole(tx, userID, role); err != nil {
			return fmt.Errorf("更新角色失败: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:          models.AuditAdminAdjust,
			UserID:        userID,
			ActorID:       actorID,
			BalanceBefore: target.Balance,
			BalanceAfter:  target.Balance,
			Description:   fmt.Sprintf("角色 %s -> %s", target.Role, role),
		})
	})
}

// UpdateCandidate 后台编辑候选者，改购买分走 UPDATE_PURCHASE_POINTS
func (s *AdminService) UpdateCandidate(ctx context.Context, candidateID uint64, req *CandidateUpdate, actorID uint64) error {
	candidate, err := s.CandidateDAO.GetByID(ctx, candidateID)
	if err != nil {
		return ErrCandidateInvalid
	}

	updates := map[string]any{}
	kind := models.AuditAdminAdjust
	desc := fmt.Sprintf("编辑候选者 %s", candidate.Name)
	if req.Visible != nil {
		updates["visible"] = *req.Visible
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.PurchasedPoints != nil {
		if *req.PurchasedPoints < 0 {
			return ErrInvalidBalance
		}
		updates["purchased_points"] = *req.PurchasedPoints
		kind = models.AuditUpdatePurchasePoints
		desc = fmt.Sprintf("候选者 %s 购买分 %d -> %d", candidate.Name, candidate.PurchasedPoints, *req.PurchasedPoints)
	}
	if len(updates) == 0 {
		return nil
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.CandidateDAO.Updates(tx, candidateID, updates); err != nil {
			return fmt.Errorf("更新候选者失败: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:        kind,
			UserID:      actorID,
			ActorID:     actorID,
			Description: desc,
		})
	})
	if err != nil {
		return err
	}

	s.invalidateRanking(ctx, candidate.Category)
	return nil
}

func (s *AdminService) SetPodiumMode(ctx context.Context, mode string, actorID uint64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.SettingDAO.Set(tx, models.SettingPodiumMode, mode); err != nil {
			return fmt.Errorf("更新展示模式失败: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:        models.AuditChangePodiumMode,
			UserID:      actorID,
			ActorID:     actorID,
			Description: fmt.Sprintf("展示模式切换为 %s", mode),
		})
	})
}

func (s *AdminService) ToggleAnnouncement(ctx context.Context, actorID uint64) (bool, error) {
	current, err := s.SettingDAO.Get(ctx, models.SettingAnnouncement)
	if err != nil {
		return false, fmt.Errorf("查询公告开关失败: %w", err)
	}
	next := "on"
	if current == "on" {
		next = "off"
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.SettingDAO.Set(tx, models.SettingAnnouncement, next); err != nil {
			return fmt.Errorf("更新公告开关失败: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:        models.AuditToggleAnnouncement,
			UserID:      actorID,
			ActorID:     actorID,
			Description: fmt.Sprintf("公告开关 %s", next),
		})
	})
	if err != nil {
		return false, err
	}

	if s.Hub != nil {
		s.Hub.Broadcast("announcement", map[string]any{"visible": next == "on"})
	}
	return next == "on", nil
}

func (s *AdminService) invalidateRanking(ctx context.Context, category string) {
	if s.Ranking == nil {
		return
	}
	if err := s.Ranking.Invalidate(ctx, category); err != nil {
		log.L.Info("invalidate ranking cache failed", zap.Error(err))
	}
}
