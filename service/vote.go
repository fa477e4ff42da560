package service

import (
	"Carnival/config"
	"Carnival/dao"
	"Carnival/dao/cache"
	"Carnival/models"
	"Carnival/pkg/live"
	"Carnival/pkg/log"
	"Carnival/types"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type VoteService struct {
	Config       *config.Config
	DB           *gorm.DB
	AccountDAO   *dao.Account
	VoteDAO      *dao.Vote
	CandidateDAO *dao.Candidate
	CategoryDAO  *dao.Category
	AuditDAO     *dao.Audit
	Ranking      *cache.RankingStorage
	Hub          *live.Hub
}

var _ IVoteService = (*VoteService)(nil)

type IVoteService interface {
	CastVote(ctx context.Context, userID uint64, category string, candidateID uint64) error
	ToggleCategory(ctx context.Context, category string, actorID uint64) (*types.CategoryState, error)
	SyncVoteCounts(ctx context.Context, category string) error
	GetRanking(ctx context.Context, category string) (*types.RankingResp, error)
	ListCategories(ctx context.Context) ([]types.CategoryState, error)
}

// CastVote 投票状态机 NotVoted -> Voted
// 顺序：场次开放检查 -> 扣一张投票券 -> 落投票记录 -> 候选者计数 +1 -> 审计
// 投票记录的联合主键是唯一的并发守卫，冲突即重复投票，整个事务回滚，
// 已扣的投票券也会一并退回
func (s *VoteService) CastVote(ctx context.Context, userID uint64, category string, candidateID uint64) error {
	cat, err := s.CategoryDAO.Get(ctx, category)
	if err != nil {
		return fmt.Errorf("投票分类不存在: %w", err)
	}
	if !cat.Open {
		return ErrCategoryClosed
	}

	candidate, err := s.CandidateDAO.GetByID(ctx, candidateID)
	if err != nil || candidate.Category != category || !candidate.Visible || !candidate.Active {
		return ErrCandidateInvalid
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.AccountDAO.ConsumeRight(tx, userID, category)
		if err != nil {
			return fmt.Errorf("扣减投票券失败: %w", err)
		}
		if rows == 0 {
			return ErrNoVoteRights
		}

		record := &models.VoteRecord{
			UserID:        userID,
			Category:      category,
			SessionID:     cat.SessionID,
			CandidateID:   candidateID,
			CandidateName: candidate.Name,
		}
		if err := s.VoteDAO.CreateRecord(tx, record); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyVoted
			}
			return fmt.Errorf("写投票记录失败: %w", err)
		}

		if err := s.CandidateDAO.IncrVotes(tx, candidateID); err != nil {
			return fmt.Errorf("更新候选者票数失败: %w", err)
		}

		account, err := s.AccountDAO.Get(tx, userID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:          models.AuditVoteCast,
			UserID:        userID,
			ActorID:       userID,
			BalanceBefore: account.Balance,
			BalanceAfter:  account.Balance,
			Description:   fmt.Sprintf("投票 %s -> %s", category, candidate.Name),
		})
	})
	if err != nil {
		return err
	}

	s.afterRankingChange(ctx, category)
	return nil
}

// ToggleCategory 开关投票场次
// 关场：票数重算后落定，再用于排名；开场：换新场次ID并给全员发一张免费票
func (s *VoteService) ToggleCategory(ctx context.Context, category string, actorID uint64) (*types.CategoryState, error) {
	cat, err := s.CategoryDAO.Get(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("投票分类不存在: %w", err)
	}

	now := time.Now()
	if cat.Open {
		err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			rows, err := s.CategoryDAO.Close(tx, category, now)
			if err != nil {
				return fmt.Errorf("关闭分类失败: %w", err)
			}
			if rows == 0 {
				return ErrToggleConflict
			}
			if err := s.recount(tx, category); err != nil {
				return err
			}
			return s.AuditDAO.Append(tx, &models.AuditLog{
				Kind:        models.AuditAdminAdjust,
				UserID:      actorID,
				ActorID:     actorID,
				Description: fmt.Sprintf("关闭投票分类 %s", category),
			})
		})
		if err != nil {
			return nil, err
		}
		cat.Open = false
		cat.ClosedAt = &now
	} else {
		sessionID := uuid.NewString()
		err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			rows, err := s.CategoryDAO.Open(tx, category, sessionID, now)
			if err != nil {
				return fmt.Errorf("开放分类失败: %w", err)
			}
			if rows == 0 {
				return ErrToggleConflict
			}
			return s.AuditDAO.Append(tx, &models.AuditLog{
				Kind:        models.AuditAdminAdjust,
				UserID:      actorID,
				ActorID:     actorID,
				Description: fmt.Sprintf("开放投票分类 %s 场次 %s", category, sessionID),
			})
		})
		if err != nil {
			return nil, err
		}
		cat.Open = true
		cat.SessionID = sessionID
		cat.OpenedAt = &now

		// 开场后全员发一张免费票，失败只记日志，可以安全重放
		if err := s.GrantFreeVotes(ctx, category, sessionID); err != nil {
			log.L.Error("grant free votes failed", zap.String("category", category), zap.Error(err))
		}
	}

	s.afterRankingChange(ctx, category)
	return &types.CategoryState{
		ID:        cat.ID,
		Open:      cat.Open,
		SessionID: cat.SessionID,
	}, nil
}

// GrantFreeVotes 按场次给全员各发一张免费票
// 发放流水的联合主键挡住重复发放，重放整个操作不会多发
func (s *VoteService) GrantFreeVotes(ctx context.Context, category, sessionID string) error {
	userIDs, err := s.AccountDAO.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("查询用户列表失败: %w", err)
	}

	p := pool.New().WithErrors().WithMaxGoroutines(8)
	for _, userID := range userIDs {
		p.Go(func() error {
			return s.grantFreeVote(ctx, userID, category, sessionID)
		})
	}
	return p.Wait()
}

func (s *VoteService) grantFreeVote(ctx context.Context, userID uint64, category, sessionID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		grant := &models.VoteRightGrant{
			UserID:    userID,
			Category:  category,
			SessionID: sessionID,
		}
		if err := s.CategoryDAO.CreateGrant(tx, grant); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// 该场次已发过，幂等跳过
				return nil
			}
			return fmt.Errorf("写发放流水失败: %w", err)
		}
		if err := s.AccountDAO.AddRights(tx, userID, category, 1); err != nil {
			return fmt.Errorf("发放投票券失败: %w", err)
		}
		account, err := s.AccountDAO.Get(tx, userID)
		if err != nil {
			return fmt.Errorf("积分账户不存在: %w", err)
		}
		return s.AuditDAO.Append(tx, &models.AuditLog{
			Kind:          models.AuditGrantFreeVote,
			UserID:        userID,
			ActorID:       userID,
			BalanceBefore: account.Balance,
			BalanceAfter:  account.Balance,
			Description:   fmt.Sprintf("场次 %s 发放免费投票券 %s", sessionID, category),
		})
	})
}

// SyncVoteCounts 把冗余计数和 vote_records 对齐，可重复执行
func (s *VoteService) SyncVoteCounts(ctx context.Context, category string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.recount(tx, category)
	})
	if err != nil {
		return err
	}
	s.afterRankingChange(ctx, category)
	return nil
}

// recount 逐候选者按真实记录重算，收敛到唯一结果
func (s *VoteService) recount(tx *gorm.DB, category string) error {
	candidates, err := s.CandidateDAO.ListAllByCategory(tx, category)
	if err != nil {
		return fmt.Errorf("查询候选者失败: %w", err)
	}
	for _, candidate := range candidates {
		count, err := s.VoteDAO.CountByCandidate(tx, category, candidate.ID)
		if err != nil {
			return fmt.Errorf("统计候选者票数失败: %w", err)
		}
		if err := s.CandidateDAO.SetVotes(tx, candidate.ID, count); err != nil {
			return fmt.Errorf("回写候选者票数失败: %w", err)
		}
	}
	return nil
}

func (s *VoteService) GetRanking(ctx context.Context, category string) (*types.RankingResp, error) {
	var cached types.RankingResp
	if s.Ranking != nil {
		if hit, err := s.Ranking.Get(ctx, category, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	candidates, err := s.CandidateDAO.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("查询排名失败: %w", err)
	}

	resp := &types.RankingResp{
		Category: category,
		Items:    make([]types.RankingItem, 0, len(candidates)),
	}
	for i, c := range candidates {
		resp.Items = append(resp.Items, types.RankingItem{
			Rank:            i + 1,
			CandidateID:     c.ID,
			Name:            c.Name,
			Votes:           c.Votes,
			PurchasedPoints: c.PurchasedPoints,
			Score:           c.Votes + c.PurchasedPoints,
		})
	}

	if s.Ranking != nil {
		if err := s.Ranking.Set(ctx, category, resp); err != nil {
			log.L.Info("cache ranking failed", zap.Error(err))
		}
	}
	return resp, nil
}

func (s *VoteService) ListCategories(ctx context.Context) ([]types.CategoryState, error) {
	cats, err := s.CategoryDAO.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询投票分类失败: %w", err)
	}
	resp := make([]types.CategoryState, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, types.CategoryState{
			ID:        c.ID,
			Open:      c.Open,
			SessionID: c.SessionID,
		})
	}
	return resp, nil
}

// afterRankingChange 缓存失效 + 大屏推送，失败不影响主流程
func (s *VoteService) afterRankingChange(ctx context.Context, category string) {
	if s.Ranking != nil {
		if err := s.Ranking.Invalidate(ctx, category); err != nil {
			log.L.Info("invalidate ranking cache failed", zap.Error(err))
		}
	}
	if s.Hub != nil && s.Hub.Count() > 0 {
		if ranking, err := s.GetRanking(ctx, category); err == nil {
			s.Hub.Broadcast("ranking", ranking)
		}
	}
}
