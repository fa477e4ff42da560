package service

import (
	"Carnival/dao"
	"Carnival/models"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newVoteService(db *gorm.DB) *VoteService {
	return &VoteService{
		Config:       newTestConfig(),
		DB:           db,
		AccountDAO:   dao.NewAccount(db),
		VoteDAO:      dao.NewVote(db),
		CandidateDAO: dao.NewCandidate(db),
		CategoryDAO:  dao.NewCategory(db),
		AuditDAO:     dao.NewAudit(db),
	}
}

// seedVoting 开放中的 cosplay 分类，两名候选者，user 1 持有 rights 张票
func seedVoting(t *testing.T, db *gorm.DB, rights int64) {
	t.Helper()
	mustCreate := func(value any) {
		t.Helper()
		if err := db.Create(value).Error; err != nil {
			t.Fatalf("seed %T: %v", value, err)
		}
	}
	mustCreate(&models.VoteCategory{ID: "cosplay", Open: true, SessionID: "session-1"})
	mustCreate(&models.Candidate{ID: 11, Category: "cosplay", SessionID: "session-1", Name: "小明", Visible: true, Active: true})
	mustCreate(&models.Candidate{ID: 12, Category: "cosplay", SessionID: "session-1", Name: "小红", Visible: true, Active: true})
	seedAccount(t, db, 1, 0, models.RoleUser)
	if rights > 0 {
		mustCreate(&models.VoteRight{UserID: 1, Category: "cosplay", Rights: rights})
	}
}

func candidateVotes(t *testing.T, db *gorm.DB, id uint64) int64 {
	t.Helper()
	var c models.Candidate
	if err := db.First(&c, id).Error; err != nil {
		t.Fatalf("load candidate %d: %v", id, err)
	}
	return c.Votes
}

func rightsOf(t *testing.T, db *gorm.DB, userID uint64, category string) int64 {
	t.Helper()
	rights, err := dao.NewAccount(db).GetRights(context.Background(), userID, category)
	if err != nil {
		t.Fatalf("get rights: %v", err)
	}
	return rights
}

func TestCastVote(t *testing.T) {
	db := newTestDB(t)
	s := newVoteService(db)
	seedVoting(t, db, 1)

	if err := s.CastVote(context.Background(), 1, "cosplay", 11); err != nil {
		t.Fatalf("cast: %v", err)
	}
	if got := candidateVotes(t, db, 11); got != 1 {
		t.Fatalf("votes = %d, want 1", got)
	}
	if got := rightsOf(t, db, 1, "cosplay"); got != 0 {
		t.Fatalf("rights = %d, want 0 after consuming", got)
	}
	if got := auditCount(t, db, 1, models.AuditVoteCast); got != 1 {
		t.Fatalf("VOTE_CAST audit = %d, want 1", got)
	}
}

func TestCastVote_NoRights(t *testing.T) {
	db := newTestDB(t)
	s := newVoteService(db)
	seedVoting(t, db, 0)

	err := s.CastVote(context.Background(), 1, "cosplay", 11)
	if !errors.Is(err, ErrNoVoteRights) {
		t.Fatalf("err = %v, want ErrNoVoteRights", err)
	}
	if got := candidateVotes(t, db, 11); got != 0 {
		t.Fatalf("votes = %d, want 0", got)
	}
}

// 同场次第二票整体回滚，候选者票数不动，已扣的投票券退回
func TestCastVote_Duplicate(t *testing.T) {
	db := newTestDB(t)
	s := newVoteService(db)
	seedVoting(t, db, 2)
	ctx := context.Background()

	if err := s.CastVote(ctx, 1, "cosplay", 11); err != nil {
		t.Fatalf("first cast: %v", err)
	}
	err := s.CastVote(ctx, 1, "cosplay", 12)
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("err = %v, want ErrAlreadyVoted", err)
	}
	if got := candidateVotes(t, db, 12); got != 0 {
		t.Fatalf("candidate 12 votes = %d, want 0", got)
	}
	if got := rightsOf(t, db, 1, "cosplay"); got != 1 {
		t.Fatalf("rights = %d, want 1 (refunded by rollback)", got)
	}
	if got := auditCount(t, db, 1, models.AuditVoteCast); got != 1 {
		t.Fatalf("VOTE_CAST audit = %d, want 1", got)
	}
}

func TestCastVote_Closed(t *testing.T) {
	db := newTestDB(t)
	s := newVoteService(db)
	seedVoting(t, db, 1)
	if err := db.Model(&models.VoteCategory{}).Where("id = ?", "cosplay").Update("open", false).Error; err != nil {
		t.Fatalf("close category: %v", err)
	}

	err := s.CastVote(context.Background(), 1, "cosplay", 11)
	if !errors.Is(err, ErrCategoryClosed) {
		t.Fatalf("err = %v, want ErrCategoryClosed", err)
	}
}

func TestCastVote_InvalidCandidate(t *testing.T) {
	db := newTestDB(t)
	s := newVoteService(db)
	seedVoting(t, db, 1)
	// 其他分类的候选者
	if err := db.Create(&models.Candidate{ID: 21, Category: "band", Name: "乐队", Visible: true, Active: true}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := s.CastVote(context.Background(), 1, "cosplay", 21); !errors.Is(err, ErrCandidateInvalid) {
		t.Fatalf("err = %v, want ErrCandidateInvalid", err)
	}
	if err := s.CastVote(context.Background(), 1, "cosplay", 404); !errors.Is(err, ErrCandidateInvalid) {
		t.Fatalf("err = %v, want ErrCandidateInvalid", err)
	}
}

// 同一用户并发投同一分类：记录主键只放一条过，其余整体回滚
func TestCastVote_Concurrent(t *testing.T) {
	db := newTestDB(t)
	s := newVoteService(db)
	seedVoting(t, db, 5)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeed   int
		duplicate int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			err := s.CastVote(context.Background(), 1, "cosplay", 11)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeed++
			case errors.Is(err, ErrAlreadyVoted):
				duplicate++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeed != 1 || duplicate != workers-1 {
		t.Fatalf("succeed = %d duplicate = %d, want 1/%d", succeed, duplicate, workers-1)
	}
	if got := candidateVotes(t, db, 11); got != 1 {
		t.Fatalf("votes = %d, want 1", got)
	}
	if got := rightsOf(t, db, 1, "cosplay"); got != 4 {
		t.Fatalf("rights = %d, want 4 (only the winner consumed)", got)
	}

	var records int64
	if err := db.Model(&models.VoteRecord{}).Count(&records).Error; err != nil {
		t.Fatalf("count records: %v", err)
	}
	if records != 1 {
		t.Fatalf("vote records = %d, want 1", records)
	}
}

// 冗余计数被改坏后，重算以 vote_records 为准收敛，重复执行结果不变
func TestSyncVoteCounts(t *testing.T) {
	db := newTestDB(t)
	s := newVoteService(db)
	seedVoting(t, db, 1)
	ctx := context.Background()

	if err := s.CastVote(ctx, 1, "cosplay", 11); err != nil {
		t.Fatalf("cast: %v", err)
	}
	if err := db.Model(&models.Candidate{}).Where("id = ?", 11).Update("votes", 99).Error; err != nil {
		t.Fatalf("corrupt votes: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.SyncVoteCounts(ctx, "cosplay"); err != nil {
			t.Fatalf("sync #%d: %v", i, err)
		}
		if got := candidateVotes(t, db, 11); got != 1 {
			t.Fatalf("votes = %d after sync #%d, want 1", got, i)
		}
		if got := candidateVotes(t, db, 12); got != 0 {
			t.Fatalf("candidate 12 votes = %d, want 0", got)
		}
	}
}

// 开场发免费票：全员各一张；同场次重放不会多发
func TestToggleCategory_GrantFreeVotes(t *testing.T) {
	db := newTestDB(t)
	s := newVoteService(db)
	ctx := context.Background()

	if err := db.Create(&models.VoteCategory{ID: "band", Open: false}).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	for userID := uint64(1); userID <= 3; userID++ {
		seedAccount(t, db, userID, 0, models.RoleUser)
	}

	state, err := s.ToggleCategory(ctx, "band", 900)
	if err != nil {
		t.Fatalf("toggle open: %v", err)
	}
	if !state.Open || state.SessionID == "" {
		t.Fatalf("state = %+v, want open with session", state)
	}

	for userID := uint64(1); userID <= 3; userID++ {
		if got := rightsOf(t, db, userID, "band"); got != 1 {
			t.Fatalf("user %d rights = %d, want 1", userID, got)
		}
	}

	// 重放同场次发放，流水主键挡住重复
	if err := s.GrantFreeVotes(ctx, "band", state.SessionID); err != nil {
		t.Fatalf("replay grant: %v", err)
	}
	for userID := uint64(1); userID <= 3; userID++ {
		if got := rightsOf(t, db, userID, "band"); got != 1 {
			t.Fatalf("user %d rights = %d after replay, want 1", userID, got)
		}
		if got := auditCount(t, db, userID, models.AuditGrantFreeVote); got != 1 {
			t.Fatalf("user %d GRANT_FREE_VOTE audit = %d, want 1", userID, got)
		}
	}

	// 关场
	state, err = s.ToggleCategory(ctx, "band", 900)
	if err != nil {
		t.Fatalf("toggle close: %v", err)
	}
	if state.Open {
		t.Fatal("category should be closed")
	}
}

// 开关翻转带状态守卫：两个并发开场只有一个能命中行，
// 输家的场次和免费票发放全部回滚，不会出现被覆盖的幽灵场次
func TestCategoryToggleGuard(t *testing.T) {
	db := newTestDB(t)
	d := dao.NewCategory(db)
	if err := db.Create(&models.VoteCategory{ID: "band", Open: true, SessionID: "session-1"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	// 已开放的分类再开：0 行，场次ID不被覆盖
	rows, err := d.Open(db, "band", "session-2", time.Now())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if rows != 0 {
		t.Fatalf("open on open category hit %d rows, want 0", rows)
	}
	var cat models.VoteCategory
	if err := db.First(&cat, "id = ?", "band").Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.SessionID != "session-1" {
		t.Fatalf("session = %q, want session-1 untouched", cat.SessionID)
	}

	rows, err = d.Close(db, "band", time.Now())
	if err != nil || rows != 1 {
		t.Fatalf("close = %d rows, err %v, want 1 row", rows, err)
	}
	rows, err = d.Close(db, "band", time.Now())
	if err != nil || rows != 0 {
		t.Fatalf("close on closed category = %d rows, err %v, want 0 rows", rows, err)
	}
}

// 再次开场换新场次，上一场的投票记录不再挡新一轮投票
func TestReopenAllowsNewVote(t *testing.T) {
	db := newTestDB(t)
	s := newVoteService(db)
	seedVoting(t, db, 5)
	ctx := context.Background()

	if err := s.CastVote(ctx, 1, "cosplay", 11); err != nil {
		t.Fatalf("cast: %v", err)
	}
	if _, err := s.ToggleCategory(ctx, "cosplay", 900); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := s.ToggleCategory(ctx, "cosplay", 900); err != nil {
		t.Fatalf("reopen: %v", err)
	}

	if err := s.CastVote(ctx, 1, "cosplay", 12); err != nil {
		t.Fatalf("vote in new session: %v", err)
	}
}

func TestGetRanking(t *testing.T) {
	db := newTestDB(t)
	s := newVoteService(db)
	seedVoting(t, db, 1)

	// 小红 3 票 + 购买 10 分，小明 5 票，购买分计入总分
	if err := db.Model(&models.Candidate{}).Where("id = ?", 11).Update("votes", 5).Error; err != nil {
		t.Fatalf("set votes: %v", err)
	}
	err := db.Model(&models.Candidate{}).Where("id = ?", 12).
		Updates(map[string]any{"votes": 3, "purchased_points": 10}).Error
	if err != nil {
		t.Fatalf("set votes: %v", err)
	}

	ranking, err := s.GetRanking(context.Background(), "cosplay")
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if len(ranking.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(ranking.Items))
	}
	first := ranking.Items[0]
	if first.Name != "小红" || first.Score != 13 || first.Rank != 1 {
		t.Fatalf("first = %+v, want 小红 score 13", first)
	}

	// 隐藏的候选者不进排名
	if err := db.Model(&models.Candidate{}).Where("id = ?", 12).Update("visible", false).Error; err != nil {
		t.Fatalf("hide: %v", err)
	}
	ranking, err = s.GetRanking(context.Background(), "cosplay")
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if len(ranking.Items) != 1 || ranking.Items[0].Name != "小明" {
		t.Fatalf("items = %+v, want only 小明", ranking.Items)
	}
}
