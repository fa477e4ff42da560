package service

import (
	"Carnival/dao"
	"Carnival/models"
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"
)

func newRedeemService(db *gorm.DB) *RedeemService {
	return &RedeemService{
		DB:         db,
		TicketDAO:  dao.NewTicket(db),
		AccountDAO: dao.NewAccount(db),
		AuditDAO:   dao.NewAudit(db),
	}
}

func seedTicket(t *testing.T, db *gorm.DB, id uint64, code string, userID uint64) {
	t.Helper()
	err := db.Create(&models.PrizeTicket{ID: id, Code: code, UserID: userID, Prize: "公仔"}).Error
	if err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
}

func TestClaim(t *testing.T) {
	db := newTestDB(t)
	s := newRedeemService(db)
	ctx := context.Background()
	seedAccount(t, db, 1, 0, models.RoleUser)
	seedTicket(t, db, 1001, "TICKET-A", 1)

	info, err := s.Claim(ctx, "TICKET-A", 800)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if !info.Claimed || info.ClaimedBy != 800 || info.Prize != "公仔" {
		t.Fatalf("info = %+v, want claimed by 800", info)
	}
	if got := auditCount(t, db, 1, models.AuditPrizeClaim); got != 1 {
		t.Fatalf("PRIZE_CLAIM audit = %d, want 1", got)
	}

	// 只允许核销一次
	if _, err := s.Claim(ctx, "TICKET-A", 801); !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("err = %v, want ErrAlreadyClaimed", err)
	}
	if got := auditCount(t, db, 1, models.AuditPrizeClaim); got != 1 {
		t.Fatalf("audit = %d, want still 1", got)
	}
}

func TestClaim_NotFound(t *testing.T) {
	db := newTestDB(t)
	s := newRedeemService(db)

	if _, err := s.Claim(context.Background(), "NOPE", 800); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("err = %v, want ErrTicketNotFound", err)
	}
}

// 两个工作人员同时扫同一张券，条件更新只放一个过
func TestClaim_Concurrent(t *testing.T) {
	db := newTestDB(t)
	s := newRedeemService(db)
	seedAccount(t, db, 1, 0, models.RoleUser)
	seedTicket(t, db, 1001, "TICKET-A", 1)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		succeed int
		already int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		staffID := uint64(800 + i)
		go func() {
			defer wg.Done()
			_, err := s.Claim(context.Background(), "TICKET-A", staffID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeed++
			case errors.Is(err, ErrAlreadyClaimed):
				already++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeed != 1 || already != workers-1 {
		t.Fatalf("succeed = %d already = %d, want 1/%d", succeed, already, workers-1)
	}
	if got := auditCount(t, db, 1, models.AuditPrizeClaim); got != 1 {
		t.Fatalf("audit = %d, want 1", got)
	}
}

func TestListUserTickets(t *testing.T) {
	db := newTestDB(t)
	s := newRedeemService(db)
	ctx := context.Background()
	seedAccount(t, db, 1, 0, models.RoleUser)
	seedTicket(t, db, 1001, "TICKET-A", 1)
	seedTicket(t, db, 1002, "TICKET-B", 1)
	seedTicket(t, db, 1003, "TICKET-C", 2)

	if _, err := s.Claim(ctx, "TICKET-A", 800); err != nil {
		t.Fatalf("claim: %v", err)
	}

	tickets, err := s.ListUserTickets(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("tickets = %d, want 2", len(tickets))
	}
	claimed := 0
	for _, ticket := range tickets {
		if ticket.Claimed {
			claimed++
			if ticket.ClaimedAt == "" {
				t.Fatal("claimed ticket should carry claimed_at")
			}
		}
	}
	if claimed != 1 {
		t.Fatalf("claimed = %d, want 1", claimed)
	}
}
