package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func newExpenseFixture() (*memStore, *ExpenseService, *domain.Site) {
	store := newMemStore()
	site := store.addSite(&domain.Site{CompanyID: 1, ManagerID: 10, Name: "강남 현장", Status: domain.SiteStatusActive})
	return store, NewExpenseService(store, store), site
}

func TestCreateExpense(t *testing.T) {
	_, svc, site := newExpenseFixture()

	expense, err := svc.Create(context.Background(), 1, 20, CreateExpenseInput{
		SiteID:      site.ID,
		Title:       "자재 구입",
		Content:     "못, 철사",
		Amount:      50000,
		ExpenseDate: date(2025, 1, 10),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if expense.Status != domain.ExpenseStatusPending {
		t.Fatalf("최초 상태는 pending 이어야 한다: %s", expense.Status)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	store, svc, site := newExpenseFixture()

	base := CreateExpenseInput{
		SiteID: site.ID, Title: "자재 구입", Content: "내용", Amount: 50000, ExpenseDate: date(2025, 1, 10),
	}

	invalid := base
	invalid.Amount = 0
	if _, err := svc.Create(context.Background(), 1, 20, invalid); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("금액 0은 거부해야 한다: %v", err)
	}

	invalid = base
	invalid.Amount = -100
	if _, err := svc.Create(context.Background(), 1, 20, invalid); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("음수 금액은 거부해야 한다: %v", err)
	}

	invalid = base
	invalid.Title = " "
	if _, err := svc.Create(context.Background(), 1, 20, invalid); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("빈 제목은 거부해야 한다: %v", err)
	}

	otherSite := store.addSite(&domain.Site{CompanyID: 2, Name: "다른 회사 현장"})
	invalid = base
	invalid.SiteID = otherSite.ID
	if _, err := svc.Create(context.Background(), 1, 20, invalid); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("다른 회사 현장은 NotFound 여야 한다: %v", err)
	}
}

func TestApproveExpense(t *testing.T) {
	store, svc, site := newExpenseFixture()

	expense := store.addExpense(&domain.Expense{
		CompanyID: 1, SiteID: site.ID, AuthorID: 20,
		Title: "자재 구입", Amount: 50000, ExpenseDate: date(2025, 1, 10),
		Status: domain.ExpenseStatusPending,
	})

	approved, err := svc.Approve(context.Background(), 1, 10, expense.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != domain.ExpenseStatusApproved {
		t.Fatalf("승인 상태가 아니다: %s", approved.Status)
	}
	if approved.ApprovedBy == nil || *approved.ApprovedBy != 10 {
		t.Fatalf("승인자가 잘못되었다: %v", approved.ApprovedBy)
	}
	if approved.ApprovalDate == nil {
		t.Fatal("승인 일시가 기록되지 않았다")
	}

	// 승인은 종결 상태라 다시 처리할 수 없다
	if _, err := svc.Approve(context.Background(), 1, 10, expense.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("재승인은 Conflict 여야 한다: %v", err)
	}
	if _, err := svc.Reject(context.Background(), 1, 10, expense.ID, "사유"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("승인 후 반려는 Conflict 여야 한다: %v", err)
	}
}

func TestRejectExpense(t *testing.T) {
	store, svc, site := newExpenseFixture()

	expense := store.addExpense(&domain.Expense{
		CompanyID: 1, SiteID: site.ID, AuthorID: 20,
		Title: "자재 구입", Amount: 50000, ExpenseDate: date(2025, 1, 10),
		Status: domain.ExpenseStatusPending,
	})

	if _, err := svc.Reject(context.Background(), 1, 10, expense.ID, "  "); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("빈 반려 사유는 거부해야 한다: %v", err)
	}

	rejected, err := svc.Reject(context.Background(), 1, 10, expense.ID, "영수증 누락")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != domain.ExpenseStatusRejected {
		t.Fatalf("반려 상태가 아니다: %s", rejected.Status)
	}
	if rejected.RejectReason == nil || *rejected.RejectReason != "영수증 누락" {
		t.Fatalf("반려 사유가 기록되지 않았다: %v", rejected.RejectReason)
	}

	// 반려도 종결 상태다
	if _, err := svc.Approve(context.Background(), 1, 10, expense.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("반려 후 승인은 Conflict 여야 한다: %v", err)
	}
}

func TestDecideExpenseTenantIsolation(t *testing.T) {
	store, svc, site := newExpenseFixture()

	expense := store.addExpense(&domain.Expense{
		CompanyID: 1, SiteID: site.ID, AuthorID: 20,
		Title: "자재 구입", Amount: 50000, ExpenseDate: date(2025, 1, 10),
		Status: domain.ExpenseStatusPending,
	})

	if _, err := svc.Approve(context.Background(), 2, 10, expense.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("다른 회사의 승인은 NotFound 여야 한다: %v", err)
	}
	if store.expenses[expense.ID].Status != domain.ExpenseStatusPending {
		t.Fatal("다른 회사의 승인 시도가 상태를 바꿨다")
	}
}
