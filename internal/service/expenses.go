package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

type ExpenseService struct {
	store ExpenseStore
	sites SiteStore
}

func NewExpenseService(store ExpenseStore, sites SiteStore) *ExpenseService {
	return &ExpenseService{
		store: store,
		sites: sites,
	}
}

type CreateExpenseInput struct {
	SiteID        int64
	Title         string
	Content       string
	Amount        int64
	ExpenseDate   time.Time
	AttachmentURL *string
}

func (s *ExpenseService) Create(ctx context.Context, companyID int64, authorID int64, in CreateExpenseInput) (*domain.Expense, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: 금액은 0보다 커야 합니다", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: 제목을 입력해 주세요", domain.ErrInvalidArgument)
	}
	if in.ExpenseDate.IsZero() {
		return nil, fmt.Errorf("%w: 지출일을 입력해 주세요", domain.ErrInvalidArgument)
	}

	if _, err := s.sites.GetSiteByID(ctx, companyID, in.SiteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: 현장이 존재하지 않습니다", domain.ErrNotFound)
		}
		return nil, err
	}

	expense := &domain.Expense{
		CompanyID:     companyID,
		SiteID:        in.SiteID,
		AuthorID:      authorID,
		Title:         in.Title,
		Content:       in.Content,
		Amount:        in.Amount,
		ExpenseDate:   in.ExpenseDate,
		Status:        domain.ExpenseStatusPending,
		AttachmentURL: in.AttachmentURL,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

func (s *ExpenseService) Approve(ctx context.Context, companyID int64, approverID int64, id int64) (*domain.Expense, error) {
	return s.decide(ctx, companyID, approverID, id, domain.ExpenseStatusApproved, nil)
}

func (s *ExpenseService) Reject(ctx context.Context, companyID int64, approverID int64, id int64, reason string) (*domain.Expense, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: 반려 사유를 입력해 주세요", domain.ErrInvalidArgument)
	}
	return s.decide(ctx, companyID, approverID, id, domain.ExpenseStatusRejected, &reason)
}

func (s *ExpenseService) List(ctx context.Context, companyID int64, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	return s.store.ListExpenses(ctx, companyID, filter)
}

// decide 는 승인과 반려의 공통 전이이다. pending 에서만 전이할 수 있고
// 전이는 되돌릴 수 없다.
func (s *ExpenseService) decide(ctx context.Context, companyID int64, approverID int64, id int64, status domain.ExpenseStatus, reason *string) (*domain.Expense, error) {
	expense, err := s.store.GetExpenseByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: 지출결의서가 존재하지 않습니다", domain.ErrNotFound)
		}
		return nil, err
	}

	if expense.Status != domain.ExpenseStatusPending {
		return nil, fmt.Errorf("%w: 이미 처리된 지출결의서입니다", domain.ErrConflict)
	}

	now := time.Now()
	expense.Status = status
	expense.ApprovedBy = &approverID
	expense.ApprovalDate = &now
	expense.RejectReason = reason

	if err := s.store.DecideExpense(ctx, expense); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// 조회와 갱신 사이에 다른 관리자가 먼저 처리한 경우
			return nil, fmt.Errorf("%w: 이미 처리된 지출결의서입니다", domain.ErrConflict)
		}
		return nil, err
	}

	return expense, nil
}
