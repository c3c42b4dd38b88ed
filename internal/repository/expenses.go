package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func (r *Repository) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (company_id, site_id, author_id, title, content, amount, expense_date, status, attachment_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		expense.CompanyID,
		expense.SiteID,
		expense.AuthorID,
		expense.Title,
		expense.Content,
		expense.Amount,
		expense.ExpenseDate,
		expense.Status,
		expense.AttachmentURL,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&expense.ID, &expense.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetExpenseByID(ctx context.Context, companyID int64, id int64) (*domain.Expense, error) {
	query := `
		SELECT company_id, site_id, author_id, title, content, amount, expense_date, status, approved_by, approval_date, reject_reason, attachment_url, created_at
		FROM expenses
		WHERE id = $1 AND company_id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	expense := &domain.Expense{
		ID: id,
	}

	dst := []any{
		&expense.CompanyID,
		&expense.SiteID,
		&expense.AuthorID,
		&expense.Title,
		&expense.Content,
		&expense.Amount,
		&expense.ExpenseDate,
		&expense.Status,
		&expense.ApprovedBy,
		&expense.ApprovalDate,
		&expense.RejectReason,
		&expense.AttachmentURL,
		&expense.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id, companyID).Scan(dst...); err != nil {
		return nil, err
	}

	return expense, nil
}

// DecideExpense 는 대기중 행에만 승인/반려 결과를 적용한다. 조건이 맞는
// 행이 없으면 sql.ErrNoRows 를 반환한다.
func (r *Repository) DecideExpense(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET
			status = $1,
			approved_by = $2,
			approval_date = $3,
			reject_reason = $4
		WHERE id = $5 AND company_id = $6 AND status = $7
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		expense.Status,
		expense.ApprovedBy,
		expense.ApprovalDate,
		expense.RejectReason,
		expense.ID,
		expense.CompanyID,
		domain.ExpenseStatusPending,
	}

	var id int64
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) ListExpenses(ctx context.Context, companyID int64, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	query := `
		SELECT
			e.id,
			e.company_id,
			e.site_id,
			e.author_id,
			e.title,
			e.content,
			e.amount,
			e.expense_date,
			e.status,
			e.approved_by,
			e.approval_date,
			e.reject_reason,
			e.attachment_url,
			e.created_at,
			s.name,
			a.name
		FROM expenses e
		JOIN sites s ON e.site_id = s.id
		JOIN authors a ON e.author_id = a.id
		WHERE e.company_id = $1
	`

	args := []any{companyID}
	if filter.SiteID != nil {
		args = append(args, *filter.SiteID)
		query += fmt.Sprintf(" AND e.site_id = $%d", len(args))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		query += fmt.Sprintf(" AND e.author_id = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND e.expense_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND e.expense_date <= $%d", len(args))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += fmt.Sprintf(" AND e.status IN (%s)", strings.Join(placeholders, ", "))
	}

	query += " ORDER BY e.expense_date DESC, e.id DESC"

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*domain.Expense{}
	for rows.Next() {
		var expense domain.Expense
		dst := []any{
			&expense.ID,
			&expense.CompanyID,
			&expense.SiteID,
			&expense.AuthorID,
			&expense.Title,
			&expense.Content,
			&expense.Amount,
			&expense.ExpenseDate,
			&expense.Status,
			&expense.ApprovedBy,
			&expense.ApprovalDate,
			&expense.RejectReason,
			&expense.AttachmentURL,
			&expense.CreatedAt,
			&expense.SiteName,
			&expense.AuthorName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		expenses = append(expenses, &expense)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}
