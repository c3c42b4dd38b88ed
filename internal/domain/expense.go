package domain

import "time"

type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusRejected ExpenseStatus = "rejected"
)

// Expense 는 pending 상태에서만 승인 또는 반려로 전이할 수 있고,
// 두 상태 모두 종결 상태이다.
type Expense struct {
	ID            int64         `json:"id"`
	CompanyID     int64         `json:"companyId"`
	SiteID        int64         `json:"siteId"`
	AuthorID      int64         `json:"authorId"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Amount        int64         `json:"amount"`
	ExpenseDate   time.Time     `json:"expenseDate"`
	Status        ExpenseStatus `json:"status"`
	ApprovedBy    *int64        `json:"approvedBy,omitempty"`
	ApprovalDate  *time.Time    `json:"approvalDate,omitempty"`
	RejectReason  *string       `json:"rejectReason,omitempty"`
	AttachmentURL *string       `json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`

	SiteName   string `json:"siteName,omitempty"`
	AuthorName string `json:"authorName,omitempty"`
}

type ExpenseFilter struct {
	SiteID    *int64
	AuthorID  *int64
	StartDate *time.Time
	EndDate   *time.Time
	Statuses  []ExpenseStatus
}
