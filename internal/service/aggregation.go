package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

const (
	ReportKindWorkLog = "worklog"
	ReportKindExpense = "expense"
	ReportKindAll     = "all"

	PaymentStateAll    = "all"
	PaymentStatePaid   = "paid"
	PaymentStateUnpaid = "unpaid"
)

type ReportFilter struct {
	Kind         string
	StartDate    *time.Time
	EndDate      *time.Time
	SiteID       *int64
	AuthorID     *int64
	WorkerID     *int64
	PaymentState string
}

type Summary struct {
	TotalAmount   int64 `json:"totalAmount"`
	TotalCount    int   `json:"totalCount"`
	WorkLogAmount int64 `json:"workLogAmount"`
	WorkLogCount  int   `json:"workLogCount"`
	ExpenseAmount int64 `json:"expenseAmount"`
	ExpenseCount  int   `json:"expenseCount"`
	PaidAmount    int64 `json:"paidAmount"`
	UnpaidAmount  int64 `json:"unpaidAmount"`
}

// ReportEntry 는 근무일지와 지출결의서를 한 목록으로 합친 평탄화된 행이다.
type ReportEntry struct {
	Kind        string    `json:"kind"`
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	SiteID      int64     `json:"siteId"`
	SiteName    string    `json:"siteName,omitempty"`
	AuthorID    int64     `json:"authorId"`
	AuthorName  string    `json:"authorName,omitempty"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Paid        bool      `json:"paid"`
}

// WorkLogGroup 은 화면 표시용으로 (근무일, 현장, 작성자) 기준으로 묶은
// 근무일지 묶음이다. 구성원 중 하나라도 지급완료면 묶음 전체를 지급완료로
// 표시한다. 내부적으로 혼합 상태일 수 있지만 부분 지급으로는 표시하지 않는다.
type WorkLogGroup struct {
	WorkDate     time.Time `json:"workDate"`
	SiteID       int64     `json:"siteId"`
	SiteName     string    `json:"siteName,omitempty"`
	AuthorID     int64     `json:"authorId"`
	AuthorName   string    `json:"authorName,omitempty"`
	TotalEffort  float64   `json:"totalEffort"`
	TotalAmount  int64     `json:"totalAmount"`
	Count        int       `json:"count"`
	Descriptions []string  `json:"descriptions"`
	Attachments  []string  `json:"attachments"`
	Paid         bool      `json:"paid"`
}

type Report struct {
	Summary  Summary           `json:"summary"`
	WorkLogs []*domain.WorkLog `json:"workLogs"`
	Expenses []*domain.Expense `json:"expenses"`
	AllData  []ReportEntry     `json:"allData"`
	Groups   []WorkLogGroup    `json:"workLogGroups"`
}

type AggregationService struct {
	workLogs WorkLogStore
	expenses ExpenseStore
}

func NewAggregationService(workLogs WorkLogStore, expenses ExpenseStore) *AggregationService {
	return &AggregationService{
		workLogs: workLogs,
		expenses: expenses,
	}
}

// Report 는 필터에 맞는 근무일지와 지출결의서를 조회해 합산 요약,
// 날짜 내림차순 통합 목록, 근무일지 묶음을 만든다. 요약의 네 분할은
// 어떤 필터에서도 paid+unpaid == total, workLog+expense == total 을 만족한다.
func (s *AggregationService) Report(ctx context.Context, companyID int64, filter ReportFilter) (*Report, error) {
	kind := filter.Kind
	if kind == "" {
		kind = ReportKindAll
	}
	if kind != ReportKindWorkLog && kind != ReportKindExpense && kind != ReportKindAll {
		return nil, fmt.Errorf("%w: 지원하지 않는 조회 구분입니다", domain.ErrInvalidArgument)
	}

	state := filter.PaymentState
	if state == "" {
		state = PaymentStateAll
	}
	if state != PaymentStateAll && state != PaymentStatePaid && state != PaymentStateUnpaid {
		return nil, fmt.Errorf("%w: 지원하지 않는 지급 상태입니다", domain.ErrInvalidArgument)
	}

	report := &Report{
		WorkLogs: []*domain.WorkLog{},
		Expenses: []*domain.Expense{},
	}

	if kind == ReportKindWorkLog || kind == ReportKindAll {
		logs, err := s.workLogs.ListWorkLogs(ctx, companyID, workLogFilterFrom(filter, state))
		if err != nil {
			return nil, err
		}
		report.WorkLogs = logs
	}

	// 근로자 필터가 걸려 있으면 지출결의서는 조회하지 않는다.
	// 지출결의서에는 근로자가 없다.
	if (kind == ReportKindExpense || kind == ReportKindAll) && filter.WorkerID == nil {
		expenses, err := s.expenses.ListExpenses(ctx, companyID, expenseFilterFrom(filter, state))
		if err != nil {
			return nil, err
		}
		report.Expenses = expenses
	}

	report.Summary = buildSummary(report.WorkLogs, report.Expenses)
	report.AllData = mergeEntries(report.WorkLogs, report.Expenses)
	report.Groups = groupWorkLogs(report.WorkLogs)

	return report, nil
}

func workLogFilterFrom(filter ReportFilter, state string) domain.WorkLogFilter {
	out := domain.WorkLogFilter{
		SiteID:    filter.SiteID,
		WorkerID:  filter.WorkerID,
		AuthorID:  filter.AuthorID,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	}

	switch state {
	case PaymentStatePaid:
		status := domain.PaymentStatusPaid
		out.Status = &status
	case PaymentStateUnpaid:
		status := domain.PaymentStatusUnpaid
		out.Status = &status
	}

	return out
}

func expenseFilterFrom(filter ReportFilter, state string) domain.ExpenseFilter {
	out := domain.ExpenseFilter{
		SiteID:    filter.SiteID,
		AuthorID:  filter.AuthorID,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	}

	switch state {
	case PaymentStatePaid:
		out.Statuses = []domain.ExpenseStatus{domain.ExpenseStatusApproved}
	case PaymentStateUnpaid:
		// 반려된 지출결의서도 돈이 나가지 않았으므로 미지급으로 센다
		out.Statuses = []domain.ExpenseStatus{domain.ExpenseStatusPending, domain.ExpenseStatusRejected}
	}

	return out
}

func buildSummary(logs []*domain.WorkLog, expenses []*domain.Expense) Summary {
	summary := Summary{}

	for _, log := range logs {
		amount := log.Amount()
		summary.WorkLogAmount += amount
		summary.WorkLogCount++
		if log.PaymentStatus == domain.PaymentStatusPaid {
			summary.PaidAmount += amount
		} else {
			summary.UnpaidAmount += amount
		}
	}

	for _, expense := range expenses {
		summary.ExpenseAmount += expense.Amount
		summary.ExpenseCount++
		if expense.Status == domain.ExpenseStatusApproved {
			summary.PaidAmount += expense.Amount
		} else {
			summary.UnpaidAmount += expense.Amount
		}
	}

	summary.TotalAmount = summary.WorkLogAmount + summary.ExpenseAmount
	summary.TotalCount = summary.WorkLogCount + summary.ExpenseCount

	return summary
}

func mergeEntries(logs []*domain.WorkLog, expenses []*domain.Expense) []ReportEntry {
	entries := make([]ReportEntry, 0, len(logs)+len(expenses))

	for _, log := range logs {
		entries = append(entries, ReportEntry{
			Kind:        ReportKindWorkLog,
			ID:          log.ID,
			Date:        log.WorkDate,
			SiteID:      log.SiteID,
			SiteName:    log.SiteName,
			AuthorID:    log.AuthorID,
			AuthorName:  log.AuthorName,
			Description: log.Description,
			Amount:      log.Amount(),
			Paid:        log.PaymentStatus == domain.PaymentStatusPaid,
		})
	}

	for _, expense := range expenses {
		entries = append(entries, ReportEntry{
			Kind:        ReportKindExpense,
			ID:          expense.ID,
			Date:        expense.ExpenseDate,
			SiteID:      expense.SiteID,
			SiteName:    expense.SiteName,
			AuthorID:    expense.AuthorID,
			AuthorName:  expense.AuthorName,
			Description: expense.Title,
			Amount:      expense.Amount,
			Paid:        expense.Status == domain.ExpenseStatusApproved,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].ID > entries[j].ID
	})

	return entries
}

type groupKey struct {
	date     string
	siteID   int64
	authorID int64
}

func groupWorkLogs(logs []*domain.WorkLog) []WorkLogGroup {
	groupsMap := make(map[groupKey]*WorkLogGroup)

	for _, log := range logs {
		key := groupKey{
			date:     log.WorkDate.Format("2006-01-02"),
			siteID:   log.SiteID,
			authorID: log.AuthorID,
		}

		group, exists := groupsMap[key]
		if !exists {
			group = &WorkLogGroup{
				WorkDate:     log.WorkDate,
				SiteID:       log.SiteID,
				SiteName:     log.SiteName,
				AuthorID:     log.AuthorID,
				AuthorName:   log.AuthorName,
				Descriptions: []string{},
				Attachments:  []string{},
			}
			groupsMap[key] = group
		}

		group.TotalEffort += log.Effort
		group.TotalAmount += log.Amount()
		group.Count++
		group.Descriptions = appendDistinct(group.Descriptions, log.Description)
		if log.AttachmentURL != nil {
			group.Attachments = appendDistinct(group.Attachments, *log.AttachmentURL)
		}
		if log.PaymentStatus == domain.PaymentStatusPaid {
			group.Paid = true
		}
	}

	groups := make([]WorkLogGroup, 0, len(groupsMap))
	for _, group := range groupsMap {
		groups = append(groups, *group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if !groups[i].WorkDate.Equal(groups[j].WorkDate) {
			return groups[i].WorkDate.After(groups[j].WorkDate)
		}
		if groups[i].SiteID != groups[j].SiteID {
			return groups[i].SiteID < groups[j].SiteID
		}
		return groups[i].AuthorID < groups[j].AuthorID
	})

	return groups
}

func appendDistinct(values []string, value string) []string {
	if value == "" {
		return values
	}
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
