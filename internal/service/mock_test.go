package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

// memStore 는 저장소 인터페이스의 메모리 구현이다. 실제 저장소와 같은 계약을
// 따른다: 행이 없거나 다른 회사 소속이면 sql.ErrNoRows 를 반환한다.
type memStore struct {
	nextID   int64
	workLogs map[int64]*domain.WorkLog
	expenses map[int64]*domain.Expense
	workers  map[int64]*domain.Worker
	sites    map[int64]*domain.Site
}

func newMemStore() *memStore {
	return &memStore{
		workLogs: make(map[int64]*domain.WorkLog),
		expenses: make(map[int64]*domain.Expense),
		workers:  make(map[int64]*domain.Worker),
		sites:    make(map[int64]*domain.Site),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addSite(site *domain.Site) *domain.Site {
	site.ID = m.id()
	m.sites[site.ID] = site
	return site
}

func (m *memStore) addWorker(worker *domain.Worker) *domain.Worker {
	worker.ID = m.id()
	m.workers[worker.ID] = worker
	return worker
}

func (m *memStore) addWorkLog(log *domain.WorkLog) *domain.WorkLog {
	log.ID = m.id()
	m.workLogs[log.ID] = log
	return log
}

func (m *memStore) addExpense(expense *domain.Expense) *domain.Expense {
	expense.ID = m.id()
	m.expenses[expense.ID] = expense
	return expense
}

func (m *memStore) GetSiteByID(ctx context.Context, companyID int64, id int64) (*domain.Site, error) {
	site, ok := m.sites[id]
	if !ok || site.CompanyID != companyID {
		return nil, sql.ErrNoRows
	}
	return site, nil
}

func (m *memStore) CreateWorkLog(ctx context.Context, log *domain.WorkLog) error {
	copied := *log
	m.addWorkLog(&copied)
	log.ID = copied.ID
	return nil
}

func (m *memStore) GetWorkLogByID(ctx context.Context, companyID int64, id int64) (*domain.WorkLog, error) {
	log, ok := m.workLogs[id]
	if !ok || log.CompanyID != companyID {
		return nil, sql.ErrNoRows
	}
	copied := *log
	return &copied, nil
}

func (m *memStore) UpdateWorkLogIfUnpaid(ctx context.Context, log *domain.WorkLog) error {
	stored, ok := m.workLogs[log.ID]
	if !ok || stored.CompanyID != log.CompanyID || stored.PaymentStatus != domain.PaymentStatusUnpaid {
		return sql.ErrNoRows
	}
	stored.Description = log.Description
	stored.Effort = log.Effort
	stored.WorkDate = log.WorkDate
	return nil
}

func (m *memStore) DeleteWorkLogIfUnpaid(ctx context.Context, companyID int64, id int64) error {
	stored, ok := m.workLogs[id]
	if !ok || stored.CompanyID != companyID || stored.PaymentStatus != domain.PaymentStatusUnpaid {
		return sql.ErrNoRows
	}
	delete(m.workLogs, id)
	return nil
}

func (m *memStore) ListWorkLogs(ctx context.Context, companyID int64, filter domain.WorkLogFilter) ([]*domain.WorkLog, error) {
	logs := []*domain.WorkLog{}
	for _, log := range m.workLogs {
		if log.CompanyID != companyID {
			continue
		}
		if filter.SiteID != nil && log.SiteID != *filter.SiteID {
			continue
		}
		if filter.WorkerID != nil && log.WorkerID != *filter.WorkerID {
			continue
		}
		if filter.AuthorID != nil && log.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.WorkDate != nil && !log.WorkDate.Equal(*filter.WorkDate) {
			continue
		}
		if filter.StartDate != nil && log.WorkDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && log.WorkDate.After(*filter.EndDate) {
			continue
		}
		if filter.Status != nil && log.PaymentStatus != *filter.Status {
			continue
		}
		copied := *log
		logs = append(logs, &copied)
	}

	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].WorkDate.Equal(logs[j].WorkDate) {
			return logs[i].WorkDate.After(logs[j].WorkDate)
		}
		return logs[i].ID > logs[j].ID
	})

	return logs, nil
}

func (m *memStore) MarkWorkLogsPaid(ctx context.Context, companyID int64, actorID int64, ids []int64, paymentDate time.Time) error {
	targets := []*domain.WorkLog{}
	for _, id := range ids {
		log, ok := m.workLogs[id]
		if !ok || log.CompanyID != companyID || log.PaymentStatus != domain.PaymentStatusUnpaid {
			continue
		}
		targets = append(targets, log)
	}

	// 전부 아니면 전무: 하나라도 빠지면 아무 행도 바꾸지 않는다
	if len(targets) != len(ids) {
		return domain.ErrNotFound
	}

	for _, log := range targets {
		log.PaymentStatus = domain.PaymentStatusPaid
		date := paymentDate
		log.PaymentDate = &date
		actor := actorID
		log.PaidBy = &actor
	}

	return nil
}

func (m *memStore) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	copied := *expense
	m.addExpense(&copied)
	expense.ID = copied.ID
	return nil
}

func (m *memStore) GetExpenseByID(ctx context.Context, companyID int64, id int64) (*domain.Expense, error) {
	expense, ok := m.expenses[id]
	if !ok || expense.CompanyID != companyID {
		return nil, sql.ErrNoRows
	}
	copied := *expense
	return &copied, nil
}

func (m *memStore) DecideExpense(ctx context.Context, expense *domain.Expense) error {
	stored, ok := m.expenses[expense.ID]
	if !ok || stored.CompanyID != expense.CompanyID || stored.Status != domain.ExpenseStatusPending {
		return sql.ErrNoRows
	}
	stored.Status = expense.Status
	stored.ApprovedBy = expense.ApprovedBy
	stored.ApprovalDate = expense.ApprovalDate
	stored.RejectReason = expense.RejectReason
	return nil
}

func (m *memStore) ListExpenses(ctx context.Context, companyID int64, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	expenses := []*domain.Expense{}
	for _, expense := range m.expenses {
		if expense.CompanyID != companyID {
			continue
		}
		if filter.SiteID != nil && expense.SiteID != *filter.SiteID {
			continue
		}
		if filter.AuthorID != nil && expense.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.StartDate != nil && expense.ExpenseDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && expense.ExpenseDate.After(*filter.EndDate) {
			continue
		}
		if len(filter.Statuses) > 0 {
			matched := false
			for _, status := range filter.Statuses {
				if expense.Status == status {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		copied := *expense
		expenses = append(expenses, &copied)
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		if !expenses[i].ExpenseDate.Equal(expenses[j].ExpenseDate) {
			return expenses[i].ExpenseDate.After(expenses[j].ExpenseDate)
		}
		return expenses[i].ID > expenses[j].ID
	})

	return expenses, nil
}

func (m *memStore) CreateWorker(ctx context.Context, worker *domain.Worker) error {
	copied := *worker
	m.addWorker(&copied)
	worker.ID = copied.ID
	return nil
}

func (m *memStore) GetWorkerByID(ctx context.Context, companyID int64, id int64) (*domain.Worker, error) {
	worker, ok := m.workers[id]
	if !ok || worker.CompanyID != companyID {
		return nil, sql.ErrNoRows
	}
	copied := *worker
	return &copied, nil
}

func (m *memStore) UpdateWorker(ctx context.Context, worker *domain.Worker) error {
	stored, ok := m.workers[worker.ID]
	if !ok || stored.CompanyID != worker.CompanyID {
		return sql.ErrNoRows
	}
	stored.Name = worker.Name
	stored.Phone = worker.Phone
	stored.DailyRate = worker.DailyRate
	stored.Remarks = worker.Remarks
	return nil
}

func (m *memStore) ResignWorker(ctx context.Context, companyID int64, id int64, resignedAt time.Time) error {
	stored, ok := m.workers[id]
	if !ok || stored.CompanyID != companyID || stored.Status != domain.WorkerStatusActive {
		return sql.ErrNoRows
	}
	stored.Status = domain.WorkerStatusResigned
	date := resignedAt
	stored.ResignedAt = &date
	return nil
}

func (m *memStore) ListWorkersByAuthor(ctx context.Context, companyID int64, authorID int64) ([]*domain.Worker, error) {
	workers := []*domain.Worker{}
	for _, worker := range m.workers {
		if worker.CompanyID != companyID || worker.CreatedBy != authorID {
			continue
		}
		copied := *worker
		workers = append(workers, &copied)
	}

	// 재직중 먼저, 그다음 이름순
	sort.SliceStable(workers, func(i, j int) bool {
		if workers[i].Status != workers[j].Status {
			return workers[i].Status < workers[j].Status
		}
		if workers[i].Name != workers[j].Name {
			return workers[i].Name < workers[j].Name
		}
		return workers[i].ID < workers[j].ID
	})

	return workers, nil
}

func (m *memStore) ActiveWorkerExistsByHash(ctx context.Context, authorID int64, rrnHash string, excludeID int64) (bool, error) {
	for _, worker := range m.workers {
		if worker.ID == excludeID {
			continue
		}
		if worker.CreatedBy == authorID && worker.RRNHash == rrnHash && worker.Status == domain.WorkerStatusActive {
			return true, nil
		}
	}
	return false, nil
}

// fakeVault 는 내용을 알아볼 수 있는 형태로 바꾸기만 하는 금고 대역이다.
type fakeVault struct{}

func (fakeVault) Encrypt(plaintext string) (string, error) { return "enc:" + plaintext, nil }
func (fakeVault) Decrypt(ciphertext string) (string, error) {
	return ciphertext[len("enc:"):], nil
}
func (fakeVault) Hash(plaintext string) string { return "hash:" + plaintext }
func (fakeVault) Mask(plaintext string) string { return "masked" }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}
