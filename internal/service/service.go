package service

import (
	"context"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

// 저장소 인터페이스. internal/repository 가 실제 구현을 제공하고,
// 테스트에서는 메모리 구현으로 대체한다. 행이 없거나 다른 회사 소속이면
// sql.ErrNoRows 를 반환하는 것이 계약이다.

type WorkLogStore interface {
	CreateWorkLog(ctx context.Context, log *domain.WorkLog) error
	GetWorkLogByID(ctx context.Context, companyID int64, id int64) (*domain.WorkLog, error)
	// UpdateWorkLogIfUnpaid 는 미지급 상태의 행에만 변경을 적용한다.
	// 적용된 행이 없으면 sql.ErrNoRows 를 반환한다.
	UpdateWorkLogIfUnpaid(ctx context.Context, log *domain.WorkLog) error
	DeleteWorkLogIfUnpaid(ctx context.Context, companyID int64, id int64) error
	ListWorkLogs(ctx context.Context, companyID int64, filter domain.WorkLogFilter) ([]*domain.WorkLog, error)
	// MarkWorkLogsPaid 는 단일 트랜잭션 안에서 대상 행을 잠그고 일괄 갱신한다.
	// 대상 중 하나라도 없거나 이미 지급된 경우 domain.ErrNotFound 를 반환하고
	// 아무 행도 바꾸지 않는다.
	MarkWorkLogsPaid(ctx context.Context, companyID int64, actorID int64, ids []int64, paymentDate time.Time) error
}

type ExpenseStore interface {
	CreateExpense(ctx context.Context, expense *domain.Expense) error
	GetExpenseByID(ctx context.Context, companyID int64, id int64) (*domain.Expense, error)
	// DecideExpense 는 pending 상태의 행에만 승인/반려 결과를 적용한다.
	// 적용된 행이 없으면 sql.ErrNoRows 를 반환한다.
	DecideExpense(ctx context.Context, expense *domain.Expense) error
	ListExpenses(ctx context.Context, companyID int64, filter domain.ExpenseFilter) ([]*domain.Expense, error)
}

type WorkerStore interface {
	CreateWorker(ctx context.Context, worker *domain.Worker) error
	GetWorkerByID(ctx context.Context, companyID int64, id int64) (*domain.Worker, error)
	UpdateWorker(ctx context.Context, worker *domain.Worker) error
	ResignWorker(ctx context.Context, companyID int64, id int64, resignedAt time.Time) error
	ListWorkersByAuthor(ctx context.Context, companyID int64, authorID int64) ([]*domain.Worker, error)
	// ActiveWorkerExistsByHash 는 같은 팀장 아래에 같은 주민등록번호 해시를 가진
	// 재직중 근로자가 있는지 확인한다. excludeID 가 0이 아니면 해당 행은 제외한다.
	ActiveWorkerExistsByHash(ctx context.Context, authorID int64, rrnHash string, excludeID int64) (bool, error)
}

type SiteStore interface {
	GetSiteByID(ctx context.Context, companyID int64, id int64) (*domain.Site, error)
}
