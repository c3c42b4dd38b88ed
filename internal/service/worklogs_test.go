package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func newWorkLogFixture() (*memStore, *WorkLogService, *domain.Site, *domain.Worker) {
	store := newMemStore()
	site := store.addSite(&domain.Site{CompanyID: 1, ManagerID: 10, Name: "강남 현장", Status: domain.SiteStatusActive})
	worker := store.addWorker(&domain.Worker{
		CompanyID: 1,
		CreatedBy: 20,
		Name:      "김철수",
		DailyRate: 150000,
		Status:    domain.WorkerStatusActive,
	})
	return store, NewWorkLogService(store, store, store), site, worker
}

func TestCreateWorkLogSnapshotsDailyRate(t *testing.T) {
	store, svc, site, worker := newWorkLogFixture()

	log, err := svc.Create(context.Background(), 1, 20, CreateWorkLogInput{
		SiteID:      site.ID,
		WorkerID:    worker.ID,
		WorkDate:    date(2025, 1, 10),
		Description: "철근 작업",
		Effort:      1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if log.DailyRate != 150000 {
		t.Fatalf("일당 스냅샷이 잘못되었다: got %d", log.DailyRate)
	}
	if log.Amount() != 150000 {
		t.Fatalf("금액이 잘못되었다: got %d", log.Amount())
	}
	if log.PaymentStatus != domain.PaymentStatusUnpaid {
		t.Fatalf("최초 상태는 미지급이어야 한다: got %s", log.PaymentStatus)
	}

	// 근로자의 일당을 바꿔도 기존 근무일지의 스냅샷은 변하지 않는다
	store.workers[worker.ID].DailyRate = 200000

	stored, err := store.GetWorkLogByID(context.Background(), 1, log.ID)
	if err != nil {
		t.Fatalf("GetWorkLogByID: %v", err)
	}
	if stored.DailyRate != 150000 || stored.Amount() != 150000 {
		t.Fatalf("스냅샷이 근로자 일당 변경에 영향을 받았다: rate=%d amount=%d", stored.DailyRate, stored.Amount())
	}

	// 새로 작성하는 근무일지에는 바뀐 일당이 복사된다
	fresh, err := svc.Create(context.Background(), 1, 20, CreateWorkLogInput{
		SiteID:      site.ID,
		WorkerID:    worker.ID,
		WorkDate:    date(2025, 1, 11),
		Description: "거푸집 해체",
		Effort:      0.5,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if fresh.DailyRate != 200000 || fresh.Amount() != 100000 {
		t.Fatalf("새 근무일지의 스냅샷이 잘못되었다: rate=%d amount=%d", fresh.DailyRate, fresh.Amount())
	}
}

func TestCreateWorkLogValidation(t *testing.T) {
	_, svc, site, worker := newWorkLogFixture()

	base := CreateWorkLogInput{
		SiteID:      site.ID,
		WorkerID:    worker.ID,
		WorkDate:    date(2025, 1, 10),
		Description: "작업",
		Effort:      1,
	}

	invalid := base
	invalid.Effort = 0
	if _, err := svc.Create(context.Background(), 1, 20, invalid); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("공수 0은 거부해야 한다: %v", err)
	}

	invalid = base
	invalid.Effort = -0.5
	if _, err := svc.Create(context.Background(), 1, 20, invalid); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("음수 공수는 거부해야 한다: %v", err)
	}

	invalid = base
	invalid.Description = "   "
	if _, err := svc.Create(context.Background(), 1, 20, invalid); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("빈 작업 내용은 거부해야 한다: %v", err)
	}

	invalid = base
	invalid.WorkDate = time.Time{}
	if _, err := svc.Create(context.Background(), 1, 20, invalid); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("근무일 누락은 거부해야 한다: %v", err)
	}
}

func TestCreateWorkLogRejectsCrossTenantReferences(t *testing.T) {
	store, svc, site, worker := newWorkLogFixture()

	otherSite := store.addSite(&domain.Site{CompanyID: 2, Name: "다른 회사 현장", Status: domain.SiteStatusActive})
	otherWorker := store.addWorker(&domain.Worker{CompanyID: 2, CreatedBy: 99, DailyRate: 100000, Status: domain.WorkerStatusActive})

	if _, err := svc.Create(context.Background(), 1, 20, CreateWorkLogInput{
		SiteID: otherSite.ID, WorkerID: worker.ID, WorkDate: date(2025, 1, 10), Description: "작업", Effort: 1,
	}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("다른 회사 현장은 NotFound 로 처리해야 한다: %v", err)
	}

	if _, err := svc.Create(context.Background(), 1, 20, CreateWorkLogInput{
		SiteID: site.ID, WorkerID: otherWorker.ID, WorkDate: date(2025, 1, 10), Description: "작업", Effort: 1,
	}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("다른 회사 근로자는 NotFound 로 처리해야 한다: %v", err)
	}
}

func TestUpdateWorkLog(t *testing.T) {
	store, svc, site, worker := newWorkLogFixture()

	log := store.addWorkLog(&domain.WorkLog{
		CompanyID: 1, SiteID: site.ID, WorkerID: worker.ID, AuthorID: 20,
		WorkDate: date(2025, 1, 10), Description: "철근 작업", Effort: 1,
		DailyRate: 150000, PaymentStatus: domain.PaymentStatusUnpaid,
	})

	updated, err := svc.Update(context.Background(), 1, 20, log.ID, UpdateWorkLogPatch{
		Effort:      ptr(1.5),
		Description: ptr("철근 작업 연장"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Effort != 1.5 || updated.Description != "철근 작업 연장" {
		t.Fatalf("수정이 반영되지 않았다: %+v", updated)
	}
	if updated.DailyRate != 150000 {
		t.Fatalf("수정으로 일당 스냅샷이 바뀌면 안 된다: %d", updated.DailyRate)
	}

	if _, err := svc.Update(context.Background(), 1, 20, log.ID, UpdateWorkLogPatch{Effort: ptr(0.0)}); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("공수 0으로의 수정은 거부해야 한다: %v", err)
	}
}

func TestUpdateAndDeleteRejectPaidWorkLog(t *testing.T) {
	store, svc, site, worker := newWorkLogFixture()

	paid := store.addWorkLog(&domain.WorkLog{
		CompanyID: 1, SiteID: site.ID, WorkerID: worker.ID, AuthorID: 20,
		WorkDate: date(2025, 1, 10), Description: "철근 작업", Effort: 1,
		DailyRate: 150000, PaymentStatus: domain.PaymentStatusPaid,
	})

	patches := []UpdateWorkLogPatch{
		{Description: ptr("수정 시도")},
		{Effort: ptr(2.0)},
		{WorkDate: ptr(date(2025, 1, 11))},
		{Description: ptr("수정"), Effort: ptr(2.0), WorkDate: ptr(date(2025, 1, 12))},
	}
	for i, patch := range patches {
		if _, err := svc.Update(context.Background(), 1, 20, paid.ID, patch); !errors.Is(err, domain.ErrLocked) {
			t.Fatalf("케이스 %d: 지급완료 행 수정은 Locked 여야 한다: %v", i, err)
		}
	}

	if err := svc.Delete(context.Background(), 1, 20, paid.ID); !errors.Is(err, domain.ErrLocked) {
		t.Fatalf("지급완료 행 삭제는 Locked 여야 한다: %v", err)
	}

	if _, ok := store.workLogs[paid.ID]; !ok {
		t.Fatal("지급완료 행이 삭제되었다")
	}
}

func TestWorkLogOwnershipAndTenantIsolation(t *testing.T) {
	store, svc, site, worker := newWorkLogFixture()

	log := store.addWorkLog(&domain.WorkLog{
		CompanyID: 1, SiteID: site.ID, WorkerID: worker.ID, AuthorID: 20,
		WorkDate: date(2025, 1, 10), Description: "작업", Effort: 1,
		DailyRate: 150000, PaymentStatus: domain.PaymentStatusUnpaid,
	})

	// 다른 팀장은 남의 근무일지를 수정할 수 없다
	if _, err := svc.Update(context.Background(), 1, 21, log.ID, UpdateWorkLogPatch{Effort: ptr(2.0)}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("다른 작성자의 수정은 NotFound 여야 한다: %v", err)
	}

	// 다른 회사에서는 행 자체가 보이지 않는다
	if _, err := svc.Update(context.Background(), 2, 20, log.ID, UpdateWorkLogPatch{Effort: ptr(2.0)}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("다른 회사의 수정은 NotFound 여야 한다: %v", err)
	}

	logs, err := svc.List(context.Background(), 2, domain.WorkLogFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("다른 회사의 행이 조회되었다: %d건", len(logs))
	}
}

func TestListWorkLogsOrderedByWorkDateDesc(t *testing.T) {
	store, svc, site, worker := newWorkLogFixture()

	for _, day := range []int{12, 10, 15, 10} {
		store.addWorkLog(&domain.WorkLog{
			CompanyID: 1, SiteID: site.ID, WorkerID: worker.ID, AuthorID: 20,
			WorkDate: date(2025, 1, day), Description: "작업", Effort: 1,
			DailyRate: 150000, PaymentStatus: domain.PaymentStatusUnpaid,
		})
	}

	logs, err := svc.List(context.Background(), 1, domain.WorkLogFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) != 4 {
		t.Fatalf("조회 건수가 잘못되었다: %d", len(logs))
	}

	for i := 1; i < len(logs); i++ {
		prev, curr := logs[i-1], logs[i]
		if curr.WorkDate.After(prev.WorkDate) {
			t.Fatalf("근무일 내림차순이 아니다: %v 다음에 %v", prev.WorkDate, curr.WorkDate)
		}
		if curr.WorkDate.Equal(prev.WorkDate) && curr.ID > prev.ID {
			t.Fatal("같은 근무일에서는 최근 작성 순이어야 한다")
		}
	}
}
