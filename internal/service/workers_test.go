package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func newWorkerFixture() (*memStore, *WorkerService) {
	store := newMemStore()
	return store, NewWorkerService(store, fakeVault{})
}

func TestCreateWorkerStoresOnlyProtectedForms(t *testing.T) {
	store, svc := newWorkerFixture()

	worker, err := svc.Create(context.Background(), 1, 20, CreateWorkerInput{
		Name:      "김철수",
		RRN:       "901231-1234567",
		Phone:     "010-1234-5678",
		DailyRate: 150000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	stored := store.workers[worker.ID]
	if stored.RRNEncrypted != "enc:901231-1234567" {
		t.Fatalf("암호문이 저장되지 않았다: %q", stored.RRNEncrypted)
	}
	if stored.RRNHash != "hash:901231-1234567" {
		t.Fatalf("해시가 저장되지 않았다: %q", stored.RRNHash)
	}
	if stored.RRNMasked != "masked" {
		t.Fatalf("마스킹이 저장되지 않았다: %q", stored.RRNMasked)
	}
	if stored.Status != domain.WorkerStatusActive {
		t.Fatalf("최초 상태는 active 여야 한다: %s", stored.Status)
	}
}

func TestCreateWorkerValidation(t *testing.T) {
	_, svc := newWorkerFixture()

	cases := []CreateWorkerInput{
		{Name: " ", RRN: "901231-1234567", DailyRate: 150000},
		{Name: "김철수", RRN: "", DailyRate: 150000},
		{Name: "김철수", RRN: "901231-1234567", DailyRate: 0},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), 1, 20, in); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("케이스 %d: 잘못된 입력은 거부해야 한다: %v", i, err)
		}
	}
}

func TestActiveWorkerUniquenessPerForeman(t *testing.T) {
	_, svc := newWorkerFixture()

	in := CreateWorkerInput{Name: "김철수", RRN: "901231-1234567", DailyRate: 150000}

	if _, err := svc.Create(context.Background(), 1, 20, in); err != nil {
		t.Fatalf("첫 등록: %v", err)
	}

	// 같은 팀장 아래 같은 주민등록번호는 중복이다
	if _, err := svc.Create(context.Background(), 1, 20, in); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("같은 팀장의 중복 등록은 Conflict 여야 한다: %v", err)
	}

	// 다른 팀장 아래에서는 등록할 수 있다
	if _, err := svc.Create(context.Background(), 1, 21, in); err != nil {
		t.Fatalf("다른 팀장의 등록: %v", err)
	}
}

func TestResignedWorkerSlotCanBeReused(t *testing.T) {
	_, svc := newWorkerFixture()

	in := CreateWorkerInput{Name: "김철수", RRN: "901231-1234567", DailyRate: 150000}

	first, err := svc.Create(context.Background(), 1, 20, in)
	if err != nil {
		t.Fatalf("첫 등록: %v", err)
	}

	if _, err := svc.Resign(context.Background(), 1, 20, first.ID); err != nil {
		t.Fatalf("Resign: %v", err)
	}

	// 퇴사한 근로자의 주민등록번호는 다시 등록할 수 있다
	if _, err := svc.Create(context.Background(), 1, 20, in); err != nil {
		t.Fatalf("퇴사 후 재등록: %v", err)
	}
}

func TestResignIsTerminalAndPreservesRow(t *testing.T) {
	store, svc := newWorkerFixture()

	worker, err := svc.Create(context.Background(), 1, 20, CreateWorkerInput{
		Name: "김철수", RRN: "901231-1234567", DailyRate: 150000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	resigned, err := svc.Resign(context.Background(), 1, 20, worker.ID)
	if err != nil {
		t.Fatalf("Resign: %v", err)
	}
	if resigned.Status != domain.WorkerStatusResigned || resigned.ResignedAt == nil {
		t.Fatalf("퇴사 처리가 반영되지 않았다: %+v", resigned)
	}

	// 행은 삭제되지 않고 이력으로 남는다
	if _, ok := store.workers[worker.ID]; !ok {
		t.Fatal("퇴사한 근로자 행이 삭제되었다")
	}

	if _, err := svc.Resign(context.Background(), 1, 20, worker.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("재퇴사는 Conflict 여야 한다: %v", err)
	}
}

func TestListWorkersReturnsOnlyOwnWorkers(t *testing.T) {
	_, svc := newWorkerFixture()

	mine, err := svc.Create(context.Background(), 1, 20, CreateWorkerInput{
		Name: "김철수", RRN: "901231-1234567", DailyRate: 150000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), 1, 21, CreateWorkerInput{
		Name: "박영호", RRN: "880505-1765432", DailyRate: 180000,
	}); err != nil {
		t.Fatalf("다른 팀장의 등록: %v", err)
	}
	if _, err := svc.Create(context.Background(), 2, 20, CreateWorkerInput{
		Name: "이민수", RRN: "920101-1111111", DailyRate: 130000,
	}); err != nil {
		t.Fatalf("다른 회사의 등록: %v", err)
	}

	workers, err := svc.List(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(workers) != 1 || workers[0].ID != mine.ID {
		t.Fatalf("본인 근로자만 조회되어야 한다: %+v", workers)
	}

	// 퇴사한 근로자도 이력으로 함께 조회된다
	if _, err := svc.Resign(context.Background(), 1, 20, mine.ID); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	workers, err = svc.List(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(workers) != 1 || workers[0].Status != domain.WorkerStatusResigned {
		t.Fatalf("퇴사한 근로자가 목록에서 빠졌다: %+v", workers)
	}
}

func TestWorkerOwnershipAndTenantIsolation(t *testing.T) {
	_, svc := newWorkerFixture()

	worker, err := svc.Create(context.Background(), 1, 20, CreateWorkerInput{
		Name: "김철수", RRN: "901231-1234567", DailyRate: 150000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 다른 팀장은 남의 근로자를 수정할 수 없다
	if _, err := svc.Update(context.Background(), 1, 21, worker.ID, UpdateWorkerPatch{DailyRate: ptr(int64(200000))}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("다른 팀장의 수정은 NotFound 여야 한다: %v", err)
	}

	// 다른 회사에서는 행 자체가 보이지 않는다
	if _, err := svc.Resign(context.Background(), 2, 20, worker.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("다른 회사의 퇴사 처리는 NotFound 여야 한다: %v", err)
	}
}
