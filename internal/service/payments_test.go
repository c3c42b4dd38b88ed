package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func newPaymentFixture() (*memStore, *PaymentService) {
	store := newMemStore()
	return store, NewPaymentService(store)
}

func addUnpaidLog(store *memStore, companyID int64) *domain.WorkLog {
	return store.addWorkLog(&domain.WorkLog{
		CompanyID: companyID, SiteID: 1, WorkerID: 2, AuthorID: 20,
		WorkDate: date(2025, 1, 10), Description: "작업", Effort: 1,
		DailyRate: 150000, PaymentStatus: domain.PaymentStatusUnpaid,
	})
}

func TestMarkPaidValidation(t *testing.T) {
	_, svc := newPaymentFixture()

	if err := svc.MarkPaid(context.Background(), 1, 10, nil, date(2025, 1, 15)); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("빈 대상 목록은 거부해야 한다: %v", err)
	}
	if err := svc.MarkPaid(context.Background(), 1, 10, []int64{1}, time.Time{}); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("지급일 누락은 거부해야 한다: %v", err)
	}
}

func TestMarkPaidStampsEveryTargetRow(t *testing.T) {
	store, svc := newPaymentFixture()

	first := addUnpaidLog(store, 1)
	second := addUnpaidLog(store, 1)
	paymentDate := date(2025, 1, 15)

	if err := svc.MarkPaid(context.Background(), 1, 10, []int64{first.ID, second.ID}, paymentDate); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}

	for _, id := range []int64{first.ID, second.ID} {
		log := store.workLogs[id]
		if log.PaymentStatus != domain.PaymentStatusPaid {
			t.Fatalf("행 %d 가 지급완료가 아니다: %s", id, log.PaymentStatus)
		}
		if log.PaymentDate == nil || !log.PaymentDate.Equal(paymentDate) {
			t.Fatalf("행 %d 의 지급일이 잘못되었다: %v", id, log.PaymentDate)
		}
		if log.PaidBy == nil || *log.PaidBy != 10 {
			t.Fatalf("행 %d 의 지급 처리자가 잘못되었다: %v", id, log.PaidBy)
		}
	}
}

func TestMarkPaidIsAllOrNothing(t *testing.T) {
	store, svc := newPaymentFixture()

	valid := addUnpaidLog(store, 1)

	// 존재하지 않는 id 가 섞이면 아무 행도 바뀌지 않는다
	if err := svc.MarkPaid(context.Background(), 1, 10, []int64{valid.ID, 9999}, date(2025, 1, 15)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("누락 id 는 NotFound 여야 한다: %v", err)
	}
	if store.workLogs[valid.ID].PaymentStatus != domain.PaymentStatusUnpaid {
		t.Fatal("실패한 일괄 지급이 행을 변경했다")
	}

	// 다른 회사의 행이 섞여도 마찬가지다
	other := addUnpaidLog(store, 2)
	if err := svc.MarkPaid(context.Background(), 1, 10, []int64{valid.ID, other.ID}, date(2025, 1, 15)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("다른 회사 id 는 NotFound 여야 한다: %v", err)
	}
	if store.workLogs[valid.ID].PaymentStatus != domain.PaymentStatusUnpaid {
		t.Fatal("실패한 일괄 지급이 행을 변경했다")
	}
	if store.workLogs[other.ID].PaymentStatus != domain.PaymentStatusUnpaid {
		t.Fatal("다른 회사의 행이 변경되었다")
	}
}

func TestMarkPaidIsNotIdempotent(t *testing.T) {
	store, svc := newPaymentFixture()

	log := addUnpaidLog(store, 1)
	firstDate := date(2025, 1, 15)

	if err := svc.MarkPaid(context.Background(), 1, 10, []int64{log.ID}, firstDate); err != nil {
		t.Fatalf("첫 번째 지급: %v", err)
	}

	// 같은 id 로 다시 호출하면 실패하고, 기존 지급 정보는 그대로 남는다
	if err := svc.MarkPaid(context.Background(), 1, 11, []int64{log.ID}, date(2025, 2, 1)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("재지급 시도는 NotFound 여야 한다: %v", err)
	}

	stored := store.workLogs[log.ID]
	if !stored.PaymentDate.Equal(firstDate) {
		t.Fatalf("재시도가 지급일을 덮어썼다: %v", stored.PaymentDate)
	}
	if *stored.PaidBy != 10 {
		t.Fatalf("재시도가 지급 처리자를 덮어썼다: %d", *stored.PaidBy)
	}

	// 이미 지급된 행이 섞인 일괄 지급도 전체가 실패한다
	fresh := addUnpaidLog(store, 1)
	if err := svc.MarkPaid(context.Background(), 1, 10, []int64{fresh.ID, log.ID}, date(2025, 2, 1)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("지급완료 행이 섞인 일괄 지급은 실패해야 한다: %v", err)
	}
	if store.workLogs[fresh.ID].PaymentStatus != domain.PaymentStatusUnpaid {
		t.Fatal("실패한 일괄 지급이 미지급 행을 변경했다")
	}
}
