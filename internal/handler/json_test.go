package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func TestDomainErrorStatusByKind(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: 공수는 0보다 커야 합니다", domain.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("%w: 근무일지가 존재하지 않습니다", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrLocked, http.StatusForbidden},
		{fmt.Errorf("%w: 이미 처리된 지출결의서입니다", domain.ErrConflict), http.StatusConflict},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPut, "/worklogs/1", nil)
		rr := httptest.NewRecorder()
		h.domainError(rr, req, c.err)

		if rr.Code != c.status {
			t.Fatalf("%v: 상태 코드가 %d 가 아니라 %d 이다", c.err, c.status, rr.Code)
		}
		res := decodeResponse(t, rr)
		if res.Success {
			t.Fatalf("%v: 실패 응답이어야 한다", c.err)
		}
		if res.Message == "" {
			t.Fatalf("%v: 메시지가 비어 있다", c.err)
		}
	}
}
