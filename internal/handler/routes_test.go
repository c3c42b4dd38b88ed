package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func serveRoute(t *testing.T, h *Handler, method, path string, body string, role domain.Role) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: signTestToken(t, h, role, 7, 42)})
	rr := httptest.NewRecorder()
	h.Mux.ServeHTTP(rr, req)
	return rr
}

func TestForemanOnlyRoutesRejectManager(t *testing.T) {
	h := newTestHandler(t)
	h.RegisterRoutes()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/worklogs"},
		{http.MethodPut, "/worklogs/1"},
		{http.MethodDelete, "/worklogs/1"},
		{http.MethodPost, "/workers"},
		{http.MethodGet, "/workers"},
		{http.MethodPut, "/workers/1"},
		{http.MethodPost, "/workers/1/resign"},
		{http.MethodPost, "/expenses"},
	}

	for _, c := range cases {
		rr := serveRoute(t, h, c.method, c.path, "", domain.RoleManager)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("%s %s: 관리자는 403 을 받아야 한다: %d", c.method, c.path, rr.Code)
		}
		res := decodeResponse(t, rr)
		if res.Message != "권한이 없습니다" {
			t.Fatalf("%s %s: 예상하지 못한 메시지: %q", c.method, c.path, res.Message)
		}
	}
}

func TestAdminRoutesRejectForeman(t *testing.T) {
	h := newTestHandler(t)
	h.RegisterRoutes()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/admin/worklogs/mark-as-paid"},
		{http.MethodPut, "/admin/expenses/1/approve"},
		{http.MethodPut, "/admin/expenses/1/reject"},
		{http.MethodGet, "/admin/aggregation"},
		{http.MethodPost, "/admin/sites"},
	}

	for _, c := range cases {
		rr := serveRoute(t, h, c.method, c.path, "", domain.RoleForeman)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("%s %s: 팀장은 403 을 받아야 한다: %d", c.method, c.path, rr.Code)
		}
	}
}

func TestWorkLogRoutesAreWired(t *testing.T) {
	h := newTestHandler(t)
	h.RegisterRoutes()

	// 본문이 깨진 요청은 handler 까지 닿아 400 으로 끝난다.
	// 404/405 가 아니라는 것으로 경로와 메서드 연결을 확인한다.
	rr := serveRoute(t, h, http.MethodPost, "/worklogs", "not-json", domain.RoleForeman)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("POST /worklogs: 상태 코드가 400 이 아니라 %d 이다", rr.Code)
	}

	rr = serveRoute(t, h, http.MethodPut, "/admin/worklogs/mark-as-paid", "{}", domain.RoleManager)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("PUT /admin/worklogs/mark-as-paid: 상태 코드가 400 이 아니라 %d 이다", rr.Code)
	}
}
