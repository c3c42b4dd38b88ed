package handler

import (
	"net/http"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/service"
)

// GetReport 는 근무일지와 지출결의서를 합쳐 정산 요약과 통합 목록을
// 돌려준다. 조회 구분(type)과 지급 상태(paymentStatus)는 쿼리 문자열로 받는다.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	filter := service.ReportFilter{
		Kind:         r.URL.Query().Get("type"),
		PaymentState: r.URL.Query().Get("paymentStatus"),
	}

	var err error
	if filter.SiteID, err = queryInt64(r, "siteId"); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.AuthorID, err = queryInt64(r, "creatorId"); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.WorkerID, err = queryInt64(r, "workerId"); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.StartDate, err = queryDate(r, "startDate"); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.EndDate, err = queryDate(r, "endDate"); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.reports.Report(r.Context(), h.companyID(r), filter)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "정산 조회 성공", report)
}
