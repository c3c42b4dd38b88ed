package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/service"
)

func (h *Handler) CreateWorkLog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SiteID        int64   `json:"siteId" validate:"required"`
		WorkerID      int64   `json:"workerId" validate:"required"`
		WorkDate      string  `json:"workDate" validate:"required,datetime=2006-01-02"`
		Description   string  `json:"description" validate:"required"`
		Effort        float64 `json:"effort" validate:"required,gt=0"`
		AttachmentURL *string `json:"attachmentUrl" validate:"omitempty,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	authorID, err := h.authorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	workDate, _ := time.Parse(dateLayout, req.WorkDate)

	log, err := h.workLogs.Create(r.Context(), h.companyID(r), authorID, service.CreateWorkLogInput{
		SiteID:        req.SiteID,
		WorkerID:      req.WorkerID,
		WorkDate:      workDate,
		Description:   req.Description,
		Effort:        req.Effort,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "근무일지 작성 완료", log)
}

func (h *Handler) GetWorkLogs(w http.ResponseWriter, r *http.Request) {
	filter, err := h.workLogFilterFromQuery(r)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	logs, err := h.workLogs.List(r.Context(), h.companyID(r), *filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "근무일지 목록 조회 성공", logs)
}

func (h *Handler) UpdateWorkLog(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "근무일지 ID가 올바르지 않습니다")
		return
	}

	var req struct {
		Description *string  `json:"description"`
		Effort      *float64 `json:"effort" validate:"omitempty,gt=0"`
		WorkDate    *string  `json:"workDate" validate:"omitempty,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	authorID, err := h.authorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	patch := service.UpdateWorkLogPatch{
		Description: req.Description,
		Effort:      req.Effort,
	}
	if req.WorkDate != nil {
		workDate, _ := time.Parse(dateLayout, *req.WorkDate)
		patch.WorkDate = &workDate
	}

	log, err := h.workLogs.Update(r.Context(), h.companyID(r), authorID, id, patch)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "근무일지 수정 완료", log)
}

func (h *Handler) DeleteWorkLog(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "근무일지 ID가 올바르지 않습니다")
		return
	}

	authorID, err := h.authorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.workLogs.Delete(r.Context(), h.companyID(r), authorID, id); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "근무일지 삭제 완료", nil)
}

// MarkWorkLogsPaid 는 선택한 근무일지들을 일괄 지급완료 처리한다.
// 전부 성공하거나 전부 실패한다.
func (h *Handler) MarkWorkLogsPaid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkLogIDs  []int64 `json:"workLogIds" validate:"required,min=1"`
		PaymentDate string  `json:"paymentDate" validate:"required,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	actorID, err := h.authorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	paymentDate, _ := time.Parse(dateLayout, req.PaymentDate)

	if err := h.payments.MarkPaid(r.Context(), h.companyID(r), actorID, req.WorkLogIDs, paymentDate); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "이미 지급되었거나 존재하지 않는 근무일지가 포함되어 있습니다")
		default:
			h.domainError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "지급 처리 완료", nil)
}

// workLogFilterFromQuery 는 목록 조회 조건을 쿼리 문자열에서 읽는다.
// 팀장은 항상 본인이 작성한 근무일지만 본다.
func (h *Handler) workLogFilterFromQuery(r *http.Request) (*domain.WorkLogFilter, error) {
	filter := &domain.WorkLogFilter{}

	var err error
	if filter.SiteID, err = queryInt64(r, "siteId"); err != nil {
		return nil, err
	}
	if filter.WorkerID, err = queryInt64(r, "workerId"); err != nil {
		return nil, err
	}
	if filter.WorkDate, err = queryDate(r, "workDate"); err != nil {
		return nil, err
	}
	if filter.StartDate, err = queryDate(r, "startDate"); err != nil {
		return nil, err
	}
	if filter.EndDate, err = queryDate(r, "endDate"); err != nil {
		return nil, err
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.PaymentStatus(raw)
		if status != domain.PaymentStatusUnpaid && status != domain.PaymentStatusPaid {
			return nil, errors.New("status 값이 올바르지 않습니다")
		}
		filter.Status = &status
	}

	if h.role(r) == domain.RoleManager {
		if filter.AuthorID, err = queryInt64(r, "creatorId"); err != nil {
			return nil, err
		}
	} else {
		authorID, err := h.authorID(r)
		if err != nil {
			return nil, err
		}
		filter.AuthorID = &authorID
	}

	return filter, nil
}
