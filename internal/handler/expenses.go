package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/service"
)

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SiteID        int64   `json:"siteId" validate:"required"`
		Title         string  `json:"title" validate:"required"`
		Content       string  `json:"content"`
		Amount        int64   `json:"amount" validate:"required,gt=0"`
		ExpenseDate   string  `json:"expenseDate" validate:"required,datetime=2006-01-02"`
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

	expenseDate, _ := time.Parse(dateLayout, req.ExpenseDate)

	expense, err := h.expenses.Create(r.Context(), h.companyID(r), authorID, service.CreateExpenseInput{
		SiteID:        req.SiteID,
		Title:         req.Title,
		Content:       req.Content,
		Amount:        req.Amount,
		ExpenseDate:   expenseDate,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "지출결의서 작성 완료", expense)
}

func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	filter, err := h.expenseFilterFromQuery(r)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	expenses, err := h.expenses.List(r.Context(), h.companyID(r), *filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "지출결의서 목록 조회 성공", expenses)
}

func (h *Handler) ApproveExpense(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "지출결의서 ID가 올바르지 않습니다")
		return
	}

	approverID, err := h.authorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	expense, err := h.expenses.Approve(r.Context(), h.companyID(r), approverID, id)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "지출결의서 승인 완료", expense)
}

func (h *Handler) RejectExpense(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "지출결의서 ID가 올바르지 않습니다")
		return
	}

	var req struct {
		Reason string `json:"rejectReason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	approverID, err := h.authorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	expense, err := h.expenses.Reject(r.Context(), h.companyID(r), approverID, id, req.Reason)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "지출결의서 반려 완료", expense)
}

func (h *Handler) expenseFilterFromQuery(r *http.Request) (*domain.ExpenseFilter, error) {
	filter := &domain.ExpenseFilter{}

	var err error
	if filter.SiteID, err = queryInt64(r, "siteId"); err != nil {
		return nil, err
	}
	if filter.StartDate, err = queryDate(r, "startDate"); err != nil {
		return nil, err
	}
	if filter.EndDate, err = queryDate(r, "endDate"); err != nil {
		return nil, err
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.ExpenseStatus(raw)
		switch status {
		case domain.ExpenseStatusPending, domain.ExpenseStatusApproved, domain.ExpenseStatusRejected:
			filter.Statuses = []domain.ExpenseStatus{status}
		default:
			return nil, errors.New("status 값이 올바르지 않습니다")
		}
	}

	// 팀장은 본인이 작성한 지출결의서만 본다
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
