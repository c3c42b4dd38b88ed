package handler

import (
	"net/http"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/service"
)

func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name" validate:"required"`
		RRN       string `json:"rrn" validate:"required"`
		Phone     string `json:"phone"`
		DailyRate int64  `json:"dailyRate" validate:"required,gt=0"`
		Remarks   string `json:"remarks"`
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

	worker, err := h.workers.Create(r.Context(), h.companyID(r), authorID, service.CreateWorkerInput{
		Name:      req.Name,
		RRN:       req.RRN,
		Phone:     req.Phone,
		DailyRate: req.DailyRate,
		Remarks:   req.Remarks,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "근로자 등록 완료", worker)
}

func (h *Handler) GetMyWorkers(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.authorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	workers, err := h.workers.List(r.Context(), h.companyID(r), authorID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "근로자 목록 조회 성공", workers)
}

func (h *Handler) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "근로자 ID가 올바르지 않습니다")
		return
	}

	var req struct {
		Name      *string `json:"name"`
		Phone     *string `json:"phone"`
		DailyRate *int64  `json:"dailyRate" validate:"omitempty,gt=0"`
		Remarks   *string `json:"remarks"`
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

	worker, err := h.workers.Update(r.Context(), h.companyID(r), authorID, id, service.UpdateWorkerPatch{
		Name:      req.Name,
		Phone:     req.Phone,
		DailyRate: req.DailyRate,
		Remarks:   req.Remarks,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "근로자 정보 수정 완료", worker)
}

func (h *Handler) ResignWorker(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "근로자 ID가 올바르지 않습니다")
		return
	}

	authorID, err := h.authorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	worker, err := h.workers.Resign(r.Context(), h.companyID(r), authorID, id)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "퇴사 처리 완료", worker)
}
