package handler

import (
	"database/sql"
	"errors"
	"net/http"
)

func (h *Handler) GetAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.repository.ListAuthorsByCompany(r.Context(), h.companyID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "작성자 목록 조회 성공", authors)
}

// UpdateAuthorDailyRate 는 팀장의 일당을 바꾼다. 이미 작성된 근무일지의
// 금액 스냅샷에는 영향이 없다.
func (h *Handler) UpdateAuthorDailyRate(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "작성자 ID가 올바르지 않습니다")
		return
	}

	var req struct {
		DailyRate int64 `json:"dailyRate" validate:"required,gt=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateAuthorDailyRate(r.Context(), h.companyID(r), id, req.DailyRate); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "작성자가 존재하지 않습니다")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "일당 변경 완료", nil)
}
