package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Address string `json:"address"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	managerID, err := h.authorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	site := &domain.Site{
		CompanyID: h.companyID(r),
		ManagerID: managerID,
		Name:      req.Name,
		Address:   req.Address,
		Status:    domain.SiteStatusActive,
	}

	if err := h.repository.CreateSite(r.Context(), site); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	site.ForemanIDs = []int64{}

	h.successResponse(w, r, "현장 등록 완료", site)
}

func (h *Handler) GetSites(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.authorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 관리자는 회사의 모든 현장을, 팀장은 배정된 현장만 본다
	var sites []*domain.Site
	if h.role(r) == domain.RoleManager {
		sites, err = h.repository.ListSites(r.Context(), h.companyID(r))
	} else {
		sites, err = h.repository.ListSitesByForeman(r.Context(), h.companyID(r), authorID)
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "현장 목록 조회 성공", sites)
}

func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "현장 ID가 올바르지 않습니다")
		return
	}

	site, err := h.repository.GetSiteByID(r.Context(), h.companyID(r), id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "현장이 존재하지 않습니다")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "현장 조회 성공", site)
}

func (h *Handler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "현장 ID가 올바르지 않습니다")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Status  *string `json:"status" validate:"omitempty,oneof=active completed suspended"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	site, err := h.repository.GetSiteByID(r.Context(), h.companyID(r), id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "현장이 존재하지 않습니다")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.Name != nil {
		site.Name = *req.Name
	}
	if req.Address != nil {
		site.Address = *req.Address
	}
	if req.Status != nil {
		site.Status = domain.SiteStatus(*req.Status)
	}

	if err := h.repository.UpdateSite(r.Context(), site); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusConflict, "현장 수정에 실패했습니다. 다시 시도해 주세요")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "현장 수정 완료", site)
}

func (h *Handler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "현장 ID가 올바르지 않습니다")
		return
	}

	if err := h.repository.DeleteSite(r.Context(), h.companyID(r), id); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "work_logs_site_id_fkey",
				pgErr.ConstraintName == "expenses_site_id_fkey":
				h.errorResponse(w, r, http.StatusConflict, "현장에 연결된 기록이 있어 삭제할 수 없습니다")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "현장이 존재하지 않습니다")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "현장 삭제 완료", nil)
}

func (h *Handler) AssignForeman(w http.ResponseWriter, r *http.Request) {
	siteID, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "현장 ID가 올바르지 않습니다")
		return
	}

	var req struct {
		AuthorID int64 `json:"authorId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.repository.GetSiteByID(r.Context(), h.companyID(r), siteID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "현장이 존재하지 않습니다")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 같은 회사의 팀장만 배정할 수 있다
	author, err := h.repository.GetAuthorByID(r.Context(), req.AuthorID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "팀장이 존재하지 않습니다")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if author.CompanyID != h.companyID(r) || author.Role != domain.RoleForeman {
		h.errorResponse(w, r, http.StatusNotFound, "팀장이 존재하지 않습니다")
		return
	}

	if err := h.repository.AssignForeman(r.Context(), siteID, req.AuthorID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "팀장 배정 완료", nil)
}

func (h *Handler) UnassignForeman(w http.ResponseWriter, r *http.Request) {
	siteID, err := h.pathID(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "현장 ID가 올바르지 않습니다")
		return
	}
	authorID, err := h.pathID(r, "authorId")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "팀장 ID가 올바르지 않습니다")
		return
	}

	if _, err := h.repository.GetSiteByID(r.Context(), h.companyID(r), siteID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "현장이 존재하지 않습니다")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.UnassignForeman(r.Context(), siteID, authorID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "팀장 배정 해제 완료", nil)
}
