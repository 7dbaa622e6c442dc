package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
)

func (h *Handler) GetMyProviders(w http.ResponseWriter, r *http.Request) {
	sub, err := currentUserID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	providers, err := h.repository.GetProvidersByUserID(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取服务人员列表成功", providers)
}

func (h *Handler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required,max=64"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	sub, err := currentUserID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	p := &domain.Provider{
		UserID: sub,
		Name:   req.Name,
	}

	if err := h.repository.CreateProvider(p); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "providers_user_id_name_key":
			h.errorResponse(w, r, "同名服务人员已存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建服务人员成功", p)
}

func (h *Handler) GetProvider(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(ProviderCtx).(*domain.Provider)
	h.successResponse(w, r, "获取服务人员成功", p)
}

func (h *Handler) UpdateProvider(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(ProviderCtx).(*domain.Provider)

	var req struct {
		Name   *string `json:"name" validate:"omitnil,min=1,max=64"`
		Active *bool   `json:"active"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := h.repository.UpdateProvider(p); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新服务人员失败，请重试")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "providers_user_id_name_key":
			h.errorResponse(w, r, "同名服务人员已存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新服务人员成功", p)
}
