package handler

import (
	"net/http"
	"strconv"
)

const maxAuditLimit = 1000

func (h *Handler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	sub, err := currentUserID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	limit := h.config.Audit.DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil || limit <= 0 {
			h.errorResponse(w, r, "limit 必须为正整数")
			return
		}
	}
	limit = min(limit, maxAuditLimit)

	audits, err := h.repository.GetWorkLogAudits(sub, limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取变更记录成功", audits)
}
