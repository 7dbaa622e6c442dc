package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/report"
)

type summaryResponse struct {
	Filter report.Filter `json:"filter"`
	report.Summary
	HoursDay   string `json:"hoursDay"`
	HoursNight string `json:"hoursNight"`
	HoursTotal string `json:"hoursTotal"`
}

func newSummaryResponse(f report.Filter, logs []*domain.WorkLog) summaryResponse {
	s := report.Summarize(logs)
	return summaryResponse{
		Filter:     f,
		Summary:    s,
		HoursDay:   report.FormatHM(s.MinutesDay),
		HoursNight: report.FormatHM(s.MinutesNight),
		HoursTotal: report.FormatHM(s.TotalMinutes),
	}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sub, err := currentUserID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	f, err := h.filterFromQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	logs, err := h.filteredWorkLogs(sub, f)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取汇总成功", newSummaryResponse(f, logs))
}

func (h *Handler) EmailSummary(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	f, err := h.filterFromQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	providerName := "全部"
	if f.ProviderID != nil {
		p, err := h.ownedProvider(myInfo.ID, *f.ProviderID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "服务人员不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		providerName = p.Name
	}

	logs, err := h.filteredWorkLogs(myInfo.ID, f)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	s := report.Summarize(logs)

	if err := h.publishMail(domain.MailMessage{
		Type: domain.MailTypeMonthlySummary,
		To:   myInfo.Email,
		Data: domain.MonthlySummaryMailData{
			FullName:     myInfo.FullName,
			Month:        f.Month,
			ProviderName: providerName,
			Count:        s.Count,
			HoursDay:     report.FormatHM(s.MinutesDay),
			HoursNight:   report.FormatHM(s.MinutesNight),
			HoursTotal:   report.FormatHM(s.TotalMinutes),
			TotalValue:   s.TotalValue.StringFixed(2),
			MealsQty:     s.MealsQty,
			MealCost:     s.MealCost.StringFixed(2),
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "汇总邮件已加入发送队列", nil)
}
