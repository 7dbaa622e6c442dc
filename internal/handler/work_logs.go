package handler

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/report"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/utils"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/valuation"
)

const duplicateWorkLogConstraint = "work_logs_provider_id_date_start_time_end_time_key"

// workLogError 处理保存工时记录时的错误
func (h *Handler) workLogError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		h.errorResponse(w, r, "保存记录失败，请重试")
	case errors.As(err, &pgErr) && pgErr.ConstraintName == duplicateWorkLogConstraint:
		h.errorResponse(w, r, "该服务人员在此日期已有相同时间段的记录")
	default:
		h.internalServerError(w, r, err)
	}
}

// filterFromQuery 从 month 与 providerID 查询参数解析筛选条件
func (h *Handler) filterFromQuery(r *http.Request) (report.Filter, error) {
	q := r.URL.Query()
	f, err := report.ParseFilter(q.Get("month"), q.Get("providerID"), time.Now())
	if err != nil {
		return report.Filter{}, errors.New("筛选条件无效，月份格式应为 YYYY-MM")
	}
	return f, nil
}

func (h *Handler) filteredWorkLogs(userID int64, f report.Filter) ([]*domain.WorkLog, error) {
	from, to, err := f.Range()
	if err != nil {
		return nil, err
	}
	return h.repository.GetWorkLogs(userID, from, to, f.ProviderID)
}

func (h *Handler) GetWorkLogs(w http.ResponseWriter, r *http.Request) {
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

	h.successResponse(w, r, "获取工时记录成功", logs)
}

type workLogRequest struct {
	ProviderID int64   `json:"providerID" validate:"required,gt=0"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string  `json:"startTime" validate:"required"`
	EndTime    string  `json:"endTime" validate:"required"`
	MealsQty   int     `json:"mealsQty" validate:"gte=0,lte=5"`
	Note       *string `json:"note" validate:"omitnil,max=500"`
}

func (h *Handler) CreateWorkLog(w http.ResponseWriter, r *http.Request) {
	var req workLogRequest

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

	p, err := h.ownedProvider(sub, req.ProviderID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "服务人员不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if !p.Active {
		h.errorResponse(w, r, "服务人员已停用")
		return
	}

	date, err := utils.ParseWorkDate(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	rates, err := h.rateSheetFor(r.Context(), sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	wl := &domain.WorkLog{
		UserID:     sub,
		ProviderID: p.ID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		MealsQty:   req.MealsQty,
		Note:       utils.NormalizeNote(req.Note),
	}
	if err := utils.ValueWorkLog(wl, rates); err != nil {
		h.valuationError(w, r, err)
		return
	}

	if err := h.repository.CreateWorkLog(wl); err != nil {
		h.workLogError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建工时记录成功", wl)
}

func (h *Handler) PreviewWorkLog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
		MealsQty  int    `json:"mealsQty" validate:"gte=0,lte=5"`
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

	rates, err := h.rateSheetFor(r.Context(), sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 预览不落库
	wl := &domain.WorkLog{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		MealsQty:  req.MealsQty,
	}
	if err := utils.ValueWorkLog(wl, rates); err != nil {
		h.valuationError(w, r, err)
		return
	}

	h.successResponse(w, r, "计算成功", map[string]any{
		"minutesDay":       wl.MinutesDay,
		"minutesNight":     wl.MinutesNight,
		"hoursDay":         report.FormatHM(wl.MinutesDay),
		"hoursNight":       report.FormatHM(wl.MinutesNight),
		"totalValue":       wl.TotalValue,
		"unitValueApplied": wl.UnitValueApplied,
		"totalMealCost":    wl.TotalMealCost,
		"dayStart":         valuation.DefaultBandSchedule.DayStart.String(),
		"dayEnd":           valuation.DefaultBandSchedule.DayEnd.String(),
	})
}

func (h *Handler) ExportWorkLogs(w http.ResponseWriter, r *http.Request) {
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
	if len(logs) == 0 {
		h.errorResponse(w, r, "所选月份没有工时记录")
		return
	}

	providers, err := h.repository.GetProvidersByUserID(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	names := make(map[int64]string, len(providers))
	for _, p := range providers {
		names[p.ID] = p.Name
	}

	// 先写到内存里，生成失败时还能返回 JSON 错误
	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, logs, names); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.WorkbookFileName(f)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) GetWorkLog(w http.ResponseWriter, r *http.Request) {
	wl := r.Context().Value(WorkLogCtx).(*domain.WorkLog)
	h.successResponse(w, r, "获取工时记录成功", wl)
}

func (h *Handler) UpdateWorkLog(w http.ResponseWriter, r *http.Request) {
	wl := r.Context().Value(WorkLogCtx).(*domain.WorkLog)

	var req struct {
		ProviderID *int64  `json:"providerID" validate:"omitnil,gt=0"`
		Date       *string `json:"date" validate:"omitnil,datetime=2006-01-02"`
		StartTime  *string `json:"startTime"`
		EndTime    *string `json:"endTime"`
		MealsQty   *int    `json:"mealsQty" validate:"omitnil,gte=0,lte=5"`
		Note       *string `json:"note" validate:"omitnil,max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.ProviderID != nil && *req.ProviderID != wl.ProviderID {
		p, err := h.ownedProvider(wl.UserID, *req.ProviderID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "服务人员不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		if !p.Active {
			h.errorResponse(w, r, "服务人员已停用")
			return
		}
		wl.ProviderID = p.ID
	}
	if req.Date != nil {
		date, err := utils.ParseWorkDate(*req.Date)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		wl.Date = date
	}
	if req.StartTime != nil {
		wl.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		wl.EndTime = *req.EndTime
	}
	if req.MealsQty != nil {
		wl.MealsQty = *req.MealsQty
	}
	if req.Note != nil {
		wl.Note = utils.NormalizeNote(req.Note)
	}

	// 修改后按当前计价参数重新计算
	rates, err := h.rateSheetFor(r.Context(), wl.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := utils.ValueWorkLog(wl, rates); err != nil {
		h.valuationError(w, r, err)
		return
	}

	if err := h.repository.UpdateWorkLog(wl); err != nil {
		h.workLogError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新工时记录成功", wl)
}

func (h *Handler) DeleteWorkLog(w http.ResponseWriter, r *http.Request) {
	wl := r.Context().Value(WorkLogCtx).(*domain.WorkLog)

	if err := h.repository.DeleteWorkLog(wl); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "记录不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除工时记录成功", nil)
}
