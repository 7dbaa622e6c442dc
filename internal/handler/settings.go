package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/valuation"
)

func settingsCacheKey(userID int64) string {
	return fmt.Sprintf("settings_%d", userID)
}

// getSettings 优先读 redis 缓存，缓存不可用时直接回源数据库
func (h *Handler) getSettings(ctx context.Context, userID int64) (*domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	key := settingsCacheKey(userID)

	cached, err := h.redisClient.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		s := &domain.Settings{}
		if err := json.Unmarshal(cached, s); err == nil {
			return s, nil
		}
	case !errors.Is(err, redis.Nil):
		slog.Warn("无法读取计价配置缓存", "userID", userID, "error", err)
	}

	s, err := h.repository.GetOrCreateSettings(userID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	if err := h.redisClient.Set(ctx, key, data, time.Duration(h.config.Settings.CacheExpiration)*time.Second).Err(); err != nil {
		slog.Warn("无法写入计价配置缓存", "userID", userID, "error", err)
	}

	return s, nil
}

func (h *Handler) GetMySettings(w http.ResponseWriter, r *http.Request) {
	sub, err := currentUserID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	s, err := h.getSettings(r.Context(), sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取计价配置成功", s)
}

func (h *Handler) UpdateMySettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DayRate       *decimal.Decimal `json:"dayRate"`
		NightRate     *decimal.Decimal `json:"nightRate"`
		MealUnitValue *decimal.Decimal `json:"mealUnitValue"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	sub, err := currentUserID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 缓存中没有 version，更新时必须从数据库读取
	s, err := h.repository.GetOrCreateSettings(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if req.DayRate != nil {
		s.DayRate = *req.DayRate
	}
	if req.NightRate != nil {
		s.NightRate = *req.NightRate
	}
	if req.MealUnitValue != nil {
		s.MealUnitValue = *req.MealUnitValue
	}

	if err := s.RateSheet().Validate(); err != nil {
		h.valuationError(w, r, err)
		return
	}

	if err := h.repository.UpdateSettings(s); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新计价配置失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, settingsCacheKey(sub)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新计价配置成功", s)
}

// rateSheetFor 返回用户当前的计价参数
func (h *Handler) rateSheetFor(ctx context.Context, userID int64) (valuation.RateSheet, error) {
	s, err := h.getSettings(ctx, userID)
	if err != nil {
		return valuation.RateSheet{}, err
	}
	return s.RateSheet(), nil
}
