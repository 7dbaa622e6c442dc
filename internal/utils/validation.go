package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/valuation"
)

const DateLayout = "2006-01-02"

func ParseWorkDate(s string) (time.Time, error) {
	date, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("日期 %q 格式错误，应为 YYYY-MM-DD", s)
	}
	return date, nil
}

// NormalizeNote 去掉备注两端的空白，空备注存为 NULL
func NormalizeNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ValueWorkLog 根据 StartTime、EndTime 和 MealsQty 计算工时记录的分钟数、金额与餐费。
// 起止时间会被规范化为 HH:MM:00，餐费单价取 rates 中的当前值并记录在 UnitValueApplied 中。
func ValueWorkLog(wl *domain.WorkLog, rates valuation.RateSheet) error {
	start, err := valuation.ParseClockTime(wl.StartTime)
	if err != nil {
		return err
	}
	end, err := valuation.ParseClockTime(wl.EndTime)
	if err != nil {
		return err
	}

	result, err := valuation.SplitAndValue(valuation.ShiftSpan{Start: start, End: end}, valuation.DefaultBandSchedule, rates)
	if err != nil {
		return err
	}

	mealCost, err := valuation.MealCost(wl.MealsQty, rates.MealUnitValue)
	if err != nil {
		return err
	}

	wl.StartTime = start.String() + ":00"
	wl.EndTime = end.String() + ":00"
	wl.MinutesDay = result.MinutesDay
	wl.MinutesNight = result.MinutesNight
	wl.TotalValue = result.TotalValue
	wl.UnitValueApplied = rates.MealUnitValue
	wl.TotalMealCost = mealCost

	return nil
}
