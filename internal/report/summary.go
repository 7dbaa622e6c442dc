package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
)

type Summary struct {
	Count        int             `json:"count"`
	MinutesDay   int             `json:"minutesDay"`
	MinutesNight int             `json:"minutesNight"`
	TotalMinutes int             `json:"totalMinutes"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	MealsQty     int             `json:"mealsQty"`
	MealCost     decimal.Decimal `json:"mealCost"`
}

func Summarize(logs []*domain.WorkLog) Summary {
	s := Summary{
		TotalValue: decimal.Zero,
		MealCost:   decimal.Zero,
	}

	for _, wl := range logs {
		s.Count++
		s.MinutesDay += wl.MinutesDay
		s.MinutesNight += wl.MinutesNight
		s.TotalValue = s.TotalValue.Add(wl.TotalValue)
		s.MealsQty += wl.MealsQty
		s.MealCost = s.MealCost.Add(wl.TotalMealCost)
	}
	s.TotalMinutes = s.MinutesDay + s.MinutesNight

	return s
}

// FormatHM 把分钟数格式化为 "8h05min"
func FormatHM(minutes int) string {
	minutes = max(0, minutes)
	return fmt.Sprintf("%dh%02dmin", minutes/60, minutes%60)
}

// Hours 把分钟数换算为保留两位小数的小时数
func Hours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}
