package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/valuation"
)

type Settings struct {
	UserID        int64           `json:"userID"`
	DayRate       decimal.Decimal `json:"dayRate"`
	NightRate     decimal.Decimal `json:"nightRate"`
	MealUnitValue decimal.Decimal `json:"mealUnitValue"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Version       int32           `json:"-"`
}

func (s *Settings) RateSheet() valuation.RateSheet {
	return valuation.RateSheet{
		DayRate:       s.DayRate,
		NightRate:     s.NightRate,
		MealUnitValue: s.MealUnitValue,
	}
}
