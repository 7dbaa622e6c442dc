package valuation

import (
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// RateSheet 是每个用户的计价配置，货币单位为每小时（餐费为每份）
type RateSheet struct {
	DayRate       decimal.Decimal `json:"dayRate"`
	NightRate     decimal.Decimal `json:"nightRate"`
	MealUnitValue decimal.Decimal `json:"mealUnitValue"`
}

func DefaultRateSheet() RateSheet {
	return RateSheet{
		DayRate:       decimal.NewFromInt(25),
		NightRate:     decimal.NewFromInt(27),
		MealUnitValue: decimal.NewFromInt(15),
	}
}

func (r RateSheet) Validate() error {
	if r.DayRate.IsNegative() {
		return invalid("rates.dayRate", "%s must not be negative", r.DayRate)
	}
	if r.NightRate.IsNegative() {
		return invalid("rates.nightRate", "%s must not be negative", r.NightRate)
	}
	if r.MealUnitValue.IsNegative() {
		return invalid("rates.mealUnitValue", "%s must not be negative", r.MealUnitValue)
	}
	return nil
}

type Result struct {
	MinutesDay   int             `json:"minutesDay"`
	MinutesNight int             `json:"minutesNight"`
	TotalValue   decimal.Decimal `json:"totalValue"`
}

// Split 把班次时长拆分为白天分钟数和夜间分钟数，两者之和恒等于班次时长
func Split(shift ShiftSpan, schedule BandSchedule) (int, int, error) {
	if err := shift.Validate(); err != nil {
		return 0, 0, err
	}
	if err := schedule.Validate(); err != nil {
		return 0, 0, err
	}

	day, night := split(shift, schedule)
	return day, night, nil
}

func split(shift ShiftSpan, schedule BandSchedule) (int, int) {
	s, e := shift.bounds()
	if e <= s {
		return 0, 0
	}

	dayStart := schedule.DayStart.Minutes()
	dayEnd := schedule.DayEnd.Minutes()

	day, night := 0, 0
	first := (s / minutesPerDay) * minutesPerDay
	last := ((e - 1) / minutesPerDay) * minutesPerDay

	for d := first; d <= last; d += minutesPerDay {
		day += overlap(s, e, d+dayStart, d+dayEnd)
		night += overlap(s, e, d, d+dayStart)
		night += overlap(s, e, d+dayEnd, d+minutesPerDay)
	}

	return day, night
}

func overlap(a0, a1, b0, b1 int) int {
	return max(0, min(a1, b1)-max(a0, b0))
}

// SplitAndValue 拆分班次并按白天/夜间时薪计价，金额只在最后一步四舍五入到分
func SplitAndValue(shift ShiftSpan, schedule BandSchedule, rates RateSheet) (Result, error) {
	if err := rates.Validate(); err != nil {
		return Result{}, err
	}

	day, night, err := Split(shift, schedule)
	if err != nil {
		return Result{}, err
	}

	total := decimal.NewFromInt(int64(day)).Mul(rates.DayRate).
		Add(decimal.NewFromInt(int64(night)).Mul(rates.NightRate)).
		Div(minutesPerHour).
		Round(2)

	return Result{
		MinutesDay:   day,
		MinutesNight: night,
		TotalValue:   total,
	}, nil
}

func MealCost(quantity int, unitValue decimal.Decimal) (decimal.Decimal, error) {
	if quantity < 0 {
		return decimal.Zero, invalid("meals.quantity", "%d must not be negative", quantity)
	}
	if unitValue.IsNegative() {
		return decimal.Zero, invalid("meals.unitValue", "%s must not be negative", unitValue)
	}

	return decimal.NewFromInt(int64(quantity)).Mul(unitValue).Round(2), nil
}
