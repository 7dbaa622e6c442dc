package valuation

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ClockTime 表示一天中的某个时刻，而不是一个绝对时间点
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func NewClockTime(hour, minute int) (ClockTime, error) {
	c := ClockTime{Hour: hour, Minute: minute}
	if err := c.validate("clockTime"); err != nil {
		return ClockTime{}, err
	}
	return c, nil
}

// ParseClockTime 接受 "HH:MM" 或 "HH:MM:SS"，秒会被丢弃（数据库中的 time 列带秒）
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return ClockTime{}, invalid("clockTime", "%q is not in HH:MM form", s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 2 {
			return ClockTime{}, invalid("clockTime", "%q is not in HH:MM form", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return ClockTime{}, invalid("clockTime", "%q is not in HH:MM form", s)
		}
		nums[i] = n
	}

	if len(nums) == 3 && nums[2] > 59 {
		return ClockTime{}, invalid("clockTime", "second %d out of range", nums[2])
	}

	return NewClockTime(nums[0], nums[1])
}

func (c ClockTime) Validate() error {
	return c.validate("clockTime")
}

func (c ClockTime) validate(field string) error {
	if c.Hour < 0 || c.Hour > 23 {
		return invalid(field, "hour %d out of range [0,23]", c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return invalid(field, "minute %d out of range [0,59]", c.Minute)
	}
	return nil
}

// Minutes 返回从 00:00 起算的分钟数
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// BandSchedule 定义白天时段 [DayStart, DayEnd)，其余时间都属于夜间时段
type BandSchedule struct {
	DayStart ClockTime `json:"dayStart"`
	DayEnd   ClockTime `json:"dayEnd"`
}

var DefaultBandSchedule = BandSchedule{
	DayStart: ClockTime{Hour: 7},
	DayEnd:   ClockTime{Hour: 19},
}

func (b BandSchedule) Validate() error {
	if err := b.DayStart.validate("schedule.dayStart"); err != nil {
		return err
	}
	if err := b.DayEnd.validate("schedule.dayEnd"); err != nil {
		return err
	}
	if b.DayStart.Minutes() >= b.DayEnd.Minutes() {
		return invalid("schedule", "day band %s-%s must start before it ends", b.DayStart, b.DayEnd)
	}
	return nil
}

// ShiftSpan 是一次班次的起止时刻。
// Days 为 0 时，End 早于 Start 视为跨过午夜；End 等于 Start 视为零时长。
// Days 大于 0 时，End 落在 Start 之后第 Days 个自然日。
type ShiftSpan struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
	Days  int       `json:"days,omitempty"`
}

func (s ShiftSpan) Validate() error {
	if err := s.Start.validate("shift.start"); err != nil {
		return err
	}
	if err := s.End.validate("shift.end"); err != nil {
		return err
	}
	if s.Days < 0 {
		return invalid("shift.days", "%d must not be negative", s.Days)
	}
	return nil
}

// bounds 把班次映射到合成的分钟时间轴上的半开区间 [start, end)
func (s ShiftSpan) bounds() (int, int) {
	start := s.Start.Minutes()
	end := s.End.Minutes()

	switch {
	case s.Days > 0:
		end += s.Days * minutesPerDay
	case end < start:
		end += minutesPerDay
	}

	return start, end
}

// DurationMinutes 返回规范化之后的班次时长
func (s ShiftSpan) DurationMinutes() int {
	start, end := s.bounds()
	return end - start
}
