package report

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const monthLayout = "2006-01"

var ErrInvalidFilter = errors.New("invalid filter")

// Filter 按月份以及可选的服务人员筛选工时记录
type Filter struct {
	Month      string `json:"month"`
	ProviderID *int64 `json:"providerID"`
}

// ParseFilter 解析查询参数，month 为空时取 now 所在的月份，providerID 为空或 ALL 时不按服务人员过滤
func ParseFilter(month, providerID string, now time.Time) (Filter, error) {
	f := Filter{Month: month}
	if f.Month == "" {
		f.Month = now.Format(monthLayout)
	}

	if providerID != "" && providerID != "ALL" {
		id, err := strconv.ParseInt(providerID, 10, 64)
		if err != nil || id <= 0 {
			return Filter{}, fmt.Errorf("%w: provider %q", ErrInvalidFilter, providerID)
		}
		f.ProviderID = &id
	}

	if _, _, err := f.Range(); err != nil {
		return Filter{}, err
	}

	return f, nil
}

// Range 返回月份对应的半开日期区间 [from, to)
func (f Filter) Range() (time.Time, time.Time, error) {
	from, err := time.Parse(monthLayout, f.Month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %q", ErrInvalidFilter, f.Month)
	}
	return from, from.AddDate(0, 1, 0), nil
}
