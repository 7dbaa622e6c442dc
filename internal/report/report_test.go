package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

func sampleLogs() []*domain.WorkLog {
	note := "cobertura"
	return []*domain.WorkLog{
		{
			ID:            1,
			ProviderID:    10,
			Date:          time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			StartTime:     "07:00:00",
			EndTime:       "19:00:00",
			MinutesDay:    720,
			TotalValue:    decimal.RequireFromString("300"),
			MealsQty:      2,
			TotalMealCost: decimal.RequireFromString("30"),
			Note:          &note,
		},
		{
			ID:            2,
			ProviderID:    11,
			Date:          time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			StartTime:     "22:00:00",
			EndTime:       "06:00:00",
			MinutesNight:  480,
			TotalValue:    decimal.RequireFromString("216"),
			TotalMealCost: decimal.Zero,
		},
		{
			ID:            3,
			ProviderID:    10,
			Date:          time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			StartTime:     "18:30:00",
			EndTime:       "19:30:00",
			MinutesDay:    30,
			MinutesNight:  30,
			TotalValue:    decimal.RequireFromString("26"),
			MealsQty:      1,
			TotalMealCost: decimal.RequireFromString("15"),
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleLogs())

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 750, s.MinutesDay)
	assert.Equal(t, 510, s.MinutesNight)
	assert.Equal(t, 1260, s.TotalMinutes)
	assert.Equal(t, "542.00", s.TotalValue.StringFixed(2))
	assert.Equal(t, 3, s.MealsQty)
	assert.Equal(t, "45.00", s.MealCost.StringFixed(2))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Count)
	assert.True(t, s.TotalValue.IsZero())
	assert.True(t, s.MealCost.IsZero())
}

func TestFormatHM(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0h00min"},
		{5, "0h05min"},
		{60, "1h00min"},
		{485, "8h05min"},
		{-10, "0h00min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHM(tt.minutes))
	}
}

func TestHours(t *testing.T) {
	assert.Equal(t, "12.00", Hours(720).StringFixed(2))
	assert.Equal(t, "0.33", Hours(20).StringFixed(2))
}

func TestParseFilter(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	f, err := ParseFilter("", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-10", f.Month)
	assert.Nil(t, f.ProviderID)

	f, err = ParseFilter("2026-02", "ALL", now)
	require.NoError(t, err)
	assert.Nil(t, f.ProviderID)

	from, to, err := f.Range()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), to)

	f, err = ParseFilter("2026-12", "7", now)
	require.NoError(t, err)
	require.NotNil(t, f.ProviderID)
	assert.Equal(t, int64(7), *f.ProviderID)

	_, to, err = f.Range()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), to)

	for _, bad := range [][2]string{{"2026-13", ""}, {"march", ""}, {"2026-01", "abc"}, {"2026-01", "-3"}} {
		_, err := ParseFilter(bad[0], bad[1], now)
		assert.ErrorIs(t, err, ErrInvalidFilter, bad)
	}
}

func TestWorkbookFileName(t *testing.T) {
	id := int64(7)
	assert.Equal(t, "lancamentos_2026-03_todos.xlsx", WorkbookFileName(Filter{Month: "2026-03"}))
	assert.Equal(t, "lancamentos_2026-03_prestador-7.xlsx", WorkbookFileName(Filter{Month: "2026-03", ProviderID: &id}))
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWorkbook(&buf, sampleLogs(), map[int64]string{10: "Danylo"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetWorkLogs)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "Data", rows[0][0])
	assert.Equal(t, "Obs", rows[0][9])

	assert.Equal(t, "2026-03-02", rows[1][0])
	assert.Equal(t, "Danylo", rows[1][1])
	assert.Equal(t, "12", rows[1][4])
	assert.Equal(t, "300", rows[1][6])
	assert.Equal(t, "cobertura", rows[1][9])

	assert.Equal(t, "#11", rows[2][1])
	assert.Equal(t, "8", rows[2][5])

	assert.Equal(t, "Total", rows[4][0])
	assert.Equal(t, "542", rows[4][6])
	assert.Equal(t, "3", rows[4][7])
}
