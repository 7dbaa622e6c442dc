package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/valuation"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestSplit_Text(t *testing.T) {
	out, err := run(t, "split", "--start", "22:00", "--end", "06:00")
	require.NoError(t, err)

	assert.Contains(t, out, "22:00 - 06:00")
	assert.Contains(t, out, "白班: 0 分钟")
	assert.Contains(t, out, "夜班: 480 分钟 (8h00min)")
	assert.Contains(t, out, "金额: 216.00")
}

func TestSplit_JSON(t *testing.T) {
	out, err := run(t, "split", "--start", "18:00", "--end", "22:00", "--day-rate", "30", "--night-rate", "40", "--format", "json")
	require.NoError(t, err)

	var got struct {
		MinutesDay   int    `json:"minutesDay"`
		MinutesNight int    `json:"minutesNight"`
		TotalValue   string `json:"totalValue"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 60, got.MinutesDay)
	assert.Equal(t, 180, got.MinutesNight)
	assert.Equal(t, "150", got.TotalValue)
}

func TestSplit_MultiDay(t *testing.T) {
	out, err := run(t, "split", "--start", "07:00", "--end", "07:00", "--days", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "(+1)")
	assert.Contains(t, out, "白班: 720 分钟")
	assert.Contains(t, out, "夜班: 720 分钟")
}

func TestSplit_InvalidConfiguration(t *testing.T) {
	tests := map[string][]string{
		"hour out of range": {"split", "--start", "24:00", "--end", "06:00"},
		"negative rate":     {"split", "--start", "08:00", "--end", "09:00", "--day-rate=-1"},
		"garbage rate":      {"split", "--start", "08:00", "--end", "09:00", "--night-rate", "abc"},
		"inverted schedule": {"split", "--start", "08:00", "--end", "09:00", "--day-start", "19:00", "--day-end", "07:00"},
		"negative days":     {"split", "--start", "08:00", "--end", "09:00", "--days=-1"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, args...)
			assert.ErrorIs(t, err, valuation.ErrInvalidConfiguration)
		})
	}
}

func TestSplit_UnknownFormat(t *testing.T) {
	_, err := run(t, "split", "--start", "08:00", "--end", "09:00", "--format", "xml")
	require.Error(t, err)
	assert.NotErrorIs(t, err, valuation.ErrInvalidConfiguration)
}

func TestMeal(t *testing.T) {
	out, err := run(t, "meal", "--qty", "3", "--unit", "12.5")
	require.NoError(t, err)
	assert.Equal(t, "37.50\n", out)

	_, err = run(t, "meal", "--qty=-1")
	assert.ErrorIs(t, err, valuation.ErrInvalidConfiguration)
}
