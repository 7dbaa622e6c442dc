package seed

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/valuation"
)

type memoryStore struct {
	providers []*domain.Provider
	logs      []*domain.WorkLog
	seen      map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{seen: map[string]bool{}}
}

func (m *memoryStore) CreateProvider(p *domain.Provider) error {
	p.ID = int64(len(m.providers) + 1)
	p.Active = true
	m.providers = append(m.providers, p)
	return nil
}

func (m *memoryStore) UpdateProvider(p *domain.Provider) error {
	p.Version++
	return nil
}

func (m *memoryStore) GetProvidersByUserID(userID int64) ([]*domain.Provider, error) {
	out := make([]*domain.Provider, 0)
	for _, p := range m.providers {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryStore) GetOrCreateSettings(userID int64) (*domain.Settings, error) {
	rates := valuation.DefaultRateSheet()
	return &domain.Settings{UserID: userID, DayRate: rates.DayRate, NightRate: rates.NightRate, MealUnitValue: rates.MealUnitValue}, nil
}

func (m *memoryStore) CreateWorkLog(wl *domain.WorkLog) error {
	key := fmt.Sprintf("%d/%s/%s/%s", wl.ProviderID, wl.Date.Format("2006-01-02"), wl.StartTime, wl.EndTime)
	if m.seen[key] {
		return &pgconn.PgError{Code: "23505", ConstraintName: "work_logs_provider_id_date_start_time_end_time_key"}
	}
	m.seen[key] = true
	wl.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, wl)
	return nil
}

func TestLoadFixtureFile(t *testing.T) {
	f, err := LoadFixtureFile("data/fixture.yaml")
	require.NoError(t, err)
	require.Len(t, f.Providers, 3)
	assert.Len(t, f.Providers[0].Shifts, 4)
	require.NotNil(t, f.Providers[2].Active)
	assert.False(t, *f.Providers[2].Active)
}

func TestLoadFixture_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown field":  "providers:\n  - name: a\n    colour: red\n",
		"empty name":     "providers:\n  - name: ' '\n",
		"duplicate name": "providers:\n  - name: a\n  - name: a\n",
		"bad date":       "providers:\n  - name: a\n    shifts:\n      - {date: '2025/03/01', start: '07:00', end: '19:00'}\n",
		"bad clock":      "providers:\n  - name: a\n    shifts:\n      - {date: '2025-03-01', start: '24:00', end: '19:00'}\n",
		"negative meals": "providers:\n  - name: a\n    shifts:\n      - {date: '2025-03-01', start: '07:00', end: '19:00', meals: -1}\n",
		"too many meals": "providers:\n  - name: a\n    shifts:\n      - {date: '2025-03-01', start: '07:00', end: '19:00', meals: 6}\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFixture(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	f, err := LoadFixtureFile("data/fixture.yaml")
	require.NoError(t, err)

	store := newMemoryStore()

	stats, err := Apply(store, 1, f)
	require.NoError(t, err)
	assert.Equal(t, Stats{Providers: 3, WorkLogs: 7}, stats)
	assert.False(t, store.providers[2].Active)

	// 第一条：07:00-19:00 白班 12 小时，两餐
	first := store.logs[0]
	assert.Equal(t, 720, first.MinutesDay)
	assert.Equal(t, 0, first.MinutesNight)
	assert.True(t, decimal.NewFromInt(300).Equal(first.TotalValue))
	assert.True(t, decimal.NewFromInt(30).Equal(first.TotalMealCost))
	assert.Nil(t, first.Note)

	// 第二条：22:00-06:00 跨午夜夜班
	second := store.logs[1]
	assert.Equal(t, 0, second.MinutesDay)
	assert.Equal(t, 480, second.MinutesNight)
	assert.True(t, decimal.NewFromInt(216).Equal(second.TotalValue))
	require.NotNil(t, second.Note)

	// 再导入一次不会产生新的服务人员或记录
	stats, err = Apply(store, 1, f)
	require.NoError(t, err)
	assert.Equal(t, Stats{Skipped: 7}, stats)
	assert.Len(t, store.providers, 3)
}
