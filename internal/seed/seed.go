package seed

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/utils"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/valuation"
	"gopkg.in/yaml.v3"
)

// Fixture 描述一份可重复导入的演示数据
type Fixture struct {
	Providers []FixtureProvider `yaml:"providers"`
}

type FixtureProvider struct {
	Name   string         `yaml:"name"`
	Active *bool          `yaml:"active"`
	Shifts []FixtureShift `yaml:"shifts"`
}

type FixtureShift struct {
	Date  string `yaml:"date"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Meals int    `yaml:"meals"`
	Note  string `yaml:"note"`
}

// Store 是导入数据时用到的持久化操作
type Store interface {
	CreateProvider(p *domain.Provider) error
	UpdateProvider(p *domain.Provider) error
	GetProvidersByUserID(userID int64) ([]*domain.Provider, error)
	GetOrCreateSettings(userID int64) (*domain.Settings, error)
	CreateWorkLog(wl *domain.WorkLog) error
}

type Stats struct {
	Providers int
	WorkLogs  int
	Skipped   int
}

func LoadFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	f := &Fixture{}
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("解析 fixture 失败: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return f, nil
}

func LoadFixtureFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadFixture(file)
}

// Validate 在写库之前检查所有班次，避免导入到一半才失败
func (f *Fixture) Validate() error {
	names := make(map[string]struct{}, len(f.Providers))

	for i, p := range f.Providers {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("providers[%d]: 名称不能为空", i)
		}
		if _, ok := names[name]; ok {
			return fmt.Errorf("providers[%d]: 名称 %q 重复", i, name)
		}
		names[name] = struct{}{}

		for j, s := range p.Shifts {
			if _, err := utils.ParseWorkDate(s.Date); err != nil {
				return fmt.Errorf("providers[%d].shifts[%d]: %w", i, j, err)
			}
			wl := &domain.WorkLog{StartTime: s.Start, EndTime: s.End, MealsQty: s.Meals}
			if err := utils.ValueWorkLog(wl, valuation.DefaultRateSheet()); err != nil {
				return fmt.Errorf("providers[%d].shifts[%d]: %w", i, j, err)
			}
			if s.Meals > 5 {
				return fmt.Errorf("providers[%d].shifts[%d]: 餐数不能超过 5", i, j)
			}
		}
	}

	return nil
}

// Apply 把 fixture 写入 userID 名下，已存在的服务人员会被复用，重复的班次会被跳过
func Apply(store Store, userID int64, f *Fixture) (Stats, error) {
	stats := Stats{}

	settings, err := store.GetOrCreateSettings(userID)
	if err != nil {
		return stats, err
	}
	rates := settings.RateSheet()

	existing, err := store.GetProvidersByUserID(userID)
	if err != nil {
		return stats, err
	}
	byName := make(map[string]*domain.Provider, len(existing))
	for _, p := range existing {
		byName[p.Name] = p
	}

	for _, fp := range f.Providers {
		name := strings.TrimSpace(fp.Name)

		p, ok := byName[name]
		if !ok {
			p = &domain.Provider{UserID: userID, Name: name}
			if err := store.CreateProvider(p); err != nil {
				return stats, err
			}
			byName[name] = p
			stats.Providers++
		}

		for _, s := range fp.Shifts {
			date, err := utils.ParseWorkDate(s.Date)
			if err != nil {
				return stats, err
			}

			wl := &domain.WorkLog{
				UserID:     userID,
				ProviderID: p.ID,
				Date:       date,
				StartTime:  s.Start,
				EndTime:    s.End,
				MealsQty:   s.Meals,
				Note:       utils.NormalizeNote(&s.Note),
			}
			if err := utils.ValueWorkLog(wl, rates); err != nil {
				return stats, err
			}

			if err := store.CreateWorkLog(wl); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.ConstraintName == "work_logs_provider_id_date_start_time_end_time_key" {
					slog.Warn("跳过重复的班次", "provider", name, "date", s.Date, "start", s.Start, "end", s.End)
					stats.Skipped++
					continue
				}
				return stats, err
			}
			stats.WorkLogs++
		}

		// 停用放在最后，停用的服务人员依然可以保留历史记录
		if fp.Active != nil && *fp.Active != p.Active {
			p.Active = *fp.Active
			if err := store.UpdateProvider(p); err != nil {
				return stats, err
			}
		}
	}

	return stats, nil
}
