package report

import (
	"fmt"
	"io"

	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const SheetWorkLogs = "Lancamentos"

var workbookHeader = []any{
	"Data",
	"Prestador",
	"Início",
	"Fim",
	"Horas Dia",
	"Horas Noite",
	"Total (R$)",
	"Refeições (Qtd)",
	"Refeições (R$)",
	"Obs",
}

var workbookColumnWidths = []float64{12, 22, 10, 10, 12, 12, 12, 14, 14, 30}

// WriteWorkbook 把工时记录写成 xlsx，最后一行是合计
func WriteWorkbook(w io.Writer, logs []*domain.WorkLog, providerNames map[int64]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetWorkLogs); err != nil {
		return err
	}

	for i, width := range workbookColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetWorkLogs, col, col, width); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(SheetWorkLogs, "A1", &workbookHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetWorkLogs, 1, 1, bold); err != nil {
		return err
	}

	for i, wl := range logs {
		name, ok := providerNames[wl.ProviderID]
		if !ok {
			name = fmt.Sprintf("#%d", wl.ProviderID)
		}

		note := ""
		if wl.Note != nil {
			note = *wl.Note
		}

		row := []any{
			wl.Date.Format("2006-01-02"),
			name,
			wl.StartTime,
			wl.EndTime,
			Hours(wl.MinutesDay).InexactFloat64(),
			Hours(wl.MinutesNight).InexactFloat64(),
			wl.TotalValue.InexactFloat64(),
			wl.MealsQty,
			wl.TotalMealCost.InexactFloat64(),
			note,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetWorkLogs, cell, &row); err != nil {
			return err
		}
	}

	s := Summarize(logs)
	totalRow := len(logs) + 2
	totals := []any{
		"Total",
		"",
		"",
		"",
		Hours(s.MinutesDay).InexactFloat64(),
		Hours(s.MinutesNight).InexactFloat64(),
		s.TotalValue.InexactFloat64(),
		s.MealsQty,
		s.MealCost.InexactFloat64(),
		"",
	}

	cell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetWorkLogs, cell, &totals); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetWorkLogs, totalRow, totalRow, bold); err != nil {
		return err
	}

	return f.Write(w)
}

func WorkbookFileName(f Filter) string {
	if f.ProviderID == nil {
		return fmt.Sprintf("lancamentos_%s_todos.xlsx", f.Month)
	}
	return fmt.Sprintf("lancamentos_%s_prestador-%d.xlsx", f.Month, *f.ProviderID)
}
