package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/report"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/valuation"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "valuate",
		Short: "离线计算工时的白班/夜班分钟数与金额",
		Long: `valuate 使用与 API 相同的计价逻辑，
在不连接数据库的情况下拆分班次并计算金额与餐费。`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSplitCmd())
	root.AddCommand(newMealCmd())

	return root
}

type splitOptions struct {
	start, end       string
	days             int
	dayStart, dayEnd string
	dayRate          string
	nightRate        string
	format           string
}

type splitOutput struct {
	Start        string          `json:"start"`
	End          string          `json:"end"`
	Days         int             `json:"days"`
	MinutesDay   int             `json:"minutesDay"`
	MinutesNight int             `json:"minutesNight"`
	TotalValue   decimal.Decimal `json:"totalValue"`
}

func newSplitCmd() *cobra.Command {
	opts := &splitOptions{}

	cmd := &cobra.Command{
		Use:   "split",
		Short: "拆分一个班次并计算金额",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd.OutOrStdout(), opts)
		},
	}

	defaults := valuation.DefaultRateSheet()
	cmd.Flags().StringVar(&opts.start, "start", "", "开始时间 (HH:MM)")
	cmd.Flags().StringVar(&opts.end, "end", "", "结束时间 (HH:MM)")
	cmd.Flags().IntVar(&opts.days, "days", 0, "跨越的天数，0 表示结束时间不晚于开始时间时自动跨到次日")
	cmd.Flags().StringVar(&opts.dayStart, "day-start", valuation.DefaultBandSchedule.DayStart.String(), "白班开始时间")
	cmd.Flags().StringVar(&opts.dayEnd, "day-end", valuation.DefaultBandSchedule.DayEnd.String(), "白班结束时间")
	cmd.Flags().StringVar(&opts.dayRate, "day-rate", defaults.DayRate.String(), "白班每小时单价")
	cmd.Flags().StringVar(&opts.nightRate, "night-rate", defaults.NightRate.String(), "夜班每小时单价")
	cmd.Flags().StringVar(&opts.format, "format", "text", "输出格式 (text|json)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func parseRate(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &valuation.ConfigError{Field: field, Reason: fmt.Sprintf("%q 不是合法的金额", s)}
	}
	return d, nil
}

func runSplit(out io.Writer, opts *splitOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("不支持的输出格式 %q", opts.format)
	}

	start, err := valuation.ParseClockTime(opts.start)
	if err != nil {
		return err
	}
	end, err := valuation.ParseClockTime(opts.end)
	if err != nil {
		return err
	}
	dayStart, err := valuation.ParseClockTime(opts.dayStart)
	if err != nil {
		return err
	}
	dayEnd, err := valuation.ParseClockTime(opts.dayEnd)
	if err != nil {
		return err
	}
	dayRate, err := parseRate("rates.dayRate", opts.dayRate)
	if err != nil {
		return err
	}
	nightRate, err := parseRate("rates.nightRate", opts.nightRate)
	if err != nil {
		return err
	}

	shift := valuation.ShiftSpan{Start: start, End: end, Days: opts.days}
	result, err := valuation.SplitAndValue(
		shift,
		valuation.BandSchedule{DayStart: dayStart, DayEnd: dayEnd},
		valuation.RateSheet{DayRate: dayRate, NightRate: nightRate},
	)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(splitOutput{
			Start:        start.String(),
			End:          end.String(),
			Days:         opts.days,
			MinutesDay:   result.MinutesDay,
			MinutesNight: result.MinutesNight,
			TotalValue:   result.TotalValue,
		})
	}

	fmt.Fprintf(out, "%s - %s", start, end)
	if opts.days > 0 {
		fmt.Fprintf(out, " (+%d)", opts.days)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  白班: %d 分钟 (%s)\n", result.MinutesDay, report.FormatHM(result.MinutesDay))
	fmt.Fprintf(out, "  夜班: %d 分钟 (%s)\n", result.MinutesNight, report.FormatHM(result.MinutesNight))
	fmt.Fprintf(out, "  金额: %s\n", result.TotalValue.StringFixed(2))
	return nil
}

func newMealCmd() *cobra.Command {
	var qty int
	var unit string

	cmd := &cobra.Command{
		Use:   "meal",
		Short: "计算餐费",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			unitValue, err := parseRate("meals.unitValue", unit)
			if err != nil {
				return err
			}

			cost, err := valuation.MealCost(qty, unitValue)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cost.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().IntVar(&qty, "qty", 0, "餐数")
	cmd.Flags().StringVar(&unit, "unit", valuation.DefaultRateSheet().MealUnitValue.String(), "每餐单价")

	return cmd
}
