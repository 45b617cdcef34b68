/*
main.go - obcalc, the command-line premium pay calculator

PURPOSE:
  Prices shifts and inspects the agreement calendar without a server or
  database. Omitted shift fields come from the same DEFAULT_* settings the
  server uses (environment or .env).

COMMANDS:
  obcalc calc     --date 2025-03-10 [--area --start --end --break --wage --tax]
  obcalc roster   --from 2025-03-01 --to 2025-03-31 --rule "FREQ=WEEKLY;BYDAY=SA" [shift flags]
  obcalc windows  --date 2025-03-10 [--area]
  obcalc classify --date 2025-12-24
  obcalc holidays [--year 2025]
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/warp/shift-premium/config"
	"github.com/warp/shift-premium/factory"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

const appVersion = "0.3.0"

// shiftFlags are the template flags shared by calc and roster.
type shiftFlags struct {
	area  string
	start string
	end   string
	brk   int
	wage  float64
	tax   float64
}

func (sf *shiftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sf.area, "area", "", "Work area: Store, Warehouse or ECommerce")
	cmd.Flags().StringVar(&sf.start, "start", "", "Shift start HH:MM")
	cmd.Flags().StringVar(&sf.end, "end", "", "Shift end HH:MM (earlier than start = next day)")
	cmd.Flags().IntVar(&sf.brk, "break", 0, "Unpaid break in minutes")
	cmd.Flags().Float64Var(&sf.wage, "wage", 0, "Hourly base wage")
	cmd.Flags().Float64Var(&sf.tax, "tax", 0, "Tax rate in percent")
}

// template copies only the flags the user set, so the rest fall back to
// the configured defaults.
func (sf *shiftFlags) template(cmd *cobra.Command) factory.ShiftTemplateJSON {
	tj := factory.ShiftTemplateJSON{WorkArea: sf.area, StartTime: sf.start, EndTime: sf.end}
	if cmd.Flags().Changed("break") {
		tj.BreakMinutes = &sf.brk
	}
	if cmd.Flags().Changed("wage") {
		tj.BaseWage = &sf.wage
	}
	if cmd.Flags().Changed("tax") {
		tj.TaxRate = &sf.tax
	}
	return tj
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "obcalc",
		Short:         "Shift premium (OB) pay calculator",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("obcalc v{{.Version}}\n")
	root.AddCommand(newCalcCmd(), newRosterCmd(), newWindowsCmd(), newClassifyCmd(), newHolidaysCmd())
	return root
}

func newFactory() (*factory.RequestFactory, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	prefs, err := cfg.Preferences()
	if err != nil {
		return nil, err
	}
	return factory.NewRequestFactory(prefs), nil
}

// =============================================================================
// COMMANDS
// =============================================================================

func newCalcCmd() *cobra.Command {
	var (
		sf   shiftFlags
		date string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Price one shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFactory()
			if err != nil {
				return err
			}
			shift, err := f.FromJSON(factory.CalculationJSON{ShiftTemplateJSON: sf.template(cmd), Date: date})
			if err != nil {
				return err
			}
			res, err := premium.Evaluate(shift)
			if err != nil {
				return err
			}
			printShift(cmd, shift)
			printResult(cmd, res)
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&date, "date", "", "Shift date YYYY-MM-DD")
	cmd.MarkFlagRequired("date")
	return cmd
}

func newRosterCmd() *cobra.Command {
	var (
		sf             shiftFlags
		rule, from, to string
	)
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Price every occurrence of a recurring shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFactory()
			if err != nil {
				return err
			}
			shifts, err := f.ExpandRoster(factory.RosterJSON{
				ShiftTemplateJSON: sf.template(cmd),
				Recurrence:        rule,
				From:              from,
				To:                to,
			})
			if err != nil {
				return err
			}
			results, sum, err := premium.NewEvaluator(nil).EvaluateAll(shifts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, r := range results {
				fmt.Fprintf(out, "%s %-9s  %5s h  gross %10s  net %10s\n",
					shifts[i].Date, r.Day.Weekday, r.TotalHours.StringFixed(2),
					r.GrossSalary.StringFixed(2), r.NetSalary.StringFixed(2))
			}
			fmt.Fprintf(out, "\n%d shifts\n", sum.Shifts)
			printTotals(cmd, sum.TotalHours.StringFixed(2), sum.BasePay.StringFixed(2), sum.TotalPremium.StringFixed(2), sum.GrossSalary.StringFixed(2), sum.NetSalary.StringFixed(2))
			printBreakdown(cmd, sum.Premiums)
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&rule, "rule", "", "RFC 5545 recurrence, e.g. FREQ=WEEKLY;BYDAY=SA")
	cmd.Flags().StringVar(&from, "from", "", "First date YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Last date YYYY-MM-DD (inclusive)")
	cmd.MarkFlagRequired("rule")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func newWindowsCmd() *cobra.Command {
	var area, date string
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List the premium windows of an area on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := premium.ParseWorkArea(area)
			if err != nil {
				return err
			}
			d, err := generic.ParseDate(date)
			if err != nil {
				return err
			}
			day := premium.Classify(d)
			windows, err := premium.GenerateWindows(a, day)
			if err != nil {
				return err
			}

			printDay(cmd, day)
			out := cmd.OutOrStdout()
			if len(windows) == 0 {
				fmt.Fprintln(out, "no premium windows")
			}
			for _, w := range windows {
				fmt.Fprintf(out, "%s - %s  %3d%%  %s\n",
					w.Start.Format("Mon 15:04:05.000"), w.End.Format("Mon 15:04:05.000"), w.Percent, w.Label)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&area, "area", "Store", "Work area")
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD")
	cmd.MarkFlagRequired("date")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show how a date is classified",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := generic.ParseDate(date)
			if err != nil {
				return err
			}
			printDay(cmd, premium.Classify(d))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD")
	cmd.MarkFlagRequired("date")
	return cmd
}

func newHolidaysCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List public holidays and eves",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := premium.DefaultClassifier()
			out := cmd.OutOrStdout()
			for _, h := range c.Holidays(year) {
				fmt.Fprintf(out, "%s  %s\n", h.Date, h.Name)
			}
			for _, e := range c.Eves(year) {
				fmt.Fprintf(out, "%s  %s\n", e.Date, e.Kind)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", premium.ScheduleYear, "Calendar year")
	return cmd
}

// =============================================================================
// OUTPUT
// =============================================================================

func printDay(cmd *cobra.Command, day premium.CalendarDay) {
	parts := []string{day.Date.String(), day.Weekday.String()}
	if day.IsPublicHoliday {
		parts = append(parts, "public holiday ("+day.HolidayName+")")
	}
	if day.Eve != premium.EveNone {
		parts = append(parts, string(day.Eve))
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, "  "))
}

func printShift(cmd *cobra.Command, s premium.Shift) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s-%s, break %d min, wage %s, tax %s%%\n\n",
		s.Area, s.Date, s.Start, s.End, s.BreakMinutes, s.BaseWage, s.TaxRate)
}

func printResult(cmd *cobra.Command, r premium.Result) {
	printTotals(cmd, r.TotalHours.StringFixed(2), r.BasePay.StringFixed(2), r.TotalPremium.StringFixed(2), r.GrossSalary.StringFixed(2), r.NetSalary.StringFixed(2))
	printBreakdown(cmd, r.Breakdown)
}

func printTotals(cmd *cobra.Command, hours, base, prem, gross, net string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Hours:    %10s\n", hours)
	fmt.Fprintf(out, "Base pay: %10s\n", base)
	fmt.Fprintf(out, "Premium:  %10s\n", prem)
	fmt.Fprintf(out, "Gross:    %10s\n", gross)
	fmt.Fprintf(out, "Net:      %10s\n", net)
}

func printBreakdown(cmd *cobra.Command, entries []premium.BreakdownEntry) {
	if len(entries) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	for _, e := range entries {
		fmt.Fprintf(out, "  %-26s %3d%%  %5s h  %10s\n", e.Label, e.Percentage, e.Hours.StringFixed(2), e.Amount.StringFixed(2))
	}
}
