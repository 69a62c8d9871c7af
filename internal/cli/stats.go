package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fabiareis/trading-journal/report"
	"github.com/fabiareis/trading-journal/stats"
	"github.com/fabiareis/trading-journal/view"
)

func newStatsCmd(a *app) *cobra.Command {
	var month int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show operation totals, win rate and monthly results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.journal.State()
			out := cmd.OutOrStdout()

			scoped := st.Operations
			if month != 0 {
				scoped = stats.OperationsInMonth(st.Operations, month)
			}
			total := stats.SumNetTotal(scoped)

			fmt.Fprintln(out, "==================================================")
			fmt.Fprintln(out, " Resultados")
			fmt.Fprintln(out, "==================================================")
			fmt.Fprintf(out, "Operações:       %d\n", len(scoped))
			fmt.Fprintf(out, "Resultado:       %s\n", a.fmt.Money(total))
			fmt.Fprintf(out, "Taxa de Acerto:  %s\n", a.fmt.Percent(stats.OperationWinRate(scoped)))
			fmt.Fprintf(out, "Patrimônio:      %s\n", a.fmt.Money(st.Patrimony))
			if month != 0 {
				fmt.Fprintf(out, "Meta Mensal:     %s de %s\n",
					a.fmt.Percent(stats.TargetProgress(total, a.cfg.Limits.MonthlyTarget)),
					a.fmt.Money(a.cfg.Limits.MonthlyTarget))
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Resultado Mensal")
			fmt.Fprintln(out, "--------------------------------------------------")
			for i, v := range stats.MonthlyBuckets(st.Operations) {
				fmt.Fprintf(out, "%-4s %s\n", view.MonthAbbrev[i], a.fmt.Money(v))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Scope totals to this calendar month (1-12)")
	return cmd
}

func newEvolutionCmd(a *app) *cobra.Command {
	var (
		filter stats.TradeFilter
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "evolution",
		Short: "Show per-account trade results and their cumulative evolution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades := stats.FilterTrades(a.journal.Trades.Trades(), filter)
			if asJSON {
				return printJSON(cmd, a.fmt.EvolutionChart(stats.TradeEvolution(trades)))
			}
			report.PrintAccounts(cmd.OutOrStdout(), a.fmt, trades)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Account, "account", "", "Only this account type")
	cmd.Flags().StringVar(&filter.From, "from", "", "First date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.To, "to", "", "Last date, inclusive (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the chart series as JSON")
	return cmd
}

func newEquityCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Show the patrimony curve built from daily operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.journal.State()
			points := stats.EquitySeries(st.Operations, a.cfg.Account.InitialPatrimony)
			if asJSON {
				return printJSON(cmd, []view.Chart{
					a.fmt.EquityChart(points),
					view.PatrimonyChart(st.Patrimony),
					view.MonthlyChart(stats.MonthlyBuckets(st.Operations)),
				})
			}

			out := cmd.OutOrStdout()
			for _, p := range points {
				fmt.Fprintf(out, "%s  %s\n", a.fmt.Date(p.Date), a.fmt.Money(p.Value))
			}
			fmt.Fprintf(out, "Patrimônio Atual: %s\n", a.fmt.Money(st.Patrimony))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the chart series as JSON")
	return cmd
}

func newProjectionCmd(a *app) *cobra.Command {
	var (
		days   int
		mult   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "projection",
		Short: "Project gains and losses from the daily targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = a.cfg.Limits.ProjectionDays
			}
			gain, loss, err := parseMultiplier(mult)
			if err != nil {
				return err
			}

			p := stats.GainLossProjection(a.cfg.Limits.DailyGainTarget, a.cfg.Limits.DailyLossLimit, days)
			if asJSON {
				return printJSON(cmd, view.ProjectionChart(p))
			}

			out := cmd.OutOrStdout()
			for i, d := range p.Days {
				fmt.Fprintf(out, "%2d dias  gain %s  loss %s\n", d, a.fmt.Money(p.Gain[i]), a.fmt.Money(p.Loss[i]))
			}

			row := stats.GainLossTable(a.cfg.Limits.DefaultLoss, gain, loss)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Gain x Loss %s\n", mult)
			fmt.Fprintln(out, "--------------------------------------------------")
			fmt.Fprintf(out, "Gain:     %s\n", a.fmt.Money(row.Gain))
			fmt.Fprintf(out, "Loss:     %s\n", a.fmt.Money(row.Loss))
			fmt.Fprintf(out, "Loss/2:   %s\n", a.fmt.Money(row.LossHalf))
			fmt.Fprintf(out, "Loss/3:   %s\n", a.fmt.Money(row.LossThird))
			fmt.Fprintf(out, "Loss/4:   %s\n", a.fmt.Money(row.LossQuarter))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 10, "Projection horizon in days (1-10)")
	cmd.Flags().StringVar(&mult, "mult", "2x1", "Gain x loss multiplier, e.g. 3x1")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the chart series as JSON")
	return cmd
}

// parseMultiplier reads "GxL" pairs such as "2x1" or "1.5x1".
func parseMultiplier(s string) (float64, float64, error) {
	g, l, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid multiplier %q, want GAINxLOSS", s)
	}
	gain, err := strconv.ParseFloat(g, 64)
	if err != nil || gain <= 0 {
		return 0, 0, fmt.Errorf("invalid gain multiplier %q", g)
	}
	loss, err := strconv.ParseFloat(l, 64)
	if err != nil || loss <= 0 {
		return 0, 0, fmt.Errorf("invalid loss multiplier %q", l)
	}
	return gain, loss, nil
}

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly reports and exports",
	}
	cmd.AddCommand(newReportMonthCmd(a))
	return cmd
}

func newReportMonthCmd(a *app) *cobra.Command {
	var (
		orgPath string
		year    int
		notes   []string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "month <1-12>",
		Short: "Print the paginated monthly report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := strconv.Atoi(args[0])
			if err != nil || month < 1 || month > 12 {
				return fmt.Errorf("invalid month %q", args[0])
			}
			ops := a.journal.Operations.Operations()
			r := report.MonthlyReport(a.fmt, ops, month)

			if orgPath != "" {
				s, err := report.FormatMonthlyReportOrg(report.MonthlyOrg{
					Year:       year,
					MonthName:  view.MonthNames[month-1],
					Summary:    r.Summary,
					Target:     a.cfg.Limits.MonthlyTarget,
					Progress:   stats.TargetProgress(r.Summary.Total, a.cfg.Limits.MonthlyTarget),
					Operations: stats.OperationsInMonth(ops, month),
					Notes:      notes,
				})
				if err != nil {
					return err
				}
				if err := os.WriteFile(orgPath, []byte(s), 0644); err != nil {
					return fmt.Errorf("write %s: %w", orgPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Org report: %s\n", orgPath)
				return nil
			}
			if asJSON {
				return printJSON(cmd, r)
			}
			report.PrintMonthly(cmd.OutOrStdout(), r)
			return nil
		},
	}

	cmd.Flags().StringVar(&orgPath, "org", "", "Write an Org-mode report to this file")
	cmd.Flags().IntVar(&year, "year", 0, "Year shown in the Org heading")
	cmd.Flags().StringArrayVar(&notes, "note", nil, "Observation added to the Org report (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the page layout as JSON")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
