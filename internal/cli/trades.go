package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fabiareis/trading-journal/journal"
	"github.com/fabiareis/trading-journal/report"
	"github.com/fabiareis/trading-journal/stats"
)

func newTradeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Record, list and report individual trades",
		Long: `Record, list and report contract-based trades.

Examples:
  journal trade add --date 2024-03-01 --account "Conta pessoal" --asset WINJ24 \
      --type Compra --contracts 2 --entry 100 --exit 110 --capital 1000
  journal trade list --account "Conta pessoal" --from 2024-03-01
  journal trade report 3`,
	}
	cmd.AddCommand(newTradeAddCmd(a), newTradeListCmd(a), newTradeReportCmd(a))
	return cmd
}

func newTradeAddCmd(a *app) *cobra.Command {
	var in journal.TradeInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.journal.Trades.Append(ctx(cmd), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s %s  %s pts  %s\n",
				a.fmt.Date(t.Date), t.OperationType, t.Asset, a.fmt.Points(t.Points), a.fmt.Money(t.Result))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Date, "date", "", "Trade date (YYYY-MM-DD)")
	f.StringVar(&in.AccountType, "account", journal.AccountPersonal, `Account: "Conta pessoal" or "Mesa Proprietária..."`)
	f.StringVar(&in.Asset, "asset", "", "Traded asset, e.g. WINJ24")
	f.StringVar(&in.OperationType, "type", journal.OperationBuy, "Compra or Venda")
	f.StringVar(&in.AnalysisType, "analysis", "", "Analysis used for the entry")
	f.StringVar(&in.Contracts, "contracts", "1", "Number of contracts")
	f.StringVar(&in.EntryPrice, "entry", "", "Entry price")
	f.StringVar(&in.ExitPrice, "exit", "", "Exit price")
	f.StringVar(&in.EntryReason, "reason", "", "Why the trade was taken")
	f.StringVar(&in.AllocatedCapital, "capital", "", "Allocated capital (personal account)")
	f.StringVar(&in.TestValue, "test-value", "", "Evaluation fee (proprietary account)")
	for _, name := range []string{"date", "asset", "entry", "exit"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newTradeListCmd(a *app) *cobra.Command {
	var (
		filter  stats.TradeFilter
		org     bool
		csvPath string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades, optionally filtered by account and date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades := stats.FilterTrades(a.journal.Trades.Trades(), filter)
			out := cmd.OutOrStdout()

			switch {
			case csvPath != "":
				return writeCSV(csvPath, func(w *os.File) error { return report.WriteTradesCSV(w, trades) })
			case org:
				fmt.Fprintln(out, report.FormatTradesOrg(trades))
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tData\tConta\tAtivo\tTipo\tContratos\tEntrada\tSaída\tPontos\tResultado\t")
			for i, r := range a.fmt.TradeRows(trades) {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t\n",
					i+1, r.Date, r.AccountType, r.Asset, r.OperationType, r.Contracts,
					r.EntryPrice, r.ExitPrice, r.Points, r.Result)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal: %s  Taxa de Acerto: %s\n",
				a.fmt.Money(stats.SumResult(trades)), a.fmt.Percent(stats.TradeWinRate(trades)))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Account, "account", "", "Only this account type")
	cmd.Flags().StringVar(&filter.From, "from", "", "First date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.To, "to", "", "Last date, inclusive (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&org, "org", false, "Print as Org-mode entries")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the list as CSV to this file")
	return cmd
}

func newTradeReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report <n>",
		Short: "Print the report of the n-th trade (as numbered by trade list)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			trades := a.journal.Trades.Trades()
			if err != nil || n < 1 || n > len(trades) {
				return fmt.Errorf("trade %q not found (have %d)", args[0], len(trades))
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatTradeReport(a.fmt, trades[n-1]))
			return nil
		},
	}
}
