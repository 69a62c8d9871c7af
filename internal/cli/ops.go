package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fabiareis/trading-journal/internal/i18n"
	"github.com/fabiareis/trading-journal/journal"
	"github.com/fabiareis/trading-journal/report"
	"github.com/fabiareis/trading-journal/stats"
)

func newOpCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "op",
		Short: "Record and list daily operations",
		Long: `Record and list daily trading-desk operations.

Examples:
  journal op add --date 2024-03-01 --value 300 --expenses 10 --iss 5 --irrf 5
  journal op list --month 3`,
	}
	cmd.AddCommand(newOpAddCmd(a), newOpListCmd(a))
	return cmd
}

func newOpAddCmd(a *app) *cobra.Command {
	var (
		in    journal.OperationInput
		force bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a daily operation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := journal.NewOperation(in)
			if err != nil {
				return err
			}
			if a.journal.Operations.ExceedsLossLimit(op) && !force {
				prompt := a.tr.T(i18n.MsgLossLimitExceeded, map[string]any{
					"NetTotal": a.fmt.Money(op.NetTotal),
					"Limit":    a.fmt.Money(a.cfg.Limits.DailyLossLimit),
				})
				if !confirm(cmd, prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
					return nil
				}
			}

			op, err = a.journal.Operations.Append(ctx(cmd), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ %s  %s  (%s)\n", a.fmt.Date(op.Date), a.fmt.Money(op.NetTotal), op.Status)
			fmt.Fprintf(out, "  Patrimônio: %s\n", a.fmt.Money(a.journal.Operations.Patrimony()))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Date, "date", "", "Operation date (YYYY-MM-DD)")
	f.StringVar(&in.TradeValue, "value", "", "Gross trade value (signed)")
	f.StringVar(&in.Expenses, "expenses", "0", "Brokerage and exchange fees")
	f.StringVar(&in.ISS, "iss", "0", "ISS tax")
	f.StringVar(&in.IRRF, "irrf", "0", "IRRF withholding")
	f.BoolVar(&force, "force", false, "Append even when the daily loss limit is exceeded")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newOpListCmd(a *app) *cobra.Command {
	var (
		month   int
		csvPath string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operations in entry order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := a.journal.Operations.Operations()
			if month != 0 {
				ops = stats.OperationsInMonth(ops, month)
			}
			if csvPath != "" {
				return writeCSV(csvPath, func(w *os.File) error { return report.WriteOperationsCSV(w, ops) })
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Data\tValor Neg.\tDespesas\tISS\tIRRF\tResult.\tTotal Líq.\t")
			for _, r := range a.fmt.OperationRows(ops) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s %s\t\n",
					r.Date, r.TradeValue, r.Expenses, r.ISS, r.IRRF, r.Result, r.NetTotal, r.Badge)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Only operations of this calendar month (1-12)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the list as CSV to this file")
	return cmd
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [s/N] ", prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

func writeCSV(path string, write func(*os.File) error) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
