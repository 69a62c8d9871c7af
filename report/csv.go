package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fabiareis/trading-journal/journal"
)

var (
	operationHeader = []string{"date", "trade_value", "expenses", "iss", "irrf", "result", "net_total", "status"}
	tradeHeader     = []string{"date", "account_type", "asset", "operation_type", "analysis_type", "contracts",
		"entry_price", "exit_price", "points", "result", "allocated_capital", "test_value", "entry_reason"}
)

// WriteOperationsCSV writes ops with a header row.
func WriteOperationsCSV(w io.Writer, ops []journal.Operation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(operationHeader); err != nil {
		return err
	}
	for _, op := range ops {
		err := cw.Write([]string{
			op.Date,
			f(op.TradeValue),
			f(op.Expenses),
			f(op.ISS),
			f(op.IRRF),
			f(op.Result),
			f(op.NetTotal),
			op.Status,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTradesCSV writes trades with a header row. Unset capital columns
// are left empty.
func WriteTradesCSV(w io.Writer, trades []journal.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tradeHeader); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			t.Date,
			t.AccountType,
			t.Asset,
			t.OperationType,
			t.AnalysisType,
			strconv.Itoa(t.Contracts),
			f(t.EntryPrice),
			f(t.ExitPrice),
			f(t.Points),
			f(t.Result),
			optional(t.AllocatedCapital),
			optional(t.TestValue),
			t.EntryReason,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the operations and trades to two files.
func ExportCSV(opsPath, tradesPath string, ops []journal.Operation, trades []journal.Trade) error {
	if err := writeFile(opsPath, func(w io.Writer) error { return WriteOperationsCSV(w, ops) }); err != nil {
		return fmt.Errorf("export operations: %w", err)
	}
	if err := writeFile(tradesPath, func(w io.Writer) error { return WriteTradesCSV(w, trades) }); err != nil {
		return fmt.Errorf("export trades: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
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

func optional(x *float64) string {
	if x == nil {
		return ""
	}
	return f(*x)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
