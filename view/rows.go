package view

import (
	"time"

	"github.com/fabiareis/trading-journal/journal"
)

// OperationRow is one line of the operations table.
type OperationRow struct {
	Date       string
	TradeValue string
	Expenses   string
	ISS        string
	IRRF       string
	Result     string
	NetTotal   string

	ResultClass   string
	NetTotalClass string
	Status        string // journal.StatusGain or journal.StatusLoss
	Badge         string // ✓ or ✗
}

// TradeRow is one line of the trades table.
type TradeRow struct {
	Date          string
	AccountType   string
	Asset         string
	OperationType string
	AnalysisType  string
	Contracts     int
	EntryPrice    string
	ExitPrice     string
	Points        string
	Result        string
	EntryReason   string
	Capital       string // allocated capital or test value, "-" when unset

	ResultClass string
}

// Date renders a YYYY-MM-DD record date as DD/MM/YYYY. Dates that do not
// parse are returned unchanged.
func (f *Formatter) Date(date string) string {
	d, err := time.Parse(journal.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}

// OperationRows formats ops in their given order.
func (f *Formatter) OperationRows(ops []journal.Operation) []OperationRow {
	rows := make([]OperationRow, 0, len(ops))
	for _, op := range ops {
		badge := "✓"
		if op.Status != journal.StatusGain {
			badge = "✗"
		}
		rows = append(rows, OperationRow{
			Date:          f.Date(op.Date),
			TradeValue:    f.Money(op.TradeValue),
			Expenses:      f.Money(op.Expenses),
			ISS:           f.Money(op.ISS),
			IRRF:          f.Money(op.IRRF),
			Result:        f.Money(op.Result),
			NetTotal:      f.Money(op.NetTotal),
			ResultClass:   SignClass(op.Result),
			NetTotalClass: SignClass(op.NetTotal),
			Status:        op.Status,
			Badge:         badge,
		})
	}
	return rows
}

// TradeRows formats trades in their given order.
func (f *Formatter) TradeRows(trades []journal.Trade) []TradeRow {
	rows := make([]TradeRow, 0, len(trades))
	for _, t := range trades {
		capital := "-"
		switch {
		case t.AllocatedCapital != nil:
			capital = f.Money(*t.AllocatedCapital)
		case t.TestValue != nil:
			capital = f.Money(*t.TestValue)
		}
		rows = append(rows, TradeRow{
			Date:          f.Date(t.Date),
			AccountType:   t.AccountType,
			Asset:         t.Asset,
			OperationType: t.OperationType,
			AnalysisType:  t.AnalysisType,
			Contracts:     t.Contracts,
			EntryPrice:    f.Number(t.EntryPrice, 2),
			ExitPrice:     f.Number(t.ExitPrice, 2),
			Points:        f.Points(t.Points),
			Result:        f.Money(t.Result),
			EntryReason:   t.EntryReason,
			Capital:       capital,
			ResultClass:   SignClass(t.Result),
		})
	}
	return rows
}
