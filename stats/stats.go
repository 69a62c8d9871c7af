// Package stats derives every journal metric from raw record lists.
//
// All functions are pure: they never modify their input, never fail and
// return 0 or an empty (non-nil) series when there is nothing to compute.
package stats

import (
	"github.com/fabiareis/trading-journal/journal"
)

// OperationsInMonth keeps the operations whose date falls in month (1-12),
// whatever the year.
func OperationsInMonth(ops []journal.Operation, month int) []journal.Operation {
	out := []journal.Operation{}
	if month < 1 || month > 12 {
		return out
	}
	for _, op := range ops {
		if op.Month() == month {
			out = append(out, op)
		}
	}
	return out
}

// TradeFilter narrows a trade list. Empty fields do not constrain.
// From and To are inclusive YYYY-MM-DD bounds compared as strings.
type TradeFilter struct {
	Account string
	From    string
	To      string
}

// FilterTrades returns the trades matching f in entry order.
func FilterTrades(trades []journal.Trade, f TradeFilter) []journal.Trade {
	out := []journal.Trade{}
	for _, t := range trades {
		if f.Account != "" && t.AccountType != f.Account {
			continue
		}
		if f.From != "" && t.Date < f.From {
			continue
		}
		if f.To != "" && t.Date > f.To {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SumNetTotal adds up the net totals of ops.
func SumNetTotal(ops []journal.Operation) float64 {
	var sum float64
	for _, op := range ops {
		sum += op.NetTotal
	}
	return sum
}

// SumResult adds up the results of trades.
func SumResult(trades []journal.Trade) float64 {
	var sum float64
	for _, t := range trades {
		sum += t.Result
	}
	return sum
}

// OperationWinRate is the percentage of operations with a non-negative net
// total.
func OperationWinRate(ops []journal.Operation) float64 {
	if len(ops) == 0 {
		return 0
	}
	wins := 0
	for _, op := range ops {
		if op.NetTotal >= 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(ops)) * 100
}

// TradeWinRate is the percentage of trades with a strictly positive result.
func TradeWinRate(trades []journal.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.Result > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

// AverageResult is the mean trade result.
func AverageResult(trades []journal.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	return SumResult(trades) / float64(len(trades))
}

// MonthlyBuckets sums net totals per calendar month, index 0 = January.
// Years are not separated: March 2023 and March 2024 share bucket 2.
// Operations with an unparsable date are skipped.
func MonthlyBuckets(ops []journal.Operation) [12]float64 {
	var buckets [12]float64
	for _, op := range ops {
		m := op.Month()
		if m == 0 {
			continue
		}
		buckets[m-1] += op.NetTotal
	}
	return buckets
}

// MonthSummary holds the totals printed at the top of a monthly report.
// Break-even days count as gains, so Gains+Losses == Count and
// Gains/Count*100 == WinRate.
type MonthSummary struct {
	Month   int
	Count   int
	Gains   int // net total >= 0, break-even included
	Losses  int // net total < 0
	WinRate float64
	Total   float64
}

// SummarizeMonth computes the report totals for the operations of month.
func SummarizeMonth(ops []journal.Operation, month int) MonthSummary {
	scoped := OperationsInMonth(ops, month)
	s := MonthSummary{
		Month:   month,
		Count:   len(scoped),
		WinRate: OperationWinRate(scoped),
		Total:   SumNetTotal(scoped),
	}
	for _, op := range scoped {
		if op.NetTotal >= 0 {
			s.Gains++
		} else {
			s.Losses++
		}
	}
	return s
}

// TargetProgress is total as a percentage of target; 0 when no target is set.
func TargetProgress(total, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return total / target * 100
}
