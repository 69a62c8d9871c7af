package stats

import (
	"sort"

	"github.com/fabiareis/trading-journal/journal"
)

// Point is one value of a date-indexed series.
type Point struct {
	Date  string
	Value float64
}

// EquitySeries is the patrimony curve built from daily operations: for each
// distinct date, ascending, baseline plus the cumulative net total up to and
// including that date.
func EquitySeries(ops []journal.Operation, baseline float64) []Point {
	daily := map[string]float64{}
	for _, op := range ops {
		daily[op.Date] += op.NetTotal
	}

	out := make([]Point, 0, len(daily))
	balance := baseline
	for _, d := range sortedKeys(daily) {
		balance += daily[d]
		out = append(out, Point{Date: d, Value: balance})
	}
	return out
}

// Evolution holds one zero-based cumulative result series per account
// category, aligned on Dates.
type Evolution struct {
	Dates       []string
	Personal    []float64
	Proprietary []float64
}

// TradeEvolution accumulates trade results per account category over the
// distinct trade dates, ascending. Both series start from zero and are kept
// separate from the operations' patrimony baseline.
func TradeEvolution(trades []journal.Trade) Evolution {
	personal := map[string]float64{}
	proprietary := map[string]float64{}
	dates := map[string]float64{}
	for _, t := range trades {
		dates[t.Date] = 0
		switch {
		case t.Personal():
			personal[t.Date] += t.Result
		case t.Proprietary():
			proprietary[t.Date] += t.Result
		}
	}

	ev := Evolution{
		Dates:       sortedKeys(dates),
		Personal:    make([]float64, 0, len(dates)),
		Proprietary: make([]float64, 0, len(dates)),
	}
	var p, q float64
	for _, d := range ev.Dates {
		p += personal[d]
		q += proprietary[d]
		ev.Personal = append(ev.Personal, p)
		ev.Proprietary = append(ev.Proprietary, q)
	}
	return ev
}

// EvolutionSummary describes the first and last points of an evolution.
type EvolutionSummary struct {
	Empty        bool
	StartDate    string
	CurrentDate  string
	StartValue   float64 // personal + proprietary on the first date
	CurrentValue float64 // personal + proprietary on the last date
}

// SummarizeEvolution reports the first and last points of ev, each valued
// as the sum of both categories on that date.
func SummarizeEvolution(ev Evolution) EvolutionSummary {
	n := len(ev.Dates)
	if n == 0 {
		return EvolutionSummary{Empty: true}
	}
	return EvolutionSummary{
		StartDate:    ev.Dates[0],
		CurrentDate:  ev.Dates[n-1],
		StartValue:   ev.Personal[0] + ev.Proprietary[0],
		CurrentValue: ev.Personal[n-1] + ev.Proprietary[n-1],
	}
}

// MaxProjectionDays bounds GainLossProjection.
const MaxProjectionDays = 10

// Projection is a straight-line estimate of cumulative gains and losses.
type Projection struct {
	Days []int
	Gain []float64
	Loss []float64
}

// GainLossProjection returns day×gainTarget and day×lossLimit for days
// 1..n, with n clamped to [1, MaxProjectionDays]. It does not look at any
// record.
func GainLossProjection(gainTarget, lossLimit float64, n int) Projection {
	if n < 1 {
		n = 1
	}
	if n > MaxProjectionDays {
		n = MaxProjectionDays
	}
	p := Projection{
		Days: make([]int, n),
		Gain: make([]float64, n),
		Loss: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		day := i + 1
		p.Days[i] = day
		p.Gain[i] = float64(day) * gainTarget
		p.Loss[i] = float64(day) * lossLimit
	}
	return p
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
