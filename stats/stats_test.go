package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabiareis/trading-journal/journal"
)

func op(date string, net float64) journal.Operation {
	status := journal.StatusGain
	if net < 0 {
		status = journal.StatusLoss
	}
	return journal.Operation{Date: date, TradeValue: net, Result: net, NetTotal: net, Status: status}
}

func trade(date, account string, result float64) journal.Trade {
	return journal.Trade{Date: date, AccountType: account, Result: result}
}

func ptr(v float64) *float64 { return &v }

func TestEmptyInputs(t *testing.T) {
	t.Parallel()

	assert.Zero(t, SumNetTotal(nil))
	assert.Zero(t, SumResult(nil))
	assert.Zero(t, OperationWinRate(nil))
	assert.Zero(t, TradeWinRate([]journal.Trade{}))
	assert.Zero(t, AverageResult(nil))
	assert.Equal(t, [12]float64{}, MonthlyBuckets(nil))
	assert.Empty(t, EquitySeries(nil, 2000))
	assert.NotNil(t, EquitySeries(nil, 2000))

	ev := TradeEvolution(nil)
	assert.Empty(t, ev.Dates)
	assert.Empty(t, ev.Personal)
	assert.Empty(t, ev.Proprietary)
	assert.True(t, SummarizeEvolution(ev).Empty)

	s := SummarizeMonth(nil, 3)
	assert.Equal(t, MonthSummary{Month: 3}, s)
	assert.False(t, math.IsNaN(s.WinRate))
}

func TestMarchScenario(t *testing.T) {
	t.Parallel()

	o, err := journal.NewOperation(journal.OperationInput{
		Date: "2024-03-01", TradeValue: "300", Expenses: "10", ISS: "5", IRRF: "5",
	})
	require.NoError(t, err)
	ops := []journal.Operation{o}

	march := OperationsInMonth(ops, 3)
	assert.Equal(t, 280.0, SumNetTotal(march))
	assert.Equal(t, 280.0, MonthlyBuckets(ops)[2])
	assert.Equal(t, 100.0, OperationWinRate(march))
}

func TestOperationsInMonth(t *testing.T) {
	t.Parallel()

	ops := []journal.Operation{
		op("2024-03-01", 10),
		op("2024-04-01", 20),
		op("2023-03-15", 30),
		op("bad-date", 40),
	}

	got := OperationsInMonth(ops, 3)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-01", got[0].Date)
	assert.Equal(t, "2023-03-15", got[1].Date)

	assert.Empty(t, OperationsInMonth(ops, 0))
	assert.Empty(t, OperationsInMonth(ops, 13))
}

func TestWinRates(t *testing.T) {
	t.Parallel()

	ops := []journal.Operation{op("2024-01-02", 0), op("2024-01-03", -5), op("2024-01-04", 5), op("2024-01-05", -1)}
	assert.Equal(t, 50.0, OperationWinRate(ops))

	// break-even counts as a win for operations but not for trades
	trades := []journal.Trade{
		trade("2024-01-02", journal.AccountPersonal, 0),
		trade("2024-01-02", journal.AccountPersonal, 10),
	}
	assert.Equal(t, 50.0, TradeWinRate(trades))

	for _, n := range []int{1, 2, 3, 7} {
		list := make([]journal.Operation, n)
		for i := range list {
			list[i] = op("2024-01-02", float64(i%3)-1)
		}
		r := OperationWinRate(list)
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 100.0)
	}
}

func TestMonthlyBucketsSumToTotal(t *testing.T) {
	t.Parallel()

	ops := []journal.Operation{
		op("2024-01-10", 100),
		op("2024-01-11", -40),
		op("2024-06-01", 75.5),
		op("2023-12-31", -20),
		op("2024-12-01", 12.25),
	}
	b := MonthlyBuckets(ops)

	var sum float64
	for _, v := range b {
		sum += v
	}
	assert.InDelta(t, SumNetTotal(ops), sum, 1e-9)
	assert.Equal(t, 60.0, b[0])
	assert.Equal(t, 75.5, b[5])
	assert.Equal(t, -7.75, b[11])
}

func TestEquitySeries(t *testing.T) {
	t.Parallel()

	ops := []journal.Operation{
		op("2024-03-02", 50),
		op("2024-03-01", 100),
		op("2024-03-02", -30),
		op("2024-03-05", 10),
	}

	got := EquitySeries(ops, 2000)
	assert.Equal(t, []Point{
		{Date: "2024-03-01", Value: 2100},
		{Date: "2024-03-02", Value: 2120},
		{Date: "2024-03-05", Value: 2130},
	}, got)
}

func TestEquitySeriesDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	ops := []journal.Operation{op("2024-03-02", 50), op("2024-03-01", 100)}
	before := append([]journal.Operation(nil), ops...)
	EquitySeries(ops, 0)
	MonthlyBuckets(ops)
	OperationsInMonth(ops, 3)
	assert.Equal(t, before, ops)
}

func TestTradeEvolution(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{
		trade("2024-03-02", journal.AccountPersonal, 50),
		trade("2024-03-01", "Mesa Proprietária - Fase 2", 100),
		trade("2024-03-02", journal.AccountProprietaryPrefix, -25),
		trade("2024-03-03", journal.AccountPersonal, 10),
		trade("2024-03-04", "Outra", 999),
	}

	ev := TradeEvolution(trades)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"}, ev.Dates)
	assert.Equal(t, []float64{0, 50, 60, 60}, ev.Personal)
	assert.Equal(t, []float64{100, 75, 75, 75}, ev.Proprietary)

	sum := SummarizeEvolution(ev)
	assert.Equal(t, EvolutionSummary{
		StartDate:    "2024-03-01",
		CurrentDate:  "2024-03-04",
		StartValue:   100,
		CurrentValue: 135,
	}, sum)
}

func TestSummarizeEvolutionSumsBothCategories(t *testing.T) {
	t.Parallel()

	ev := Evolution{
		Dates:       []string{"2024-03-01", "2024-03-02"},
		Personal:    []float64{40, 90},
		Proprietary: []float64{60, 10},
	}
	sum := SummarizeEvolution(ev)
	assert.Equal(t, 100.0, sum.StartValue)
	assert.Equal(t, 100.0, sum.CurrentValue)
}

func TestFilterTrades(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{
		trade("2024-03-01", journal.AccountPersonal, 1),
		trade("2024-03-05", journal.AccountPersonal, 2),
		trade("2024-03-10", journal.AccountProprietaryPrefix, 3),
		trade("2024-03-15", journal.AccountPersonal, 4),
	}

	tests := []struct {
		name   string
		filter TradeFilter
		want   []float64
	}{
		{"no filter", TradeFilter{}, []float64{1, 2, 3, 4}},
		{"account", TradeFilter{Account: journal.AccountPersonal}, []float64{1, 2, 4}},
		{"inclusive range", TradeFilter{From: "2024-03-05", To: "2024-03-10"}, []float64{2, 3}},
		{"from only", TradeFilter{From: "2024-03-10"}, []float64{3, 4}},
		{"to only", TradeFilter{To: "2024-03-01"}, []float64{1}},
		{"account and range", TradeFilter{Account: journal.AccountPersonal, From: "2024-03-02"}, []float64{2, 4}},
		{"nothing", TradeFilter{Account: "Outra"}, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTrades(trades, tt.filter)
			results := []float64{}
			for _, tr := range got {
				results = append(results, tr.Result)
			}
			assert.Equal(t, tt.want, results)
		})
	}
}

func TestGainLossProjection(t *testing.T) {
	t.Parallel()

	p := GainLossProjection(200, 100, 3)
	assert.Equal(t, []int{1, 2, 3}, p.Days)
	assert.Equal(t, []float64{200, 400, 600}, p.Gain)
	assert.Equal(t, []float64{100, 200, 300}, p.Loss)

	assert.Len(t, GainLossProjection(200, 100, 0).Days, 1)
	assert.Len(t, GainLossProjection(200, 100, -4).Days, 1)
	assert.Len(t, GainLossProjection(200, 100, 25).Days, MaxProjectionDays)
	assert.Equal(t, 2000.0, GainLossProjection(200, 100, 25).Gain[9])
}

func TestSummarizeAccounts(t *testing.T) {
	t.Parallel()

	first := trade("2024-03-01", journal.AccountPersonal, 100)
	first.AllocatedCapital = ptr(1000)
	second := trade("2024-03-02", journal.AccountPersonal, 50)
	second.AllocatedCapital = ptr(500)
	propA := trade("2024-03-02", journal.AccountProprietaryPrefix, -20)
	propA.TestValue = ptr(150)
	propB := trade("2024-03-03", "Mesa Proprietária - Fase 2", 70)
	propB.TestValue = ptr(0)

	s := SummarizeAccounts([]journal.Trade{first, propA, second, propB})
	assert.Equal(t, 500.0, s.PersonalCapital)
	assert.Equal(t, 150.0, s.PersonalResult)
	assert.InDelta(t, 30.0, s.PersonalReturn, 1e-9)
	assert.Equal(t, 150.0, s.TestValues)
	assert.Equal(t, 50.0, s.ProprietaryResult)

	noCapital := SummarizeAccounts([]journal.Trade{trade("2024-03-01", journal.AccountPersonal, 10)})
	assert.Zero(t, noCapital.PersonalReturn)
	assert.Equal(t, 10.0, noCapital.PersonalResult)
}

func TestAverageResult(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{
		trade("2024-03-01", journal.AccountPersonal, 100),
		trade("2024-03-01", journal.AccountPersonal, -40),
		trade("2024-03-01", journal.AccountPersonal, 30),
	}
	assert.InDelta(t, 30.0, AverageResult(trades), 1e-9)
}

func TestGainLossTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, GainLossRow{Gain: 200, Loss: 150, LossHalf: 75, LossThird: 50, LossQuarter: 37.5},
		GainLossTable(100, 2, 1.5))
	assert.Equal(t, GainLossRow{}, GainLossTable(0, 3, 1))
}

func TestSummarizeMonth(t *testing.T) {
	t.Parallel()

	ops := []journal.Operation{
		op("2024-05-02", 100),
		op("2024-05-03", -50),
		op("2024-05-04", 0),
		op("2024-06-01", 999),
	}
	s := SummarizeMonth(ops, 5)
	assert.Equal(t, 5, s.Month)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.Gains, "break-even day counts as a gain")
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, s.Count, s.Gains+s.Losses)
	assert.InDelta(t, float64(s.Gains)/float64(s.Count)*100, s.WinRate, 1e-9)
	assert.InDelta(t, 66.67, s.WinRate, 0.01)
	assert.Equal(t, 50.0, s.Total)
}

func TestTargetProgress(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 14.0, TargetProgress(280, 2000), 1e-9)
	assert.Zero(t, TargetProgress(280, 0))
	assert.InDelta(t, -5.0, TargetProgress(-100, 2000), 1e-9)
}
