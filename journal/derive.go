package journal

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OperationInput is an operation as typed into the entry form.
type OperationInput struct {
	Date       string
	TradeValue string
	Expenses   string
	ISS        string
	IRRF       string
}

// TradeInput is a trade as typed into the entry form. AllocatedCapital is
// read only for the personal account and TestValue only for proprietary
// accounts; an empty value counts as zero.
type TradeInput struct {
	Date             string
	AccountType      string
	Asset            string
	OperationType    string
	AnalysisType     string
	Contracts        string
	EntryPrice       string
	ExitPrice        string
	EntryReason      string
	AllocatedCapital string
	TestValue        string
}

// NewOperation validates in and returns the operation with its derived
// fields filled.
func NewOperation(in OperationInput) (Operation, error) {
	date, err := parseDate("date", in.Date)
	if err != nil {
		return Operation{}, err
	}
	tradeValue, err := parseAmount("tradeValue", in.TradeValue)
	if err != nil {
		return Operation{}, err
	}
	expenses, err := parseCost("expenses", in.Expenses)
	if err != nil {
		return Operation{}, err
	}
	iss, err := parseCost("iss", in.ISS)
	if err != nil {
		return Operation{}, err
	}
	irrf, err := parseCost("irrf", in.IRRF)
	if err != nil {
		return Operation{}, err
	}

	op := Operation{
		Date:       date,
		TradeValue: tradeValue.InexactFloat64(),
		Expenses:   expenses.InexactFloat64(),
		ISS:        iss.InexactFloat64(),
		IRRF:       irrf.InexactFloat64(),
	}
	return op.derive(), nil
}

// derive recomputes Result, NetTotal and Status from the input fields.
func (o Operation) derive() Operation {
	result := decimal.NewFromFloat(o.TradeValue)
	net := result.
		Sub(decimal.NewFromFloat(o.Expenses)).
		Sub(decimal.NewFromFloat(o.ISS)).
		Sub(decimal.NewFromFloat(o.IRRF))

	o.Result = result.Round(2).InexactFloat64()
	o.NetTotal = net.Round(2).InexactFloat64()
	if o.NetTotal >= 0 {
		o.Status = StatusGain
	} else {
		o.Status = StatusLoss
	}
	return o
}

// NewTrade validates in and returns the trade with points and result filled.
func NewTrade(in TradeInput) (Trade, error) {
	date, err := parseDate("date", in.Date)
	if err != nil {
		return Trade{}, err
	}

	account := strings.TrimSpace(in.AccountType)
	if account == "" {
		return Trade{}, invalid("accountType", "required")
	}
	if !IsPersonal(account) && !IsProprietary(account) {
		return Trade{}, invalid("accountType", "must be "+AccountPersonal+" or "+AccountProprietaryPrefix+"...")
	}

	asset := strings.TrimSpace(in.Asset)
	if asset == "" {
		return Trade{}, invalid("asset", "required")
	}

	opType := strings.TrimSpace(in.OperationType)
	if opType != OperationBuy && opType != OperationSell {
		return Trade{}, invalid("operationType", "must be "+OperationBuy+" or "+OperationSell)
	}

	contracts, err := strconv.Atoi(strings.TrimSpace(in.Contracts))
	if err != nil {
		return Trade{}, invalid("contracts", "must be an integer")
	}
	if contracts <= 0 {
		return Trade{}, invalid("contracts", "must be positive")
	}

	entry, err := parsePrice("entryPrice", in.EntryPrice)
	if err != nil {
		return Trade{}, err
	}
	exit, err := parsePrice("exitPrice", in.ExitPrice)
	if err != nil {
		return Trade{}, err
	}

	t := Trade{
		Date:          date,
		AccountType:   account,
		Asset:         asset,
		OperationType: opType,
		AnalysisType:  strings.TrimSpace(in.AnalysisType),
		Contracts:     contracts,
		EntryPrice:    entry.InexactFloat64(),
		ExitPrice:     exit.InexactFloat64(),
		EntryReason:   strings.TrimSpace(in.EntryReason),
	}

	if IsPersonal(account) {
		v, err := parseOptionalCost("allocatedCapital", in.AllocatedCapital)
		if err != nil {
			return Trade{}, err
		}
		t.AllocatedCapital = &v
	} else {
		v, err := parseOptionalCost("testValue", in.TestValue)
		if err != nil {
			return Trade{}, err
		}
		t.TestValue = &v
	}

	return t.derive(), nil
}

// derive recomputes Points and Result from prices, direction and contracts.
func (t Trade) derive() Trade {
	direction := decimal.NewFromInt(1)
	if t.OperationType != OperationBuy {
		direction = decimal.NewFromInt(-1)
	}
	points := direction.Mul(decimal.NewFromFloat(t.ExitPrice).Sub(decimal.NewFromFloat(t.EntryPrice)))
	result := points.Mul(decimal.NewFromInt(int64(t.Contracts))).Mul(decimal.NewFromFloat(PointValue))

	t.Points = points.InexactFloat64()
	t.Result = result.InexactFloat64()
	return t
}

func parseDate(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(field, "required")
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", invalid(field, "must be YYYY-MM-DD")
	}
	return s, nil
}

// parseAmount accepts "1234.56" and the Brazilian "1234,56".
func parseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, invalid(field, "required")
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid(field, "not a number")
	}
	return d, nil
}

func parseCost(field, s string) (decimal.Decimal, error) {
	d, err := parseAmount(field, s)
	if err != nil {
		return d, err
	}
	if d.IsNegative() {
		return decimal.Zero, invalid(field, "must not be negative")
	}
	return d, nil
}

func parseOptionalCost(field, s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	d, err := parseCost(field, s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

func parsePrice(field, s string) (decimal.Decimal, error) {
	d, err := parseAmount(field, s)
	if err != nil {
		return d, err
	}
	if !d.IsPositive() {
		return decimal.Zero, invalid(field, "must be positive")
	}
	return d, nil
}
