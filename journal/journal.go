// Package journal holds the journal's raw records and the stores that
// persist them.
package journal

import (
	"strings"
	"time"
)

// Blob store keys. Each key holds one JSON snapshot.
const (
	KeyOperations = "dailyOperations"
	KeyTrades     = "trades"
	KeyPatrimony  = "patrimony"
)

// PointValue is the currency value of one index point per contract.
const PointValue = 5.0

const (
	AccountPersonal          = "Conta pessoal"
	AccountProprietaryPrefix = "Mesa Proprietária"

	OperationBuy  = "Compra"
	OperationSell = "Venda"

	StatusGain = "gain"
	StatusLoss = "loss"
)

// DateLayout is the calendar-day format of every record date.
const DateLayout = "2006-01-02"

// Operation is one day's trading-desk outcome, net of fees.
type Operation struct {
	Date       string  `json:"date"`
	TradeValue float64 `json:"tradeValue"`
	Expenses   float64 `json:"expenses"`
	ISS        float64 `json:"iss"`
	IRRF       float64 `json:"irrf"`

	// Derived
	Result   float64 `json:"result"`
	NetTotal float64 `json:"netTotal"`
	Status   string  `json:"status"`
}

// Trade is a single contract-based trade.
type Trade struct {
	Date          string  `json:"date"`
	AccountType   string  `json:"accountType"`
	Asset         string  `json:"asset"`
	OperationType string  `json:"operationType"`
	AnalysisType  string  `json:"analysisType"`
	Contracts     int     `json:"contracts"`
	EntryPrice    float64 `json:"entryPrice"`
	ExitPrice     float64 `json:"exitPrice"`
	EntryReason   string  `json:"entryReason"`

	// Only one of these is set, depending on AccountType.
	AllocatedCapital *float64 `json:"allocatedCapital,omitempty"`
	TestValue        *float64 `json:"testValue,omitempty"`

	// Derived
	Points float64 `json:"points"`
	Result float64 `json:"result"`
}

// IsPersonal reports whether accountType is the personal account.
func IsPersonal(accountType string) bool {
	return accountType == AccountPersonal
}

// IsProprietary reports whether accountType is one of the prop-firm
// evaluation accounts ("Mesa Proprietária", "Mesa Proprietária - Fase 2", ...).
func IsProprietary(accountType string) bool {
	return strings.HasPrefix(accountType, AccountProprietaryPrefix)
}

func (t Trade) Personal() bool    { return IsPersonal(t.AccountType) }
func (t Trade) Proprietary() bool { return IsProprietary(t.AccountType) }

// Month returns the calendar month (1-12) of the operation date, or 0 when
// the date does not parse.
func (o Operation) Month() int { return monthOf(o.Date) }

// Month returns the calendar month (1-12) of the trade date, or 0 when the
// date does not parse.
func (t Trade) Month() int { return monthOf(t.Date) }

func monthOf(date string) int {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0
	}
	return int(d.Month())
}
