// Package view turns records and derived metrics into display rows and
// chart series.
package view

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders numbers for one locale and currency.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

var symbols = map[currency.Unit]string{
	currency.BRL: "R$",
	currency.USD: "US$",
	currency.EUR: "€",
}

// NewFormatter builds a formatter for a BCP 47 locale ("pt-BR") and an ISO
// 4217 currency code ("BRL"). Unknown values fall back to pt-BR and BRL.
func NewFormatter(locale, currencyCode string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.BRL
	}
	symbol, ok := symbols[unit]
	if !ok {
		symbol = unit.String()
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Money formats v as "R$ 1.234,56", with the sign ahead of the symbol.
func (f *Formatter) Money(v float64) string {
	s := f.symbol + " " + f.Number(math.Abs(v), 2)
	if v < 0 && f.round(v, 2) != 0 {
		return "-" + s
	}
	return s
}

// Number formats v with exactly scale fraction digits and locale grouping.
func (f *Formatter) Number(v float64, scale int) string {
	return f.printer.Sprint(number.Decimal(v, number.Scale(scale)))
}

// Points formats trade points with one decimal.
func (f *Formatter) Points(v float64) string {
	return f.Number(v, 1)
}

// Percent formats v (already scaled to 0-100) with one decimal.
func (f *Formatter) Percent(v float64) string {
	return f.Number(v, 1) + "%"
}

func (f *Formatter) round(v float64, scale int) float64 {
	p := math.Pow(10, float64(scale))
	return math.Round(v*p) / p
}

// Sign classes used to color values.
const (
	ClassPositive = "positive"
	ClassNegative = "negative"
)

// SignClass is ClassNegative for values below zero and ClassPositive
// otherwise.
func SignClass(v float64) string {
	if v < 0 {
		return ClassNegative
	}
	return ClassPositive
}
