package view

import (
	"fmt"

	"github.com/fabiareis/trading-journal/stats"
)

// Chart kinds understood by the charting front end.
const (
	KindLine = "line"
	KindBar  = "bar"
)

// MonthAbbrev and MonthNames index January at 0.
var (
	MonthAbbrev = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}
	MonthNames  = [12]string{"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"}
)

// Chart is the input of one chart: a label axis and one or more value
// series of the same length.
type Chart struct {
	Kind   string   `json:"kind"`
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Series is a named list of values aligned on Chart.Labels.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// MonthlyChart plots the twelve monthly net results.
func MonthlyChart(buckets [12]float64) Chart {
	return Chart{
		Kind:   KindLine,
		Title:  "Evolução do Resultado Mensal",
		Labels: MonthAbbrev[:],
		Series: []Series{{Name: "Resultado Mensal", Values: buckets[:]}},
	}
}

// EquityChart plots the patrimony curve by date.
func (f *Formatter) EquityChart(points []stats.Point) Chart {
	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		labels[i] = f.Date(p.Date)
		values[i] = p.Value
	}
	return Chart{
		Kind:   KindLine,
		Title:  "Evolução do Patrimônio",
		Labels: labels,
		Series: []Series{{Name: "Patrimônio", Values: values}},
	}
}

// PatrimonyChart is the single-bar chart of the current patrimony.
func PatrimonyChart(patrimony float64) Chart {
	return Chart{
		Kind:   KindBar,
		Title:  "Patrimônio Atual",
		Labels: []string{"Patrimônio"},
		Series: []Series{{Name: "Valor Atual", Values: []float64{patrimony}}},
	}
}

// ProjectionChart plots the estimated gain and maximum loss per horizon.
func ProjectionChart(p stats.Projection) Chart {
	labels := make([]string, len(p.Days))
	for i, d := range p.Days {
		labels[i] = fmt.Sprintf("%d Dias", d)
	}
	return Chart{
		Kind:   KindBar,
		Title:  "Estimativas de Ganhos / Perdas",
		Labels: labels,
		Series: []Series{
			{Name: "Gain Estimado", Values: p.Gain},
			{Name: "Loss Máximo", Values: p.Loss},
		},
	}
}

// EvolutionChart plots the cumulative trade results of each account
// category.
func (f *Formatter) EvolutionChart(ev stats.Evolution) Chart {
	labels := make([]string, len(ev.Dates))
	for i, d := range ev.Dates {
		labels[i] = f.Date(d)
	}
	return Chart{
		Kind:   KindLine,
		Title:  "Evolução das Contas",
		Labels: labels,
		Series: []Series{
			{Name: "Conta Pessoal", Values: ev.Personal},
			{Name: "Mesa Proprietária", Values: ev.Proprietary},
		},
	}
}
