package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fabiareis/trading-journal/journal"
	"github.com/fabiareis/trading-journal/stats"
)

// FormatTradeOrg renders a trade as an Org-mode block suitable for pasting
// into a journal file. Structured facts go in a PROPERTIES drawer; the
// narrative sections are left as placeholders.
func FormatTradeOrg(t journal.Trade) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("** Trade: %s %s (%s)\n", t.Asset, t.OperationType, t.Date))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":DATE: %s\n", t.Date))
	b.WriteString(fmt.Sprintf(":ACCOUNT: %s\n", t.AccountType))
	b.WriteString(fmt.Sprintf(":ASSET: %s\n", t.Asset))
	b.WriteString(fmt.Sprintf(":OPERATION: %s\n", t.OperationType))
	if t.AnalysisType != "" {
		b.WriteString(fmt.Sprintf(":ANALYSIS: %s\n", t.AnalysisType))
	}
	b.WriteString(fmt.Sprintf(":CONTRACTS: %d\n", t.Contracts))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.2f\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.2f\n", t.ExitPrice))
	b.WriteString(fmt.Sprintf(":POINTS: %.1f\n", t.Points))
	b.WriteString(fmt.Sprintf(":RESULT: %.2f\n", t.Result))
	if t.AllocatedCapital != nil {
		b.WriteString(fmt.Sprintf(":CAPITAL: %.2f\n", *t.AllocatedCapital))
	}
	if t.TestValue != nil {
		b.WriteString(fmt.Sprintf(":TEST_VALUE: %.2f\n", *t.TestValue))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Motivo da Entrada\n- " + t.EntryReason + "\n\n")
	b.WriteString("*** Execução\n- \n\n")
	b.WriteString("*** Revisão\n- \n")
	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []journal.Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// MonthlyOrg is the data behind MonthlyOrgTemplate.
type MonthlyOrg struct {
	Year       int
	MonthName  string
	Summary    stats.MonthSummary
	Target     float64
	Progress   float64
	Operations []journal.Operation
	Notes      []string
}

var monthlyOrgFuncs = template.FuncMap{
	"money": func(x float64) string { return fmt.Sprintf("%.2f", x) },
}

// FormatMonthlyReportOrg renders the monthly summary and its operations
// table as an Org-mode document.
func FormatMonthlyReportOrg(m MonthlyOrg) (string, error) {
	t, err := template.New("monthly").Funcs(monthlyOrgFuncs).Parse(MonthlyOrgTemplate)
	if err != nil {
		return "", fmt.Errorf("parse monthly template: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := t.Execute(buf, m); err != nil {
		return "", fmt.Errorf("render monthly report: %w", err)
	}
	return buf.String(), nil
}

const MonthlyOrgTemplate = `* RELATÓRIO MENSAL: {{.MonthName}}{{if .Year}} {{.Year}}{{end}}
:PROPERTIES:
:MONTH:       {{.Summary.Month}}
:OPERATIONS:  {{.Summary.Count}}
:GAINS:       {{.Summary.Gains}}
:LOSSES:      {{.Summary.Losses}}
:WIN_RATE:    {{printf "%.2f" .Summary.WinRate}}
:TOTAL:       {{money .Summary.Total}}
:TARGET:      {{if ne .Target 0.0}}{{money .Target}}{{else}}(meta?){{end}}
:END:

** Resumo
- Resultado Total:  *{{money .Summary.Total}}*
- Taxa de Acerto:   *{{printf "%.2f" .Summary.WinRate}}%*
{{- if ne .Target 0.0 }}
- Meta Mensal:      *{{printf "%.1f" .Progress}}%* de {{money .Target}}
{{- end }}

** Operações
| Data | Valor Neg. | Despesas | ISS | IRRF | Result. | Total Líq. |
|------+------------+----------+-----+------+---------+------------|
{{- range .Operations }}
| {{.Date}} | {{money .TradeValue}} | {{money .Expenses}} | {{money .ISS}} | {{money .IRRF}} | {{money .Result}} | {{money .NetTotal}} |
{{- end }}

{{- if .Notes }}

** Observações
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
