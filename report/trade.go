package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fabiareis/trading-journal/journal"
	"github.com/fabiareis/trading-journal/stats"
	"github.com/fabiareis/trading-journal/view"
)

// FormatTradeReport is the plain-text report of a single trade.
func FormatTradeReport(f *view.Formatter, t journal.Trade) string {
	var b strings.Builder
	b.WriteString("RELATÓRIO DA OPERAÇÃO\n\n")
	fmt.Fprintf(&b, "Data: %s\n", f.Date(t.Date))
	fmt.Fprintf(&b, "Conta: %s\n", t.AccountType)
	fmt.Fprintf(&b, "Ativo: %s\n", t.Asset)
	fmt.Fprintf(&b, "Tipo de Operação: %s\n", t.OperationType)
	fmt.Fprintf(&b, "Tipo de Análise: %s\n", t.AnalysisType)
	fmt.Fprintf(&b, "Contratos: %d\n", t.Contracts)
	fmt.Fprintf(&b, "Preço de Entrada: %s\n", f.Number(t.EntryPrice, 2))
	fmt.Fprintf(&b, "Preço de Saída: %s\n", f.Number(t.ExitPrice, 2))
	fmt.Fprintf(&b, "Pontos: %s\n", f.Points(t.Points))
	fmt.Fprintf(&b, "Resultado: %s\n", f.Money(t.Result))
	if t.AllocatedCapital != nil {
		fmt.Fprintf(&b, "Capital Alocado: %s\n", f.Money(*t.AllocatedCapital))
	}
	if t.TestValue != nil {
		fmt.Fprintf(&b, "Valor do Teste: %s\n", f.Money(*t.TestValue))
	}
	b.WriteString("\nMotivo da Entrada:\n")
	b.WriteString(t.EntryReason)
	b.WriteString("\n")
	return b.String()
}

// PrintAccounts writes the account dashboard: per-category results, the
// evolution summary and the average trade.
func PrintAccounts(w io.Writer, f *view.Formatter, trades []journal.Trade) {
	acc := stats.SummarizeAccounts(trades)
	ev := stats.SummarizeEvolution(stats.TradeEvolution(trades))

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Contas")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Operações:         %d\n", len(trades))
	fmt.Fprintf(w, "Taxa de Acerto:    %s\n", f.Percent(stats.TradeWinRate(trades)))
	fmt.Fprintf(w, "Resultado Médio:   %s\n", f.Money(stats.AverageResult(trades)))
	fmt.Fprintf(w, "Resultado Total:   %s\n", f.Money(stats.SumResult(trades)))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conta Pessoal")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Capital:           %s\n", f.Money(acc.PersonalCapital))
	fmt.Fprintf(w, "Resultado:         %s\n", f.Money(acc.PersonalResult))
	fmt.Fprintf(w, "Retorno:           %s\n", f.Percent(acc.PersonalReturn))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mesa Proprietária")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Valor dos Testes:  %s\n", f.Money(acc.TestValues))
	fmt.Fprintf(w, "Resultado:         %s\n", f.Money(acc.ProprietaryResult))

	if !ev.Empty {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Evolução")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "Início (%s):  %s\n", f.Date(ev.StartDate), f.Money(ev.StartValue))
		fmt.Fprintf(w, "Atual (%s):   %s\n", f.Date(ev.CurrentDate), f.Money(ev.CurrentValue))
	}

	fmt.Fprintln(w)
}
