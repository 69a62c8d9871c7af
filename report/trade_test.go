package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fabiareis/trading-journal/journal"
)

func TestFormatTradeReport(t *testing.T) {
	t.Parallel()

	want := "RELATÓRIO DA OPERAÇÃO\n\n" +
		"Data: 15/03/2024\n" +
		"Conta: Conta pessoal\n" +
		"Ativo: WINJ24\n" +
		"Tipo de Operação: Compra\n" +
		"Tipo de Análise: Técnica\n" +
		"Contratos: 2\n" +
		"Preço de Entrada: 100,00\n" +
		"Preço de Saída: 110,00\n" +
		"Pontos: 10,0\n" +
		"Resultado: R$ 100,00\n" +
		"Capital Alocado: R$ 1.000,00\n" +
		"\nMotivo da Entrada:\n" +
		"rompimento\n"

	assert.Equal(t, want, FormatTradeReport(brl(), sampleTrade()))
}

func TestPrintAccounts(t *testing.T) {
	t.Parallel()

	fee := 150.0
	prop := journal.Trade{
		Date: "2024-03-16", AccountType: journal.AccountProprietaryPrefix,
		Result: -50, TestValue: &fee,
	}

	var buf bytes.Buffer
	PrintAccounts(&buf, brl(), []journal.Trade{sampleTrade(), prop})
	out := buf.String()

	assert.Contains(t, out, "Operações:         2")
	assert.Contains(t, out, "Taxa de Acerto:    50,0%")
	assert.Contains(t, out, "Capital:           R$ 1.000,00")
	assert.Contains(t, out, "Retorno:           10,0%")
	assert.Contains(t, out, "Valor dos Testes:  R$ 150,00")
	assert.Contains(t, out, "Resultado:         -R$ 50,00")
	assert.Contains(t, out, "Atual (16/03/2024):   R$ 50,00")
}

func TestPrintAccountsEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintAccounts(&buf, brl(), nil)
	assert.Contains(t, buf.String(), "Operações:         0")
	assert.NotContains(t, buf.String(), "Evolução")
}
