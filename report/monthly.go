// Package report lays out and exports journal reports: the paginated
// monthly report, per-trade reports, Org-mode notes and CSV files.
package report

import (
	"fmt"
	"io"

	"github.com/fabiareis/trading-journal/journal"
	"github.com/fabiareis/trading-journal/stats"
	"github.com/fabiareis/trading-journal/view"
)

// Page geometry of the monthly report, in millimetres on an A4 page.
const (
	TitleY       = 20
	SummaryY     = 40
	SummaryStep  = 10
	RowStep      = 7
	HeaderToRow  = 10
	PageTopY     = 20
	PageBottomY  = 280
	ColumnX      = 22
	ColumnWidth  = 25
	SummaryX     = 20
	SummaryAfter = 20
)

// Columns of the monthly operations table.
var Columns = []string{"Data", "Valor Neg.", "Despesas", "ISS", "IRRF", "Result.", "Total Líq."}

// Text is a string placed at a position on a page.
type Text struct {
	X, Y int
	Text string
}

// Row is one table row with its vertical position.
type Row struct {
	Y     int
	Cells []string
}

// Page holds the table header position and the rows drawn on one page.
// The first page also carries the title and summary lines.
type Page struct {
	Number  int
	Texts   []Text
	HeaderY int
	Rows    []Row
}

// Monthly is a laid-out monthly report ready to be drawn.
type Monthly struct {
	Title    string
	Filename string
	Summary  stats.MonthSummary
	Pages    []Page
}

// MonthlyReport lays out the operations of month. Rows go 7 units apart
// starting 10 below the header; a row that would land below PageBottomY
// opens a new page whose header is drawn at PageTopY.
func MonthlyReport(f *view.Formatter, ops []journal.Operation, month int) Monthly {
	name := monthName(month)
	summary := stats.SummarizeMonth(ops, month)
	scoped := stats.OperationsInMonth(ops, month)

	r := Monthly{
		Title:    "Relatório Mensal - " + name,
		Filename: "Relatorio_" + name + ".pdf",
		Summary:  summary,
	}

	y := SummaryY
	lines := []string{
		fmt.Sprintf("Total de Operações: %d", summary.Count),
		fmt.Sprintf("Operações Positivas: %d", summary.Gains), // includes break-even days
		fmt.Sprintf("Operações Negativas: %d", summary.Losses),
		"Taxa de Acerto: " + f.Number(summary.WinRate, 2) + "%",
		"Resultado Total: " + f.Money(summary.Total),
	}
	page := Page{Number: 1, Texts: []Text{{X: 105, Y: TitleY, Text: r.Title}}}
	for i, l := range lines {
		page.Texts = append(page.Texts, Text{X: SummaryX, Y: y, Text: l})
		if i < len(lines)-1 {
			y += SummaryStep
		}
	}
	page.HeaderY = y + SummaryAfter

	n := 0
	for _, op := range scoped {
		rowY := page.HeaderY + HeaderToRow + n*RowStep
		if rowY > PageBottomY {
			r.Pages = append(r.Pages, page)
			page = Page{Number: page.Number + 1, HeaderY: PageTopY}
			n = 0
			rowY = page.HeaderY + HeaderToRow
		}
		page.Rows = append(page.Rows, Row{Y: rowY, Cells: operationCells(f, op)})
		n++
	}
	r.Pages = append(r.Pages, page)
	return r
}

// CellX is the horizontal position of column i.
func CellX(i int) int { return ColumnX + i*ColumnWidth }

func operationCells(f *view.Formatter, op journal.Operation) []string {
	return []string{
		f.Date(op.Date),
		f.Money(op.TradeValue),
		f.Money(op.Expenses),
		f.Money(op.ISS),
		f.Money(op.IRRF),
		f.Money(op.Result),
		f.Money(op.NetTotal),
	}
}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("Mês %d", month)
	}
	return view.MonthNames[month-1]
}

// PrintMonthly writes r as plain text, one block per page.
func PrintMonthly(w io.Writer, r Monthly) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s\n", r.Title)
	fmt.Fprintln(w, "==================================================")

	for _, p := range r.Pages {
		if p.Number > 1 {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "-- página %d --\n", p.Number)
		}
		for _, t := range p.Texts {
			if t.Y == TitleY {
				continue
			}
			fmt.Fprintln(w, t.Text)
		}
		if len(p.Texts) > 0 {
			fmt.Fprintln(w)
		}
		for _, c := range Columns {
			fmt.Fprintf(w, "%-14s", c)
		}
		fmt.Fprintln(w)
		for _, row := range p.Rows {
			for _, c := range row.Cells {
				fmt.Fprintf(w, "%-14s", c)
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)
}
